package service

import "github.com/mathieu-neron/TrendScope/internal/model"

// Classify picks the sentiment bucket of a triple. Neutral wins when neither
// other score exceeds it; between Negative and Positive, Negative wins ties.
func Classify(t model.SentimentTriple) model.Sentiment {
	switch {
	case t.Neu >= t.Pos && t.Neu >= t.Neg:
		return model.Neutral
	case t.Neg >= t.Pos:
		return model.Negative
	default:
		return model.Positive
	}
}

// BubbleSentiment is the scatterplot x coordinate, pos - neg.
func BubbleSentiment(t model.SentimentTriple) float64 {
	return t.Pos - t.Neg
}

// Engagement weights comments fully and likes/dislikes at a tenth.
func Engagement(r *model.VideoRecord) float64 {
	return float64(r.CommentCount) + float64(r.Likes)/10 + float64(r.Dislikes)/10
}
