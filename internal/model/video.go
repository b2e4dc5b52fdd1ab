package model

import "time"

// UnknownCategory is assigned to rows whose category id is missing from the
// country's category metadata.
const UnknownCategory = "Unknown"

// TextField is the video attribute sentiment is computed over.
type TextField string

const (
	FieldTitle       TextField = "title"
	FieldDescription TextField = "description"
	FieldTags        TextField = "tags"
)

// TextFields lists every text field in button order.
var TextFields = []TextField{FieldTitle, FieldDescription, FieldTags}

// Valid reports whether f is one of the known text fields.
func (f TextField) Valid() bool {
	switch f {
	case FieldTitle, FieldDescription, FieldTags:
		return true
	}
	return false
}

// SentimentTriple holds the positive/neutral/negative scores of one text field.
// The values are in [0,1] and do not necessarily sum to 1.
type SentimentTriple struct {
	Pos float64 `json:"pos"`
	Neu float64 `json:"neu"`
	Neg float64 `json:"neg"`
}

// VideoRecord is one trending-video row, annotated with country and category
// name at load time.
type VideoRecord struct {
	RowID        int       `json:"rowId"`
	VideoID      string    `json:"videoId"`
	Title        string    `json:"title"`
	CategoryID   string    `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	Country      string    `json:"country"`
	CountryCode  string    `json:"countryCode"`
	Tags         string    `json:"tags,omitempty"`
	PublishTime  time.Time `json:"publishTime"`
	Views        int64     `json:"views"`
	Likes        int64     `json:"likes"`
	Dislikes     int64     `json:"dislikes"`
	CommentCount int64     `json:"commentCount"`

	TitleSentiment       SentimentTriple `json:"titleSentiment"`
	DescriptionSentiment SentimentTriple `json:"descriptionSentiment"`
	TagsSentiment        SentimentTriple `json:"tagsSentiment"`
}

// Sentiment returns the sentiment triple for the given text field.
func (r *VideoRecord) Sentiment(f TextField) SentimentTriple {
	switch f {
	case FieldDescription:
		return r.DescriptionSentiment
	case FieldTags:
		return r.TagsSentiment
	default:
		return r.TitleSentiment
	}
}

// CountrySource describes where one country's rows and category metadata live.
type CountrySource struct {
	Code string
	Name string
}
