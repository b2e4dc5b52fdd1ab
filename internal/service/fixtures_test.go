package service

import (
	"time"

	"github.com/mathieu-neron/TrendScope/internal/model"
)

func publishedOn(month time.Month, day int) time.Time {
	return time.Date(DataYear, month, day, 12, 0, 0, 0, time.UTC)
}

// testRow builds a row whose title sentiment is (pos, neu, neg).
func testRow(country, category string, month time.Month, day int, pos, neu, neg float64) model.VideoRecord {
	return model.VideoRecord{
		VideoID:        country + "-" + category,
		Title:          "video in " + category,
		Country:        country,
		CategoryName:   category,
		PublishTime:    publishedOn(month, day),
		Views:          1000,
		Likes:          100,
		Dislikes:       10,
		CommentCount:   5,
		TitleSentiment: model.SentimentTriple{Pos: pos, Neu: neu, Neg: neg},
		TagsSentiment:  model.SentimentTriple{Pos: neg, Neu: neu, Neg: pos},
	}
}

// negRow, neuRow and posRow classify unambiguously on the title field.
func negRow(country, category string, month time.Month, day int) model.VideoRecord {
	return testRow(country, category, month, day, 0.1, 0.2, 0.7)
}

func neuRow(country, category string, month time.Month, day int) model.VideoRecord {
	return testRow(country, category, month, day, 0.1, 0.8, 0.1)
}

func posRow(country, category string, month time.Month, day int) model.VideoRecord {
	return testRow(country, category, month, day, 0.7, 0.2, 0.1)
}

func sampleStore() *RowStore {
	return NewRowStore([]model.VideoRecord{
		negRow("Canada", "Music", time.January, 1),
		negRow("Canada", "Music", time.January, 2),
		negRow("Canada", "Music", time.January, 3),
		neuRow("Canada", "Music", time.February, 1),
		posRow("Canada", "Gaming", time.February, 14),
		posRow("Great Britain", "Music", time.January, 1),
		neuRow("Great Britain", "Comedy", time.March, 30),
	})
}
