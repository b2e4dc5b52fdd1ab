package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mathieu-neron/TrendScope/internal/model"
)

const testHeader = "video_id,title,category_id,publish_time,tags,views,likes,dislikes,comment_count," +
	"title_pos,title_neu,title_neg,description_pos,description_neu,description_neg,tags_pos,tags_neu,tags_neg"

const testCategories = `{"kind":"youtube#videoCategoryListResponse","items":[
	{"id":"10","snippet":{"title":"Music"}},
	{"id":"24","snippet":{"title":"Entertainment"}}
]}`

func writeCountry(t *testing.T, dir, code string, lines ...string) {
	t.Helper()
	csv := testHeader + "\n" + strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(filepath.Join(dir, "sentiments_"+code+"videos.csv"), []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, code+"_category_id.json"), []byte(testCategories), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestParseVideosCSV(t *testing.T) {
	data := testHeader + "\n" +
		`abc123,"Hello, world",10,2018-01-05T17:13:01.000Z,"a|b",1200,50,3,7,0.7,0.2,0.1,0.1,0.8,0.1,0.3,0.3,0.4` + "\n"

	rows, err := ParseVideosCSV(context.Background(), strings.NewReader(data), "test.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}

	r := rows[0]
	if r.VideoID != "abc123" || r.Title != "Hello, world" || r.CategoryID != "10" {
		t.Errorf("identity fields = %q/%q/%q", r.VideoID, r.Title, r.CategoryID)
	}
	if r.Views != 1200 || r.Likes != 50 || r.Dislikes != 3 || r.CommentCount != 7 {
		t.Errorf("counts = %d/%d/%d/%d", r.Views, r.Likes, r.Dislikes, r.CommentCount)
	}
	want := time.Date(2018, time.January, 5, 17, 13, 1, 0, time.UTC)
	if !r.PublishTime.Equal(want) {
		t.Errorf("publish time = %s, want %s", r.PublishTime, want)
	}
	if r.TitleSentiment != (model.SentimentTriple{Pos: 0.7, Neu: 0.2, Neg: 0.1}) {
		t.Errorf("title sentiment = %+v", r.TitleSentiment)
	}
	if r.TagsSentiment.Neg != 0.4 {
		t.Errorf("tags neg = %v, want 0.4", r.TagsSentiment.Neg)
	}
}

func TestParseVideosCSV_MissingColumn(t *testing.T) {
	data := "video_id,title\nabc,x\n"
	_, err := ParseVideosCSV(context.Background(), strings.NewReader(data), "bad.csv")
	if err == nil || !strings.Contains(err.Error(), "missing column") {
		t.Fatalf("expected missing column error, got %v", err)
	}
}

func TestParseVideosCSV_BadNumberNamesLine(t *testing.T) {
	data := testHeader + "\n" +
		`a,t,10,2018-01-05T00:00:00Z,,1,1,1,1,0.1,0.1,0.1,0.1,0.1,0.1,0.1,0.1,0.1` + "\n" +
		`b,t,10,2018-01-05T00:00:00Z,,lots,1,1,1,0.1,0.1,0.1,0.1,0.1,0.1,0.1,0.1,0.1` + "\n"

	_, err := ParseVideosCSV(context.Background(), strings.NewReader(data), "bad.csv")
	if err == nil {
		t.Fatal("expected error for non-numeric views")
	}
	if !strings.Contains(err.Error(), "bad.csv:3") {
		t.Errorf("error should name file and line, got %v", err)
	}
}

func TestParseCategories(t *testing.T) {
	cats, err := ParseCategories(strings.NewReader(testCategories))
	if err != nil {
		t.Fatal(err)
	}
	if cats["10"] != "Music" || cats["24"] != "Entertainment" {
		t.Errorf("categories = %v", cats)
	}
}

func TestAnnotateRows_UnknownCategory(t *testing.T) {
	rows := []model.VideoRecord{{CategoryID: "10"}, {CategoryID: "99"}}
	unknown := AnnotateRows(rows, model.CountrySource{Code: "CA", Name: "Canada"}, CategoryMap{"10": "Music"})

	if unknown != 1 {
		t.Errorf("unknown = %d, want 1", unknown)
	}
	if rows[0].CategoryName != "Music" {
		t.Errorf("row 0 category = %q, want Music", rows[0].CategoryName)
	}
	if rows[1].CategoryName != model.UnknownCategory {
		t.Errorf("row 1 category = %q, want %q", rows[1].CategoryName, model.UnknownCategory)
	}
	for i, r := range rows {
		if r.Country != "Canada" || r.CountryCode != "CA" {
			t.Errorf("row %d country = %q/%q", i, r.Country, r.CountryCode)
		}
	}
}

func TestSampleRows(t *testing.T) {
	rows := make([]model.VideoRecord, 10)
	for i := range rows {
		rows[i].VideoID = string(rune('a' + i))
	}

	kept := SampleRows(rows, 4)
	if len(kept) != 3 {
		t.Fatalf("kept %d rows, want 3 (indices 0,4,8)", len(kept))
	}
	for i, want := range []string{"a", "e", "i"} {
		if kept[i].VideoID != want {
			t.Errorf("kept[%d] = %q, want %q", i, kept[i].VideoID, want)
		}
	}

	if got := SampleRows(rows, 1); len(got) != 10 {
		t.Errorf("every=1 kept %d rows, want 10", len(got))
	}
}

func TestFileRepo_LoadRowsKeepsCountryOrder(t *testing.T) {
	dir := t.TempDir()
	writeCountry(t, dir, "US",
		`u1,t,10,2018-01-01T00:00:00Z,,1,1,1,1,0.1,0.1,0.1,0.1,0.1,0.1,0.1,0.1,0.1`,
		`u2,t,24,2018-01-02T00:00:00Z,,1,1,1,1,0.1,0.1,0.1,0.1,0.1,0.1,0.1,0.1,0.1`,
	)
	writeCountry(t, dir, "CA",
		`c1,t,77,2018-02-01T00:00:00Z,,1,1,1,1,0.1,0.1,0.1,0.1,0.1,0.1,0.1,0.1,0.1`,
	)

	repo := NewFileRepo(dir, []model.CountrySource{
		{Code: "CA", Name: "Canada"},
		{Code: "US", Name: "United States"},
	}, 1, zerolog.Nop())

	rows, err := repo.LoadRows(context.Background())
	if err != nil {
		t.Fatalf("LoadRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}

	want := []struct{ id, country, category string }{
		{"c1", "Canada", model.UnknownCategory},
		{"u1", "United States", "Music"},
		{"u2", "United States", "Entertainment"},
	}
	for i, w := range want {
		r := rows[i]
		if r.VideoID != w.id || r.Country != w.country || r.CategoryName != w.category {
			t.Errorf("row %d = %s/%s/%s, want %s/%s/%s", i, r.VideoID, r.Country, r.CategoryName, w.id, w.country, w.category)
		}
	}
}

func TestFileRepo_MissingFileFails(t *testing.T) {
	repo := NewFileRepo(t.TempDir(), []model.CountrySource{{Code: "CA", Name: "Canada"}}, 1, zerolog.Nop())
	if _, err := repo.LoadRows(context.Background()); err == nil {
		t.Fatal("expected error for missing files")
	}
}
