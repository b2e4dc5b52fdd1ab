package repository

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mathieu-neron/TrendScope/internal/model"
)

// Columns every videos CSV must carry. Sentiment columns are derived from
// model.TextFields with _pos/_neu/_neg suffixes.
var requiredColumns = []string{
	"video_id", "title", "category_id", "publish_time",
	"views", "likes", "dislikes", "comment_count",
}

var publishTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// CategoryMap maps category_id to its display name.
type CategoryMap map[string]string

// categoryFile mirrors <CC>_category_id.json.
type categoryFile struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title string `json:"title"`
		} `json:"snippet"`
	} `json:"items"`
}

// FileRepo loads per-country videos CSVs and category metadata from a directory.
type FileRepo struct {
	dir         string
	countries   []model.CountrySource
	sampleEvery int
	log         zerolog.Logger
}

func NewFileRepo(dir string, countries []model.CountrySource, sampleEvery int, log zerolog.Logger) *FileRepo {
	return &FileRepo{
		dir:         dir,
		countries:   countries,
		sampleEvery: max(sampleEvery, 1),
		log:         log,
	}
}

// VideosPath is the CSV file for a country code.
func (r *FileRepo) VideosPath(code string) string {
	return filepath.Join(r.dir, fmt.Sprintf("sentiments_%svideos.csv", code))
}

// CategoriesPath is the category metadata file for a country code.
func (r *FileRepo) CategoriesPath(code string) string {
	return filepath.Join(r.dir, fmt.Sprintf("%s_category_id.json", code))
}

// LoadRows reads every configured country concurrently and returns the rows in
// configured country order, file order within a country.
func (r *FileRepo) LoadRows(ctx context.Context) ([]model.VideoRecord, error) {
	perCountry := make([][]model.VideoRecord, len(r.countries))

	g, ctx := errgroup.WithContext(ctx)
	for i, src := range r.countries {
		g.Go(func() error {
			rows, err := r.LoadCountry(ctx, src)
			if err != nil {
				return fmt.Errorf("load %s: %w", src.Code, err)
			}
			perCountry[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []model.VideoRecord
	for _, rows := range perCountry {
		all = append(all, rows...)
	}
	return all, nil
}

// LoadCountry reads one country's files, annotates the rows with country and
// category name, and applies sampling.
func (r *FileRepo) LoadCountry(ctx context.Context, src model.CountrySource) ([]model.VideoRecord, error) {
	cats, rows, err := r.ReadCountry(ctx, src)
	if err != nil {
		return nil, err
	}

	unknown := AnnotateRows(rows, src, cats)
	if unknown > 0 {
		r.log.Warn().
			Str("country", src.Code).
			Int("rows", unknown).
			Msg("category id missing from metadata, using Unknown")
	}

	rows = SampleRows(rows, r.sampleEvery)
	r.log.Info().Str("country", src.Code).Int("rows", len(rows)).Msg("country loaded")
	return rows, nil
}

// ReadCountry returns one country's raw category metadata and unannotated rows.
func (r *FileRepo) ReadCountry(ctx context.Context, src model.CountrySource) (CategoryMap, []model.VideoRecord, error) {
	cf, err := os.Open(r.CategoriesPath(src.Code))
	if err != nil {
		return nil, nil, err
	}
	defer cf.Close()

	cats, err := ParseCategories(cf)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", r.CategoriesPath(src.Code), err)
	}

	vf, err := os.Open(r.VideosPath(src.Code))
	if err != nil {
		return nil, nil, err
	}
	defer vf.Close()

	rows, err := ParseVideosCSV(ctx, vf, r.VideosPath(src.Code))
	if err != nil {
		return nil, nil, err
	}
	return cats, rows, nil
}

// ParseCategories decodes {items:[{id,snippet:{title}}]}.
func ParseCategories(rd io.Reader) (CategoryMap, error) {
	var f categoryFile
	if err := json.NewDecoder(rd).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	cats := make(CategoryMap, len(f.Items))
	for _, item := range f.Items {
		cats[strings.TrimSpace(item.ID)] = item.Snippet.Title
	}
	return cats, nil
}

// AnnotateRows sets country and category name on every row and returns how
// many rows fell back to model.UnknownCategory.
func AnnotateRows(rows []model.VideoRecord, src model.CountrySource, cats CategoryMap) int {
	unknown := 0
	for i := range rows {
		rows[i].Country = src.Name
		rows[i].CountryCode = src.Code
		name, ok := cats[rows[i].CategoryID]
		if !ok || name == "" {
			name = model.UnknownCategory
			unknown++
		}
		rows[i].CategoryName = name
	}
	return unknown
}

// SampleRows keeps rows whose index is a multiple of every.
func SampleRows(rows []model.VideoRecord, every int) []model.VideoRecord {
	if every <= 1 {
		return rows
	}
	kept := make([]model.VideoRecord, 0, len(rows)/every+1)
	for i, row := range rows {
		if i%every == 0 {
			kept = append(kept, row)
		}
	}
	return kept
}

// ParseVideosCSV reads a videos CSV by header name. name is used in errors.
func ParseVideosCSV(ctx context.Context, rd io.Reader, name string) ([]model.VideoRecord, error) {
	cr := csv.NewReader(rd)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: read header: %w", name, err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}

	required := append([]string{}, requiredColumns...)
	for _, f := range model.TextFields {
		required = append(required, string(f)+"_pos", string(f)+"_neu", string(f)+"_neg")
	}
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%s: missing column %q", name, col)
		}
	}

	var rows []model.VideoRecord
	for line := 2; ; line++ {
		if line%10000 == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		row, err := parseRecord(rec, idx)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", name, line, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRecord(rec []string, idx map[string]int) (model.VideoRecord, error) {
	get := func(col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var row model.VideoRecord
	var err error

	row.VideoID = get("video_id")
	row.Title = get("title")
	row.CategoryID = get("category_id")
	row.Tags = get("tags")

	if row.PublishTime, err = parsePublishTime(get("publish_time")); err != nil {
		return row, err
	}

	counts := []struct {
		col string
		dst *int64
	}{
		{"views", &row.Views},
		{"likes", &row.Likes},
		{"dislikes", &row.Dislikes},
		{"comment_count", &row.CommentCount},
	}
	for _, c := range counts {
		if *c.dst, err = parseCount(get(c.col)); err != nil {
			return row, fmt.Errorf("%s: %w", c.col, err)
		}
	}

	triples := map[model.TextField]*model.SentimentTriple{
		model.FieldTitle:       &row.TitleSentiment,
		model.FieldDescription: &row.DescriptionSentiment,
		model.FieldTags:        &row.TagsSentiment,
	}
	for field, dst := range triples {
		for suffix, v := range map[string]*float64{"_pos": &dst.Pos, "_neu": &dst.Neu, "_neg": &dst.Neg} {
			col := string(field) + suffix
			if *v, err = strconv.ParseFloat(get(col), 64); err != nil {
				return row, fmt.Errorf("%s: not a number", col)
			}
		}
	}
	return row, nil
}

func parsePublishTime(s string) (time.Time, error) {
	for _, layout := range publishTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("publish_time: unrecognized timestamp %q", s)
}

// parseCount accepts integers and integral floats ("1200.0").
func parseCount(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return int64(f), nil
}
