package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mathieu-neron/TrendScope/internal/model"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS video_categories (
	country_code TEXT NOT NULL,
	category_id  TEXT NOT NULL,
	title        TEXT NOT NULL,
	PRIMARY KEY (country_code, category_id)
);

CREATE TABLE IF NOT EXISTS trending_videos (
	id               BIGSERIAL PRIMARY KEY,
	country_code     TEXT NOT NULL,
	video_id         TEXT NOT NULL,
	title            TEXT NOT NULL,
	category_id      TEXT NOT NULL,
	publish_time     TIMESTAMPTZ NOT NULL,
	tags             TEXT NOT NULL DEFAULT '',
	views            BIGINT NOT NULL,
	likes            BIGINT NOT NULL,
	dislikes         BIGINT NOT NULL,
	comment_count    BIGINT NOT NULL,
	title_pos        DOUBLE PRECISION NOT NULL,
	title_neu        DOUBLE PRECISION NOT NULL,
	title_neg        DOUBLE PRECISION NOT NULL,
	description_pos  DOUBLE PRECISION NOT NULL,
	description_neu  DOUBLE PRECISION NOT NULL,
	description_neg  DOUBLE PRECISION NOT NULL,
	tags_pos         DOUBLE PRECISION NOT NULL,
	tags_neu         DOUBLE PRECISION NOT NULL,
	tags_neg         DOUBLE PRECISION NOT NULL
);

CREATE INDEX IF NOT EXISTS trending_videos_country_idx ON trending_videos (country_code, id);`

var videoColumns = []string{
	"country_code", "video_id", "title", "category_id", "publish_time", "tags",
	"views", "likes", "dislikes", "comment_count",
	"title_pos", "title_neu", "title_neg",
	"description_pos", "description_neu", "description_neg",
	"tags_pos", "tags_neu", "tags_neg",
}

// VideoRepo is the Postgres-backed row store.
type VideoRepo struct {
	pool        *pgxpool.Pool
	countries   []model.CountrySource
	sampleEvery int
}

func NewVideoRepo(pool *pgxpool.Pool, countries []model.CountrySource, sampleEvery int) *VideoRepo {
	return &VideoRepo{pool: pool, countries: countries, sampleEvery: max(sampleEvery, 1)}
}

// EnsureSchema creates the tables if they do not exist.
func (r *VideoRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, schemaSQL)
	return err
}

// LoadRows returns every configured country's rows, in configured country
// order and insertion order within a country. Rows whose category id has no
// metadata get model.UnknownCategory.
func (r *VideoRepo) LoadRows(ctx context.Context) ([]model.VideoRecord, error) {
	query := `
		SELECT v.video_id, v.title, v.category_id, COALESCE(c.title, ''), v.publish_time, v.tags,
		       v.views, v.likes, v.dislikes, v.comment_count,
		       v.title_pos, v.title_neu, v.title_neg,
		       v.description_pos, v.description_neu, v.description_neg,
		       v.tags_pos, v.tags_neu, v.tags_neg
		FROM trending_videos v
		LEFT JOIN video_categories c
		       ON c.country_code = v.country_code AND c.category_id = v.category_id
		WHERE v.country_code = $1
		ORDER BY v.id`

	var all []model.VideoRecord
	for _, src := range r.countries {
		rows, err := r.pool.Query(ctx, query, src.Code)
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", src.Code, err)
		}

		var countryRows []model.VideoRecord
		for rows.Next() {
			v := model.VideoRecord{Country: src.Name, CountryCode: src.Code}
			err := rows.Scan(
				&v.VideoID, &v.Title, &v.CategoryID, &v.CategoryName, &v.PublishTime, &v.Tags,
				&v.Views, &v.Likes, &v.Dislikes, &v.CommentCount,
				&v.TitleSentiment.Pos, &v.TitleSentiment.Neu, &v.TitleSentiment.Neg,
				&v.DescriptionSentiment.Pos, &v.DescriptionSentiment.Neu, &v.DescriptionSentiment.Neg,
				&v.TagsSentiment.Pos, &v.TagsSentiment.Neu, &v.TagsSentiment.Neg,
			)
			if err != nil {
				rows.Close()
				return nil, err
			}
			if v.CategoryName == "" {
				v.CategoryName = model.UnknownCategory
			}
			v.PublishTime = v.PublishTime.UTC()
			countryRows = append(countryRows, v)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, err
		}

		all = append(all, SampleRows(countryRows, r.sampleEvery)...)
	}
	return all, nil
}

// ReplaceCountry swaps one country's categories and rows in a single
// transaction. Rows are bulk-loaded with COPY.
func (r *VideoRepo) ReplaceCountry(ctx context.Context, code string, cats CategoryMap, videos []model.VideoRecord) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM trending_videos WHERE country_code = $1`, code); err != nil {
		return 0, err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM video_categories WHERE country_code = $1`, code); err != nil {
		return 0, err
	}

	batch := &pgx.Batch{}
	for id, title := range cats {
		batch.Queue(`INSERT INTO video_categories (country_code, category_id, title) VALUES ($1, $2, $3)`,
			code, id, title)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("insert categories: %w", err)
	}

	copied, err := tx.CopyFrom(ctx,
		pgx.Identifier{"trending_videos"},
		videoColumns,
		pgx.CopyFromSlice(len(videos), func(i int) ([]any, error) {
			v := videos[i]
			return []any{
				code, v.VideoID, v.Title, v.CategoryID, v.PublishTime, v.Tags,
				v.Views, v.Likes, v.Dislikes, v.CommentCount,
				v.TitleSentiment.Pos, v.TitleSentiment.Neu, v.TitleSentiment.Neg,
				v.DescriptionSentiment.Pos, v.DescriptionSentiment.Neu, v.DescriptionSentiment.Neg,
				v.TagsSentiment.Pos, v.TagsSentiment.Neu, v.TagsSentiment.Neg,
			}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("copy videos: %w", err)
	}

	return copied, tx.Commit(ctx)
}
