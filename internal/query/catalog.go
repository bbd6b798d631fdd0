// Package query exposes the fixed catalog of analytical questions the
// warehouse answers. Each question is a canned SQL statement over the
// channels/videos/comments schema; results come back as generic string
// tables so the HTTP layer can render them as JSON or CSV without knowing
// the column types.
package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrUnknownQuestion is returned when a question key is not in the catalog.
var ErrUnknownQuestion = errors.New("unknown question")

// IsUnknownQuestion returns true if the error is an ErrUnknownQuestion error.
func IsUnknownQuestion(err error) bool {
	return errors.Is(err, ErrUnknownQuestion)
}

// Question is one entry in the analytical catalog.
type Question struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	sql   string
}

// Result is a generic tabular answer.
type Result struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// catalog is ordered; List preserves this order so clients see a stable menu.
var catalog = []Question{
	{
		Key:   "video_channel_names",
		Title: "Names of all videos and their channels",
		sql: `SELECT v.title AS video_name, c.name AS channel_name
			FROM videos v
			JOIN channels c ON c.channel_id = v.channel_id
			ORDER BY c.name, v.title`,
	},
	{
		Key:   "channels_most_videos",
		Title: "Channels with the most videos",
		sql: `SELECT c.name AS channel_name, COUNT(v.video_id) AS video_count
			FROM channels c
			LEFT JOIN videos v ON v.channel_id = c.channel_id
			GROUP BY c.name
			ORDER BY video_count DESC`,
	},
	{
		Key:   "top_10_viewed_videos",
		Title: "Top 10 most viewed videos and their channels",
		sql: `SELECT v.title AS video_name, c.name AS channel_name, v.view_count
			FROM videos v
			JOIN channels c ON c.channel_id = v.channel_id
			ORDER BY v.view_count DESC
			LIMIT 10`,
	},
	{
		Key:   "comments_per_video",
		Title: "Number of stored comments on each video",
		sql: `SELECT v.title AS video_name, COUNT(cm.comment_id) AS comment_count
			FROM videos v
			LEFT JOIN comments cm ON cm.video_id = v.video_id
			GROUP BY v.video_id, v.title
			ORDER BY comment_count DESC`,
	},
	{
		Key:   "highest_liked_videos",
		Title: "Videos with the highest likes and their channels",
		sql: `SELECT v.title AS video_name, c.name AS channel_name, v.like_count
			FROM videos v
			JOIN channels c ON c.channel_id = v.channel_id
			ORDER BY v.like_count DESC
			LIMIT 10`,
	},
	{
		Key:   "likes_per_video",
		Title: "Total likes on each video",
		sql: `SELECT v.title AS video_name, v.like_count
			FROM videos v
			ORDER BY v.like_count DESC`,
	},
	{
		Key:   "views_per_channel",
		Title: "Total views per channel",
		sql: `SELECT c.name AS channel_name, COALESCE(SUM(v.view_count), 0)::BIGINT AS total_views
			FROM channels c
			LEFT JOIN videos v ON v.channel_id = c.channel_id
			GROUP BY c.name
			ORDER BY total_views DESC`,
	},
	{
		Key:   "channels_published_2022",
		Title: "Channels that published videos in 2022",
		sql: `SELECT DISTINCT c.name AS channel_name
			FROM channels c
			JOIN videos v ON v.channel_id = c.channel_id
			WHERE EXTRACT(YEAR FROM v.published_at) = 2022
			ORDER BY c.name`,
	},
	{
		Key:   "avg_duration_per_channel",
		Title: "Average video duration per channel",
		sql: `SELECT c.name AS channel_name,
			COALESCE(TO_CHAR(AVG(v.duration::interval), 'HH24:MI:SS'), '00:00:00') AS avg_duration
			FROM channels c
			LEFT JOIN videos v ON v.channel_id = c.channel_id
			GROUP BY c.name
			ORDER BY c.name`,
	},
	{
		Key:   "most_commented_videos",
		Title: "Videos with the highest comment counts and their channels",
		sql: `SELECT v.title AS video_name, c.name AS channel_name, v.comment_count
			FROM videos v
			JOIN channels c ON c.channel_id = v.channel_id
			ORDER BY v.comment_count DESC
			LIMIT 10`,
	},
}

// List returns the catalog in its canonical order.
func List() []Question {
	out := make([]Question, len(catalog))
	copy(out, catalog)
	return out
}

// Get looks a question up by key.
func Get(key string) (Question, error) {
	for _, q := range catalog {
		if q.Key == key {
			return q, nil
		}
	}
	return Question{}, fmt.Errorf("%q: %w", key, ErrUnknownQuestion)
}

// Run executes the question against the pool and stringifies every cell.
// NULLs render as empty strings.
func Run(ctx context.Context, pool *pgxpool.Pool, key string) (*Result, error) {
	q, err := Get(key)
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, q.sql)
	if err != nil {
		return nil, fmt.Errorf("failed to run question %s: %w", key, err)
	}
	defer rows.Close()

	descs := rows.FieldDescriptions()
	columns := make([]string, len(descs))
	for i, d := range descs {
		columns[i] = d.Name
	}

	result := &Result{Columns: columns, Rows: [][]string{}}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("failed to read row for question %s: %w", key, err)
		}

		row := make([]string, len(values))
		for i, v := range values {
			row[i] = stringify(v)
		}
		result.Rows = append(result.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate question %s: %w", key, err)
	}

	return result, nil
}

func stringify(v interface{}) string {
	if v == nil {
		return ""
	}

	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
