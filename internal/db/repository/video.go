package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yt-harvest/youtube-warehouse-go/internal/db"
	"github.com/yt-harvest/youtube-warehouse-go/internal/db/models"
)

// VideoRepository defines operations for managing harvested videos.
type VideoRepository interface {
	// Upsert creates a video or refreshes the statistics of an existing one.
	// On conflict only view/like/favorite/comment counts, definition and the
	// caption flag are overwritten; title, tags, description, channel_id and
	// published_at keep their first-inserted values. The owning channel must
	// already exist or the insert fails with a foreign key violation.
	Upsert(ctx context.Context, video *models.Video) error

	// GetByID retrieves a single video by ID.
	GetByID(ctx context.Context, videoID string) (*models.Video, error)

	// ListByChannelID retrieves videos of a channel, newest first.
	ListByChannelID(ctx context.Context, channelID string, limit int) ([]*models.Video, error)

	// List retrieves videos with pagination, newest first.
	List(ctx context.Context, limit, offset int) ([]*models.Video, error)

	// Count returns the number of stored videos.
	Count(ctx context.Context) (int64, error)
}

type videoRepository struct {
	pool *pgxpool.Pool
}

// NewVideoRepository creates a new VideoRepository.
func NewVideoRepository(pool *pgxpool.Pool) VideoRepository {
	return &videoRepository{pool: pool}
}

const videoColumns = `video_id, channel_id, title, description, tags, thumbnail_url, published_at, view_count, like_count, favorite_count, comment_count, duration, definition, caption, first_seen_at, last_harvested_at`

func (r *videoRepository) Upsert(ctx context.Context, video *models.Video) error {
	query := `
		INSERT INTO videos (video_id, channel_id, title, description, tags, thumbnail_url, published_at, view_count, like_count, favorite_count, comment_count, duration, definition, caption, first_seen_at, last_harvested_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, now(), now())
		ON CONFLICT (video_id) DO UPDATE
		SET view_count = EXCLUDED.view_count,
		    like_count = EXCLUDED.like_count,
		    favorite_count = EXCLUDED.favorite_count,
		    comment_count = EXCLUDED.comment_count,
		    definition = EXCLUDED.definition,
		    caption = EXCLUDED.caption,
		    last_harvested_at = now()
		RETURNING channel_id, published_at, first_seen_at, last_harvested_at
	`

	err := r.pool.QueryRow(ctx, query,
		video.VideoID,
		video.ChannelID,
		video.Title,
		video.Description,
		video.Tags,
		video.ThumbnailURL,
		video.PublishedAt,
		video.ViewCount,
		video.LikeCount,
		video.FavoriteCount,
		video.CommentCount,
		video.Duration,
		video.Definition,
		video.Caption,
	).Scan(
		&video.ChannelID,
		&video.PublishedAt,
		&video.FirstSeenAt,
		&video.LastHarvestedAt,
	)

	if err != nil {
		return db.WrapError(err, "upsert video")
	}

	return nil
}

func (r *videoRepository) GetByID(ctx context.Context, videoID string) (*models.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE video_id = $1`

	video := &models.Video{}
	err := r.pool.QueryRow(ctx, query, videoID).Scan(
		&video.VideoID,
		&video.ChannelID,
		&video.Title,
		&video.Description,
		&video.Tags,
		&video.ThumbnailURL,
		&video.PublishedAt,
		&video.ViewCount,
		&video.LikeCount,
		&video.FavoriteCount,
		&video.CommentCount,
		&video.Duration,
		&video.Definition,
		&video.Caption,
		&video.FirstSeenAt,
		&video.LastHarvestedAt,
	)

	if err != nil {
		return nil, db.WrapError(err, "get video by id")
	}

	return video, nil
}

func (r *videoRepository) ListByChannelID(ctx context.Context, channelID string, limit int) ([]*models.Video, error) {
	query := `
		SELECT ` + videoColumns + `
		FROM videos
		WHERE channel_id = $1
		ORDER BY published_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, channelID, limit)
	if err != nil {
		return nil, db.WrapError(err, "list videos by channel id")
	}
	defer rows.Close()

	return scanVideos(rows)
}

func (r *videoRepository) List(ctx context.Context, limit, offset int) ([]*models.Video, error) {
	query := `
		SELECT ` + videoColumns + `
		FROM videos
		ORDER BY published_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, db.WrapError(err, "list videos")
	}
	defer rows.Close()

	return scanVideos(rows)
}

func (r *videoRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM videos`).Scan(&total); err != nil {
		return 0, db.WrapError(err, "count videos")
	}
	return total, nil
}

// Helper function to scan multiple videos from query results
func scanVideos(rows pgx.Rows) ([]*models.Video, error) {
	var videos []*models.Video

	for rows.Next() {
		video := &models.Video{}
		err := rows.Scan(
			&video.VideoID,
			&video.ChannelID,
			&video.Title,
			&video.Description,
			&video.Tags,
			&video.ThumbnailURL,
			&video.PublishedAt,
			&video.ViewCount,
			&video.LikeCount,
			&video.FavoriteCount,
			&video.CommentCount,
			&video.Duration,
			&video.Definition,
			&video.Caption,
			&video.FirstSeenAt,
			&video.LastHarvestedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate videos: %w", err)
	}

	return videos, nil
}
