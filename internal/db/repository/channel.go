package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yt-harvest/youtube-warehouse-go/internal/db"
	"github.com/yt-harvest/youtube-warehouse-go/internal/db/models"
)

// ChannelRepository defines operations for managing harvested channels.
type ChannelRepository interface {
	// Upsert creates a channel or refreshes the mutable columns of an
	// existing one. Name and uploads_playlist_id keep their first-inserted
	// values; only the counters and description are overwritten.
	Upsert(ctx context.Context, channel *models.Channel) error

	// GetByID retrieves a single channel by ID.
	GetByID(ctx context.Context, channelID string) (*models.Channel, error)

	// List retrieves channels ordered by last harvest time.
	List(ctx context.Context, limit, offset int) ([]*models.Channel, error)

	// Count returns the number of stored channels.
	Count(ctx context.Context) (int64, error)
}

type channelRepository struct {
	pool *pgxpool.Pool
}

// NewChannelRepository creates a new ChannelRepository.
func NewChannelRepository(pool *pgxpool.Pool) ChannelRepository {
	return &channelRepository{pool: pool}
}

const channelColumns = `channel_id, name, subscriber_count, view_count, video_count, uploads_playlist_id, description, first_seen_at, last_harvested_at`

func (r *channelRepository) Upsert(ctx context.Context, channel *models.Channel) error {
	query := `
		INSERT INTO channels (channel_id, name, subscriber_count, view_count, video_count, uploads_playlist_id, description, first_seen_at, last_harvested_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		ON CONFLICT (channel_id) DO UPDATE
		SET subscriber_count = EXCLUDED.subscriber_count,
		    view_count = EXCLUDED.view_count,
		    video_count = EXCLUDED.video_count,
		    description = EXCLUDED.description,
		    last_harvested_at = now()
		RETURNING name, uploads_playlist_id, first_seen_at, last_harvested_at
	`

	err := r.pool.QueryRow(ctx, query,
		channel.ChannelID,
		channel.Name,
		channel.SubscriberCount,
		channel.ViewCount,
		channel.VideoCount,
		channel.UploadsPlaylistID,
		channel.Description,
	).Scan(
		&channel.Name,
		&channel.UploadsPlaylistID,
		&channel.FirstSeenAt,
		&channel.LastHarvestedAt,
	)

	if err != nil {
		return db.WrapError(err, "upsert channel")
	}

	return nil
}

func (r *channelRepository) GetByID(ctx context.Context, channelID string) (*models.Channel, error) {
	query := `SELECT ` + channelColumns + ` FROM channels WHERE channel_id = $1`

	channel := &models.Channel{}
	err := r.pool.QueryRow(ctx, query, channelID).Scan(
		&channel.ChannelID,
		&channel.Name,
		&channel.SubscriberCount,
		&channel.ViewCount,
		&channel.VideoCount,
		&channel.UploadsPlaylistID,
		&channel.Description,
		&channel.FirstSeenAt,
		&channel.LastHarvestedAt,
	)

	if err != nil {
		return nil, db.WrapError(err, "get channel by id")
	}

	return channel, nil
}

func (r *channelRepository) List(ctx context.Context, limit, offset int) ([]*models.Channel, error) {
	query := `
		SELECT ` + channelColumns + `
		FROM channels
		ORDER BY last_harvested_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, db.WrapError(err, "list channels")
	}
	defer rows.Close()

	return scanChannels(rows)
}

func (r *channelRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM channels`).Scan(&total); err != nil {
		return 0, db.WrapError(err, "count channels")
	}
	return total, nil
}

// Helper function to scan multiple channels from query results
func scanChannels(rows pgx.Rows) ([]*models.Channel, error) {
	var channels []*models.Channel

	for rows.Next() {
		channel := &models.Channel{}
		err := rows.Scan(
			&channel.ChannelID,
			&channel.Name,
			&channel.SubscriberCount,
			&channel.ViewCount,
			&channel.VideoCount,
			&channel.UploadsPlaylistID,
			&channel.Description,
			&channel.FirstSeenAt,
			&channel.LastHarvestedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan channel: %w", err)
		}
		channels = append(channels, channel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate channels: %w", err)
	}

	return channels, nil
}
