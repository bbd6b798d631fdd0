package models

import "time"

// Video is a harvested video belonging to a channel. Tags are stored as a
// single comma-separated string, duration as a zero-padded "HH:MM:SS" string.
// Identity, ownership and publish timestamp never change after first insert;
// the statistics columns are refreshed on every harvest.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Video struct {
	VideoID         string    `db:"video_id" json:"video_id"`
	ChannelID       string    `db:"channel_id" json:"channel_id"`
	Title           string    `db:"title" json:"title"`
	Description     string    `db:"description" json:"description"`
	Tags            string    `db:"tags" json:"tags"`
	ThumbnailURL    string    `db:"thumbnail_url" json:"thumbnail_url"`
	PublishedAt     time.Time `db:"published_at" json:"published_at"`
	ViewCount       int64     `db:"view_count" json:"view_count"`
	LikeCount       int64     `db:"like_count" json:"like_count"`
	FavoriteCount   int64     `db:"favorite_count" json:"favorite_count"`
	CommentCount    int64     `db:"comment_count" json:"comment_count"`
	Duration        string    `db:"duration" json:"duration"`
	Definition      string    `db:"definition" json:"definition"`
	Caption         bool      `db:"caption" json:"caption"`
	FirstSeenAt     time.Time `db:"first_seen_at" json:"first_seen_at"`
	LastHarvestedAt time.Time `db:"last_harvested_at" json:"last_harvested_at"`
}
