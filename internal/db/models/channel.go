// Package models contains the persisted entity types of the warehouse.
package models

import "time"

// Channel is a harvested YouTube channel. The channel ID and uploads playlist
// ID are immutable after first insert; the counters and description are
// refreshed on every harvest.
type Channel struct {
	ChannelID         string    `db:"channel_id" json:"channel_id"`
	Name              string    `db:"name" json:"name"`
	SubscriberCount   int64     `db:"subscriber_count" json:"subscriber_count"`
	ViewCount         int64     `db:"view_count" json:"view_count"`
	VideoCount        int64     `db:"video_count" json:"video_count"`
	UploadsPlaylistID string    `db:"uploads_playlist_id" json:"uploads_playlist_id"`
	Description       string    `db:"description" json:"description"`
	FirstSeenAt       time.Time `db:"first_seen_at" json:"first_seen_at"`
	LastHarvestedAt   time.Time `db:"last_harvested_at" json:"last_harvested_at"`
}
