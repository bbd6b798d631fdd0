package models

import "time"

// Comment is a top-level comment on a video. Comments are immutable once
// stored: re-harvesting an existing comment ID is a no-op.
type Comment struct {
	CommentID   string    `db:"comment_id" json:"comment_id"`
	VideoID     string    `db:"video_id" json:"video_id"`
	CommentText string    `db:"comment_text" json:"comment_text"`
	AuthorName  string    `db:"author_name" json:"author_name"`
	PublishedAt time.Time `db:"published_at" json:"published_at"`
	FirstSeenAt time.Time `db:"first_seen_at" json:"first_seen_at"`
}
