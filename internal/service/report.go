package service

import (
	"time"

	"github.com/google/uuid"
)

// ChannelStatus is the terminal state of one channel harvest.
type ChannelStatus string

const (
	// StatusDone means the channel and every listed video were processed;
	// individual videos or comment pages may still have been skipped.
	StatusDone ChannelStatus = "DONE"

	// StatusFailed means the channel itself could not be fetched or stored.
	StatusFailed ChannelStatus = "FAILED"
)

// VideoOutcome records what happened to a single listed video. Every
// swallowed failure lands here instead of vanishing.
type VideoOutcome struct {
	VideoID          string `json:"video_id"`
	Stored           bool   `json:"stored"`
	CommentsInserted int    `json:"comments_inserted"`
	SkipReason       string `json:"skip_reason,omitempty"`
	CommentError     string `json:"comment_error,omitempty"`
}

// ChannelReport summarizes one channel harvest run.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type ChannelReport struct {
	RunID            uuid.UUID      `json:"run_id"`
	ChannelID        string         `json:"channel_id"`
	Status           ChannelStatus  `json:"status"`
	Error            string         `json:"error,omitempty"`
	VideosListed     int            `json:"videos_listed"`
	VideosStored     int            `json:"videos_stored"`
	VideosSkipped    int            `json:"videos_skipped"`
	CommentsInserted int            `json:"comments_inserted"`
	Videos           []VideoOutcome `json:"videos,omitempty"`
	StartedAt        time.Time      `json:"started_at"`
	FinishedAt       time.Time      `json:"finished_at"`
}

func newChannelReport(channelID string) *ChannelReport {
	return &ChannelReport{
		RunID:     uuid.New(),
		ChannelID: channelID,
		StartedAt: time.Now().UTC(),
	}
}

func (r *ChannelReport) fail(err error) *ChannelReport {
	r.Status = StatusFailed
	r.Error = err.Error()
	r.FinishedAt = time.Now().UTC()
	return r
}

func (r *ChannelReport) done() *ChannelReport {
	r.Status = StatusDone
	r.FinishedAt = time.Now().UTC()
	return r
}
