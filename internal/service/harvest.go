// Package service contains the ingestion orchestrator and its collaborators.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/yt-harvest/youtube-warehouse-go/internal/db/models"
	"github.com/yt-harvest/youtube-warehouse-go/internal/db/repository"
	"github.com/yt-harvest/youtube-warehouse-go/internal/metrics"
	"github.com/yt-harvest/youtube-warehouse-go/internal/normalize"
	"github.com/yt-harvest/youtube-warehouse-go/internal/service/youtube"
	"github.com/yt-harvest/youtube-warehouse-go/pkg/logger"
)

// DataAPI is the slice of the YouTube client the harvester needs.
type DataAPI interface {
	FetchChannel(ctx context.Context, channelID string) (*youtube.ChannelPayload, error)
	FetchPlaylistPage(ctx context.Context, playlistID, pageToken string) ([]string, string, error)
	FetchVideo(ctx context.Context, videoID string) (*youtube.VideoPayload, error)
	FetchCommentPage(ctx context.Context, videoID, pageToken string, pageSize int64) ([]youtube.CommentPayload, string, error)
}

// ReportPublisher receives the report of every finished channel harvest.
type ReportPublisher interface {
	PublishReport(ctx context.Context, report *ChannelReport) error
}

// HarvesterConfig holds ingestion behavior knobs.
type HarvesterConfig struct {
	// MaxAttempts bounds retries of transient API failures per call.
	MaxAttempts int
	// MaxBackoff caps the exponential backoff interval.
	MaxBackoff time.Duration
	// CommentPageSize is the comment-thread page size (1..100).
	CommentPageSize int64
	// CommentsEnabled toggles the comment sub-step entirely.
	CommentsEnabled bool
}

// Harvester drives the ingestion pipeline: channel record, uploads playlist,
// then every video with its comments. Channels passed to HarvestBatch are
// processed strictly sequentially and independently: one channel's failure
// never blocks the next.
type Harvester struct {
	api       DataAPI
	channels  repository.ChannelRepository
	videos    repository.VideoRepository
	comments  repository.CommentRepository
	publisher ReportPublisher // optional
	cfg       HarvesterConfig
}

// NewHarvester creates a Harvester over the given API client and repositories.
func NewHarvester(
	api DataAPI,
	channels repository.ChannelRepository,
	videos repository.VideoRepository,
	comments repository.CommentRepository,
	cfg HarvesterConfig,
) *Harvester {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 4
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = 30 * time.Second
	}
	if cfg.CommentPageSize <= 0 || cfg.CommentPageSize > 100 {
		cfg.CommentPageSize = 100
	}

	return &Harvester{
		api:      api,
		channels: channels,
		videos:   videos,
		comments: comments,
		cfg:      cfg,
	}
}

// SetReportPublisher attaches an optional publisher for finished reports.
func (h *Harvester) SetReportPublisher(publisher ReportPublisher) {
	h.publisher = publisher
}

// HarvestBatch ingests the given channel IDs one after another and returns a
// report per channel.
func (h *Harvester) HarvestBatch(ctx context.Context, channelIDs []string) []*ChannelReport {
	reports := make([]*ChannelReport, 0, len(channelIDs))

	for _, channelID := range channelIDs {
		report := h.HarvestChannel(ctx, channelID)
		reports = append(reports, report)
	}

	return reports
}

// HarvestChannel ingests one channel: fetch and store the channel record,
// list its uploads playlist exhaustively, then fetch/normalize/upsert every
// video and collect its comments. Per-video failures are recorded in the
// report and skipped; a channel with zero videos still completes as done.
func (h *Harvester) HarvestChannel(ctx context.Context, channelID string) *ChannelReport {
	report := newChannelReport(channelID)

	log := logger.Log.With(
		zap.String("channel_id", channelID),
		zap.String("run_id", report.RunID.String()),
	)
	log.Info("harvest started")

	channel, err := h.fetchAndStoreChannel(ctx, channelID)
	if err != nil {
		log.Error("harvest failed", zap.Error(err))
		metrics.HarvestFailures.Inc()
		return h.finish(ctx, report.fail(err))
	}

	videoIDs, err := h.listUploads(ctx, channel.UploadsPlaylistID)
	if err != nil {
		log.Error("harvest failed listing uploads", zap.Error(err))
		metrics.HarvestFailures.Inc()
		return h.finish(ctx, report.fail(err))
	}

	report.VideosListed = len(videoIDs)
	if len(videoIDs) == 0 {
		// A channel without uploads is a valid, complete harvest.
		log.Info("harvest done, channel has no videos")
		metrics.ChannelsHarvested.Inc()
		return h.finish(ctx, report.done())
	}

	for i, videoID := range videoIDs {
		outcome := h.processVideo(ctx, videoID)
		report.Videos = append(report.Videos, outcome)

		if outcome.Stored {
			report.VideosStored++
		} else {
			report.VideosSkipped++
			log.Warn("video skipped",
				zap.String("video_id", videoID),
				zap.String("reason", outcome.SkipReason),
			)
		}
		report.CommentsInserted += outcome.CommentsInserted

		log.Debug("video processed",
			zap.String("video_id", videoID),
			zap.Int("progress", i+1),
			zap.Int("total", len(videoIDs)),
		)
	}

	log.Info("harvest done",
		zap.Int("videos_stored", report.VideosStored),
		zap.Int("videos_skipped", report.VideosSkipped),
		zap.Int("comments_inserted", report.CommentsInserted),
	)
	metrics.ChannelsHarvested.Inc()

	return h.finish(ctx, report.done())
}

func (h *Harvester) fetchAndStoreChannel(ctx context.Context, channelID string) (*models.Channel, error) {
	var payload *youtube.ChannelPayload

	err := h.withRetry(ctx, func() error {
		metrics.APICalls.WithLabelValues("channel").Inc()
		var ferr error
		payload, ferr = h.api.FetchChannel(ctx, channelID)
		return ferr
	})
	if err != nil {
		return nil, fmt.Errorf("fetch channel: %w", err)
	}

	channel, err := normalize.Channel(payload)
	if err != nil {
		return nil, fmt.Errorf("normalize channel: %w", err)
	}

	if err := h.channels.Upsert(ctx, channel); err != nil {
		return nil, fmt.Errorf("store channel: %w", err)
	}

	return channel, nil
}

func (h *Harvester) listUploads(ctx context.Context, playlistID string) ([]string, error) {
	if playlistID == "" {
		return nil, nil
	}

	videoIDs, err := youtube.CollectPages(ctx, func(ctx context.Context, token string) ([]string, string, error) {
		var (
			page []string
			next string
		)
		err := h.withRetry(ctx, func() error {
			metrics.APICalls.WithLabelValues("playlist").Inc()
			var ferr error
			page, next, ferr = h.api.FetchPlaylistPage(ctx, playlistID, token)
			return ferr
		})
		return page, next, err
	})
	if err != nil {
		return nil, fmt.Errorf("list uploads playlist: %w", err)
	}

	return videoIDs, nil
}

// processVideo never returns an error: failures become the outcome's skip
// reason so the video loop always advances.
func (h *Harvester) processVideo(ctx context.Context, videoID string) VideoOutcome {
	outcome := VideoOutcome{VideoID: videoID}

	var payload *youtube.VideoPayload
	err := h.withRetry(ctx, func() error {
		metrics.APICalls.WithLabelValues("video").Inc()
		var ferr error
		payload, ferr = h.api.FetchVideo(ctx, videoID)
		return ferr
	})
	if err != nil {
		outcome.SkipReason = fmt.Sprintf("fetch video: %v", err)
		return outcome
	}

	video, err := normalize.Video(payload)
	if err != nil {
		outcome.SkipReason = fmt.Sprintf("normalize video: %v", err)
		return outcome
	}

	if err := h.videos.Upsert(ctx, video); err != nil {
		outcome.SkipReason = fmt.Sprintf("store video: %v", err)
		return outcome
	}

	outcome.Stored = true
	metrics.VideosUpserted.Inc()

	if h.cfg.CommentsEnabled {
		inserted, err := h.collectComments(ctx, videoID)
		outcome.CommentsInserted = inserted
		if err != nil {
			// Best effort: a broken comment branch never sinks the video.
			outcome.CommentError = err.Error()
		}
	}

	return outcome
}

func (h *Harvester) collectComments(ctx context.Context, videoID string) (int, error) {
	payloads, err := youtube.CollectPages(ctx, func(ctx context.Context, token string) ([]youtube.CommentPayload, string, error) {
		var (
			page []youtube.CommentPayload
			next string
		)
		err := h.withRetry(ctx, func() error {
			metrics.APICalls.WithLabelValues("comment").Inc()
			var ferr error
			page, next, ferr = h.api.FetchCommentPage(ctx, videoID, token, h.cfg.CommentPageSize)
			return ferr
		})
		return page, next, err
	})
	if err != nil {
		if youtube.IsNotFound(err) {
			// Comments disabled, nothing to collect.
			return 0, nil
		}
		return 0, fmt.Errorf("collect comments: %w", err)
	}

	inserted := 0
	for _, payload := range payloads {
		comment, err := normalize.Comment(&payload)
		if err != nil {
			logger.Log.Warn("comment skipped",
				zap.String("video_id", videoID),
				zap.String("comment_id", payload.ID),
				zap.Error(err),
			)
			continue
		}

		ok, err := h.comments.InsertIfAbsent(ctx, comment)
		if err != nil {
			return inserted, fmt.Errorf("store comment %s: %w", comment.CommentID, err)
		}
		if ok {
			inserted++
			metrics.CommentsInserted.Inc()
		}
	}

	return inserted, nil
}

// withRetry retries transient API failures with bounded exponential backoff.
// Not-found and malformed responses are permanent and returned immediately.
func (h *Harvester) withRetry(ctx context.Context, op func() error) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxInterval = h.cfg.MaxBackoff

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(h.cfg.MaxAttempts-1)), ctx)

	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}
		if youtube.IsTransient(err) {
			return err
		}
		return backoff.Permanent(err)
	}, policy)
}

// finish publishes the report when a publisher is attached. Publishing is
// best effort; the report is returned either way.
func (h *Harvester) finish(ctx context.Context, report *ChannelReport) *ChannelReport {
	if h.publisher != nil {
		if err := h.publisher.PublishReport(ctx, report); err != nil {
			logger.Log.Warn("failed to publish harvest report",
				zap.String("channel_id", report.ChannelID),
				zap.Error(err),
			)
		}
	}

	return report
}
