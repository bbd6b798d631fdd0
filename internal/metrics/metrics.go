// Package metrics exposes the Prometheus instrumentation of the harvester.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APICalls counts Data API requests by resource (channel, playlist,
	// video, comment).
	APICalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "harvest_api_calls_total",
		Help: "YouTube Data API calls issued, by resource.",
	}, []string{"resource"})

	// ChannelsHarvested counts channels that reached the done state.
	ChannelsHarvested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "harvest_channels_total",
		Help: "Channels harvested to completion.",
	})

	// HarvestFailures counts channels that ended in the failed state.
	HarvestFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "harvest_failures_total",
		Help: "Channel harvests that failed.",
	})

	// VideosUpserted counts stored video rows (inserts and refreshes).
	VideosUpserted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "harvest_videos_upserted_total",
		Help: "Video records upserted.",
	})

	// CommentsInserted counts newly inserted comment rows; replays of known
	// comment IDs are not counted.
	CommentsInserted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "harvest_comments_inserted_total",
		Help: "Comment records inserted.",
	})
)
