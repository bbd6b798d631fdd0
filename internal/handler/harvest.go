// Package handler wires the operator HTTP API: harvest triggers, table
// browsing, the analytical question catalog and admin operations.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yt-harvest/youtube-warehouse-go/internal/service"
	"github.com/yt-harvest/youtube-warehouse-go/pkg/logger"
)

// TaskEnqueuer enqueues channel harvests for background execution.
type TaskEnqueuer interface {
	EnqueueChannelHarvestBatch(channelIDs []string) error
}

// HarvestHandler exposes the harvest trigger endpoint.
type HarvestHandler struct {
	harvester *service.Harvester
	enqueuer  TaskEnqueuer // nil when the async queue is disabled
}

// NewHarvestHandler creates a harvest handler. The enqueuer may be nil, in
// which case async requests are rejected.
func NewHarvestHandler(harvester *service.Harvester, enqueuer TaskEnqueuer) *HarvestHandler {
	return &HarvestHandler{
		harvester: harvester,
		enqueuer:  enqueuer,
	}
}

type harvestRequest struct {
	ChannelIDs []string `json:"channel_ids" binding:"required,min=1,max=10"`
	Async      bool     `json:"async"`
}

// Harvest handles POST /api/v1/harvest. Synchronous requests run the batch
// inline and return the per-channel reports; async requests enqueue one task
// per channel and return 202.
func (h *HarvestHandler) Harvest(c *gin.Context) {
	var req harvestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "channel_ids must contain 1 to 10 channel IDs"})
		return
	}

	for _, id := range req.ChannelIDs {
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "channel IDs must be non-empty"})
			return
		}
	}

	if req.Async {
		if h.enqueuer == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "async harvesting is not configured"})
			return
		}

		if err := h.enqueuer.EnqueueChannelHarvestBatch(req.ChannelIDs); err != nil {
			logger.Log.Error("failed to enqueue harvest batch", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to enqueue harvest"})
			return
		}

		c.JSON(http.StatusAccepted, gin.H{
			"status":   "queued",
			"channels": len(req.ChannelIDs),
		})
		return
	}

	reports := h.harvester.HarvestBatch(c.Request.Context(), req.ChannelIDs)

	status := http.StatusOK
	for _, r := range reports {
		if r.Status == service.StatusFailed {
			// Partial success still reports every channel's outcome.
			status = http.StatusMultiStatus
			break
		}
	}

	c.JSON(status, gin.H{"reports": reports})
}
