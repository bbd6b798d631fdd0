package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yt-harvest/youtube-warehouse-go/internal/db/repository"
	"github.com/yt-harvest/youtube-warehouse-go/pkg/logger"
)

// AdminHandler exposes destructive warehouse operations.
type AdminHandler struct {
	admin repository.AdminRepository
}

// NewAdminHandler creates an admin handler.
func NewAdminHandler(admin repository.AdminRepository) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// Purge handles POST /api/v1/purge. It empties comments, videos and
// channels in one transaction; the request must confirm explicitly.
func (h *AdminHandler) Purge(c *gin.Context) {
	var req struct {
		Confirm bool `json:"confirm"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !req.Confirm {
		c.JSON(http.StatusBadRequest, gin.H{"error": "purge requires {\"confirm\": true}"})
		return
	}

	if err := h.admin.PurgeAll(c.Request.Context()); err != nil {
		logger.Log.Error("failed to purge warehouse", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to purge warehouse"})
		return
	}

	logger.Log.Warn("warehouse purged", zap.String("remote_addr", c.ClientIP()))
	c.JSON(http.StatusOK, gin.H{"status": "purged"})
}
