package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yt-harvest/youtube-warehouse-go/internal/db/repository"
	"github.com/yt-harvest/youtube-warehouse-go/pkg/logger"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// TablesHandler exposes paginated read access to the warehouse tables.
type TablesHandler struct {
	channels repository.ChannelRepository
	videos   repository.VideoRepository
	comments repository.CommentRepository
}

// NewTablesHandler creates a tables handler over the three repositories.
func NewTablesHandler(
	channels repository.ChannelRepository,
	videos repository.VideoRepository,
	comments repository.CommentRepository,
) *TablesHandler {
	return &TablesHandler{
		channels: channels,
		videos:   videos,
		comments: comments,
	}
}

// Get handles GET /api/v1/tables/:table with ?limit= and ?offset=.
func (h *TablesHandler) Get(c *gin.Context) {
	limit, offset, ok := pagination(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	table := c.Param("table")

	var (
		rows  interface{}
		total int64
		err   error
	)

	switch table {
	case "channels":
		if rows, err = h.channels.List(ctx, limit, offset); err == nil {
			total, err = h.channels.Count(ctx)
		}
	case "videos":
		if rows, err = h.videos.List(ctx, limit, offset); err == nil {
			total, err = h.videos.Count(ctx)
		}
	case "comments":
		if rows, err = h.comments.List(ctx, limit, offset); err == nil {
			total, err = h.comments.Count(ctx)
		}
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown table: " + table})
		return
	}

	if err != nil {
		logger.Log.Error("failed to read table",
			zap.String("table", table),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read table"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"table":  table,
		"total":  total,
		"limit":  limit,
		"offset": offset,
		"rows":   rows,
	})
}

func pagination(c *gin.Context) (limit, offset int, ok bool) {
	limit = defaultPageSize
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxPageSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 500"})
			return 0, 0, false
		}
		limit = n
	}

	if raw := c.Query("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "offset must be non-negative"})
			return 0, 0, false
		}
		offset = n
	}

	return limit, offset, true
}
