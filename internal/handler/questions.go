package handler

import (
	"encoding/csv"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/yt-harvest/youtube-warehouse-go/internal/query"
	"github.com/yt-harvest/youtube-warehouse-go/pkg/logger"
)

// QuestionsHandler serves the fixed analytical question catalog.
type QuestionsHandler struct {
	pool *pgxpool.Pool
}

// NewQuestionsHandler creates a questions handler over the warehouse pool.
func NewQuestionsHandler(pool *pgxpool.Pool) *QuestionsHandler {
	return &QuestionsHandler{pool: pool}
}

// List handles GET /api/v1/questions.
func (h *QuestionsHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"questions": query.List()})
}

// Run handles GET /api/v1/questions/:key. Pass ?format=csv for a CSV
// download instead of JSON.
func (h *QuestionsHandler) Run(c *gin.Context) {
	key := c.Param("key")

	result, err := query.Run(c.Request.Context(), h.pool, key)
	if err != nil {
		if query.IsUnknownQuestion(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown question: " + key})
			return
		}
		logger.Log.Error("failed to run question",
			zap.String("key", key),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to run question"})
		return
	}

	if c.Query("format") == "csv" {
		h.writeCSV(c, key, result)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"key":     key,
		"columns": result.Columns,
		"rows":    result.Rows,
	})
}

func (h *QuestionsHandler) writeCSV(c *gin.Context, key string, result *query.Result) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+key+`.csv"`)
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	if err := w.Write(result.Columns); err != nil {
		logger.Log.Error("failed to write CSV header", zap.Error(err))
		return
	}
	for _, row := range result.Rows {
		if err := w.Write(row); err != nil {
			logger.Log.Error("failed to write CSV row", zap.Error(err))
			return
		}
	}
	w.Flush()
}
