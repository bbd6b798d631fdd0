package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func newHarvestRouter(h *HarvestHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/v1/harvest", h.Harvest)
	return router
}

func TestHarvestHandler_Validation(t *testing.T) {
	t.Parallel()

	h := NewHarvestHandler(nil, nil)
	router := newHarvestRouter(h)

	t.Run("missing channel_ids", func(t *testing.T) {
		t.Parallel()
		w := postJSON(router, "/api/v1/harvest", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("empty channel_ids", func(t *testing.T) {
		t.Parallel()
		w := postJSON(router, "/api/v1/harvest", `{"channel_ids": []}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("too many channel_ids", func(t *testing.T) {
		t.Parallel()
		ids := `"a","b","c","d","e","f","g","h","i","j","k"`
		w := postJSON(router, "/api/v1/harvest", `{"channel_ids": [`+ids+`]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("blank channel id", func(t *testing.T) {
		t.Parallel()
		w := postJSON(router, "/api/v1/harvest", `{"channel_ids": ["UC_ok", ""]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()
		w := postJSON(router, "/api/v1/harvest", `{"channel_ids": "UC_ok"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("async without a queue is unavailable", func(t *testing.T) {
		t.Parallel()
		w := postJSON(router, "/api/v1/harvest", `{"channel_ids": ["UC_ok"], "async": true}`)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestTablesHandler_Validation(t *testing.T) {
	t.Parallel()

	gin.SetMode(gin.TestMode)
	h := NewTablesHandler(nil, nil, nil)
	router := gin.New()
	router.GET("/api/v1/tables/:table", h.Get)

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("unknown table", func(t *testing.T) {
		t.Parallel()
		w := get("/api/v1/tables/users")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("negative offset", func(t *testing.T) {
		t.Parallel()
		w := get("/api/v1/tables/channels?offset=-1")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("zero limit", func(t *testing.T) {
		t.Parallel()
		w := get("/api/v1/tables/channels?limit=0")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("oversized limit", func(t *testing.T) {
		t.Parallel()
		w := get("/api/v1/tables/channels?limit=10000")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non-numeric limit", func(t *testing.T) {
		t.Parallel()
		w := get("/api/v1/tables/channels?limit=lots")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
