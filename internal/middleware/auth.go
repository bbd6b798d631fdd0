// Package middleware provides HTTP middleware for the operator API.
package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yt-harvest/youtube-warehouse-go/pkg/logger"
)

const (
	headerAPIKey = "X-API-Key"
	headerAuth   = "Authorization"
	bearerPrefix = "Bearer "
)

// APIKeyAuth provides API key authentication middleware.
type APIKeyAuth struct {
	apiKeys []string
}

// NewAPIKeyAuth creates a new API key authentication middleware.
// If no keys are provided, all requests will be rejected.
func NewAPIKeyAuth(apiKeys []string) *APIKeyAuth {
	keys := make([]string, 0, len(apiKeys))
	for _, key := range apiKeys {
		if key != "" {
			keys = append(keys, key)
		}
	}

	return &APIKeyAuth{apiKeys: keys}
}

// Middleware validates the request's API key. Keys are accepted from the
// X-API-Key header or an Authorization: Bearer header, in that order.
func (a *APIKeyAuth) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := a.extractAPIKey(c)

		if !a.isValidAPIKey(apiKey) {
			logger.Log.Warn("unauthorized request - invalid or missing API key",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.String("remote_addr", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Next()
	}
}

func (a *APIKeyAuth) extractAPIKey(c *gin.Context) string {
	if apiKey := c.GetHeader(headerAPIKey); apiKey != "" {
		return apiKey
	}

	authHeader := c.GetHeader(headerAuth)
	if strings.HasPrefix(authHeader, bearerPrefix) {
		return strings.TrimPrefix(authHeader, bearerPrefix)
	}

	return ""
}

// isValidAPIKey uses constant-time comparison to prevent timing attacks.
func (a *APIKeyAuth) isValidAPIKey(providedKey string) bool {
	if providedKey == "" || len(a.apiKeys) == 0 {
		return false
	}

	for _, validKey := range a.apiKeys {
		if subtle.ConstantTimeCompare([]byte(providedKey), []byte(validKey)) == 1 {
			return true
		}
	}

	return false
}
