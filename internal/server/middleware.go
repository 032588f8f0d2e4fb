package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/slumbersage/gjirafa50/logger"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "RequestID"
	apiKeyHeader    = "api-key"
)

// KeyValidator decides whether an API key is accepted
type KeyValidator interface {
	Valid(key string) bool
}

// RequestID reuses the caller's X-Request-ID or generates one
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)

		c.Next()
	}
}

// RequestLogger logs every request except health checks, with the level
// chosen by the response status
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.Request.URL.Path
		if path == "/health" {
			return
		}

		status := c.Writer.Status()
		var event *zerolog.Event
		var msg string
		switch {
		case status >= 500:
			event, msg = log.Error(), "Internal server error"
		case status >= 400:
			event, msg = log.Warn(), "Client request error"
		default:
			event, msg = log.Debug(), "HTTP request completed"
		}

		event = event.
			Str("request_id", c.GetString(requestIDKey)).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("ip", c.ClientIP()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Int("response_size", c.Writer.Size())

		if c.Request.URL.RawQuery != "" {
			event = event.Str("query", c.Request.URL.RawQuery)
		}
		if logger.IsDebugEnabled() {
			event = event.Str("user_agent", c.Request.UserAgent())
		}
		if len(c.Errors) > 0 {
			event = event.Str("error", c.Errors.String())
		}
		event.Msg(msg)
	}
}

// Recovery turns a panic into a 500 with the usual error body
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error().
			Interface("error", recovered).
			Str("path", c.Request.URL.Path).
			Str("request_id", c.GetString(requestIDKey)).
			Msg("Panic recovered")

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal Server Error"})
	})
}

// APIKeyAuth rejects requests whose api-key header is missing or unknown
func APIKeyAuth(keys KeyValidator, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(apiKeyHeader)
		if !keys.Valid(key) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "Unauthorized access"})
			return
		}

		log.Debug().Str("request_id", c.GetString(requestIDKey)).Msg("API key authenticated")
		c.Next()
	}
}
