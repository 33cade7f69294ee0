package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the request identifier in both directions.
	RequestIDHeader = "X-Request-ID"
	// RequestIDContextKey is a gin context key for the request identifier.
	RequestIDContextKey = "requestID"
)

// RequestID reuses the caller's X-Request-ID or generates a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDContextKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestLogger logs information about incoming requests using slog.
// Errors attached by handlers are logged at error level for 5xx responses.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		attrs := []any{
			slog.String("request_id", c.GetString(RequestIDContextKey)),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("latency", latency),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("error", c.Errors.String()))
		}

		if status >= 500 {
			logger.Error("http request", attrs...)
			return
		}
		logger.Info("http request", attrs...)
	}
}
