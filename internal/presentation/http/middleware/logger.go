package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// RequestIDHeader carries the per-request correlation id
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// LoggerMiddleware creates a structured access log middleware
func LoggerMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Generate request ID if not present
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(requestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}

		for _, e := range c.Errors {
			log.Error("request error", append(fields, zap.Error(e.Err))...)
		}

		log.Info("request", fields...)
	}
}

// GetRequestID returns the request id assigned by LoggerMiddleware
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
