package middleware

import (
	"bytes"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/bytechef-api/internal/domain/entity"
	"github.com/sangkips/bytechef-api/internal/domain/repository"
	"github.com/sangkips/bytechef-api/pkg/clock"
	"go.uber.org/zap"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from the key cache
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo   repository.IdempotencyRepository
	Clock  clock.Clock
	Logger *zap.Logger
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response for a repeated Idempotency-Key.
// Requests without the header pass through untouched. Only 2xx responses are
// stored, so a failed request can be retried with the same key.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		if c.Request.Method != "POST" {
			c.Next()
			return
		}

		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" {
			c.Next()
			return
		}

		// The concrete path keeps keys for different sale ids apart
		endpoint := c.Request.Method + " " + c.Request.URL.Path
		ctx := c.Request.Context()

		existing, err := config.Repo.GetByKey(ctx, idempotencyKey, endpoint)
		if err != nil {
			log.Warn("idempotency lookup failed", zap.String("endpoint", endpoint), zap.Error(err))
			c.Next()
			return
		}

		if existing != nil && !existing.IsExpired(config.Clock.Now()) {
			c.Header(IdempotencyReplayedHeader, "true")
			c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
			c.Abort()
			return
		}

		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		// An expired row still holds the unique (key, endpoint) slot
		if existing != nil {
			if _, err := config.Repo.DeleteExpired(ctx, config.Clock.Now()); err != nil {
				log.Warn("idempotency cleanup failed", zap.Error(err))
			}
		}

		now := config.Clock.Now()
		ikey := &entity.IdempotencyKey{
			Key:          idempotencyKey,
			Endpoint:     endpoint,
			ResponseCode: status,
			ResponseBody: blw.body.String(),
			ExpiresAt:    now.Add(IdempotencyKeyTTL),
		}
		if err := config.Repo.Create(ctx, ikey); err != nil {
			log.Warn("idempotency store failed", zap.String("endpoint", endpoint), zap.Error(err))
		}
	}
}
