package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sangkips/bytechef-api/internal/config"
)

// CORSMiddleware creates a CORS middleware with the provided configuration
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowOrigins:  cfg.AllowedOrigins,
		AllowMethods:  cfg.AllowedMethods,
		AllowHeaders:  cfg.AllowedHeaders,
		ExposeHeaders: []string{"Content-Length", "Content-Type", "Content-Disposition", RequestIDHeader, IdempotencyReplayedHeader},
		MaxAge:        12 * time.Hour,
	}

	// The POS front end runs on the Vite dev server by default
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = []string{"http://localhost:5173"}
	}

	if len(corsConfig.AllowMethods) == 0 {
		corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	}

	if len(corsConfig.AllowHeaders) == 0 {
		corsConfig.AllowHeaders = []string{
			"Accept",
			"Content-Type",
			"Origin",
			RequestIDHeader,
			IdempotencyKeyHeader,
		}
	} else if !contains(corsConfig.AllowHeaders, IdempotencyKeyHeader) {
		corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, IdempotencyKeyHeader)
	}

	return cors.New(corsConfig)
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
