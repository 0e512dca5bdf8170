// Package apitest wires the full HTTP stack over an in-memory database.
package apitest

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/bytechef-api/internal/application/service"
	"github.com/sangkips/bytechef-api/internal/config"
	"github.com/sangkips/bytechef-api/internal/infrastructure/repository"
	"github.com/sangkips/bytechef-api/internal/presentation/http/handler"
	"github.com/sangkips/bytechef-api/internal/presentation/http/middleware"
	"github.com/sangkips/bytechef-api/internal/presentation/http/routes"
	"github.com/sangkips/bytechef-api/internal/testutil"
	"github.com/sangkips/bytechef-api/pkg/clock"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

// API is a ready router plus the handles tests need to steer it.
type API struct {
	Router *gin.Engine
	DB     *gorm.DB
	Clock  *clock.Fixed
}

// Option adjusts the router dependencies before Setup runs.
type Option func(*routes.Deps)

// WithRateLimit installs an IP rate limiter with the given burst and no refill to speak of.
func WithRateLimit(burst int) Option {
	return func(d *routes.Deps) {
		rl := middleware.NewIPRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: 0.001,
			BurstSize:         burst,
			CleanupInterval:   middleware.DefaultRateLimiterConfig().CleanupInterval,
			EntryTTL:          middleware.DefaultRateLimiterConfig().EntryTTL,
		})
		d.RateLimiter = rl
	}
}

// New builds the API over a seeded SQLite database and a fixed clock.
func New(t *testing.T, opts ...Option) *API {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewSeededDB(t)
	clk := testutil.NewClock()
	log := zaptest.NewLogger(t)

	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	monthlyRepo := repository.NewMonthlySaleRepository(db)

	handlers := &routes.Handlers{
		Product: handler.NewProductHandler(service.NewCatalogService(productRepo, nil, 0, log)),
		Sale:    handler.NewSaleHandler(service.NewSaleService(saleRepo, productRepo, monthlyRepo, clk, log)),
		Report:  handler.NewReportHandler(service.NewReportService(saleRepo, monthlyRepo, clk)),
	}

	cfg := &config.Config{
		App:  config.AppConfig{Name: "bytechef-api-test", Env: "test"},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
	}
	deps := &routes.Deps{
		Cfg:             cfg,
		Logger:          log,
		Clock:           clk,
		IdempotencyRepo: repository.NewIdempotencyRepository(db),
	}
	for _, opt := range opts {
		opt(deps)
	}
	if deps.RateLimiter != nil {
		t.Cleanup(deps.RateLimiter.Stop)
	}

	return &API{
		Router: routes.Setup(handlers, deps),
		DB:     db,
		Clock:  clk,
	}
}
