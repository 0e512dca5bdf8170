package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/bytechef-api/internal/application/service"
	"github.com/sangkips/bytechef-api/internal/config"
	"github.com/sangkips/bytechef-api/internal/infrastructure/cache"
	"github.com/sangkips/bytechef-api/internal/infrastructure/database"
	"github.com/sangkips/bytechef-api/internal/infrastructure/repository"
	"github.com/sangkips/bytechef-api/internal/presentation/http/handler"
	"github.com/sangkips/bytechef-api/internal/presentation/http/middleware"
	"github.com/sangkips/bytechef-api/internal/presentation/http/routes"
	"github.com/sangkips/bytechef-api/pkg/clock"
	"github.com/sangkips/bytechef-api/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zlog, err := logger.New(cfg.App.IsProduction(), cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.App.EnvFile != "" {
		zlog.Info("loaded env file", zap.String("path", cfg.App.EnvFile))
	}

	loc, err := cfg.App.Location()
	if err != nil {
		zlog.Warn("unknown time zone, using UTC", zap.String("timezone", cfg.App.Timezone), zap.Error(err))
	}
	clk := clock.NewSystem(loc)

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, zlog)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := database.AutoMigrate(db, zlog); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	monthlyRepo := repository.NewMonthlySaleRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	ctx := context.Background()
	if err := database.SeedDefaultData(ctx, productRepo, zlog); err != nil {
		zlog.Warn("failed to seed default data", zap.Error(err))
	}

	if removed, err := idempotencyRepo.DeleteExpired(ctx, clk.Now()); err != nil {
		zlog.Warn("failed to purge expired idempotency keys", zap.Error(err))
	} else if removed > 0 {
		zlog.Info("purged expired idempotency keys", zap.Int64("count", removed))
	}

	catalogCache := newCatalogCache(ctx, cfg, zlog)
	defer func() { _ = catalogCache.Close() }()

	// Initialize services
	catalogService := service.NewCatalogService(productRepo, catalogCache, cfg.Redis.CacheTTL, zlog)
	saleService := service.NewSaleService(saleRepo, productRepo, monthlyRepo, clk, zlog)
	reportService := service.NewReportService(saleRepo, monthlyRepo, clk)

	handlers := &routes.Handlers{
		Product: handler.NewProductHandler(catalogService),
		Sale:    handler.NewSaleHandler(saleService),
		Report:  handler.NewReportHandler(reportService),
	}

	rateLimiter := middleware.NewIPRateLimiter(
		middleware.RateLimiterConfigFrom(cfg.RateLimit.Requests, cfg.RateLimit.Duration),
	)
	defer rateLimiter.Stop()

	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		Logger:          zlog,
		Clock:           clk,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
	})

	port := cfg.App.Port
	if port == "" {
		port = "3001"
	}

	zlog.Info("starting server",
		zap.String("service", cfg.App.Name),
		zap.String("port", port),
		zap.String("env", cfg.App.Env),
		zap.String("timezone", loc.String()),
	)

	if err := router.Run(":" + port); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}

// newCatalogCache connects to Redis when REDIS_ADDR is set and reachable,
// otherwise the catalog is served straight from the database.
func newCatalogCache(ctx context.Context, cfg *config.Config, zlog *zap.Logger) cache.CatalogCache {
	if cfg.Redis.Addr == "" {
		return cache.NoopCatalogCache{}
	}

	redisCache := cache.NewRedisCatalogCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := redisCache.Ping(pingCtx); err != nil {
		zlog.Warn("redis unavailable, catalog cache disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		_ = redisCache.Close()
		return cache.NoopCatalogCache{}
	}

	zlog.Info("catalog cache enabled", zap.String("addr", cfg.Redis.Addr), zap.Duration("ttl", cfg.Redis.CacheTTL))
	return redisCache
}
