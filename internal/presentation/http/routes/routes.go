package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/bytechef-api/internal/config"
	domainRepo "github.com/sangkips/bytechef-api/internal/domain/repository"
	"github.com/sangkips/bytechef-api/internal/presentation/http/handler"
	"github.com/sangkips/bytechef-api/internal/presentation/http/middleware"
	"github.com/sangkips/bytechef-api/pkg/clock"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Product *handler.ProductHandler
	Sale    *handler.SaleHandler
	Report  *handler.ReportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	Logger          *zap.Logger
	Clock           clock.Clock
	IdempotencyRepo domainRepo.IdempotencyRepository
	// RateLimiter is optional; nil disables rate limiting.
	RateLimiter *middleware.IPRateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		body := gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
			"time":    deps.Clock.Now(),
		}
		if deps.RateLimiter != nil {
			body["rateLimiter"] = deps.RateLimiter.Stats()
		}
		c.JSON(http.StatusOK, body)
	})

	api := router.Group("")
	if deps.RateLimiter != nil {
		api.Use(deps.RateLimiter.Middleware())
	}

	idempotent := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo:   deps.IdempotencyRepo,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	})

	registerProductRoutes(api, h)
	registerSaleRoutes(api, h, idempotent)
	registerReportRoutes(api, h)

	return router
}

func registerProductRoutes(api *gin.RouterGroup, h *Handlers) {
	api.GET("/products", h.Product.List)
}

func registerSaleRoutes(api *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	sales := api.Group("/sales")
	{
		sales.POST("/open", idempotent, h.Sale.Open)
		sales.GET("/daily", h.Sale.ListDaily)
		sales.POST("/daily/sendToMonthly", idempotent, h.Sale.SendToMonthly)
		sales.DELETE("/daily", h.Sale.PurgeDaily)
		sales.GET("/monthly", h.Sale.ListMonthly)
		sales.GET("/:id", h.Sale.Get)
		sales.POST("/:id/close", idempotent, h.Sale.Close)
	}
}

func registerReportRoutes(api *gin.RouterGroup, h *Handlers) {
	reports := api.Group("/reports")
	{
		reports.GET("/daily", h.Report.Daily)
		reports.GET("/monthly", h.Report.Monthly)
		reports.GET("/monthly/export", h.Report.ExportMonthly)
	}
}
