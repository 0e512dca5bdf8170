package service

import (
	"context"
	"strings"
	"time"

	"github.com/sangkips/bytechef-api/internal/domain/entity"
	"github.com/sangkips/bytechef-api/internal/domain/repository"
	"github.com/sangkips/bytechef-api/internal/infrastructure/cache"
	"go.uber.org/zap"
)

// CatalogService serves the read-only product catalog
type CatalogService struct {
	productRepo repository.ProductRepository
	cache       cache.CatalogCache
	ttl         time.Duration
	logger      *zap.Logger
}

// NewCatalogService creates a new catalog service. A nil cache disables caching.
func NewCatalogService(
	productRepo repository.ProductRepository,
	catalogCache cache.CatalogCache,
	ttl time.Duration,
	logger *zap.Logger,
) *CatalogService {
	if catalogCache == nil {
		catalogCache = cache.NoopCatalogCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{
		productRepo: productRepo,
		cache:       catalogCache,
		ttl:         ttl,
		logger:      logger,
	}
}

// ListProducts returns the catalog sorted by name, optionally filtered by search.
// Cache failures are logged and fall through to the database.
func (s *CatalogService) ListProducts(ctx context.Context, search string) ([]entity.Product, error) {
	search = strings.ToLower(strings.TrimSpace(search))
	key := "all"
	if search != "" {
		key = "search:" + search
	}

	products, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
	}
	if ok {
		return products, nil
	}

	products, err = s.productRepo.List(ctx, &repository.ProductFilterParams{Search: search})
	if err != nil {
		return nil, err
	}

	if s.ttl > 0 {
		if err := s.cache.Set(ctx, key, products, s.ttl); err != nil {
			s.logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return products, nil
}
