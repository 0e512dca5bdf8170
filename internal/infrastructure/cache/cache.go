// Package cache keeps short-lived copies of the product catalog.
package cache

import (
	"context"
	"time"

	"github.com/sangkips/bytechef-api/internal/domain/entity"
)

// CatalogCache stores product lists by key
type CatalogCache interface {
	Get(ctx context.Context, key string) ([]entity.Product, bool, error)
	Set(ctx context.Context, key string, products []entity.Product, ttl time.Duration) error
	Close() error
}

// NoopCatalogCache never hits. Used when Redis is not configured.
type NoopCatalogCache struct{}

func (NoopCatalogCache) Get(_ context.Context, _ string) ([]entity.Product, bool, error) {
	return nil, false, nil
}

func (NoopCatalogCache) Set(_ context.Context, _ string, _ []entity.Product, _ time.Duration) error {
	return nil
}

func (NoopCatalogCache) Close() error {
	return nil
}
