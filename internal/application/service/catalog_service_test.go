package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sangkips/bytechef-api/internal/domain/entity"
	"github.com/sangkips/bytechef-api/internal/infrastructure/repository"
	"github.com/sangkips/bytechef-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type memoryCache struct {
	items map[string][]entity.Product
	gets  int
	fail  bool
}

func (m *memoryCache) Get(_ context.Context, key string) ([]entity.Product, bool, error) {
	m.gets++
	if m.fail {
		return nil, false, errors.New("redis down")
	}
	p, ok := m.items[key]
	return p, ok, nil
}

func (m *memoryCache) Set(_ context.Context, key string, products []entity.Product, _ time.Duration) error {
	if m.fail {
		return errors.New("redis down")
	}
	m.items[key] = products
	return nil
}

func (m *memoryCache) Close() error { return nil }

func TestCatalogServiceCachesByQuery(t *testing.T) {
	db := testutil.NewSeededDB(t)
	mc := &memoryCache{items: map[string][]entity.Product{}}
	svc := NewCatalogService(repository.NewProductRepository(db), mc, time.Minute, zaptest.NewLogger(t))
	ctx := context.Background()

	all, err := svc.ListProducts(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Contains(t, mc.items, "all")

	// served from cache even after the table changes
	require.NoError(t, db.Where("1 = 1").Delete(&entity.Product{}).Error)
	cached, err := svc.ListProducts(ctx, "")
	require.NoError(t, err)
	assert.Len(t, cached, 3)

	_, err = svc.ListProducts(ctx, "  Lata ")
	require.NoError(t, err)
	assert.Contains(t, mc.items, "search:lata")
}

func TestCatalogServiceFallsBackWhenCacheFails(t *testing.T) {
	db := testutil.NewSeededDB(t)
	mc := &memoryCache{items: map[string][]entity.Product{}, fail: true}
	svc := NewCatalogService(repository.NewProductRepository(db), mc, time.Minute, zaptest.NewLogger(t))

	products, err := svc.ListProducts(context.Background(), "marmitex")
	require.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, 1, mc.gets)
}
