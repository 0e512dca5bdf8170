package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/sangkips/bytechef-api/internal/domain/entity"
)

const keyPrefix = "bytechef:catalog:"

type RedisCatalogCache struct {
	client *redis.Client
}

func NewRedisCatalogCache(addr string, password string, db int) *RedisCatalogCache {
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: 2 * time.Second,
	})

	return &RedisCatalogCache{client: client}
}

func (c *RedisCatalogCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCatalogCache) Close() error {
	return c.client.Close()
}

func (c *RedisCatalogCache) Get(ctx context.Context, key string) ([]entity.Product, bool, error) {
	val, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var products []entity.Product
	if err := json.Unmarshal(val, &products); err != nil {
		return nil, false, err
	}
	return products, true, nil
}

func (c *RedisCatalogCache) Set(ctx context.Context, key string, products []entity.Product, ttl time.Duration) error {
	if products == nil {
		return nil
	}
	payload, err := json.Marshal(products)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, keyPrefix+key, payload, ttl).Err()
}
