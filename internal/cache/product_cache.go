package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/shopwave/ecommerce-backend/internal/models"
)

// ProductCache fronts single-product reads. Misses and cache errors both
// report ok=false so callers fall through to the store.
type ProductCache interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Product, bool)
	Set(ctx context.Context, product *models.Product)
	Invalidate(ctx context.Context, id uuid.UUID)
}

type RedisProductCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ ProductCache = (*RedisProductCache)(nil)

func NewRedisProductCache(client *redis.Client, prefix string, ttl time.Duration) *RedisProductCache {
	return &RedisProductCache{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisProductCache) key(id uuid.UUID) string {
	return r.prefix + ":" + id.String()
}

func (r *RedisProductCache) Get(ctx context.Context, id uuid.UUID) (*models.Product, bool) {
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logrus.WithError(err).WithField("product_id", id).Warn("Product cache read failed")
		}
		return nil, false
	}

	var product models.Product
	if err := json.Unmarshal(data, &product); err != nil {
		logrus.WithError(err).WithField("product_id", id).Warn("Discarding undecodable cached product")
		r.Invalidate(ctx, id)
		return nil, false
	}
	return &product, true
}

func (r *RedisProductCache) Set(ctx context.Context, product *models.Product) {
	data, err := json.Marshal(product)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, r.key(product.ID), data, r.ttl).Err(); err != nil {
		logrus.WithError(err).WithField("product_id", product.ID).Warn("Product cache write failed")
	}
}

func (r *RedisProductCache) Invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		logrus.WithError(err).WithField("product_id", id).Warn("Product cache invalidation failed")
	}
}

// NoopProductCache is used when Redis is disabled.
type NoopProductCache struct{}

func (NoopProductCache) Get(context.Context, uuid.UUID) (*models.Product, bool) { return nil, false }
func (NoopProductCache) Set(context.Context, *models.Product)                   {}
func (NoopProductCache) Invalidate(context.Context, uuid.UUID)                  {}

// NewRedisClient connects and pings so a misconfigured cache fails at startup.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}
