// Package catalog is a Redis read-through cache in front of the catalog repository.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const keyPrefix = "catalog:"

// Source is the store the cache reads through to.
type Source interface {
	ListServices(ctx context.Context, businessID string) ([]*domain.Service, error)
	ListStaff(ctx context.Context, businessID string) ([]*domain.StaffMember, error)
}

type Metrics interface {
	ObserveCache(kind, result string)
}

type Logger interface {
	Warn(format string, v ...interface{})
}

// Cache serves service and staff lists from Redis. Redis failures fall back
// to the source and are only logged.
type Cache struct {
	source  Source
	client  *redis.Client
	ttl     time.Duration
	metrics Metrics
	logger  Logger
}

func New(source Source, client *redis.Client, ttl time.Duration, metrics Metrics, logger Logger) *Cache {
	return &Cache{source: source, client: client, ttl: ttl, metrics: metrics, logger: logger}
}

func (c *Cache) ListServices(ctx context.Context, businessID string) ([]*domain.Service, error) {
	return readThrough(ctx, c, "services", businessID, c.source.ListServices)
}

func (c *Cache) ListStaff(ctx context.Context, businessID string) ([]*domain.StaffMember, error) {
	return readThrough(ctx, c, "staff", businessID, c.source.ListStaff)
}

// Invalidate drops the cached lists of a business.
func (c *Cache) Invalidate(ctx context.Context, businessID string) error {
	return c.client.Del(ctx, key("services", businessID), key("staff", businessID)).Err()
}

func key(kind, businessID string) string {
	return keyPrefix + kind + ":" + businessID
}

func readThrough[T any](
	ctx context.Context,
	c *Cache,
	kind, businessID string,
	load func(context.Context, string) ([]T, error),
) ([]T, error) {
	k := key(kind, businessID)

	data, err := c.client.Get(ctx, k).Bytes()
	switch {
	case err == nil:
		var items []T
		if err := json.Unmarshal(data, &items); err == nil {
			c.observe(kind, "hit")
			return items, nil
		}
		c.warn("CatalogCache: corrupt entry %s dropped", k)
		c.observe(kind, "error")
	case errors.Is(err, redis.Nil):
		c.observe(kind, "miss")
	default:
		c.warn("CatalogCache: get %s: %v", k, err)
		c.observe(kind, "error")
	}

	items, err := load(ctx, businessID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(items); err == nil {
		if err := c.client.Set(ctx, k, data, c.ttl).Err(); err != nil {
			c.warn("CatalogCache: set %s: %v", k, err)
		}
	}
	return items, nil
}

func (c *Cache) observe(kind, result string) {
	if c.metrics != nil {
		c.metrics.ObserveCache(kind, result)
	}
}

func (c *Cache) warn(format string, v ...interface{}) {
	if c.logger != nil {
		c.logger.Warn(format, v...)
	}
}
