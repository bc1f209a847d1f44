package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fulfillment-admin/internal/core/cache"
	"fulfillment-admin/internal/features/fulfillment/domain"
)

const orderCacheKeyPrefix = "order_snapshot:"

// RedisOrderCache implements ports.OrderCache on top of the core cache port.
// Snapshots are short-lived by TTL and dropped eagerly after every dispatched
// action, so a stale view never survives a state change this service caused.
type RedisOrderCache struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewRedisOrderCache creates a new RedisOrderCache with the given TTL.
func NewRedisOrderCache(c cache.Cache, ttl time.Duration) *RedisOrderCache {
	return &RedisOrderCache{
		cache: c,
		ttl:   ttl,
	}
}

// Get retrieves a cached order snapshot. A miss is reported as (nil, nil).
func (r *RedisOrderCache) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	data, err := r.cache.Get(ctx, orderCacheKeyPrefix+orderID)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get order snapshot from cache: %w", err)
	}

	var order domain.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order snapshot: %w", err)
	}

	return &order, nil
}

// Save stores an order snapshot under the configured TTL.
func (r *RedisOrderCache) Save(ctx context.Context, order *domain.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to marshal order snapshot: %w", err)
	}

	if err := r.cache.Set(ctx, orderCacheKeyPrefix+order.ID, data, r.ttl); err != nil {
		return fmt.Errorf("failed to save order snapshot to cache: %w", err)
	}

	return nil
}

// Invalidate drops the cached snapshot for one order.
func (r *RedisOrderCache) Invalidate(ctx context.Context, orderID string) error {
	if err := r.cache.Delete(ctx, orderCacheKeyPrefix+orderID); err != nil {
		return fmt.Errorf("failed to invalidate order snapshot: %w", err)
	}
	return nil
}
