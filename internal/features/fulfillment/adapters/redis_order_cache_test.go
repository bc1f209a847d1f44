package adapters

import (
	"context"
	"testing"
	"time"

	"fulfillment-admin/internal/core/cache"
	"fulfillment-admin/internal/features/fulfillment/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupOrderCache(t *testing.T, ttl time.Duration) (*RedisOrderCache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	adapter, err := cache.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })

	return NewRedisOrderCache(adapter, ttl), mr
}

func TestRedisOrderCache_SaveAndGet(t *testing.T) {
	orderCache, _ := setupOrderCache(t, time.Minute)
	ctx := context.Background()

	order := &domain.Order{
		ID:             "ord-1",
		Number:         "SO-10001",
		Status:         domain.OrderStatusProcessing,
		DeliveryMethod: domain.DeliveryMethodHome,
	}

	require.NoError(t, orderCache.Save(ctx, order))

	got, err := orderCache.Get(ctx, "ord-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, order.Number, got.Number)
	assert.Equal(t, domain.OrderStatusProcessing, got.Status)
}

func TestRedisOrderCache_MissReturnsNilNil(t *testing.T) {
	orderCache, _ := setupOrderCache(t, time.Minute)

	got, err := orderCache.Get(context.Background(), "never-saved")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisOrderCache_Invalidate(t *testing.T) {
	orderCache, _ := setupOrderCache(t, time.Minute)
	ctx := context.Background()

	order := &domain.Order{ID: "ord-1", Status: domain.OrderStatusConfirmed}
	require.NoError(t, orderCache.Save(ctx, order))

	require.NoError(t, orderCache.Invalidate(ctx, "ord-1"))

	got, err := orderCache.Get(ctx, "ord-1")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisOrderCache_TTLExpiry(t *testing.T) {
	orderCache, mr := setupOrderCache(t, 30*time.Second)
	ctx := context.Background()

	order := &domain.Order{ID: "ord-1", Status: domain.OrderStatusConfirmed}
	require.NoError(t, orderCache.Save(ctx, order))

	mr.FastForward(31 * time.Second)

	got, err := orderCache.Get(ctx, "ord-1")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisOrderCache_CorruptEntry(t *testing.T) {
	orderCache, mr := setupOrderCache(t, time.Minute)

	require.NoError(t, mr.Set("order_snapshot:ord-1", "not json"))

	got, err := orderCache.Get(context.Background(), "ord-1")
	assert.Error(t, err)
	assert.Nil(t, got)
}
