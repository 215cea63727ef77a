package cache_test

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/infrastructure/cache"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestPriceListCache_SetGetInvalidate(t *testing.T) {
	mr, client := newClient(t)
	c := cache.NewPriceListCache(client, 5*time.Minute)
	ctx := context.Background()

	miss, err := c.Get(ctx, "co-1", "PREMIER")
	require.NoError(t, err)
	assert.Nil(t, miss)

	pl := &entity.PriceList{
		ID: "pl-1", CompanyID: "co-1", Code: "PREMIER", Name: "Premier",
		Multiplier: decimal.RequireFromString("0.8333"),
	}
	require.NoError(t, c.Set(ctx, pl))
	assert.True(t, mr.Exists("pricelist:co-1:PREMIER"))
	assert.Equal(t, 5*time.Minute, mr.TTL("pricelist:co-1:PREMIER"))

	got, err := c.Get(ctx, "co-1", "PREMIER")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Premier", got.Name)
	assert.Equal(t, "0.8333", got.Multiplier.StringFixed(4))

	// Otra empresa no comparte clave
	other, err := c.Get(ctx, "co-2", "PREMIER")
	require.NoError(t, err)
	assert.Nil(t, other)

	require.NoError(t, c.Invalidate(ctx, "co-1", "PREMIER"))
	assert.False(t, mr.Exists("pricelist:co-1:PREMIER"))
}

func TestPriceListCache_Expira(t *testing.T) {
	mr, client := newClient(t)
	c := cache.NewPriceListCache(client, time.Minute)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, &entity.PriceList{CompanyID: "co-1", Code: "NEW", Multiplier: decimal.NewFromInt(1)}))

	mr.FastForward(2 * time.Minute)
	got, err := c.Get(ctx, "co-1", "NEW")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPriceListCache_SinClienteEsPassThrough(t *testing.T) {
	c := cache.NewPriceListCache(nil, time.Minute)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, &entity.PriceList{Code: "X"}))
	got, err := c.Get(ctx, "co", "X")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, c.Invalidate(ctx, "co", "X"))
}

func TestPriceListCache_ValorCorrupto(t *testing.T) {
	mr, client := newClient(t)
	require.NoError(t, mr.Set(cache.Key("co-1", "BAD"), "{no-json"))
	c := cache.NewPriceListCache(client, time.Minute)

	_, err := c.Get(context.Background(), "co-1", "BAD")
	assert.Error(t, err)
}
