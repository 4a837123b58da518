package adapters

import (
	"context"
	"testing"

	"foodie-api/internal/core/cache"
	"foodie-api/internal/features/checkout/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *RedisDeliveryRepo {
	t.Helper()
	mr := miniredis.RunT(t)

	c, err := cache.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	return NewRedisDeliveryRepo(c)
}

// TestRedisDeliveryRepo_SaveGet verifies the round trip.
func TestRedisDeliveryRepo_SaveGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	details := domain.DeliveryDetails{
		RecipientName: "Jane Doe",
		Phone:         "+919876543210",
		AddressText:   "12 MG Road",
		AddressKind:   domain.AddressHome,
		Landmark:      "Near the park",
	}
	require.NoError(t, repo.Save(ctx, "jane@example.com", details))

	got, err := repo.Get(ctx, "jane@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, details, *got)
}

// TestRedisDeliveryRepo_Get_Missing verifies absent details return nil.
func TestRedisDeliveryRepo_Get_Missing(t *testing.T) {
	repo := newTestRepo(t)

	got, err := repo.Get(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

// TestRedisDeliveryRepo_Get_BackendDown verifies an outage surfaces as an
// error instead of reading as "nothing saved".
func TestRedisDeliveryRepo_Get_BackendDown(t *testing.T) {
	mr := miniredis.RunT(t)

	c, err := cache.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	repo := NewRedisDeliveryRepo(c)
	mr.Close()

	_, err = repo.Get(context.Background(), "jane@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load delivery details")
}

// TestRedisDeliveryRepo_Save_Replaces verifies a second save overwrites.
func TestRedisDeliveryRepo_Save_Replaces(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "jane@example.com", domain.DeliveryDetails{
		RecipientName: "Jane Doe", Phone: "1", AddressText: "Old address", AddressKind: domain.AddressHome,
	}))
	require.NoError(t, repo.Save(ctx, "jane@example.com", domain.DeliveryDetails{
		RecipientName: "Jane Doe", Phone: "1", AddressText: "New address", AddressKind: domain.AddressWork,
	}))

	got, err := repo.Get(ctx, "jane@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "New address", got.AddressText)
	assert.Equal(t, domain.AddressWork, got.AddressKind)
}

// TestRedisDeliveryRepo_Clear verifies deletion and that clearing twice
// is harmless.
func TestRedisDeliveryRepo_Clear(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "jane@example.com", domain.DeliveryDetails{
		RecipientName: "Jane Doe", Phone: "1", AddressText: "12 MG Road",
	}))

	require.NoError(t, repo.Clear(ctx, "jane@example.com"))
	require.NoError(t, repo.Clear(ctx, "jane@example.com"))

	got, err := repo.Get(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}
