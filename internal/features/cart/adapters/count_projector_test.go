package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"foodie-api/internal/core/cache"
	"foodie-api/internal/core/events"
	"foodie-api/internal/features/cart/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCartStore is a mock implementation of CartStore for testing.
type mockCartStore struct {
	items       []domain.CartItem
	returnError error
	listCalls   int
}

// AddItem implements CartStore.
func (m *mockCartStore) AddItem(ctx context.Context, email, phone string, item domain.NewCartItem) (string, error) {
	return "", nil
}

// ListItems implements CartStore.
func (m *mockCartStore) ListItems(ctx context.Context, email string) ([]domain.CartItem, error) {
	m.listCalls++
	if m.returnError != nil {
		return nil, m.returnError
	}
	return m.items, nil
}

// DeleteItem implements CartStore.
func (m *mockCartStore) DeleteItem(ctx context.Context, id string) error {
	return nil
}

func newTestCache(t *testing.T) cache.Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	adapter, err := cache.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })
	return adapter
}

// TestCountProjector_HandleCartMutated verifies the count is projected into the cache.
func TestCountProjector_HandleCartMutated(t *testing.T) {
	store := &mockCartStore{items: []domain.CartItem{{ID: "a"}, {ID: "b"}}}
	c := newTestCache(t)
	projector := NewCountProjector(store, c)

	projector.HandleCartMutated(context.Background(), events.CartMutated{Email: "jane@example.com", At: time.Now()})

	count, err := projector.Count(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	// The cached value serves the read; only the projection listed the store.
	assert.Equal(t, 1, store.listCalls)
}

// TestCountProjector_CountFallback verifies an unprimed projection falls back to the store.
func TestCountProjector_CountFallback(t *testing.T) {
	store := &mockCartStore{items: []domain.CartItem{{ID: "a"}}}
	c := newTestCache(t)
	projector := NewCountProjector(store, c)

	count, err := projector.Count(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, store.listCalls)
}

// TestCountProjector_CountFallbackError verifies store failures surface when nothing is cached.
func TestCountProjector_CountFallbackError(t *testing.T) {
	store := &mockCartStore{returnError: errors.New("down")}
	c := newTestCache(t)
	projector := NewCountProjector(store, c)

	_, err := projector.Count(context.Background(), "jane@example.com")
	assert.Error(t, err)
}

// TestCountProjector_SubscribedToBus verifies end-to-end refresh through the event bus.
func TestCountProjector_SubscribedToBus(t *testing.T) {
	store := &mockCartStore{items: []domain.CartItem{{ID: "a"}, {ID: "b"}, {ID: "c"}}}
	c := newTestCache(t)
	projector := NewCountProjector(store, c)

	bus := events.NewBus()
	bus.SubscribeCartMutated(projector.HandleCartMutated)

	bus.PublishCartMutated(context.Background(), events.CartMutated{Email: "jane@example.com"})

	count, err := projector.Count(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
