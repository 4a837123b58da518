package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodie-api/internal/core/events"
	"foodie-api/internal/features/cart/domain"
	"foodie-api/internal/features/cart/ports"
)

// ErrStoreUnavailable is returned when the external cart store fails.
// Entered state is preserved; the caller should surface a retryable error.
var ErrStoreUnavailable = errors.New("cart store unavailable")

// CartService handles the business logic for cart rows. Every mutation
// publishes a CartMutated event so listeners (e.g. the header badge
// projection) can refresh without an ambient update counter.
type CartService struct {
	// store is the external cart store.
	store ports.CartStore
	// bus carries cart mutation events.
	bus *events.Bus
	// now supplies event timestamps; injectable for tests.
	now func() time.Time
}

// NewCartService creates a new CartService.
func NewCartService(store ports.CartStore, bus *events.Bus) *CartService {
	return &CartService{
		store: store,
		bus:   bus,
		now:   time.Now,
	}
}

// AddItem appends a new row to the user's cart. No quantity merging is
// performed: adding the same product twice yields two rows.
func (s *CartService) AddItem(ctx context.Context, email, phone string, item domain.NewCartItem) (string, error) {
	id, err := s.store.AddItem(ctx, email, phone, item)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	s.bus.PublishCartMutated(ctx, events.CartMutated{Email: email, At: s.now()})
	return id, nil
}

// ListItems returns all rows in the user's cart.
func (s *CartService) ListItems(ctx context.Context, email string) ([]domain.CartItem, error) {
	items, err := s.store.ListItems(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return items, nil
}

// DeleteItem removes a single row from the user's cart.
func (s *CartService) DeleteItem(ctx context.Context, email, id string) error {
	if err := s.store.DeleteItem(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	s.bus.PublishCartMutated(ctx, events.CartMutated{Email: email, At: s.now()})
	return nil
}

// Clear deletes every row in the user's cart. Row deletion is idempotent,
// so Clear is safe to retry after a partial failure.
func (s *CartService) Clear(ctx context.Context, email string) error {
	items, err := s.store.ListItems(ctx, email)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	for _, item := range items {
		if err := s.store.DeleteItem(ctx, item.ID); err != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}

	s.bus.PublishCartMutated(ctx, events.CartMutated{Email: email, At: s.now()})
	return nil
}
