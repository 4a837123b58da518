package adapters

import (
	"context"
	"fmt"
	"strconv"

	"foodie-api/internal/core/cache"
	"foodie-api/internal/core/events"
	"foodie-api/internal/core/logger"
	"foodie-api/internal/features/cart/ports"

	"go.uber.org/zap"
)

const cartCountKeyPrefix = "cart_count:"

// CountProjector keeps a per-user cart count in the cache, refreshed from
// CartMutated events. The header badge reads this instead of re-fetching
// the whole cart on a shared update counter.
type CountProjector struct {
	// store is the source of truth for cart rows.
	store ports.CartStore
	// cache holds the projected counts.
	cache cache.Cache
}

// NewCountProjector creates a new CountProjector.
func NewCountProjector(store ports.CartStore, c cache.Cache) *CountProjector {
	return &CountProjector{
		store: store,
		cache: c,
	}
}

// HandleCartMutated recomputes and caches the count for the mutated cart.
// Registered on the event bus at wiring time.
func (p *CountProjector) HandleCartMutated(ctx context.Context, evt events.CartMutated) {
	items, err := p.store.ListItems(ctx, evt.Email)
	if err != nil {
		logger.Get().Warn("Cart count projection skipped",
			zap.String("email", evt.Email),
			zap.Error(err),
		)
		return
	}

	value := []byte(strconv.Itoa(len(items)))
	if err := p.cache.Set(ctx, cartCountKeyPrefix+evt.Email, value, 0); err != nil {
		logger.Get().Warn("Cart count projection write failed",
			zap.String("email", evt.Email),
			zap.Error(err),
		)
	}
}

// Count returns the cached cart count, falling back to the store when the
// projection has not been primed yet.
func (p *CountProjector) Count(ctx context.Context, email string) (int, error) {
	data, err := p.cache.Get(ctx, cartCountKeyPrefix+email)
	if err == nil {
		if n, convErr := strconv.Atoi(string(data)); convErr == nil {
			return n, nil
		}
	}

	items, err := p.store.ListItems(ctx, email)
	if err != nil {
		return 0, fmt.Errorf("failed to count cart rows: %w", err)
	}
	return len(items), nil
}
