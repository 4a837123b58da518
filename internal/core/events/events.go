package events

import (
	"context"
	"sync"
	"time"
)

// CartMutated is published whenever a user's cart rows change
// (item added, item deleted, cart cleared after checkout).
type CartMutated struct {
	// Email identifies the cart owner.
	Email string
	// At is the time the mutation was observed.
	At time.Time
}

// CartMutatedHandler consumes CartMutated events.
type CartMutatedHandler func(ctx context.Context, evt CartMutated)

// Bus is a small in-process event bus. Subscribers are invoked
// synchronously, in subscription order, on the publisher's goroutine.
type Bus struct {
	mu   sync.RWMutex
	cart []CartMutatedHandler
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{}
}

// SubscribeCartMutated registers a handler for CartMutated events.
func (b *Bus) SubscribeCartMutated(h CartMutatedHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cart = append(b.cart, h)
}

// PublishCartMutated delivers the event to all registered handlers.
func (b *Bus) PublishCartMutated(ctx context.Context, evt CartMutated) {
	b.mu.RLock()
	handlers := make([]CartMutatedHandler, len(b.cart))
	copy(handlers, b.cart)
	b.mu.RUnlock()

	for _, h := range handlers {
		h(ctx, evt)
	}
}
