package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestBus_PublishCartMutated verifies that all subscribers receive the event.
func TestBus_PublishCartMutated(t *testing.T) {
	bus := NewBus()

	var got []CartMutated
	bus.SubscribeCartMutated(func(ctx context.Context, evt CartMutated) {
		got = append(got, evt)
	})
	bus.SubscribeCartMutated(func(ctx context.Context, evt CartMutated) {
		got = append(got, evt)
	})

	evt := CartMutated{Email: "jane@example.com", At: time.Now()}
	bus.PublishCartMutated(context.Background(), evt)

	assert.Len(t, got, 2)
	assert.Equal(t, "jane@example.com", got[0].Email)
	assert.Equal(t, got[0], got[1])
}

// TestBus_PublishWithoutSubscribers verifies that publishing with no subscribers is a no-op.
func TestBus_PublishWithoutSubscribers(t *testing.T) {
	bus := NewBus()
	assert.NotPanics(t, func() {
		bus.PublishCartMutated(context.Background(), CartMutated{Email: "nobody@example.com"})
	})
}
