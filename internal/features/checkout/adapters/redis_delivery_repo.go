package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"foodie-api/internal/core/cache"
	"foodie-api/internal/features/checkout/domain"
)

const deliveryKeyPrefix = "delivery_details:"

// RedisDeliveryRepo implements the DeliveryRepository interface on top of
// the cache port. Details are stored as JSON without expiry so they
// survive between orders.
type RedisDeliveryRepo struct {
	cache cache.Cache
}

// NewRedisDeliveryRepo creates a new RedisDeliveryRepo.
func NewRedisDeliveryRepo(c cache.Cache) *RedisDeliveryRepo {
	return &RedisDeliveryRepo{cache: c}
}

// Save stores the details, replacing any previous ones.
func (r *RedisDeliveryRepo) Save(ctx context.Context, email string, details domain.DeliveryDetails) error {
	data, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("failed to encode delivery details: %w", err)
	}

	if err := r.cache.Set(ctx, deliveryKeyPrefix+email, data, 0); err != nil {
		return fmt.Errorf("failed to save delivery details: %w", err)
	}
	return nil
}

// Get returns the saved details, nil when none are stored. Backend
// failures surface so callers can tell an outage from an empty form.
func (r *RedisDeliveryRepo) Get(ctx context.Context, email string) (*domain.DeliveryDetails, error) {
	data, err := r.cache.Get(ctx, deliveryKeyPrefix+email)
	if errors.Is(err, cache.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load delivery details: %w", err)
	}

	var details domain.DeliveryDetails
	if err := json.Unmarshal(data, &details); err != nil {
		return nil, fmt.Errorf("failed to decode delivery details: %w", err)
	}
	return &details, nil
}

// Clear removes the saved details.
func (r *RedisDeliveryRepo) Clear(ctx context.Context, email string) error {
	if err := r.cache.Delete(ctx, deliveryKeyPrefix+email); err != nil {
		return fmt.Errorf("failed to clear delivery details: %w", err)
	}
	return nil
}
