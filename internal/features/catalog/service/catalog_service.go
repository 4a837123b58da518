package service

import (
	"context"
	"errors"
	"fmt"

	"foodie-api/internal/features/catalog/domain"
	"foodie-api/internal/features/catalog/ports"
)

// ErrRestaurantNotFound is returned when the restaurant slug is unknown.
var ErrRestaurantNotFound = errors.New("restaurant not found")

// ErrStoreUnavailable is returned when the catalog backend fails; reads can
// simply be retried by the caller.
var ErrStoreUnavailable = errors.New("catalog store unavailable")

// CatalogService handles the business logic for storefront browsing.
type CatalogService struct {
	// provider is the interface for fetching catalog content.
	provider ports.CatalogProvider
}

// NewCatalogService creates a new instance of CatalogService.
func NewCatalogService(provider ports.CatalogProvider) *CatalogService {
	return &CatalogService{
		provider: provider,
	}
}

// ListCategories returns all categories.
func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.provider.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return categories, nil
}

// ListRestaurants returns the restaurants filed under a category slug.
// An empty slug lists nothing rather than everything.
func (s *CatalogService) ListRestaurants(ctx context.Context, categorySlug string) ([]domain.Restaurant, error) {
	if categorySlug == "" {
		return []domain.Restaurant{}, nil
	}

	restaurants, err := s.provider.ListRestaurants(ctx, categorySlug)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return restaurants, nil
}

// GetRestaurant returns one restaurant with its full menu.
func (s *CatalogService) GetRestaurant(ctx context.Context, slug string) (*domain.Restaurant, error) {
	restaurant, err := s.provider.GetRestaurant(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if restaurant == nil {
		return nil, ErrRestaurantNotFound
	}

	return restaurant, nil
}
