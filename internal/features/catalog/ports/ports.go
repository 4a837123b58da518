package ports

import (
	"context"

	"foodie-api/internal/features/catalog/domain"
)

// CatalogProvider defines the interface for reading storefront content.
// This is a Secondary Port (Driven Port).
type CatalogProvider interface {
	// ListCategories returns all categories.
	ListCategories(ctx context.Context) ([]domain.Category, error)
	// ListRestaurants returns the restaurants filed under a category slug.
	ListRestaurants(ctx context.Context, categorySlug string) ([]domain.Restaurant, error)
	// GetRestaurant returns one restaurant with its full menu,
	// or nil when the slug is unknown.
	GetRestaurant(ctx context.Context, slug string) (*domain.Restaurant, error)
}
