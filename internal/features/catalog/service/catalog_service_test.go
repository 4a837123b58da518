package service

import (
	"context"
	"errors"
	"testing"

	"foodie-api/internal/features/catalog/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCatalogProvider is a mock implementation of CatalogProvider for testing.
type mockCatalogProvider struct {
	categories  []domain.Category
	restaurants []domain.Restaurant
	restaurant  *domain.Restaurant
	returnError error
	gotSlug     string
}

// ListCategories implements CatalogProvider.
func (m *mockCatalogProvider) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if m.returnError != nil {
		return nil, m.returnError
	}
	return m.categories, nil
}

// ListRestaurants implements CatalogProvider.
func (m *mockCatalogProvider) ListRestaurants(ctx context.Context, categorySlug string) ([]domain.Restaurant, error) {
	m.gotSlug = categorySlug
	if m.returnError != nil {
		return nil, m.returnError
	}
	return m.restaurants, nil
}

// GetRestaurant implements CatalogProvider.
func (m *mockCatalogProvider) GetRestaurant(ctx context.Context, slug string) (*domain.Restaurant, error) {
	m.gotSlug = slug
	if m.returnError != nil {
		return nil, m.returnError
	}
	return m.restaurant, nil
}

// TestCatalogService_ListCategories verifies category listing.
func TestCatalogService_ListCategories(t *testing.T) {
	provider := &mockCatalogProvider{categories: []domain.Category{
		{ID: "1", Name: "South Indian", Slug: "south-indian"},
	}}
	svc := NewCatalogService(provider)

	categories, err := svc.ListCategories(context.Background())

	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "south-indian", categories[0].Slug)
}

// TestCatalogService_ListCategories_ProviderError verifies retryable wrapping.
func TestCatalogService_ListCategories_ProviderError(t *testing.T) {
	provider := &mockCatalogProvider{returnError: errors.New("cms down")}
	svc := NewCatalogService(provider)

	categories, err := svc.ListCategories(context.Background())

	assert.Nil(t, categories)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

// TestCatalogService_ListRestaurants verifies the slug is forwarded.
func TestCatalogService_ListRestaurants(t *testing.T) {
	provider := &mockCatalogProvider{restaurants: []domain.Restaurant{
		{ID: "1", Name: "Dosa Corner", Slug: "dosa-corner"},
	}}
	svc := NewCatalogService(provider)

	restaurants, err := svc.ListRestaurants(context.Background(), "south-indian")

	require.NoError(t, err)
	assert.Len(t, restaurants, 1)
	assert.Equal(t, "south-indian", provider.gotSlug)
}

// TestCatalogService_ListRestaurants_EmptySlug verifies an empty slug lists nothing.
func TestCatalogService_ListRestaurants_EmptySlug(t *testing.T) {
	provider := &mockCatalogProvider{restaurants: []domain.Restaurant{{ID: "1"}}}
	svc := NewCatalogService(provider)

	restaurants, err := svc.ListRestaurants(context.Background(), "")

	require.NoError(t, err)
	assert.Empty(t, restaurants)
	assert.Empty(t, provider.gotSlug)
}

// TestCatalogService_GetRestaurant verifies detail retrieval.
func TestCatalogService_GetRestaurant(t *testing.T) {
	provider := &mockCatalogProvider{restaurant: &domain.Restaurant{
		ID: "1", Name: "Dosa Corner", Slug: "dosa-corner",
	}}
	svc := NewCatalogService(provider)

	restaurant, err := svc.GetRestaurant(context.Background(), "dosa-corner")

	require.NoError(t, err)
	assert.Equal(t, "Dosa Corner", restaurant.Name)
}

// TestCatalogService_GetRestaurant_NotFound verifies unknown slugs.
func TestCatalogService_GetRestaurant_NotFound(t *testing.T) {
	provider := &mockCatalogProvider{}
	svc := NewCatalogService(provider)

	restaurant, err := svc.GetRestaurant(context.Background(), "nowhere")

	assert.Nil(t, restaurant)
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
}
