package adapters

import (
	"context"
	"fmt"
	"time"

	"foodie-api/internal/core/httpclient"
	"foodie-api/internal/features/catalog/domain"

	"github.com/machinebox/graphql"
	"github.com/shopspring/decimal"
)

// HygraphAdapter implements the CatalogProvider interface using the Hygraph
// content API.
type HygraphAdapter struct {
	// client executes GraphQL requests against the content API.
	client *graphql.Client
}

// NewHygraphAdapter creates a new instance of HygraphAdapter.
func NewHygraphAdapter(endpoint string) *HygraphAdapter {
	return &HygraphAdapter{
		client: graphql.NewClient(endpoint, graphql.WithHTTPClient(httpclient.NewClient(10*time.Second))),
	}
}

// assetRef is Hygraph's nested asset shape.
type assetRef struct {
	URL string `json:"url"`
}

// ListCategories returns all categories.
func (a *HygraphAdapter) ListCategories(ctx context.Context) ([]domain.Category, error) {
	req := graphql.NewRequest(`
		query Category {
			categories {
				id
				name
				slug
				icon {
					url
				}
			}
		}
	`)

	var resp struct {
		Categories []struct {
			ID   string    `json:"id"`
			Name string    `json:"name"`
			Slug string    `json:"slug"`
			Icon *assetRef `json:"icon"`
		} `json:"categories"`
	}

	if err := a.client.Run(ctx, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := make([]domain.Category, 0, len(resp.Categories))
	for _, c := range resp.Categories {
		category := domain.Category{
			ID:   c.ID,
			Name: c.Name,
			Slug: c.Slug,
		}
		if c.Icon != nil {
			category.IconURL = c.Icon.URL
		}
		categories = append(categories, category)
	}

	return categories, nil
}

// restaurantRow is the list-view restaurant shape.
type restaurantRow struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	WorkingHours string    `json:"workinghours"`
	Types        []string  `json:"types"`
	AboutUs      string    `json:"aboutUs"`
	Address      string    `json:"address"`
	Banner       *assetRef `json:"banner"`
}

// ListRestaurants returns the restaurants filed under a category slug.
func (a *HygraphAdapter) ListRestaurants(ctx context.Context, categorySlug string) ([]domain.Restaurant, error) {
	req := graphql.NewRequest(`
		query GetRestaurants($slug: String!) {
			restaurants(where: { category_some: { slug: $slug } }) {
				id
				name
				slug
				workinghours
				types
				aboutUs
				address
				banner {
					url
				}
			}
		}
	`)
	req.Var("slug", categorySlug)

	var resp struct {
		Restaurants []restaurantRow `json:"restaurants"`
	}

	if err := a.client.Run(ctx, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}

	restaurants := make([]domain.Restaurant, 0, len(resp.Restaurants))
	for _, r := range resp.Restaurants {
		restaurants = append(restaurants, mapRestaurant(r))
	}

	return restaurants, nil
}

// GetRestaurant returns one restaurant with its full menu.
func (a *HygraphAdapter) GetRestaurant(ctx context.Context, slug string) (*domain.Restaurant, error) {
	req := graphql.NewRequest(`
		query GetRestaurant($slug: String!) {
			restaurant(where: { slug: $slug }) {
				id
				name
				aboutUs
				address
				types
				workinghours
				slug
				banner {
					url
				}
				menu {
					... on Menu {
						id
						catagory
						menuitems {
							... on Menuitem {
								id
								name
								description
								price
								productimage {
									url
								}
							}
						}
					}
				}
			}
		}
	`)
	req.Var("slug", slug)

	var resp struct {
		Restaurant *struct {
			restaurantRow
			Menu []struct {
				ID       string `json:"id"`
				Catagory string `json:"catagory"`
				Items    []struct {
					ID           string    `json:"id"`
					Name         string    `json:"name"`
					Description  string    `json:"description"`
					Price        float64   `json:"price"`
					ProductImage *assetRef `json:"productimage"`
				} `json:"menuitems"`
			} `json:"menu"`
		} `json:"restaurant"`
	}

	if err := a.client.Run(ctx, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}

	if resp.Restaurant == nil {
		return nil, nil
	}

	restaurant := mapRestaurant(resp.Restaurant.restaurantRow)
	restaurant.Menu = make([]domain.MenuSection, 0, len(resp.Restaurant.Menu))
	for _, section := range resp.Restaurant.Menu {
		items := make([]domain.MenuItem, 0, len(section.Items))
		for _, item := range section.Items {
			mi := domain.MenuItem{
				ID:          item.ID,
				Name:        item.Name,
				Description: item.Description,
				Price:       decimal.NewFromFloat(item.Price),
			}
			if item.ProductImage != nil {
				mi.ImageURL = item.ProductImage.URL
			}
			items = append(items, mi)
		}
		restaurant.Menu = append(restaurant.Menu, domain.MenuSection{
			ID:       section.ID,
			Category: section.Catagory,
			Items:    items,
		})
	}

	return &restaurant, nil
}

// mapRestaurant converts the raw CMS row into the domain entity.
func mapRestaurant(r restaurantRow) domain.Restaurant {
	restaurant := domain.Restaurant{
		ID:           r.ID,
		Name:         r.Name,
		Slug:         r.Slug,
		WorkingHours: r.WorkingHours,
		Types:        r.Types,
		AboutUs:      r.AboutUs,
		Address:      r.Address,
	}
	if r.Banner != nil {
		restaurant.BannerURL = r.Banner.URL
	}
	return restaurant
}
