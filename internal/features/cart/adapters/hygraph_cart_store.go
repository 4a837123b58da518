package adapters

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"foodie-api/internal/core/httpclient"
	"foodie-api/internal/features/cart/domain"

	"github.com/machinebox/graphql"
	"github.com/shopspring/decimal"
)

// HygraphCartStore implements the CartStore interface against the Hygraph
// content API. Cart rows are UserCart documents keyed by email.
type HygraphCartStore struct {
	// client executes GraphQL requests against the content API.
	client *graphql.Client
}

// NewHygraphCartStore creates a new instance of HygraphCartStore.
func NewHygraphCartStore(endpoint string) *HygraphCartStore {
	return &HygraphCartStore{
		client: graphql.NewClient(endpoint, graphql.WithHTTPClient(httpclient.NewClient(10*time.Second))),
	}
}

// AddItem creates a UserCart document and publishes it.
func (s *HygraphCartStore) AddItem(ctx context.Context, email, phone string, item domain.NewCartItem) (string, error) {
	req := graphql.NewRequest(`
		mutation AddToCart($email: String!, $productName: String!, $productDescription: String!, $productimg: String!, $price: Float!, $phoneNumber: Int!) {
			createUserCart(data: {
				email: $email
				productName: $productName
				productDescription: $productDescription
				productimg: $productimg
				price: $price
				phoneNumber: $phoneNumber
			}) {
				id
			}
			publishManyUserCarts(to: PUBLISHED) {
				count
			}
		}
	`)
	req.Var("email", email)
	req.Var("productName", item.Name)
	req.Var("productDescription", item.Description)
	req.Var("productimg", item.ImageRef)
	req.Var("price", item.UnitPrice.InexactFloat64())
	req.Var("phoneNumber", phoneDigits(phone))

	var resp struct {
		CreateUserCart struct {
			ID string `json:"id"`
		} `json:"createUserCart"`
	}

	if err := s.client.Run(ctx, req, &resp); err != nil {
		return "", fmt.Errorf("failed to create cart row: %w", err)
	}

	return resp.CreateUserCart.ID, nil
}

// ListItems returns every published UserCart document for the email.
func (s *HygraphCartStore) ListItems(ctx context.Context, email string) ([]domain.CartItem, error) {
	req := graphql.NewRequest(`
		query GetUserCart($email: String!) {
			userCarts(where: { email: $email }) {
				id
				price
				productDescription
				productimg
				productName
			}
		}
	`)
	req.Var("email", email)

	var resp struct {
		UserCarts []struct {
			ID                 string  `json:"id"`
			Price              float64 `json:"price"`
			ProductDescription string  `json:"productDescription"`
			ProductImg         string  `json:"productimg"`
			ProductName        string  `json:"productName"`
		} `json:"userCarts"`
	}

	if err := s.client.Run(ctx, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to list cart rows: %w", err)
	}

	items := make([]domain.CartItem, 0, len(resp.UserCarts))
	for _, row := range resp.UserCarts {
		items = append(items, domain.CartItem{
			ID:          row.ID,
			Name:        row.ProductName,
			Description: row.ProductDescription,
			UnitPrice:   decimal.NewFromFloat(row.Price),
			ImageRef:    row.ProductImg,
		})
	}

	return items, nil
}

// DeleteItem removes a UserCart document by id. A row that no longer
// exists counts as deleted, so retried clears stay idempotent.
func (s *HygraphCartStore) DeleteItem(ctx context.Context, id string) error {
	req := graphql.NewRequest(`
		mutation DeleteCartItem($id: ID!) {
			deleteUserCart(where: { id: $id }) {
				id
			}
			publishManyUserCarts(to: PUBLISHED) {
				count
			}
		}
	`)
	req.Var("id", id)

	var resp struct {
		DeleteUserCart *struct {
			ID string `json:"id"`
		} `json:"deleteUserCart"`
	}

	if err := s.client.Run(ctx, req, &resp); err != nil {
		return fmt.Errorf("failed to delete cart row: %w", err)
	}

	// A null row means the document was already gone, which is not a
	// failure for our callers.
	return nil
}

// phoneDigits reduces a phone string to its numeric value for the CMS
// schema's Int field, matching how the storefront always stored it.
func phoneDigits(phone string) int64 {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
