package ports

import (
	"context"

	"foodie-api/internal/features/cart/domain"
)

// CartStore defines the external store that owns cart rows.
// This is a Secondary Port (Driven Port).
type CartStore interface {
	// AddItem creates a new cart row for the user and returns its id.
	// Every call creates a new row, even for an identical product.
	AddItem(ctx context.Context, email, phone string, item domain.NewCartItem) (string, error)
	// ListItems returns all cart rows for the user.
	ListItems(ctx context.Context, email string) ([]domain.CartItem, error)
	// DeleteItem removes a cart row by id. Deleting an already-deleted
	// row is a no-op success.
	DeleteItem(ctx context.Context, id string) error
}

// CartCounter reads the cached per-user cart count maintained by the
// count projector.
type CartCounter interface {
	// Count returns the number of rows in the user's cart.
	Count(ctx context.Context, email string) (int, error)
}
