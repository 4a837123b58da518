package domain

import "github.com/shopspring/decimal"

// CartItem is one row in a user's cart. Quantity is implicitly 1 per row;
// adding the same product twice creates two rows (no merging).
type CartItem struct {
	// ID is the row identifier assigned by the cart store.
	ID string `json:"id"`
	// Name is the product name.
	Name string `json:"name"`
	// Description is the product description.
	Description string `json:"description"`
	// UnitPrice is the price of this row.
	UnitPrice decimal.Decimal `json:"unit_price"`
	// ImageRef is an optional product image URL.
	ImageRef string `json:"image_ref,omitempty"`
}

// NewCartItem is the payload for creating a cart row. The store assigns the ID.
type NewCartItem struct {
	// Name is the product name.
	Name string `json:"name"`
	// Description is the product description.
	Description string `json:"description"`
	// UnitPrice is the price of the product.
	UnitPrice decimal.Decimal `json:"unit_price"`
	// ImageRef is an optional product image URL.
	ImageRef string `json:"image_ref,omitempty"`
}
