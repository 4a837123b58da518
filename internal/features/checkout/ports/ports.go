package ports

import (
	"context"

	cartdomain "foodie-api/internal/features/cart/domain"
	"foodie-api/internal/features/checkout/domain"
	pricingdomain "foodie-api/internal/features/pricing/domain"

	"github.com/shopspring/decimal"
)

// DeliveryRepository persists saved delivery details keyed by user email.
// This is a Secondary Port (Driven Port).
type DeliveryRepository interface {
	// Save stores the details, replacing any previous ones.
	Save(ctx context.Context, email string, details domain.DeliveryDetails) error
	// Get returns the saved details, or nil when none are stored.
	Get(ctx context.Context, email string) (*domain.DeliveryDetails, error)
	// Clear removes the saved details. Clearing absent details is a no-op.
	Clear(ctx context.Context, email string) error
}

// Notifier dispatches the order text to the restaurant.
// This is a Secondary Port (Driven Port).
type Notifier interface {
	// Send delivers the text to the destination phone number.
	Send(ctx context.Context, destination, text string) error
}

// CartReader is the slice of the cart feature checkout depends on.
type CartReader interface {
	// ListItems returns all rows in the user's cart.
	ListItems(ctx context.Context, email string) ([]cartdomain.CartItem, error)
	// Clear deletes every row in the user's cart. Idempotent, safe to retry.
	Clear(ctx context.Context, email string) error
}

// PricingEngine is the slice of the pricing feature checkout depends on.
type PricingEngine interface {
	// ComputeTotals derives the price breakdown for a cart and coupon.
	ComputeTotals(items []cartdomain.CartItem, coupon *pricingdomain.Coupon) pricingdomain.OrderTotals
	// ApplyCoupon resolves a coupon code, case-insensitively.
	ApplyCoupon(code string) (*pricingdomain.Coupon, error)
	// TaxRate returns the configured GST rate, for display.
	TaxRate() decimal.Decimal
}
