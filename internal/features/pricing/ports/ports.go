package ports

import "foodie-api/internal/features/pricing/domain"

// CouponRegistry defines where coupon truth lives. Today it is a static
// table; the port lets the registry move behind the catalog store later
// without changing the engine's contract.
// This is a Secondary Port (Driven Port).
type CouponRegistry interface {
	// Lookup returns the coupon for an already-normalized (uppercase) code,
	// or false when the code is unknown.
	Lookup(code string) (*domain.Coupon, bool)
}

// OfferLister exposes every standing coupon for the offers page.
type OfferLister interface {
	// All returns the registered coupons in a stable order.
	All() []domain.Coupon
}
