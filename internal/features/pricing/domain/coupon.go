package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// CouponKind represents how a coupon's amount is interpreted.
type CouponKind string

const (
	// CouponKindPercentage discounts a percentage of the cart subtotal.
	CouponKindPercentage CouponKind = "PERCENTAGE"
	// CouponKindFlat discounts a fixed amount off the order total.
	CouponKindFlat CouponKind = "FLAT"
)

// ErrInvalidCoupon is returned when a coupon code is not in the registry.
var ErrInvalidCoupon = errors.New("invalid coupon code")

// Coupon is a named discount rule. Codes are stored uppercase; lookup is
// case-insensitive.
type Coupon struct {
	// Code is the uppercase coupon code.
	Code string `json:"code"`
	// Kind determines whether Amount is a percentage or a flat value.
	Kind CouponKind `json:"kind"`
	// Amount is the discount percentage (for PERCENTAGE) or currency amount (for FLAT).
	Amount decimal.Decimal `json:"amount"`
	// Description is the human-readable offer text.
	Description string `json:"description"`
}
