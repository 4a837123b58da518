package service

import (
	"strings"

	cartdomain "foodie-api/internal/features/cart/domain"
	"foodie-api/internal/features/pricing/domain"
	"foodie-api/internal/features/pricing/ports"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PricingService computes order totals and resolves coupon codes.
// ComputeTotals is a pure function; the service holds only configuration
// and the coupon registry, never per-cart state.
type PricingService struct {
	// registry is where coupon codes resolve.
	registry ports.CouponRegistry
	// taxRate is the GST rate applied to the subtotal (e.g. 0.12).
	taxRate decimal.Decimal
	// deliveryFee is the flat delivery charge for non-empty carts.
	deliveryFee decimal.Decimal
}

// NewPricingService creates a new PricingService.
func NewPricingService(registry ports.CouponRegistry, taxRate, deliveryFee decimal.Decimal) *PricingService {
	return &PricingService{
		registry:    registry,
		taxRate:     taxRate,
		deliveryFee: deliveryFee,
	}
}

// TaxRate returns the configured GST rate (e.g. 0.12).
func (s *PricingService) TaxRate() decimal.Decimal {
	return s.taxRate
}

// ComputeTotals derives the price breakdown for a cart and an optional
// applied coupon. Deterministic and side-effect free: the same inputs
// always yield the same totals.
//
// Rules:
//   - subtotal is the exact sum of unit prices
//   - delivery fee applies only to non-empty carts
//   - tax applies to the subtotal, not the delivery fee
//   - a percentage coupon discounts the subtotal; a flat coupon discounts
//     its full amount regardless of subtotal
//   - the grand total is floored at zero; the discount itself is not capped
func (s *PricingService) ComputeTotals(items []cartdomain.CartItem, coupon *domain.Coupon) domain.OrderTotals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.UnitPrice)
	}

	deliveryFee := decimal.Zero
	if subtotal.IsPositive() {
		deliveryFee = s.deliveryFee
	}

	taxAmount := subtotal.Mul(s.taxRate)

	discount := decimal.Zero
	if coupon != nil {
		switch coupon.Kind {
		case domain.CouponKindPercentage:
			discount = subtotal.Mul(coupon.Amount).Div(hundred)
		case domain.CouponKindFlat:
			discount = coupon.Amount
		}
	}

	grandTotal := subtotal.Add(taxAmount).Add(deliveryFee).Sub(discount)
	if grandTotal.IsNegative() {
		grandTotal = decimal.Zero
	}

	return domain.OrderTotals{
		Subtotal:       subtotal,
		TaxAmount:      taxAmount,
		DeliveryFee:    deliveryFee,
		CouponDiscount: discount,
		GrandTotal:     grandTotal,
	}
}

// ApplyCoupon normalizes a code to uppercase and resolves it in the
// registry. Unknown codes return domain.ErrInvalidCoupon; callers must not
// change any applied-coupon state on failure.
func (s *PricingService) ApplyCoupon(code string) (*domain.Coupon, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return nil, domain.ErrInvalidCoupon
	}

	coupon, ok := s.registry.Lookup(normalized)
	if !ok {
		return nil, domain.ErrInvalidCoupon
	}

	return coupon, nil
}
