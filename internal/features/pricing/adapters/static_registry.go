package adapters

import (
	"sort"
	"strings"

	"foodie-api/internal/features/pricing/domain"

	"github.com/shopspring/decimal"
)

// StaticCouponRegistry implements ports.CouponRegistry with a fixed table.
type StaticCouponRegistry struct {
	coupons map[string]domain.Coupon
}

// NewStaticCouponRegistry creates a registry seeded with the storefront's
// standing offers.
func NewStaticCouponRegistry() *StaticCouponRegistry {
	offers := []domain.Coupon{
		{Code: "FIRSTTYM", Kind: domain.CouponKindPercentage, Amount: decimal.NewFromInt(15), Description: "First Time User - 15% OFF"},
		{Code: "WELCOME", Kind: domain.CouponKindFlat, Amount: decimal.NewFromInt(50), Description: "Welcome Bonus - Rs.50 OFF"},
		{Code: "SAVE10", Kind: domain.CouponKindPercentage, Amount: decimal.NewFromInt(10), Description: "Save 10% on your order"},
		{Code: "FLAT100", Kind: domain.CouponKindFlat, Amount: decimal.NewFromInt(100), Description: "Flat Rs.100 OFF"},
		{Code: "STUDENT", Kind: domain.CouponKindPercentage, Amount: decimal.NewFromInt(20), Description: "Student Special - 20% OFF"},
	}

	coupons := make(map[string]domain.Coupon, len(offers))
	for _, c := range offers {
		coupons[c.Code] = c
	}

	return &StaticCouponRegistry{coupons: coupons}
}

// Lookup returns the coupon for a code. Lookup is case-insensitive.
func (r *StaticCouponRegistry) Lookup(code string) (*domain.Coupon, bool) {
	coupon, ok := r.coupons[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return nil, false
	}
	return &coupon, true
}

// All returns every registered coupon, for listing available offers.
func (r *StaticCouponRegistry) All() []domain.Coupon {
	out := make([]domain.Coupon, 0, len(r.coupons))
	for _, c := range r.coupons {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
