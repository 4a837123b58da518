package domain

import "github.com/shopspring/decimal"

// OrderTotals is the derived price breakdown for a cart. It is recomputed
// from the live cart on every request and never stored.
type OrderTotals struct {
	// Subtotal is the sum of item unit prices.
	Subtotal decimal.Decimal `json:"subtotal"`
	// TaxAmount is the GST applied to the subtotal only.
	TaxAmount decimal.Decimal `json:"tax_amount"`
	// DeliveryFee is the flat delivery charge (zero for an empty cart).
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	// CouponDiscount is the applied coupon's discount value.
	CouponDiscount decimal.Decimal `json:"coupon_discount"`
	// GrandTotal is the payable amount, floored at zero.
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// Rounded returns a copy with every amount rounded to currency precision
// (2 decimal places). Internal arithmetic stays in full precision; rounding
// happens only at display or snapshot time.
func (t OrderTotals) Rounded() OrderTotals {
	return OrderTotals{
		Subtotal:       t.Subtotal.Round(2),
		TaxAmount:      t.TaxAmount.Round(2),
		DeliveryFee:    t.DeliveryFee.Round(2),
		CouponDiscount: t.CouponDiscount.Round(2),
		GrandTotal:     t.GrandTotal.Round(2),
	}
}
