package domain

import (
	"time"

	cartdomain "foodie-api/internal/features/cart/domain"
	pricingdomain "foodie-api/internal/features/pricing/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderSubmission is the immutable snapshot taken at the moment an order
// is placed. Totals are already rounded to two decimals; later cart or
// pricing changes never touch it.
type OrderSubmission struct {
	ID            uuid.UUID                 `json:"id"`
	CustomerName  string                    `json:"customer_name"`
	CustomerEmail string                    `json:"customer_email"`
	CustomerPhone string                    `json:"customer_phone"`
	Items         []cartdomain.CartItem     `json:"items"`
	Totals        pricingdomain.OrderTotals `json:"totals"`
	TaxRate       decimal.Decimal           `json:"tax_rate"`
	Delivery      DeliveryDetails           `json:"delivery"`
	PaymentMethod PaymentMethod             `json:"payment_method"`
	CouponCode    string                    `json:"coupon_code,omitempty"`
	SubmittedAt   time.Time                 `json:"submitted_at"`
}
