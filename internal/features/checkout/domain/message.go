package domain

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// DeliveryETA is the estimate quoted to the customer on every order.
const DeliveryETA = "25-30 mins"

// BuildOrderMessage renders the order summary sent to the restaurant over
// WhatsApp. The layout is deterministic: the same submission always yields
// the same text.
func BuildOrderMessage(sub OrderSubmission) string {
	var b strings.Builder

	b.WriteString("🍽️ New Order!\n\n")
	fmt.Fprintf(&b, "Customer: %s\n", sub.CustomerName)
	fmt.Fprintf(&b, "Email: %s\n", sub.CustomerEmail)
	fmt.Fprintf(&b, "Phone: %s\n\n", sub.CustomerPhone)

	b.WriteString("Items:\n")
	for _, item := range sub.Items {
		fmt.Fprintf(&b, "• %s — ₹%s\n", item.Name, item.UnitPrice.String())
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Subtotal: ₹%s\n", sub.Totals.Subtotal.String())
	fmt.Fprintf(&b, "GST (%s%%): ₹%s\n", sub.TaxRate.Mul(hundred).String(), sub.Totals.TaxAmount.String())
	fmt.Fprintf(&b, "Delivery Fee: ₹%s\n", sub.Totals.DeliveryFee.String())
	if sub.CouponCode != "" {
		fmt.Fprintf(&b, "Coupon (%s): -₹%s\n", sub.CouponCode, sub.Totals.CouponDiscount.String())
	}
	fmt.Fprintf(&b, "Total: ₹%s\n\n", sub.Totals.GrandTotal.String())

	fmt.Fprintf(&b, "Payment: %s\n", sub.PaymentMethod.Label())
	fmt.Fprintf(&b, "ETA: %s\n\n", DeliveryETA)

	fmt.Fprintf(&b, "Deliver to (%s): %s\n", sub.Delivery.AddressKind, sub.Delivery.AddressText)
	if sub.Delivery.Landmark != "" {
		fmt.Fprintf(&b, "Landmark: %s\n", sub.Delivery.Landmark)
	}
	b.WriteString("\nPlease share your live location after confirming the order.")

	return b.String()
}

// BuildDeepLink returns a wa.me link that opens a chat with the given
// destination number, pre-filled with the message text.
func BuildDeepLink(destination, text string) string {
	return "https://wa.me/" + destination + "?text=" + url.QueryEscape(text)
}
