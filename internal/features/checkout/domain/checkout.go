package domain

import (
	"fmt"
	"strings"
)

// CheckoutState is one step of the checkout flow. Transitions only move
// forward; CONFIRMED is terminal.
type CheckoutState string

const (
	StateReviewingCart    CheckoutState = "REVIEWING_CART"
	StateEnteringDelivery CheckoutState = "ENTERING_DELIVERY"
	StateSelectingPayment CheckoutState = "SELECTING_PAYMENT"
	StateSubmitting       CheckoutState = "SUBMITTING"
	StateConfirmed        CheckoutState = "CONFIRMED"
)

// IsTerminal reports whether no further transition is possible.
func (s CheckoutState) IsTerminal() bool {
	return s == StateConfirmed
}

// PaymentMethod identifies how the order is paid.
type PaymentMethod string

const (
	PaymentCard   PaymentMethod = "card"
	PaymentUPI    PaymentMethod = "upi"
	PaymentWallet PaymentMethod = "wallet"
	PaymentCOD    PaymentMethod = "cod"
)

// Known reports whether the method is one the storefront offers at all.
func (m PaymentMethod) Known() bool {
	switch m {
	case PaymentCard, PaymentUPI, PaymentWallet, PaymentCOD:
		return true
	}
	return false
}

// Enabled reports whether the method can actually be selected. Only cash
// on delivery is live; the others are displayed but greyed out.
func (m PaymentMethod) Enabled() bool {
	return m == PaymentCOD
}

// Label returns the customer-facing name of the method.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentCard:
		return "Credit / Debit Card"
	case PaymentUPI:
		return "UPI"
	case PaymentWallet:
		return "Wallet"
	case PaymentCOD:
		return "Cash on Delivery"
	}
	return string(m)
}

// AddressKind tags a saved address.
type AddressKind string

const (
	AddressHome  AddressKind = "home"
	AddressWork  AddressKind = "work"
	AddressOther AddressKind = "other"
)

// ValidationError reports the first invalid delivery field.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// DeliveryDetails is where and to whom the order ships.
type DeliveryDetails struct {
	RecipientName string      `json:"recipient_name"`
	Phone         string      `json:"phone"`
	AddressText   string      `json:"address_text"`
	AddressKind   AddressKind `json:"address_kind"`
	Landmark      string      `json:"landmark"`
}

// Validate checks the details field by field, name first, then phone, then
// address, and reports only the first failure.
func (d DeliveryDetails) Validate() error {
	if strings.TrimSpace(d.RecipientName) == "" {
		return &ValidationError{Field: "recipient_name", Reason: "name is required"}
	}
	if strings.TrimSpace(d.Phone) == "" {
		return &ValidationError{Field: "phone", Reason: "phone number is required"}
	}
	if strings.TrimSpace(d.AddressText) == "" {
		return &ValidationError{Field: "address_text", Reason: "address is required"}
	}
	return nil
}
