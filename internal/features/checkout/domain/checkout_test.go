package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCheckoutState_IsTerminal verifies only CONFIRMED is terminal.
func TestCheckoutState_IsTerminal(t *testing.T) {
	assert.True(t, StateConfirmed.IsTerminal())
	assert.False(t, StateReviewingCart.IsTerminal())
	assert.False(t, StateEnteringDelivery.IsTerminal())
	assert.False(t, StateSelectingPayment.IsTerminal())
	assert.False(t, StateSubmitting.IsTerminal())
}

// TestPaymentMethod_Enabled verifies only cash on delivery is live.
func TestPaymentMethod_Enabled(t *testing.T) {
	assert.True(t, PaymentCOD.Enabled())
	assert.False(t, PaymentCard.Enabled())
	assert.False(t, PaymentUPI.Enabled())
	assert.False(t, PaymentWallet.Enabled())

	assert.True(t, PaymentCard.Known())
	assert.False(t, PaymentMethod("crypto").Known())
}

// TestDeliveryDetails_Validate verifies fields are checked in order and
// only the first failure is reported.
func TestDeliveryDetails_Validate(t *testing.T) {
	valid := DeliveryDetails{
		RecipientName: "Jane Doe",
		Phone:         "+919876543210",
		AddressText:   "12 MG Road",
		AddressKind:   AddressHome,
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name      string
		details   DeliveryDetails
		wantField string
	}{
		{
			name:      "missing name reported first",
			details:   DeliveryDetails{},
			wantField: "recipient_name",
		},
		{
			name:      "whitespace name rejected",
			details:   DeliveryDetails{RecipientName: "   ", Phone: "1", AddressText: "x"},
			wantField: "recipient_name",
		},
		{
			name:      "missing phone reported before address",
			details:   DeliveryDetails{RecipientName: "Jane Doe"},
			wantField: "phone",
		},
		{
			name:      "missing address reported last",
			details:   DeliveryDetails{RecipientName: "Jane Doe", Phone: "+919876543210"},
			wantField: "address_text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.details.Validate()
			require.Error(t, err)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}

// TestDeliveryDetails_Validate_LandmarkOptional verifies the landmark is
// never required.
func TestDeliveryDetails_Validate_LandmarkOptional(t *testing.T) {
	details := DeliveryDetails{
		RecipientName: "Jane Doe",
		Phone:         "+919876543210",
		AddressText:   "12 MG Road",
		AddressKind:   AddressWork,
		Landmark:      "",
	}
	assert.NoError(t, details.Validate())
}
