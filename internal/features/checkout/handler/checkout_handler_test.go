package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"foodie-api/internal/core/identity"
	cartdomain "foodie-api/internal/features/cart/domain"
	"foodie-api/internal/features/checkout/domain"
	"foodie-api/internal/features/checkout/service"
	pricingadapters "foodie-api/internal/features/pricing/adapters"
	pricingservice "foodie-api/internal/features/pricing/service"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCartReader is a mock implementation of CartReader for testing.
type mockCartReader struct {
	items     []cartdomain.CartItem
	listErr   error
	clearErrs []error
}

// ListItems implements CartReader.
func (m *mockCartReader) ListItems(ctx context.Context, email string) ([]cartdomain.CartItem, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.items, nil
}

// Clear implements CartReader. Errors are consumed one per call.
func (m *mockCartReader) Clear(ctx context.Context, email string) error {
	if len(m.clearErrs) > 0 {
		err := m.clearErrs[0]
		m.clearErrs = m.clearErrs[1:]
		if err != nil {
			return err
		}
	}
	m.items = nil
	return nil
}

// mockDeliveryRepo is an in-memory DeliveryRepository for testing.
type mockDeliveryRepo struct {
	saved map[string]domain.DeliveryDetails
}

// Save implements DeliveryRepository.
func (m *mockDeliveryRepo) Save(ctx context.Context, email string, details domain.DeliveryDetails) error {
	m.saved[email] = details
	return nil
}

// Get implements DeliveryRepository.
func (m *mockDeliveryRepo) Get(ctx context.Context, email string) (*domain.DeliveryDetails, error) {
	details, ok := m.saved[email]
	if !ok {
		return nil, nil
	}
	return &details, nil
}

// Clear implements DeliveryRepository.
func (m *mockDeliveryRepo) Clear(ctx context.Context, email string) error {
	delete(m.saved, email)
	return nil
}

// mockNotifier is a mock implementation of Notifier for testing.
type mockNotifier struct {
	sendErr error
	texts   []string
}

// Send implements Notifier.
func (m *mockNotifier) Send(ctx context.Context, destination, text string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.texts = append(m.texts, text)
	return nil
}

func newTestApp(cart *mockCartReader, notifier *mockNotifier) *fiber.App {
	pricing := pricingservice.NewPricingService(
		pricingadapters.NewStaticCouponRegistry(),
		decimal.NewFromFloat(0.12),
		decimal.NewFromInt(30),
	)
	repo := &mockDeliveryRepo{saved: make(map[string]domain.DeliveryDetails)}
	svc := service.NewCheckoutService(cart, pricing, repo, notifier, "918688605760")
	h := NewCheckoutHandler(svc)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("requestid", "test-ray-id")
		c.Locals(identity.UserLocalKey, &identity.User{
			Email:    "jane@example.com",
			FullName: "Jane Doe",
			Phone:    "+919876543210",
		})
		return c.Next()
	})
	app.Get("/checkout", h.Session)
	app.Post("/checkout/start", h.Start)
	app.Post("/checkout/coupon", h.ApplyCoupon)
	app.Delete("/checkout/coupon", h.RemoveCoupon)
	app.Put("/checkout/delivery", h.SaveDelivery)
	app.Get("/checkout/delivery", h.GetDelivery)
	app.Delete("/checkout/delivery", h.ClearDelivery)
	app.Post("/checkout/payment", h.SelectPayment)
	app.Post("/checkout/submit", h.Submit)
	return app
}

func twoItemCart() []cartdomain.CartItem {
	return []cartdomain.CartItem{
		{ID: "a", Name: "Paneer Tikka", UnitPrice: decimal.NewFromInt(250)},
		{ID: "b", Name: "Masala Dosa", UnitPrice: decimal.NewFromInt(99)},
	}
}

func request(t *testing.T, app *fiber.App, method, path, body string) int {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

// TestCheckoutHandler_FullFlow verifies the whole flow over HTTP.
func TestCheckoutHandler_FullFlow(t *testing.T) {
	cart := &mockCartReader{items: twoItemCart()}
	notifier := &mockNotifier{}
	app := newTestApp(cart, notifier)

	assert.Equal(t, fiber.StatusCreated, request(t, app, "POST", "/checkout/start", ""))
	assert.Equal(t, fiber.StatusNoContent, request(t, app, "PUT", "/checkout/delivery",
		`{"recipient_name":"Jane Doe","phone":"+919876543210","address_text":"12 MG Road","address_kind":"home"}`))
	assert.Equal(t, fiber.StatusNoContent, request(t, app, "POST", "/checkout/payment", `{"method":"cod"}`))

	req := httptest.NewRequest("POST", "/checkout/submit", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result struct {
		Submission   domain.OrderSubmission `json:"submission"`
		WhatsAppLink string                 `json:"whatsapp_link"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "Jane Doe", result.Submission.CustomerName)
	assert.True(t, strings.HasPrefix(result.WhatsAppLink, "https://wa.me/918688605760?text="))
	assert.Len(t, notifier.texts, 1)
}

// TestCheckoutHandler_Start_EmptyCart verifies 409 with nothing to buy.
func TestCheckoutHandler_Start_EmptyCart(t *testing.T) {
	app := newTestApp(&mockCartReader{}, &mockNotifier{})

	assert.Equal(t, fiber.StatusConflict, request(t, app, "POST", "/checkout/start", ""))
}

// TestCheckoutHandler_Session_NoSession verifies 409 before start.
func TestCheckoutHandler_Session_NoSession(t *testing.T) {
	app := newTestApp(&mockCartReader{items: twoItemCart()}, &mockNotifier{})

	assert.Equal(t, fiber.StatusConflict, request(t, app, "GET", "/checkout", ""))
}

// TestCheckoutHandler_ApplyCoupon verifies coupon application and lookup
// failures.
func TestCheckoutHandler_ApplyCoupon(t *testing.T) {
	app := newTestApp(&mockCartReader{items: twoItemCart()}, &mockNotifier{})
	require.Equal(t, fiber.StatusCreated, request(t, app, "POST", "/checkout/start", ""))

	req := httptest.NewRequest("POST", "/checkout/coupon", strings.NewReader(`{"code":"flat100"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var coupon struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&coupon))
	assert.Equal(t, "FLAT100", coupon.Code)

	assert.Equal(t, fiber.StatusBadRequest, request(t, app, "POST", "/checkout/coupon", `{"code":"NOPE"}`))
	assert.Equal(t, fiber.StatusNoContent, request(t, app, "DELETE", "/checkout/coupon", ""))
}

// TestCheckoutHandler_SaveDelivery_Invalid verifies field validation maps
// to 400 with the failing field.
func TestCheckoutHandler_SaveDelivery_Invalid(t *testing.T) {
	app := newTestApp(&mockCartReader{items: twoItemCart()}, &mockNotifier{})
	require.Equal(t, fiber.StatusCreated, request(t, app, "POST", "/checkout/start", ""))

	req := httptest.NewRequest("PUT", "/checkout/delivery", strings.NewReader(`{"recipient_name":"Jane Doe"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Message, "phone")
}

// TestCheckoutHandler_DeliveryRoundTrip verifies save, read back and clear.
func TestCheckoutHandler_DeliveryRoundTrip(t *testing.T) {
	app := newTestApp(&mockCartReader{items: twoItemCart()}, &mockNotifier{})
	require.Equal(t, fiber.StatusCreated, request(t, app, "POST", "/checkout/start", ""))

	assert.Equal(t, fiber.StatusNotFound, request(t, app, "GET", "/checkout/delivery", ""))

	require.Equal(t, fiber.StatusNoContent, request(t, app, "PUT", "/checkout/delivery",
		`{"recipient_name":"Jane Doe","phone":"+919876543210","address_text":"12 MG Road","address_kind":"work"}`))

	req := httptest.NewRequest("GET", "/checkout/delivery", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var details domain.DeliveryDetails
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&details))
	assert.Equal(t, domain.AddressWork, details.AddressKind)

	assert.Equal(t, fiber.StatusNoContent, request(t, app, "DELETE", "/checkout/delivery", ""))
	assert.Equal(t, fiber.StatusNotFound, request(t, app, "GET", "/checkout/delivery", ""))
}

// TestCheckoutHandler_SelectPayment_Disabled verifies dead methods map
// to 409.
func TestCheckoutHandler_SelectPayment_Disabled(t *testing.T) {
	app := newTestApp(&mockCartReader{items: twoItemCart()}, &mockNotifier{})
	require.Equal(t, fiber.StatusCreated, request(t, app, "POST", "/checkout/start", ""))
	require.Equal(t, fiber.StatusNoContent, request(t, app, "PUT", "/checkout/delivery",
		`{"recipient_name":"Jane Doe","phone":"+919876543210","address_text":"12 MG Road"}`))

	assert.Equal(t, fiber.StatusConflict, request(t, app, "POST", "/checkout/payment", `{"method":"card"}`))
	assert.Equal(t, fiber.StatusBadRequest, request(t, app, "POST", "/checkout/payment", `{"method":"crypto"}`))
}

// TestCheckoutHandler_Submit_DispatchFails verifies a failed notification
// maps to 502 and the flow stays retryable.
func TestCheckoutHandler_Submit_DispatchFails(t *testing.T) {
	notifier := &mockNotifier{sendErr: errors.New("whatsapp down")}
	app := newTestApp(&mockCartReader{items: twoItemCart()}, notifier)
	require.Equal(t, fiber.StatusCreated, request(t, app, "POST", "/checkout/start", ""))
	require.Equal(t, fiber.StatusNoContent, request(t, app, "PUT", "/checkout/delivery",
		`{"recipient_name":"Jane Doe","phone":"+919876543210","address_text":"12 MG Road"}`))
	require.Equal(t, fiber.StatusNoContent, request(t, app, "POST", "/checkout/payment", `{"method":"cod"}`))

	assert.Equal(t, fiber.StatusBadGateway, request(t, app, "POST", "/checkout/submit", ""))

	notifier.sendErr = nil
	assert.Equal(t, fiber.StatusOK, request(t, app, "POST", "/checkout/submit", ""))
}

// TestCheckoutHandler_Submit_ClearFails verifies a clear failure maps to
// 502 and the retried submit finalizes without a second notification.
func TestCheckoutHandler_Submit_ClearFails(t *testing.T) {
	errs := make([]error, 0, 3)
	for i := 0; i < 3; i++ {
		errs = append(errs, errors.New("cms down"))
	}
	notifier := &mockNotifier{}
	app := newTestApp(&mockCartReader{items: twoItemCart(), clearErrs: errs}, notifier)
	require.Equal(t, fiber.StatusCreated, request(t, app, "POST", "/checkout/start", ""))
	require.Equal(t, fiber.StatusNoContent, request(t, app, "PUT", "/checkout/delivery",
		`{"recipient_name":"Jane Doe","phone":"+919876543210","address_text":"12 MG Road"}`))
	require.Equal(t, fiber.StatusNoContent, request(t, app, "POST", "/checkout/payment", `{"method":"cod"}`))

	assert.Equal(t, fiber.StatusBadGateway, request(t, app, "POST", "/checkout/submit", ""))

	// The committed order blocks a fresh checkout until finalized.
	assert.Equal(t, fiber.StatusConflict, request(t, app, "POST", "/checkout/start", ""))

	assert.Equal(t, fiber.StatusOK, request(t, app, "POST", "/checkout/submit", ""))
	assert.Len(t, notifier.texts, 1)
}
