package handler

import (
	"errors"
	"net/http"

	"foodie-api/internal/core/identity"
	"foodie-api/internal/core/logger"
	"foodie-api/internal/features/checkout/domain"
	"foodie-api/internal/features/checkout/service"
	pricingdomain "foodie-api/internal/features/pricing/domain"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CheckoutHandler handles HTTP requests for the checkout flow.
type CheckoutHandler struct {
	// service is the CheckoutService instance.
	service *service.CheckoutService
}

// NewCheckoutHandler creates a new instance of CheckoutHandler.
func NewCheckoutHandler(s *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		service: s,
	}
}

// Session handles the request for the current checkout view.
// @Summary Get checkout session
// @Produce json
// @Success 200 {object} service.SessionView
// @Failure 409 {object} ErrorResponse
// @Router /checkout [get]
func (h *CheckoutHandler) Session(c *fiber.Ctx) error {
	rayID := rayIDFromCtx(c)
	user, ok := identity.UserFromCtx(c)
	if !ok {
		return unauthenticated(c, rayID)
	}

	view, err := h.service.Session(c.UserContext(), user.Email)
	if err != nil {
		return h.mapError(c, rayID, "Failed to load checkout session", err)
	}

	return c.Status(http.StatusOK).JSON(view)
}

// Start handles the request to begin a checkout.
// @Summary Start checkout
// @Description Opens a fresh checkout session for the authenticated user's cart.
// @Produce json
// @Success 201 {object} service.SessionView
// @Failure 409 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /checkout/start [post]
func (h *CheckoutHandler) Start(c *fiber.Ctx) error {
	rayID := rayIDFromCtx(c)
	user, ok := identity.UserFromCtx(c)
	if !ok {
		return unauthenticated(c, rayID)
	}

	view, err := h.service.Start(c.UserContext(), user.Email)
	if err != nil {
		return h.mapError(c, rayID, "Failed to start checkout", err)
	}

	return c.Status(http.StatusCreated).JSON(view)
}

// couponRequest is the payload for applying a coupon.
type couponRequest struct {
	// Code is the coupon code, matched case-insensitively.
	Code string `json:"code"`
}

// ApplyCoupon handles the request to apply a coupon to the session.
// @Summary Apply coupon
// @Accept json
// @Produce json
// @Param coupon body couponRequest true "Coupon code"
// @Success 200 {object} pricingdomain.Coupon
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /checkout/coupon [post]
func (h *CheckoutHandler) ApplyCoupon(c *fiber.Ctx) error {
	rayID := rayIDFromCtx(c)
	user, ok := identity.UserFromCtx(c)
	if !ok {
		return unauthenticated(c, rayID)
	}

	var req couponRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Message: "Invalid request body", RayID: rayID})
	}

	coupon, err := h.service.ApplyCoupon(user.Email, req.Code)
	if err != nil {
		return h.mapError(c, rayID, "Failed to apply coupon", err)
	}

	return c.Status(http.StatusOK).JSON(coupon)
}

// RemoveCoupon handles the request to detach the applied coupon.
// @Summary Remove coupon
// @Produce json
// @Success 204
// @Failure 409 {object} ErrorResponse
// @Router /checkout/coupon [delete]
func (h *CheckoutHandler) RemoveCoupon(c *fiber.Ctx) error {
	rayID := rayIDFromCtx(c)
	user, ok := identity.UserFromCtx(c)
	if !ok {
		return unauthenticated(c, rayID)
	}

	if err := h.service.RemoveCoupon(user.Email); err != nil {
		return h.mapError(c, rayID, "Failed to remove coupon", err)
	}

	return c.SendStatus(http.StatusNoContent)
}

// SaveDelivery handles the request to save delivery details.
// @Summary Save delivery details
// @Accept json
// @Produce json
// @Param details body domain.DeliveryDetails true "Delivery details"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /checkout/delivery [put]
func (h *CheckoutHandler) SaveDelivery(c *fiber.Ctx) error {
	rayID := rayIDFromCtx(c)
	user, ok := identity.UserFromCtx(c)
	if !ok {
		return unauthenticated(c, rayID)
	}

	var details domain.DeliveryDetails
	if err := c.BodyParser(&details); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Message: "Invalid request body", RayID: rayID})
	}
	if details.AddressKind == "" {
		details.AddressKind = domain.AddressHome
	}

	if err := h.service.SaveDeliveryDetails(c.UserContext(), user.Email, details); err != nil {
		return h.mapError(c, rayID, "Failed to save delivery details", err)
	}

	return c.SendStatus(http.StatusNoContent)
}

// GetDelivery handles the request for the saved delivery details.
// @Summary Get saved delivery details
// @Produce json
// @Success 200 {object} domain.DeliveryDetails
// @Failure 404 {object} ErrorResponse
// @Router /checkout/delivery [get]
func (h *CheckoutHandler) GetDelivery(c *fiber.Ctx) error {
	rayID := rayIDFromCtx(c)
	user, ok := identity.UserFromCtx(c)
	if !ok {
		return unauthenticated(c, rayID)
	}

	details, err := h.service.DeliveryDetails(c.UserContext(), user.Email)
	if err != nil {
		return h.mapError(c, rayID, "Failed to load delivery details", err)
	}
	if details == nil {
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{Message: "No delivery details saved", RayID: rayID})
	}

	return c.Status(http.StatusOK).JSON(details)
}

// ClearDelivery handles the request to remove the saved delivery details.
// @Summary Clear saved delivery details
// @Produce json
// @Success 204
// @Failure 503 {object} ErrorResponse
// @Router /checkout/delivery [delete]
func (h *CheckoutHandler) ClearDelivery(c *fiber.Ctx) error {
	rayID := rayIDFromCtx(c)
	user, ok := identity.UserFromCtx(c)
	if !ok {
		return unauthenticated(c, rayID)
	}

	if err := h.service.ClearDeliveryDetails(c.UserContext(), user.Email); err != nil {
		return h.mapError(c, rayID, "Failed to clear delivery details", err)
	}

	return c.SendStatus(http.StatusNoContent)
}

// paymentRequest is the payload for choosing a payment method.
type paymentRequest struct {
	// Method is one of card, upi, wallet, cod.
	Method string `json:"method"`
}

// SelectPayment handles the request to choose a payment method.
// @Summary Select payment method
// @Accept json
// @Produce json
// @Param payment body paymentRequest true "Payment method"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /checkout/payment [post]
func (h *CheckoutHandler) SelectPayment(c *fiber.Ctx) error {
	rayID := rayIDFromCtx(c)
	user, ok := identity.UserFromCtx(c)
	if !ok {
		return unauthenticated(c, rayID)
	}

	var req paymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Message: "Invalid request body", RayID: rayID})
	}

	if err := h.service.SelectPayment(user.Email, domain.PaymentMethod(req.Method)); err != nil {
		return h.mapError(c, rayID, "Failed to select payment method", err)
	}

	return c.SendStatus(http.StatusNoContent)
}

// Submit handles the request to place the order.
// @Summary Submit order
// @Description Snapshots the cart, dispatches the order to the restaurant and clears the cart.
// @Produce json
// @Success 200 {object} service.SubmitResult
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /checkout/submit [post]
func (h *CheckoutHandler) Submit(c *fiber.Ctx) error {
	rayID := rayIDFromCtx(c)
	user, ok := identity.UserFromCtx(c)
	if !ok {
		return unauthenticated(c, rayID)
	}

	result, err := h.service.Submit(c.UserContext(), user.Email)
	if err != nil {
		return h.mapError(c, rayID, "Failed to submit order", err)
	}

	return c.Status(http.StatusOK).JSON(result)
}

// mapError logs and maps checkout failures to HTTP responses.
func (h *CheckoutHandler) mapError(c *fiber.Ctx, rayID, msg string, err error) error {
	logger.Get().Error(msg,
		zap.String("ray_id", rayID),
		zap.Error(err),
	)

	var vErr *domain.ValidationError
	var dispatchErr *service.NotificationDispatchError
	var clearErr *service.CartClearError

	switch {
	case errors.As(err, &vErr):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Message: vErr.Error(), RayID: rayID})
	case errors.Is(err, pricingdomain.ErrInvalidCoupon):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Message: "Invalid coupon code", RayID: rayID})
	case errors.Is(err, service.ErrEmptyCart):
		return c.Status(http.StatusConflict).JSON(ErrorResponse{Message: "Cart is empty", RayID: rayID})
	case errors.Is(err, service.ErrNoSession):
		return c.Status(http.StatusConflict).JSON(ErrorResponse{Message: "No active checkout session", RayID: rayID})
	case errors.Is(err, service.ErrInvalidTransition):
		return c.Status(http.StatusConflict).JSON(ErrorResponse{Message: "Operation not allowed in the current checkout step", RayID: rayID})
	case errors.Is(err, service.ErrPaymentMethodUnavailable):
		return c.Status(http.StatusConflict).JSON(ErrorResponse{Message: "Payment method not available", RayID: rayID})
	case errors.Is(err, service.ErrSubmissionInFlight):
		return c.Status(http.StatusConflict).JSON(ErrorResponse{Message: "Order submission already in progress", RayID: rayID})
	case errors.Is(err, service.ErrSubmissionIncomplete):
		return c.Status(http.StatusConflict).JSON(ErrorResponse{Message: "Order already sent, retry submit to finalize it", RayID: rayID})
	case errors.Is(err, service.ErrDeliveryDetailsMissing):
		return c.Status(http.StatusConflict).JSON(ErrorResponse{Message: "Delivery details missing", RayID: rayID})
	case errors.As(err, &dispatchErr):
		return c.Status(http.StatusBadGateway).JSON(ErrorResponse{Message: "Could not notify the restaurant, order not placed", RayID: rayID})
	case errors.As(err, &clearErr):
		return c.Status(http.StatusBadGateway).JSON(ErrorResponse{Message: "Order sent but cart could not be cleared, please retry", RayID: rayID})
	case errors.Is(err, service.ErrStoreUnavailable):
		return c.Status(http.StatusServiceUnavailable).JSON(ErrorResponse{Message: "Checkout unavailable, please try again", RayID: rayID})
	}

	return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{Message: "Internal Server Error", RayID: rayID})
}

// unauthenticated is the shared 401 response.
func unauthenticated(c *fiber.Ctx, rayID string) error {
	return c.Status(http.StatusUnauthorized).JSON(ErrorResponse{Message: "Authentication required", RayID: rayID})
}

// rayIDFromCtx extracts the request id set by the middleware.
func rayIDFromCtx(c *fiber.Ctx) string {
	rayID, ok := c.Locals("requestid").(string)
	if !ok {
		return "unknown"
	}
	return rayID
}

// ErrorResponse represents the structure of an error response.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for debugging.
	RayID string `json:"ray_id"`
}
