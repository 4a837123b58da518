package handler

import (
	"errors"
	"net/http"

	"foodie-api/internal/core/identity"
	"foodie-api/internal/core/logger"
	"foodie-api/internal/features/cart/domain"
	"foodie-api/internal/features/cart/ports"
	"foodie-api/internal/features/cart/service"
	pricingdomain "foodie-api/internal/features/pricing/domain"
	pricingservice "foodie-api/internal/features/pricing/service"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartHandler handles HTTP requests related to the cart.
type CartHandler struct {
	// service is the CartService instance.
	service *service.CartService
	// pricing computes live quotes for the cart summary.
	pricing *pricingservice.PricingService
	// counter serves the cached cart-count badge.
	counter ports.CartCounter
}

// NewCartHandler creates a new instance of CartHandler.
func NewCartHandler(s *service.CartService, pricing *pricingservice.PricingService, counter ports.CartCounter) *CartHandler {
	return &CartHandler{
		service: s,
		pricing: pricing,
		counter: counter,
	}
}

// addItemRequest is the payload for adding a cart row.
type addItemRequest struct {
	// Name is the product name.
	Name string `json:"name"`
	// Description is the product description.
	Description string `json:"description"`
	// UnitPrice is the product price.
	UnitPrice float64 `json:"unit_price"`
	// ImageRef is an optional product image URL.
	ImageRef string `json:"image_ref"`
}

// AddItem handles the request to add an item to the cart.
// @Summary Add item to cart
// @Description Creates a new cart row for the authenticated user. Each call creates a new row.
// @Accept json
// @Produce json
// @Param item body addItemRequest true "Item to add"
// @Success 201 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	rayID := rayIDFromCtx(c)
	user, ok := identity.UserFromCtx(c)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(ErrorResponse{Message: "Authentication required", RayID: rayID})
	}

	var req addItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Message: "Invalid request body", RayID: rayID})
	}

	if req.Name == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Message: "Item name is required", RayID: rayID})
	}
	if req.UnitPrice < 0 {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Message: "Item price must not be negative", RayID: rayID})
	}

	id, err := h.service.AddItem(c.UserContext(), user.Email, user.Phone, domain.NewCartItem{
		Name:        req.Name,
		Description: req.Description,
		UnitPrice:   decimal.NewFromFloat(req.UnitPrice),
		ImageRef:    req.ImageRef,
	})
	if err != nil {
		return h.storeError(c, rayID, "Failed to add cart item", err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"id": id})
}

// ListItems handles the request to list the cart.
// @Summary List cart items
// @Produce json
// @Success 200 {array} domain.CartItem
// @Failure 503 {object} ErrorResponse
// @Router /cart [get]
func (h *CartHandler) ListItems(c *fiber.Ctx) error {
	rayID := rayIDFromCtx(c)
	user, ok := identity.UserFromCtx(c)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(ErrorResponse{Message: "Authentication required", RayID: rayID})
	}

	items, err := h.service.ListItems(c.UserContext(), user.Email)
	if err != nil {
		return h.storeError(c, rayID, "Failed to list cart items", err)
	}

	return c.Status(http.StatusOK).JSON(items)
}

// DeleteItem handles the request to remove one cart row.
// @Summary Delete cart item
// @Produce json
// @Param id path string true "Cart row ID"
// @Success 204
// @Failure 503 {object} ErrorResponse
// @Router /cart/items/{id} [delete]
func (h *CartHandler) DeleteItem(c *fiber.Ctx) error {
	rayID := rayIDFromCtx(c)
	user, ok := identity.UserFromCtx(c)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(ErrorResponse{Message: "Authentication required", RayID: rayID})
	}

	id := c.Params("id")
	if id == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Message: "Cart row ID is required", RayID: rayID})
	}

	if err := h.service.DeleteItem(c.UserContext(), user.Email, id); err != nil {
		return h.storeError(c, rayID, "Failed to delete cart item", err)
	}

	return c.SendStatus(http.StatusNoContent)
}

// Count handles the request for the header badge count.
// @Summary Get cart count
// @Produce json
// @Success 200 {object} map[string]int
// @Failure 503 {object} ErrorResponse
// @Router /cart/count [get]
func (h *CartHandler) Count(c *fiber.Ctx) error {
	rayID := rayIDFromCtx(c)
	user, ok := identity.UserFromCtx(c)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(ErrorResponse{Message: "Authentication required", RayID: rayID})
	}

	count, err := h.counter.Count(c.UserContext(), user.Email)
	if err != nil {
		return h.storeError(c, rayID, "Failed to count cart items", err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"count": count})
}

// Summary handles the request for a live order quote.
// @Summary Get cart summary
// @Description Computes subtotal, tax, delivery fee, optional coupon discount and grand total from the live cart.
// @Produce json
// @Param coupon query string false "Coupon code"
// @Success 200 {object} pricingdomain.OrderTotals
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /cart/summary [get]
func (h *CartHandler) Summary(c *fiber.Ctx) error {
	rayID := rayIDFromCtx(c)
	user, ok := identity.UserFromCtx(c)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(ErrorResponse{Message: "Authentication required", RayID: rayID})
	}

	var coupon *pricingdomain.Coupon
	if code := c.Query("coupon"); code != "" {
		var err error
		coupon, err = h.pricing.ApplyCoupon(code)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Message: "Invalid coupon code", RayID: rayID})
		}
	}

	items, err := h.service.ListItems(c.UserContext(), user.Email)
	if err != nil {
		return h.storeError(c, rayID, "Failed to list cart items", err)
	}

	totals := h.pricing.ComputeTotals(items, coupon).Rounded()
	return c.Status(http.StatusOK).JSON(totals)
}

// storeError logs and maps cart store failures to a retryable response.
func (h *CartHandler) storeError(c *fiber.Ctx, rayID, msg string, err error) error {
	logger.Get().Error(msg,
		zap.String("ray_id", rayID),
		zap.Error(err),
	)

	status := http.StatusInternalServerError
	respMsg := "Internal Server Error"
	if errors.Is(err, service.ErrStoreUnavailable) {
		status = http.StatusServiceUnavailable
		respMsg = "Cart store unavailable, please try again"
	}

	return c.Status(status).JSON(ErrorResponse{Message: respMsg, RayID: rayID})
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
