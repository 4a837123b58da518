package handler

import (
	"errors"
	"net/http"

	"foodie-api/internal/core/logger"
	"foodie-api/internal/features/catalog/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CatalogHandler handles HTTP requests for storefront browsing.
type CatalogHandler struct {
	// service is the CatalogService instance.
	service *service.CatalogService
}

// NewCatalogHandler creates a new instance of CatalogHandler.
func NewCatalogHandler(s *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		service: s,
	}
}

// ListCategories handles the request to list all categories.
// @Summary List categories
// @Produce json
// @Success 200 {array} domain.Category
// @Failure 503 {object} ErrorResponse
// @Router /categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	rayID := rayIDFromCtx(c)

	categories, err := h.service.ListCategories(c.UserContext())
	if err != nil {
		return h.mapError(c, rayID, "Failed to list categories", err)
	}

	return c.Status(http.StatusOK).JSON(categories)
}

// ListRestaurants handles the request to list restaurants under a category.
// @Summary List restaurants by category
// @Produce json
// @Param category query string true "Category slug"
// @Success 200 {array} domain.Restaurant
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /restaurants [get]
func (h *CatalogHandler) ListRestaurants(c *fiber.Ctx) error {
	rayID := rayIDFromCtx(c)

	categorySlug := c.Query("category")
	if categorySlug == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Category slug is required",
			RayID:   rayID,
		})
	}

	restaurants, err := h.service.ListRestaurants(c.UserContext(), categorySlug)
	if err != nil {
		return h.mapError(c, rayID, "Failed to list restaurants", err)
	}

	return c.Status(http.StatusOK).JSON(restaurants)
}

// GetRestaurant handles the request for one restaurant with its menu.
// @Summary Get restaurant by slug
// @Produce json
// @Param slug path string true "Restaurant slug"
// @Success 200 {object} domain.Restaurant
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /restaurants/{slug} [get]
func (h *CatalogHandler) GetRestaurant(c *fiber.Ctx) error {
	rayID := rayIDFromCtx(c)

	slug := c.Params("slug")
	if slug == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Restaurant slug is required",
			RayID:   rayID,
		})
	}

	restaurant, err := h.service.GetRestaurant(c.UserContext(), slug)
	if err != nil {
		if errors.Is(err, service.ErrRestaurantNotFound) {
			return c.Status(http.StatusNotFound).JSON(ErrorResponse{
				Message: "Restaurant not found",
				RayID:   rayID,
			})
		}
		return h.mapError(c, rayID, "Failed to get restaurant", err)
	}

	return c.Status(http.StatusOK).JSON(restaurant)
}

// mapError logs and maps catalog failures to a retryable response.
func (h *CatalogHandler) mapError(c *fiber.Ctx, rayID, msg string, err error) error {
	logger.Get().Error(msg,
		zap.String("ray_id", rayID),
		zap.Error(err),
	)

	status := http.StatusInternalServerError
	respMsg := "Internal Server Error"
	if errors.Is(err, service.ErrStoreUnavailable) {
		status = http.StatusServiceUnavailable
		respMsg = "Catalog unavailable, please try again"
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
