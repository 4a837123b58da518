package handler

import (
	"net/http"

	"foodie-api/internal/features/pricing/ports"

	"github.com/gofiber/fiber/v2"
)

// PricingHandler handles HTTP requests for the offers page.
type PricingHandler struct {
	// offers lists the standing coupons.
	offers ports.OfferLister
}

// NewPricingHandler creates a new instance of PricingHandler.
func NewPricingHandler(offers ports.OfferLister) *PricingHandler {
	return &PricingHandler{
		offers: offers,
	}
}

// ListOffers handles the request for all standing coupon offers.
// @Summary List active offers
// @Produce json
// @Success 200 {array} domain.Coupon
// @Router /offers [get]
func (h *PricingHandler) ListOffers(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(h.offers.All())
}
