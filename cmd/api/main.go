package main

import (
	"context"
	"log"
	"time"

	"foodie-api/internal/core/cache"
	"foodie-api/internal/core/config"
	"foodie-api/internal/core/events"
	"foodie-api/internal/core/identity"
	"foodie-api/internal/core/logger"
	"foodie-api/internal/core/server"
	cartadapter "foodie-api/internal/features/cart/adapters"
	carthandler "foodie-api/internal/features/cart/handler"
	cartservice "foodie-api/internal/features/cart/service"
	catalogadapter "foodie-api/internal/features/catalog/adapters"
	cataloghandler "foodie-api/internal/features/catalog/handler"
	catalogservice "foodie-api/internal/features/catalog/service"
	checkoutadapter "foodie-api/internal/features/checkout/adapters"
	checkouthandler "foodie-api/internal/features/checkout/handler"
	checkoutservice "foodie-api/internal/features/checkout/service"
	pricingadapter "foodie-api/internal/features/pricing/adapters"
	pricinghandler "foodie-api/internal/features/pricing/handler"
	pricingservice "foodie-api/internal/features/pricing/service"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// @title Foodie API
// @version 1.0
// @description Food ordering storefront: catalog browsing, cart, pricing and WhatsApp checkout.
// @contact.name API Support
// @contact.email support@foodieapi.dev
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	// Initialize Redis and run Health Check
	redisCache, err := cache.NewRedisAdapter(cfg.Redis.URL)
	if err != nil {
		l.Fatal("Failed to create Redis adapter", zap.Error(err))
	}
	defer redisCache.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisCache.Ping(pingCtx); err != nil {
		l.Fatal("Redis Health Check Failed", zap.Error(err))
	}
	l.Info("Redis connection verified")

	// Identity provider and auth middleware
	clerkAdapter := identity.NewClerkAdapter(cfg.Clerk)
	requireUser := identity.RequireUser(clerkAdapter)

	// Event bus wiring the cart mutations to the count projection
	bus := events.NewBus()

	// Cart feature
	cartStore := cartadapter.NewHygraphCartStore(cfg.Hygraph.Endpoint)
	cartSvc := cartservice.NewCartService(cartStore, bus)
	countProjector := cartadapter.NewCountProjector(cartStore, redisCache)
	bus.SubscribeCartMutated(countProjector.HandleCartMutated)

	// Pricing feature
	couponRegistry := pricingadapter.NewStaticCouponRegistry()
	pricingSvc := pricingservice.NewPricingService(
		couponRegistry,
		decimal.NewFromFloat(cfg.Pricing.TaxRate),
		decimal.NewFromFloat(cfg.Pricing.DeliveryFee),
	)
	pricingHdl := pricinghandler.NewPricingHandler(couponRegistry)

	cartHdl := carthandler.NewCartHandler(cartSvc, pricingSvc, countProjector)

	// Catalog feature
	catalogAdapter := catalogadapter.NewHygraphAdapter(cfg.Hygraph.Endpoint)
	catalogSvc := catalogservice.NewCatalogService(catalogAdapter)
	catalogHdl := cataloghandler.NewCatalogHandler(catalogSvc)

	// Checkout feature
	deliveryRepo := checkoutadapter.NewRedisDeliveryRepo(redisCache)
	notifier := checkoutadapter.NewWhatsAppNotifier(cfg.WhatsApp.APIURL, cfg.WhatsApp.PhoneNumberID, cfg.WhatsApp.AccessToken)
	checkoutSvc := checkoutservice.NewCheckoutService(cartSvc, pricingSvc, deliveryRepo, notifier, cfg.WhatsApp.Destination)
	checkoutHdl := checkouthandler.NewCheckoutHandler(checkoutSvc)

	srv := server.New(cfg)

	// Public storefront routes
	srv.App.Get("/categories", catalogHdl.ListCategories)
	srv.App.Get("/restaurants", catalogHdl.ListRestaurants)
	srv.App.Get("/restaurants/:slug", catalogHdl.GetRestaurant)
	srv.App.Get("/offers", pricingHdl.ListOffers)

	// Authenticated cart routes
	cart := srv.App.Group("/cart", requireUser)
	cart.Get("/", cartHdl.ListItems)
	cart.Post("/items", cartHdl.AddItem)
	cart.Delete("/items/:id", cartHdl.DeleteItem)
	cart.Get("/count", cartHdl.Count)
	cart.Get("/summary", cartHdl.Summary)

	// Authenticated checkout routes
	checkout := srv.App.Group("/checkout", requireUser)
	checkout.Get("/", checkoutHdl.Session)
	checkout.Post("/start", checkoutHdl.Start)
	checkout.Post("/coupon", checkoutHdl.ApplyCoupon)
	checkout.Delete("/coupon", checkoutHdl.RemoveCoupon)
	checkout.Put("/delivery", checkoutHdl.SaveDelivery)
	checkout.Get("/delivery", checkoutHdl.GetDelivery)
	checkout.Delete("/delivery", checkoutHdl.ClearDelivery)
	checkout.Post("/payment", checkoutHdl.SelectPayment)
	checkout.Post("/submit", checkoutHdl.Submit)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
