package main

import (
	"log"
	"net/http"

	"plantstore-bff/internal/cart"
	"plantstore-bff/internal/checkout"
	"plantstore-bff/internal/config"
	"plantstore-bff/internal/db"
	"plantstore-bff/internal/logger"
	"plantstore-bff/internal/metrics"
	"plantstore-bff/internal/middleware"
	"plantstore-bff/internal/order"
	"plantstore-bff/internal/product"
	"plantstore-bff/internal/transport"
	"plantstore-bff/internal/wishlist"
)

// setupRouter builds the full HTTP surface: routes, per-handler metrics
// and rate limiting, then the request-id and logging chain outermost.
func setupRouter(h *transport.Handler, m *metrics.ServerMetrics) http.Handler {
	mux := http.NewServeMux()

	h.Register(mux, func(name string, hn http.Handler) http.Handler {
		return m.Instrument(name, middleware.RateLimitMiddleware(hn))
	})
	mux.Handle("GET /metrics", m.Handler())

	return logger.RequestIDMiddleware(logger.LoggingMiddleware(mux))
}

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo)

	wishlistRepo := wishlist.NewRepository(database)
	wishlistSvc := wishlist.NewService(wishlistRepo)

	productGw := product.NewGateway(cfg.ProductAPI)
	orderGw := order.NewGateway(cfg.CommerceAPI)

	checkoutSvc := checkout.NewService(cartSvc, productGw, orderGw)

	m := metrics.NewServerMetrics("api")

	h := transport.NewHandler(cartSvc, wishlistSvc, productGw, orderGw, checkoutSvc, []byte(cfg.SessionSecret))

	router := setupRouter(h, m)

	log.Printf("🚀 Storefront API running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(http.ListenAndServe(":"+cfg.AppPort, router))
}
