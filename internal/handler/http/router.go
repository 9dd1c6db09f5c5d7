package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nmarker/unishopping/pkg/health"
	"github.com/nmarker/unishopping/pkg/middleware"

	"github.com/nmarker/unishopping/internal/cart"
	"github.com/nmarker/unishopping/internal/catalog"
	"github.com/nmarker/unishopping/internal/config"
	"github.com/nmarker/unishopping/internal/gateway"
	"github.com/nmarker/unishopping/internal/notification"
)

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	store *cart.Store,
	cat catalog.Catalog,
	gw gateway.PaymentGateway,
	notifier notification.Channel,
	healthHandler *health.Handler,
	cfg *config.Config,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins
	corsCfg.Environment = cfg.Environment

	// Global middleware
	r.Use(middleware.CORS(corsCfg))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	catalogHandler := NewCatalogHandler(cat, logger)
	cartHandler := NewCartHandler(store, cat, logger)
	checkoutHandler := NewCheckoutHandler(store, gw, notifier, logger, cfg.SubmitTimeout)

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", catalogHandler.ListProducts)
		r.Post("/", catalogHandler.CreateProduct)
		r.Get("/{id}", catalogHandler.GetProduct)
		r.Put("/{id}", catalogHandler.UpdateProduct)
		r.Delete("/{id}", catalogHandler.DeleteProduct)
	})

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", cartHandler.GetCart)
		r.Delete("/", cartHandler.ClearCart)
		r.Post("/items", cartHandler.AddItem)
		r.Put("/items/{key}", cartHandler.SetQuantity)
		r.Delete("/items/{key}", cartHandler.RemoveItem)
	})

	r.Route("/api/v1/checkout", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/summary", checkoutHandler.GetSummary)
		r.Post("/", checkoutHandler.Submit)
	})

	return r
}
