package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trendella/storefront/internal/service"
	"github.com/trendella/storefront/pkg/health"
	"github.com/trendella/storefront/pkg/middleware"
)

const serviceName = "storefront"

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	cartService *service.CartService,
	catalogService *service.CatalogService,
	reviewService *service.ReviewService,
	maxUploadBytes int64,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware. RequestLogger sits after RequestLogging and Tracing
	// so the request-scoped logger sees the correlation and span IDs.
	r.Use(middleware.CORS)
	r.Use(middleware.Recovery(logger))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Compress(5))
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics(serviceName))
	r.Use(middleware.RequestLogger(logger))

	// Operational endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	cartHandler := NewCartHandler(cartService, logger)
	productHandler := NewProductHandler(catalogService, maxUploadBytes, logger)
	reviewHandler := NewReviewHandler(reviewService, logger)

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(RequireUserID)
		r.Use(ContentTypeJSON)

		r.Get("/", cartHandler.GetCart)
		r.Post("/items", cartHandler.AddItem)
		r.Put("/items/{itemId}", cartHandler.UpdateItem)
	})

	r.Route("/api/v1/products", func(r chi.Router) {
		// CreateProduct takes a multipart form, so no JSON enforcement here.
		r.Get("/", productHandler.ListProducts)
		r.Post("/", productHandler.CreateProduct)
		r.Get("/{productId}", productHandler.GetProduct)
		r.Delete("/{productId}", productHandler.DeleteProduct)

		r.Route("/{productId}/reviews", func(r chi.Router) {
			r.Use(ContentTypeJSON)

			r.Get("/", reviewHandler.ListReviews)
			r.With(RequireUserID).Post("/", reviewHandler.SubmitReview)
		})
	})

	r.Route("/api/v1/reviews", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Post("/{reviewId}/moderation", reviewHandler.ModerateReview)
	})

	return r
}
