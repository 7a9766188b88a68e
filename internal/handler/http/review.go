package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/trendella/storefront/internal/domain"
	"github.com/trendella/storefront/internal/service"
	"github.com/trendella/storefront/pkg/httputil"
	"github.com/trendella/storefront/pkg/validator"
)

// ReviewHandler handles HTTP requests for review endpoints.
type ReviewHandler struct {
	service *service.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a new review HTTP handler.
func NewReviewHandler(svc *service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: svc,
		logger:  logger,
	}
}

// SubmitReviewRequest is the JSON request body for submitting a review.
type SubmitReviewRequest struct {
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	ReviewText string `json:"review_text"`
}

// ModerateReviewRequest is the JSON request body for a moderation decision.
type ModerateReviewRequest struct {
	Action string `json:"action" validate:"required,oneof=approve reject"`
}

// SubmitReview handles POST /api/v1/products/{productId}/reviews
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	var req SubmitReviewRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	review, err := h.service.Submit(r.Context(), productID, UserIDFromContext(r.Context()), req.Rating, req.ReviewText)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, "review submitted for moderation", httputil.Payload{
		"review": review,
	})
}

// ListReviews handles GET /api/v1/products/{productId}/reviews
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.ListApproved(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "", httputil.Payload{
		"reviews": reviews,
	})
}

// ModerateReview handles POST /api/v1/reviews/{reviewId}/moderation
func (h *ReviewHandler) ModerateReview(w http.ResponseWriter, r *http.Request) {
	reviewID := chi.URLParam(r, "reviewId")

	var req ModerateReviewRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	review, err := h.service.Moderate(r.Context(), reviewID, domain.ModerationAction(req.Action))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "review "+review.Status, httputil.Payload{
		"review": review,
	})
}
