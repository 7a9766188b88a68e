package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/trendella/storefront/internal/service"
	"github.com/trendella/storefront/pkg/httputil"
	"github.com/trendella/storefront/pkg/validator"
)

// CartHandler handles HTTP requests for cart endpoints.
type CartHandler struct {
	service *service.CartService
	logger  *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(svc *service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		service: svc,
		logger:  logger,
	}
}

// AddItemRequest is the JSON request body for adding an item to the cart.
type AddItemRequest struct {
	ItemID string `json:"item_id" validate:"required"`
}

// UpdateItemRequest is the JSON request body for setting a sized quantity.
type UpdateItemRequest struct {
	Size     string `json:"size" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	cart, err := h.service.Add(r.Context(), UserIDFromContext(r.Context()), req.ItemID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "item added to cart", httputil.Payload{
		"cartData": cart,
	})
}

// UpdateItem handles PUT /api/v1/cart/items/{itemId}
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemId")

	var req UpdateItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	cart, err := h.service.Update(r.Context(), UserIDFromContext(r.Context()), itemID, req.Size, req.Quantity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "cart updated", httputil.Payload{
		"cartData": cart,
	})
}

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.service.Get(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "", httputil.Payload{
		"cartData": cart,
	})
}
