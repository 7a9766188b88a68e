package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/trendella/storefront/internal/domain"
	"github.com/trendella/storefront/internal/service"
	"github.com/trendella/storefront/pkg/httputil"
)

// ProductHandler handles HTTP requests for catalog endpoints.
type ProductHandler struct {
	service        *service.CatalogService
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewProductHandler creates a new product HTTP handler. maxUploadBytes caps
// the in-memory size of each multipart image.
func NewProductHandler(svc *service.CatalogService, maxUploadBytes int64, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service:        svc,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// CreateProduct handles POST /api/v1/products. The request is a multipart
// form carrying the product fields plus optional image1..image4 file slots;
// empty slots are skipped.
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadBytes * domain.MaxProductImages); err != nil {
		httputil.WriteFail(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	input := &service.AddProductInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		SubCategory: r.FormValue("sub_category"),
		Highlights:  r.FormValue("highlights"),
		Bestseller:  r.FormValue("bestseller"),
	}

	if raw := r.FormValue("price"); raw != "" {
		price, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httputil.WriteFail(w, http.StatusBadRequest, "price must be an integer amount in cents")
			return
		}
		input.Price = price
	}

	rating, err := strconv.Atoi(r.FormValue("rating"))
	if err != nil {
		httputil.WriteFail(w, http.StatusBadRequest, "rating must be an integer between 1 and 5")
		return
	}
	input.Rating = rating

	var images []service.ImageUpload
	for slot := 1; slot <= domain.MaxProductImages; slot++ {
		file, header, err := r.FormFile(fmt.Sprintf("image%d", slot))
		if errors.Is(err, http.ErrMissingFile) {
			continue
		}
		if err != nil {
			httputil.WriteFail(w, http.StatusBadRequest, fmt.Sprintf("read image%d: malformed file part", slot))
			return
		}
		defer file.Close()

		if header.Size > h.maxUploadBytes {
			httputil.WriteFail(w, http.StatusBadRequest, fmt.Sprintf("image%d exceeds the %d byte limit", slot, h.maxUploadBytes))
			return
		}

		images = append(images, service.ImageUpload{
			Slot:        slot,
			ContentType: header.Header.Get("Content-Type"),
			Body:        file,
		})
	}

	product, err := h.service.AddProduct(r.Context(), input, images)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, "product added", httputil.Payload{
		"product": product,
	})
}

// ListProducts handles GET /api/v1/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "", httputil.Payload{
		"products": products,
	})
}

// GetProduct handles GET /api/v1/products/{productId}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.Get(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "", httputil.Payload{
		"product": product,
	})
}

// DeleteProduct handles DELETE /api/v1/products/{productId}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Remove(r.Context(), chi.URLParam(r, "productId")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "product removed", nil)
}
