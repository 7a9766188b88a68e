package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/trendella/storefront/pkg/errors"
	"github.com/trendella/storefront/pkg/logger"
	"github.com/trendella/storefront/pkg/validator"
)

// Payload holds the operation-specific response fields, keyed by their wire
// names (cartData, product, products, reviews).
type Payload map[string]any

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; nothing meaningful can be done if encoding fails.
	_ = json.NewEncoder(w).Encode(v)
}

// WriteSuccess writes the standard success envelope: {"success":true} merged
// with an optional message and the operation payload.
func WriteSuccess(w http.ResponseWriter, status int, message string, payload Payload) {
	body := map[string]any{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range payload {
		body[k] = v
	}
	WriteJSON(w, status, body)
}

// WriteFail writes {"success":false,"message":...} with the given status.
func WriteFail(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]any{
		"success": false,
		"message": message,
	})
}

// WriteError converts an error into the failure envelope. AppError messages
// are considered caller-safe; anything else is logged with full detail and
// reported as a generic internal failure. Prefers the request-scoped logger
// from context (set by the RequestLogger middleware) over the fallback.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	l := logger.FromContext(r.Context())
	if l == slog.Default() {
		l = fallback
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Status >= http.StatusInternalServerError {
			logInternal(r, l, err)
		}
		WriteFail(w, appErr.Status, appErr.Message)
		return
	}

	status := apperrors.HTTPStatus(err)
	message := "an internal error occurred"

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		message = "resource not found"
	case errors.Is(err, apperrors.ErrInvalidInput):
		message = err.Error()
	case errors.Is(err, apperrors.ErrUnauthorized):
		message = "unauthorized"
	default:
		logInternal(r, l, err)
	}

	WriteFail(w, status, message)
}

// WriteValidationError writes a failure envelope for a request-body
// validation error, including field-level messages when available.
func WriteValidationError(w http.ResponseWriter, err error) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		WriteJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "request validation failed",
			"fields":  valErr.Fields(),
		})
		return
	}

	WriteFail(w, http.StatusBadRequest, err.Error())
}

func logInternal(r *http.Request, l *slog.Logger, err error) {
	l.ErrorContext(r.Context(), "internal error",
		slog.String("error", err.Error()),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)
}
