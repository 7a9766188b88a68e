package httputil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/trendella/storefront/pkg/errors"
	"github.com/trendella/storefront/pkg/validator"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWriteSuccess_MergesPayload(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteSuccess(rec, http.StatusOK, "Added To Cart", Payload{
		"cartData": map[string]any{"item-1": map[string]any{"quantity": 1}},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Added To Cart", body["message"])
	assert.Contains(t, body, "cartData")
}

func TestWriteSuccess_OmitsEmptyMessage(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteSuccess(rec, http.StatusOK, "", Payload{"products": []any{}})

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.NotContains(t, body, "message")
}

func TestWriteError_AppErrorMessageIsExposed(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews/r1/moderation", nil)
	logger := slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))

	WriteError(rec, req, apperrors.InvalidInput("action must be approve or reject"), logger)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "action must be approve or reject", body["message"])
}

func TestWriteError_WrappedNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/p1", nil)
	logger := slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))

	err := fmt.Errorf("get product: %w", apperrors.ErrNotFound)
	WriteError(rec, req, err, logger)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "resource not found", body["message"])
}

func TestWriteError_UnknownErrorIsSanitizedAndLogged(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)

	var logged bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logged, nil))

	WriteError(rec, req, errors.New("mongo: topology closed"), logger)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "an internal error occurred", body["message"])

	// The driver detail goes to the log, not the caller.
	assert.Contains(t, logged.String(), "topology closed")
	assert.NotContains(t, rec.Body.String(), "topology")
}

func TestWriteValidationError_FieldMessages(t *testing.T) {
	rec := httptest.NewRecorder()

	type req struct {
		Rating int `validate:"required,min=1,max=5"`
	}
	err := validator.Validate(req{Rating: 9})
	require.Error(t, err)

	WriteValidationError(rec, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body, "fields")
}
