package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velure-shop/velure-backend-go/catalog"
	"github.com/velure-shop/velure-backend-go/models"
)

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = models.NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestCreateProductRejectsEmptyVariantsAndOptions(t *testing.T) {
	c, rec := newTestContext(t, http.MethodPost, "/api/admin/products",
		`{"title": "Classic Tee", "variants": [], "options": []}`)

	require.NoError(t, CreateProduct(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorBody(t, rec), "at least one variant")
}

func TestCreateProductRejectsMalformedBody(t *testing.T) {
	c, rec := newTestContext(t, http.MethodPost, "/api/admin/products", `{"title":`)

	require.NoError(t, CreateProduct(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateProductRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{"variants": [{"sku": "TEE-001", "price": 25}]}`},
		{"bad status", `{"title": "Tee", "status": "live", "variants": [{"sku": "TEE-001"}]}`},
		{"bad handle", `{"title": "Tee", "handle": "Has Spaces", "variants": [{"sku": "TEE-001"}]}`},
		{"seo title too long", `{"title": "Tee", "seoTitle": "` + strings.Repeat("x", 71) + `", "variants": [{"sku": "TEE-001"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(t, http.MethodPost, "/api/admin/products", tt.body)
			require.NoError(t, CreateProduct(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetProductRejectsInvalidID(t *testing.T) {
	c, rec := newTestContext(t, http.MethodGet, "/api/products/not-an-id", "")
	c.SetParamNames("id")
	c.SetParamValues("not-an-id")

	require.NoError(t, GetProduct(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProductByHandleRejectsMalformedHandle(t *testing.T) {
	for _, handle := range []string{"Classic-Tee", "classic--tee", "-classic", "classic tee"} {
		c, rec := newTestContext(t, http.MethodGet, "/api/products/handle/x", "")
		c.SetParamNames("handle")
		c.SetParamValues(handle)

		require.NoError(t, GetProductByHandle(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "handle %q should be rejected", handle)
	}
}

func TestUpdateInventoryRejectsInvalidInput(t *testing.T) {
	c, rec := newTestContext(t, http.MethodPut, "/api/admin/products/x/inventory",
		`{"sku": "TEE-001", "quantity": -3}`)
	c.SetParamNames("id")
	c.SetParamValues("507f1f77bcf86cd799439011")

	require.NoError(t, UpdateInventory(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCatalogErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"validation error", &catalog.ValidationError{Field: "title", Message: "bad"}, http.StatusBadRequest},
		{"conflict error", &catalog.ConflictError{Field: "handle", Value: "classic-tee"}, http.StatusConflict},
		{"not found error", &catalog.NotFoundError{Resource: "product", ID: "x"}, http.StatusNotFound},
		{"wrapped validation error", errors.Join(errors.New("outer"), &catalog.ValidationError{Field: "sku"}), http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(t, http.MethodGet, "/", "")
			require.NoError(t, catalogError(c, tt.err))
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}
