package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dimitrisnimas/B2B-WooCommerce-Inventory-Viewer/internal/domain"
	"github.com/dimitrisnimas/B2B-WooCommerce-Inventory-Viewer/internal/service"
	apperrors "github.com/dimitrisnimas/B2B-WooCommerce-Inventory-Viewer/pkg/errors"
	"github.com/dimitrisnimas/B2B-WooCommerce-Inventory-Viewer/pkg/logger"
)

type mockInventoryService struct {
	mock.Mock
}

func (m *mockInventoryService) Search(ctx context.Context, q service.Query) (*domain.SearchResult, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SearchResult), args.Error(1)
}

func (m *mockInventoryService) GetProduct(ctx context.Context, id int64) (*domain.ProductDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductDetail), args.Error(1)
}

func (m *mockInventoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func newTestHandler(svc *mockInventoryService) *InventoryHandler {
	return NewInventoryHandler(svc, logger.New("inventory-api-test", "error"))
}

func doLookup(t *testing.T, h *InventoryHandler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.Lookup(rec, req)
	return rec
}

func TestLookup_Search(t *testing.T) {
	svc := new(mockInventoryService)
	svc.On("Search", mock.Anything, service.Query{Term: "brake", CategoryID: 5, Page: 2}).
		Return(&domain.SearchResult{
			Timestamp:  "2025-03-01 10:30:00",
			Count:      137,
			TotalPages: 3,
			Page:       2,
			Products:   []domain.ProductSummary{},
		}, nil)

	rec := doLookup(t, newTestHandler(svc), "/kubik/v1/inventory?search=brake&category=5&page=2")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(137), body["count"])
	assert.Equal(t, float64(3), body["total_pages"])
	svc.AssertExpectations(t)
}

func TestLookup_IDWinsOverEverything(t *testing.T) {
	svc := new(mockInventoryService)
	svc.On("GetProduct", mock.Anything, int64(42)).
		Return(&domain.ProductDetail{ID: 42, Name: "Brake pad", Images: []string{}, Prices: map[string]string{"retail": "10.00"}}, nil)

	rec := doLookup(t, newTestHandler(svc), "/kubik/v1/inventory?id=42&search=brake&action=categories")

	assert.Equal(t, http.StatusOK, rec.Code)

	// Bare object, no envelope.
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(42), body["id"])
	assert.NotContains(t, body, "products")
	svc.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	svc.AssertNotCalled(t, "ListCategories", mock.Anything)
}

func TestLookup_DetailStockIsNullWhenUnmanaged(t *testing.T) {
	svc := new(mockInventoryService)
	svc.On("GetProduct", mock.Anything, int64(7)).
		Return(&domain.ProductDetail{ID: 7, Status: "instock"}, nil)

	rec := doLookup(t, newTestHandler(svc), "/kubik/v1/inventory?id=7")

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	// The detail view keeps the raw quantity; no ">50" substitution here.
	assert.Contains(t, body, "stock")
	assert.Nil(t, body["stock"])
}

func TestLookup_Categories(t *testing.T) {
	svc := new(mockInventoryService)
	svc.On("ListCategories", mock.Anything).Return([]domain.Category{
		{ID: 5, Name: "Brakes", ParentID: 0, Count: 12},
	}, nil)

	rec := doLookup(t, newTestHandler(svc), "/kubik/v1/inventory?action=categories")

	assert.Equal(t, http.StatusOK, rec.Code)

	// Bare array, no envelope.
	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "Brakes", body[0]["name"])
}

func TestLookup_InvalidID(t *testing.T) {
	svc := new(mockInventoryService)
	rec := doLookup(t, newTestHandler(svc), "/kubik/v1/inventory?id=abc")

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid_input", body["code"])
	svc.AssertNotCalled(t, "GetProduct", mock.Anything, mock.Anything)
}

func TestLookup_ProductNotFound(t *testing.T) {
	svc := new(mockInventoryService)
	svc.On("GetProduct", mock.Anything, int64(99)).Return(nil, apperrors.NotFound("product", 99))

	rec := doLookup(t, newTestHandler(svc), "/kubik/v1/inventory?id=99")

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not_found", body["code"])
}

func TestLookup_CatalogDown(t *testing.T) {
	svc := new(mockInventoryService)
	svc.On("Search", mock.Anything, mock.Anything).
		Return(nil, apperrors.ServiceUnavailable("catalog", assert.AnError))

	rec := doLookup(t, newTestHandler(svc), "/kubik/v1/inventory?search=brake")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "backend_unavailable", body["code"])
}

func TestLookup_EmptyQueryPassedThrough(t *testing.T) {
	svc := new(mockInventoryService)
	svc.On("Search", mock.Anything, service.Query{Page: 1}).
		Return(&domain.SearchResult{
			Timestamp: "2025-03-01 10:30:00",
			Products:  []domain.ProductSummary{},
			Page:      1,
			Message:   "Use search parameter",
		}, nil)

	rec := doLookup(t, newTestHandler(svc), "/kubik/v1/inventory")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Use search parameter", body["message"])
	assert.Equal(t, float64(0), body["count"])
}
