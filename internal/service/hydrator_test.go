package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dimitrisnimas/B2B-WooCommerce-Inventory-Viewer/internal/domain"
	apperrors "github.com/dimitrisnimas/B2B-WooCommerce-Inventory-Viewer/pkg/errors"
)

func newTestHydrator(products *mockProductReader) *Hydrator {
	return NewHydrator(products, DefaultConfig(), newTestLogger())
}

func expectRecordLookups(products *mockProductReader, p fixtureProduct, genuine string, groups []domain.GroupPrice, roles []domain.RolePrice) {
	cfg := DefaultConfig()
	products.On("GetProduct", mock.Anything, p.id).Return(p, nil)
	products.On("GetPrimaryTerm", mock.Anything, p.id, cfg.GenuineTaxonomy).Return(genuine, nil)
	products.On("GetGroupPrices", mock.Anything, p.id).Return(groups, nil)
	products.On("GetRolePrices", mock.Anything, p.id, cfg.PriceRoles).Return(roles, nil)
}

func TestHydrator_HydrateList(t *testing.T) {
	products := new(mockProductReader)
	qty := 4

	expectRecordLookups(products, fixtureProduct{
		id: 3, sku: "ABC-3", name: "Brake pad", price: "10.00",
		qty: &qty, status: "instock",
		images: []string{"https://cdn.example.com/3.jpg"},
	}, "GN-3", []domain.GroupPrice{{GroupID: 7, Price: "8.00"}}, nil)

	expectRecordLookups(products, fixtureProduct{
		id: 8, sku: "ABC-8", name: "Brake disc", price: "25.00",
		status: "instock",
	}, "", nil, []domain.RolePrice{{Role: "b2b_gold", Price: "22.00"}})

	h := newTestHydrator(products)
	summaries, skipped := h.HydrateList(context.Background(), []int64{3, 8})

	require.Len(t, summaries, 2)
	assert.Equal(t, 0, skipped)

	assert.Equal(t, int64(3), summaries[0].ID)
	assert.Equal(t, "GN-3", summaries[0].Genuine)
	assert.Equal(t, "https://cdn.example.com/3.jpg", summaries[0].ImageURL)
	assert.Equal(t, map[string]string{"retail": "10.00", "Group 7": "8.00"}, summaries[0].Prices)

	// Unmanaged stock on an in-stock product keeps the overflow sentinel.
	assert.Nil(t, summaries[1].Stock.Quantity)
	assert.Equal(t, "instock", summaries[1].Stock.Status)
	assert.Equal(t, "", summaries[1].ImageURL)
	assert.Equal(t, map[string]string{"retail": "25.00", "b2b_gold": "22.00"}, summaries[1].Prices)
}

func TestHydrator_HydrateList_SkipsFailedRecords(t *testing.T) {
	products := new(mockProductReader)
	cfg := DefaultConfig()

	products.On("GetProduct", mock.Anything, int64(1)).Return(nil, apperrors.ErrNotFound)
	products.On("GetProduct", mock.Anything, int64(2)).Return(nil, errors.New("connection reset"))

	expectRecordLookups(products, fixtureProduct{
		id: 3, sku: "ABC-3", name: "Brake pad", price: "10.00", status: "outofstock",
	}, "", nil, nil)

	// Enrichment failure drops the record too.
	products.On("GetProduct", mock.Anything, int64(4)).Return(fixtureProduct{id: 4, status: "instock"}, nil)
	products.On("GetPrimaryTerm", mock.Anything, int64(4), cfg.GenuineTaxonomy).Return("", errors.New("connection reset"))

	h := newTestHydrator(products)
	summaries, skipped := h.HydrateList(context.Background(), []int64{1, 2, 3, 4})

	require.Len(t, summaries, 1)
	assert.Equal(t, int64(3), summaries[0].ID)
	assert.Equal(t, 3, skipped)
}

func TestHydrator_HydrateDetail(t *testing.T) {
	products := new(mockProductReader)
	qty := 2

	expectRecordLookups(products, fixtureProduct{
		id: 42, sku: "ABC-42", name: "Brake pad", desc: "Front axle ceramic pad",
		price: "10.00", qty: &qty, status: "instock",
		images: []string{"https://cdn.example.com/42.jpg", "https://cdn.example.com/42b.jpg"},
	}, "GN-42", nil, nil)

	h := newTestHydrator(products)
	detail, err := h.HydrateDetail(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, int64(42), detail.ID)
	assert.Equal(t, "GN-42", detail.Genuine)
	assert.Equal(t, "Front axle ceramic pad", detail.Description)
	assert.Len(t, detail.Images, 2)
	require.NotNil(t, detail.Stock)
	assert.Equal(t, 2, *detail.Stock)
	assert.Equal(t, map[string]string{"retail": "10.00"}, detail.Prices)
}

func TestHydrator_HydrateDetail_NotFound(t *testing.T) {
	products := new(mockProductReader)
	products.On("GetProduct", mock.Anything, int64(99)).Return(nil, apperrors.ErrNotFound)

	h := newTestHydrator(products)
	detail, err := h.HydrateDetail(context.Background(), 99)
	assert.Nil(t, detail)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestHydrator_HydrateDetail_CatalogDown(t *testing.T) {
	products := new(mockProductReader)
	products.On("GetProduct", mock.Anything, int64(42)).Return(nil, errors.New("dial tcp: connection refused"))

	h := newTestHydrator(products)
	detail, err := h.HydrateDetail(context.Background(), 42)
	assert.Nil(t, detail)
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavail)
}
