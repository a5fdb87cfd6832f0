package service

import (
	"context"
	"log/slog"
	"os"
	"strconv"

	"github.com/stretchr/testify/mock"

	"github.com/dimitrisnimas/B2B-WooCommerce-Inventory-Viewer/internal/domain"
)

// --- Mock ProductSearcher ---

type mockSearcher struct {
	mock.Mock
}

func (m *mockSearcher) SearchByTitle(ctx context.Context, term string, categoryID int64, limit int) ([]int64, error) {
	args := m.Called(ctx, term, categoryID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *mockSearcher) SearchBySKU(ctx context.Context, term string, categoryID int64, limit int) ([]int64, error) {
	args := m.Called(ctx, term, categoryID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *mockSearcher) SearchByAttribute(ctx context.Context, term string, taxonomies []string, categoryID int64, limit int) ([]int64, error) {
	args := m.Called(ctx, term, taxonomies, categoryID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *mockSearcher) SearchByDescription(ctx context.Context, term string, categoryID int64, limit int) ([]int64, error) {
	args := m.Called(ctx, term, categoryID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

// --- Mock CategoryReader ---

type mockCategoryReader struct {
	mock.Mock
}

func (m *mockCategoryReader) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *mockCategoryReader) SubtreeProductIDs(ctx context.Context, categoryID int64, limit int) ([]int64, error) {
	args := m.Called(ctx, categoryID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

// --- Mock ProductReader ---

type mockProductReader struct {
	mock.Mock
}

func (m *mockProductReader) GetProduct(ctx context.Context, id int64) (domain.CatalogProduct, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.CatalogProduct), args.Error(1)
}

func (m *mockProductReader) GetPrimaryTerm(ctx context.Context, id int64, taxonomy string) (string, error) {
	args := m.Called(ctx, id, taxonomy)
	return args.String(0), args.Error(1)
}

func (m *mockProductReader) GetGroupPrices(ctx context.Context, id int64) ([]domain.GroupPrice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GroupPrice), args.Error(1)
}

func (m *mockProductReader) GetRolePrices(ctx context.Context, id int64, roles []string) ([]domain.RolePrice, error) {
	args := m.Called(ctx, id, roles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RolePrice), args.Error(1)
}

// --- Fake id-set cache ---

type fakeCache struct {
	entries map[string][]int64
	getErr  error
	setErr  error
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]int64{}}
}

func (c *fakeCache) key(term string, categoryID int64) string {
	return term + "|" + strconv.FormatInt(categoryID, 10)
}

func (c *fakeCache) Get(ctx context.Context, term string, categoryID int64) ([]int64, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	ids, ok := c.entries[c.key(term, categoryID)]
	return ids, ok, nil
}

func (c *fakeCache) Set(ctx context.Context, term string, categoryID int64, ids []int64) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.sets++
	c.entries[c.key(term, categoryID)] = ids
	return nil
}

// --- Fixture product ---

type fixtureProduct struct {
	id     int64
	sku    string
	name   string
	desc   string
	price  string
	qty    *int
	status string
	images []string
}

func (p fixtureProduct) ID() int64           { return p.id }
func (p fixtureProduct) SKU() string         { return p.sku }
func (p fixtureProduct) Name() string        { return p.name }
func (p fixtureProduct) Price() string       { return p.price }
func (p fixtureProduct) StockQuantity() *int { return p.qty }
func (p fixtureProduct) StockStatus() string { return p.status }
func (p fixtureProduct) Description() string { return p.desc }
func (p fixtureProduct) Images() []string    { return p.images }

// --- Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}
