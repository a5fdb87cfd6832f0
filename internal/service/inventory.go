// Package service implements the search, resolve, hydrate, paginate pipeline
// of the inventory viewer.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dimitrisnimas/B2B-WooCommerce-Inventory-Viewer/internal/domain"
	"github.com/dimitrisnimas/B2B-WooCommerce-Inventory-Viewer/internal/repository"
	"github.com/dimitrisnimas/B2B-WooCommerce-Inventory-Viewer/internal/repository/postgres"
	apperrors "github.com/dimitrisnimas/B2B-WooCommerce-Inventory-Viewer/pkg/errors"
	"github.com/dimitrisnimas/B2B-WooCommerce-Inventory-Viewer/pkg/pagination"
	"github.com/dimitrisnimas/B2B-WooCommerce-Inventory-Viewer/pkg/validator"
)

// timestampLayout is the envelope timestamp format the frontend expects.
const timestampLayout = "2006-01-02 15:04:05"

// emptyQueryMessage is returned verbatim when neither search text nor a
// category is supplied.
const emptyQueryMessage = "Use search parameter"

// debugIDSample bounds the list of resolved ids echoed in the debug block.
const debugIDSample = 5

// InventoryService implements the read-only inventory lookup operations.
type InventoryService struct {
	resolver   *Resolver
	hydrator   *Hydrator
	categories repository.CategoryReader
	cfg        Config
	logger     *slog.Logger
	now        func() time.Time
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(resolver *Resolver, hydrator *Hydrator, categories repository.CategoryReader, cfg Config, logger *slog.Logger) *InventoryService {
	return &InventoryService{
		resolver:   resolver,
		hydrator:   hydrator,
		categories: categories,
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
	}
}

// Search runs the full pipeline for a normalized query and assembles the
// result envelope.
func (s *InventoryService) Search(ctx context.Context, q Query) (*domain.SearchResult, error) {
	if err := validator.Validate(q); err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	if q.Empty() {
		return &domain.SearchResult{
			Timestamp: s.now().Format(timestampLayout),
			Count:     0,
			Page:      q.Page,
			Products:  []domain.ProductSummary{},
			Message:   emptyQueryMessage,
		}, nil
	}

	ids, err := s.resolver.Resolve(ctx, q.Term, q.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("resolve query: %w", err)
	}

	pageIDs, page := pagination.Paginate(ids, q.Page, s.cfg.PageSize)
	products, skipped := s.hydrator.HydrateList(ctx, pageIDs)

	s.logger.InfoContext(ctx, "search resolved",
		slog.String("term", q.Term),
		slog.Int64("category_id", q.CategoryID),
		slog.Int("ids_found", len(ids)),
		slog.Int("page", q.Page),
		slog.Int("skipped", skipped),
	)

	return &domain.SearchResult{
		Timestamp:  s.now().Format(timestampLayout),
		Count:      len(ids),
		TotalPages: page.TotalPages,
		Page:       q.Page,
		Products:   products,
		Debug: &domain.SearchDebug{
			Term:     q.Term,
			SQLLike:  postgres.PrefixPattern(q.Term),
			IDsFound: len(ids),
			IDsList:  idSample(ids, debugIDSample),
			Skipped:  skipped,
		},
	}, nil
}

// GetProduct returns the single-product projection for id.
func (s *InventoryService) GetProduct(ctx context.Context, id int64) (*domain.ProductDetail, error) {
	if id <= 0 {
		return nil, apperrors.InvalidInput("id must be a positive integer")
	}
	return s.hydrator.HydrateDetail(ctx, id)
}

// ListCategories returns the non-empty categories of the catalog.
func (s *InventoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, apperrors.ServiceUnavailable("catalog", err)
	}
	return categories, nil
}

func idSample(ids []int64, n int) []int64 {
	if len(ids) > n {
		ids = ids[:n]
	}
	// Copy so the sample does not alias the cached slice.
	sample := make([]int64, len(ids))
	copy(sample, ids)
	return sample
}
