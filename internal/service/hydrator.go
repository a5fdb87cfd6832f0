package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dimitrisnimas/B2B-WooCommerce-Inventory-Viewer/internal/domain"
	"github.com/dimitrisnimas/B2B-WooCommerce-Inventory-Viewer/internal/repository"
	apperrors "github.com/dimitrisnimas/B2B-WooCommerce-Inventory-Viewer/pkg/errors"
)

// Hydrator converts candidate ids into enriched display records.
type Hydrator struct {
	products repository.ProductReader
	cfg      Config
	logger   *slog.Logger
}

// NewHydrator creates a hydrator over the given product reader.
func NewHydrator(products repository.ProductReader, cfg Config, logger *slog.Logger) *Hydrator {
	return &Hydrator{
		products: products,
		cfg:      cfg,
		logger:   logger,
	}
}

// HydrateList builds list records for the given ids, preserving order. Ids
// that no longer resolve to a published product, and records whose enrichment
// lookups fail, are dropped; the batch continues and the drop count is
// returned.
func (h *Hydrator) HydrateList(ctx context.Context, ids []int64) ([]domain.ProductSummary, int) {
	summaries := make([]domain.ProductSummary, 0, len(ids))
	skipped := 0

	for _, id := range ids {
		summary, err := h.hydrateSummary(ctx, id)
		if err != nil {
			skipped++
			if !errors.Is(err, apperrors.ErrNotFound) {
				h.logger.WarnContext(ctx, "skipping product record",
					slog.Int64("product_id", id),
					slog.String("error", err.Error()),
				)
			}
			continue
		}
		summaries = append(summaries, *summary)
	}

	return summaries, skipped
}

func (h *Hydrator) hydrateSummary(ctx context.Context, id int64) (*domain.ProductSummary, error) {
	p, err := h.products.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	genuine, err := h.products.GetPrimaryTerm(ctx, id, h.cfg.GenuineTaxonomy)
	if err != nil {
		return nil, fmt.Errorf("load genuine code: %w", err)
	}

	prices, err := h.loadPrices(ctx, p)
	if err != nil {
		return nil, err
	}

	return &domain.ProductSummary{
		ID:       p.ID(),
		SKU:      p.SKU(),
		Name:     p.Name(),
		Genuine:  genuine,
		ImageURL: domain.Thumbnail(p),
		Stock:    domain.Stock{Quantity: p.StockQuantity(), Status: p.StockStatus()},
		Status:   p.StockStatus(),
		Prices:   prices,
	}, nil
}

// HydrateDetail builds the single-product projection. Unlike list hydration,
// failures here surface to the caller: not-found for a missing id, service
// unavailable for a catalog failure.
func (h *Hydrator) HydrateDetail(ctx context.Context, id int64) (*domain.ProductDetail, error) {
	p, err := h.products.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, apperrors.ServiceUnavailable("catalog", err)
	}

	genuine, err := h.products.GetPrimaryTerm(ctx, id, h.cfg.GenuineTaxonomy)
	if err != nil {
		return nil, apperrors.ServiceUnavailable("catalog", err)
	}

	prices, err := h.loadPrices(ctx, p)
	if err != nil {
		return nil, apperrors.ServiceUnavailable("catalog", err)
	}

	return &domain.ProductDetail{
		ID:          p.ID(),
		Name:        p.Name(),
		SKU:         p.SKU(),
		Genuine:     genuine,
		Description: p.Description(),
		Images:      p.Images(),
		Prices:      prices,
		Stock:       p.StockQuantity(),
		Status:      p.StockStatus(),
	}, nil
}

func (h *Hydrator) loadPrices(ctx context.Context, p domain.CatalogProduct) (map[string]string, error) {
	groups, err := h.products.GetGroupPrices(ctx, p.ID())
	if err != nil {
		return nil, fmt.Errorf("load group prices: %w", err)
	}

	roles, err := h.products.GetRolePrices(ctx, p.ID(), h.cfg.PriceRoles)
	if err != nil {
		return nil, fmt.Errorf("load role prices: %w", err)
	}

	return domain.PriceMap(p.Price(), groups, roles), nil
}
