package service

import (
	"context"
	"log/slog"

	"github.com/dimitrisnimas/B2B-WooCommerce-Inventory-Viewer/internal/repository"
	apperrors "github.com/dimitrisnimas/B2B-WooCommerce-Inventory-Viewer/pkg/errors"
)

// IDSetCache memoizes resolved id lists per query signature. found is false
// on a miss; an empty cached list is a hit.
type IDSetCache interface {
	Get(ctx context.Context, term string, categoryID int64) (ids []int64, found bool, err error)
	Set(ctx context.Context, term string, categoryID int64, ids []int64) error
}

// Resolver turns a normalized query into an ordered set of candidate product
// ids, memoized in the cache for the configured window.
type Resolver struct {
	searcher   repository.ProductSearcher
	categories repository.CategoryReader
	cache      IDSetCache
	cfg        Config
	logger     *slog.Logger
}

// NewResolver creates a resolver. cache may be nil, disabling memoization.
func NewResolver(searcher repository.ProductSearcher, categories repository.CategoryReader, cache IDSetCache, cfg Config, logger *slog.Logger) *Resolver {
	return &Resolver{
		searcher:   searcher,
		categories: categories,
		cache:      cache,
		cfg:        cfg,
		logger:     logger,
	}
}

// Resolve produces the candidate id set for (term, categoryID). An unexpired
// cache entry is returned verbatim, staleness included. Cache failures are
// logged and treated as misses; catalog failures surface as a service
// unavailable error, never as an empty set.
func (r *Resolver) Resolve(ctx context.Context, term string, categoryID int64) ([]int64, error) {
	if r.cache != nil {
		ids, found, err := r.cache.Get(ctx, term, categoryID)
		if err != nil {
			r.logger.WarnContext(ctx, "id cache read failed, resolving against catalog",
				slog.String("error", err.Error()),
			)
		} else if found {
			return ids, nil
		}
	}

	ids, err := r.resolve(ctx, term, categoryID)
	if err != nil {
		return nil, apperrors.ServiceUnavailable("catalog", err)
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, term, categoryID, ids); err != nil {
			r.logger.WarnContext(ctx, "id cache write failed",
				slog.String("error", err.Error()),
			)
		}
	}

	return ids, nil
}

func (r *Resolver) resolve(ctx context.Context, term string, categoryID int64) ([]int64, error) {
	// Browse mode: no search text, category subtree only.
	if term == "" {
		return r.categories.SubtreeProductIDs(ctx, categoryID, r.cfg.BrowseCap)
	}

	titleIDs, err := r.searcher.SearchByTitle(ctx, term, categoryID, r.cfg.TitleCap)
	if err != nil {
		return nil, err
	}

	skuIDs, err := r.searcher.SearchBySKU(ctx, term, categoryID, r.cfg.SKUCap)
	if err != nil {
		return nil, err
	}

	attrIDs, err := r.searcher.SearchByAttribute(ctx, term, r.cfg.AttributeTaxonomies, categoryID, r.cfg.AttributeCap)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(titleIDs)+len(skuIDs)+len(attrIDs))
	ids = append(ids, titleIDs...)
	ids = append(ids, skuIDs...)
	ids = append(ids, attrIDs...)

	// Description substring matching is the expensive fallback tier. It only
	// runs when every narrower tier came up empty.
	if len(ids) == 0 {
		descIDs, err := r.searcher.SearchByDescription(ctx, term, categoryID, r.cfg.DescriptionCap)
		if err != nil {
			return nil, err
		}
		ids = append(ids, descIDs...)
	}

	return dedupe(ids), nil
}

// dedupe removes duplicate ids keeping the first occurrence, preserving tier
// priority order.
func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
