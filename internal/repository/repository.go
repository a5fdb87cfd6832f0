// Package repository defines the read-side interfaces of the product catalog
// store. Implementations live in subpackages (postgres).
package repository

import (
	"context"

	"github.com/dimitrisnimas/B2B-WooCommerce-Inventory-Viewer/internal/domain"
)

// ProductReader is the identifier-keyed read side of the catalog.
type ProductReader interface {
	// GetProduct returns the live product for id, or apperrors.ErrNotFound
	// when the id no longer resolves to a published product.
	GetProduct(ctx context.Context, id int64) (domain.CatalogProduct, error)

	// GetPrimaryTerm returns the first term of the given taxonomy assigned
	// to the product, or "" when none is assigned.
	GetPrimaryTerm(ctx context.Context, id int64, taxonomy string) (string, error)

	// GetGroupPrices returns the bulk-pricing extension entries for a
	// product, ordered by group id.
	GetGroupPrices(ctx context.Context, id int64) ([]domain.GroupPrice, error)

	// GetRolePrices returns role-based price overrides limited to the given
	// roles.
	GetRolePrices(ctx context.Context, id int64, roles []string) ([]domain.RolePrice, error)
}

// ProductSearcher resolves free-text queries to product ids. Every method
// returns ids ordered by id, capped at limit, and restricted to the subtree
// of categoryID when categoryID > 0. Methods do not deduplicate across each
// other; the resolver merges tiers.
type ProductSearcher interface {
	// SearchByTitle matches product titles by prefix, published only.
	SearchByTitle(ctx context.Context, term string, categoryID int64, limit int) ([]int64, error)

	// SearchBySKU matches SKUs by prefix, regardless of status.
	SearchBySKU(ctx context.Context, term string, categoryID int64, limit int) ([]int64, error)

	// SearchByAttribute matches attribute term names by prefix across the
	// given taxonomies, regardless of status.
	SearchByAttribute(ctx context.Context, term string, taxonomies []string, categoryID int64, limit int) ([]int64, error)

	// SearchByDescription matches descriptions by substring, published only.
	SearchByDescription(ctx context.Context, term string, categoryID int64, limit int) ([]int64, error)
}

// CategoryReader reads the catalog's category tree.
type CategoryReader interface {
	// ListCategories returns every non-empty category ordered by name.
	ListCategories(ctx context.Context) ([]domain.Category, error)

	// SubtreeProductIDs returns the ids of published products assigned to
	// the category or any of its descendants, ordered by id, capped at
	// limit.
	SubtreeProductIDs(ctx context.Context, categoryID int64, limit int) ([]int64, error)
}
