package postgres

import (
	"context"
	"fmt"

	"github.com/dimitrisnimas/B2B-WooCommerce-Inventory-Viewer/internal/domain"
	"github.com/dimitrisnimas/B2B-WooCommerce-Inventory-Viewer/pkg/database"
)

// ListCategories returns every category with at least one published product,
// ordered by name.
func (r *CatalogRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	query := `
		SELECT c.id, c.name, c.parent_id, count(pc.product_id) AS count
		FROM categories c
		JOIN product_categories pc ON pc.category_id = c.id
		JOIN products p ON p.id = pc.product_id AND p.status = 'publish'
		GROUP BY c.id, c.name, c.parent_id
		ORDER BY c.name ASC`

	ctx, end := database.TraceQuery(ctx, "ListCategories", query)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		end(err)
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.ParentID, &c.Count); err != nil {
			end(err)
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		end(err)
		return nil, fmt.Errorf("iterate category rows: %w", err)
	}
	end(nil)

	if categories == nil {
		categories = []domain.Category{}
	}

	return categories, nil
}

// SubtreeProductIDs returns the ids of published products assigned to the
// category or any of its descendants.
func (r *CatalogRepository) SubtreeProductIDs(ctx context.Context, categoryID int64, limit int) ([]int64, error) {
	query := `
		WITH RECURSIVE subtree AS (
			SELECT id FROM categories WHERE id = $1
			UNION ALL
			SELECT c.id FROM categories c JOIN subtree s ON c.parent_id = s.id
		)
		SELECT DISTINCT p.id
		FROM products p
		JOIN product_categories pc ON pc.product_id = p.id
		WHERE pc.category_id IN (SELECT id FROM subtree) AND p.status = 'publish'
		ORDER BY p.id ASC
		LIMIT $2`

	return r.queryIDs(ctx, "SubtreeProductIDs", query, categoryID, limit)
}
