package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/dimitrisnimas/B2B-WooCommerce-Inventory-Viewer/pkg/database"
)

// likeEscaper neutralizes LIKE metacharacters in user input. Backslash is
// PostgreSQL's default escape character.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// PrefixPattern returns the LIKE pattern matching values starting with term.
func PrefixPattern(term string) string {
	return likeEscaper.Replace(term) + "%"
}

// SubstringPattern returns the LIKE pattern matching values containing term.
func SubstringPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// subtreeProducts returns a subquery selecting the product ids assigned to a
// category or any of its descendants. argIndex is the placeholder number of
// the category id parameter.
func subtreeProducts(argIndex int) string {
	return fmt.Sprintf(`SELECT pc.product_id
			FROM product_categories pc
			WHERE pc.category_id IN (
				WITH RECURSIVE subtree AS (
					SELECT id FROM categories WHERE id = $%d
					UNION ALL
					SELECT c.id FROM categories c JOIN subtree s ON c.parent_id = s.id
				)
				SELECT id FROM subtree
			)`, argIndex)
}

// SearchByTitle matches published product titles by prefix.
func (r *CatalogRepository) SearchByTitle(ctx context.Context, term string, categoryID int64, limit int) ([]int64, error) {
	query := `
		SELECT id FROM products
		WHERE name ILIKE $1 AND status = 'publish'`
	args := []any{PrefixPattern(term)}

	if categoryID > 0 {
		query += fmt.Sprintf(" AND id IN (%s)", subtreeProducts(len(args)+1))
		args = append(args, categoryID)
	}

	query += fmt.Sprintf(" ORDER BY id ASC LIMIT $%d", len(args)+1)
	args = append(args, limit)

	return r.queryIDs(ctx, "SearchByTitle", query, args...)
}

// SearchBySKU matches SKUs by prefix, regardless of product status.
func (r *CatalogRepository) SearchBySKU(ctx context.Context, term string, categoryID int64, limit int) ([]int64, error) {
	query := `
		SELECT id FROM products
		WHERE sku ILIKE $1`
	args := []any{PrefixPattern(term)}

	if categoryID > 0 {
		query += fmt.Sprintf(" AND id IN (%s)", subtreeProducts(len(args)+1))
		args = append(args, categoryID)
	}

	query += fmt.Sprintf(" ORDER BY id ASC LIMIT $%d", len(args)+1)
	args = append(args, limit)

	return r.queryIDs(ctx, "SearchBySKU", query, args...)
}

// SearchByAttribute matches attribute term names by prefix across the given
// taxonomies, regardless of product status.
func (r *CatalogRepository) SearchByAttribute(ctx context.Context, term string, taxonomies []string, categoryID int64, limit int) ([]int64, error) {
	query := `
		SELECT DISTINCT pat.product_id
		FROM product_attribute_terms pat
		JOIN attribute_terms t ON t.id = pat.term_id
		WHERE t.taxonomy = ANY($1) AND t.name ILIKE $2`
	args := []any{taxonomies, PrefixPattern(term)}

	if categoryID > 0 {
		query += fmt.Sprintf(" AND pat.product_id IN (%s)", subtreeProducts(len(args)+1))
		args = append(args, categoryID)
	}

	query += fmt.Sprintf(" ORDER BY pat.product_id ASC LIMIT $%d", len(args)+1)
	args = append(args, limit)

	return r.queryIDs(ctx, "SearchByAttribute", query, args...)
}

// SearchByDescription matches published product descriptions by substring.
// This is the broadest, most expensive tier; callers gate it behind the
// narrower tiers coming up empty.
func (r *CatalogRepository) SearchByDescription(ctx context.Context, term string, categoryID int64, limit int) ([]int64, error) {
	query := `
		SELECT id FROM products
		WHERE description ILIKE $1 AND status = 'publish'`
	args := []any{SubstringPattern(term)}

	if categoryID > 0 {
		query += fmt.Sprintf(" AND id IN (%s)", subtreeProducts(len(args)+1))
		args = append(args, categoryID)
	}

	query += fmt.Sprintf(" ORDER BY id ASC LIMIT $%d", len(args)+1)
	args = append(args, limit)

	return r.queryIDs(ctx, "SearchByDescription", query, args...)
}

// queryIDs executes a query returning a single bigint column and collects the
// values in row order.
func (r *CatalogRepository) queryIDs(ctx context.Context, operation, query string, args ...any) ([]int64, error) {
	ctx, end := database.TraceQuery(ctx, operation, query)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		end(err)
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			end(err)
			return nil, fmt.Errorf("%s: scan id row: %w", operation, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		end(err)
		return nil, fmt.Errorf("%s: iterate id rows: %w", operation, err)
	}
	end(nil)

	if ids == nil {
		ids = []int64{}
	}

	return ids, nil
}
