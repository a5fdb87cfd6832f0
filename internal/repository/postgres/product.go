// Package postgres implements the catalog read interfaces over the live
// store's PostgreSQL schema.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dimitrisnimas/B2B-WooCommerce-Inventory-Viewer/internal/domain"
	"github.com/dimitrisnimas/B2B-WooCommerce-Inventory-Viewer/pkg/database"
	apperrors "github.com/dimitrisnimas/B2B-WooCommerce-Inventory-Viewer/pkg/errors"
)

// CatalogRepository implements repository.ProductReader, ProductSearcher and
// CategoryReader using PostgreSQL.
type CatalogRepository struct {
	pool database.DBTX
}

// NewCatalogRepository creates a new PostgreSQL-backed catalog repository.
func NewCatalogRepository(pool database.DBTX) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

// catalogProduct is a loaded product row plus its image list. It implements
// domain.CatalogProduct.
type catalogProduct struct {
	id            int64
	sku           string
	name          string
	description   string
	price         string
	stockQuantity *int
	stockStatus   string
	images        []string
}

func (p *catalogProduct) ID() int64           { return p.id }
func (p *catalogProduct) SKU() string         { return p.sku }
func (p *catalogProduct) Name() string        { return p.name }
func (p *catalogProduct) Price() string       { return p.price }
func (p *catalogProduct) StockQuantity() *int { return p.stockQuantity }
func (p *catalogProduct) StockStatus() string { return p.stockStatus }
func (p *catalogProduct) Description() string { return p.description }
func (p *catalogProduct) Images() []string    { return p.images }

// GetProduct retrieves a published product and its images in a single query.
func (r *CatalogRepository) GetProduct(ctx context.Context, id int64) (domain.CatalogProduct, error) {
	query := `
		SELECT p.id, p.sku, p.name, p.description, p.price, p.stock_quantity, p.stock_status,
			   COALESCE(array_agg(i.url ORDER BY i.position) FILTER (WHERE i.url IS NOT NULL), '{}') AS images
		FROM products p
		LEFT JOIN product_images i ON i.product_id = p.id
		WHERE p.id = $1 AND p.status = 'publish'
		GROUP BY p.id`

	ctx, end := database.TraceQuery(ctx, "GetProduct", query)
	var p catalogProduct
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.id,
		&p.sku,
		&p.name,
		&p.description,
		&p.price,
		&p.stockQuantity,
		&p.stockStatus,
		&p.images,
	)
	end(err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	return &p, nil
}

// GetPrimaryTerm returns the first attribute term of the given taxonomy
// assigned to the product, or "" when none is assigned.
func (r *CatalogRepository) GetPrimaryTerm(ctx context.Context, id int64, taxonomy string) (string, error) {
	query := `
		SELECT t.name
		FROM product_attribute_terms pat
		JOIN attribute_terms t ON t.id = pat.term_id
		WHERE pat.product_id = $1 AND t.taxonomy = $2
		ORDER BY pat.position ASC
		LIMIT 1`

	ctx, end := database.TraceQuery(ctx, "GetPrimaryTerm", query)
	var name string
	err := r.pool.QueryRow(ctx, query, id, taxonomy).Scan(&name)
	end(err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("get primary term: %w", err)
	}

	return name, nil
}

// GetGroupPrices returns the bulk-pricing extension entries for a product.
func (r *CatalogRepository) GetGroupPrices(ctx context.Context, id int64) ([]domain.GroupPrice, error) {
	query := `
		SELECT group_id, price
		FROM group_prices
		WHERE product_id = $1
		ORDER BY group_id ASC`

	ctx, end := database.TraceQuery(ctx, "GetGroupPrices", query)
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		end(err)
		return nil, fmt.Errorf("get group prices: %w", err)
	}
	defer rows.Close()

	var prices []domain.GroupPrice
	for rows.Next() {
		var gp domain.GroupPrice
		if err := rows.Scan(&gp.GroupID, &gp.Price); err != nil {
			end(err)
			return nil, fmt.Errorf("scan group price row: %w", err)
		}
		prices = append(prices, gp)
	}

	if err := rows.Err(); err != nil {
		end(err)
		return nil, fmt.Errorf("iterate group price rows: %w", err)
	}
	end(nil)

	if prices == nil {
		prices = []domain.GroupPrice{}
	}

	return prices, nil
}

// GetRolePrices returns role-based price overrides limited to the given roles.
func (r *CatalogRepository) GetRolePrices(ctx context.Context, id int64, roles []string) ([]domain.RolePrice, error) {
	query := `
		SELECT role, price
		FROM role_prices
		WHERE product_id = $1 AND role = ANY($2)
		ORDER BY role ASC`

	ctx, end := database.TraceQuery(ctx, "GetRolePrices", query)
	rows, err := r.pool.Query(ctx, query, id, roles)
	if err != nil {
		end(err)
		return nil, fmt.Errorf("get role prices: %w", err)
	}
	defer rows.Close()

	var prices []domain.RolePrice
	for rows.Next() {
		var rp domain.RolePrice
		if err := rows.Scan(&rp.Role, &rp.Price); err != nil {
			end(err)
			return nil, fmt.Errorf("scan role price row: %w", err)
		}
		prices = append(prices, rp)
	}

	if err := rows.Err(); err != nil {
		end(err)
		return nil, fmt.Errorf("iterate role price rows: %w", err)
	}
	end(nil)

	if prices == nil {
		prices = []domain.RolePrice{}
	}

	return prices, nil
}
