package domain

import (
	"encoding/json"
	"strconv"
)

// Stock status values as the catalog stores them.
const (
	StockStatusInStock    = "instock"
	StockStatusOutOfStock = "outofstock"
	StockStatusBackorder  = "onbackorder"
)

// StockOverflowSentinel is rendered when a product is in stock but carries no
// numeric quantity (stock management disabled in the catalog). The frontend
// displays it verbatim.
const StockOverflowSentinel = ">50"

// CatalogProduct is the narrow read-only view of a live catalog product. The
// postgres adapter implements it over the catalog tables; tests implement it
// with a fixture struct.
type CatalogProduct interface {
	ID() int64
	SKU() string
	Name() string
	// Price returns the base retail price as a decimal string, "" if unset.
	Price() string
	// StockQuantity returns nil when the catalog tracks no numeric stock.
	StockQuantity() *int
	StockStatus() string
	Description() string
	// Images returns all image URLs, primary first, then the gallery in
	// catalog order. Empty when the product has no images.
	Images() []string
}

// Thumbnail returns the primary image URL of a product, "" when it has none.
func Thumbnail(p CatalogProduct) string {
	if imgs := p.Images(); len(imgs) > 0 {
		return imgs[0]
	}
	return ""
}

// Stock is the normalized stock field of a list record: the numeric quantity
// when the catalog has one, otherwise a sentinel derived from the stock
// status. It marshals as a JSON number or string accordingly.
type Stock struct {
	Quantity *int
	Status   string
}

// MarshalJSON renders the quantity when present; otherwise ">50" for
// in-stock products and 0 for everything else.
func (s Stock) MarshalJSON() ([]byte, error) {
	if s.Quantity != nil {
		return json.Marshal(*s.Quantity)
	}
	if s.Status == StockStatusInStock {
		return json.Marshal(StockOverflowSentinel)
	}
	return json.Marshal(0)
}

// GroupPrice is one bulk-pricing extension entry for a product.
type GroupPrice struct {
	GroupID int64
	Price   string
}

// RolePrice is one legacy role-based price override.
type RolePrice struct {
	Role  string
	Price string
}

// PriceMap assembles the per-tier price map of a display record: base retail
// price first, then group prices keyed "Group <id>", then role overrides
// keyed by role name. Group and role keys never collide with each other or
// with "retail", so overlay order only matters for map key uniqueness.
// Entries with an empty price are skipped.
func PriceMap(retail string, groups []GroupPrice, roles []RolePrice) map[string]string {
	prices := map[string]string{"retail": retail}
	for _, g := range groups {
		if g.Price == "" {
			continue
		}
		prices[GroupPriceKey(g.GroupID)] = g.Price
	}
	for _, r := range roles {
		if r.Price == "" {
			continue
		}
		prices[r.Role] = r.Price
	}
	return prices
}

// GroupPriceKey returns the price-map key for a bulk-pricing group.
func GroupPriceKey(groupID int64) string {
	return "Group " + strconv.FormatInt(groupID, 10)
}

// ProductSummary is one row of a search/browse result, shaped for the live
// viewer list view.
type ProductSummary struct {
	ID       int64             `json:"id"`
	SKU      string            `json:"sku"`
	Name     string            `json:"name"`
	Genuine  string            `json:"gn"`
	ImageURL string            `json:"img"`
	Stock    Stock             `json:"stock"`
	Status   string            `json:"status"`
	Prices   map[string]string `json:"prices"`
}

// ProductDetail is the single-product (modal) projection. Unlike the list
// view it carries the full description and image list, and the raw stock
// quantity without the sentinel substitution.
type ProductDetail struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	SKU         string            `json:"sku"`
	Genuine     string            `json:"gnisios"`
	Description string            `json:"description"`
	Images      []string          `json:"images"`
	Prices      map[string]string `json:"prices"`
	Stock       *int              `json:"stock"`
	Status      string            `json:"status"`
}

