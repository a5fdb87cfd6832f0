// Package http exposes the inventory lookup endpoint.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dimitrisnimas/B2B-WooCommerce-Inventory-Viewer/internal/domain"
	"github.com/dimitrisnimas/B2B-WooCommerce-Inventory-Viewer/internal/service"
	apperrors "github.com/dimitrisnimas/B2B-WooCommerce-Inventory-Viewer/pkg/errors"
	"github.com/dimitrisnimas/B2B-WooCommerce-Inventory-Viewer/pkg/httputil"
)

// InventoryService is the pipeline surface the handler dispatches to.
type InventoryService interface {
	Search(ctx context.Context, q service.Query) (*domain.SearchResult, error)
	GetProduct(ctx context.Context, id int64) (*domain.ProductDetail, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// InventoryHandler handles HTTP requests for the inventory endpoint.
type InventoryHandler struct {
	service InventoryService
	logger  *slog.Logger
}

// NewInventoryHandler creates a new inventory HTTP handler.
func NewInventoryHandler(svc InventoryService, logger *slog.Logger) *InventoryHandler {
	return &InventoryHandler{
		service: svc,
		logger:  logger,
	}
}

// Lookup handles GET /kubik/v1/inventory. A single endpoint multiplexes
// three modes for compatibility with the existing frontend: `id` selects
// single-product mode, `action=categories` the category listing, and
// `search`/`category`/`page` the search/browse pipeline. `id` wins over
// everything else.
func (h *InventoryHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	if raw := params.Get("id"); raw != "" {
		h.getProduct(w, r, raw)
		return
	}

	if params.Get("action") == "categories" {
		h.listCategories(w, r)
		return
	}

	q := service.ParseQuery(params.Get("search"), params.Get("category"), params.Get("page"))
	result, err := h.service.Search(r.Context(), q)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *InventoryHandler) getProduct(w http.ResponseWriter, r *http.Request, raw string) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("id must be a positive integer"), h.logger)
		return
	}

	detail, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	// Single-product mode returns the bare object, no envelope.
	httputil.WriteJSON(w, http.StatusOK, detail)
}

func (h *InventoryHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	// Bare array, no envelope.
	httputil.WriteJSON(w, http.StatusOK, categories)
}
