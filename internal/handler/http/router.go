package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dimitrisnimas/B2B-WooCommerce-Inventory-Viewer/pkg/health"
	"github.com/dimitrisnimas/B2B-WooCommerce-Inventory-Viewer/pkg/middleware"
)

// RouterConfig carries the HTTP surface settings the router needs.
type RouterConfig struct {
	ServiceName string

	// APIKeyHeader and APIKey guard the inventory route.
	APIKeyHeader string
	APIKey       string

	// CacheMaxAge is the Cache-Control max-age (seconds) on inventory
	// responses. Zero disables the header.
	CacheMaxAge int

	// PprofAllowedCIDRs enables /debug/pprof for matching client IPs when
	// non-empty.
	PprofAllowedCIDRs []string
}

// NewRouter creates a chi router with all inventory routes registered.
func NewRouter(svc InventoryService, healthHandler *health.Handler, cfg RouterConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing(cfg.ServiceName))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))

	// Operational endpoints, outside the API key guard.
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	if len(cfg.PprofAllowedCIDRs) > 0 {
		middleware.RegisterPprof(r, cfg.PprofAllowedCIDRs, logger)
	}

	inventoryHandler := NewInventoryHandler(svc, logger)

	corsCfg := middleware.DefaultCORSConfig()
	if cfg.APIKeyHeader != "" && cfg.APIKeyHeader != "X-Inventory-Key" {
		corsCfg.AllowedHeaders = append(corsCfg.AllowedHeaders, cfg.APIKeyHeader)
	}

	r.Route("/kubik/v1", func(r chi.Router) {
		// CORS runs before the key check so browser preflights, which never
		// carry the key, are answered instead of rejected.
		r.Use(middleware.CORS(corsCfg))
		r.Use(middleware.APIKey(cfg.APIKeyHeader, cfg.APIKey))
		if cfg.CacheMaxAge > 0 {
			r.Use(middleware.CacheControl(cfg.CacheMaxAge))
		}

		r.Get("/inventory", inventoryHandler.Lookup)
	})

	return r
}
