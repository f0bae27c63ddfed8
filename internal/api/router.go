package api

import (
	"net/http"
	"time"

	"github.com/randytsao24/swipemap/internal/api/handlers"
	"github.com/randytsao24/swipemap/internal/config"
)

const defaultRequestTimeout = 15 * time.Second

// NewRouter creates and configures the HTTP router with all routes and middleware
func NewRouter(
	cfg *config.Config,
	version string,
	site handlers.Site,
	src handlers.ViewProvider,
	alerts handlers.AlertProvider,
) http.Handler {
	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(src, version)
	rootHandler := handlers.NewRootHandler(version)
	dashboardHandler := handlers.NewDashboardHandler(site, src, alerts)
	explorerHandler := handlers.NewExplorerHandler(src)
	alertsHandler := handlers.NewAlertsHandler(alerts)

	// Dashboard
	mux.HandleFunc("GET /{$}", dashboardHandler.Index)
	mux.HandleFunc("GET /partials/view", dashboardHandler.Partial)
	mux.HandleFunc("GET /chart/share.svg", explorerHandler.ShareChart)

	// Core routes
	mux.HandleFunc("GET /api", rootHandler.Index)
	mux.HandleFunc("GET /health", healthHandler.Health)

	// Swipe data
	mux.HandleFunc("GET /api/view", explorerHandler.View)
	mux.HandleFunc("GET /api/periods", explorerHandler.Periods)
	mux.HandleFunc("GET /api/share", explorerHandler.Share)
	mux.HandleFunc("GET /api/lines", explorerHandler.Lines)

	// Service alerts
	mux.HandleFunc("GET /api/alerts", alertsHandler.Alerts)

	mux.HandleFunc("/", rootHandler.NotFound)

	timeout := defaultRequestTimeout
	if cfg != nil && cfg.RequestTimeout > 0 {
		timeout = cfg.RequestTimeout
	}

	return Chain(mux,
		Recovery,
		RequestID,
		Logging,
		CORS,
		Timeout(timeout),
	)
}
