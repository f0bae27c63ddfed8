package handlers

import (
	"net/http"
)

type RootHandler struct {
	version string
}

func NewRootHandler(version string) *RootHandler {
	return &RootHandler{version: version}
}

func (h *RootHandler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":        "swipemap",
		"description": "MetroCard swipe shares by station, fare type and fare period",
		"version":     h.version,
		"endpoints": map[string]string{
			"GET /":                 "Interactive map dashboard",
			"GET /partials/view":    "Map and tables fragment (period, fare, line, limit)",
			"GET /chart/share.svg":  "% of total swipes chart",
			"GET /api":              "API information",
			"GET /health":           "Health check",
			"GET /api/view":         "Bands and top/bottom stations (period, fare, line, limit)",
			"GET /api/periods":      "Fare periods and prices",
			"GET /api/share":        "Share of swipes per fare type and period",
			"GET /api/lines":        "Subway lines for filtering",
			"GET /api/alerts?line=": "Active service alerts",
		},
	})
}

func (h *RootHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"error":   "Route not found",
		"message": "Check /api for available routes",
	})
}
