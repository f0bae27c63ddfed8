// Package handlers contains HTTP request handlers
package handlers

import (
	"net/http"
	"time"
)

type HealthHandler struct {
	startTime time.Time
	version   string
	src       ViewProvider
}

func NewHealthHandler(src ViewProvider, version string) *HealthHandler {
	return &HealthHandler{startTime: time.Now(), version: version, src: src}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   h.version,
		"uptime":    time.Since(h.startTime).String(),
		"periods":   len(h.src.Periods()),
		"stations":  h.src.StationCount(),
	})
}
