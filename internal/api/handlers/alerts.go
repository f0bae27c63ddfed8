package handlers

import (
	"net/http"
	"strings"

	"github.com/randytsao24/swipemap/internal/swipes"
	"github.com/randytsao24/swipemap/internal/transit"
)

type AlertsHandler struct {
	alerts AlertProvider
}

func NewAlertsHandler(alerts AlertProvider) *AlertsHandler {
	return &AlertsHandler{alerts: alerts}
}

// Alerts returns active service alerts, optionally for one line
func (h *AlertsHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	if h.alerts == nil || !h.alerts.Enabled() {
		writeError(w, http.StatusServiceUnavailable, "Service alerts are disabled", nil)
		return
	}

	line := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("line")))
	var routes []string
	if line != "" && line != swipes.AllLines {
		routes = []string{line}
	}

	alerts, err := h.alerts.GetAlerts(r.Context(), routes)
	if err != nil {
		writeError(w, http.StatusBadGateway, "Failed to fetch service alerts", err)
		return
	}
	if alerts == nil {
		alerts = []transit.ServiceAlert{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"line":    line,
		"alerts":  alerts,
		"count":   len(alerts),
	})
}
