package handlers

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"

	"github.com/randytsao24/swipemap/internal/explorer"
	"github.com/randytsao24/swipemap/internal/swipes"
	"github.com/randytsao24/swipemap/internal/transit"
	"github.com/randytsao24/swipemap/internal/views"
)

// Site is the dashboard copy, taken from the dataset manifest.
type Site struct {
	Title       string
	Description string
}

type DashboardHandler struct {
	site   Site
	src    ViewProvider
	alerts AlertProvider
}

func NewDashboardHandler(site Site, src ViewProvider, alerts AlertProvider) *DashboardHandler {
	return &DashboardHandler{site: site, src: src, alerts: alerts}
}

// Index renders the full dashboard for the selection in the query string
func (h *DashboardHandler) Index(w http.ResponseWriter, r *http.Request) {
	view, ok := h.view(w, r)
	if !ok {
		return
	}

	page := views.NewPageData(h.site.Title, h.site.Description,
		h.src.Periods(), h.src.FareHikes(), view, h.viewData(r.Context(), view))

	var buf bytes.Buffer
	if err := views.RenderDashboard(&buf, page); err != nil {
		slog.Error("rendering dashboard", "error", err)
		http.Error(w, "Failed to render dashboard", http.StatusInternalServerError)
		return
	}
	writeHTML(w, buf.Bytes())
}

// Partial renders just the map and tables for an HTMX swap
func (h *DashboardHandler) Partial(w http.ResponseWriter, r *http.Request) {
	view, ok := h.view(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := views.RenderViewPartial(&buf, h.viewData(r.Context(), view)); err != nil {
		slog.Error("rendering view partial", "error", err)
		http.Error(w, "Failed to render view", http.StatusInternalServerError)
		return
	}
	writeHTML(w, buf.Bytes())
}

func (h *DashboardHandler) view(w http.ResponseWriter, r *http.Request) (explorer.View, bool) {
	sel, err := parseSelection(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return explorer.View{}, false
	}

	view, err := h.src.View(sel)
	if err != nil {
		http.Error(w, err.Error(), viewStatus(err))
		return explorer.View{}, false
	}
	return view, true
}

// viewData attaches line alerts when a single line is selected. A failed
// feed drops the panel rather than the page.
func (h *DashboardHandler) viewData(ctx context.Context, view explorer.View) *views.ViewData {
	var alerts []transit.ServiceAlert
	enabled := h.alerts != nil && h.alerts.Enabled() && view.Line != swipes.AllLines

	if enabled {
		var err error
		alerts, err = h.alerts.GetAlerts(ctx, []string{view.Line})
		if err != nil {
			slog.Warn("fetching service alerts", "line", view.Line, "error", err)
			enabled = false
		}
	}

	return views.NewViewData(view, h.src.Bounds(), enabled, alerts)
}

func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Vary", "HX-Request")
	w.Write(body)
}
