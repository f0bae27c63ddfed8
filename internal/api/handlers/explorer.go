package handlers

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/randytsao24/swipemap/internal/chart"
	"github.com/randytsao24/swipemap/internal/swipes"
)

type ExplorerHandler struct {
	src ViewProvider
}

func NewExplorerHandler(src ViewProvider) *ExplorerHandler {
	return &ExplorerHandler{src: src}
}

// periodRow is a fare period as the API reports it. Period is 1-based.
type periodRow struct {
	Period   int    `json:"period"`
	Label    string `json:"label"`
	Start    string `json:"start"`
	End      string `json:"end"`
	AsOf     string `json:"as_of"`
	Price    string `json:"price"`
	Change   string `json:"change,omitempty"`
	Stations int    `json:"stations"`
}

// View returns the bands and station tables for a selection
func (h *ExplorerHandler) View(w http.ResponseWriter, r *http.Request) {
	sel, err := parseSelection(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid selection", err)
		return
	}

	view, err := h.src.View(sel)
	if err != nil {
		writeError(w, viewStatus(err), "Failed to build view", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"view":    view,
		"bounds":  h.src.Bounds(),
	})
}

// Periods returns the fare reference table
func (h *ExplorerHandler) Periods(w http.ResponseWriter, r *http.Request) {
	periods := h.src.Periods()
	hikes := h.src.FareHikes()

	rows := make([]periodRow, len(hikes))
	for i, hike := range hikes {
		rows[i] = periodRow{
			Period: i + 1,
			Label:  hike.Label,
			Start:  hike.StartString(),
			End:    hike.EndString(),
			Price:  hike.PriceString(),
			Change: hike.ChangeString(),
		}
		if i < len(periods) {
			rows[i].AsOf = periods[i].AsOf.Format("2006-01-02")
			rows[i].Stations = len(periods[i].Stations)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"periods": rows,
		"count":   len(rows),
	})
}

// Share returns each fare type's share of all swipes per period
func (h *ExplorerHandler) Share(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"shares":  h.src.Shares(),
	})
}

// Lines returns the line filter options
func (h *ExplorerHandler) Lines(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"lines":   swipes.Lines,
	})
}

// ShareChart renders the share-over-time chart as SVG
func (h *ExplorerHandler) ShareChart(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := chart.RenderShare(&buf, h.src.Shares()); err != nil {
		slog.Error("rendering share chart", "error", err)
		http.Error(w, "Failed to render chart", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(buf.Bytes())
}
