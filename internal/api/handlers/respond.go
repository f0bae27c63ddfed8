package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/randytsao24/swipemap/internal/explorer"
	"github.com/randytsao24/swipemap/internal/swipes"
)

var errBadPeriod = errors.New("invalid period")

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encoding JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string, err error) {
	body := map[string]any{"error": msg}
	if err != nil {
		body["message"] = err.Error()
	}
	writeJSON(w, status, body)
}

// parseIntQueryParam parses an integer query parameter with bounds
func parseIntQueryParam(r *http.Request, name string, defaultVal, min, max int) int {
	str := r.URL.Query().Get(name)
	if str == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(str)
	if err != nil {
		return defaultVal
	}

	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// parseSelection reads the widget state from the query string. period is
// 1-based on the wire and defaults to the first period.
func parseSelection(r *http.Request) (explorer.Selection, error) {
	q := r.URL.Query()
	sel := explorer.Selection{
		Line:  q.Get("line"),
		Limit: parseIntQueryParam(r, "limit", explorer.DefaultLimit, 1, explorer.MaxLimit),
	}

	fare, err := swipes.ParseFareType(q.Get("fare"))
	if err != nil {
		return sel, err
	}
	sel.Fare = fare

	if p := strings.TrimSpace(q.Get("period")); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return sel, fmt.Errorf("%w: %q", errBadPeriod, p)
		}
		sel.Period = n - 1
	}
	return sel, nil
}

// viewStatus maps an explorer error onto an HTTP status.
func viewStatus(err error) int {
	if errors.Is(err, explorer.ErrUnknownPeriod) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
