// Package transit reads MTA service alerts from a GTFS-realtime feed so the
// dashboard can flag disruptions on the selected line.
package transit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/randytsao24/swipemap/internal/cache"
)

// DefaultAlertsFeedURL is the MTA all-modes service alerts feed.
const DefaultAlertsFeedURL = "https://api-endpoint.mta.info/Dataservice/mtagtfsfeeds/camsys%2Fall-alerts"

// ErrAlertsDisabled is returned when no feed URL is configured.
var ErrAlertsDisabled = errors.New("service alerts are disabled")

// ServiceAlert represents an active MTA service alert
type ServiceAlert struct {
	ID          string   `json:"id"`
	Routes      []string `json:"routes"`
	Header      string   `json:"header"`
	Description string   `json:"description"`
}

// AlertService fetches and caches MTA service alerts
type AlertService struct {
	feedURL string
	client  *http.Client
	cache   *cache.Cache[[]ServiceAlert]
	now     func() time.Time
}

// NewAlertService creates a new alert service. An empty feedURL yields a
// service whose GetAlerts always returns ErrAlertsDisabled.
func NewAlertService(feedURL string, timeout, cacheTTL time.Duration) *AlertService {
	return &AlertService{
		feedURL: feedURL,
		client:  &http.Client{Timeout: timeout},
		cache:   cache.New[[]ServiceAlert](cacheTTL),
		now:     time.Now,
	}
}

// Enabled reports whether a feed is configured.
func (s *AlertService) Enabled() bool {
	return s != nil && s.feedURL != ""
}

// Close releases the cache sweeper.
func (s *AlertService) Close() {
	s.cache.Close()
}

// GetAlerts returns active service alerts, optionally filtered by route
func (s *AlertService) GetAlerts(ctx context.Context, routes []string) ([]ServiceAlert, error) {
	if !s.Enabled() {
		return nil, ErrAlertsDisabled
	}

	allAlerts, err := s.cache.Fetch("all", func() ([]ServiceAlert, error) {
		return s.fetchAlerts(ctx)
	})
	if err != nil {
		return nil, err
	}

	return FilterRoutes(allAlerts, routes), nil
}

// FilterRoutes keeps alerts that mention any of routes. No routes keeps all.
func FilterRoutes(alerts []ServiceAlert, routes []string) []ServiceAlert {
	if len(routes) == 0 {
		return alerts
	}

	routeSet := make(map[string]bool, len(routes))
	for _, r := range routes {
		routeSet[strings.ToUpper(strings.TrimSpace(r))] = true
	}

	filtered := []ServiceAlert{}
	for _, alert := range alerts {
		for _, r := range alert.Routes {
			if routeSet[strings.ToUpper(r)] {
				filtered = append(filtered, alert)
				break
			}
		}
	}
	return filtered
}

func (s *AlertService) fetchAlerts(ctx context.Context) ([]ServiceAlert, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building alerts request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching alerts feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("alerts feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading alerts response: %w", err)
	}

	feed := &gtfs.FeedMessage{}
	if err := proto.Unmarshal(body, feed); err != nil {
		return nil, fmt.Errorf("parsing alerts protobuf: %w", err)
	}

	return parseAlerts(feed, s.now()), nil
}

func parseAlerts(feed *gtfs.FeedMessage, at time.Time) []ServiceAlert {
	alerts := []ServiceAlert{}
	for _, entity := range feed.GetEntity() {
		alert := entity.GetAlert()
		if alert == nil || !activeAt(alert, at) {
			continue
		}

		header := translatedText(alert.GetHeaderText())
		if header == "" {
			continue
		}

		alerts = append(alerts, ServiceAlert{
			ID:          entity.GetId(),
			Routes:      informedRoutes(alert),
			Header:      header,
			Description: translatedText(alert.GetDescriptionText()),
		})
	}
	return alerts
}

// activeAt reports whether any active period covers at. An alert without
// periods is always active; an open end means indefinitely.
func activeAt(alert *gtfs.Alert, at time.Time) bool {
	periods := alert.GetActivePeriod()
	if len(periods) == 0 {
		return true
	}
	now := uint64(at.Unix())
	for _, p := range periods {
		if now >= p.GetStart() && (p.GetEnd() == 0 || now < p.GetEnd()) {
			return true
		}
	}
	return false
}

func informedRoutes(alert *gtfs.Alert) []string {
	var routes []string
	seen := make(map[string]bool)
	for _, ie := range alert.GetInformedEntity() {
		id := ie.GetRouteId()
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		routes = append(routes, id)
	}
	return routes
}

func translatedText(ts *gtfs.TranslatedString) string {
	if ts == nil {
		return ""
	}
	for _, t := range ts.GetTranslation() {
		if t.GetLanguage() == "en" || t.GetLanguage() == "" {
			return t.GetText()
		}
	}
	if len(ts.GetTranslation()) > 0 {
		return ts.GetTranslation()[0].GetText()
	}
	return ""
}
