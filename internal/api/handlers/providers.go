package handlers

import (
	"context"

	"github.com/randytsao24/swipemap/internal/dataset"
	"github.com/randytsao24/swipemap/internal/explorer"
	"github.com/randytsao24/swipemap/internal/geo"
	"github.com/randytsao24/swipemap/internal/swipes"
	"github.com/randytsao24/swipemap/internal/transit"
)

// ViewProvider abstracts the swipe explorer for testability.
type ViewProvider interface {
	Periods() []dataset.Period
	Bounds() geo.Bounds
	StationCount() int
	View(sel explorer.Selection) (explorer.View, error)
	Shares() []swipes.PeriodShare
	FareHikes() []dataset.FareHike
}

// AlertProvider abstracts the service alerts data source.
type AlertProvider interface {
	Enabled() bool
	GetAlerts(ctx context.Context, routes []string) ([]transit.ServiceAlert, error)
}
