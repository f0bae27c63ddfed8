// Package swipes holds the computations behind the map: fare type selection,
// percentage derivation, percentile bands, rankings and overall shares.
package swipes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/randytsao24/swipemap/internal/models"
)

// ErrUnknownFare is returned when a fare type cannot be parsed.
var ErrUnknownFare = errors.New("unknown fare type")

// FareType selects one of the tracked MetroCard types.
type FareType int

const (
	FullFare FareType = iota
	SevenDay
	ThirtyDay
)

// FareTypes lists every fare type in widget order.
var FareTypes = []FareType{FullFare, SevenDay, ThirtyDay}

// ParseFareType accepts a short code, a long name or a widget index.
func ParseFareType(s string) (FareType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ff", "full", "fullfare", "full_fare", "0":
		return FullFare, nil
	case "7d", "7d_unl", "sevenday", "seven_day", "1":
		return SevenDay, nil
	case "30d", "30d_unl", "thirtyday", "thirty_day", "2":
		return ThirtyDay, nil
	}
	return FullFare, fmt.Errorf("%w: %q", ErrUnknownFare, s)
}

// Code is the short form used in URLs.
func (f FareType) Code() string {
	switch f {
	case SevenDay:
		return "7d"
	case ThirtyDay:
		return "30d"
	default:
		return "ff"
	}
}

// Label is the widget label.
func (f FareType) Label() string {
	switch f {
	case SevenDay:
		return "7-Day Unlimited"
	case ThirtyDay:
		return "30-Day Unlimited"
	default:
		return "Full Fare"
	}
}

// ShortLabel is used in tooltips and the chart legend.
func (f FareType) ShortLabel() string {
	switch f {
	case SevenDay:
		return "7D UNL"
	case ThirtyDay:
		return "30D UNL"
	default:
		return "Full Fare"
	}
}

// Column is the name of the derived percentage column.
func (f FareType) Column() string {
	switch f {
	case SevenDay:
		return "7D_UNL_PCT"
	case ThirtyDay:
		return "30D_UNL_PCT"
	default:
		return "FF_PCT"
	}
}

func (f FareType) String() string { return f.Code() }

// Percent returns the station's share for this fare type.
func (f FareType) Percent(s models.Station) float64 {
	switch f {
	case SevenDay:
		return s.SevenDayPct
	case ThirtyDay:
		return s.ThirtyDayPct
	default:
		return s.FullFarePct
	}
}

// Count returns the station's swipe count for this fare type.
func (f FareType) Count(s models.Station) int64 {
	switch f {
	case SevenDay:
		return s.SevenDay
	case ThirtyDay:
		return s.ThirtyDay
	default:
		return s.FullFare
	}
}

// ApplyPercentages fills the percentage columns from the raw counts. A
// station with no swipes keeps every percentage at zero.
func ApplyPercentages(s *models.Station) {
	total := float64(s.Total())
	if total == 0 {
		s.FullFarePct, s.SevenDayPct, s.ThirtyDayPct = 0, 0, 0
		return
	}
	s.FullFarePct = float64(s.FullFare) * 100 / total
	s.SevenDayPct = float64(s.SevenDay) * 100 / total
	s.ThirtyDayPct = float64(s.ThirtyDay) * 100 / total
}
