// Package explorer answers widget selections: for a fare period, fare type
// and subway line it computes the percentile bands that color the map and
// the top/bottom station tables.
package explorer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bluele/gcache"

	"github.com/randytsao24/swipemap/internal/dataset"
	"github.com/randytsao24/swipemap/internal/geo"
	"github.com/randytsao24/swipemap/internal/models"
	"github.com/randytsao24/swipemap/internal/swipes"
)

const (
	DefaultLimit = 5
	MaxLimit     = 20

	// padding around the station extent, as a fraction of its size
	boundsPad    = 0.03
	minBoundsPad = 500
)

// ErrUnknownPeriod is returned for a period index outside the dataset.
var ErrUnknownPeriod = errors.New("unknown period")

// Selection is the state of the dashboard widgets.
type Selection struct {
	Period int             `json:"period"`
	Fare   swipes.FareType `json:"-"`
	Line   string          `json:"line"`
	Limit  int             `json:"limit"`
}

func (s Selection) normalize() Selection {
	s.Line = strings.ToUpper(strings.TrimSpace(s.Line))
	if s.Line == "" {
		s.Line = swipes.AllLines
	}
	if s.Limit <= 0 {
		s.Limit = DefaultLimit
	}
	if s.Limit > MaxLimit {
		s.Limit = MaxLimit
	}
	return s
}

func (s Selection) key() string {
	return fmt.Sprintf("%d|%s|%s|%d", s.Period, s.Fare.Code(), s.Line, s.Limit)
}

// Band is one colored group of stations on the map.
type Band struct {
	Index    int              `json:"index"`
	Color    string           `json:"color"`
	Low      float64          `json:"low"`
	High     float64          `json:"high"`
	Stations []models.Station `json:"stations"`
}

// View is everything the dashboard shows for one selection.
type View struct {
	Selection
	FareCode    string                 `json:"fare"`
	FareLabel   string                 `json:"fare_label"`
	Column      string                 `json:"column"`
	PeriodLabel string                 `json:"period_label"`
	Count       int                    `json:"count"`
	Edges       []float64              `json:"edges"`
	Bands       []Band                 `json:"bands"`
	Top         []models.RankedStation `json:"top"`
	Bottom      []models.RankedStation `json:"bottom"`
}

// Explorer serves views over an immutable set of loaded periods.
type Explorer struct {
	periods []dataset.Period
	bounds  geo.Bounds
	views   gcache.Cache
}

// New builds an explorer. cacheSize bounds the number of memoised views.
func New(periods []dataset.Period, cacheSize int) *Explorer {
	e := &Explorer{periods: periods}

	var b geo.Bounds
	for _, p := range periods {
		for _, s := range p.Stations {
			b.Extend(s.X, s.Y)
		}
	}
	e.bounds = b.Pad(boundsPad, minBoundsPad)

	if cacheSize <= 0 {
		cacheSize = 1
	}
	e.views = gcache.New(cacheSize).
		LRU().
		LoaderFunc(func(key interface{}) (interface{}, error) {
			return e.compute(key.(Selection)), nil
		}).
		Build()

	return e
}

// Periods returns the loaded periods in order.
func (e *Explorer) Periods() []dataset.Period {
	return e.periods
}

// Bounds is the padded extent of every station in every period. It does not
// change with the selection, so the map frame stays put while filtering.
func (e *Explorer) Bounds() geo.Bounds {
	return e.bounds
}

// StationCount returns the number of stations in the largest period.
func (e *Explorer) StationCount() int {
	n := 0
	for _, p := range e.periods {
		if len(p.Stations) > n {
			n = len(p.Stations)
		}
	}
	return n
}

// Shares returns the overall fare-type share for each period.
func (e *Explorer) Shares() []swipes.PeriodShare {
	return dataset.Shares(e.periods)
}

// FareHikes returns the fare reference table.
func (e *Explorer) FareHikes() []dataset.FareHike {
	return dataset.FareHikes(e.periods)
}

// View recomputes the bands and tables for sel. Period is zero-based.
func (e *Explorer) View(sel Selection) (View, error) {
	if sel.Period < 0 || sel.Period >= len(e.periods) {
		return View{}, fmt.Errorf("%w: %d", ErrUnknownPeriod, sel.Period+1)
	}
	sel = sel.normalize()

	// gcache keys must be comparable; Selection is a plain struct
	v, err := e.views.Get(sel)
	if err != nil {
		return View{}, fmt.Errorf("computing view %s: %w", sel.key(), err)
	}
	return v.(View), nil
}

func (e *Explorer) compute(sel Selection) View {
	period := e.periods[sel.Period]
	stations := swipes.FilterLine(period.Stations, sel.Line)

	view := View{
		Selection:   sel,
		FareCode:    sel.Fare.Code(),
		FareLabel:   sel.Fare.Label(),
		Column:      sel.Fare.Column(),
		PeriodLabel: period.Label,
		Count:       len(stations),
		Bands:       make([]Band, swipes.BandCount),
		Top:         swipes.TopN(stations, sel.Fare, sel.Limit),
		Bottom:      swipes.BottomN(stations, sel.Fare, sel.Limit),
	}

	values := make([]float64, len(stations))
	for i, s := range stations {
		values[i] = sel.Fare.Percent(s)
	}
	view.Edges = swipes.Edges(values, swipes.BandCount)

	for i := range view.Bands {
		view.Bands[i] = Band{Index: i, Color: swipes.Palette[i], Stations: []models.Station{}}
		if view.Edges != nil {
			view.Bands[i].Low = view.Edges[i]
			view.Bands[i].High = view.Edges[i+1]
		}
	}
	if view.Edges == nil {
		return view
	}

	for i, b := range swipes.Bucketize(values, view.Edges) {
		view.Bands[b].Stations = append(view.Bands[b].Stations, stations[i])
	}
	return view
}
