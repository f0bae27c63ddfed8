package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/randytsao24/swipemap/internal/dataset"
	"github.com/randytsao24/swipemap/internal/explorer"
	"github.com/randytsao24/swipemap/internal/geo"
	"github.com/randytsao24/swipemap/internal/models"
	"github.com/randytsao24/swipemap/internal/swipes"
	"github.com/randytsao24/swipemap/internal/transit"
)

// dots per map width
const dotsAcross = 150

// Option is one choice in a radio group or select.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// FareRow is a formatted row of the fare reference table.
type FareRow struct {
	Start  string
	End    string
	Price  string
	Change string
}

// PageData is the view model for the whole dashboard.
type PageData struct {
	Title       string
	Description string
	Periods     []Option
	Fares       []Option
	Lines       []Option
	Limit       int
	FareRows    []FareRow
	View        *ViewData
}

// MapPoint is one station dot. CY is negated northing so that SVG's
// downward y axis still puts north at the top.
type MapPoint struct {
	CX      float64
	CY      float64
	Color   string
	Tooltip string
}

// Swatch is one band's segment of the color bar, on a 0-100 scale.
type Swatch struct {
	X     float64
	Width float64
	Color string
}

// Table is a titled top or bottom station table.
type Table struct {
	Title string
	Rows  []models.RankedStation
}

// ViewData is the view model for the map partial.
type ViewData struct {
	Heading       string
	ViewBox       string
	Radius        float64
	Count         int
	Points        []MapPoint
	Swatches      []Swatch
	Ticks         []string
	Top           Table
	Bottom        Table
	AlertsEnabled bool
	Alerts        []transit.ServiceAlert
}

// NewViewData builds the map partial model. bounds frames the map and
// should not change between selections.
func NewViewData(v explorer.View, bounds geo.Bounds, alertsEnabled bool, alerts []transit.ServiceAlert) *ViewData {
	data := &ViewData{
		Heading:       fmt.Sprintf("%s: %s, line %s", v.PeriodLabel, v.FareLabel, v.Line),
		ViewBox:       fmt.Sprintf("%.0f %.0f %.0f %.0f", bounds.MinX, -bounds.MaxY, bounds.Width(), bounds.Height()),
		Radius:        radius(bounds),
		Count:         v.Count,
		Top:           Table{Title: fmt.Sprintf("Top %d Stations", v.Limit), Rows: v.Top},
		Bottom:        Table{Title: fmt.Sprintf("Bottom %d Stations", v.Limit), Rows: v.Bottom},
		AlertsEnabled: alertsEnabled,
		Alerts:        alerts,
	}

	// lowest band first so the darkest dots draw on top
	for _, b := range v.Bands {
		for _, s := range b.Stations {
			data.Points = append(data.Points, MapPoint{
				CX:      s.X,
				CY:      -s.Y,
				Color:   b.Color,
				Tooltip: Tooltip(s),
			})
		}
	}

	width := 100.0 / swipes.BandCount
	for i, color := range swipes.Palette {
		data.Swatches = append(data.Swatches, Swatch{X: float64(i) * width, Width: width, Color: color})
	}

	for i, pct := range swipes.LegendTicks {
		label := strconv.Itoa(pct) + "th"
		if v.Edges != nil && i < len(v.Edges) {
			label += fmt.Sprintf(" (%.1f%%)", v.Edges[i])
		}
		data.Ticks = append(data.Ticks, label)
	}
	return data
}

func radius(b geo.Bounds) float64 {
	w := b.Width()
	if h := b.Height(); h > w {
		w = h
	}
	if w <= 0 {
		return 1
	}
	return w / dotsAcross
}

// Tooltip is the hover text for a station dot.
func Tooltip(s models.Station) string {
	var b strings.Builder
	fmt.Fprintf(&b, "STN: %s\nLINES: %s\n", s.Name, s.Lines)
	for _, fare := range swipes.FareTypes {
		fmt.Fprintf(&b, "%s: %.2f%% (%s)\n", fare.ShortLabel(), fare.Percent(s), humanize.Comma(fare.Count(s)))
	}
	fmt.Fprintf(&b, "TOTAL: %s swipes", humanize.Comma(s.Total()))
	return b.String()
}

// NewPageData builds the dashboard model around an already built partial.
func NewPageData(title, description string, periods []dataset.Period, hikes []dataset.FareHike, v explorer.View, view *ViewData) *PageData {
	page := &PageData{
		Title:       title,
		Description: description,
		Limit:       v.Limit,
		View:        view,
	}

	for i, p := range periods {
		page.Periods = append(page.Periods, Option{
			Value:    strconv.Itoa(i + 1),
			Label:    p.Label,
			Selected: i == v.Period,
		})
	}
	for _, f := range swipes.FareTypes {
		page.Fares = append(page.Fares, Option{Value: f.Code(), Label: f.Label(), Selected: f == v.Fare})
	}
	for _, l := range swipes.Lines {
		page.Lines = append(page.Lines, Option{Value: l, Label: l, Selected: l == v.Line})
	}
	for _, h := range hikes {
		page.FareRows = append(page.FareRows, FareRow{
			Start:  h.StartString(),
			End:    h.EndString(),
			Price:  h.PriceString(),
			Change: h.ChangeString(),
		})
	}
	return page
}
