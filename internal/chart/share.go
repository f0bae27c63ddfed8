// Package chart draws the "% of total swipes" line chart.
package chart

import (
	"errors"
	"fmt"
	"io"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/randytsao24/swipemap/internal/swipes"
)

const (
	Title  = "% of Total Swipes"
	Width  = 400
	Height = 400

	yMax = 75
	// keeps end points off the frame and gives a one-period chart a width
	xPad = 120 * 24 * time.Hour
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("no periods to chart")

// reversed viridis(11) at 0, 3 and 6
var lineColors = map[swipes.FareType]drawing.Color{
	swipes.FullFare:  drawing.ColorFromHex("fde725"),
	swipes.SevenDay:  drawing.ColorFromHex("7ad151"),
	swipes.ThirtyDay: drawing.ColorFromHex("21908d"),
}

// RenderShare writes the share-over-time chart as SVG.
func RenderShare(w io.Writer, shares []swipes.PeriodShare) error {
	graph, err := shareChart(shares)
	if err != nil {
		return err
	}
	if err := graph.Render(gochart.SVG, w); err != nil {
		return fmt.Errorf("rendering share chart: %w", err)
	}
	return nil
}

func shareChart(shares []swipes.PeriodShare) (*gochart.Chart, error) {
	if len(shares) == 0 {
		return nil, ErrNoData
	}

	xs := make([]time.Time, len(shares))
	first, last := shares[0].AsOf, shares[0].AsOf
	for i, s := range shares {
		xs[i] = s.AsOf
		if s.AsOf.Before(first) {
			first = s.AsOf
		}
		if s.AsOf.After(last) {
			last = s.AsOf
		}
	}

	series := make([]gochart.Series, 0, len(swipes.FareTypes))
	for _, fare := range swipes.FareTypes {
		ys := make([]float64, len(shares))
		for i, s := range shares {
			ys[i] = s.Of(fare)
		}
		series = append(series, gochart.TimeSeries{
			Name:    fare.ShortLabel(),
			XValues: xs,
			YValues: ys,
			Style: gochart.Style{
				StrokeColor: lineColors[fare],
				StrokeWidth: 5,
				DotColor:    drawing.ColorWhite,
				DotWidth:    3.5,
			},
		})
	}

	graph := &gochart.Chart{
		Title:  Title,
		Width:  Width,
		Height: Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 50, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: gochart.XAxis{
			Name:           "Year",
			ValueFormatter: gochart.TimeValueFormatterWithFormat("2006"),
			Range: &gochart.ContinuousRange{
				Min: gochart.TimeToFloat64(first.Add(-xPad)),
				Max: gochart.TimeToFloat64(last.Add(xPad)),
			},
		},
		YAxis: gochart.YAxis{
			Range:          &gochart.ContinuousRange{Min: 0, Max: yMax},
			ValueFormatter: percentFormatter,
		},
		Series: series,
	}
	graph.Elements = []gochart.Renderable{gochart.Legend(graph)}
	return graph, nil
}

func percentFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f%%", f)
	}
	return ""
}
