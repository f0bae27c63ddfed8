package chart

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/randytsao24/swipemap/internal/swipes"
)

func shares() []swipes.PeriodShare {
	dates := []time.Time{
		time.Date(2010, 12, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2013, 3, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2015, 3, 21, 0, 0, 0, 0, time.UTC),
		time.Date(2016, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	out := make([]swipes.PeriodShare, len(dates))
	for i, d := range dates {
		out[i] = swipes.PeriodShare{
			Label: "Period",
			AsOf:  d,
			Share: swipes.Share{FullFare: 45 - float64(i)*3, SevenDay: 25, ThirtyDay: 30 + float64(i)*3},
		}
	}
	return out
}

func TestRenderShare(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderShare(&buf, shares()); err != nil {
		t.Fatalf("RenderShare: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(strings.TrimSpace(out), "<svg") {
		t.Fatalf("output is not SVG: %.60q", out)
	}
	for _, want := range []string{"Full Fare", "7D UNL", "30D UNL"} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
}

func TestRenderShareSinglePeriod(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderShare(&buf, shares()[:1]); err != nil {
		t.Fatalf("RenderShare(one period): %v", err)
	}
}

func TestRenderShareEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderShare(&buf, nil); !errors.Is(err, ErrNoData) {
		t.Errorf("err = %v, want ErrNoData", err)
	}
}

func TestShareChartAxes(t *testing.T) {
	graph, err := shareChart(shares())
	if err != nil {
		t.Fatal(err)
	}
	if graph.YAxis.Range.GetMin() != 0 || graph.YAxis.Range.GetMax() != yMax {
		t.Errorf("y range = %v..%v", graph.YAxis.Range.GetMin(), graph.YAxis.Range.GetMax())
	}
	if len(graph.Series) != 3 {
		t.Errorf("series = %d, want 3", len(graph.Series))
	}
	if got := percentFormatter(42.0); got != "42%" {
		t.Errorf("percentFormatter = %q", got)
	}
}
