package explorer

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/randytsao24/swipemap/internal/dataset"
	"github.com/randytsao24/swipemap/internal/models"
	"github.com/randytsao24/swipemap/internal/swipes"
)

func loadSample(t *testing.T) *Explorer {
	t.Helper()
	m, err := dataset.LoadManifest(filepath.Join("..", "..", "data", "manifest.yaml"))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	periods, err := dataset.Load(m)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return New(periods, 16)
}

func synthetic(values ...float64) []dataset.Period {
	stations := make([]models.Station, len(values))
	for i, v := range values {
		s := models.Station{
			Name:     string(rune('a' + i)),
			Lines:    "A",
			Routes:   []string{"A"},
			FullFare: int64(v),
			SevenDay: int64(100 - v),
			X:        float64(i) * 1000,
			Y:        float64(i) * 500,
		}
		swipes.ApplyPercentages(&s)
		stations[i] = s
	}
	return []dataset.Period{{Label: "Only", Stations: stations}}
}

func TestViewBandsCoverEveryStation(t *testing.T) {
	e := loadSample(t)

	for p := range e.Periods() {
		for _, fare := range swipes.FareTypes {
			v, err := e.View(Selection{Period: p, Fare: fare})
			if err != nil {
				t.Fatalf("View: %v", err)
			}
			total := 0
			for i, b := range v.Bands {
				total += len(b.Stations)
				if b.Color != swipes.Palette[i] {
					t.Errorf("band %d color = %s", i, b.Color)
				}
				for _, s := range b.Stations {
					pct := fare.Percent(s)
					if pct < b.Low || pct > b.High {
						t.Errorf("%s %.2f outside band %d [%.2f, %.2f]", s.Name, pct, i, b.Low, b.High)
					}
				}
			}
			if total != v.Count || v.Count != len(e.Periods()[p].Stations) {
				t.Errorf("period %d %s: banded %d of %d", p, fare, total, v.Count)
			}
			if len(v.Edges) != swipes.BandCount+1 {
				t.Errorf("edges = %v", v.Edges)
			}
		}
	}
}

func TestViewTables(t *testing.T) {
	e := New(synthetic(10, 90, 50, 70, 30, 20, 80), 4)

	v, err := e.View(Selection{Period: 0, Fare: swipes.FullFare, Limit: 3})
	if err != nil {
		t.Fatal(err)
	}
	if v.Limit != 3 || len(v.Top) != 3 || len(v.Bottom) != 3 {
		t.Fatalf("tables = %d/%d", len(v.Top), len(v.Bottom))
	}
	if v.Top[0].Station != "b" || v.Top[0].Percent != 90 {
		t.Errorf("top[0] = %+v", v.Top[0])
	}
	if v.Bottom[0].Station != "a" || v.Bottom[0].Percent != 10 {
		t.Errorf("bottom[0] = %+v", v.Bottom[0])
	}

	// highest share is darkest, lowest is lightest
	if !hasStation(v.Bands[swipes.BandCount-1].Stations, "b") {
		t.Errorf("top band = %v", v.Bands[swipes.BandCount-1].Stations)
	}
	if got := v.Bands[0].Stations; len(got) == 0 || got[0].Name != "a" {
		t.Errorf("bottom band = %v", got)
	}
}

func TestViewDefaultsAndClamps(t *testing.T) {
	e := New(synthetic(10, 20, 30), 4)

	v, err := e.View(Selection{Line: " all "})
	if err != nil {
		t.Fatal(err)
	}
	if v.Line != swipes.AllLines || v.Limit != DefaultLimit {
		t.Errorf("normalized selection = %+v", v.Selection)
	}
	if len(v.Top) != 3 {
		t.Errorf("top has %d rows for 3 stations", len(v.Top))
	}

	v, _ = e.View(Selection{Limit: 500})
	if v.Limit != MaxLimit {
		t.Errorf("limit = %d, want %d", v.Limit, MaxLimit)
	}
}

func TestViewLineFilter(t *testing.T) {
	e := loadSample(t)

	v, err := e.View(Selection{Period: 0, Fare: swipes.SevenDay, Line: "l"})
	if err != nil {
		t.Fatal(err)
	}
	if v.Count == 0 {
		t.Fatal("expected L stations in sample data")
	}
	for _, b := range v.Bands {
		for _, s := range b.Stations {
			if !swipes.Serves(s, "L") {
				t.Errorf("%s (%s) does not serve L", s.Name, s.Lines)
			}
		}
	}
}

func TestViewEmptySelection(t *testing.T) {
	e := New(synthetic(10, 20), 4)

	v, err := e.View(Selection{Line: "7"})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if v.Count != 0 || v.Edges != nil || len(v.Top) != 0 || len(v.Bottom) != 0 {
		t.Errorf("empty view = %+v", v)
	}
	if len(v.Bands) != swipes.BandCount {
		t.Errorf("bands = %d", len(v.Bands))
	}
	for _, b := range v.Bands {
		if b.Stations == nil {
			t.Error("band stations should be an empty slice, not nil")
		}
	}
}

func TestViewUnknownPeriod(t *testing.T) {
	e := New(synthetic(10), 4)
	for _, p := range []int{-1, 1, 9} {
		if _, err := e.View(Selection{Period: p}); !errors.Is(err, ErrUnknownPeriod) {
			t.Errorf("period %d err = %v", p, err)
		}
	}
}

func TestViewMemoised(t *testing.T) {
	e := New(synthetic(10, 20, 30), 4)
	sel := Selection{Fare: swipes.ThirtyDay}

	first, _ := e.View(sel)
	second, _ := e.View(sel)
	if first.Count != second.Count || len(first.Bands) != len(second.Bands) {
		t.Fatal("views differ")
	}
	if e.views.Len(false) != 1 {
		t.Errorf("cache holds %d views, want 1", e.views.Len(false))
	}
}

func TestBoundsAndShares(t *testing.T) {
	e := New(synthetic(10, 20, 30), 4)

	b := e.Bounds()
	if b.MinX >= 0 || b.MaxX <= 2000 || b.MinY >= 0 || b.MaxY <= 1000 {
		t.Errorf("bounds not padded around stations: %+v", b)
	}
	if e.StationCount() != 3 {
		t.Errorf("StationCount = %d", e.StationCount())
	}
	if len(e.Shares()) != 1 || len(e.FareHikes()) != 1 {
		t.Error("expected one share and one fare row")
	}
}

func hasStation(stations []models.Station, name string) bool {
	for _, s := range stations {
		if s.Name == name {
			return true
		}
	}
	return false
}
