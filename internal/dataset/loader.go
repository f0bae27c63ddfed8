package dataset

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/shopspring/decimal"

	"github.com/randytsao24/swipemap/internal/geo"
	"github.com/randytsao24/swipemap/internal/models"
	"github.com/randytsao24/swipemap/internal/swipes"
)

var (
	// ErrMissingColumn means a swipe CSV lacks a required column.
	ErrMissingColumn = errors.New("missing required column")
	// ErrInvalidRow means a row has an unusable coordinate or count.
	ErrInvalidRow = errors.New("invalid row")
)

// Column names in the swipe CSVs.
const (
	ColStation   = "STATION"
	ColLatitude  = "LATITUDE"
	ColLongitude = "LONGITUDE"
	ColLines     = "LINES"
	ColFullFare  = "FF"
	ColSevenDay  = "7D_UNL"
	ColThirtyDay = "30D_UNL"
)

var requiredColumns = []string{ColStation, ColLatitude, ColLongitude, ColLines, ColFullFare, ColSevenDay, ColThirtyDay}

// Period is one fare period with its stations loaded.
type Period struct {
	Index    int              `json:"index"`
	Label    string           `json:"label"`
	Start    time.Time        `json:"start"`
	End      time.Time        `json:"end"`
	AsOf     time.Time        `json:"as_of"`
	Price    decimal.Decimal  `json:"price"`
	Stations []models.Station `json:"-"`
}

// Load reads every period listed in the manifest, in order.
func Load(m *Manifest) ([]Period, error) {
	periods := make([]Period, 0, len(m.Periods))
	for i, spec := range m.Periods {
		p := spec.period(i)

		stations, err := readFile(m.Path(spec))
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", spec.Label, err)
		}
		p.Stations = stations
		periods = append(periods, p)
	}
	return periods, nil
}

func readFile(path string) ([]models.Station, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening swipes file: %w", err)
	}
	defer file.Close()

	return ReadStations(file)
}

// ReadStations parses a swipe CSV, projects each station and derives its
// fare-type percentages. Extra columns are ignored.
func ReadStations(r io.Reader) ([]models.Station, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithTypes(map[string]series.Type{
			ColLatitude:  series.Float,
			ColLongitude: series.Float,
			ColFullFare:  series.Float,
			ColSevenDay:  series.Float,
			ColThirtyDay: series.Float,
		}),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("reading CSV: %w", df.Err)
	}

	have := make(map[string]bool)
	for _, name := range df.Names() {
		have[name] = true
	}
	for _, col := range requiredColumns {
		if !have[col] {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	if df.Nrow() == 0 {
		return nil, fmt.Errorf("swipes file has no data rows")
	}

	names := df.Col(ColStation).Records()
	lines := df.Col(ColLines).Records()
	lats := df.Col(ColLatitude).Float()
	lngs := df.Col(ColLongitude).Float()
	ff := df.Col(ColFullFare).Float()
	sd := df.Col(ColSevenDay).Float()
	td := df.Col(ColThirtyDay).Float()

	stations := make([]models.Station, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		// header is line 1
		line := i + 2

		if !finite(lats[i]) || !finite(lngs[i]) || math.Abs(lats[i]) >= 90 || math.Abs(lngs[i]) > 180 {
			return nil, fmt.Errorf("%w: line %d: bad coordinates", ErrInvalidRow, line)
		}

		counts := [3]int64{}
		for j, v := range []float64{ff[i], sd[i], td[i]} {
			if !finite(v) || v < 0 {
				return nil, fmt.Errorf("%w: line %d: bad swipe count", ErrInvalidRow, line)
			}
			counts[j] = int64(math.Round(v))
		}

		x, y := geo.LonLatToMeters(lats[i], lngs[i])

		s := models.Station{
			Name:      names[i],
			Lat:       lats[i],
			Lng:       lngs[i],
			Lines:     lines[i],
			Routes:    swipes.ParseRoutes(lines[i]),
			FullFare:  counts[0],
			SevenDay:  counts[1],
			ThirtyDay: counts[2],
			X:         x,
			Y:         y,
		}
		swipes.ApplyPercentages(&s)
		stations = append(stations, s)
	}

	return stations, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Shares computes the share-over-time series across periods.
func Shares(periods []Period) []swipes.PeriodShare {
	out := make([]swipes.PeriodShare, len(periods))
	for i, p := range periods {
		out[i] = swipes.PeriodShare{
			Label: p.Label,
			AsOf:  p.AsOf,
			Share: swipes.ShareOf(p.Stations),
		}
	}
	return out
}
