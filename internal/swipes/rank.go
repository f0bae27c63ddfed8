package swipes

import (
	"sort"
	"strings"
	"unicode"

	"github.com/randytsao24/swipemap/internal/models"
)

// AllLines selects every station.
const AllLines = "ALL"

// Lines is the subway line selector, in display order.
var Lines = []string{AllLines, "A", "B", "C", "D", "E", "F", "G", "J", "L", "M", "N", "Q", "R", "S", "Z",
	"1", "2", "3", "4", "5", "6", "7"}

// ParseRoutes splits a LINES cell into route identifiers. Cells come both
// packed ("ACE") and delimited ("1 2 3", "N-Q-R"); numbered routes like
// "42" stay whole.
func ParseRoutes(lines string) []string {
	fields := strings.FieldsFunc(strings.ToUpper(lines), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]bool)
	var routes []string
	add := func(r string) {
		if !seen[r] {
			seen[r] = true
			routes = append(routes, r)
		}
	}

	for _, f := range fields {
		if len(f) > 1 && !isNumber(f) {
			for _, r := range f {
				add(string(r))
			}
			continue
		}
		add(f)
	}
	return routes
}

func isNumber(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Serves reports whether the station serves line.
func Serves(s models.Station, line string) bool {
	line = strings.ToUpper(strings.TrimSpace(line))
	for _, r := range s.Routes {
		if r == line {
			return true
		}
	}
	return false
}

// FilterLine keeps the stations serving line. AllLines or an empty line
// keeps everything.
func FilterLine(stations []models.Station, line string) []models.Station {
	line = strings.ToUpper(strings.TrimSpace(line))
	if line == "" || line == AllLines {
		return stations
	}
	var out []models.Station
	for _, s := range stations {
		if Serves(s, line) {
			out = append(out, s)
		}
	}
	return out
}

// TopN returns the n stations with the highest share for fare.
func TopN(stations []models.Station, fare FareType, n int) []models.RankedStation {
	return rank(stations, fare, n, true)
}

// BottomN returns the n stations with the lowest share for fare.
func BottomN(stations []models.Station, fare FareType, n int) []models.RankedStation {
	return rank(stations, fare, n, false)
}

func rank(stations []models.Station, fare FareType, n int, desc bool) []models.RankedStation {
	sorted := append([]models.Station(nil), stations...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if desc {
			return fare.Percent(sorted[i]) > fare.Percent(sorted[j])
		}
		return fare.Percent(sorted[i]) < fare.Percent(sorted[j])
	})

	if n < 0 {
		n = 0
	}
	if n > len(sorted) {
		n = len(sorted)
	}

	out := make([]models.RankedStation, n)
	for i := 0; i < n; i++ {
		out[i] = models.RankedStation{
			Rank:    i + 1,
			Station: sorted[i].Name,
			Lines:   sorted[i].Lines,
			Percent: fare.Percent(sorted[i]),
		}
	}
	return out
}
