// Package models defines shared data types
package models

// Station is one swipe record: a station's counts for a single fare period
// plus the fields derived from them at load time.
type Station struct {
	Name   string   `json:"station"`
	Lat    float64  `json:"lat"`
	Lng    float64  `json:"lng"`
	Lines  string   `json:"lines"`
	Routes []string `json:"routes"`

	FullFare  int64 `json:"ff"`
	SevenDay  int64 `json:"7d_unl"`
	ThirtyDay int64 `json:"30d_unl"`

	// Web Mercator meters
	X float64 `json:"x"`
	Y float64 `json:"y"`

	// Share of this station's swipes by fare type, 0-100.
	FullFarePct  float64 `json:"ff_pct"`
	SevenDayPct  float64 `json:"7d_unl_pct"`
	ThirtyDayPct float64 `json:"30d_unl_pct"`
}

// Total returns the station's swipes across all tracked fare types.
func (s Station) Total() int64 {
	return s.FullFare + s.SevenDay + s.ThirtyDay
}

// RankedStation is a row in a top/bottom table.
type RankedStation struct {
	Rank    int     `json:"rank"`
	Station string  `json:"station"`
	Lines   string  `json:"lines"`
	Percent float64 `json:"percent"`
}
