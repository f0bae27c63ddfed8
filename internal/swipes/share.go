package swipes

import (
	"time"

	"github.com/randytsao24/swipemap/internal/models"
)

// Share is the percentage of all swipes taken by each fare type.
type Share struct {
	FullFare  float64 `json:"ff"`
	SevenDay  float64 `json:"7d_unl"`
	ThirtyDay float64 `json:"30d_unl"`
}

// Of returns the share for fare.
func (s Share) Of(fare FareType) float64 {
	switch fare {
	case SevenDay:
		return s.SevenDay
	case ThirtyDay:
		return s.ThirtyDay
	default:
		return s.FullFare
	}
}

// PeriodShare is one point on the share-over-time chart.
type PeriodShare struct {
	Label string    `json:"label"`
	AsOf  time.Time `json:"as_of"`
	Share
}

// ShareOf sums counts across stations and returns each fare type's
// percentage of the total. No swipes yields a zero Share.
func ShareOf(stations []models.Station) Share {
	var ff, sd, td int64
	for _, s := range stations {
		ff += s.FullFare
		sd += s.SevenDay
		td += s.ThirtyDay
	}
	total := float64(ff + sd + td)
	if total == 0 {
		return Share{}
	}
	return Share{
		FullFare:  float64(ff) * 100 / total,
		SevenDay:  float64(sd) * 100 / total,
		ThirtyDay: float64(td) * 100 / total,
	}
}
