package dataset

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FareHike is a row in the fare reference table.
type FareHike struct {
	Label     string           `json:"label"`
	Start     time.Time        `json:"start"`
	End       time.Time        `json:"end"`
	Price     decimal.Decimal  `json:"price"`
	PctChange *decimal.Decimal `json:"pct_change"`
}

// FareHikes builds the fare table. PctChange is the fractional change from
// the previous period's price and is nil for the first period.
func FareHikes(periods []Period) []FareHike {
	out := make([]FareHike, len(periods))
	for i, p := range periods {
		out[i] = FareHike{
			Label: p.Label,
			Start: p.Start,
			End:   p.End,
			Price: p.Price,
		}
		if i == 0 {
			continue
		}
		prev := periods[i-1].Price
		if prev.IsZero() {
			continue
		}
		change := p.Price.Sub(prev).Div(prev)
		out[i].PctChange = &change
	}
	return out
}

// StartString formats the start date as m/d/yy.
func (h FareHike) StartString() string { return h.Start.Format("1/2/06") }

// EndString formats the end date as m/d/yy.
func (h FareHike) EndString() string { return h.End.Format("1/2/06") }

// PriceString formats the price as dollars.
func (h FareHike) PriceString() string {
	return "$" + h.Price.StringFixed(2)
}

// ChangeString formats the change as a signed percentage, or "" for the
// first period.
func (h FareHike) ChangeString() string {
	if h.PctChange == nil {
		return ""
	}
	pct := h.PctChange.Mul(hundred)
	sign := "+"
	if pct.IsNegative() {
		sign = ""
	}
	return sign + pct.StringFixed(2) + "%"
}
