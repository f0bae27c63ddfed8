// Package geo projects WGS84 coordinates onto the Web Mercator plane used by
// map tiles.
package geo

import "math"

// EarthRadiusMeters is the WGS84 semi-major axis used by Web Mercator.
const EarthRadiusMeters = 6378137

// originShift is half the projected world width in meters.
const originShift = 2 * math.Pi * EarthRadiusMeters / 2.0

// LonLatToMeters converts a latitude/longitude pair to Web Mercator x/y in
// meters. Latitudes at or beyond the poles are not rejected; the result is
// then infinite or NaN.
func LonLatToMeters(lat, lon float64) (x, y float64) {
	x = lon * originShift / 180.0
	y = math.Log(math.Tan((90+lat)*math.Pi/360.0)) / (math.Pi / 180.0)
	y = y * originShift / 180.0
	return x, y
}

// Bounds is an axis-aligned extent in projected meters.
type Bounds struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`

	set bool
}

// Extend grows b to include the point.
func (b *Bounds) Extend(x, y float64) {
	if !b.set {
		*b = Bounds{MinX: x, MaxX: x, MinY: y, MaxY: y, set: true}
		return
	}
	b.MinX = math.Min(b.MinX, x)
	b.MaxX = math.Max(b.MaxX, x)
	b.MinY = math.Min(b.MinY, y)
	b.MaxY = math.Max(b.MaxY, y)
}

// Empty reports whether no point has been added.
func (b Bounds) Empty() bool {
	return !b.set
}

func (b Bounds) Width() float64  { return b.MaxX - b.MinX }
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Pad returns b expanded on every side by fraction of its larger dimension.
// A degenerate extent is padded by minPad meters instead.
func (b Bounds) Pad(fraction, minPad float64) Bounds {
	if b.Empty() {
		return b
	}
	p := math.Max(b.Width(), b.Height()) * fraction
	if p < minPad {
		p = minPad
	}
	return Bounds{
		MinX: b.MinX - p,
		MinY: b.MinY - p,
		MaxX: b.MaxX + p,
		MaxY: b.MaxY + p,
		set:  true,
	}
}
