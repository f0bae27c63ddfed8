package geo

import (
	"math"
	"testing"
)

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestLonLatToMeters(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		x, y     float64
	}{
		{"origin", 0, 0, 0, 0},
		{"antimeridian", 0, 180, originShift, 0},
		{"times square", 40.758, -73.9855, -8236028.2, 4976712.0},
		{"south", -33.8688, 151.2093, 16832542.3, -4011198.6},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y := LonLatToMeters(tc.lat, tc.lon)
			if !approx(x, tc.x, 1) {
				t.Errorf("x = %.1f, want %.1f", x, tc.x)
			}
			if !approx(y, tc.y, 1) {
				t.Errorf("y = %.1f, want %.1f", y, tc.y)
			}
		})
	}
}

func TestLonLatToMetersSymmetric(t *testing.T) {
	_, north := LonLatToMeters(40.7, 0)
	_, south := LonLatToMeters(-40.7, 0)
	if !approx(north, -south, 1e-6) {
		t.Errorf("north %.3f and south %.3f should mirror", north, south)
	}
}

func TestLonLatToMetersPole(t *testing.T) {
	_, y := LonLatToMeters(90, 0)
	if !math.IsInf(y, 0) && !math.IsNaN(y) && y <= originShift {
		t.Errorf("y at pole = %v, want outside the projected world", y)
	}
}

func TestBounds(t *testing.T) {
	var b Bounds
	if !b.Empty() {
		t.Fatal("zero Bounds should be empty")
	}

	b.Extend(10, 20)
	b.Extend(-5, 40)
	b.Extend(3, 25)

	if b.MinX != -5 || b.MaxX != 10 || b.MinY != 20 || b.MaxY != 40 {
		t.Errorf("bounds = %+v", b)
	}
	if b.Width() != 15 || b.Height() != 20 {
		t.Errorf("width/height = %v/%v", b.Width(), b.Height())
	}

	p := b.Pad(0.1, 0)
	if p.MinX != -7 || p.MaxX != 12 || p.MinY != 18 || p.MaxY != 42 {
		t.Errorf("padded = %+v", p)
	}
}

func TestBoundsPadDegenerate(t *testing.T) {
	var b Bounds
	b.Extend(100, 100)

	p := b.Pad(0.05, 250)
	if p.Width() != 500 || p.Height() != 500 {
		t.Errorf("degenerate pad = %+v", p)
	}

	var empty Bounds
	if !empty.Pad(0.1, 10).Empty() {
		t.Error("padding an empty extent should stay empty")
	}
}
