package geometry

import (
	"errors"
	"math"
	"testing"
)

func TestBuildCentered(t *testing.T) {
	g, err := Build(4, 4, 0.5, 1.0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if g.Len() != 16 {
		t.Fatalf("Len = %d, want 16", g.Len())
	}

	// Centered grid: coordinates sum to zero on both axes.
	sumX, sumY := 0.0, 0.0
	for i := range g.X() {
		sumX += g.X()[i]
		sumY += g.Y()[i]
	}
	if math.Abs(sumX) > 1e-12 || math.Abs(sumY) > 1e-12 {
		t.Fatalf("grid not centered: sumX=%v sumY=%v", sumX, sumY)
	}

	// First element of a 4x4 at d=0.5, lambda=1 sits at (-0.75, -0.75).
	x, y, z := g.At(0, 0)
	if math.Abs(x+0.75) > 1e-12 || math.Abs(y+0.75) > 1e-12 || z != 0 {
		t.Fatalf("At(0,0) = (%v, %v, %v), want (-0.75, -0.75, 0)", x, y, z)
	}
}

func TestBuildUniformSpacing(t *testing.T) {
	g, err := Build(8, 3, 0.7, 0.03)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	d := 0.7 * 0.03
	for i := 1; i < g.N(); i++ {
		x0, _, _ := g.At(i-1, 0)
		x1, _, _ := g.At(i, 0)
		if math.Abs(x1-x0-d) > 1e-15 {
			t.Fatalf("x spacing at row %d: %v, want %v", i, x1-x0, d)
		}
	}
	for j := 1; j < g.M(); j++ {
		_, y0, _ := g.At(0, j-1)
		_, y1, _ := g.At(0, j)
		if math.Abs(y1-y0-d) > 1e-15 {
			t.Fatalf("y spacing at col %d: %v, want %v", j, y1-y0, d)
		}
	}
}

func TestBuildSingleElement(t *testing.T) {
	g, err := Build(1, 1, 0.5, 1.0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	x, y, z := g.At(0, 0)
	if x != 0 || y != 0 || z != 0 {
		t.Fatalf("single element not at origin: (%v, %v, %v)", x, y, z)
	}
}

func TestBuildInvalid(t *testing.T) {
	cases := []struct {
		name       string
		n, m       int
		d, wavelen float64
	}{
		{"zero N", 0, 4, 0.5, 1},
		{"zero M", 4, 0, 0.5, 1},
		{"negative spacing", 4, 4, -0.5, 1},
		{"zero spacing", 4, 4, 0, 1},
		{"zero wavelength", 4, 4, 0.5, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Build(c.n, c.m, c.d, c.wavelen)
			if !errors.Is(err, ErrInvalidGeometry) {
				t.Fatalf("err = %v, want ErrInvalidGeometry", err)
			}
		})
	}
}
