package steer

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-beam/array/geometry"
)

func TestUnitVectorBroadside(t *testing.T) {
	u, v, w := UnitVector(Direction{})
	if math.Abs(u) > 1e-15 || math.Abs(v) > 1e-15 || math.Abs(w-1) > 1e-15 {
		t.Fatalf("broadside unit vector = (%v, %v, %v), want (0, 0, 1)", u, v, w)
	}
}

func TestUnitVectorIsUnit(t *testing.T) {
	dirs := []Direction{
		{Theta: 30, Phi: 0},
		{Theta: 45, Phi: 90},
		{Theta: 60, Phi: -135},
		{Theta: 89, Phi: 270},
	}
	for _, d := range dirs {
		u, v, w := UnitVector(d)
		norm := math.Sqrt(u*u + v*v + w*w)
		if math.Abs(norm-1) > 1e-12 {
			t.Fatalf("|%+v| = %v, want 1", d, norm)
		}
	}
}

func TestPhaseBroadsideIsZero(t *testing.T) {
	g, err := geometry.Build(4, 4, 0.5, 1)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// At broadside only the w*z term survives, and z = 0 on a planar array.
	ph := Phase(Direction{}, g)
	for i, v := range ph {
		if math.Abs(v) > 1e-12 {
			t.Fatalf("phase[%d] = %v, want 0", i, v)
		}
	}
}

func TestPhaseLinearGradient(t *testing.T) {
	g, err := geometry.Build(8, 1, 0.5, 1)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	d := Direction{Theta: 30, Phi: 0}
	ph := Phase(d, g)

	// d = 0.5 lambda, u = sin(30 deg) = 0.5: adjacent elements differ by
	// k*u*d = 2*pi * 0.5 * 0.5 = pi/2.
	want := math.Pi / 2
	for i := 1; i < len(ph); i++ {
		if math.Abs(ph[i]-ph[i-1]-want) > 1e-12 {
			t.Fatalf("gradient at %d: %v, want %v", i, ph[i]-ph[i-1], want)
		}
	}
}

func TestScanAngle(t *testing.T) {
	if s := ScanAngle(Direction{}); math.Abs(s) > 1e-12 {
		t.Fatalf("ScanAngle(broadside) = %v, want 0", s)
	}
	if s := ScanAngle(Direction{Theta: 45, Phi: 123}); math.Abs(s-45) > 1e-10 {
		t.Fatalf("ScanAngle(45) = %v, want 45", s)
	}
	if s := ScanAngle(Direction{Theta: -30, Phi: 0}); math.Abs(s-30) > 1e-10 {
		t.Fatalf("ScanAngle(-30) = %v, want 30", s)
	}
}
