package pattern_test

import (
	"fmt"

	"github.com/cwbudde/algo-beam/array/geometry"
	"github.com/cwbudde/algo-beam/array/pattern"
	"github.com/cwbudde/algo-beam/array/steer"
	"github.com/cwbudde/algo-beam/array/taper"
)

func ExampleComputeReal() {
	g, _ := geometry.Build(8, 8, 0.5, 1)
	w, _ := taper.Weights(taper.KindUniform, 8, 8)
	ph := steer.Phase(steer.Direction{}, g)

	p, _ := pattern.ComputeReal(g, w, ph,
		pattern.Sweep{StartDeg: -90, StopDeg: 90, StepDeg: 0.5},
		0, pattern.ModePeakNormalized)

	// The broadside sample sits at the centre of the sweep.
	fmt.Printf("%.1f deg: %.2f dB\n", p.AngleDeg[180], p.GainDB[180])
	// Output:
	// 0.0 deg: 0.00 dB
}

func ExampleCache() {
	g, _ := geometry.Build(4, 4, 0.5, 1)
	w, _ := taper.Weights(taper.KindUniform, 4, 4)
	ph := steer.Phase(steer.Direction{}, g)

	cache := pattern.NewCache()
	req := pattern.Request{
		N: 4, M: 4, Spacing: 0.5, Wavelength: 1,
		Taper: taper.KindUniform,
		Sweep: pattern.Sweep{StartDeg: -90, StopDeg: 90, StepDeg: 1},
		Mode:  pattern.ModePeakNormalized,
	}

	compute := func() (*pattern.Pattern, error) {
		fmt.Println("computing")
		return pattern.ComputeReal(g, w, ph, req.Sweep, 0, req.Mode)
	}

	_, _ = cache.GetOrCompute(req, compute)
	_, _ = cache.GetOrCompute(req, compute) // served from cache
	fmt.Println("entries:", cache.Len())
	// Output:
	// computing
	// entries: 1
}
