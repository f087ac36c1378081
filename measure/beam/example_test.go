package beam_test

import (
	"fmt"

	"github.com/cwbudde/algo-beam/array/geometry"
	"github.com/cwbudde/algo-beam/array/pattern"
	"github.com/cwbudde/algo-beam/array/steer"
	"github.com/cwbudde/algo-beam/array/taper"
	"github.com/cwbudde/algo-beam/measure/beam"
)

func ExampleAnalyze() {
	g, _ := geometry.Build(8, 8, 0.5, 1)
	w, _ := taper.Weights(taper.KindUniform, 8, 8)
	ph := steer.Phase(steer.Direction{}, g)
	p, _ := pattern.ComputeReal(g, w, ph,
		pattern.Sweep{StartDeg: -90, StopDeg: 90, StepDeg: 0.25},
		0, pattern.ModePeakNormalized)

	m, _ := beam.Analyze(p)
	fmt.Printf("peak %.1f deg, HPBW %.1f deg, first sidelobe %.0f dB\n",
		m.PeakAngleDeg, m.BeamwidthDeg, m.Sidelobes[0].RelativeDB)
	// Output:
	// peak 0.0 deg, HPBW 12.5 deg, first sidelobe -13 dB
}

func ExampleScanLoss() {
	fmt.Printf("%.1f %.1f\n", beam.ScanLoss(0), beam.ScanLoss(60))
	// Output:
	// 0.0 -6.0
}
