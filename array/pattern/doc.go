// Package pattern computes planar-array radiation patterns.
//
// The engine sweeps the polar angle with the azimuth held at a fixed
// cross-cut angle, sums the weighted per-element phasors for every sweep
// sample, and converts the array-factor magnitude to dB in one of two
// reference modes:
//
//   - ModeDirectivity: 20*log10|AF| - 10*log10(N*M), so an ideal uniform
//     array peaks near 10*log10(N*M) dBi. Use this for absolute gain
//     metrics such as scan loss.
//   - ModePeakNormalized: the discovered peak is forced to 0 dB. Use this
//     for relative shape work (beamwidth, sidelobe search) and for
//     overlaying cross cuts.
//
// # Usage
//
//	g, _ := geometry.Build(8, 8, 0.5, 1)
//	w, _ := taper.Weights(taper.KindChebyshev, 8, 8, taper.WithSidelobeLevel(-30))
//	ph := steer.Phase(steer.Direction{Theta: 20}, g)
//	p, _ := pattern.ComputeReal(g, w, ph,
//	    pattern.Sweep{StartDeg: -90, StopDeg: 90, StepDeg: 0.25},
//	    0, pattern.ModePeakNormalized)
//
// Repeated evaluation with identical parameters is common in interactive
// sweeps; wrap calls in a [Cache] keyed by a [Request] to memoize.
package pattern
