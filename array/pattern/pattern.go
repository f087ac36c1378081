package pattern

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-beam/array/geometry"
	"github.com/cwbudde/algo-beam/array/steer"
	"github.com/cwbudde/algo-beam/array/taper"
	"github.com/cwbudde/algo-beam/dsp/core"
)

// Errors returned by the pattern engine.
var (
	ErrInvalidSweep     = errors.New("pattern: invalid angle sweep")
	ErrShapeMismatch    = errors.New("pattern: weights do not match geometry")
	ErrSteeringMismatch = errors.New("pattern: steering phase does not match geometry")
)

// Mode selects the dB reference of the computed pattern.
type Mode int

const (
	// ModePeakNormalized forces the discovered peak to 0 dB.
	ModePeakNormalized Mode = iota

	// ModeDirectivity references gain to the element count, so the ideal
	// uniform array peaks near 10*log10(N*M) dBi.
	ModeDirectivity
)

// Sweep describes an inclusive polar-angle sweep in degrees.
type Sweep struct {
	StartDeg float64
	StopDeg  float64
	StepDeg  float64
}

// Validate checks the sweep bounds and step.
func (s Sweep) Validate() error {
	if s.StepDeg <= 0 {
		return fmt.Errorf("%w: step must be > 0: %f", ErrInvalidSweep, s.StepDeg)
	}
	if s.StopDeg <= s.StartDeg {
		return fmt.Errorf("%w: stop %f must be > start %f", ErrInvalidSweep, s.StopDeg, s.StartDeg)
	}
	return nil
}

// Angles returns the sweep sample angles, inclusive of the stop angle
// (within half a step of floating slack).
func (s Sweep) Angles() []float64 {
	n := int(math.Floor((s.StopDeg-s.StartDeg)/s.StepDeg+0.5)) + 1
	out := make([]float64, n)
	for i := range out {
		out[i] = s.StartDeg + float64(i)*s.StepDeg
	}
	return out
}

// Pattern is a computed radiation pattern cut. AngleDeg and GainDB have
// equal length; CrossAngleDeg is the fixed azimuth of the cut. Patterns
// are freshly allocated per computation and read-only downstream.
type Pattern struct {
	AngleDeg      []float64
	GainDB        []float64
	CrossAngleDeg float64
}

// Option configures a pattern computation.
type Option func(*config)

type config struct {
	workers int
}

func defaultConfig() config {
	return config{workers: 1}
}

// WithWorkers splits the sweep across up to n goroutines. Values < 1
// select runtime.NumCPU(). The result does not depend on the chunking
// beyond floating-point rounding far below dB display resolution.
func WithWorkers(n int) Option {
	return func(c *config) {
		if n < 1 {
			n = runtime.NumCPU()
		}
		c.workers = n
	}
}

// Compute evaluates the array factor of g under complex weights w and
// the given steering phase, sweeping theta with phi fixed at
// crossAngleDeg.
//
// steeringPhase must be the flattened per-element phase from
// [steer.Phase]; it is subtracted from the observation-direction spatial
// phase. Magnitudes below an epsilon floor are clamped before the log,
// so the result is always finite.
func Compute(g *geometry.Geometry, w *taper.CMatrix, steeringPhase []float64, sweep Sweep, crossAngleDeg float64, mode Mode, opts ...Option) (*Pattern, error) {
	if w.Rows() != g.N() || w.Cols() != g.M() {
		return nil, fmt.Errorf("%w: weights %dx%d, geometry %dx%d",
			ErrShapeMismatch, w.Rows(), w.Cols(), g.N(), g.M())
	}
	return compute(g, w.Data(), nil, steeringPhase, sweep, crossAngleDeg, mode, opts...)
}

// ComputeReal is Compute for real-valued taper weights. The imaginary
// phasor products are skipped entirely.
func ComputeReal(g *geometry.Geometry, w *taper.Matrix, steeringPhase []float64, sweep Sweep, crossAngleDeg float64, mode Mode, opts ...Option) (*Pattern, error) {
	if w.Rows() != g.N() || w.Cols() != g.M() {
		return nil, fmt.Errorf("%w: weights %dx%d, geometry %dx%d",
			ErrShapeMismatch, w.Rows(), w.Cols(), g.N(), g.M())
	}
	return compute(g, nil, w.Data(), steeringPhase, sweep, crossAngleDeg, mode, opts...)
}

func compute(g *geometry.Geometry, wc []complex128, wr []float64, steeringPhase []float64, sweep Sweep, crossAngleDeg float64, mode Mode, opts ...Option) (*Pattern, error) {
	if err := sweep.Validate(); err != nil {
		return nil, err
	}
	if len(steeringPhase) != g.Len() {
		return nil, fmt.Errorf("%w: phase len %d, geometry len %d",
			ErrSteeringMismatch, len(steeringPhase), g.Len())
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	angles := sweep.Angles()
	numAngles := len(angles)

	// Per-element spatial frequencies k*x, k*y, k*z. The per-angle phase
	// is then the outer product of the direction cosines with these.
	k := 2 * math.Pi / g.Wavelength()
	kx := scaled(g.X(), k)
	ky := scaled(g.Y(), k)
	kz := scaled(g.Z(), k)

	// Split complex weights once; afRe/afIm hold the per-angle sums so a
	// single vectorized magnitude pass finishes the sweep.
	wre, wim := splitWeights(wc, wr)
	afRe := make([]float64, numAngles)
	afIm := make([]float64, numAngles)

	workers := cfg.workers
	if workers > numAngles {
		workers = numAngles
	}

	if workers <= 1 {
		sumChunk(angles, 0, numAngles, crossAngleDeg, kx, ky, kz, steeringPhase, wre, wim, afRe, afIm)
	} else {
		var wg sync.WaitGroup
		chunk := (numAngles + workers - 1) / workers
		for start := 0; start < numAngles; start += chunk {
			end := start + chunk
			if end > numAngles {
				end = numAngles
			}
			wg.Add(1)
			go func(lo, hi int) {
				defer wg.Done()
				sumChunk(angles, lo, hi, crossAngleDeg, kx, ky, kz, steeringPhase, wre, wim, afRe, afIm)
			}(start, end)
		}
		wg.Wait()
	}

	af := make([]float64, numAngles)
	vecmath.Magnitude(af, afRe, afIm)

	gain := make([]float64, numAngles)
	switch mode {
	case ModeDirectivity:
		ref := 10 * math.Log10(float64(g.Len()))
		for i, v := range af {
			gain[i] = core.LinearToDBFloored(v) - ref
		}
	default: // ModePeakNormalized
		peak := 0.0
		for _, v := range af {
			if v > peak {
				peak = v
			}
		}
		refDB := core.LinearToDBFloored(peak)
		for i, v := range af {
			gain[i] = core.LinearToDBFloored(v) - refDB
		}
	}

	return &Pattern{
		AngleDeg:      angles,
		GainDB:        gain,
		CrossAngleDeg: crossAngleDeg,
	}, nil
}

// sumChunk accumulates the complex array-factor sums for angle indices
// [lo, hi). Each chunk touches disjoint output indices, so chunks run
// concurrently without locking.
func sumChunk(angles []float64, lo, hi int, crossAngleDeg float64, kx, ky, kz, steeringPhase, wre, wim, afRe, afIm []float64) {
	for i := lo; i < hi; i++ {
		u, v, w := steer.UnitVector(steer.Direction{Theta: angles[i], Phi: crossAngleDeg})

		sumRe := 0.0
		sumIm := 0.0
		if wim == nil {
			for e := range kx {
				phase := u*kx[e] + v*ky[e] + w*kz[e] - steeringPhase[e]
				s, c := math.Sincos(phase)
				sumRe += wre[e] * c
				sumIm += wre[e] * s
			}
		} else {
			for e := range kx {
				phase := u*kx[e] + v*ky[e] + w*kz[e] - steeringPhase[e]
				s, c := math.Sincos(phase)
				sumRe += wre[e]*c - wim[e]*s
				sumIm += wre[e]*s + wim[e]*c
			}
		}

		afRe[i] = sumRe
		afIm[i] = sumIm
	}
}

func scaled(src []float64, scale float64) []float64 {
	out := make([]float64, len(src))
	for i, v := range src {
		out[i] = v * scale
	}
	return out
}

// splitWeights returns the real and imaginary weight parts. For real
// weights the imaginary slice is nil, which selects the cheaper inner
// loop.
func splitWeights(wc []complex128, wr []float64) (re, im []float64) {
	if wc == nil {
		return wr, nil
	}

	re = make([]float64, len(wc))
	im = make([]float64, len(wc))
	allReal := true
	for i, v := range wc {
		re[i] = real(v)
		im[i] = imag(v)
		if imag(v) != 0 {
			allReal = false
		}
	}
	if allReal {
		return re, nil
	}
	return re, im
}

// PeakMagnitude returns the maximum |AF| of g under complex weights w
// steered by steeringPhase, evaluated exactly at the given direction.
// The uniform broadside array yields N*M.
func PeakMagnitude(g *geometry.Geometry, w *taper.CMatrix, steeringPhase []float64, d steer.Direction) float64 {
	u, v, ww := steer.UnitVector(d)
	k := 2 * math.Pi / g.Wavelength()

	x, y, z := g.X(), g.Y(), g.Z()
	data := w.Data()

	sumRe := 0.0
	sumIm := 0.0
	for e := range data {
		phase := k*(u*x[e]+v*y[e]+ww*z[e]) - steeringPhase[e]
		s, c := math.Sincos(phase)
		sumRe += real(data[e])*c - imag(data[e])*s
		sumIm += real(data[e])*s + imag(data[e])*c
	}
	return math.Hypot(sumRe, sumIm)
}
