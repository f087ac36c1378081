// Package mvdr computes adaptive (Capon / minimum variance
// distortionless response) beamforming weights for planar arrays.
//
// The returned weights already encode the steering toward the desired
// direction: evaluate them in the pattern engine with a zero steering
// phase. With no interferers the weights degenerate to the conventional
// steered, unity-gain weighting.
package mvdr

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-beam/array/geometry"
	"github.com/cwbudde/algo-beam/array/steer"
	"github.com/cwbudde/algo-beam/array/taper"
	"github.com/cwbudde/algo-beam/dsp/core"
)

// ErrSingularCovariance is returned when the loaded covariance matrix
// cannot be inverted. With the default diagonal loading this indicates a
// genuine numerical failure and is surfaced, never masked.
var ErrSingularCovariance = errors.New("mvdr: covariance matrix is singular")

// DefaultLoading is the diagonal loading added to the covariance matrix
// before inversion.
const DefaultLoading = 1e-3

// Interferer is one directional interference source.
type Interferer struct {
	Direction steer.Direction
	PowerDBm  float64 // linear power 10^(PowerDBm/10) relative to thermal noise
}

// Option configures the weight computation.
type Option func(*config)

type config struct {
	loading float64
}

// WithDiagonalLoading overrides the diagonal loading term. Negative
// values are ignored. Loading zero disables regularization, which can
// make the solve fail for near-noiseless covariances.
func WithDiagonalLoading(eps float64) Option {
	return func(c *config) {
		if eps >= 0 {
			c.loading = eps
		}
	}
}

// Weights returns the MVDR weight matrix for the desired direction given
// zero or more interferers and the operating SNR:
//
//	R = sigma^2*I + sum_j p_j * a_j * a_j^H,  sigma^2 = 10^(-snrDB/10)
//	w = R^-1 a0 / (a0^H R^-1 a0)
//
// reshaped to the geometry's N x M grid.
func Weights(g *geometry.Geometry, desired steer.Direction, interferers []Interferer, snrDB float64, opts ...Option) (*taper.CMatrix, error) {
	cfg := config{loading: DefaultLoading}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	n := g.Len()
	a0 := steeringVector(g, desired)

	// Interference-plus-noise covariance with diagonal loading.
	r := make([]complex128, n*n)
	sigma2 := core.DBPowerToLinear(-snrDB)
	diag := complex(sigma2+cfg.loading, 0)
	for i := 0; i < n; i++ {
		r[i*n+i] = diag
	}

	for _, intf := range interferers {
		p := core.DBPowerToLinear(intf.PowerDBm)
		aj := steeringVector(g, intf.Direction)
		for i := 0; i < n; i++ {
			scaled := complex(p, 0) * aj[i]
			row := r[i*n : (i+1)*n]
			for k := 0; k < n; k++ {
				row[k] += scaled * cmplxConj(aj[k])
			}
		}
	}

	// w_raw = R^-1 a0.
	wRaw, err := solve(r, a0, n)
	if err != nil {
		return nil, err
	}

	// Distortionless normalization: a0^H R^-1 a0.
	var denom complex128
	for i := 0; i < n; i++ {
		denom += cmplxConj(a0[i]) * wRaw[i]
	}
	if denom == 0 {
		return nil, ErrSingularCovariance
	}

	w := taper.NewCMatrix(g.N(), g.M())
	data := w.Data()
	for i := 0; i < n; i++ {
		data[i] = wRaw[i] / denom
	}
	return w, nil
}

// steeringVector returns a(d) = exp(-j*phi) per element, phi from
// [steer.Phase]. The sign makes the pattern-engine response
// sum(w * exp(+j*phi_obs)) peak at d for w proportional to a(d).
func steeringVector(g *geometry.Geometry, d steer.Direction) []complex128 {
	phase := steer.Phase(d, g)
	out := make([]complex128, len(phase))
	for i, p := range phase {
		s, c := math.Sincos(p)
		out[i] = complex(c, -s)
	}
	return out
}

func cmplxConj(v complex128) complex128 {
	return complex(real(v), -imag(v))
}
