// Package impair injects hardware error models into element weight
// matrices: per-element amplitude error, phase error, and random element
// failure.
//
// Randomness is always drawn from an explicit, seedable generator so
// impairment runs are reproducible.
package impair

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-beam/array/taper"
)

// Errors returned by Apply.
var (
	ErrInvalidFailureRate = errors.New("impair: failure rate must be in [0, 1]")
	ErrInvalidErrorStd    = errors.New("impair: error standard deviation must be >= 0")
)

// Config describes the impairment magnitudes. Each field is individually
// optional: a zero value disables that error dimension.
type Config struct {
	AmpErrorDB    float64 // amplitude error standard deviation in dB
	PhaseErrorDeg float64 // phase error standard deviation in degrees
	FailureRate   float64 // element dropout probability in [0, 1]
}

// Validate checks the configuration ranges.
func (c Config) Validate() error {
	if c.AmpErrorDB < 0 {
		return fmt.Errorf("%w: amplitude error %f dB", ErrInvalidErrorStd, c.AmpErrorDB)
	}
	if c.PhaseErrorDeg < 0 {
		return fmt.Errorf("%w: phase error %f deg", ErrInvalidErrorStd, c.PhaseErrorDeg)
	}
	if c.FailureRate < 0 || c.FailureRate > 1 {
		return fmt.Errorf("%w: got %f", ErrInvalidFailureRate, c.FailureRate)
	}
	return nil
}

// Option configures the random source.
type Option func(*settings)

type settings struct {
	rng *rand.Rand
}

// WithSeed seeds a fresh generator for this application.
func WithSeed(seed int64) Option {
	return func(s *settings) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand uses the supplied generator, for callers threading one
// generator through a larger simulation.
func WithRand(rng *rand.Rand) Option {
	return func(s *settings) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// Apply returns a new weight matrix with impairments drawn per element:
// amplitude multiplier 10^(N(0, sigma_a)/20), phase rotation
// exp(j*N(0, sigma_p)*pi/180), and Bernoulli dropout to zero with
// probability FailureRate. The input matrix is never modified.
//
// An all-zero Config returns an exact copy; FailureRate 1 returns an
// all-zero matrix.
func Apply(w *taper.CMatrix, cfg Config, opts ...Option) (*taper.CMatrix, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := settings{rng: rand.New(rand.NewSource(1))}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}

	out := w.Clone()
	data := out.Data()

	for i := range data {
		if cfg.FailureRate > 0 && s.rng.Float64() < cfg.FailureRate {
			data[i] = 0
			continue
		}

		if cfg.AmpErrorDB > 0 {
			amp := math.Pow(10, s.rng.NormFloat64()*cfg.AmpErrorDB/20)
			data[i] *= complex(amp, 0)
		}

		if cfg.PhaseErrorDeg > 0 {
			phase := s.rng.NormFloat64() * cfg.PhaseErrorDeg * math.Pi / 180
			sin, cos := math.Sincos(phase)
			data[i] *= complex(cos, sin)
		}
	}

	return out, nil
}

// ApplyReal is Apply for real taper weights. Phase error makes the
// result complex, so the output is always a CMatrix.
func ApplyReal(w *taper.Matrix, cfg Config, opts ...Option) (*taper.CMatrix, error) {
	return Apply(taper.FromReal(w), cfg, opts...)
}
