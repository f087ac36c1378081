// Package taper provides amplitude weighting (tapering) for planar
// phased arrays.
//
// All supported tapers are separable: a 1-D coefficient vector is
// generated per axis and the 2-D element weight is the outer product
// w(i, j) = wx(i) * wy(j).
//
// Chebyshev and Taylor use closed-form sidelobe-controlled
// approximations, not the exact Dolph-Chebyshev or Taylor-Kaiser
// syntheses. They preserve the property that a more negative sidelobe
// target never raises the measured peak sidelobe, which is what the
// analysis layer relies on; the exact syntheses could be substituted
// behind the same Kind values.
package taper

import (
	"math"
	"strings"
)

// Kind identifies a taper function.
type Kind int

const (
	KindUniform Kind = iota
	KindChebyshev
	KindTaylor
	KindHamming
	KindHanning
	KindBlackman
)

var kindNames = map[Kind]string{
	KindUniform:   "Uniform",
	KindChebyshev: "Chebyshev",
	KindTaylor:    "Taylor",
	KindHamming:   "Hamming",
	KindHanning:   "Hanning",
	KindBlackman:  "Blackman",
}

// String returns the canonical taper name.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Uniform"
}

// KindFromName resolves a taper name as supplied by a configuration
// layer. Unknown names resolve to KindUniform; selection never fails.
func KindFromName(name string) Kind {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "uniform", "rectangular", "":
		return KindUniform
	case "chebyshev", "dolph-chebyshev":
		return KindChebyshev
	case "taylor":
		return KindTaylor
	case "hamming":
		return KindHamming
	case "hanning", "hann":
		return KindHanning
	case "blackman":
		return KindBlackman
	default:
		return KindUniform
	}
}

// DefaultSidelobeDB is the sidelobe target applied to Chebyshev and
// Taylor tapers when no option overrides it.
const DefaultSidelobeDB = -30.0

// Option configures taper generation.
type Option func(*config)

type config struct {
	sidelobeDB float64
}

func defaultConfig() config {
	return config{sidelobeDB: DefaultSidelobeDB}
}

// WithSidelobeLevel sets the target sidelobe level in dB (negative) for
// the sidelobe-controlled tapers. Non-negative values are ignored.
func WithSidelobeLevel(db float64) Option {
	return func(c *config) {
		if db < 0 {
			c.sidelobeDB = db
		}
	}
}

// Coefficients returns the 1-D axis taper of the given length.
// Length <= 0 yields nil. Unknown kinds yield the uniform taper.
func Coefficients(k Kind, n int, opts ...Option) []float64 {
	if n <= 0 {
		return nil
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, n)

	switch k {
	case KindChebyshev:
		chebyshevInto(out, cfg.sidelobeDB)
	case KindTaylor:
		taylorInto(out, cfg.sidelobeDB)
	case KindHamming:
		cosineInto(out, hammingCoeffs)
	case KindHanning:
		cosineInto(out, hanningCoeffs)
	case KindBlackman:
		cosineInto(out, blackmanCoeffs)
	default:
		for i := range out {
			out[i] = 1
		}
	}

	return out
}

var (
	hammingCoeffs  = []float64{0.54, -0.46}
	hanningCoeffs  = []float64{0.5, -0.5}
	blackmanCoeffs = []float64{0.42, -0.5, 0.08}
)

// cosineInto fills out with a raised-cosine sum over [0, n-1],
// symmetric form: w(i) = sum_k c_k * cos(k * 2*pi * i/(n-1)).
func cosineInto(out []float64, coeffs []float64) {
	n := len(out)
	for i := range out {
		x := samplePosition(i, n)
		sum := 0.0
		for k, c := range coeffs {
			sum += c * math.Cos(float64(k)*2*math.Pi*x)
		}
		out[i] = sum
	}
}

func samplePosition(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}

// chebyshevInto fills out with the closed-form sidelobe-controlled taper
//
//	w(i) = R + (1-R) * cos(pi*(2i - n + 1) / (2n)),  R = 10^(sidelobeDB/20)
//
// normalized by its own maximum. Lower (more negative) sidelobe targets
// shrink the pedestal R and deepen the edge taper.
func chebyshevInto(out []float64, sidelobeDB float64) {
	n := len(out)
	r := math.Pow(10, sidelobeDB/20)

	for i := range out {
		arg := math.Pi * (2*float64(i) - float64(n) + 1) / (2 * float64(n))
		out[i] = r + (1-r)*math.Cos(arg)
	}

	normalizeByMax(out)
}

// taylorInto fills out with a cosine-squared-on-pedestal taper using the
// same pedestal R as the Chebyshev form. The squared cosine trades a
// wider main lobe for a faster sidelobe falloff.
func taylorInto(out []float64, sidelobeDB float64) {
	n := len(out)
	r := math.Pow(10, sidelobeDB/20)

	for i := range out {
		arg := math.Pi * (2*float64(i) - float64(n) + 1) / (2 * float64(n))
		c := math.Cos(arg)
		out[i] = r + (1-r)*c*c
	}

	normalizeByMax(out)
}

func normalizeByMax(out []float64) {
	max := 0.0
	for _, v := range out {
		if a := math.Abs(v); a > max {
			max = a
		}
	}
	if max == 0 {
		return
	}
	for i := range out {
		out[i] /= max
	}
}

// Weights returns the separable n x m weight matrix for the taper kind.
func Weights(k Kind, n, m int, opts ...Option) (*Matrix, error) {
	if n < 1 || m < 1 {
		return nil, errInvalidSize(n, m)
	}

	wx := Coefficients(k, n, opts...)
	wy := Coefficients(k, m, opts...)

	w := NewMatrix(n, m)
	for i := 0; i < n; i++ {
		row := w.data[i*m : (i+1)*m]
		for j, v := range wy {
			row[j] = wx[i] * v
		}
	}

	return w, nil
}
