// Package beam extracts figures of merit from computed radiation
// patterns: peak location, beamwidths at configurable levels, sidelobe
// and null tables, and scan loss.
package beam

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-beam/array/pattern"
	"github.com/cwbudde/algo-beam/dsp/core"
)

// Errors returned by Analyze.
var (
	ErrEmptyPattern   = errors.New("beam: pattern is empty")
	ErrLengthMismatch = errors.New("beam: angle and gain lengths differ")
)

// Sidelobe is one detected sidelobe, strongest first in Metrics.
type Sidelobe struct {
	AngleDeg   float64
	LevelDB    float64 // absolute level in the pattern's reference
	RelativeDB float64 // level relative to the main-lobe peak (negative)
}

// Null is one detected pattern null.
type Null struct {
	AngleDeg float64
	DepthDB  float64 // depth below the nearest local maximum (positive)
}

// Metrics holds the scalar figures of merit of one pattern cut.
type Metrics struct {
	PeakAngleDeg float64
	PeakGainDB   float64

	// BeamwidthDeg is the half-power (-3 dB) beamwidth.
	BeamwidthDeg float64

	// FirstNullBeamwidthDeg spans the first null pair bracketing the main
	// lobe; 0 when either side has no null in range.
	FirstNullBeamwidthDeg float64

	// LevelBeamwidths holds beamwidths for the extra levels requested via
	// WithLevels, keyed by level in dB below the peak.
	LevelBeamwidths map[float64]float64

	Sidelobes []Sidelobe
	Nulls     []Null
}

// Option configures Analyze.
type Option func(*config)

type config struct {
	levels       []float64
	topSidelobes int
	nullDepthDB  float64
	exclusionDeg float64
}

func defaultConfig() config {
	return config{
		topSidelobes: 5,
		nullDepthDB:  10,
	}
}

// WithLevels requests additional beamwidths at the given levels in dB
// below the peak (e.g. 6, 10). Non-positive levels are ignored.
func WithLevels(levels ...float64) Option {
	return func(c *config) {
		for _, l := range levels {
			if l > 0 {
				c.levels = append(c.levels, l)
			}
		}
	}
}

// WithTopSidelobes caps the reported sidelobe table at k entries.
func WithTopSidelobes(k int) Option {
	return func(c *config) {
		if k >= 0 {
			c.topSidelobes = k
		}
	}
}

// WithNullDepth sets the minimum depth in dB below the nearest local
// maximum for a local minimum to count as a null. Default 10 dB, which
// excludes shallow ripples.
func WithNullDepth(db float64) Option {
	return func(c *config) {
		if db >= 0 {
			c.nullDepthDB = db
		}
	}
}

// WithMainlobeExclusion excludes local maxima within the given angular
// window around the peak from the sidelobe table. Default 0: only the
// peak sample itself is excluded, so the first sidelobe is reported.
func WithMainlobeExclusion(deg float64) Option {
	return func(c *config) {
		if deg >= 0 {
			c.exclusionDeg = deg
		}
	}
}

// Analyze computes the metrics of one pattern cut. The pattern is read
// only; boundary-clamped beamwidths and empty sidelobe or null tables
// are valid results, not errors.
func Analyze(p *pattern.Pattern, opts ...Option) (Metrics, error) {
	if p == nil || len(p.GainDB) == 0 {
		return Metrics{}, ErrEmptyPattern
	}
	if len(p.AngleDeg) != len(p.GainDB) {
		return Metrics{}, fmt.Errorf("%w: %d angles, %d gains",
			ErrLengthMismatch, len(p.AngleDeg), len(p.GainDB))
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	gain := p.GainDB
	angle := p.AngleDeg

	// Peak: argmax, first occurrence wins ties.
	peakIdx := 0
	for i, v := range gain {
		if v > gain[peakIdx] {
			peakIdx = i
		}
	}

	m := Metrics{
		PeakAngleDeg: angle[peakIdx],
		PeakGainDB:   gain[peakIdx],
		BeamwidthDeg: beamwidthAt(angle, gain, peakIdx, 3),
	}

	if len(cfg.levels) > 0 {
		m.LevelBeamwidths = make(map[float64]float64, len(cfg.levels))
		for _, l := range cfg.levels {
			m.LevelBeamwidths[l] = beamwidthAt(angle, gain, peakIdx, l)
		}
	}

	maxima := localMaxima(gain, peakIdx)
	m.Sidelobes = sidelobes(angle, gain, peakIdx, maxima, cfg)
	m.Nulls = nulls(angle, gain, peakIdx, maxima, cfg.nullDepthDB)
	m.FirstNullBeamwidthDeg = firstNullWidth(angle, peakIdx, m.Nulls)

	return m, nil
}

// beamwidthAt walks outward from the peak while the gain stays within
// level dB of the peak. If the pattern never drops below the level on
// one side, that side clamps to the sweep boundary.
func beamwidthAt(angle, gain []float64, peakIdx int, level float64) float64 {
	threshold := gain[peakIdx] - level

	left := peakIdx
	for left > 0 && gain[left-1] >= threshold {
		left--
	}
	right := peakIdx
	for right < len(gain)-1 && gain[right+1] >= threshold {
		right++
	}

	return angle[right] - angle[left]
}

// localMaxima returns the indices of strict local maxima, excluding the
// peak itself.
func localMaxima(gain []float64, peakIdx int) []int {
	var out []int
	for i := 1; i < len(gain)-1; i++ {
		if i == peakIdx {
			continue
		}
		if gain[i] > gain[i-1] && gain[i] > gain[i+1] {
			out = append(out, i)
		}
	}
	return out
}

func sidelobes(angle, gain []float64, peakIdx int, maxima []int, cfg config) []Sidelobe {
	var out []Sidelobe
	for _, i := range maxima {
		if math.Abs(angle[i]-angle[peakIdx]) <= cfg.exclusionDeg {
			continue
		}
		out = append(out, Sidelobe{
			AngleDeg:   angle[i],
			LevelDB:    gain[i],
			RelativeDB: gain[i] - gain[peakIdx],
		})
	}

	sort.Slice(out, func(a, b int) bool { return out[a].LevelDB > out[b].LevelDB })

	if len(out) > cfg.topSidelobes {
		out = out[:cfg.topSidelobes]
	}
	return out
}

func nulls(angle, gain []float64, peakIdx int, maxima []int, minDepthDB float64) []Null {
	// Reference levels for depth measurement include the main lobe.
	refs := append([]int{peakIdx}, maxima...)

	var out []Null
	for i := 1; i < len(gain)-1; i++ {
		if !(gain[i] < gain[i-1] && gain[i] < gain[i+1]) {
			continue
		}

		// Depth against the nearest local maximum in angle.
		nearest := refs[0]
		for _, r := range refs[1:] {
			if math.Abs(angle[r]-angle[i]) < math.Abs(angle[nearest]-angle[i]) {
				nearest = r
			}
		}

		depth := gain[nearest] - gain[i]
		if depth >= minDepthDB {
			out = append(out, Null{AngleDeg: angle[i], DepthDB: depth})
		}
	}
	return out
}

func firstNullWidth(angle []float64, peakIdx int, nulls []Null) float64 {
	peakAngle := angle[peakIdx]

	left := math.Inf(-1)
	right := math.Inf(1)
	for _, n := range nulls {
		if n.AngleDeg < peakAngle && n.AngleDeg > left {
			left = n.AngleDeg
		}
		if n.AngleDeg > peakAngle && n.AngleDeg < right {
			right = n.AngleDeg
		}
	}

	if math.IsInf(left, -1) || math.IsInf(right, 1) {
		return 0
	}
	return right - left
}

// scanLossFloor bounds the cosine before the log, limiting the reported
// loss to about -40 dB near endfire.
const scanLossFloor = 0.01

// ScanLoss returns the scan loss in dB for a beam steered thetaDeg off
// broadside: 20*log10(max(cos(theta), 0.01)), clamped to <= 0. Exactly 0
// at broadside, non-positive and non-increasing in |theta|.
func ScanLoss(thetaDeg float64) float64 {
	c := math.Cos(core.Radians(thetaDeg))
	if c < scanLossFloor {
		c = scanLossFloor
	}

	loss := 20 * math.Log10(c)
	if loss > 0 {
		loss = 0
	}
	return loss
}
