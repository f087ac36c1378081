package pulse

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-beam/dsp/core"
)

// Errors returned by pulse functions.
var (
	ErrInvalidBandwidth  = errors.New("pulse: bandwidth must be positive")
	ErrInvalidPulseWidth = errors.New("pulse: pulse width must be positive")
	ErrInvalidSampleRate = errors.New("pulse: sample rate must be positive")
	ErrUndersampled      = errors.New("pulse: sample rate must be at least the bandwidth")
	ErrTargetMismatch    = errors.New("pulse: delay and amplitude counts differ")
	ErrInvalidDelay      = errors.New("pulse: delay must be non-negative")
	ErrEmptyReceived     = errors.New("pulse: received signal is empty")
)

// LFM describes a linear frequency modulated (chirp) pulse at complex
// baseband, swept from zero to BandwidthHz over the pulse width.
//
// A matched filter against the chirp compresses each echo to a mainlobe
// of width roughly 1/BandwidthHz, so long pulses keep their energy while
// recovering the range resolution of a short one.
type LFM struct {
	BandwidthHz  float64 // swept bandwidth in Hz
	PulseWidthS  float64 // pulse duration in seconds
	SampleRateHz float64 // complex sample rate in Hz
}

// Validate checks that the LFM parameters are valid.
func (p *LFM) Validate() error {
	if p.BandwidthHz <= 0 {
		return ErrInvalidBandwidth
	}

	if p.PulseWidthS <= 0 {
		return ErrInvalidPulseWidth
	}

	if p.SampleRateHz <= 0 {
		return ErrInvalidSampleRate
	}

	if p.SampleRateHz < p.BandwidthHz {
		return ErrUndersampled
	}

	return nil
}

// samples returns the number of samples spanned by the pulse.
func (p *LFM) samples() int {
	return int(math.Round(p.PulseWidthS * p.SampleRateHz))
}

// Generate creates the complex baseband chirp.
//
// The instantaneous frequency increases linearly at rate k = B/T:
//
//	f(t) = k*t
//
// Integrating the phase gives:
//
//	x(t) = exp(j*π*k*t²)
//
// Every sample has unit magnitude.
func (p *LFM) Generate() ([]complex128, error) {
	err := p.Validate()
	if err != nil {
		return nil, err
	}

	n := p.samples()
	out := make([]complex128, n)

	k := p.BandwidthHz / p.PulseWidthS

	for i := range out {
		t := float64(i) / p.SampleRateHz
		phase := math.Pi * k * t * t
		out[i] = cmplx.Exp(complex(0, phase))
	}

	return out, nil
}

// Echoes synthesizes a received signal containing one delayed, scaled
// copy of the chirp per target. delaysS holds the two-way propagation
// delays in seconds and amplitudes the corresponding echo amplitudes.
//
// The returned signal is long enough to contain the latest echo in full,
// so Compress recovers every target peak.
func (p *LFM) Echoes(delaysS, amplitudes []float64) ([]complex128, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if len(delaysS) != len(amplitudes) {
		return nil, ErrTargetMismatch
	}

	maxDelay := 0
	offsets := make([]int, len(delaysS))

	for i, d := range delaysS {
		if d < 0 {
			return nil, fmt.Errorf("%w: target %d", ErrInvalidDelay, i)
		}

		offsets[i] = int(math.Round(d * p.SampleRateHz))
		if offsets[i] > maxDelay {
			maxDelay = offsets[i]
		}
	}

	chirp, err := p.Generate()
	if err != nil {
		return nil, err
	}

	rx := make([]complex128, maxDelay+len(chirp))
	for i, off := range offsets {
		a := complex(amplitudes[i], 0)
		for j, v := range chirp {
			rx[off+j] += a * v
		}
	}

	return rx, nil
}

// Compress applies the matched filter to a received signal.
//
// The filter cross-correlates the signal with the reference chirp via
// FFT: both are zero-padded, the received spectrum is multiplied by the
// conjugate reference spectrum, and the product is transformed back.
// Lag zero lands at index zero, so an echo delayed by d samples peaks at
// output index d. The output is scaled by the pulse length, so a unit
// amplitude echo compresses to a unit magnitude peak.
func (p *LFM) Compress(received []complex128) ([]complex128, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if len(received) == 0 {
		return nil, ErrEmptyReceived
	}

	chirp, err := p.Generate()
	if err != nil {
		return nil, err
	}

	n := len(received) + len(chirp) - 1
	fftSize := nextPowerOf2(n)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("pulse: failed to create FFT plan: %w", err)
	}

	rxPadded := make([]complex128, fftSize)
	copy(rxPadded, received)

	rxFreq := make([]complex128, fftSize)
	if err := plan.Forward(rxFreq, rxPadded); err != nil {
		return nil, fmt.Errorf("pulse: forward FFT failed: %w", err)
	}

	refPadded := make([]complex128, fftSize)
	copy(refPadded, chirp)

	refFreq := make([]complex128, fftSize)
	if err := plan.Forward(refFreq, refPadded); err != nil {
		return nil, fmt.Errorf("pulse: forward FFT failed: %w", err)
	}

	// Conjugate multiplication implements correlation rather than
	// convolution, keeping lag zero at index zero.
	resultFreq := make([]complex128, fftSize)
	for i := range resultFreq {
		resultFreq[i] = rxFreq[i] * cmplx.Conj(refFreq[i])
	}

	resultTime := make([]complex128, fftSize)
	if err := plan.Inverse(resultTime, resultFreq); err != nil {
		return nil, fmt.Errorf("pulse: inverse FFT failed: %w", err)
	}

	scale := complex(1/float64(len(chirp)), 0)

	result := make([]complex128, len(received))
	for i := range result {
		result[i] = resultTime[i] * scale
	}

	return result, nil
}

// RangeResolution returns the range resolution in meters, c/(2*B).
func (p *LFM) RangeResolution() (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}

	return core.SpeedOfLight / (2 * p.BandwidthHz), nil
}

// CompressionGain returns the matched filter gain in dB over an
// uncompressed pulse of the same energy, 10*log10(B*T).
func (p *LFM) CompressionGain() (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}

	return core.LinearPowerToDB(p.BandwidthHz * p.PulseWidthS), nil
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p *= 2
	}

	return p
}
