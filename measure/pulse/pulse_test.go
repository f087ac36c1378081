package pulse

import (
	"errors"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-beam/internal/testutil"
)

func testPulse() *LFM {
	return &LFM{
		BandwidthHz:  10e6,
		PulseWidthS:  10e-6,
		SampleRateHz: 20e6,
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		lfm  LFM
		want error
	}{
		{"zero bandwidth", LFM{PulseWidthS: 1e-6, SampleRateHz: 1e6}, ErrInvalidBandwidth},
		{"zero pulse width", LFM{BandwidthHz: 1e6, SampleRateHz: 2e6}, ErrInvalidPulseWidth},
		{"zero sample rate", LFM{BandwidthHz: 1e6, PulseWidthS: 1e-6}, ErrInvalidSampleRate},
		{"undersampled", LFM{BandwidthHz: 10e6, PulseWidthS: 1e-6, SampleRateHz: 5e6}, ErrUndersampled},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if err := c.lfm.Validate(); !errors.Is(err, c.want) {
				t.Fatalf("Validate() = %v, want %v", err, c.want)
			}
		})
	}

	if err := testPulse().Validate(); err != nil {
		t.Fatalf("valid parameters rejected: %v", err)
	}
}

func TestGenerate(t *testing.T) {
	p := testPulse()

	chirp, err := p.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(chirp) != 200 {
		t.Fatalf("length = %d, want 200", len(chirp))
	}

	// Constant envelope: every sample sits on the unit circle.
	for _, v := range chirp {
		testutil.RequireNearlyEqual(t, cmplx.Abs(v), 1, 1e-12)
	}

	testutil.RequireNearlyEqual(t, real(chirp[0]), 1, 1e-12)
	testutil.RequireNearlyEqual(t, imag(chirp[0]), 0, 1e-12)
}

func TestCompressSingleTarget(t *testing.T) {
	p := testPulse()

	const delay = 5e-6 // 100 samples at 20 MHz

	rx, err := p.Echoes([]float64{delay}, []float64{1})
	if err != nil {
		t.Fatalf("Echoes: %v", err)
	}

	out, err := p.Compress(rx)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}

	if len(out) != len(rx) {
		t.Fatalf("output length = %d, want %d", len(out), len(rx))
	}

	peak := testutil.PeakIndex(out)
	if peak < 99 || peak > 101 {
		t.Fatalf("peak at %d, want 100 +/- 1", peak)
	}

	testutil.RequireNearlyEqual(t, cmplx.Abs(out[peak]), 1, 1e-6)
}

func TestCompressSidelobes(t *testing.T) {
	p := testPulse()

	rx, err := p.Echoes([]float64{5e-6}, []float64{1})
	if err != nil {
		t.Fatalf("Echoes: %v", err)
	}

	out, err := p.Compress(rx)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}

	peak := testutil.PeakIndex(out)
	for i, v := range out {
		if i >= peak-5 && i <= peak+5 {
			continue
		}

		if cmplx.Abs(v) > 0.3 {
			t.Fatalf("sidelobe at %d is %.3f, want < 0.3", i, cmplx.Abs(v))
		}
	}
}

func TestCompressTwoTargets(t *testing.T) {
	p := testPulse()

	// 250 samples apart, farther than the pulse length so the echoes
	// do not overlap.
	rx, err := p.Echoes([]float64{0, 12.5e-6}, []float64{1, 0.5})
	if err != nil {
		t.Fatalf("Echoes: %v", err)
	}

	out, err := p.Compress(rx)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}

	if testutil.PeakIndex(out) != 0 {
		t.Fatalf("strongest peak at %d, want 0", testutil.PeakIndex(out))
	}

	testutil.RequireNearlyEqual(t, cmplx.Abs(out[0]), 1, 1e-6)
	testutil.RequireNearlyEqual(t, cmplx.Abs(out[250]), 0.5, 1e-6)
}

func TestEchoesErrors(t *testing.T) {
	p := testPulse()

	if _, err := p.Echoes([]float64{1e-6}, []float64{1, 2}); !errors.Is(err, ErrTargetMismatch) {
		t.Fatalf("mismatched counts: err = %v", err)
	}

	if _, err := p.Echoes([]float64{-1e-6}, []float64{1}); !errors.Is(err, ErrInvalidDelay) {
		t.Fatalf("negative delay: err = %v", err)
	}
}

func TestCompressEmpty(t *testing.T) {
	if _, err := testPulse().Compress(nil); !errors.Is(err, ErrEmptyReceived) {
		t.Fatalf("err = %v, want %v", ErrEmptyReceived, ErrEmptyReceived)
	}
}

func TestRangeResolution(t *testing.T) {
	p := testPulse()

	res, err := p.RangeResolution()
	if err != nil {
		t.Fatalf("RangeResolution: %v", err)
	}

	// c / (2 * 10 MHz) is just under 15 m.
	testutil.RequireNearlyEqual(t, res, 14.9896, 1e-3)

	// Doubling the bandwidth halves the resolution.
	p.BandwidthHz *= 2
	res2, err := p.RangeResolution()
	if err != nil {
		t.Fatalf("RangeResolution: %v", err)
	}

	testutil.RequireNearlyEqual(t, res2, res/2, 1e-9)
}

func TestCompressionGain(t *testing.T) {
	p := testPulse()

	gain, err := p.CompressionGain()
	if err != nil {
		t.Fatalf("CompressionGain: %v", err)
	}

	// B*T = 100, so the gain is 20 dB.
	testutil.RequireNearlyEqual(t, gain, 20, 1e-12)
}
