// Package pulse provides linear FM chirp generation and matched filter
// pulse compression for range processing.
//
// A long chirp carries the energy of a long pulse while the matched
// filter compresses each echo to a mainlobe of width ~1/B, so range
// resolution depends on the swept bandwidth rather than the pulse
// duration. The processing gain over an uncompressed pulse of equal
// energy is the time-bandwidth product B*T.
//
// # Usage
//
// Generate the chirp, synthesize or record echoes, and compress:
//
//	p := &pulse.LFM{
//	    BandwidthHz:  10e6,
//	    PulseWidthS:  10e-6,
//	    SampleRateHz: 20e6,
//	}
//	rx, _ := p.Compress(received)
//	// an echo delayed by d samples peaks at rx[d]
//
// RangeResolution and CompressionGain report the corresponding figures
// of merit.
package pulse
