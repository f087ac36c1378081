// Command taperinfo prints radiation pattern figures of merit for
// planar array amplitude tapers.
//
// Usage:
//
//	taperinfo [flags] [taper-name ...]
//
// Without arguments it prints info for all known taper kinds.
//
// Examples:
//
//	taperinfo chebyshev
//	taperinfo -n 16 -m 16 hamming taylor
//	taperinfo -sll -40 chebyshev
//	taperinfo -theta 30 -all
//	taperinfo -list
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-beam/array/geometry"
	"github.com/cwbudde/algo-beam/array/pattern"
	"github.com/cwbudde/algo-beam/array/steer"
	"github.com/cwbudde/algo-beam/array/taper"
	"github.com/cwbudde/algo-beam/measure/beam"
)

type taperEntry struct {
	name   string
	kind   taper.Kind
	hasSLL bool
	defSLL float64
}

var registry = []taperEntry{
	{"uniform", taper.KindUniform, false, 0},
	{"chebyshev", taper.KindChebyshev, true, taper.DefaultSidelobeDB},
	{"taylor", taper.KindTaylor, true, taper.DefaultSidelobeDB},
	{"hamming", taper.KindHamming, false, 0},
	{"hanning", taper.KindHanning, false, 0},
	{"blackman", taper.KindBlackman, false, 0},
}

func main() {
	n := flag.Int("n", 8, "elements along x")
	m := flag.Int("m", 8, "elements along y")
	spacing := flag.Float64("spacing", 0.5, "element spacing in wavelengths")
	sll := flag.Float64("sll", math.NaN(), "target sidelobe level in dB for parametric tapers (chebyshev, taylor)")
	theta := flag.Float64("theta", 0, "steering angle from broadside in degrees")
	phi := flag.Float64("phi", 0, "steering azimuth in degrees")
	step := flag.Float64("step", 0.25, "pattern cut step in degrees")
	all := flag.Bool("all", false, "show all taper kinds")
	list := flag.Bool("list", false, "list available taper names")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: taperinfo [flags] [taper-name ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints radiation pattern figures of merit for planar array tapers.\n")
		fmt.Fprintf(os.Stderr, "Without arguments or with -all, prints info for all tapers.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  taperinfo chebyshev taylor\n")
		fmt.Fprintf(os.Stderr, "  taperinfo -n 16 -m 16 -sll -40 chebyshev\n")
		fmt.Fprintf(os.Stderr, "  taperinfo -theta 30 -all\n")
		fmt.Fprintf(os.Stderr, "  taperinfo -list\n")
	}
	flag.Parse()

	if *list {
		printList()
		return
	}

	names := flag.Args()
	if len(names) == 0 || *all {
		names = nil
		for _, e := range registry {
			names = append(names, e.name)
		}
	}

	entries := resolveEntries(names, *sll)
	if len(entries) == 0 {
		fmt.Fprintf(os.Stderr, "error: no matching taper kinds\n")
		os.Exit(1)
	}

	g, err := geometry.Build(*n, *m, *spacing, 1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	d := steer.Direction{Theta: *theta, Phi: *phi}
	printAnalysis(entries, g, d, *step)
}

func printList() {
	names := make([]string, len(registry))
	for i, e := range registry {
		names[i] = e.name
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Println(n)
	}
}

type resolvedEntry struct {
	taperEntry
	sllOverride float64
}

func resolveEntries(names []string, sllFlag float64) []resolvedEntry {
	byName := make(map[string]taperEntry, len(registry))
	for _, e := range registry {
		byName[e.name] = e
	}

	var result []resolvedEntry
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		e, ok := byName[name]
		if !ok {
			fmt.Fprintf(os.Stderr, "warning: unknown taper %q (use -list to see available)\n", name)
			continue
		}
		s := e.defSLL
		if e.hasSLL && !math.IsNaN(sllFlag) {
			s = sllFlag
		}
		result = append(result, resolvedEntry{e, s})
	}
	return result
}

func printAnalysis(entries []resolvedEntry, g *geometry.Geometry, d steer.Direction, step float64) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Taper\tGrid\tEfficiency\tPeak [dBi]\tHPBW [deg]\tFNBW [deg]\tPeak SL [dB]\tScan Loss [dB]\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}
	if _, err := fmt.Fprintf(tw, "-----\t----\t----------\t----------\t----------\t----------\t------------\t--------------\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}

	sweep := pattern.Sweep{StartDeg: -90, StopDeg: 90, StepDeg: step}
	phase := steer.Phase(d, g)
	scanLoss := beam.ScanLoss(steer.ScanAngle(d))

	for _, e := range entries {
		var opts []taper.Option
		if e.hasSLL {
			opts = append(opts, taper.WithSidelobeLevel(e.sllOverride))
		}

		w, err := taper.Weights(e.kind, g.N(), g.M(), opts...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", e.name, err)
			continue
		}

		p, err := pattern.ComputeReal(g, w, phase, sweep, d.Phi, pattern.ModeDirectivity)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", e.name, err)
			continue
		}

		metrics, err := beam.Analyze(p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", e.name, err)
			continue
		}

		label := e.name
		if e.hasSLL {
			label = fmt.Sprintf("%s (%.0f dB)", e.name, e.sllOverride)
		}

		peakSL := math.NaN()
		if len(metrics.Sidelobes) > 0 {
			peakSL = metrics.Sidelobes[0].RelativeDB
		}

		if _, err := fmt.Fprintf(tw, "%s\t%dx%d\t%.4f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\n",
			label,
			g.N(), g.M(),
			w.Gain(),
			metrics.PeakGainDB,
			metrics.BeamwidthDeg,
			metrics.FirstNullBeamwidthDeg,
			peakSL,
			scanLoss,
		); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output row: %v\n", err)
			return
		}
	}
	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}
