// Command sphereinfo prints header and content information for HRIR
// sphere files.
//
// Usage:
//
//	sphereinfo [flags] file.bin [file.bin ...]
//
// By default only the header is parsed, so files for any device sample
// rate can be inspected. With -full the whole sphere is loaded and
// geometry and spectrum statistics are printed.
//
// Examples:
//
//	sphereinfo IRC_1002_C.bin
//	sphereinfo -full -block 513 IRC_1002_C.bin
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-hrtf/core"
	"github.com/cwbudde/algo-hrtf/sphere"
)

var (
	flagBlock = flag.Int("block", 513, "render block length used to derive the FFT working length")
	flagFull  = flag.Bool("full", false, "load the full sphere and print geometry/spectrum statistics")
)

func main() {
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: sphereinfo [flags] file.bin [file.bin ...]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	exit := 0

	for _, path := range flag.Args() {
		if err := printInfo(path); err != nil {
			fmt.Fprintf(os.Stderr, "sphereinfo: %s: %v\n", path, err)

			exit = 1
		}
	}

	os.Exit(exit)
}

func printInfo(path string) error {
	info, err := sphere.LoadInfo(path)
	if err != nil {
		return err
	}

	cfg := core.ApplyOptions(core.WithBlockLen(*flagBlock))
	padLen := cfg.PadLength(info.ImpulseLength)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintf(w, "file\t%s\n", path)
	fmt.Fprintf(w, "sample rate\t%d Hz\n", info.SampleRate)
	fmt.Fprintf(w, "impulse length\t%d samples\n", info.ImpulseLength)
	fmt.Fprintf(w, "vertices\t%d\n", info.VertexCount)
	fmt.Fprintf(w, "triangles\t%d\n", info.TriangleCount())
	fmt.Fprintf(w, "pad length\t%d (block %d)\n", padLen, *flagBlock)

	if !core.IsPowerOfTwo(padLen) {
		fmt.Fprintf(w, "\tnote: pad length is not a power of two; FFT falls off its fast path\n")
	}

	if err := w.Flush(); err != nil {
		return err
	}

	if !*flagFull {
		return nil
	}

	return printStats(path, info)
}

func printStats(path string, info sphere.Info) error {
	s, err := sphere.Load(path,
		core.WithSampleRate(info.SampleRate),
		core.WithBlockLen(*flagBlock),
	)
	if err != nil {
		return err
	}

	minNorm := math.Inf(1)
	maxNorm := math.Inf(-1)

	var sumLeft, sumRight float64

	re := make([]float64, s.PadLength())
	im := make([]float64, s.PadLength())
	mag := make([]float64, s.PadLength())

	for i := range s.Points() {
		pt := &s.Points()[i]

		norm := pt.Pos().Len()
		minNorm = math.Min(minNorm, norm)
		maxNorm = math.Max(maxNorm, norm)

		sumLeft += meanMagnitude(pt.LeftSpectrum(), re, im, mag)
		sumRight += meanMagnitude(pt.RightSpectrum(), re, im, mag)
	}

	n := float64(len(s.Points()))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintf(w, "point norm\t%.4f .. %.4f\n", minNorm, maxNorm)
	fmt.Fprintf(w, "mean |H| left\t%.4f\n", sumLeft/n)
	fmt.Fprintf(w, "mean |H| right\t%.4f\n", sumRight/n)

	return w.Flush()
}

// meanMagnitude returns the average spectral magnitude of one spectrum,
// reusing the provided scratch slices.
func meanMagnitude(spectrum []complex128, re, im, mag []float64) float64 {
	for i, c := range spectrum {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Magnitude(mag, re, im)

	sum := 0.0
	for _, m := range mag {
		sum += m
	}

	return sum / float64(len(mag))
}
