package conv

import (
	"math"
	"testing"
)

func BenchmarkConvolve(b *testing.B) {
	// IRCAM-style geometry: 512-tap impulse, 513-sample block, 1024 FFT.
	const (
		kernelLen = 512
		blockLen  = 513
	)

	kernel := make([]float64, kernelLen)
	for i := range kernel {
		kernel[i] = math.Exp(-float64(i) / 64)
	}

	e, err := NewEngine(blockLen + kernelLen - 1)
	if err != nil {
		b.Fatal(err)
	}

	spectrum, err := e.TransformKernel(kernel)
	if err != nil {
		b.Fatal(err)
	}

	overlap := kernelLen - 1
	tail := make([]float64, overlap)

	in := make([]complex128, e.PadLength())
	out := make([]complex128, e.PadLength())

	for i := 0; i < blockLen; i++ {
		in[overlap+i] = complex(math.Sin(float64(i)*0.01), 0)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		e.Convolve(in, out, spectrum, tail)
	}
}

func BenchmarkDirectReference(b *testing.B) {
	const (
		kernelLen = 512
		blockLen  = 513
	)

	kernel := make([]float64, kernelLen)
	for i := range kernel {
		kernel[i] = math.Exp(-float64(i) / 64)
	}

	signal := make([]float64, blockLen)
	for i := range signal {
		signal[i] = math.Sin(float64(i) * 0.01)
	}

	out := make([]float64, blockLen+kernelLen-1)

	b.ReportAllocs()
	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		for i := range out {
			out[i] = 0
		}

		for i, s := range signal {
			for j, k := range kernel {
				out[i+j] += s * k
			}
		}
	}
}
