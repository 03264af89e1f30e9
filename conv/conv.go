package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Engine performs overlap-save convolution of sample blocks against
// pre-transformed impulse spectra. It holds only the FFT plan for one
// fixed working length; scratch buffers and overlap state are supplied
// by the caller on every call, so the per-block path never allocates.
type Engine struct {
	padLen int
	plan   *algofft.Plan[complex128]
}

// NewEngine creates an engine for the given working length, which must
// equal blockLen + impulseLen - 1 of the spectra it will be fed.
func NewEngine(padLen int) (*Engine, error) {
	if padLen <= 0 {
		return nil, fmt.Errorf("conv: pad length must be positive, got %d", padLen)
	}

	plan, err := algofft.NewPlan64(padLen)
	if err != nil {
		return nil, fmt.Errorf("conv: create FFT plan: %w", err)
	}

	return &Engine{padLen: padLen, plan: plan}, nil
}

// PadLength returns the working length the engine was built for.
func (e *Engine) PadLength() int {
	return e.padLen
}

// Convolve runs one overlap-save step for a single channel.
//
// On entry, in[len(tail):] holds the fresh raw samples for this block as
// real-valued complexes; in[:len(tail)] is overwritten with the previous
// block's tail. Before anything is transformed, the trailing len(tail)
// raw samples of in are saved back into tail for the next call, so the
// overlap always carries un-convolved input. A zero-filled tail gives
// first-call semantics.
//
// The buffer is then forward-transformed, multiplied bin-wise against
// spectrum and inverse-transformed back into in. The valid time-domain
// payload is in[len(tail):]; the leading len(tail) samples are circular
// wrap-around and must be discarded. The inverse transform is
// normalized, so payload values need no rescaling.
//
// All three complex buffers must have the engine's working length. A
// mismatch means impulse length and block length were configured
// inconsistently at construction time, which is a programming error,
// so it panics instead of returning an error.
func (e *Engine) Convolve(in, out, spectrum []complex128, tail []float64) {
	if len(in) != e.padLen || len(out) != e.padLen || len(spectrum) != e.padLen {
		panic(fmt.Sprintf("conv: working length mismatch: in=%d out=%d spectrum=%d, engine pad=%d",
			len(in), len(out), len(spectrum), e.padLen))
	}

	overlap := len(tail)

	// Head of the buffer is the previous block's saved input.
	for i, s := range tail {
		in[i] = complex(s, 0)
	}

	// Save the trailing raw samples for the next block before the
	// buffer is destroyed by the transforms.
	for i := range tail {
		tail[i] = real(in[e.padLen-overlap+i])
	}

	if err := e.plan.Forward(out, in); err != nil {
		panic(fmt.Sprintf("conv: forward FFT failed: %v", err))
	}

	for i := range out {
		out[i] *= spectrum[i]
	}

	if err := e.plan.Inverse(in, out); err != nil {
		panic(fmt.Sprintf("conv: inverse FFT failed: %v", err))
	}
}

// TransformKernel zero-pads kernel to the working length and returns its
// forward transform, ready to be passed to [Engine.Convolve]. Intended
// for tests and tooling; the sphere loader performs the same transform
// for real HRIR data at load time.
func (e *Engine) TransformKernel(kernel []float64) ([]complex128, error) {
	if len(kernel) > e.padLen {
		return nil, fmt.Errorf("conv: kernel length %d exceeds working length %d", len(kernel), e.padLen)
	}

	padded := make([]complex128, e.padLen)
	for i, v := range kernel {
		padded[i] = complex(v, 0)
	}

	spectrum := make([]complex128, e.padLen)
	if err := e.plan.Forward(spectrum, padded); err != nil {
		return nil, fmt.Errorf("conv: kernel FFT failed: %w", err)
	}

	return spectrum, nil
}
