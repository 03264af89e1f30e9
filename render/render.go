package render

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/cwbudde/algo-hrtf/conv"
	"github.com/cwbudde/algo-hrtf/core"
	"github.com/cwbudde/algo-hrtf/internal/geom"
	"github.com/cwbudde/algo-hrtf/sphere"
)

// ErrNonSpatialSource is returned when a non-spatial source reaches a
// renderer that has no fallback configured.
var ErrNonSpatialSource = errors.New("render: non-spatial source and no fallback renderer configured")

var padWarnOnce sync.Once

// Option configures a Renderer.
type Option func(*Renderer)

// WithFallback sets the renderer used for non-spatial sources.
func WithFallback(fn RenderFunc) Option {
	return func(r *Renderer) {
		r.fallback = fn
	}
}

// Renderer performs binaural rendering against one HRIR sphere. It owns
// the convolution scratch buffers, so a single instance must not render
// two sources concurrently; all access is expected to come from one
// audio-processing goroutine.
type Renderer struct {
	cfg    core.Config
	sphere *sphere.Sphere
	engine *conv.Engine

	leftIn   []complex128
	rightIn  []complex128
	leftOut  []complex128
	rightOut []complex128

	// Most recently sampled interpolated spectra. Pre-seeded with the
	// sphere's first point so a ray miss before any hit still convolves
	// against a valid response.
	leftHRTF  []complex128
	rightHRTF []complex128

	fallback RenderFunc
}

// New creates a renderer for the given sphere. cfg must be the same
// configuration the sphere was loaded with; a block length that does not
// reproduce the sphere's padded working length is rejected.
func New(sph *sphere.Sphere, cfg core.Config, opts ...Option) (*Renderer, error) {
	padLen := cfg.PadLength(sph.Length())
	if padLen != sph.PadLength() {
		return nil, fmt.Errorf("render: config pad length %d does not match sphere pad length %d", padLen, sph.PadLength())
	}

	engine, err := conv.NewEngine(padLen)
	if err != nil {
		return nil, err
	}

	if !core.IsPowerOfTwo(padLen) {
		padWarnOnce.Do(func() {
			log.Printf("render: pad length %d is not a power of two; FFT falls off its fast path", padLen)
		})
	}

	r := &Renderer{
		cfg:       cfg,
		sphere:    sph,
		engine:    engine,
		leftIn:    make([]complex128, padLen),
		rightIn:   make([]complex128, padLen),
		leftOut:   make([]complex128, padLen),
		rightOut:  make([]complex128, padLen),
		leftHRTF:  make([]complex128, padLen),
		rightHRTF: make([]complex128, padLen),
	}

	pt := &sph.Points()[0]
	copy(r.leftHRTF, pt.LeftSpectrum())
	copy(r.rightHRTF, pt.RightSpectrum())

	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	return r, nil
}

// Config returns the renderer's configuration.
func (r *Renderer) Config() core.Config {
	return r.cfg
}

// Sphere returns the HRIR sphere the renderer samples from.
func (r *Renderer) Sphere() *sphere.Sphere {
	return r.sphere
}

// RenderSource renders one source into out, mixing additively so that
// out may already carry other sources' contributions. out must have
// exactly Config.FrameLength samples.
//
// Spatial sources are convolved in InterpolationSteps sub-blocks with
// the sampling direction and distance gain interpolated from the
// previous frame's values; the first frame has no gain ramp. The
// source's State is updated for the next call. Non-spatial sources are
// handed to the fallback renderer.
func (r *Renderer) RenderSource(src Source, out []Frame) error {
	if !src.Spatial() {
		if r.fallback == nil {
			return ErrNonSpatialSource
		}

		r.fallback(src, out)

		return nil
	}

	frameLen := r.cfg.FrameLength()
	if len(out) != frameLen {
		panic(fmt.Sprintf("render: output frame length %d, want %d", len(out), frameLen))
	}

	samples := src.FrameSamples()
	if len(samples) < frameLen {
		panic(fmt.Sprintf("render: source frame holds %d samples, want at least %d", len(samples), frameLen))
	}

	st := src.HrtfState()
	overlap := r.sphere.Length() - 1

	// A freshly attached source may carry an unsized state; bring the
	// tails up to the sphere's overlap length. Steady-state renders
	// never hit this.
	if len(st.LeftTail) != overlap {
		st.LeftTail = make([]float64, overlap)
	}

	if len(st.RightTail) != overlap {
		st.RightTail = make([]float64, overlap)
	}

	newDir := src.SamplingVector()
	newGain := src.DistanceGain()

	prevGain := newGain
	if st.hasPrevGain {
		prevGain = st.prevGain
	}

	blockLen := r.cfg.BlockLen
	steps := r.cfg.InterpolationSteps

	for step := 0; step < steps; step++ {
		t := float64(step+1) / float64(steps)

		dir := geom.LerpVec3(st.prevDir, newDir, t)
		r.sphere.SampleBilinear(dir, r.leftHRTF, r.rightHRTF)

		offset := step * blockLen
		for i := 0; i < blockLen; i++ {
			s := complex(samples[offset+i], 0)
			r.leftIn[overlap+i] = s
			r.rightIn[overlap+i] = s
		}

		r.engine.Convolve(r.leftIn, r.leftOut, r.leftHRTF, st.LeftTail)
		r.engine.Convolve(r.rightIn, r.rightOut, r.rightHRTF, st.RightTail)

		// The inverse transform is normalized, so the payload only
		// needs the distance gain.
		gain := core.Lerp(prevGain, newGain, t)

		leftPayload := r.leftIn[overlap:]
		rightPayload := r.rightIn[overlap:]
		outBlock := out[offset : offset+blockLen]

		for i := range outBlock {
			outBlock[i].Left += real(leftPayload[i]) * gain
			outBlock[i].Right += real(rightPayload[i]) * gain
		}
	}

	st.prevDir = newDir
	st.prevGain = newGain
	st.hasPrevGain = true

	return nil
}
