package render

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/cwbudde/algo-hrtf/sphere"
)

// Frame is one stereo output sample.
type Frame struct {
	Left  float64
	Right float64
}

// Source is the renderer's view of a sound source. The surrounding
// context owns the full source object model; the renderer only needs
// raw samples, the listener-relative direction and gain computed by the
// caller's listener and distance-model logic, and the per-source HRTF
// state.
//
// HRTF rendering is mono-in, stereo-out. Multi-channel sources must
// expose a single channel through FrameSamples; additional channels are
// ignored by design.
type Source interface {
	// Spatial reports whether the source should be HRTF-rendered.
	// Non-spatial sources are delegated to the fallback renderer.
	Spatial() bool

	// FrameSamples returns the raw mono samples for the frame being
	// rendered. The slice must hold at least Config.FrameLength samples.
	FrameSamples() []float64

	// SamplingVector returns the direction from the listener to the
	// source in the listener's basis.
	SamplingVector() mgl64.Vec3

	// DistanceGain returns the distance attenuation for this frame.
	DistanceGain() float64

	// HrtfState returns the source's persistent convolution state.
	HrtfState() *State
}

// RenderFunc renders a source into an output frame. Used as the
// fallback for non-spatial sources, typically a plain panning renderer.
type RenderFunc func(src Source, out []Frame)

// State is the per-source rendering state that must survive between
// frames: the overlap-save tails for both ears plus the previously used
// sampling direction and distance gain. It is owned by its source and
// mutated only while that source is being rendered.
type State struct {
	// LeftTail and RightTail hold the trailing impulseLen-1 raw input
	// samples of the previous block. Zero-filled tails give first-call
	// semantics.
	LeftTail  []float64
	RightTail []float64

	prevDir     mgl64.Vec3
	prevGain    float64
	hasPrevGain bool
}

// NewState returns a zeroed state sized for the given sphere's impulse
// length. Attach one to each source before its first render.
func NewState(s *sphere.Sphere) *State {
	overlap := s.Length() - 1

	return &State{
		LeftTail:  make([]float64, overlap),
		RightTail: make([]float64, overlap),
	}
}

// Reset clears the overlap tails and forgets the previous direction and
// gain, as if the source had never been rendered.
func (st *State) Reset() {
	for i := range st.LeftTail {
		st.LeftTail[i] = 0
	}

	for i := range st.RightTail {
		st.RightTail[i] = 0
	}

	st.prevDir = mgl64.Vec3{}
	st.prevGain = 0
	st.hasPrevGain = false
}
