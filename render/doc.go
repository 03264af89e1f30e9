// Package render drives HRTF binaural rendering: it samples the HRIR
// sphere for the current source direction, convolves the source's mono
// samples against the interpolated responses and mixes the stereo result
// into an output frame.
//
// # Sub-block interpolation
//
// Recomputing the HRTF once per frame produces audible "buzzing" on
// moving sources because the impulse response jumps between frames. The
// renderer therefore splits each output frame into a fixed number of
// sub-blocks and linearly interpolates the sampling direction and the
// distance gain from the previous frame's values to the current ones,
// re-sampling the sphere once per sub-block. The impulse response still
// changes discretely between sub-blocks, so very fast sources can retain
// small phase-related amplitude bumps; cross-fading overlapping output
// segments would remove those but is not implemented.
//
// # Ownership and concurrency
//
// A [Renderer] owns four complex scratch buffers and the two most
// recently sampled spectra. These are reused for every source it
// renders, so a renderer must only ever be driven by one goroutine at a
// time; the package takes no locks. Per-source overlap state lives in a
// [State] owned by the source, which keeps the convolution continuous
// across frames and lets sources be rendered in any order.
//
// The per-block render path performs no allocations.
package render
