// Package conv implements the overlap-save block convolution used by the
// binaural renderer.
//
// Overlap-save turns per-block linear convolution into one forward FFT,
// one spectral multiply and one inverse FFT per block, independent of the
// impulse response length. For the impulse lengths HRTF rendering deals
// with (hundreds of samples against blocks of a few thousand) this is
// roughly an order of magnitude faster than direct convolution, which
// matters because the path runs once per channel per active source under
// the output device's deadline.
//
// The [Engine] deliberately owns nothing but the FFT plan. Scratch
// buffers belong to the renderer, and the inter-block overlap state (the
// tail) belongs to each sound source, so one engine serves any number of
// sources as long as calls are serialized.
package conv
