// Package core provides the shared render configuration and small numeric
// helpers used across the HRTF packages.
//
// The sphere loader and the binaural renderer must agree on three values:
// the device sample rate, the render block length and the number of
// interpolation steps per output frame. [Config] carries all three and is
// built with functional options:
//
//	cfg := core.ApplyOptions(
//		core.WithSampleRate(44100),
//		core.WithBlockLen(513),
//	)
//
// One output frame is InterpolationSteps blocks of BlockLen stereo samples.
// The overlap-save working length for an impulse response of length L is
// BlockLen + L - 1; picking BlockLen so that this lands on a power of two
// (513 + 512 - 1 = 1024 for IRCAM-style spheres) keeps the FFT on its fast
// path.
package core
