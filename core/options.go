package core

// Config holds the device-facing render settings shared by the sphere
// loader and the binaural renderer.
type Config struct {
	// SampleRate is the output device sample rate in Hz. HRIR sphere
	// files declaring a different rate are rejected at load time.
	SampleRate uint32

	// BlockLen is the number of samples rendered per convolution block.
	BlockLen int

	// InterpolationSteps is the number of blocks per output frame. The
	// renderer re-samples the HRTF once per block and interpolates the
	// sampling direction across the frame to suppress artifacts from
	// moving sources.
	InterpolationSteps int
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the configuration matching IRCAM-style HRIR
// spheres: 44100 Hz, 513-sample blocks and 8 interpolation steps.
func DefaultConfig() Config {
	return Config{
		SampleRate:         44100,
		BlockLen:           513,
		InterpolationSteps: 8,
	}
}

// WithSampleRate sets the device sample rate.
func WithSampleRate(rate uint32) Option {
	return func(cfg *Config) {
		if rate > 0 {
			cfg.SampleRate = rate
		}
	}
}

// WithBlockLen sets the per-block render length.
func WithBlockLen(blockLen int) Option {
	return func(cfg *Config) {
		if blockLen > 0 {
			cfg.BlockLen = blockLen
		}
	}
}

// WithInterpolationSteps sets the number of sub-blocks per output frame.
func WithInterpolationSteps(steps int) Option {
	return func(cfg *Config) {
		if steps > 0 {
			cfg.InterpolationSteps = steps
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// PadLength returns the overlap-save working length for an impulse
// response of impulseLen samples: BlockLen + impulseLen - 1.
func (c Config) PadLength(impulseLen int) int {
	return c.BlockLen + impulseLen - 1
}

// FrameLength returns the number of stereo samples produced by one
// render call: BlockLen * InterpolationSteps.
func (c Config) FrameLength() int {
	return c.BlockLen * c.InterpolationSteps
}
