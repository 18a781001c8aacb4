package voice

const (
	defaultFrameSize = 1024
	defaultHopSize   = 256
)

type config struct {
	frameSize int
	hopSize   int
}

// Option configures the frequency-domain stages.
type Option func(*config)

// WithFrameSize overrides the STFT frame size. The size must be a power of
// two and at least 64; invalid values surface from the constructor.
func WithFrameSize(n int) Option {
	return func(cfg *config) {
		cfg.frameSize = n
	}
}

// WithHopSize overrides the STFT hop size. The hop must be at most half the
// frame size; invalid values surface from the constructor.
func WithHopSize(n int) Option {
	return func(cfg *config) {
		cfg.hopSize = n
	}
}

func defaultConfig() config {
	return config{
		frameSize: defaultFrameSize,
		hopSize:   defaultHopSize,
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
