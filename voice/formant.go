package voice

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-voice/dsp/spectrum"
	"github.com/cwbudde/algo-voice/dsp/stft"
)

// formantIdentityEps is the |factor - 1| threshold below which the shifter
// bypasses processing entirely.
const formantIdentityEps = 1e-12

// FormantShifter moves the spectral envelope without changing pitch.
//
// Each magnitude bin i is relocated to round(i*factor); bins that land past
// the half spectrum are dropped and destination bins no source maps to stay
// zero. When several sources collide on one destination the highest source
// bin wins. Phases are kept from the original spectrum at the destination
// index, which preserves the temporal structure of the frame.
//
// This processor is mono, one-shot buffer oriented, and not thread-safe.
type FormantShifter struct {
	factor float64

	transform *stft.Transform
}

// NewFormantShifter creates a formant shifter with factor 1 (identity).
func NewFormantShifter(opts ...Option) (*FormantShifter, error) {
	cfg := applyOptions(opts)

	tr, err := stft.New(cfg.frameSize, cfg.hopSize)
	if err != nil {
		return nil, fmt.Errorf("voice: formant shifter: %w", err)
	}

	return &FormantShifter{
		factor:    1,
		transform: tr,
	}, nil
}

// Factor returns the configured envelope scaling factor.
func (fs *FormantShifter) Factor() float64 { return fs.factor }

// SetFactor updates the envelope scaling factor. factor must be positive
// and finite.
func (fs *FormantShifter) SetFactor(factor float64) error {
	if !isFinitePositive(factor) {
		return fmt.Errorf("voice: formant shift factor must be positive and finite: %f", factor)
	}

	fs.factor = factor

	return nil
}

// Process applies formant shifting to input and returns a new slice with the
// same length. Factor 1 returns an exact copy of the input.
func (fs *FormantShifter) Process(input []float64) ([]float64, error) {
	if len(input) == 0 {
		return nil, ErrEmptyInput
	}

	if math.Abs(fs.factor-1) < formantIdentityEps {
		out := make([]float64, len(input))
		copy(out, input)

		return out, nil
	}

	frames, err := fs.transform.Analyze(input)
	if err != nil {
		return nil, fmt.Errorf("voice: formant shifter: %w", err)
	}

	for i := range frames {
		mag := spectrum.Magnitude(frames[i].Bins)
		phase := spectrum.Phase(frames[i].Bins)

		shifted := make([]float64, len(mag))
		for src, m := range mag {
			dst := int(math.Round(float64(src) * fs.factor))
			if dst < 0 || dst >= len(shifted) {
				continue
			}

			shifted[dst] = m
		}

		frames[i].Bins = spectrum.FromPolar(shifted, phase)
	}

	out, err := fs.transform.Synthesize(frames)
	if err != nil {
		return nil, fmt.Errorf("voice: formant shifter: %w", err)
	}

	return fitLength(out, len(input)), nil
}
