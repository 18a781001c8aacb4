package voice

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-voice/dsp/filter/biquad"
	"github.com/cwbudde/algo-voice/dsp/filter/design"
)

const (
	timbreCutoffHz    = 2000.0
	timbreFilterOrder = 2
	timbreDryMix      = 0.7
	timbreWetMix      = 0.3
)

// TimbreEnhancer adds high-frequency emphasis by blending the input with a
// zero-phase highpassed copy of itself.
//
// The filter is a fixed order-2 Butterworth highpass at 2 kHz applied
// forward and backward, so the blend stays time-aligned with the dry signal.
type TimbreEnhancer struct {
	sampleRate float64
	sections   []biquad.Coefficients
}

// NewTimbreEnhancer creates a timbre enhancer for the given sample rate.
// The rate must leave the 2 kHz filter cutoff below Nyquist.
func NewTimbreEnhancer(sampleRate float64) (*TimbreEnhancer, error) {
	if !isFinitePositive(sampleRate) {
		return nil, fmt.Errorf("%w: %f", ErrInvalidSampleRate, sampleRate)
	}

	if sampleRate <= 2*timbreCutoffHz {
		return nil, fmt.Errorf("%w: %f Hz leaves no room for the %g Hz brightness filter",
			ErrInvalidSampleRate, sampleRate, timbreCutoffHz)
	}

	sections := design.ButterworthHP(timbreCutoffHz, timbreFilterOrder, sampleRate)

	return &TimbreEnhancer{
		sampleRate: sampleRate,
		sections:   sections,
	}, nil
}

// SampleRate returns the configured sample rate in Hz.
func (e *TimbreEnhancer) SampleRate() float64 { return e.sampleRate }

// Process blends input with its highpassed copy at a fixed 0.7/0.3 ratio
// and returns a new slice with the same length.
func (e *TimbreEnhancer) Process(input []float64) ([]float64, error) {
	if len(input) == 0 {
		return nil, ErrEmptyInput
	}

	filtered := biquad.FiltFilt(e.sections, input)

	out := make([]float64, len(input))
	vecmath.ScaleBlock(out, input, timbreDryMix)

	wet := make([]float64, len(input))
	vecmath.ScaleBlock(wet, filtered, timbreWetMix)
	vecmath.AddBlockInPlace(out, wet)

	return out, nil
}
