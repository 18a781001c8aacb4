package voice

import (
	"fmt"
	"math"
)

const (
	defaultPitchSemitones     = 4.0
	defaultFormantShiftFactor = 1.2
	defaultBrightness         = 1.1

	maxPitchSemitones = 24.0

	// brightnessThreshold gates the timbre stage: values at or below it
	// leave the signal unfiltered.
	brightnessThreshold = 1.0
)

// Parameters holds the tunable settings of a conversion pass.
type Parameters struct {
	// PitchShiftSemitones raises (positive) or lowers (negative) the
	// perceived pitch. Zero leaves the pitch untouched.
	PitchShiftSemitones float64

	// FormantShiftFactor scales the spectral envelope. Values above 1 move
	// formants upward; 1.0 leaves them untouched.
	FormantShiftFactor float64

	// Brightness controls the high-frequency emphasis stage. The stage is
	// applied only when Brightness exceeds 1.0.
	Brightness float64
}

// DefaultParameters returns settings tuned for a natural feminization pass.
func DefaultParameters() Parameters {
	return Parameters{
		PitchShiftSemitones: defaultPitchSemitones,
		FormantShiftFactor:  defaultFormantShiftFactor,
		Brightness:          defaultBrightness,
	}
}

// Validate reports whether the parameters are usable for a conversion pass.
func (p Parameters) Validate() error {
	if math.IsNaN(p.PitchShiftSemitones) || math.Abs(p.PitchShiftSemitones) > maxPitchSemitones {
		return fmt.Errorf("voice: pitch shift must be in [-%g, %g] semitones: %f",
			maxPitchSemitones, maxPitchSemitones, p.PitchShiftSemitones)
	}

	if !isFinitePositive(p.FormantShiftFactor) {
		return fmt.Errorf("voice: formant shift factor must be positive and finite: %f", p.FormantShiftFactor)
	}

	if math.IsNaN(p.Brightness) || math.IsInf(p.Brightness, 0) || p.Brightness < 0 {
		return fmt.Errorf("voice: brightness must be finite and non-negative: %f", p.Brightness)
	}

	return nil
}

func isFinitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
