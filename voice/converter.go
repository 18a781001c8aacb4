package voice

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Converter runs the full feminization pipeline over mono float64 buffers.
//
// Convert applies pitch shifting, formant shifting, the brightness-gated
// timbre blend and finally peak normalization to 1.0. A Converter can be
// reused for any number of buffers at the same sample rate.
type Converter struct {
	sampleRate float64

	pitch   *PitchShifter
	formant *FormantShifter
	timbre  *TimbreEnhancer
}

// NewConverter creates a converter for the given sample rate.
func NewConverter(sampleRate float64, opts ...Option) (*Converter, error) {
	if !isFinitePositive(sampleRate) {
		return nil, fmt.Errorf("%w: %f", ErrInvalidSampleRate, sampleRate)
	}

	pitch, err := NewPitchShifter(sampleRate, opts...)
	if err != nil {
		return nil, err
	}

	formant, err := NewFormantShifter(opts...)
	if err != nil {
		return nil, err
	}

	timbre, err := NewTimbreEnhancer(sampleRate)
	if err != nil {
		return nil, err
	}

	return &Converter{
		sampleRate: sampleRate,
		pitch:      pitch,
		formant:    formant,
		timbre:     timbre,
	}, nil
}

// SampleRate returns the configured sample rate in Hz.
func (c *Converter) SampleRate() float64 { return c.sampleRate }

// Convert processes input through the full pipeline and returns a new slice
// with the same length.
//
// Silent input stays silent; otherwise the output peak is exactly 1.0. If
// any stage produces non-finite samples, Convert reports
// ErrNumericInstability instead of returning garbage audio.
func (c *Converter) Convert(input []float64, params Parameters) ([]float64, error) {
	if len(input) == 0 {
		return nil, ErrEmptyInput
	}

	err := params.Validate()
	if err != nil {
		return nil, err
	}

	if err := c.pitch.SetSemitones(params.PitchShiftSemitones); err != nil {
		return nil, err
	}

	if err := c.formant.SetFactor(params.FormantShiftFactor); err != nil {
		return nil, err
	}

	out, err := c.pitch.Process(input)
	if err != nil {
		return nil, err
	}

	out, err = c.formant.Process(out)
	if err != nil {
		return nil, err
	}

	if params.Brightness > brightnessThreshold {
		out, err = c.timbre.Process(out)
		if err != nil {
			return nil, err
		}
	}

	return normalizePeak(out)
}

// normalizePeak scales the buffer so its absolute peak is exactly 1.0.
// All-zero buffers are returned unchanged.
func normalizePeak(buf []float64) ([]float64, error) {
	peak := 0.0

	for _, v := range buf {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: non-finite sample after processing", ErrNumericInstability)
		}

		if a := math.Abs(v); a > peak {
			peak = a
		}
	}

	if peak == 0 {
		return buf, nil
	}

	out := make([]float64, len(buf))
	vecmath.ScaleBlock(out, buf, 1/peak)

	return out, nil
}

// Convert is a one-shot helper wrapping NewConverter and Converter.Convert.
func Convert(input []float64, sampleRate float64, params Parameters, opts ...Option) ([]float64, error) {
	c, err := NewConverter(sampleRate, opts...)
	if err != nil {
		return nil, err
	}

	return c.Convert(input, params)
}
