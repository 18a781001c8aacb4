package voice

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-voice/internal/testutil"
)

// componentAmplitude estimates the amplitude of the freq Hz component by
// projecting signal onto a complex exponential.
func componentAmplitude(signal []float64, freq, sampleRate float64) float64 {
	var re, im float64

	w := 2 * math.Pi * freq / sampleRate
	for i, v := range signal {
		s, c := math.Sincos(w * float64(i))
		re += v * c
		im += v * s
	}

	return 2 * math.Hypot(re, im) / float64(len(signal))
}

func TestNewTimbreEnhancerValidation(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate float64
	}{
		{name: "zero rate", sampleRate: 0},
		{name: "negative rate", sampleRate: -22050},
		{name: "nan rate", sampleRate: math.NaN()},
		{name: "cutoff at nyquist", sampleRate: 4000},
		{name: "cutoff above nyquist", sampleRate: 3000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTimbreEnhancer(tt.sampleRate); !errors.Is(err, ErrInvalidSampleRate) {
				t.Fatalf("NewTimbreEnhancer(%v) error = %v, want ErrInvalidSampleRate", tt.sampleRate, err)
			}
		})
	}
}

func TestTimbreEnhancerEmptyInput(t *testing.T) {
	e, err := NewTimbreEnhancer(22050)
	if err != nil {
		t.Fatalf("NewTimbreEnhancer() error = %v", err)
	}

	if _, err := e.Process(nil); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("Process(nil) error = %v, want ErrEmptyInput", err)
	}
}

func TestTimbreEnhancerEmphasizesHighFrequencies(t *testing.T) {
	const (
		sampleRate = 22050.0
		lowHz      = 200.0
		highHz     = 5000.0
	)

	length := 22050
	input := make([]float64, length)

	for i := range input {
		tm := float64(i)
		input[i] = 0.5*math.Sin(2*math.Pi*lowHz/sampleRate*tm) +
			0.5*math.Sin(2*math.Pi*highHz/sampleRate*tm)
	}

	e, err := NewTimbreEnhancer(sampleRate)
	if err != nil {
		t.Fatalf("NewTimbreEnhancer() error = %v", err)
	}

	out, err := e.Process(input)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if len(out) != length {
		t.Fatalf("output length = %d, want %d", len(out), length)
	}

	testutil.RequireFinite(t, out, "enhanced output")

	// The 200 Hz component lies far below the 2 kHz highpass cutoff, so it
	// only survives through the dry path and shrinks to ~0.7 of its input
	// amplitude. The 5 kHz component passes the filter nearly unattenuated
	// and keeps ~dry+wet = 1.0 of its amplitude.
	lowGain := componentAmplitude(out, lowHz, sampleRate) / componentAmplitude(input, lowHz, sampleRate)
	if math.Abs(lowGain-timbreDryMix) > 0.05 {
		t.Fatalf("low-band gain = %v, want ~%v", lowGain, timbreDryMix)
	}

	highGain := componentAmplitude(out, highHz, sampleRate) / componentAmplitude(input, highHz, sampleRate)
	if math.Abs(highGain-1) > 0.05 {
		t.Fatalf("high-band gain = %v, want ~1", highGain)
	}
}

func TestTimbreEnhancerDoesNotMutateInput(t *testing.T) {
	input := testutil.DeterministicNoise(512, 9)
	saved := append([]float64(nil), input...)

	e, err := NewTimbreEnhancer(22050)
	if err != nil {
		t.Fatalf("NewTimbreEnhancer() error = %v", err)
	}

	if _, err := e.Process(input); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, input, saved, 0, "input buffer")
}
