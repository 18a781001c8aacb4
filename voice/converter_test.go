package voice

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-voice/internal/testutil"
)

func TestNewConverterValidation(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate float64
	}{
		{name: "zero rate", sampleRate: 0},
		{name: "negative rate", sampleRate: -22050},
		{name: "nan rate", sampleRate: math.NaN()},
		{name: "rate below filter range", sampleRate: 3000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewConverter(tt.sampleRate); !errors.Is(err, ErrInvalidSampleRate) {
				t.Fatalf("NewConverter(%v) error = %v, want ErrInvalidSampleRate", tt.sampleRate, err)
			}
		})
	}
}

func TestConvertValidatesParameters(t *testing.T) {
	c, err := NewConverter(22050)
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}

	input := testutil.DeterministicSine(2048, 0.01)

	tests := []struct {
		name   string
		params Parameters
	}{
		{name: "nan semitones", params: Parameters{PitchShiftSemitones: math.NaN(), FormantShiftFactor: 1.2, Brightness: 1.1}},
		{name: "excessive semitones", params: Parameters{PitchShiftSemitones: 30, FormantShiftFactor: 1.2, Brightness: 1.1}},
		{name: "zero formant factor", params: Parameters{PitchShiftSemitones: 4, FormantShiftFactor: 0, Brightness: 1.1}},
		{name: "negative formant factor", params: Parameters{PitchShiftSemitones: 4, FormantShiftFactor: -1, Brightness: 1.1}},
		{name: "nan brightness", params: Parameters{PitchShiftSemitones: 4, FormantShiftFactor: 1.2, Brightness: math.NaN()}},
		{name: "negative brightness", params: Parameters{PitchShiftSemitones: 4, FormantShiftFactor: 1.2, Brightness: -0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.Convert(input, tt.params); err == nil {
				t.Fatal("Convert() succeeded, want parameter error")
			}
		})
	}
}

func TestConvertEmptyInput(t *testing.T) {
	c, err := NewConverter(22050)
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}

	if _, err := c.Convert(nil, DefaultParameters()); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("Convert(nil) error = %v, want ErrEmptyInput", err)
	}
}

func TestConvertSilenceStaysSilent(t *testing.T) {
	c, err := NewConverter(22050)
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}

	input := make([]float64, 8192)

	out, err := c.Convert(input, DefaultParameters())
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if len(out) != len(input) {
		t.Fatalf("output length = %d, want %d", len(out), len(input))
	}

	testutil.RequireSliceNearlyEqual(t, out, input, 0, "silent output")
}

func TestConvertNormalizesPeakToOne(t *testing.T) {
	c, err := NewConverter(22050)
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}

	inputs := map[string][]float64{
		"quiet sine": testutil.DeterministicSineAt(8192, 220, 22050),
		"noise":      testutil.DeterministicNoise(8192, 4),
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			// Scale down so normalization has to amplify.
			for i := range input {
				input[i] *= 0.1
			}

			out, err := c.Convert(input, DefaultParameters())
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}

			peak := 0.0
			for _, v := range out {
				if a := math.Abs(v); a > peak {
					peak = a
				}
			}

			if math.Abs(peak-1) > 1e-9 {
				t.Fatalf("output peak = %v, want 1.0", peak)
			}
		})
	}
}

func TestBrightnessGate(t *testing.T) {
	c, err := NewConverter(22050)
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}

	input := testutil.DeterministicSineAt(8192, 220, 22050)

	params := DefaultParameters()

	params.Brightness = 1.0
	atThreshold, err := c.Convert(input, params)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	params.Brightness = 0.3
	belowThreshold, err := c.Convert(input, params)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	// The gate only fires above 1.0; any value at or below it must leave
	// the signal untouched by the timbre stage.
	testutil.RequireSliceNearlyEqual(t, belowThreshold, atThreshold, 0, "gated outputs")

	params.Brightness = 1.1
	aboveThreshold, err := c.Convert(input, params)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if testutil.MaxAbsDiff(aboveThreshold, atThreshold) < 1e-6 {
		t.Fatal("brightness above threshold did not change the output")
	}
}

func TestConvertEndToEndFeminization(t *testing.T) {
	const sampleRate = 22050.0

	input := testutil.DeterministicSineAt(22050, 220, sampleRate)

	out, err := Convert(input, sampleRate, DefaultParameters())
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if len(out) != len(input) {
		t.Fatalf("output length = %d, want %d", len(out), len(input))
	}

	testutil.RequireFinite(t, out, "converted output")

	peak := 0.0
	for _, v := range out {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}

	if math.Abs(peak-1) > 1e-9 {
		t.Fatalf("output peak = %v, want 1.0", peak)
	}

	// The pitch stage moves 220 Hz up 4 semitones to ~277 Hz and the
	// formant stage relocates the partial a little further upward; the
	// dominant energy must land clearly above the input frequency.
	got := testutil.DominantFrequencyHz(out, sampleRate, 150, 450, 1)
	if got < 250 || got > 400 {
		t.Fatalf("dominant frequency = %v Hz, want within (250, 400)", got)
	}
}
