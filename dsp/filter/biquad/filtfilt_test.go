package biquad

import (
	"math"
	"testing"
)

// lowpassTestCoeffs is an RBJ lowpass at fc = 0.1*fs, Q = 1/sqrt2,
// precomputed so this package does not depend on the design package.
func lowpassTestCoeffs() Coefficients {
	w0 := 2 * math.Pi * 0.1
	cw := math.Cos(w0)
	sw := math.Sin(w0)
	alpha := sw / (2 * (1 / math.Sqrt2))
	a0 := 1 + alpha

	return Coefficients{
		B0: (1 - cw) / 2 / a0,
		B1: (1 - cw) / a0,
		B2: (1 - cw) / 2 / a0,
		A1: -2 * cw / a0,
		A2: (1 - alpha) / a0,
	}
}

func TestFiltFiltZeroPhaseImpulseSymmetry(t *testing.T) {
	const (
		length = 1024
		center = length / 2
	)

	input := make([]float64, length)
	input[center] = 1

	out := FiltFilt([]Coefficients{lowpassTestCoeffs()}, input)
	if len(out) != length {
		t.Fatalf("length = %d, want %d", len(out), length)
	}

	// Forward-backward filtering has zero phase, so the impulse response
	// must be symmetric around the impulse position.
	for k := 1; k < 100; k++ {
		d := math.Abs(out[center+k] - out[center-k])
		if d > 1e-9 {
			t.Fatalf("asymmetry at offset %d: %v", k, d)
		}
	}
}

func TestFiltFiltPassbandNearIdentity(t *testing.T) {
	// A 0.01*fs sine lies far inside the 0.1*fs lowpass passband; after
	// the edge transient the zero-phase output must track the input.
	const length = 4096

	input := make([]float64, length)
	for i := range input {
		input[i] = math.Sin(2 * math.Pi * 0.01 * float64(i))
	}

	out := FiltFilt([]Coefficients{lowpassTestCoeffs()}, input)

	for i := 200; i < length-200; i++ {
		if d := math.Abs(out[i] - input[i]); d > 0.02 {
			t.Fatalf("sample %d: diff %v too large", i, d)
		}
	}
}

func TestFiltFiltDoesNotMutateInput(t *testing.T) {
	input := []float64{1, 2, 3, 4}
	saved := append([]float64(nil), input...)

	_ = FiltFilt([]Coefficients{lowpassTestCoeffs()}, input)

	for i := range input {
		if input[i] != saved[i] {
			t.Fatal("FiltFilt mutated its input")
		}
	}
}

func TestFiltFiltEmpty(t *testing.T) {
	if out := FiltFilt([]Coefficients{lowpassTestCoeffs()}, nil); len(out) != 0 {
		t.Fatalf("expected empty output, got %d samples", len(out))
	}

	input := []float64{1, 2}
	out := FiltFilt(nil, input)
	for i := range input {
		if out[i] != input[i] {
			t.Fatal("empty cascade must be identity")
		}
	}
}
