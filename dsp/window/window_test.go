package window

import (
	"math"
	"testing"
)

func TestGenerateSymmetric(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		mid  float64
		edge float64
	}{
		{name: "rectangular", typ: TypeRectangular, mid: 1, edge: 1},
		{name: "hann", typ: TypeHann, mid: 1, edge: 0},
		{name: "hamming", typ: TypeHamming, mid: 1, edge: 0.08},
		{name: "blackman", typ: TypeBlackman, mid: 1, edge: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const size = 65

			coeffs := Generate(tt.typ, size)
			if len(coeffs) != size {
				t.Fatalf("len = %d, want %d", len(coeffs), size)
			}

			if got := coeffs[size/2]; math.Abs(got-tt.mid) > 1e-12 {
				t.Fatalf("mid = %v, want %v", got, tt.mid)
			}

			if got := coeffs[0]; math.Abs(got-tt.edge) > 1e-12 {
				t.Fatalf("edge = %v, want %v", got, tt.edge)
			}

			for i := range size {
				if d := math.Abs(coeffs[i] - coeffs[size-1-i]); d > 1e-12 {
					t.Fatalf("asymmetry at %d: %v", i, d)
				}
			}
		})
	}
}

func TestGeneratePeriodicOverlapAdd(t *testing.T) {
	// Periodic Hann windows summed at 50% overlap must be flat: this is
	// the constant-overlap-add condition the STFT engine relies on.
	const (
		size = 64
		hop  = size / 2
	)

	coeffs := Generate(TypeHann, size, WithPeriodic())

	sum := make([]float64, size*4)
	for pos := 0; pos+size <= len(sum); pos += hop {
		for i, w := range coeffs {
			sum[pos+i] += w
		}
	}

	for i := size; i < len(sum)-size; i++ {
		if math.Abs(sum[i]-1) > 1e-12 {
			t.Fatalf("overlap-add sum at %d = %v, want 1", i, sum[i])
		}
	}
}

func TestGenerateInvalidLength(t *testing.T) {
	if got := Generate(TypeHann, 0); got != nil {
		t.Fatalf("Generate(0) = %v, want nil", got)
	}

	if got := Generate(TypeHann, -3); got != nil {
		t.Fatalf("Generate(-3) = %v, want nil", got)
	}

	if _, err := Hann(0); err == nil {
		t.Fatal("expected error for zero size")
	}
}

func TestApplyCoefficients(t *testing.T) {
	samples := []float64{1, 1, 1, 1}
	coeffs := []float64{0.5, 1, 1, 0.5}

	out, err := ApplyCoefficients(samples, coeffs)
	if err != nil {
		t.Fatalf("ApplyCoefficients() error = %v", err)
	}

	for i := range out {
		if out[i] != coeffs[i] {
			t.Fatalf("index %d: got %v, want %v", i, out[i], coeffs[i])
		}
	}

	if samples[0] != 1 {
		t.Fatal("ApplyCoefficients mutated input")
	}

	if _, err := ApplyCoefficients(samples, coeffs[:2]); err == nil {
		t.Fatal("expected error for mismatched lengths")
	}
}

func TestApplyInPlace(t *testing.T) {
	buf := []float64{1, 1, 1, 1, 1, 1, 1, 1}
	want := Generate(TypeHamming, len(buf))

	Apply(TypeHamming, buf)

	for i := range buf {
		if math.Abs(buf[i]-want[i]) > 1e-15 {
			t.Fatalf("index %d: got %v, want %v", i, buf[i], want[i])
		}
	}
}
