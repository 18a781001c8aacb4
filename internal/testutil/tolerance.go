package testutil

import (
	"math"
	"testing"
)

// MaxAbsDiff returns the largest absolute elementwise difference between a
// and b. Slices must have equal length.
func MaxAbsDiff(a, b []float64) float64 {
	maxDiff := 0.0

	for i := range a {
		if d := math.Abs(a[i] - b[i]); d > maxDiff {
			maxDiff = d
		}
	}

	return maxDiff
}

// RequireSliceNearlyEqual fails the test when got and want differ in length
// or any element differs by more than tol.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, tol float64, msg string) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("%s: length mismatch: got %d, want %d", msg, len(got), len(want))
	}

	for i := range got {
		if math.Abs(got[i]-want[i]) > tol {
			t.Fatalf("%s: index %d: got %v, want %v (tol %v)", msg, i, got[i], want[i], tol)
		}
	}
}

// RequireFinite fails the test when any element of values is NaN or Inf.
func RequireFinite(t *testing.T, values []float64, msg string) {
	t.Helper()

	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("%s: non-finite value %v at index %d", msg, v, i)
		}
	}
}

// DominantFrequencyHz estimates the strongest frequency in signal by scanning
// a Goertzel-style projection over candidate frequencies with the given step.
func DominantFrequencyHz(signal []float64, sampleRate, minHz, maxHz, stepHz float64) float64 {
	bestFreq := minHz
	bestPower := -1.0

	for f := minHz; f <= maxHz; f += stepHz {
		var re, im float64

		w := 2 * math.Pi * f / sampleRate
		for i, v := range signal {
			s, c := math.Sincos(w * float64(i))
			re += v * c
			im += v * s
		}

		if p := re*re + im*im; p > bestPower {
			bestPower = p
			bestFreq = f
		}
	}

	return bestFreq
}
