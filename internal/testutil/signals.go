// Package testutil provides deterministic signal generators and numeric
// assertion helpers shared by the package tests.
package testutil

import "math"

// DeterministicSine generates a sine wave with the given frequency in cycles
// per sample. The same arguments always yield the same samples.
func DeterministicSine(length int, freq float64) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i))
	}

	return out
}

// DeterministicSineAt generates a sine wave at freq Hz for the given sample
// rate with unit amplitude.
func DeterministicSineAt(length int, freq, sampleRate float64) []float64 {
	return DeterministicSine(length, freq/sampleRate)
}

// DeterministicNoise generates reproducible pseudo-random samples in [-1, 1)
// using a fixed linear congruential sequence seeded by seed.
func DeterministicNoise(length int, seed uint64) []float64 {
	state := seed*2862933555777941757 + 3037000493

	out := make([]float64, length)
	for i := range out {
		state = state*6364136223846793005 + 1442695040888963407
		out[i] = float64(int64(state>>11))/float64(1<<52) - 1
	}

	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, position int) []float64 {
	out := make([]float64, length)
	if position >= 0 && position < length {
		out[position] = 1
	}

	return out
}
