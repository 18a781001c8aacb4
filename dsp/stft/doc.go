// Package stft provides short-time Fourier analysis and overlap-add
// synthesis for frame-based spectral processing.
//
// The core correctness property is round-trip identity: Synthesize applied
// to unmodified Analyze frames reproduces the input waveform to within
// floating-point tolerance (after trimming to the original length).
package stft
