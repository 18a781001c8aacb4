// Package window provides tapering windows for short-time spectral analysis.
//
// Supported families: rectangular, Hann, Hamming, Blackman, each in
// symmetric or periodic (FFT framing) form.
package window
