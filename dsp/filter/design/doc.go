// Package design computes biquad coefficients for common filter shapes:
// RBJ cookbook lowpass/highpass sections and Butterworth cascades built
// from them.
package design
