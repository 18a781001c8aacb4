// Package biquad implements second-order IIR filter sections in Direct
// Form II Transposed, cascades of sections, and a zero-phase
// forward-backward pass built on them.
package biquad
