package biquad

// FiltFilt applies the cascade described by coeffs forward and then
// backward over input, cancelling the filter's phase response. The
// magnitude response is applied twice, so the effective attenuation is
// squared relative to a single pass.
//
// The result is a new slice; input is not modified. Filter state is not
// carried across calls, so edge transients decay within the impulse
// response length at both ends.
func FiltFilt(coeffs []Coefficients, input []float64) []float64 {
	out := make([]float64, len(input))
	copy(out, input)

	if len(out) == 0 || len(coeffs) == 0 {
		return out
	}

	chain := NewChain(coeffs)
	chain.ProcessBlock(out)

	reverse(out)
	chain.Reset()
	chain.ProcessBlock(out)
	reverse(out)

	return out
}

func reverse(buf []float64) {
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
}
