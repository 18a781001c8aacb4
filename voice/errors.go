package voice

import "errors"

var (
	// ErrEmptyInput indicates an empty input buffer.
	ErrEmptyInput = errors.New("voice: empty input")
	// ErrInvalidSampleRate indicates a sample rate that is not positive and
	// finite, or too low for the fixed brightness filter.
	ErrInvalidSampleRate = errors.New("voice: invalid sample rate")
	// ErrNumericInstability indicates that processing produced NaN or Inf
	// samples.
	ErrNumericInstability = errors.New("voice: numeric instability")
)
