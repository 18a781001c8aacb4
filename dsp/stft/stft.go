package stft

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-voice/dsp/spectrum"
	"github.com/cwbudde/algo-voice/dsp/window"
	algofft "github.com/MeKo-Christian/algo-fft"
)

const (
	minFrameSize = 64
	normFloor    = 1e-12
)

var (
	// ErrEmptyInput indicates an empty input buffer.
	ErrEmptyInput = errors.New("stft: empty input")
	// ErrNoFrames indicates an empty frame sequence passed to synthesis.
	ErrNoFrames = errors.New("stft: no frames")
)

// Frame holds the half spectrum (frameSize/2+1 bins) of one analysis window.
type Frame struct {
	Bins []complex128
}

// Magnitude returns |X[k]| per bin.
func (f Frame) Magnitude() []float64 {
	return spectrum.Magnitude(f.Bins)
}

// Phase returns arg(X[k]) per bin in radians.
func (f Frame) Phase() []float64 {
	return spectrum.Phase(f.Bins)
}

// Transform performs windowed short-time analysis and overlap-add synthesis.
//
// A Transform is cheap to create and holds no data-dependent state between
// calls; concurrent use from multiple goroutines is not supported because
// the FFT work buffers are shared per instance.
type Transform struct {
	frameSize int
	hopSize   int

	windowType window.Type

	plan         *algofft.Plan[complex128]
	windowCoeffs []float64

	timeFrame []complex128
	specFrame []complex128
}

// Option configures a Transform.
type Option func(*Transform)

// WithWindowType selects the analysis/synthesis window shape.
// The default is a periodic Hann window.
func WithWindowType(t window.Type) Option {
	return func(tr *Transform) {
		tr.windowType = t
	}
}

// New creates a Transform for the given frame and hop sizes.
//
// frameSize must be a power of two and at least 64. hopSize must satisfy
// 1 <= hopSize <= frameSize/2 so that synthesis frames overlap by at least
// 50%, the condition under which the overlap-add envelope fully covers the
// signal.
func New(frameSize, hopSize int, opts ...Option) (*Transform, error) {
	if frameSize < minFrameSize || !isPowerOf2(frameSize) {
		return nil, fmt.Errorf("stft: frame size must be power-of-two and >= %d: %d", minFrameSize, frameSize)
	}

	if hopSize < 1 || hopSize > frameSize/2 {
		return nil, fmt.Errorf("stft: hop size must be in [1, %d]: %d", frameSize/2, hopSize)
	}

	tr := &Transform{
		frameSize:  frameSize,
		hopSize:    hopSize,
		windowType: window.TypeHann,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(tr)
		}
	}

	plan, err := algofft.NewPlan64(frameSize)
	if err != nil {
		return nil, fmt.Errorf("stft: failed to create FFT plan: %w", err)
	}

	tr.plan = plan
	tr.windowCoeffs = window.Generate(tr.windowType, frameSize, window.WithPeriodic())
	tr.timeFrame = make([]complex128, frameSize)
	tr.specFrame = make([]complex128, frameSize)

	return tr, nil
}

// FrameSize returns the analysis frame length in samples.
func (tr *Transform) FrameSize() int { return tr.frameSize }

// HopSize returns the frame advance in samples.
func (tr *Transform) HopSize() int { return tr.hopSize }

// Bins returns the half-spectrum bin count (frameSize/2 + 1).
func (tr *Transform) Bins() int { return tr.frameSize/2 + 1 }

// Analyze slides the analysis window over input and returns one spectral
// frame per hop. The final partial frame is zero-padded to frameSize.
func (tr *Transform) Analyze(input []float64) ([]Frame, error) {
	if len(input) == 0 {
		return nil, ErrEmptyInput
	}

	frameCount := 1 + (len(input)-1)/tr.hopSize
	half := tr.frameSize / 2
	frames := make([]Frame, frameCount)

	for frame := range frameCount {
		pos := frame * tr.hopSize

		for i := range tr.frameSize {
			x := 0.0

			idx := pos + i
			if idx < len(input) {
				x = input[idx]
			}

			tr.timeFrame[i] = complex(x*tr.windowCoeffs[i], 0)
		}

		err := tr.plan.Forward(tr.specFrame, tr.timeFrame)
		if err != nil {
			return nil, fmt.Errorf("stft: forward FFT failed: %w", err)
		}

		bins := make([]complex128, half+1)
		copy(bins, tr.specFrame[:half+1])
		frames[frame] = Frame{Bins: bins}
	}

	return frames, nil
}

// Synthesize reconstructs a waveform from spectral frames by inverse
// transform, synthesis windowing and overlap-add. The accumulated squared
// window envelope is divided out to cancel amplitude ripple at frame
// boundaries.
//
// The output length is (len(frames)-1)*hopSize + frameSize; callers that
// require exact-length output trim to the original sample count.
//
// Sample positions whose accumulated window weight stays below the floor
// remain zero. With the default periodic Hann window this affects exactly
// sample 0: the window opens at zero there, so that sample carries no
// analysis weight and cannot be reconstructed.
func (tr *Transform) Synthesize(frames []Frame) ([]float64, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}

	half := tr.frameSize / 2
	outLen := (len(frames)-1)*tr.hopSize + tr.frameSize
	output := make([]float64, outLen)
	norm := make([]float64, outLen)

	for frame, f := range frames {
		if len(f.Bins) != half+1 {
			return nil, fmt.Errorf("stft: frame %d has %d bins, want %d", frame, len(f.Bins), half+1)
		}

		// Rebuild the full conjugate-symmetric spectrum for a real IFFT.
		tr.specFrame[0] = complex(real(f.Bins[0]), 0)

		tr.specFrame[half] = complex(real(f.Bins[half]), 0)
		for k := 1; k < half; k++ {
			v := f.Bins[k]
			tr.specFrame[k] = v
			tr.specFrame[tr.frameSize-k] = complex(real(v), -imag(v))
		}

		err := tr.plan.Inverse(tr.timeFrame, tr.specFrame)
		if err != nil {
			return nil, fmt.Errorf("stft: inverse FFT failed: %w", err)
		}

		pos := frame * tr.hopSize
		for i := range tr.frameSize {
			w := tr.windowCoeffs[i]
			output[pos+i] += real(tr.timeFrame[i]) * w
			norm[pos+i] += w * w
		}
	}

	for i := range output {
		if norm[i] > normFloor {
			output[i] /= norm[i]
		}
	}

	return output, nil
}

// Analyze is a one-shot helper wrapping Transform.Analyze.
func Analyze(input []float64, frameSize, hopSize int, opts ...Option) ([]Frame, error) {
	tr, err := New(frameSize, hopSize, opts...)
	if err != nil {
		return nil, err
	}

	return tr.Analyze(input)
}

// Synthesize is a one-shot helper wrapping Transform.Synthesize.
func Synthesize(frames []Frame, frameSize, hopSize int, opts ...Option) ([]float64, error) {
	tr, err := New(frameSize, hopSize, opts...)
	if err != nil {
		return nil, err
	}

	return tr.Synthesize(frames)
}

func isPowerOf2(v int) bool {
	return v > 0 && (v&(v-1)) == 0
}
