package voice

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-voice/dsp/spectrum"
	"github.com/cwbudde/algo-voice/dsp/stft"
)

// pitchIdentityEps is the semitone threshold below which the shifter
// bypasses processing entirely.
const pitchIdentityEps = 1e-12

// PitchShifter performs phase-vocoder pitch shifting.
//
// The shifter relocates spectral bins by the pitch ratio with linear
// interpolation and accumulates per-bin phase from the instantaneous
// frequency estimate, keeping the analysis and synthesis hops equal so the
// output duration always matches the input exactly.
//
// This processor is mono, one-shot buffer oriented, and not thread-safe.
type PitchShifter struct {
	sampleRate float64
	semitones  float64

	transform *stft.Transform

	omega     []float64
	prevPhase []float64
	sumPhase  []float64

	magnitudes  []float64
	instFreqs   []float64
	shiftedMag  []float64
	shiftedFreq []float64
}

// NewPitchShifter creates a pitch shifter for the given sample rate.
func NewPitchShifter(sampleRate float64, opts ...Option) (*PitchShifter, error) {
	if !isFinitePositive(sampleRate) {
		return nil, fmt.Errorf("%w: %f", ErrInvalidSampleRate, sampleRate)
	}

	cfg := applyOptions(opts)

	tr, err := stft.New(cfg.frameSize, cfg.hopSize)
	if err != nil {
		return nil, fmt.Errorf("voice: pitch shifter: %w", err)
	}

	p := &PitchShifter{
		sampleRate: sampleRate,
		transform:  tr,
	}

	bins := tr.Bins()

	p.omega = make([]float64, bins)
	for k := range bins {
		p.omega[k] = 2 * math.Pi * float64(k) / float64(cfg.frameSize)
	}

	p.prevPhase = make([]float64, bins)
	p.sumPhase = make([]float64, bins)
	p.magnitudes = make([]float64, bins)
	p.instFreqs = make([]float64, bins)
	p.shiftedMag = make([]float64, bins)
	p.shiftedFreq = make([]float64, bins)

	return p, nil
}

// SampleRate returns the configured sample rate in Hz.
func (p *PitchShifter) SampleRate() float64 { return p.sampleRate }

// Semitones returns the configured pitch shift in semitones.
func (p *PitchShifter) Semitones() float64 { return p.semitones }

// Ratio returns the frequency ratio realized by the configured shift.
func (p *PitchShifter) Ratio() float64 { return math.Pow(2, p.semitones/12) }

// SetSemitones updates the pitch shift. The magnitude must not exceed two
// octaves.
func (p *PitchShifter) SetSemitones(semitones float64) error {
	if math.IsNaN(semitones) || math.Abs(semitones) > maxPitchSemitones {
		return fmt.Errorf("voice: pitch shift must be in [-%g, %g] semitones: %f",
			maxPitchSemitones, maxPitchSemitones, semitones)
	}

	p.semitones = semitones

	return nil
}

// Reset clears phase tracking state.
func (p *PitchShifter) Reset() {
	for i := range p.prevPhase {
		p.prevPhase[i] = 0
		p.sumPhase[i] = 0
	}
}

// Process applies pitch shifting to input and returns a new slice with the
// same length. A zero shift returns an exact copy of the input.
func (p *PitchShifter) Process(input []float64) ([]float64, error) {
	if len(input) == 0 {
		return nil, ErrEmptyInput
	}

	if math.Abs(p.semitones) < pitchIdentityEps {
		out := make([]float64, len(input))
		copy(out, input)

		return out, nil
	}

	frames, err := p.transform.Analyze(input)
	if err != nil {
		return nil, fmt.Errorf("voice: pitch shifter: %w", err)
	}

	p.Reset()

	half := p.transform.FrameSize() / 2
	hopF := float64(p.transform.HopSize())
	ratio := p.Ratio()

	for _, f := range frames {
		// Magnitudes and instantaneous frequencies from the phase delta
		// against the expected bin advance.
		for k := 0; k <= half; k++ {
			re := real(f.Bins[k])
			im := imag(f.Bins[k])
			p.magnitudes[k] = math.Hypot(re, im)
			phase := math.Atan2(im, re)

			delta := spectrum.WrapPhase(phase - p.prevPhase[k] - p.omega[k]*hopF)

			p.instFreqs[k] = p.omega[k] + delta/hopF
			p.prevPhase[k] = phase
		}

		// Bin shifting with linear interpolation.
		for k := 0; k <= half; k++ {
			srcK := float64(k) / ratio
			if srcK >= float64(half) {
				p.shiftedMag[k] = 0
				p.shiftedFreq[k] = p.omega[k]

				continue
			}

			lo := int(srcK)
			frac := srcK - float64(lo)
			hi := min(lo+1, half)
			p.shiftedMag[k] = p.magnitudes[lo]*(1-frac) + p.magnitudes[hi]*frac
			p.shiftedFreq[k] = (p.instFreqs[lo]*(1-frac) + p.instFreqs[hi]*frac) * ratio
		}

		// Per-bin phase accumulation. Analysis and synthesis hops are equal,
		// so no phase locking is required.
		for k := 0; k <= half; k++ {
			p.sumPhase[k] += p.shiftedFreq[k] * hopF
			s, c := math.Sincos(p.sumPhase[k])
			f.Bins[k] = complex(p.shiftedMag[k]*c, p.shiftedMag[k]*s)
		}
	}

	out, err := p.transform.Synthesize(frames)
	if err != nil {
		return nil, fmt.Errorf("voice: pitch shifter: %w", err)
	}

	return fitLength(out, len(input)), nil
}

func fitLength(in []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, in)

	return out
}
