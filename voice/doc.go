// Package voice implements an offline voice feminization pipeline.
//
// The pipeline chains three frequency-domain stages over a mono float64
// buffer: phase-vocoder pitch shifting, spectral-envelope formant shifting
// and a high-frequency timbre blend, followed by peak normalization.
//
// Common workflows:
//   - Convert(input, sampleRate, params) for one-shot conversion
//   - NewConverter(sampleRate).Convert(input, params) for repeated use
//   - NewPitchShifter / NewFormantShifter / NewTimbreEnhancer for the
//     individual stages
package voice
