// Package resample provides rational sample-rate conversion using
// polyphase FIR filtering with Kaiser-windowed sinc anti-aliasing.
//
// Common workflows:
//   - NewRational(up, down, opts...)
//   - NewForRates(inRate, outRate, opts...)
//   - Resample(input, up, down, opts...)
package resample
