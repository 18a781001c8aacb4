// Command voiceconv applies the voice feminization pipeline to a WAV file.
//
// Usage:
//
//	voiceconv [flags] input.wav output.wav
//
// The input is down-mixed to mono and resampled to the processing rate
// before conversion; the output is written as 16-bit mono PCM.
//
// Examples:
//
//	voiceconv in.wav out.wav
//	voiceconv -semitones 5 -formant 1.25 in.wav out.wav
//	voiceconv -preset natural in.wav out.wav
//	voiceconv -presets my-presets.yaml -preset soft in.wav out.wav
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-voice/dsp/resample"
	"github.com/cwbudde/algo-voice/voice"
)

// preset is one named parameter set, either built in or loaded from YAML.
type preset struct {
	Semitones  float64 `yaml:"semitones"`
	Formant    float64 `yaml:"formant"`
	Brightness float64 `yaml:"brightness"`
}

var builtinPresets = map[string]preset{
	"default": {Semitones: 4.0, Formant: 1.2, Brightness: 1.1},
	"natural": {Semitones: 3.0, Formant: 1.1, Brightness: 1.0},
	"high":    {Semitones: 6.0, Formant: 1.3, Brightness: 1.2},
}

func main() {
	semitones := flag.Float64("semitones", 4.0, "pitch shift in semitones")
	formant := flag.Float64("formant", 1.2, "formant shift factor")
	brightness := flag.Float64("brightness", 1.1, "brightness (timbre stage engages above 1.0)")
	rate := flag.Int("rate", 22050, "processing sample rate in Hz")
	presetName := flag.String("preset", "", "named parameter preset (see -list-presets)")
	presetsFile := flag.String("presets", "", "YAML file with additional presets")
	listPresets := flag.Bool("list-presets", false, "list available presets and exit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: voiceconv [flags] input.wav output.wav\n\n")
		fmt.Fprintf(os.Stderr, "Applies pitch, formant and timbre conversion to a WAV file.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  voiceconv in.wav out.wav\n")
		fmt.Fprintf(os.Stderr, "  voiceconv -semitones 5 -formant 1.25 in.wav out.wav\n")
		fmt.Fprintf(os.Stderr, "  voiceconv -preset natural in.wav out.wav\n")
	}
	flag.Parse()

	presets, err := loadPresets(*presetsFile)
	if err != nil {
		fatal(err)
	}

	if *listPresets {
		printPresets(presets)
		return
	}

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	params := voice.Parameters{
		PitchShiftSemitones: *semitones,
		FormantShiftFactor:  *formant,
		Brightness:          *brightness,
	}

	if *presetName != "" {
		p, ok := presets[*presetName]
		if !ok {
			fatal(fmt.Errorf("unknown preset %q (use -list-presets to see available)", *presetName))
		}

		params = applyPreset(p, params)
	}

	err = run(flag.Arg(0), flag.Arg(1), *rate, params)
	if err != nil {
		fatal(err)
	}
}

func run(inPath, outPath string, rate int, params voice.Parameters) error {
	if rate <= 0 {
		return fmt.Errorf("processing rate must be positive: %d", rate)
	}

	samples, srcRate, err := readWAV(inPath)
	if err != nil {
		return err
	}

	if srcRate != rate {
		r, err := resample.NewForRates(float64(srcRate), float64(rate))
		if err != nil {
			return fmt.Errorf("resample %d Hz to %d Hz: %w", srcRate, rate, err)
		}

		samples = r.Process(samples)
	}

	out, err := voice.Convert(samples, float64(rate), params)
	if err != nil {
		return err
	}

	return writeWAV(outPath, out, rate)
}

// readWAV decodes a WAV file into mono float64 samples in [-1, 1].
// Multi-channel audio is down-mixed by channel averaging.
func readWAV(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", path, err)
	}

	channels := buf.Format.NumChannels
	if channels <= 0 {
		return nil, 0, fmt.Errorf("decode %s: no channels", path)
	}

	bits := buf.SourceBitDepth
	if bits <= 0 {
		bits = 16
	}

	scale := 1 / float64(int64(1)<<(bits-1))

	frames := len(buf.Data) / channels
	samples := make([]float64, frames)

	for i := range frames {
		sum := 0.0
		for ch := range channels {
			sum += float64(buf.Data[i*channels+ch])
		}

		samples[i] = sum / float64(channels) * scale
	}

	if len(samples) == 0 {
		return nil, 0, fmt.Errorf("decode %s: no samples", path)
	}

	return samples, buf.Format.SampleRate, nil
}

// writeWAV encodes mono float64 samples as a 16-bit PCM WAV file.
func writeWAV(path string, samples []float64, rate int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := &audio.IntBuffer{
		Data:           make([]int, len(samples)),
		Format:         &audio.Format{SampleRate: rate, NumChannels: 1},
		SourceBitDepth: 16,
	}

	for i, v := range samples {
		v = math.Max(-1, math.Min(1, v))
		buf.Data[i] = int(math.Round(v * 32767))
	}

	enc := wav.NewEncoder(f, rate, 16, 1, 1)

	err = enc.Write(buf)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	return enc.Close()
}

// loadPresets merges YAML-defined presets over the built-in ones.
func loadPresets(path string) (map[string]preset, error) {
	presets := make(map[string]preset, len(builtinPresets))
	for name, p := range builtinPresets {
		presets[name] = p
	}

	if path == "" {
		return presets, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var loaded map[string]preset

	err = yaml.Unmarshal(data, &loaded)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	for name, p := range loaded {
		presets[name] = p
	}

	return presets, nil
}

// applyPreset merges a preset into params, letting explicitly set flags win.
func applyPreset(p preset, params voice.Parameters) voice.Parameters {
	explicit := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		explicit[f.Name] = true
	})

	if !explicit["semitones"] {
		params.PitchShiftSemitones = p.Semitones
	}

	if !explicit["formant"] {
		params.FormantShiftFactor = p.Formant
	}

	if !explicit["brightness"] {
		params.Brightness = p.Brightness
	}

	return params
}

func printPresets(presets map[string]preset) {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		p := presets[name]
		fmt.Printf("%-12s semitones=%.1f formant=%.2f brightness=%.2f\n",
			name, p.Semitones, p.Formant, p.Brightness)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
