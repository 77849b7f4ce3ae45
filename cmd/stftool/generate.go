package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/algo-stft/dsp/dither"
	"github.com/cwbudde/algo-stft/dsp/signal"
	"github.com/cwbudde/algo-stft/dsp/stream"
	"github.com/cwbudde/algo-stft/internal/wavio"
	"github.com/spf13/cobra"
)

type generateOptions struct {
	kind       string
	sampleRate int
	seconds    float64
	freq       float64
	amplitude  float64
	harmonics  int
	seed       int64
}

func newGenerateCmd(a *app) *cobra.Command {
	opts := generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate OUT.wav",
		Short: "Write a deterministic test signal (sine, harmonic or noise)",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.generate(args[0], opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.kind, "kind", "harmonic", "signal kind: sine, harmonic or noise")
	f.IntVar(&opts.sampleRate, "sample-rate", 16000, "sample rate in Hz")
	f.Float64Var(&opts.seconds, "seconds", 1, "duration in seconds")
	f.Float64Var(&opts.freq, "freq", 220, "frequency (fundamental for harmonic) in Hz")
	f.Float64Var(&opts.amplitude, "amplitude", 0.5, "peak amplitude")
	f.IntVar(&opts.harmonics, "harmonics", 10, "number of partials for harmonic")
	f.Int64Var(&opts.seed, "seed", 1, "noise seed")
	f.IntVar(&a.flags.Output.BitDepth, "bit-depth", a.flags.Output.BitDepth, "output bits per sample (8, 16, 24 or 32)")
	f.StringVar(&a.flags.Output.Dither, "dither", a.flags.Output.Dither, "dither before quantizing: none, rectangular or triangular")
	return cmd
}

func (a *app) generate(outPath string, opts generateOptions) error {
	n := int(opts.seconds * float64(opts.sampleRate))
	if n <= 0 {
		return fmt.Errorf("duration %gs at %d Hz yields no samples", opts.seconds, opts.sampleRate)
	}

	g, err := signal.NewGenerator(float64(opts.sampleRate), signal.WithSeed(opts.seed))
	if err != nil {
		return err
	}

	var src stream.Source[float64]
	switch opts.kind {
	case "sine":
		src = g.Sine(opts.freq, opts.amplitude)
	case "harmonic":
		src, err = g.Harmonics(opts.freq, 1, opts.harmonics)
	case "noise":
		src, err = g.WhiteNoise(opts.amplitude)
	default:
		return fmt.Errorf("unknown signal kind %q", opts.kind)
	}
	if err != nil {
		return err
	}

	samples, err := stream.Collect(stream.Take(src, n))
	if err != nil {
		return err
	}
	if opts.kind == "harmonic" {
		// The partial sum can exceed 1; bring the peak to the requested level.
		if samples, err = signal.Normalize(samples, opts.amplitude); err != nil {
			return err
		}
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()
	written, err := wavio.Write(out, opts.sampleRate, a.cfg.Output.BitDepth, stream.FromSlice(samples),
		append(a.ditherOptions(), dither.WithSeed(uint64(opts.seed)))...)
	if err != nil {
		return err
	}

	a.log.Info("signal written", "path", outPath, "kind", opts.kind, "samples", written, "sample_rate", opts.sampleRate)
	return out.Close()
}
