package main

import (
	"io"
	"log/slog"

	"github.com/cwbudde/algo-stft/dsp/core"
	"github.com/cwbudde/algo-stft/dsp/dither"
	"github.com/cwbudde/algo-stft/dsp/stft"
	"github.com/cwbudde/algo-stft/internal/config"
	"github.com/spf13/cobra"
)

// app is the state shared by all subcommands once the root pre-run has
// resolved the configuration.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	verbose    bool
	flags      config.Config

	cfg    *config.Config
	params core.Params
	log    *slog.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr, flags: config.Default()}

	root := &cobra.Command{
		Use:           "stftool",
		Short:         "Streaming STFT resynthesis and cepstral envelope analysis",
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML config file (default: ./"+config.DefaultPath+" if present)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log at debug level")
	pf.IntVarP(&a.flags.Analysis.FrameLength, "frame-length", "l", a.flags.Analysis.FrameLength, "frame length in samples (even)")
	pf.IntVarP(&a.flags.Analysis.FrameShift, "frame-shift", "s", a.flags.Analysis.FrameShift, "hop between frames in samples")
	pf.IntVar(&a.flags.Analysis.CutoffRatio, "cutoff-ratio", a.flags.Analysis.CutoffRatio, "band-limit the spectrum to frame-length/ratio bins before the cepstrum")
	pf.IntVarP(&a.flags.Analysis.Order, "order", "o", a.flags.Analysis.Order, "number of cepstral coefficients")
	pf.BoolVar(&a.flags.Analysis.IncludeZeroth, "zeroth", a.flags.Analysis.IncludeZeroth, "keep the zeroth (log-energy) coefficient")
	pf.IntVarP(&a.flags.Analysis.Channel, "channel", "c", a.flags.Analysis.Channel, "zero-based input channel")

	root.AddCommand(
		newResynthCmd(a),
		newCepstrumCmd(a),
		newEnvelopeCmd(a),
		newInfoCmd(a),
		newGenerateCmd(a),
	)

	return root
}

// setup loads the configuration, lets explicitly set flags win over it and
// builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Read(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	overrides := []struct {
		name string
		dst  *int
		src  int
	}{
		{"frame-length", &cfg.Analysis.FrameLength, a.flags.Analysis.FrameLength},
		{"frame-shift", &cfg.Analysis.FrameShift, a.flags.Analysis.FrameShift},
		{"cutoff-ratio", &cfg.Analysis.CutoffRatio, a.flags.Analysis.CutoffRatio},
		{"order", &cfg.Analysis.Order, a.flags.Analysis.Order},
		{"channel", &cfg.Analysis.Channel, a.flags.Analysis.Channel},
		{"bit-depth", &cfg.Output.BitDepth, a.flags.Output.BitDepth},
	}
	for _, o := range overrides {
		if flags.Lookup(o.name) != nil && flags.Changed(o.name) {
			*o.dst = o.src
		}
	}
	if flags.Changed("zeroth") {
		cfg.Analysis.IncludeZeroth = a.flags.Analysis.IncludeZeroth
	}
	if flags.Lookup("half") != nil && flags.Changed("half") {
		cfg.Analysis.HalfSpectrum = a.flags.Analysis.HalfSpectrum
	}
	if flags.Lookup("dither") != nil && flags.Changed("dither") {
		cfg.Output.Dither = a.flags.Output.Dither
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	if a.verbose {
		level = slog.LevelDebug
	}

	a.cfg = cfg
	a.params, err = cfg.Params()
	if err != nil {
		return err
	}
	a.log = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
	a.log.Debug("configuration resolved",
		"frame_length", a.params.FrameLength,
		"frame_shift", a.params.FrameShift,
		"cutoff_ratio", a.params.CutoffRatio,
		"order", a.params.Order,
		"include_zeroth", a.params.IncludeZeroth,
		"half_spectrum", cfg.Analysis.HalfSpectrum,
		"dither", cfg.Output.Dither,
	)
	return nil
}

// ditherOptions selects the configured dither noise. The configuration has
// been validated by setup, so the type always parses.
func (a *app) ditherOptions() []dither.Option {
	dt, err := a.cfg.DitherType()
	if err != nil {
		return nil
	}
	return []dither.Option{dither.WithDitherType(dt)}
}

func (a *app) stftOptions() []stft.Option {
	if a.cfg.Analysis.HalfSpectrum {
		return []stft.Option{stft.WithHalfSpectrum()}
	}
	return nil
}
