package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/algo-stft/dsp/cepstrum"
	"github.com/cwbudde/algo-stft/dsp/stft"
	"github.com/cwbudde/algo-stft/internal/csvio"
	"github.com/spf13/cobra"
)

type envelopeOptions struct {
	frame  int
	points int
}

func newEnvelopeCmd(a *app) *cobra.Command {
	var opts envelopeOptions
	cmd := &cobra.Command{
		Use:   "envelope IN.wav OUT.csv",
		Short: "Write the log-power spectrum and cepstral envelope of one frame as CSV",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.envelope(args[0], args[1], opts)
		},
	}
	cmd.Flags().IntVar(&opts.frame, "frame", 0, "zero-based frame index")
	cmd.Flags().IntVar(&opts.points, "points", 0, "restore the envelope on this many points instead of the cepstrum length")
	return cmd
}

func (a *app) envelope(inPath, outPath string, opts envelopeOptions) error {
	if opts.frame < 0 {
		return fmt.Errorf("frame index %d is negative", opts.frame)
	}

	in, closeIn, err := a.openInput(inPath)
	if err != nil {
		return err
	}
	defer closeIn()

	p := a.params
	codec, err := cepstrum.NewCodec(p.FrameLength, p.CutoffRatio)
	if err != nil {
		return err
	}
	an, err := stft.NewAnalyzer(in, p.FrameLength, p.FrameShift)
	if err != nil {
		return err
	}

	var spec []complex128
	for k := 0; k <= opts.frame; k++ {
		s, ok := an.Next()
		if !ok {
			if err := an.Err(); err != nil {
				return err
			}
			return fmt.Errorf("frame %d out of range: input has %d frames", opts.frame, k)
		}
		spec = s
	}

	logspec, err := codec.LogPowerSpectrum(spec)
	if err != nil {
		return err
	}
	v, err := codec.Vector(spec, p.Order, p.IncludeZeroth)
	if err != nil {
		return err
	}
	points := codec.Len()
	if opts.points > 0 {
		points = opts.points
	}
	env, err := codec.RestoreLogSpectrum(v, points)
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := csvio.WriteWithHeader(out, []string{"log_power_db", "envelope_db"}, logspec, env); err != nil {
		return err
	}

	a.log.Info("envelope written", "path", outPath, "frame", opts.frame, "bins", len(logspec), "points", len(env))
	return out.Close()
}
