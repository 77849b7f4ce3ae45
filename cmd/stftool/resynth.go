package main

import (
	"os"

	"github.com/cwbudde/algo-stft/dsp/stft"
	"github.com/cwbudde/algo-stft/dsp/stream"
	"github.com/cwbudde/algo-stft/internal/wavio"
	"github.com/spf13/cobra"
)

func newResynthCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resynth IN.wav OUT.wav",
		Short: "Analyse and resynthesize a WAV file through the STFT",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.resynth(args[0], args[1])
		},
	}
	cmd.Flags().BoolVar(&a.flags.Analysis.HalfSpectrum, "half", a.flags.Analysis.HalfSpectrum, "carry only the non-negative frequency bins")
	cmd.Flags().IntVar(&a.flags.Output.BitDepth, "bit-depth", a.flags.Output.BitDepth, "output bits per sample (8, 16, 24 or 32)")
	cmd.Flags().StringVar(&a.flags.Output.Dither, "dither", a.flags.Output.Dither, "dither before quantizing: none, rectangular or triangular")
	return cmd
}

func (a *app) resynth(inPath, outPath string) error {
	in, closeIn, err := a.openInput(inPath)
	if err != nil {
		return err
	}
	defer closeIn()

	p := a.params
	an, err := stft.NewAnalyzer(in, p.FrameLength, p.FrameShift, a.stftOptions()...)
	if err != nil {
		return err
	}
	syn, err := stft.NewSynthesizer(an, p.FrameLength, p.FrameShift, a.stftOptions()...)
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	// The synthesizer runs up to one hop past the input; trim to its length.
	n, err := wavio.Write(out, in.SampleRate(), a.cfg.Output.BitDepth, stream.Take[float64](syn, in.Len()), a.ditherOptions()...)
	if err != nil {
		return err
	}
	if err := syn.Err(); err != nil {
		return err
	}

	a.log.Info("resynthesis written", "path", outPath, "samples", n, "gain", stft.Gain(p.FrameLength, p.FrameShift))
	return out.Close()
}
