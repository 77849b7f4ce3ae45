package main

import (
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/cwbudde/algo-stft/dsp/stft"
	"github.com/cwbudde/algo-stft/dsp/window"
	"github.com/spf13/cobra"
)

const colaTolerance = 1e-9

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print the resolved parameters and the window overlap check",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return a.info()
		},
	}
}

func (a *app) info() error {
	p := a.params

	hann, err := window.Hann(p.FrameLength, window.WithPeriodic())
	if err != nil {
		return err
	}
	cola, level, err := window.IsCOLA(window.Squared(hann), p.FrameShift, colaTolerance)
	if err != nil {
		return err
	}
	gain := stft.Gain(p.FrameLength, p.FrameShift)
	win := window.Info(window.TypeHann)

	tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
	rows := []struct {
		name  string
		value any
	}{
		{"window", win.Name + " (periodic)"},
		{"window ENBW (bins)", fmt.Sprintf("%.3f", win.ENBW)},
		{"window coherent gain", fmt.Sprintf("%.3f", win.CoherentGain)},
		{"frame length", p.FrameLength},
		{"frame shift", p.FrameShift},
		{"cutoff ratio", p.CutoffRatio},
		{"cepstrum length", p.CepstrumLength()},
		{"order", p.Order},
		{"include zeroth", p.IncludeZeroth},
		{"half spectrum", a.cfg.Analysis.HalfSpectrum},
		{"output bit depth", a.cfg.Output.BitDepth},
		{"output dither", a.cfg.Output.Dither},
		{"synthesis gain", fmt.Sprintf("%.6f", gain)},
		{"hann^2 overlap level", fmt.Sprintf("%.6f", level)},
		{"hann^2 COLA", cola},
		{"unity reconstruction", cola && math.Abs(gain*level-1) <= colaTolerance},
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%v\n", r.name, r.value); err != nil {
			return err
		}
	}
	return tw.Flush()
}

