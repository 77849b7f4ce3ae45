package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-stft/dsp/cepstrum"
	"github.com/cwbudde/algo-stft/dsp/stft"
	"github.com/cwbudde/algo-stft/internal/csvio"
	"github.com/cwbudde/algo-stft/stats/feature"
	"github.com/spf13/cobra"
)

type cepstrumOptions struct {
	stats      bool
	covariance string
}

func newCepstrumCmd(a *app) *cobra.Command {
	var opts cepstrumOptions
	cmd := &cobra.Command{
		Use:   "cepstrum IN.wav OUT.csv",
		Short: "Write one cepstral vector per STFT frame as CSV",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.cepstrum(args[0], args[1], opts)
		},
	}
	cmd.Flags().BoolVar(&opts.stats, "stats", false, "print the per-coefficient mean and standard deviation")
	cmd.Flags().StringVar(&opts.covariance, "covariance", "", "write the coefficient covariance matrix to this CSV file")
	return cmd
}

func (a *app) coefficientNames() []string {
	first := 0
	if !a.params.IncludeZeroth {
		first = 1
	}
	names := make([]string, a.params.Order)
	for i := range names {
		names[i] = fmt.Sprintf("c%d", first+i)
	}
	return names
}

func (a *app) cepstrum(inPath, outPath string, opts cepstrumOptions) error {
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
	// The codec needs every bin, so the half-spectrum setting does not
	// apply here.
	an, err := stft.NewAnalyzer(in, p.FrameLength, p.FrameShift)
	if err != nil {
		return err
	}
	enc, err := cepstrum.NewEncoder(an, codec, p.Order, p.IncludeZeroth)
	if err != nil {
		return err
	}

	acc := feature.NewAccumulator(p.Order)
	var rows [][]float64
	for v := range enc.All() {
		rows = append(rows, v.Coeffs)
		if err := acc.Update(v.Coeffs); err != nil {
			return err
		}
	}
	if err := enc.Err(); err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := csvio.WriteRows(out, a.coefficientNames(), rows); err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	a.log.Info("cepstrum written", "path", outPath, "frames", len(rows), "order", p.Order)

	if len(rows) == 0 || (!opts.stats && opts.covariance == "") {
		return nil
	}

	mean, err := acc.Mean()
	if err != nil {
		return err
	}
	cov, err := acc.Covariance()
	if err != nil {
		return err
	}

	if opts.stats {
		tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "Coeff\tMean\tStd\n")
		for i, name := range a.coefficientNames() {
			fmt.Fprintf(tw, "%s\t%.6f\t%.6f\n", name, mean[i], math.Sqrt(cov.At(i, i)))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if opts.covariance != "" {
		f, err := os.Create(opts.covariance)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := csvio.WriteRows(f, a.coefficientNames(), feature.Rows(cov)); err != nil {
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		a.log.Info("covariance written", "path", opts.covariance)
	}
	return nil
}
