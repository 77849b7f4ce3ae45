// Command stftool runs the streaming STFT and cepstrum pipeline on WAV
// files.
//
// Usage:
//
//	stftool [flags] <command> [args]
//
// Examples:
//
//	stftool resynth in.wav out.wav
//	stftool --frame-length 512 --frame-shift 128 resynth --half in.wav out.wav
//	stftool --order 20 cepstrum --stats in.wav ceps.csv
//	stftool envelope --frame 40 in.wav env.csv
//	stftool info
//	stftool generate --kind harmonic --freq 110 --seconds 2 tone.wav
//
// Settings come from the built-in defaults, then stftool.yaml (or --config),
// then STFTOOL_* environment variables, then flags.
package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	return root.Execute()
}
