package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/algo-stft/internal/wavio"
)

// openInput opens a WAV file and selects the configured channel. The
// returned close function releases the file.
func (a *app) openInput(path string) (*wavio.Reader, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	r, err := wavio.ReadChannel(f, a.cfg.Analysis.Channel)
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	a.log.Info("input opened",
		"path", path,
		"sample_rate", r.SampleRate(),
		"bit_depth", r.BitDepth(),
		"channels", r.Channels(),
		"samples", r.Len(),
	)
	return r, func() { _ = f.Close() }, nil
}
