package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-stft/dsp/core"
	"github.com/cwbudde/algo-stft/dsp/dither"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stftool.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if *cfg != Default() {
		t.Fatalf("cfg=%+v want defaults", *cfg)
	}

	p, err := cfg.Params()
	if err != nil {
		t.Fatalf("Params error: %v", err)
	}
	if p.FrameLength != core.DefaultParams().FrameLength || p.Order != core.DefaultParams().Order {
		t.Fatalf("params=%+v want core defaults", p)
	}
}

func TestLoadDefaultPathInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, DefaultPath), []byte("analysis:\n  order: 12\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Chdir(dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Analysis.Order != 12 {
		t.Fatalf("order=%d want=12", cfg.Analysis.Order)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeTempConfig(t, `
log_level: debug
analysis:
  frame_length: 512
  frame_shift: 128
  cutoff_ratio: 2
  order: 30
  include_zeroth: false
  half_spectrum: true
output:
  bit_depth: 24
  dither: tpdf
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	want := Config{
		LogLevel: "debug",
		Analysis: AnalysisConfig{
			FrameLength:  512,
			FrameShift:   128,
			CutoffRatio:  2,
			Order:        30,
			HalfSpectrum: true,
		},
		Output: OutputConfig{BitDepth: 24, Dither: "tpdf"},
	}
	if *cfg != want {
		t.Fatalf("cfg=%+v want=%+v", *cfg, want)
	}

	level, err := cfg.Level()
	if err != nil || level != slog.LevelDebug {
		t.Fatalf("Level()=%v, %v want=debug", level, err)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeTempConfig(t, "analysis:\n  order: 30\n")
	t.Setenv("STFTOOL_ORDER", "8")
	t.Setenv("STFTOOL_FRAME_SHIFT", " 512 ")
	t.Setenv("STFTOOL_HALF_SPECTRUM", "true")
	t.Setenv("STFTOOL_LOG_LEVEL", "warn")
	t.Setenv("STFTOOL_DITHER", "triangular")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Analysis.Order != 8 || cfg.Analysis.FrameShift != 512 || !cfg.Analysis.HalfSpectrum || cfg.LogLevel != "warn" {
		t.Fatalf("env overrides not applied: %+v", *cfg)
	}
	if dt, err := cfg.DitherType(); err != nil || dt != dither.DitherTriangular {
		t.Fatalf("DitherType()=%v, %v want=triangular", dt, err)
	}
}

func TestEnvParseError(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STFTOOL_BIT_DEPTH", "sixteen")

	if _, err := Load(""); !errors.Is(err, ErrInvalid) {
		t.Fatalf("err=%v want=%v", err, ErrInvalid)
	}
}

func TestReadDefersValidation(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STFTOOL_FRAME_SHIFT", "2048")

	cfg, err := Read("")
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if cfg.Analysis.FrameShift != 2048 {
		t.Fatalf("FrameShift=%d want=2048", cfg.Analysis.FrameShift)
	}
	if err := cfg.Validate(); !errors.Is(err, core.ErrFrameShape) {
		t.Fatalf("Validate err=%v want=%v", err, core.ErrFrameShape)
	}

	cfg.Analysis.FrameLength = 4096
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate after fix: %v", err)
	}

	if _, err := Load(""); !errors.Is(err, ErrInvalid) {
		t.Fatalf("Load err=%v want=%v", err, ErrInvalid)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil || !strings.Contains(err.Error(), "failed to read config file") {
		t.Fatalf("missing file err=%v", err)
	}

	path := writeTempConfig(t, ":\n:bad")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "failed to parse config file") {
		t.Fatalf("parse err=%v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		core   error
	}{
		{"odd frame length", func(c *Config) { c.Analysis.FrameLength = 1023 }, core.ErrFrameShape},
		{"cutoff ratio", func(c *Config) { c.Analysis.CutoffRatio = 3 }, core.ErrCutoffRatio},
		{"order", func(c *Config) { c.Analysis.Order = 0 }, core.ErrOrder},
		{"channel", func(c *Config) { c.Analysis.Channel = -1 }, nil},
		{"bit depth", func(c *Config) { c.Output.BitDepth = 12 }, nil},
		{"log level", func(c *Config) { c.LogLevel = "loud" }, nil},
		{"dither", func(c *Config) { c.Output.Dither = "pink" }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("err=%v want=%v", err, ErrInvalid)
			}
			if tt.core != nil && !errors.Is(err, tt.core) {
				t.Fatalf("err=%v want wrapped %v", err, tt.core)
			}
		})
	}
}
