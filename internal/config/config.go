// Package config loads stftool settings from YAML with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-stft/dsp/core"
	"github.com/cwbudde/algo-stft/dsp/dither"
	"gopkg.in/yaml.v3"
)

// DefaultPath is looked up in the working directory when no path is given.
const DefaultPath = "stftool.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "STFTOOL_"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the full tool configuration.
type Config struct {
	LogLevel string         `yaml:"log_level"` // debug, info, warn or error.
	Analysis AnalysisConfig `yaml:"analysis"`
	Output   OutputConfig   `yaml:"output"`
}

// AnalysisConfig holds the STFT and cepstrum parameters.
type AnalysisConfig struct {
	FrameLength   int  `yaml:"frame_length"`
	FrameShift    int  `yaml:"frame_shift"`
	CutoffRatio   int  `yaml:"cutoff_ratio"`
	Order         int  `yaml:"order"`
	IncludeZeroth bool `yaml:"include_zeroth"`
	HalfSpectrum  bool `yaml:"half_spectrum"` // Carry only bins [0, L/2] between analysis and synthesis.
	Channel       int  `yaml:"channel"`       // Zero-based input channel.
}

// OutputConfig holds settings for written files.
type OutputConfig struct {
	BitDepth int    `yaml:"bit_depth"`
	Dither   string `yaml:"dither"` // none, rectangular or triangular.
}

// Default returns the built-in configuration.
func Default() Config {
	p := core.DefaultParams()
	return Config{
		LogLevel: "info",
		Analysis: AnalysisConfig{
			FrameLength:   p.FrameLength,
			FrameShift:    p.FrameShift,
			CutoffRatio:   p.CutoffRatio,
			Order:         p.Order,
			IncludeZeroth: p.IncludeZeroth,
		},
		Output: OutputConfig{BitDepth: 16, Dither: "none"},
	}
}

// Load is Read followed by Validate.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read reads the configuration at path on top of the defaults and applies
// environment overrides without validating, so callers can merge further
// overrides first. With an empty path, DefaultPath is used if it exists and
// the defaults otherwise.
func Read(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultPath); err == nil {
			path = DefaultPath
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyEnvOverrides reads STFTOOL_<NAME> variables for every analysis and
// output field plus the log level.
func (c *Config) applyEnvOverrides() error {
	ints := []struct {
		name string
		dst  *int
	}{
		{"FRAME_LENGTH", &c.Analysis.FrameLength},
		{"FRAME_SHIFT", &c.Analysis.FrameShift},
		{"CUTOFF_RATIO", &c.Analysis.CutoffRatio},
		{"ORDER", &c.Analysis.Order},
		{"CHANNEL", &c.Analysis.Channel},
		{"BIT_DEPTH", &c.Output.BitDepth},
	}
	for _, v := range ints {
		val, ok := os.LookupEnv(EnvPrefix + v.name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q: %v", ErrInvalid, EnvPrefix, v.name, val, err)
		}
		*v.dst = n
	}

	bools := []struct {
		name string
		dst  *bool
	}{
		{"INCLUDE_ZEROTH", &c.Analysis.IncludeZeroth},
		{"HALF_SPECTRUM", &c.Analysis.HalfSpectrum},
	}
	for _, v := range bools {
		val, ok := os.LookupEnv(EnvPrefix + v.name)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q: %v", ErrInvalid, EnvPrefix, v.name, val, err)
		}
		*v.dst = b
	}

	if val, ok := os.LookupEnv(EnvPrefix + "LOG_LEVEL"); ok {
		c.LogLevel = val
	}
	if val, ok := os.LookupEnv(EnvPrefix + "DITHER"); ok {
		c.Output.Dither = val
	}
	return nil
}

// Params converts the analysis section to core parameters.
func (c *Config) Params() (core.Params, error) {
	return core.NewParams(
		core.WithFrameLength(c.Analysis.FrameLength),
		core.WithFrameShift(c.Analysis.FrameShift),
		core.WithCutoffRatio(c.Analysis.CutoffRatio),
		core.WithOrder(c.Analysis.Order),
		core.WithZeroth(c.Analysis.IncludeZeroth),
	)
}

// DitherType returns the dither noise type named by Output.Dither.
func (c *Config) DitherType() (dither.DitherType, error) {
	return dither.ParseType(c.Output.Dither)
}

// Level returns the slog level named by LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	return l, nil
}

// Validate checks every field.
func (c *Config) Validate() error {
	if _, err := c.Params(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Analysis.Channel < 0 {
		return fmt.Errorf("%w: channel %d", ErrInvalid, c.Analysis.Channel)
	}
	switch c.Output.BitDepth {
	case 8, 16, 24, 32:
	default:
		return fmt.Errorf("%w: bit_depth %d", ErrInvalid, c.Output.BitDepth)
	}
	if _, err := dither.ParseType(c.Output.Dither); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}
