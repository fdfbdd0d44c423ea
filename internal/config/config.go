// SPDX-License-Identifier: EPL-2.0

// Package config loads the stemsep YAML configuration.
//
// Every field is optional; missing values keep their defaults:
//
//	stft:
//	  frame_size: 2048
//	  hop_size: 512
//	filter:
//	  width: 2
//	  radius: 256
//	  neighbors: 0        # 0 picks the count automatically
//	mask:
//	  margin_instrumental: 2
//	  margin_vocal: 10
//	  power: 2
//	resample_rate: 0      # 0 keeps the source rate
//	output:
//	  dir: .
//	  bit_depth: 16
//	  zip: false
//	log_level: info
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/ik5/stemsep/separator"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	STFT         STFT   `yaml:"stft"`
	Filter       Filter `yaml:"filter"`
	Mask         Mask   `yaml:"mask"`
	ResampleRate int    `yaml:"resample_rate"`
	Output       Output `yaml:"output"`
	LogLevel     string `yaml:"log_level"`
}

type STFT struct {
	FrameSize int `yaml:"frame_size"`
	HopSize   int `yaml:"hop_size"`
}

type Filter struct {
	Width     int `yaml:"width"`
	Radius    int `yaml:"radius"`
	Neighbors int `yaml:"neighbors"`
}

type Mask struct {
	MarginInstrumental float64 `yaml:"margin_instrumental"`
	MarginVocal        float64 `yaml:"margin_vocal"`
	Power              float64 `yaml:"power"`
}

type Output struct {
	Dir      string `yaml:"dir"`
	BitDepth int    `yaml:"bit_depth"`
	Zip      bool   `yaml:"zip"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	sep := separator.DefaultConfig()

	return &Config{
		STFT: STFT{
			FrameSize: sep.FrameSize,
			HopSize:   sep.HopSize,
		},
		Filter: Filter{
			Width:     sep.Width,
			Radius:    sep.Radius,
			Neighbors: sep.Neighbors,
		},
		Mask: Mask{
			MarginInstrumental: sep.MarginInstrumental,
			MarginVocal:        sep.MarginVocal,
			Power:              sep.Power,
		},
		Output: Output{
			Dir:      ".",
			BitDepth: 16,
		},
		LogLevel: "info",
	}
}

// Load reads and validates the file at path on top of Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML on top of Default. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Marshal renders c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Separator returns the separator settings of c.
func (c *Config) Separator() separator.Config {
	return separator.Config{
		FrameSize:          c.STFT.FrameSize,
		HopSize:            c.STFT.HopSize,
		Width:              c.Filter.Width,
		Radius:             c.Filter.Radius,
		Neighbors:          c.Filter.Neighbors,
		MarginInstrumental: c.Mask.MarginInstrumental,
		MarginVocal:        c.Mask.MarginVocal,
		Power:              c.Mask.Power,
	}
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	return ParseLevel(c.LogLevel)
}

// ParseLevel accepts debug, info, warn or error, case-insensitively.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalid, s)
	}
	return level, nil
}

func (c *Config) Validate() error {
	if err := c.Separator().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if c.ResampleRate < 0 {
		return fmt.Errorf("%w: resample_rate %d", ErrInvalid, c.ResampleRate)
	}

	if c.Output.BitDepth != 16 && c.Output.BitDepth != 24 {
		return fmt.Errorf("%w: output.bit_depth must be 16 or 24, got %d", ErrInvalid, c.Output.BitDepth)
	}

	if c.Output.Dir == "" {
		return fmt.Errorf("%w: output.dir is empty", ErrInvalid)
	}

	if _, err := c.Level(); err != nil {
		return err
	}

	return nil
}
