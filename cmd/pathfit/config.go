// seehuhn.de/go/pathfit - B-spline and Spiro path reconstruction
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pathfit"
)

// Config holds the settings of a pathfit run. Settings are read from an
// optional TOML file and can be overridden on the command line.
type Config struct {
	// Mode is "bspline" or "spiro".
	Mode string `toml:"mode"`

	// Precision is the number of decimals in the generated path data.
	// A negative value gives the shortest exact representation.
	Precision int `toml:"precision"`

	// LogLevel is one of "debug", "info", "warn" or "error".
	LogLevel string `toml:"log_level"`

	BSpline BSplineConfig `toml:"bspline"`
	Output  OutputConfig  `toml:"output"`
}

// BSplineConfig holds the parameters of the B-spline reconstruction.
type BSplineConfig struct {
	Weight     float64      `toml:"weight"`
	Gap        float64      `toml:"gap"`
	IgnoreCusp bool         `toml:"ignore_cusp"`
	Selected   [][2]float64 `toml:"selected"`
}

// OutputConfig lists additional output files.
type OutputConfig struct {
	PDF  string `toml:"pdf"`
	PNG  string `toml:"png"`
	Size int    `toml:"size"`
}

func defaultConfig() *Config {
	return &Config{
		Mode:      modeBSpline,
		Precision: 6,
		LogLevel:  "warn",
		BSpline: BSplineConfig{
			Weight: pathfit.DefaultWeight,
			Gap:    pathfit.HandleGap,
		},
		Output: OutputConfig{
			Size: 512,
		},
	}
}

const (
	modeBSpline = "bspline"
	modeSpiro   = "spiro"
)

// decodeConfig reads TOML settings from r into cfg. Keys which are not
// part of [Config] are rejected.
func decodeConfig(cfg *Config, r io.Reader) error {
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// loadConfig reads the TOML file fname into cfg.
func loadConfig(cfg *Config, fname string) error {
	f, err := os.Open(fname)
	if err != nil {
		return err
	}
	defer f.Close()
	return decodeConfig(cfg, f)
}

// validate checks the settings for consistency.
func (cfg *Config) validate() error {
	switch cfg.Mode {
	case modeBSpline, modeSpiro:
	default:
		return fmt.Errorf("config: unknown mode %q", cfg.Mode)
	}
	if cfg.BSpline.Weight < 0 || cfg.BSpline.Weight > 1 {
		return fmt.Errorf("config: weight %g outside [0, 1]", cfg.BSpline.Weight)
	}
	if cfg.Output.Size <= 0 {
		return fmt.Errorf("config: invalid image size %d", cfg.Output.Size)
	}
	if _, err := cfg.level(); err != nil {
		return err
	}
	return nil
}

// bsplineOptions converts the B-spline settings for use with
// [pathfit.ReconstructBSpline].
func (cfg *Config) bsplineOptions() pathfit.BSplineOptions {
	opts := pathfit.BSplineOptions{
		Weight:     cfg.BSpline.Weight,
		Gap:        cfg.BSpline.Gap,
		IgnoreCusp: cfg.BSpline.IgnoreCusp,
	}
	if len(cfg.BSpline.Selected) > 0 {
		opts.OnlySelected = true
		for _, p := range cfg.BSpline.Selected {
			opts.Selected = append(opts.Selected, vec.Vec2{X: p[0], Y: p[1]})
		}
	}
	return opts
}

func (cfg *Config) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: %w", err)
	}
	return level, nil
}
