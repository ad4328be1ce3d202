package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"linfit/internal/errors"
)

// FileConfig represents the TOML configuration file. Every field is
// optional; unset fields keep their current value.
type FileConfig struct {
	Server   ServerSection   `toml:"server"`
	Defaults DefaultsSection `toml:"defaults"`
	Plot     PlotSection     `toml:"plot"`
	Limits   LimitsSection   `toml:"limits"`
	LogLevel *string         `toml:"log_level"`
}

// ServerSection maps [server]
type ServerSection struct {
	Mode           *string  `toml:"mode"`
	DashboardPort  *string  `toml:"dashboard_port"`
	FormPort       *string  `toml:"form_port"`
	GinMode        *string  `toml:"gin_mode"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// DefaultsSection maps [defaults]
type DefaultsSection struct {
	A            *float64 `toml:"a"`
	B            *float64 `toml:"b"`
	NoiseSigma   *float64 `toml:"noise_sigma"`
	N            *int     `toml:"n"`
	XMin         *float64 `toml:"x_min"`
	XMax         *float64 `toml:"x_max"`
	Seed         *int64   `toml:"seed"`
	TestFraction *float64 `toml:"test_fraction"`
	SplitSeed    *int64   `toml:"split_seed"`
}

// PlotSection maps [plot]
type PlotSection struct {
	Width  *float64 `toml:"width_cm"`
	Height *float64 `toml:"height_cm"`
}

// LimitsSection maps [limits]
type LimitsSection struct {
	MaxSamples *int `toml:"max_samples"`
}

// LoadFile decodes a TOML config. A missing file is an error here since the
// path was asked for explicitly.
func LoadFile(path string) (FileConfig, error) {
	if _, err := os.Stat(path); err != nil {
		return FileConfig{}, errors.Wrapf(err, "failed to stat config %s", path)
	}
	var fc FileConfig
	meta, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return FileConfig{}, errors.WithCode(errors.CodeConfigInvalid, errors.Wrapf(err, "failed to decode config %s", path))
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, errors.ConfigInvalid("unknown config key: " + undecoded[0].String())
	}
	return fc, nil
}

func (fc FileConfig) apply(cfg *Config) error {
	s := fc.Server
	if s.Mode != nil {
		mode, err := ParseMode(*s.Mode)
		if err != nil {
			return err
		}
		cfg.Server.Mode = mode
	}
	setString(&cfg.Server.DashboardPort, s.DashboardPort)
	setString(&cfg.Server.FormPort, s.FormPort)
	setString(&cfg.Server.GinMode, s.GinMode)
	if len(s.AllowedOrigins) > 0 {
		cfg.Server.AllowedOrigins = append([]string(nil), s.AllowedOrigins...)
	}

	d := fc.Defaults
	gen := &cfg.Defaults.Generation
	setFloat(&gen.A, d.A)
	setFloat(&gen.B, d.B)
	setFloat(&gen.NoiseSigma, d.NoiseSigma)
	if d.N != nil {
		gen.N = *d.N
	}
	setFloat(&gen.XMin, d.XMin)
	setFloat(&gen.XMax, d.XMax)
	if d.Seed != nil {
		gen.Seed = *d.Seed
	}
	setFloat(&cfg.Defaults.TestFraction, d.TestFraction)
	if d.SplitSeed != nil {
		cfg.Defaults.SplitSeed = *d.SplitSeed
	}

	setFloat(&cfg.Plot.Width, fc.Plot.Width)
	setFloat(&cfg.Plot.Height, fc.Plot.Height)
	if fc.Limits.MaxSamples != nil {
		cfg.Limits.MaxSamples = *fc.Limits.MaxSamples
	}
	setString(&cfg.LogLevel, fc.LogLevel)
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
