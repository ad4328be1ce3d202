package config

import (
	"os"
	"strconv"
	"strings"

	domain "linfit/domain/regression"
	"linfit/internal/errors"
	"linfit/internal/regression"
)

// Mode selects which web front end(s) to serve
type Mode string

const (
	ModeDashboard Mode = "dashboard"
	ModeForm      Mode = "form"
	ModeBoth      Mode = "both"
)

// ParseMode validates a front end selection
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeDashboard, ModeForm, ModeBoth:
		return m, nil
	}
	return "", errors.ConfigInvalid("mode must be one of dashboard, form, both; got " + strconv.Quote(s))
}

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Defaults DefaultsConfig
	Plot     PlotConfig
	Limits   LimitsConfig
	LogLevel string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Mode           Mode
	DashboardPort  string
	FormPort       string
	GinMode        string
	AllowedOrigins []string
}

// DefaultsConfig holds the values the forms start from
type DefaultsConfig struct {
	Generation   domain.GenerationConfig
	TestFraction float64
	SplitSeed    int64
}

// PlotConfig holds the rendered chart size in centimetres
type PlotConfig struct {
	Width  float64
	Height float64
}

// LimitsConfig bounds request-supplied values
type LimitsConfig struct {
	MaxSamples int
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Mode:          ModeDashboard,
			DashboardPort: "7860",
			FormPort:      "7861",
			GinMode:       "release",
		},
		Defaults: DefaultsConfig{
			Generation:   domain.DefaultGenerationConfig(),
			TestFraction: 0.25,
			SplitSeed:    0,
		},
		Plot:     PlotConfig{Width: 16, Height: 10},
		Limits:   LimitsConfig{MaxSamples: 5000},
		LogLevel: "INFO",
	}
}

// Load builds the configuration from built-in defaults, the optional TOML
// file named by LINFIT_CONFIG, and environment variables, in that order of
// precedence (environment wins), then validates it
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("LINFIT_CONFIG"); path != "" {
		file, err := LoadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load config file")
		}
		if err := file.apply(cfg); err != nil {
			return nil, errors.Wrap(err, "failed to apply config file")
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to load environment configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("LINFIT_MODE"); v != "" {
		mode, err := ParseMode(v)
		if err != nil {
			return err
		}
		cfg.Server.Mode = mode
	}
	cfg.Server.DashboardPort = getEnvOrDefault("DASHBOARD_PORT", cfg.Server.DashboardPort)
	cfg.Server.FormPort = getEnvOrDefault("FORM_PORT", cfg.Server.FormPort)
	cfg.Server.GinMode = getEnvOrDefault("GIN_MODE", cfg.Server.GinMode)
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = splitList(v)
	}

	cfg.Plot.Width = getEnvFloatOrDefault("PLOT_WIDTH_CM", cfg.Plot.Width)
	cfg.Plot.Height = getEnvFloatOrDefault("PLOT_HEIGHT_CM", cfg.Plot.Height)
	cfg.Limits.MaxSamples = getEnvIntOrDefault("MAX_SAMPLES", cfg.Limits.MaxSamples)
	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", cfg.LogLevel)
	return nil
}

// Validate checks ports, plot size, limits and that the form defaults
// describe a runnable generate-and-fit cycle
func (c *Config) Validate() error {
	if _, err := ParseMode(string(c.Server.Mode)); err != nil {
		return err
	}
	for name, port := range map[string]string{"dashboard": c.Server.DashboardPort, "form": c.Server.FormPort} {
		p, err := strconv.Atoi(port)
		if err != nil || p < 1 || p > 65535 {
			return errors.ConfigInvalid(name + " port is not a valid TCP port: " + strconv.Quote(port))
		}
	}
	if c.Server.Mode == ModeBoth && c.Server.DashboardPort == c.Server.FormPort {
		return errors.ConfigInvalid("dashboard and form ports must differ when serving both")
	}
	switch c.Server.GinMode {
	case "debug", "release", "test":
	default:
		return errors.ConfigInvalid("gin mode must be debug, release or test: " + strconv.Quote(c.Server.GinMode))
	}
	if c.Plot.Width <= 0 || c.Plot.Height <= 0 {
		return errors.ConfigInvalid("plot width and height must be positive")
	}
	if c.Limits.MaxSamples <= 0 {
		return errors.ConfigInvalid("max samples must be positive")
	}

	gen := c.Defaults.Generation
	if err := gen.Validate(); err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, errors.Wrap(err, "invalid default generation parameters"))
	}
	if gen.N > c.Limits.MaxSamples {
		return errors.ConfigInvalid("default n exceeds max samples")
	}
	if err := regression.ValidateSplit(gen.N, c.Defaults.TestFraction); err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, errors.Wrap(err, "invalid default split"))
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
