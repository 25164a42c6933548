// Package config loads palette-mcp settings from defaults, an optional YAML
// config file, a .env file and PALETTE_MCP_* environment variables.
//
// Precedence, highest first: command-line flags bound to the viper instance,
// environment variables, the config file, defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/ironsheep/palette-mcp/internal/analysis"
	"github.com/ironsheep/palette-mcp/internal/imaging"
)

// EnvPrefix is prepended to every environment variable, e.g. PALETTE_MCP_TOP_COLORS.
const EnvPrefix = "PALETTE_MCP"

// Keys understood by Load.
const (
	KeyTopColors    = "top_colors"
	KeyMaxDimension = "max_dimension"
	KeyQuantizer    = "quantizer"
	KeyResampler    = "resampler"
	KeyDither       = "dither"
	KeyLogLevel     = "log_level"
)

// DefaultConfigName is the config file looked up in the home directory when no
// explicit file is given.
const DefaultConfigName = ".palette-mcp"

// Config holds the settings shared by the CLI and the tool server.
type Config struct {
	TopColors    int    `mapstructure:"top_colors"`
	MaxDimension int    `mapstructure:"max_dimension"`
	Quantizer    string `mapstructure:"quantizer"`
	Resampler    string `mapstructure:"resampler"`
	Dither       bool   `mapstructure:"dither"`
	LogLevel     string `mapstructure:"log_level"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyTopColors, analysis.DefaultTopColors)
	v.SetDefault(KeyMaxDimension, imaging.DefaultMaxDimension)
	v.SetDefault(KeyQuantizer, analysis.QuantizerMedianCut)
	v.SetDefault(KeyResampler, imaging.ResamplerBox)
	v.SetDefault(KeyDither, false)
	v.SetDefault(KeyLogLevel, "info")
}

// LoadDotEnv reads KEY=VALUE pairs from path into the process environment.
// Variables that are already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load resolves the configuration.
//
// Parameters:
//   - v: The viper instance. Flags may already be bound to it.
//   - configFile: Explicit config file path. When empty, $HOME/.palette-mcp.yaml
//     is used if it exists.
//
// Returns an error if an explicit config file cannot be read, if an implicit
// one is malformed, or if a value fails validation.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if home, err := homedir.Dir(); err == nil {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(home)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every value is usable.
func (c *Config) Validate() error {
	if c.TopColors <= 0 {
		return fmt.Errorf("%s must be positive, got %d", KeyTopColors, c.TopColors)
	}
	if c.MaxDimension <= 0 {
		return fmt.Errorf("%s must be positive, got %d", KeyMaxDimension, c.MaxDimension)
	}
	if _, err := analysis.QuantizerByName(c.Quantizer); err != nil {
		return fmt.Errorf("%s: %w", KeyQuantizer, err)
	}
	if _, err := imaging.ResamplerByName(c.Resampler); err != nil {
		return fmt.Errorf("%s: %w", KeyResampler, err)
	}
	switch c.LogLevel {
	case "debug", "info":
	default:
		return fmt.Errorf("%s must be debug or info, got %q", KeyLogLevel, c.LogLevel)
	}
	return nil
}

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool {
	return c.LogLevel == "debug"
}

// AnalysisOptions translates the config into analyzer options. When logger is
// non-nil and debug logging is on, extraction steps are traced to it.
func (c *Config) AnalysisOptions(logger *log.Logger) ([]analysis.Option, error) {
	q, err := analysis.QuantizerByName(c.Quantizer)
	if err != nil {
		return nil, err
	}
	r, err := imaging.ResamplerByName(c.Resampler)
	if err != nil {
		return nil, err
	}

	opts := []analysis.Option{
		analysis.WithQuantizer(q),
		analysis.WithResampler(r),
		analysis.WithMaxDimension(c.MaxDimension),
		analysis.WithDither(c.Dither),
	}
	if logger != nil && c.Debug() {
		opts = append(opts, analysis.WithLogger(logger))
	}
	return opts, nil
}
