// Package config provides YAML-based configuration loading for graphwire.
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/wippyai/graphwire/errors"
	"github.com/wippyai/graphwire/transcoder"
)

// Config is the root configuration.
type Config struct {
	// Encode holds encoder settings
	Encode EncodeConfig `mapstructure:"encode"`

	// Decode holds decoder settings
	Decode DecodeConfig `mapstructure:"decode"`

	// Log holds logging configuration
	Log LogConfig `mapstructure:"log"`
}

// EncodeConfig controls encoding.
type EncodeConfig struct {
	// Stack includes stack traces in error payloads
	Stack bool `mapstructure:"stack"`
	// MaxDepth bounds nesting
	MaxDepth int `mapstructure:"max_depth"`
}

// DecodeConfig controls decoding.
type DecodeConfig struct {
	MaxDepth  int  `mapstructure:"max_depth"`
	PlainMaps bool `mapstructure:"plain_maps"`
}

// LogConfig defines logger settings.
type LogConfig struct {
	// Level: debug, info, warn, error
	Level string `mapstructure:"level"`
	// Format: console or json
	Format string `mapstructure:"format"`
	// Outputs: list of outputs: stdout, stderr, or file paths
	Outputs []string `mapstructure:"outputs"`

	// Rotation controls file rotation when writing to files
	Rotation RotationConfig `mapstructure:"rotation"`
	// Development toggles development-friendly logging options
	Development bool `mapstructure:"development"`
}

// RotationConfig controls log file rotation for file outputs.
type RotationConfig struct {
	Enable     bool   `mapstructure:"enable"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// Default returns a Config populated with defaults.
func Default() *Config {
	return &Config{
		Encode: EncodeConfig{
			Stack:    true,
			MaxDepth: transcoder.DefaultMaxDepth,
		},
		Decode: DecodeConfig{
			MaxDepth: transcoder.DefaultMaxDepth,
		},
		Log: LogConfig{
			Level:   "info",
			Format:  "console",
			Outputs: []string{"stderr"},
			Rotation: RotationConfig{
				Filename:   "logs/graphwire.log",
				MaxSizeMB:  50,
				MaxBackups: 3,
				MaxAgeDays: 28,
				Compress:   true,
			},
		},
	}
}

// Load reads configuration from path (if non-empty), otherwise from
// GRAPHWIRE_CONFIG or a graphwire.yaml in common locations. A missing file
// is not an error. Environment variables use the prefix GRAPHWIRE with `.`
// and `-` replaced by `_`, e.g. GRAPHWIRE_DECODE_PLAIN_MAPS=true.
func Load(path string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("GRAPHWIRE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// seed defaults so env-only configs work
	v.SetDefault("encode.stack", cfg.Encode.Stack)
	v.SetDefault("encode.max_depth", cfg.Encode.MaxDepth)
	v.SetDefault("decode.max_depth", cfg.Decode.MaxDepth)
	v.SetDefault("decode.plain_maps", cfg.Decode.PlainMaps)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.outputs", cfg.Log.Outputs)
	v.SetDefault("log.development", cfg.Log.Development)
	v.SetDefault("log.rotation.enable", cfg.Log.Rotation.Enable)
	v.SetDefault("log.rotation.filename", cfg.Log.Rotation.Filename)
	v.SetDefault("log.rotation.max_size_mb", cfg.Log.Rotation.MaxSizeMB)
	v.SetDefault("log.rotation.max_backups", cfg.Log.Rotation.MaxBackups)
	v.SetDefault("log.rotation.max_age_days", cfg.Log.Rotation.MaxAgeDays)
	v.SetDefault("log.rotation.compress", cfg.Log.Rotation.Compress)

	if path == "" {
		path = os.Getenv("GRAPHWIRE_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("graphwire")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".graphwire"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !stderrors.As(err, &notFound) {
			return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "read config")
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "decode config")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return errors.InvalidInput(errors.PhaseConfig, fmt.Sprintf("invalid log.level: %q", c.Log.Level))
	}
	if c.Encode.MaxDepth < 1 {
		return errors.InvalidInput(errors.PhaseConfig, fmt.Sprintf("encode.max_depth must be positive, got %d", c.Encode.MaxDepth))
	}
	if c.Decode.MaxDepth < 1 {
		return errors.InvalidInput(errors.PhaseConfig, fmt.Sprintf("decode.max_depth must be positive, got %d", c.Decode.MaxDepth))
	}

	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if len(c.Log.Outputs) == 0 {
		c.Log.Outputs = []string{"stderr"}
	}
	return nil
}

// MustLoad is a convenience that panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// EncodeOptions converts the encode section into encoder options.
func (c *Config) EncodeOptions() []transcoder.EncodeOption {
	return []transcoder.EncodeOption{
		transcoder.WithStack(c.Encode.Stack),
		transcoder.WithMaxDepth(c.Encode.MaxDepth),
	}
}

// DecodeOptions converts the decode section into decoder options.
func (c *Config) DecodeOptions() []transcoder.DecodeOption {
	return []transcoder.DecodeOption{
		transcoder.WithPlainMaps(c.Decode.PlainMaps),
		transcoder.WithDecodeMaxDepth(c.Decode.MaxDepth),
	}
}
