// Package config loads VisionChroma settings from defaults, an optional YAML
// file and VISIONCHROMA_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/marianadeem755/VisionChroma-pro/internal/colour"
	"github.com/marianadeem755/VisionChroma-pro/internal/compliance"
	"github.com/marianadeem755/VisionChroma-pro/internal/cvd"
	"github.com/marianadeem755/VisionChroma-pro/internal/heatmap"
	"github.com/marianadeem755/VisionChroma-pro/internal/typography"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "VISIONCHROMA_"

// DefaultMaxInputSize caps page documents at 32 MiB after decompression.
const DefaultMaxInputSize int64 = 32 << 20

// Vision selects the CVD simulation backend.
type Vision struct {
	Backend    string  `koanf:"backend"`
	PluginPath string  `koanf:"plugin"`
	Severity   float64 `koanf:"severity"`
}

// Config holds all settings.
type Config struct {
	// Workers bounds parallel contrast and simulation work; 0 means one per CPU.
	Workers      int    `koanf:"workers"`
	MaxInputSize int64  `koanf:"max_input_size"`
	MetricsFile  string `koanf:"metrics_file"`

	Vision     Vision            `koanf:"vision"`
	Compliance compliance.Config `koanf:"compliance"`
	Typography typography.Config `koanf:"typography"`
	Heatmap    heatmap.Config    `koanf:"heatmap"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		MaxInputSize: DefaultMaxInputSize,
		Vision: Vision{
			Backend:  string(cvd.BackendBuiltin),
			Severity: 1,
		},
		Compliance: compliance.DefaultConfig(),
		Typography: typography.DefaultConfig(),
		Heatmap:    heatmap.DefaultConfig(),
	}
}

// DefaultPath returns the config file looked for when none is given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "visionchroma", "config.yaml")
}

// ErrInvalidEnv is wrapped by errors for unparseable environment overrides.
var ErrInvalidEnv = errors.New("invalid environment override")

// Load builds the configuration. An explicit path must exist; with an empty
// path the default location is used if present. The returned errors include
// both load and validation problems; the config is usable only when there
// are none.
func Load(path string) (*Config, []error) {
	cfg := Default()
	k := koanf.New(".")

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil || explicit {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, []error{fmt.Errorf("failed to load config file %s: %w", path, err)}
			}
			if err := k.Unmarshal("", cfg); err != nil {
				return nil, []error{fmt.Errorf("failed to decode config file %s: %w", path, err)}
			}
		}
	}

	errs := applyEnv(cfg)
	return cfg, append(errs, cfg.Validate()...)
}

// applyEnv overrides cfg from the environment.
func applyEnv(cfg *Config) []error {
	var errs []error

	if v, ok := lookup("BACKEND"); ok {
		cfg.Vision.Backend = v
	}
	if v, ok := lookup("PLUGIN"); ok {
		cfg.Vision.PluginPath = v
	}
	if v, ok := lookup("LEVEL"); ok {
		cfg.Compliance.Level = colour.Level(v)
	}
	if v, ok := lookup("METRICS_FILE"); ok {
		cfg.MetricsFile = v
	}

	if err := envFloat("SEVERITY", &cfg.Vision.Severity); err != nil {
		errs = append(errs, err)
	}
	if err := envInt("WORKERS", &cfg.Workers); err != nil {
		errs = append(errs, err)
	}
	var size int
	if err := envInt("MAX_INPUT_SIZE", &size); err != nil {
		errs = append(errs, err)
	} else if size != 0 {
		cfg.MaxInputSize = int64(size)
	}
	return errs
}

func lookup(key string) (string, bool) {
	v := os.Getenv(EnvPrefix + key)
	return v, v != ""
}

func envInt(key string, dst *int) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s%s must be an integer: %w", EnvPrefix, key, ErrInvalidEnv)
	}
	*dst = i
	return nil
}

func envFloat(key string, dst *float64) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%s%s must be a number: %w", EnvPrefix, key, ErrInvalidEnv)
	}
	*dst = f
	return nil
}

// Validate checks the configuration and returns every problem found.
func (c *Config) Validate() []error {
	var errs []error

	backend, err := cvd.ParseBackend(c.Vision.Backend)
	if err != nil {
		errs = append(errs, err)
	}
	if backend == cvd.BackendPlugin && c.Vision.PluginPath == "" {
		errs = append(errs, fmt.Errorf("vision plugin backend requires a plugin path"))
	}
	if c.Vision.Severity < 0 || c.Vision.Severity > 1 {
		errs = append(errs, fmt.Errorf("vision severity must be between 0 and 1, got %v", c.Vision.Severity))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if c.MaxInputSize <= 0 {
		errs = append(errs, fmt.Errorf("max input size must be positive, got %d", c.MaxInputSize))
	}

	if err := c.Compliance.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("compliance: %w", err))
	}
	if err := c.Heatmap.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("heatmap: %w", err))
	}
	if c.Typography.MaxFontFamilies < 1 || c.Typography.MaxFontSizes < 1 {
		errs = append(errs, fmt.Errorf("typography: font limits must be at least 1"))
	}
	for kind, p := range c.Typography.Penalties {
		if p < 0 {
			errs = append(errs, fmt.Errorf("typography: penalty for %s must not be negative", kind))
		}
	}
	return errs
}

// Backend returns the parsed vision backend. Call after Validate.
func (c *Config) Backend() cvd.Backend {
	return cvd.Backend(c.Vision.Backend)
}
