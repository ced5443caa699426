// Package config loads the vectorx CLI settings from defaults, a YAML file,
// VECTORX_* environment variables and command-line flags, in increasing order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/comalice/vectorx/internal/report"
)

// DefaultFile is read when no config file is given and it exists.
const DefaultFile = "vectorx.yaml"

const envPrefix = "VECTORX_"

// Defaults.
const (
	DefaultFormat         = report.FormatTable
	DefaultInlineCapacity = 8
	DefaultFixedCapacity  = 64
	DefaultLogLevel       = "info"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// Config is the resolved CLI configuration.
type Config struct {
	Format         string `koanf:"format"`
	InlineCapacity int    `koanf:"inline_capacity"`
	FixedCapacity  int    `koanf:"fixed_capacity"`
	LogLevel       string `koanf:"log_level"`
	OutDir         string `koanf:"out_dir"`

	// File is the config file that was read, if any.
	File string `koanf:"-"`
}

// Load resolves the configuration. cfgFile may be empty, in which case
// DefaultFile is used when present. Only flags the user changed override
// lower layers.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]any{
		"format":          DefaultFormat,
		"inline_capacity": DefaultInlineCapacity,
		"fixed_capacity":  DefaultFixedCapacity,
		"log_level":       DefaultLogLevel,
		"out_dir":         "",
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if cfgFile == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			cfgFile = DefaultFile
		}
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", cfgFile, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = cfgFile
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges and names.
func (c *Config) Validate() error {
	if !report.ValidFormat(c.Format) {
		return fmt.Errorf("%w: format %q (want table, json or yaml)", ErrInvalid, c.Format)
	}
	if c.InlineCapacity < 0 {
		return fmt.Errorf("%w: inline_capacity %d is negative", ErrInvalid, c.InlineCapacity)
	}
	if c.FixedCapacity < 0 {
		return fmt.Errorf("%w: fixed_capacity %d is negative", ErrInvalid, c.FixedCapacity)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	return l, nil
}
