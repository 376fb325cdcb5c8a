// Package config loads the magdb runtime configuration.
//
// Values are layered, highest priority last: built-in defaults, the YAML
// config file, MAGDB_* environment variables, then explicitly set flags.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	// DefaultConfigFile is looked up in the working directory when no file is given.
	DefaultConfigFile = "magdb.yaml"

	// EnvPrefix marks environment variables read into the configuration.
	// MAGDB_LOG_LEVEL maps to log_level.
	EnvPrefix = "MAGDB_"

	DefaultDriver    = "sqlite"
	DefaultDSN       = "magazine.db"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultOutput    = "table"
)

// Config holds all magdb configuration options.
type Config struct {
	// Driver is the storage backend: "sqlite" or "postgres".
	Driver string `koanf:"driver"`
	// DSN is a SQLite file path (or ":memory:") or a PostgreSQL connection string.
	DSN string `koanf:"dsn"`

	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`

	// Output selects how commands render results: "table" or "json".
	Output string `koanf:"output"`

	// CircuitBreaker wraps non-transactional statements in a circuit breaker.
	CircuitBreaker bool `koanf:"circuit_breaker"`

	// File is the config file that was read, if any.
	File string `koanf:"-"`
}

// Defaults returns the built-in configuration.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"driver":          DefaultDriver,
		"dsn":             DefaultDSN,
		"log_level":       DefaultLogLevel,
		"log_format":      DefaultLogFormat,
		"output":          DefaultOutput,
		"circuit_breaker": false,
	}
}

// Load builds the configuration from defaults, cfgFile (or magdb.yaml when
// cfgFile is empty and the file exists), the environment and flags.
// Only flags the user set override lower layers. flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = used

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// findConfigFile returns explicit when set, otherwise DefaultConfigFile if it exists.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile
	}
	return ""
}

// Validate checks that every option holds a supported value.
func (c *Config) Validate() error {
	switch c.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("driver must be sqlite or postgres, got %q", c.Driver)
	}
	if c.Driver == "postgres" && strings.TrimSpace(c.DSN) == "" {
		return fmt.Errorf("dsn is required for postgres")
	}
	switch c.Output {
	case "table", "json":
	default:
		return fmt.Errorf("output must be table or json, got %q", c.Output)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	return nil
}
