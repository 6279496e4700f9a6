// Package config loads runtime settings from an optional YAML file, a .env
// file and BAKEPLAN_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/vsinha/bakeplan/pkg/infrastructure/logging"
)

const envPrefix = "BAKEPLAN_"

// Store drivers
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Config holds everything the CLI and the server need at startup
type Config struct {
	Env      string     `yaml:"env"`
	LogLevel string     `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
	Store    Store      `yaml:"store"`
}

type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
}

// Store selects where recipes and ingredients come from. The memory driver
// is seeded from Catalog, a YAML catalog file.
type Store struct {
	Driver  string `yaml:"driver"`
	DSN     string `yaml:"dsn"`
	Catalog string `yaml:"catalog"`
}

// Default returns the settings used when nothing is configured
func Default() *Config {
	return &Config{
		Env:      "development",
		LogLevel: string(logging.LevelInfo),
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Store: Store{Driver: StoreMemory},
	}
}

// Load reads path (may be empty), then .env outside production, then the
// process environment.
func Load(path string) (*Config, error) {
	if os.Getenv(envPrefix+"ENV") != "production" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}
	return LoadWithEnv(path, os.LookupEnv)
}

// LoadWithEnv is Load with an explicit environment lookup
func LoadWithEnv(path string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer func() { _ = f.Close() }()

		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(envPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	str("ENV", &c.Env)
	str("LOG_LEVEL", &c.LogLevel)
	str("HTTP_ADDR", &c.HTTP.Addr)
	str("STORE_DRIVER", &c.Store.Driver)
	str("STORE_DSN", &c.Store.DSN)
	str("CATALOG", &c.Store.Catalog)

	if v, ok := lookup(envPrefix + "SHUTDOWN_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %sSHUTDOWN_TIMEOUT: %w", envPrefix, err)
		}
		c.HTTP.ShutdownTimeout = d
	}
	if v, ok := lookup(envPrefix + "ALLOWED_ORIGINS"); ok && v != "" {
		c.HTTP.AllowedOrigins = nil
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				c.HTTP.AllowedOrigins = append(c.HTTP.AllowedOrigins, origin)
			}
		}
	}
	return nil
}

// Validate checks the settings that would otherwise fail late
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.Store.Driver {
	case StoreMemory:
	case StoreSQLite, StorePostgres:
		if c.Store.DSN == "" && c.Store.Driver == StorePostgres {
			return fmt.Errorf("store driver %s requires a DSN", c.Store.Driver)
		}
	default:
		return fmt.Errorf("unsupported store driver: %s (expected memory, sqlite or postgres)", c.Store.Driver)
	}
	if c.HTTP.Addr == "" {
		return fmt.Errorf("http address cannot be empty")
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive, got %s", c.HTTP.ShutdownTimeout)
	}
	return nil
}
