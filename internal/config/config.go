// Package config loads service configuration from a YAML file and
// USERORDERS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const envPrefix = "USERORDERS_"

// Config is the complete service configuration
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Storage    StorageConfig    `yaml:"storage"`
	Log        LogConfig        `yaml:"log"`
	RateLimit  RateLimitConfig  `yaml:"rateLimit"`
	Pagination PaginationConfig `yaml:"pagination"`
}

type HTTPConfig struct {
	Addr              string        `yaml:"addr"`
	ReadHeaderTimeout time.Duration `yaml:"readHeaderTimeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdownTimeout"`
	MaxBodyBytes      int64         `yaml:"maxBodyBytes"`
}

type StorageConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

type RateLimitConfig struct {
	Enabled    bool    `yaml:"enabled"`
	RPS        float64 `yaml:"rps"`
	Burst      int     `yaml:"burst"`
	MaxClients int     `yaml:"maxClients"`
}

type PaginationConfig struct {
	MaxLimit int `yaml:"maxLimit"`
}

// Default returns the configuration used when nothing is overridden
func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:              ":8000",
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   5 * time.Second,
			MaxBodyBytes:      1 << 20,
		},
		Storage: StorageConfig{
			Path: "userorders.db",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		RateLimit: RateLimitConfig{
			Enabled:    true,
			RPS:        30,
			Burst:      60,
			MaxClients: 10000,
		},
		Pagination: PaginationConfig{
			MaxLimit: 1000,
		},
	}
}

// Load reads path on top of the defaults, then applies environment
// overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from USERORDERS_* variables
func (c *Config) ApplyEnv() error {
	var errs []error

	if v, ok := lookup("HTTP_ADDR"); ok {
		c.HTTP.Addr = v
	}
	if v, ok := lookup("DB_PATH"); ok {
		c.Storage.Path = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := lookup("LOG_FORMAT"); ok {
		c.Log.Format = v
	}
	if v, ok := lookup("RATE_LIMIT_ENABLED"); ok {
		b, err := strconv.ParseBool(v)
		errs = append(errs, envErr("RATE_LIMIT_ENABLED", err))
		if err == nil {
			c.RateLimit.Enabled = b
		}
	}
	if v, ok := lookup("RATE_LIMIT_RPS"); ok {
		f, err := strconv.ParseFloat(v, 64)
		errs = append(errs, envErr("RATE_LIMIT_RPS", err))
		if err == nil {
			c.RateLimit.RPS = f
		}
	}
	if v, ok := lookup("RATE_LIMIT_BURST"); ok {
		n, err := strconv.Atoi(v)
		errs = append(errs, envErr("RATE_LIMIT_BURST", err))
		if err == nil {
			c.RateLimit.Burst = n
		}
	}
	if v, ok := lookup("MAX_LIMIT"); ok {
		n, err := strconv.Atoi(v)
		errs = append(errs, envErr("MAX_LIMIT", err))
		if err == nil {
			c.Pagination.MaxLimit = n
		}
	}

	return errors.Join(errs...)
}

// Validate checks value ranges
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.HTTP.Addr) == "" {
		errs = append(errs, errors.New("http.addr is required"))
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("http.maxBodyBytes must be positive"))
	}
	if strings.TrimSpace(c.Storage.Path) == "" {
		errs = append(errs, errors.New("storage.path is required"))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q must be text or json", c.Log.Format))
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
			errs = append(errs, errors.New("rateLimit.rps and rateLimit.burst must be positive"))
		}
		if c.RateLimit.MaxClients <= 0 {
			errs = append(errs, errors.New("rateLimit.maxClients must be positive"))
		}
	}
	if c.Pagination.MaxLimit < 0 {
		errs = append(errs, errors.New("pagination.maxLimit must not be negative"))
	}
	return errors.Join(errs...)
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + name)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func envErr(name string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s%s: %w", envPrefix, name, err)
}
