package appconf

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPort      = 4000
	DefaultRateLimit = 100
)

// Config holds all the configuration settings for the server.
type Config struct {
	Port            int
	Env             Environment
	ApiKeys         []string
	RateLimit       int // requests per second per API key
	RatesURL        string
	RefreshInterval time.Duration
	FetchTimeout    time.Duration
	RefreshLogPath  string // empty disables the refresh log
	LogLevel        string // debug, info, warn or error
	Verbose         bool   // forces debug logging
}

// Default returns the configuration used when neither flags nor a file set a value.
func Default() Config {
	return Config{
		Port:      DefaultPort,
		Env:       Development,
		ApiKeys:   []string{"test"},
		RateLimit: DefaultRateLimit,
		LogLevel:  "info",
	}
}

// fileConfig mirrors the YAML layout of a config file.
type fileConfig struct {
	Port            *int     `yaml:"port"`
	Env             *string  `yaml:"env"`
	ApiKeys         []string `yaml:"api-keys"`
	RateLimit       *int     `yaml:"rate-limit"`
	RatesURL        *string  `yaml:"rates-url"`
	RefreshInterval *string  `yaml:"refresh-interval"`
	FetchTimeout    *string  `yaml:"fetch-timeout"`
	RefreshLogPath  *string  `yaml:"refresh-log"`
	LogLevel        *string  `yaml:"log-level"`
	Verbose         *bool    `yaml:"verbose"`
}

// LoadFile overlays the values present in the YAML file at path onto base.
func LoadFile(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data, base)
}

// Parse overlays YAML data onto base. Keys absent from data leave base untouched.
func Parse(data []byte, base Config) (Config, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return base, fmt.Errorf("parse config: %w", err)
	}

	cfg := base
	if fc.Port != nil {
		cfg.Port = *fc.Port
	}
	if fc.Env != nil {
		cfg.Env = EnvFlagToEnvironment(*fc.Env)
	}
	if fc.ApiKeys != nil {
		cfg.ApiKeys = cleanKeys(fc.ApiKeys)
	}
	if fc.RateLimit != nil {
		cfg.RateLimit = *fc.RateLimit
	}
	if fc.RatesURL != nil {
		cfg.RatesURL = *fc.RatesURL
	}
	if fc.RefreshInterval != nil {
		d, err := time.ParseDuration(*fc.RefreshInterval)
		if err != nil {
			return base, fmt.Errorf("parse config: refresh-interval: %w", err)
		}
		cfg.RefreshInterval = d
	}
	if fc.FetchTimeout != nil {
		d, err := time.ParseDuration(*fc.FetchTimeout)
		if err != nil {
			return base, fmt.Errorf("parse config: fetch-timeout: %w", err)
		}
		cfg.FetchTimeout = d
	}
	if fc.RefreshLogPath != nil {
		cfg.RefreshLogPath = *fc.RefreshLogPath
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.Verbose != nil {
		cfg.Verbose = *fc.Verbose
	}
	return cfg, nil
}

// SplitAPIKeys parses the comma separated -api-keys flag.
func SplitAPIKeys(flagValue string) []string {
	if flagValue == "" {
		return nil
	}
	return cleanKeys(strings.Split(flagValue, ","))
}

func cleanKeys(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// Validate reports configuration that the server cannot start with.
func (c Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if len(c.ApiKeys) == 0 {
		errs = append(errs, errors.New("at least one API key is required"))
	}
	if c.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("rate limit %d must not be negative", c.RateLimit))
	}
	if c.RefreshInterval < 0 || c.FetchTimeout < 0 {
		errs = append(errs, errors.New("durations must not be negative"))
	}
	if c.Env == Test && c.RefreshLogPath != "" && c.RefreshLogPath != ":memory:" {
		errs = append(errs, errors.New("test environment requires an in-memory refresh log"))
	}
	return errors.Join(errs...)
}
