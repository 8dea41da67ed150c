package main

import (
	"flag"
	"io"
	"log/slog"
	"strings"
	"time"

	"unitconv.dev/internal/appconf"
	"unitconv.dev/internal/logging"
	"unitconv.dev/internal/rates"
)

// parseConfig reads flags from args. A -config YAML file supplies values for every flag
// that is not given explicitly.
func parseConfig(args []string, stderr io.Writer) (appconf.Config, error) {
	defaults := appconf.Default()

	fs := flag.NewFlagSet("unitconv-api", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		configPath  string
		env         string
		apiKeysFlag string
		cfg         appconf.Config
	)
	fs.StringVar(&configPath, "config", "", "Path to a YAML config file")
	fs.IntVar(&cfg.Port, "port", defaults.Port, "API server port")
	fs.StringVar(&env, "env", defaults.Env.String(), "Environment (development|test|staging|production)")
	fs.StringVar(&apiKeysFlag, "api-keys", strings.Join(defaults.ApiKeys, ","), "Comma Separated API Keys (test, etc)")
	fs.IntVar(&cfg.RateLimit, "rate-limit", defaults.RateLimit, "Requests per second per API key, 0 disables limiting")
	fs.StringVar(&cfg.RatesURL, "rates-url", rates.DefaultURL, "Exchange rate endpoint")
	fs.DurationVar(&cfg.RefreshInterval, "refresh-interval", rates.DefaultRefreshInterval, "Time between exchange rate refreshes")
	fs.DurationVar(&cfg.FetchTimeout, "fetch-timeout", rates.DefaultTimeout, "Timeout for one exchange rate fetch")
	fs.StringVar(&cfg.RefreshLogPath, "refresh-log", "", "SQLite file for the refresh log, empty disables it")
	fs.StringVar(&cfg.LogLevel, "log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Enable debug logging, overrides -log-level")

	if err := fs.Parse(args); err != nil {
		return appconf.Config{}, err
	}
	cfg.Env = appconf.EnvFlagToEnvironment(env)
	cfg.ApiKeys = appconf.SplitAPIKeys(apiKeysFlag)

	if configPath == "" {
		return cfg, cfg.Validate()
	}

	fileCfg, err := appconf.LoadFile(configPath, cfg)
	if err != nil {
		return appconf.Config{}, err
	}

	// explicit flags win over the file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			fileCfg.Port = cfg.Port
		case "env":
			fileCfg.Env = cfg.Env
		case "api-keys":
			fileCfg.ApiKeys = cfg.ApiKeys
		case "rate-limit":
			fileCfg.RateLimit = cfg.RateLimit
		case "rates-url":
			fileCfg.RatesURL = cfg.RatesURL
		case "refresh-interval":
			fileCfg.RefreshInterval = cfg.RefreshInterval
		case "fetch-timeout":
			fileCfg.FetchTimeout = cfg.FetchTimeout
		case "refresh-log":
			fileCfg.RefreshLogPath = cfg.RefreshLogPath
		case "log-level":
			fileCfg.LogLevel = cfg.LogLevel
		case "verbose":
			fileCfg.Verbose = cfg.Verbose
		}
	})

	return fileCfg, fileCfg.Validate()
}

// ratesConfig maps the server configuration onto the rates manager.
func ratesConfig(cfg appconf.Config) rates.Config {
	return rates.Config{
		URL:             cfg.RatesURL,
		RefreshInterval: cfg.RefreshInterval,
		Timeout:         cfg.FetchTimeout,
	}
}

// logLevel resolves -log-level, with -verbose forcing debug.
func logLevel(cfg appconf.Config) slog.Level {
	if cfg.Verbose {
		return slog.LevelDebug
	}
	return logging.ParseLevel(cfg.LogLevel)
}

const shutdownTimeout = 10 * time.Second
