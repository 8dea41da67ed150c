package rates

import "time"

const (
	DefaultURL             = "https://open.er-api.com/v6/latest/USD"
	DefaultRefreshInterval = 6 * time.Hour
	DefaultTimeout         = 10 * time.Second
)

type Config struct {
	URL             string
	RefreshInterval time.Duration
	Timeout         time.Duration
}

// withDefaults fills unset fields.
func (config Config) withDefaults() Config {
	if config.URL == "" {
		config.URL = DefaultURL
	}
	if config.RefreshInterval <= 0 {
		config.RefreshInterval = DefaultRefreshInterval
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	return config
}
