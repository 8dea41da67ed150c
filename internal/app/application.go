package app

import (
	"context"
	"log/slog"

	"unitconv.dev/internal/appconf"
	"unitconv.dev/internal/conversion"
	"unitconv.dev/internal/rates"
	"unitconv.dev/internal/refreshlog"
)

// RefreshHistory lists recorded refresh attempts, newest first.
type RefreshHistory interface {
	Recent(ctx context.Context, limit int) ([]refreshlog.Entry, error)
	Count(ctx context.Context) (int, error)
}

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config       appconf.Config
	Logger       *slog.Logger
	RatesManager *rates.Manager
	Converter    *conversion.Converter
	RefreshLog   RefreshHistory // nil when the refresh log is disabled
}

// New wires an Application around a started or unstarted rates manager. A nil manager
// means conversions use the fallback rates.
func New(config appconf.Config, logger *slog.Logger, manager *rates.Manager) *Application {
	if logger == nil {
		logger = slog.Default()
	}

	var source conversion.RateSource
	if manager != nil {
		source = manager
	}

	return &Application{
		Config:       config,
		Logger:       logger,
		RatesManager: manager,
		Converter:    conversion.NewConverter(source),
	}
}

// CurrentRates returns the snapshot currency conversions use.
func (app *Application) CurrentRates() conversion.RateSnapshot {
	return app.Converter.Rates()
}
