package rates

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"unitconv.dev/internal/conversion"
	"unitconv.dev/internal/logging"
)

// Attempt describes the outcome of one refresh.
type Attempt struct {
	At       time.Time
	Snapshot conversion.RateSnapshot // zero when Err is set
	Err      error
}

// Recorder receives every refresh attempt, successful or not.
type Recorder interface {
	RecordRefresh(ctx context.Context, attempt Attempt) error
}

// Status summarizes the refresh history of a Manager.
type Status struct {
	LastAttempt     time.Time
	LastSuccess     time.Time
	LastError       string
	LastFailureKind FailureKind
	Attempts        int64
	Failures        int64
	UsingFallback   bool
}

// Manager owns the exchange-rate snapshot used by currency conversions. It starts from the
// fallback rates and replaces the snapshot wholesale after every successful refresh. Failed
// refreshes are logged and leave the previous snapshot in effect.
type Manager struct {
	config   Config
	fetcher  Fetcher
	logger   *slog.Logger
	recorder Recorder
	now      func() time.Time

	snapshot atomic.Pointer[conversion.RateSnapshot]

	refreshMutex sync.Mutex
	statusMutex  sync.RWMutex
	status       Status

	stopCtx      context.Context
	stopCancel   context.CancelFunc
	shutdownChan chan struct{}
	wg           sync.WaitGroup
	startOnce    sync.Once
	shutdownOnce sync.Once

	lifecycleMutex sync.Mutex
	stopped        bool
}

type Option func(*Manager)

func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithRecorder sends every refresh attempt to recorder.
func WithRecorder(recorder Recorder) Option {
	return func(m *Manager) {
		m.recorder = recorder
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewManager creates a Manager holding the fallback rates. A nil fetcher reads from config.URL
// over HTTP, sharing the manager's logger and clock. Call Start to begin refreshing.
func NewManager(config Config, fetcher Fetcher, opts ...Option) *Manager {
	config = config.withDefaults()

	manager := &Manager{
		config:       config,
		logger:       slog.Default(),
		now:          time.Now,
		shutdownChan: make(chan struct{}),
	}
	manager.stopCtx, manager.stopCancel = context.WithCancel(context.Background())
	for _, opt := range opts {
		opt(manager)
	}

	if fetcher == nil {
		httpFetcher := NewHTTPFetcher(config.URL, config.Timeout, manager.logger)
		httpFetcher.now = manager.now
		fetcher = httpFetcher
	}
	manager.fetcher = fetcher
	manager.logger = manager.logger.With(slog.String("component", "rates_manager"))

	fallback := conversion.FallbackRates()
	manager.snapshot.Store(&fallback)
	manager.status.UsingFallback = true

	return manager
}

// InitRatesManager creates a Manager, performs the startup refresh and schedules the
// periodic ones.
func InitRatesManager(config Config, fetcher Fetcher, opts ...Option) *Manager {
	manager := NewManager(config, fetcher, opts...)
	manager.Start()
	return manager
}

// Start refreshes once, bounded by the configured timeout, then refreshes every
// RefreshInterval until Shutdown. Shutdown cancels the startup refresh too. Calling Start
// more than once, or after Shutdown, has no effect.
func (manager *Manager) Start() {
	manager.startOnce.Do(func() {
		ctx, cancel := context.WithTimeout(manager.stopCtx, manager.config.Timeout)
		_ = manager.Refresh(ctx)
		cancel()

		manager.lifecycleMutex.Lock()
		defer manager.lifecycleMutex.Unlock()
		if manager.stopped {
			return
		}
		manager.wg.Add(1)
		go manager.refreshPeriodically()
	})
}

// Shutdown cancels any in-flight refresh, stops the refresh loop and waits for it to exit.
// It is safe to call repeatedly.
func (manager *Manager) Shutdown() {
	manager.shutdownOnce.Do(func() {
		manager.lifecycleMutex.Lock()
		manager.stopped = true
		manager.stopCancel()
		close(manager.shutdownChan)
		manager.lifecycleMutex.Unlock()

		manager.wg.Wait()
	})
}

// Current returns the snapshot in effect.
func (manager *Manager) Current() conversion.RateSnapshot {
	return *manager.snapshot.Load()
}

func (manager *Manager) Status() Status {
	manager.statusMutex.RLock()
	defer manager.statusMutex.RUnlock()
	return manager.status
}

// Config returns the effective configuration, defaults applied.
func (manager *Manager) Config() Config {
	return manager.config
}

// Refresh fetches a new snapshot and publishes it. On failure the current snapshot is kept
// and the error is returned to the caller only.
func (manager *Manager) Refresh(ctx context.Context) error {
	manager.refreshMutex.Lock()
	defer manager.refreshMutex.Unlock()

	logger := manager.logger
	start := manager.now()

	snapshot, err := manager.fetcher.Fetch(ctx)
	attempt := Attempt{At: start, Err: err}

	// publish the snapshot before the status that describes it
	if err == nil {
		attempt.Snapshot = snapshot
		manager.snapshot.Store(&snapshot)
	}

	manager.statusMutex.Lock()
	manager.status.Attempts++
	manager.status.LastAttempt = start
	if err != nil {
		manager.status.Failures++
		manager.status.LastError = err.Error()
		manager.status.LastFailureKind = FailureKindOf(err)
	} else {
		manager.status.LastSuccess = start
		manager.status.LastError = ""
		manager.status.LastFailureKind = ""
		manager.status.UsingFallback = false
	}
	manager.statusMutex.Unlock()

	if err != nil {
		logging.LogError(logger, "exchange rate refresh failed, keeping previous rates", err,
			slog.String("failure_kind", string(FailureKindOf(err))),
			slog.Bool("using_fallback", manager.Status().UsingFallback))
	} else {
		logging.LogOperation(logger, "exchange_rates_updated",
			slog.Any("rates", snapshot.Rates()),
			slog.Duration("duration", manager.now().Sub(start)))
	}

	manager.record(attempt)
	return err
}

func (manager *Manager) record(attempt Attempt) {
	if manager.recorder == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := manager.recorder.RecordRefresh(ctx, attempt); err != nil {
		logging.LogError(manager.logger, "failed to record refresh attempt", err)
	}
}

// refreshPeriodically waits RefreshInterval after every attempt, whatever its outcome.
func (manager *Manager) refreshPeriodically() {
	defer manager.wg.Done()

	timer := time.NewTimer(manager.config.RefreshInterval)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			ctx, cancel := context.WithTimeout(manager.stopCtx, manager.config.Timeout)
			logging.LogOperation(manager.logger, "refreshing_exchange_rates")
			_ = manager.Refresh(ctx)
			cancel()

			timer.Reset(manager.config.RefreshInterval)
		case <-manager.shutdownChan:
			logging.LogOperation(manager.logger, "shutting_down_rate_refresh")
			return
		}
	}
}
