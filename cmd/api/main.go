package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"unitconv.dev/internal/app"
	"unitconv.dev/internal/appconf"
	"unitconv.dev/internal/logging"
	"unitconv.dev/internal/rates"
	"unitconv.dev/internal/refreshlog"
	"unitconv.dev/internal/restapi"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := parseConfig(args, stderr)
	if err != nil {
		return err
	}

	logger := logging.NewStructuredLogger(stdout, logLevel(cfg))
	slog.SetDefault(logger)

	opts := []rates.Option{rates.WithLogger(logger)}

	var store *refreshlog.Store
	if cfg.RefreshLogPath != "" {
		store, err = refreshlog.Open(ctx, refreshlog.Config{DBPath: cfg.RefreshLogPath, Env: cfg.Env}, logger)
		if err != nil {
			logging.LogError(logger, "failed to open refresh log", err,
				slog.String("path", cfg.RefreshLogPath))
			return err
		}
		defer logging.SafeCloseWithLogging(store, logger, "refresh_log_db")
		opts = append(opts, rates.WithRecorder(store))
	}

	manager := rates.InitRatesManager(ratesConfig(cfg), nil, opts...)
	defer manager.Shutdown()

	application := app.New(cfg, logger, manager)
	if store != nil {
		application.RefreshLog = store
	}

	api := restapi.NewRestAPI(application)
	defer api.Shutdown()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      routes(api),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	return serve(ctx, srv, logger, cfg.Env)
}

// serve runs srv until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server, logger *slog.Logger, env appconf.Environment) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr, "env", env.String())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logging.LogOperation(logger, "shutting_down_server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
