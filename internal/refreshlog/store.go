// Package refreshlog keeps an audit trail of exchange-rate refresh attempts in SQLite.
// It is write-mostly: rates are never loaded back from it.
package refreshlog

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"unitconv.dev/internal/appconf"
	"unitconv.dev/internal/conversion"
	"unitconv.dev/internal/logging"
	"unitconv.dev/internal/rates"
)

//go:embed schema.sql
var ddl string

const DefaultLimit = 20

// Config holds configuration options for the Store
type Config struct {
	DBPath string // Path to the SQLite database file, or ":memory:"
	Env    appconf.Environment
}

// Entry is one stored refresh attempt.
type Entry struct {
	ID          string
	AttemptedAt time.Time
	Success     bool
	ErrorKind   string
	Error       string
	Rates       map[conversion.CurrencyUnit]float64 // nil for failed attempts
}

// Store records refresh attempts. It implements rates.Recorder.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
	newID  func() string
}

var _ rates.Recorder = (*Store)(nil)

// Open creates or opens the database at config.DBPath and runs the schema migration.
func Open(ctx context.Context, config Config, logger *slog.Logger) (*Store, error) {
	if config.Env == appconf.Test && config.DBPath != ":memory:" {
		return nil, fmt.Errorf("refresh log is being created in a file in the test environment: %s", config.DBPath)
	}
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite", config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	// every :memory: connection is a separate database
	db.SetMaxOpenConns(1)

	if err := performDatabaseMigration(ctx, db); err != nil {
		logging.SafeCloseWithLogging(db, logger, "refresh_log_db")
		return nil, fmt.Errorf("error performing database migration: %w", err)
	}

	return &Store{
		db:     db,
		logger: logger.With(slog.String("component", "refresh_log")),
		newID:  func() string { return uuid.NewString() },
	}, nil
}

func performDatabaseMigration(ctx context.Context, db *sql.DB) error {
	for _, stmt := range strings.Split(ddl, "-- migrate") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("error executing DDL statement [%s]: %w", stmt, err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRefresh stores a rates.Attempt.
func (s *Store) RecordRefresh(ctx context.Context, attempt rates.Attempt) error {
	entry := Entry{
		AttemptedAt: attempt.At,
		Success:     attempt.Err == nil,
	}
	if attempt.Err != nil {
		entry.Error = attempt.Err.Error()
		entry.ErrorKind = string(rates.FailureKindOf(attempt.Err))
	} else {
		entry.Rates = attempt.Snapshot.Rates()
	}
	_, err := s.Record(ctx, entry)
	return err
}

// Record inserts entry and returns its id. An empty entry.ID gets a fresh UUID.
func (s *Store) Record(ctx context.Context, entry Entry) (id string, err error) {
	id = entry.ID
	if id == "" {
		id = s.newID()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin refresh log insert: %w", err)
	}
	defer logging.SafeRollbackWithLogging(tx, s.logger, "record_refresh")

	_, err = tx.ExecContext(ctx,
		`INSERT INTO refresh_attempts (id, attempted_at, success, error_kind, error, usd, eur, gbp)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		entry.AttemptedAt.UnixMilli(),
		boolToInt(entry.Success),
		entry.ErrorKind,
		entry.Error,
		rateOrNull(entry.Rates, conversion.USD),
		rateOrNull(entry.Rates, conversion.EUR),
		rateOrNull(entry.Rates, conversion.GBP),
	)
	if err != nil {
		return "", fmt.Errorf("insert refresh attempt: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit refresh attempt: %w", err)
	}
	return id, nil
}

// Recent returns up to limit attempts, newest first. A non-positive limit means DefaultLimit.
func (s *Store) Recent(ctx context.Context, limit int) (entries []Entry, err error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, attempted_at, success, error_kind, error, usd, eur, gbp
		 FROM refresh_attempts
		 ORDER BY attempted_at DESC, rowid DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query refresh attempts: %w", err)
	}
	defer logging.HandleDeferredError(&err, rows.Close, s.logger, "close_refresh_rows")

	for rows.Next() {
		var (
			entry         Entry
			attemptedAt   int64
			success       int64
			usd, eur, gbp sql.NullFloat64
		)
		if err := rows.Scan(&entry.ID, &attemptedAt, &success, &entry.ErrorKind, &entry.Error, &usd, &eur, &gbp); err != nil {
			return nil, fmt.Errorf("scan refresh attempt: %w", err)
		}
		entry.AttemptedAt = time.UnixMilli(attemptedAt).UTC()
		entry.Success = success != 0
		if usd.Valid && eur.Valid && gbp.Valid {
			entry.Rates = map[conversion.CurrencyUnit]float64{
				conversion.USD: usd.Float64,
				conversion.EUR: eur.Float64,
				conversion.GBP: gbp.Float64,
			}
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate refresh attempts: %w", err)
	}
	return entries, nil
}

// Count returns the number of stored attempts.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM refresh_attempts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count refresh attempts: %w", err)
	}
	return n, nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func rateOrNull(rates map[conversion.CurrencyUnit]float64, unit conversion.CurrencyUnit) sql.NullFloat64 {
	v, ok := rates[unit]
	return sql.NullFloat64{Float64: v, Valid: ok}
}
