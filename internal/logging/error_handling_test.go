package logging

import (
	"bytes"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeClose(t *testing.T) {
	t.Run("closes response body without logging", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"result":"success"}`))
		}))
		defer server.Close()

		resp, err := http.Get(server.URL)
		require.NoError(t, err)

		SafeCloseWithLogging(resp.Body, logger, "http_response_body")
		assert.NotContains(t, buf.String(), `"level":"ERROR"`)
	})

	t.Run("logs error when close fails", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		SafeCloseWithLogging(&errorCloser{err: assert.AnError}, logger, "refresh_log")

		output := buf.String()
		assert.Contains(t, output, `"level":"ERROR"`)
		assert.Contains(t, output, `"msg":"failed to close resource"`)
		assert.Contains(t, output, `"resource":"refresh_log"`)
	})

	t.Run("nil closer is ignored", func(t *testing.T) {
		assert.NotPanics(t, func() {
			SafeCloseWithLogging(nil, nil, "nothing")
		})
	})
}

func TestSafeRollback(t *testing.T) {
	t.Run("logs failed rollback", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		SafeRollbackWithLogging(&mockTransaction{rollbackErr: assert.AnError}, logger, "record_refresh")

		output := buf.String()
		assert.Contains(t, output, `"level":"ERROR"`)
		assert.Contains(t, output, `"msg":"failed to rollback transaction"`)
		assert.Contains(t, output, `"operation":"record_refresh"`)
	})

	t.Run("ignores rollback after commit", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		tx := &mockTransaction{rollbackErr: fmt.Errorf("rollback: %w", sql.ErrTxDone)}
		SafeRollbackWithLogging(tx, logger, "record_refresh")

		assert.Empty(t, buf.String())
	})

	t.Run("successful rollback is silent", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		SafeRollbackWithLogging(&mockTransaction{}, logger, "record_refresh")

		assert.Empty(t, buf.String())
	})
}

func TestHandleDeferredError(t *testing.T) {
	t.Run("deferred failure becomes the returned error", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		run := func() (err error) {
			defer HandleDeferredError(&err, func() error {
				return assert.AnError
			}, logger, "close_rows")
			return nil
		}

		err := run()
		require.Error(t, err)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "close_rows failed")
		assert.Contains(t, buf.String(), `"msg":"deferred operation failed"`)
	})

	t.Run("original error wins", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)
		original := fmt.Errorf("scan failed")

		run := func() (err error) {
			defer HandleDeferredError(&err, func() error {
				return assert.AnError
			}, logger, "close_rows")
			return original
		}

		err := run()
		assert.Same(t, original, err)
		assert.Contains(t, buf.String(), `"level":"ERROR"`)
	})

	t.Run("successful deferred op leaves error untouched", func(t *testing.T) {
		var err error
		HandleDeferredError(&err, func() error { return nil }, nil, "noop")
		assert.NoError(t, err)
	})
}

type errorCloser struct {
	err error
}

func (e *errorCloser) Close() error {
	return e.err
}

type mockTransaction struct {
	rollbackErr error
}

func (m *mockTransaction) Rollback() error {
	return m.rollbackErr
}
