package restapi

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unitconv.dev/internal/app"
	"unitconv.dev/internal/logging"
	"unitconv.dev/internal/refreshlog"
)

// brokenHistory fails every read.
type brokenHistory struct{}

func (brokenHistory) Recent(ctx context.Context, limit int) ([]refreshlog.Entry, error) {
	return nil, errors.New("database is locked")
}

func (brokenHistory) Count(ctx context.Context) (int, error) {
	return 0, errors.New("database is locked")
}

func TestServerErrorLogsThroughRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewStructuredLogger(&buf, slog.LevelInfo)

	application := app.New(testConfig(), logger, nil)
	application.RefreshLog = brokenHistory{}
	api := NewRestAPI(application)
	t.Cleanup(api.Shutdown)

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/rates/refreshes?key=TEST")
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "internal server error", model.Text)

	output := buf.String()
	assert.Contains(t, output, `"msg":"internal server error"`)
	assert.Contains(t, output, `"error":"database is locked"`)
	assert.Contains(t, output, `"component":"http_server"`)
	assert.Contains(t, output, `"path":"/api/rates/refreshes"`)
}
