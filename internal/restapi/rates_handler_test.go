package restapi

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unitconv.dev/internal/appconf"
	"unitconv.dev/internal/rates"
	"unitconv.dev/internal/refreshlog"
)

func TestRatesHandlerFallback(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/rates?key=TEST")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	entry := entryOf(t, model)
	assert.Equal(t, "USD", entry["base"])
	assert.Equal(t, true, entry["fallback"])
	assert.Nil(t, entry["updatedAt"])

	ratesMap, ok := entry["rates"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 0.92, ratesMap["EUR"])
	assert.Equal(t, 0.79, ratesMap["GBP"])
	assert.Equal(t, 1.0, ratesMap["USD"])
}

func TestRatesHandlerAfterRefreshFailure(t *testing.T) {
	api := createTestApi(t)
	require.Error(t, api.RatesManager.Refresh(context.Background()))

	_, model := serveApiAndRetrieveEndpoint(t, api, "/api/rates?key=TEST")

	status, ok := entryOf(t, model)["status"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), status["attempts"])
	assert.Equal(t, float64(1), status["failures"])
	assert.Equal(t, "network", status["lastFailureKind"])
	assert.Equal(t, true, status["usingFallback"])
	assert.Nil(t, status["lastSuccess"])
}

func TestRatesHandlerAfterRefresh(t *testing.T) {
	at := time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)
	api := createTestApiWithFetcher(t, testConfig(), stubFetcher{snapshot: mustSnapshot(t, 0.9, 0.75, at)})
	require.NoError(t, api.RatesManager.Refresh(context.Background()))

	_, model := serveApiAndRetrieveEndpoint(t, api, "/api/rates?key=TEST")

	entry := entryOf(t, model)
	assert.Equal(t, false, entry["fallback"])
	assert.Equal(t, float64(at.UnixMilli()), entry["updatedAt"])
	assert.Equal(t, 0.75, entry["rates"].(map[string]interface{})["GBP"])
}

func TestRefreshesHandlerWithoutLog(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/rates/refreshes?key=TEST")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "refresh log disabled", model.Text)
}

func TestRefreshesHandler(t *testing.T) {
	store, err := refreshlog.Open(context.Background(), refreshlog.Config{DBPath: ":memory:", Env: appconf.Test}, nil)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	fetcher := stubFetcher{err: &rates.FetchError{Kind: rates.FailureStatus, URL: "http://rates.test", Err: assert.AnError}}
	manager := rates.NewManager(rates.Config{}, fetcher, rates.WithRecorder(store))
	for i := 0; i < 3; i++ {
		require.Error(t, manager.Refresh(context.Background()))
	}

	api := createTestApi(t)
	api.RatesManager = manager
	api.RefreshLog = store

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/rates/refreshes?key=TEST&limit=2")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok)
	list, ok := data["list"].([]interface{})
	require.True(t, ok)
	require.Len(t, list, 2)
	assert.Equal(t, true, data["limitExceeded"], "three attempts recorded, two returned")

	first := list[0].(map[string]interface{})
	assert.Equal(t, false, first["success"])
	assert.Equal(t, "status", first["errorKind"])
	assert.NotEmpty(t, first["id"])
}

func TestRefreshesHandlerWithinLimit(t *testing.T) {
	store, err := refreshlog.Open(context.Background(), refreshlog.Config{DBPath: ":memory:", Env: appconf.Test}, nil)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	manager := rates.NewManager(rates.Config{}, stubFetcher{snapshot: mustSnapshot(t, 0.9, 0.8, time.Now())},
		rates.WithRecorder(store))
	require.NoError(t, manager.Refresh(context.Background()))

	api := createTestApi(t)
	api.RefreshLog = store

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/rates/refreshes?key=TEST")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Len(t, data["list"], 1)
	assert.Equal(t, false, data["limitExceeded"])
}

func TestRefreshesHandlerInvalidLimit(t *testing.T) {
	api := createTestApi(t)
	store, err := refreshlog.Open(context.Background(), refreshlog.Config{DBPath: ":memory:", Env: appconf.Test}, nil)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	api.RefreshLog = store

	resp, _ := serveApiAndRetrieveEndpoint(t, api, "/api/rates/refreshes?key=TEST&limit=lots")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
