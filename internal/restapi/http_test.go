package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/require"

	"unitconv.dev/internal/app"
	"unitconv.dev/internal/appconf"
	"unitconv.dev/internal/conversion"
	"unitconv.dev/internal/logging"
	"unitconv.dev/internal/models"
	"unitconv.dev/internal/rates"
)

// stubFetcher always returns the same snapshot or error.
type stubFetcher struct {
	snapshot conversion.RateSnapshot
	err      error
}

func (f stubFetcher) Fetch(ctx context.Context) (conversion.RateSnapshot, error) {
	return f.snapshot, f.err
}

func testConfig() appconf.Config {
	return appconf.Config{
		Env:       appconf.EnvFlagToEnvironment("test"),
		ApiKeys:   []string{"TEST"},
		RateLimit: 100,
	}
}

// createTestApi creates a RestAPI whose rates manager has not refreshed yet.
func createTestApi(t *testing.T) *RestAPI {
	return createTestApiWithFetcher(t, testConfig(), stubFetcher{
		err: &rates.FetchError{Kind: rates.FailureNetwork, URL: "http://rates.test", Err: context.DeadlineExceeded},
	})
}

func createTestApiWithFetcher(t *testing.T, config appconf.Config, fetcher rates.Fetcher) *RestAPI {
	t.Helper()
	logger := logging.NewStructuredLogger(&bytes.Buffer{}, slog.LevelInfo)
	manager := rates.NewManager(rates.Config{}, fetcher, rates.WithLogger(logger))

	api := NewRestAPI(app.New(config, logger, manager))
	t.Cleanup(api.Shutdown)
	return api
}

func mustSnapshot(t *testing.T, eur, gbp float64, at time.Time) conversion.RateSnapshot {
	t.Helper()
	s, err := conversion.NewRateSnapshot(map[conversion.CurrencyUnit]float64{
		conversion.USD: 1, conversion.EUR: eur, conversion.GBP: gbp,
	}, at)
	require.NoError(t, err)
	return s
}

func newTestServer(api *RestAPI) *httptest.Server {
	router := httprouter.New()
	api.SetRoutes(router)
	return httptest.NewServer(api.Handler(router))
}

// serveAndRetrieveEndpoint sets up a test server, makes a request to the specified endpoint, and returns the response
// and decoded model.
func serveAndRetrieveEndpoint(t *testing.T, endpoint string) (*RestAPI, *http.Response, models.ResponseModel) {
	api := createTestApi(t)
	resp, model := serveApiAndRetrieveEndpoint(t, api, endpoint)
	return api, resp, model
}

func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, models.ResponseModel) {
	server := newTestServer(api)
	defer server.Close()

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer logging.SafeCloseWithLogging(resp.Body,
		slog.Default().With(slog.String("component", "test")),
		"http_response_body")

	var response models.ResponseModel
	err = json.NewDecoder(resp.Body).Decode(&response)
	require.NoError(t, err)

	return resp, response
}

func entryOf(t *testing.T, model models.ResponseModel) map[string]interface{} {
	t.Helper()
	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "data should be an object")
	entry, ok := data["entry"].(map[string]interface{})
	require.True(t, ok, "data.entry should be an object")
	return entry
}
