package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"unitconv.dev/internal/conversion"
	"unitconv.dev/internal/logging"
)

// Fetcher retrieves a complete exchange-rate snapshot.
type Fetcher interface {
	Fetch(ctx context.Context) (conversion.RateSnapshot, error)
}

// FailureKind classifies why a refresh failed.
type FailureKind string

const (
	FailureNetwork   FailureKind = "network"
	FailureStatus    FailureKind = "status"
	FailureMalformed FailureKind = "malformed"
	FailureProvider  FailureKind = "provider"
)

// FetchError is returned by HTTPFetcher for every failed refresh.
type FetchError struct {
	Kind FailureKind
	URL  string
	Err  error
}

func (e *FetchError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("fetch rates (%s) from %s: %v", e.Kind, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

const maxBodyBytes = 1 << 20

// latestResponse is the subset of the provider payload we consume.
type latestResponse struct {
	Result    string             `json:"result"`
	ErrorType string             `json:"error-type"`
	Rates     map[string]float64 `json:"rates"`
}

// HTTPFetcher reads USD-based rates from an open.er-api.com compatible endpoint.
type HTTPFetcher struct {
	url    string
	client *http.Client
	logger *slog.Logger
	now    func() time.Time
}

// NewHTTPFetcher returns a fetcher for url whose requests give up after timeout. A nil
// logger uses slog.Default.
func NewHTTPFetcher(url string, timeout time.Duration, logger *slog.Logger) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPFetcher{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger.With(slog.String("component", "rates_fetcher")),
		now:    time.Now,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context) (conversion.RateSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return conversion.RateSnapshot{}, f.fail(FailureNetwork, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return conversion.RateSnapshot{}, f.fail(FailureNetwork, err)
	}
	defer logging.SafeCloseWithLogging(resp.Body, f.logger, "http_response_body")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return conversion.RateSnapshot{}, f.fail(FailureStatus,
			fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(b))))
	}

	var payload latestResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&payload); err != nil {
		return conversion.RateSnapshot{}, f.fail(FailureMalformed, err)
	}

	if payload.Result != "success" {
		reason := payload.ErrorType
		if reason == "" {
			reason = fmt.Sprintf("result %q", payload.Result)
		}
		return conversion.RateSnapshot{}, f.fail(FailureProvider, fmt.Errorf("provider reported error: %s", reason))
	}

	eur, okEUR := payload.Rates[conversion.EUR.Code()]
	gbp, okGBP := payload.Rates[conversion.GBP.Code()]
	if !okEUR || !okGBP {
		return conversion.RateSnapshot{}, f.fail(FailureMalformed, errors.New("payload lacks EUR or GBP rate"))
	}

	snapshot, err := conversion.NewRateSnapshot(map[conversion.CurrencyUnit]float64{
		conversion.USD: 1.0,
		conversion.EUR: eur,
		conversion.GBP: gbp,
	}, f.now())
	if err != nil {
		return conversion.RateSnapshot{}, f.fail(FailureMalformed, err)
	}
	return snapshot, nil
}

func (f *HTTPFetcher) fail(kind FailureKind, err error) *FetchError {
	return &FetchError{Kind: kind, URL: f.url, Err: err}
}

// FailureKindOf returns the failure kind of err, or "" when err is not a FetchError.
func FailureKindOf(err error) FailureKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}
