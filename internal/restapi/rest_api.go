package restapi

import (
	"net/http"
	"time"

	"unitconv.dev/internal/app"
)

type RestAPI struct {
	*app.Application
	rateLimiter *RateLimitMiddleware
}

// NewRestAPI creates a new RestAPI instance with initialized rate limiter
func NewRestAPI(app *app.Application) *RestAPI {
	return &RestAPI{
		Application: app,
		rateLimiter: NewRateLimitMiddleware(app.Config.RateLimit, time.Second),
	}
}

// Handler wraps next with the API middleware chain: security headers, request logging,
// per-key rate limiting and gzip compression, outermost first.
func (api *RestAPI) Handler(next http.Handler) http.Handler {
	handler := CompressionMiddleware(next)
	handler = api.rateLimiter.Handler(handler)
	handler = NewRequestLoggingMiddleware(api.Logger)(handler)
	return api.WithSecurityHeaders(handler)
}

// Shutdown stops background work owned by the API.
func (api *RestAPI) Shutdown() {
	api.rateLimiter.Stop()
}
