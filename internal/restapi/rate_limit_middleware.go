package restapi

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"unitconv.dev/internal/models"
)

const (
	noKeyBucket       = "__no_key__"
	limiterIdleTTL    = 10 * time.Minute
	limiterCleanEvery = 5 * time.Minute
)

type keyLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware provides per-API-key rate limiting
type RateLimitMiddleware struct {
	limiters   map[string]*keyLimiter
	mu         sync.Mutex
	rateLimit  rate.Limit
	burstSize  int
	exemptKeys map[string]bool
	now        func() time.Time

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewRateLimitMiddleware creates a new rate limiting middleware.
// ratePerSecond requests are allowed per interval and per API key, with an equal burst.
// A non-positive ratePerSecond disables limiting. Callers must Stop the middleware to end
// its cleanup goroutine.
func NewRateLimitMiddleware(ratePerSecond int, interval time.Duration, exemptKeys ...string) *RateLimitMiddleware {
	rateLimit := rate.Inf
	burst := 1
	if ratePerSecond > 0 {
		rateLimit = rate.Every(interval / time.Duration(ratePerSecond))
		burst = ratePerSecond
	}

	rl := &RateLimitMiddleware{
		limiters:   make(map[string]*keyLimiter),
		rateLimit:  rateLimit,
		burstSize:  burst,
		exemptKeys: make(map[string]bool, len(exemptKeys)),
		now:        time.Now,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	for _, key := range exemptKeys {
		rl.exemptKeys[key] = true
	}

	go rl.cleanupLoop(limiterCleanEvery)

	return rl
}

// getLimiter gets or creates a rate limiter for the given API key
func (rl *RateLimitMiddleware) getLimiter(apiKey string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, exists := rl.limiters[apiKey]
	if !exists {
		entry = &keyLimiter{limiter: rate.NewLimiter(rl.rateLimit, rl.burstSize)}
		rl.limiters[apiKey] = entry
	}
	entry.lastSeen = rl.now()
	return entry.limiter
}

// Handler is the HTTP middleware function
func (rl *RateLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.rateLimit == rate.Inf {
			next.ServeHTTP(w, r)
			return
		}

		apiKey := r.URL.Query().Get("key")
		if apiKey == "" {
			apiKey = noKeyBucket
		}

		if rl.exemptKeys[apiKey] {
			next.ServeHTTP(w, r)
			return
		}

		if !rl.getLimiter(apiKey).Allow() {
			rl.sendRateLimitExceeded(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// sendRateLimitExceeded sends a 429 Too Many Requests response
func (rl *RateLimitMiddleware) sendRateLimitExceeded(w http.ResponseWriter) {
	retryAfter := 1
	if rl.rateLimit > 0 {
		retryAfter = int(math.Max(1, math.Ceil(1/float64(rl.rateLimit))))
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.burstSize))
	w.Header().Set("X-RateLimit-Remaining", "0")
	w.WriteHeader(http.StatusTooManyRequests)

	response := models.NewResponse(http.StatusTooManyRequests, nil, "Rate limit exceeded. Please try again later.")
	_ = writeJSON(w, response)
}

// cleanupLoop drops limiters that have been idle longer than limiterIdleTTL.
func (rl *RateLimitMiddleware) cleanupLoop(every time.Duration) {
	defer close(rl.done)

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stop:
			return
		}
	}
}

func (rl *RateLimitMiddleware) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-limiterIdleTTL)
	for key, entry := range rl.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(rl.limiters, key)
		}
	}
}

// Stop stops the cleanup goroutine and waits for it to exit.
func (rl *RateLimitMiddleware) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
	<-rl.done
}
