package conversion

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// RateSnapshot holds exchange rates expressed as units of each currency per 1 USD, and the
// time they were fetched. Snapshots are immutable; a refresh produces a new one.
type RateSnapshot struct {
	rates     map[CurrencyUnit]float64
	updatedAt time.Time
}

var fallbackRates = map[CurrencyUnit]float64{
	USD: 1.0,
	EUR: 0.92,
	GBP: 0.79,
}

// FallbackRates returns the fixed snapshot used until the first successful refresh.
// It carries no timestamp.
func FallbackRates() RateSnapshot {
	s, _ := NewRateSnapshot(fallbackRates, time.Time{})
	return s
}

// NewRateSnapshot validates and copies rates. Every known currency needs a finite rate
// above zero and USD must be exactly 1. A zero updatedAt means "never refreshed".
func NewRateSnapshot(rates map[CurrencyUnit]float64, updatedAt time.Time) (RateSnapshot, error) {
	copied := make(map[CurrencyUnit]float64, len(rates))
	for _, u := range CurrencyUnits() {
		r, ok := rates[u]
		if !ok {
			return RateSnapshot{}, fmt.Errorf("missing rate for %s", u.Code())
		}
		if math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
			return RateSnapshot{}, fmt.Errorf("invalid rate %v for %s", r, u.Code())
		}
		copied[u] = r
	}
	if copied[USD] != 1 {
		return RateSnapshot{}, errors.New("USD rate must be exactly 1")
	}
	return RateSnapshot{rates: copied, updatedAt: updatedAt}, nil
}

// Rate returns the units of u per 1 USD.
func (s RateSnapshot) Rate(u CurrencyUnit) (float64, bool) {
	r, ok := s.rates[u]
	return r, ok
}

// Rates returns a copy of all rates.
func (s RateSnapshot) Rates() map[CurrencyUnit]float64 {
	out := make(map[CurrencyUnit]float64, len(s.rates))
	for k, v := range s.rates {
		out[k] = v
	}
	return out
}

// UpdatedAt returns the refresh time, or false for the fallback snapshot.
func (s RateSnapshot) UpdatedAt() (time.Time, bool) {
	return s.updatedAt, !s.updatedAt.IsZero()
}

// IsFallback reports whether the snapshot has never been refreshed.
func (s RateSnapshot) IsFallback() bool {
	return s.updatedAt.IsZero()
}
