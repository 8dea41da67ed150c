package models

import (
	"unitconv.dev/internal/conversion"
	"unitconv.dev/internal/rates"
	"unitconv.dev/internal/refreshlog"
)

// RatesEntry describes the snapshot in effect and how it got there.
type RatesEntry struct {
	Base      string             `json:"base"`
	Rates     map[string]float64 `json:"rates"`
	UpdatedAt *int64             `json:"updatedAt"`
	Fallback  bool               `json:"fallback"`
	Status    RefreshStatus      `json:"status"`
}

type RefreshStatus struct {
	LastAttempt     *int64 `json:"lastAttempt"`
	LastSuccess     *int64 `json:"lastSuccess"`
	LastError       string `json:"lastError,omitempty"`
	LastFailureKind string `json:"lastFailureKind,omitempty"`
	Attempts        int64  `json:"attempts"`
	Failures        int64  `json:"failures"`
	UsingFallback   bool   `json:"usingFallback"`
}

func NewRatesEntry(snapshot conversion.RateSnapshot, status rates.Status) RatesEntry {
	entry := RatesEntry{
		Base:     conversion.USD.Code(),
		Rates:    codeKeyed(snapshot.Rates()),
		Fallback: snapshot.IsFallback(),
		Status: RefreshStatus{
			LastAttempt:     millisOrNil(status.LastAttempt),
			LastSuccess:     millisOrNil(status.LastSuccess),
			LastError:       status.LastError,
			LastFailureKind: string(status.LastFailureKind),
			Attempts:        status.Attempts,
			Failures:        status.Failures,
			UsingFallback:   status.UsingFallback,
		},
	}
	if updated, ok := snapshot.UpdatedAt(); ok {
		entry.UpdatedAt = millisOrNil(updated)
	}
	return entry
}

// RefreshAttempt is one row of the refresh log.
type RefreshAttempt struct {
	ID          string             `json:"id"`
	AttemptedAt int64              `json:"attemptedAt"`
	Success     bool               `json:"success"`
	ErrorKind   string             `json:"errorKind,omitempty"`
	Error       string             `json:"error,omitempty"`
	Rates       map[string]float64 `json:"rates,omitempty"`
}

func NewRefreshAttempts(entries []refreshlog.Entry) []RefreshAttempt {
	out := make([]RefreshAttempt, 0, len(entries))
	for _, e := range entries {
		out = append(out, RefreshAttempt{
			ID:          e.ID,
			AttemptedAt: e.AttemptedAt.UnixMilli(),
			Success:     e.Success,
			ErrorKind:   e.ErrorKind,
			Error:       e.Error,
			Rates:       codeKeyed(e.Rates),
		})
	}
	return out
}

func codeKeyed(rates map[conversion.CurrencyUnit]float64) map[string]float64 {
	if rates == nil {
		return nil
	}
	out := make(map[string]float64, len(rates))
	for unit, rate := range rates {
		out[unit.Code()] = rate
	}
	return out
}
