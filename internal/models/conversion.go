package models

import (
	"time"

	"unitconv.dev/internal/conversion"
)

// ConversionEntry is the API form of a conversion.Result.
type ConversionEntry struct {
	Domain         string  `json:"domain"`
	Input          float64 `json:"input"`
	Value          float64 `json:"value"`
	Formatted      string  `json:"formatted"`
	Precision      int     `json:"precision"`
	From           string  `json:"from"`
	To             string  `json:"to"`
	DisplayFrom    string  `json:"displayFrom"`
	DisplayTo      string  `json:"displayTo"`
	Summary        string  `json:"summary"`
	RatesUpdatedAt *int64  `json:"ratesUpdatedAt,omitempty"` // epoch millis, currency only
}

func NewConversionEntry(result conversion.Result) ConversionEntry {
	entry := ConversionEntry{
		Domain:      string(result.Domain),
		Input:       result.Input,
		Value:       result.Value,
		Formatted:   result.Formatted,
		Precision:   result.Precision,
		From:        result.From,
		To:          result.To,
		DisplayFrom: result.DisplayFrom,
		DisplayTo:   result.DisplayTo,
		Summary:     result.Summary,
	}
	if result.RatesUpdatedAt != nil {
		ms := result.RatesUpdatedAt.UnixMilli()
		entry.RatesUpdatedAt = &ms
	}
	return entry
}

// ValidationErrorData is the data payload of a 422 response.
type ValidationErrorData struct {
	ErrorKind string `json:"errorKind"`
}

type UnitEntry struct {
	ID      string `json:"id"`
	Display string `json:"display"`
	Symbol  string `json:"symbol,omitempty"`
}

func NewUnitEntries(units []conversion.UnitInfo) []UnitEntry {
	entries := make([]UnitEntry, 0, len(units))
	for _, u := range units {
		entries = append(entries, UnitEntry{ID: u.ID, Display: u.Display, Symbol: u.Symbol})
	}
	return entries
}

func millisOrNil(t time.Time) *int64 {
	if t.IsZero() {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}
