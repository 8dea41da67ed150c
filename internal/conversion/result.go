package conversion

import (
	"fmt"
	"time"
)

// Result is the outcome of a single conversion. The zero Result is the empty (no-op) result
// produced for missing or non-numeric input.
type Result struct {
	Domain Domain
	// Input is the parsed value supplied by the caller.
	Input float64
	// Raw is the full precision converted value.
	Raw float64
	// Value is Raw rounded to Precision decimal places.
	Value     float64
	Formatted string
	Precision int

	From        string
	To          string
	DisplayFrom string
	DisplayTo   string
	Summary     string

	// RatesUpdatedAt is set for currency results computed from a refreshed snapshot.
	RatesUpdatedAt *time.Time
}

// Empty reports whether the result carries no conversion.
func (r Result) Empty() bool {
	return r.Domain == ""
}

func newResult(d Domain, input, raw float64, places int) Result {
	return Result{
		Domain:    d,
		Input:     input,
		Raw:       raw,
		Value:     RoundHalfAwayFromZero(raw, places),
		Formatted: FormatFixed(raw, places),
		Precision: places,
	}
}

func unitSummary(input float64, fromDisplay, formatted, toDisplay string) string {
	return fmt.Sprintf("%s %s = %s %s", formatInput(input), fromDisplay, formatted, toDisplay)
}
