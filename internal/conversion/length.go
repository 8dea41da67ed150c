package conversion

import (
	"fmt"
	"math"
)

// Length converts value between two length units by scaling through meters.
// Non-finite values, and values whose conversion overflows, produce an empty result. Length has no validation rules: negative
// values are converted like any other.
func Length(value float64, from, to LengthUnit) (Result, error) {
	fromFactor, ok := from.Factor()
	if !ok {
		return Result{}, fmt.Errorf("%w: %q is not a length unit", ErrUnknownUnit, from)
	}
	toFactor, ok := to.Factor()
	if !ok {
		return Result{}, fmt.Errorf("%w: %q is not a length unit", ErrUnknownUnit, to)
	}
	if !isFinite(value) {
		return Result{}, nil
	}

	meters := value * fromFactor
	converted := meters / toFactor
	if !isFinite(converted) {
		return Result{}, nil
	}

	res := newResult(DomainLength, value, converted, lengthPlaces(converted))
	res.From, res.To = string(from), string(to)
	res.DisplayFrom, res.DisplayTo = from.Display(), to.Display()
	res.Summary = unitSummary(value, res.DisplayFrom, res.Formatted, res.DisplayTo)
	return res, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
