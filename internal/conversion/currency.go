package conversion

import "fmt"

// UpdatedLayout formats the rates timestamp appended to currency summaries.
const UpdatedLayout = "2006-01-02 15:04:05 MST"

// Currency converts an amount between currencies by way of USD using the given snapshot.
// Negative amounts are rejected.
func Currency(value float64, from, to CurrencyUnit, rates RateSnapshot) (Result, error) {
	fromRate, ok := rates.Rate(from)
	if !ok {
		return Result{}, fmt.Errorf("%w: no exchange rate for %q", ErrUnknownUnit, from)
	}
	toRate, ok := rates.Rate(to)
	if !ok {
		return Result{}, fmt.Errorf("%w: no exchange rate for %q", ErrUnknownUnit, to)
	}
	if !isFinite(value) {
		return Result{}, nil
	}
	if value < 0 {
		return Result{}, ErrNegativeAmount
	}

	usd := value / fromRate
	converted := usd * toRate
	if !isFinite(converted) {
		return Result{}, nil
	}

	res := newResult(DomainCurrency, value, converted, currencyPlaces)
	res.From, res.To = string(from), string(to)
	res.DisplayFrom, res.DisplayTo = from.Display(), to.Display()
	res.Summary = fmt.Sprintf("%s%s %s = %s%s %s",
		from.Symbol(), formatInput(value), from.Code(),
		to.Symbol(), res.Formatted, to.Code())

	if updated, ok := rates.UpdatedAt(); ok {
		ts := updated
		res.RatesUpdatedAt = &ts
		res.Summary += fmt.Sprintf(" (Updated: %s)", updated.Format(UpdatedLayout))
	}
	return res, nil
}
