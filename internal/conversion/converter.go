package conversion

import (
	"fmt"
	"strconv"
	"strings"
)

// RateSource supplies the exchange-rate snapshot currently in effect.
type RateSource interface {
	Current() RateSnapshot
}

// StaticRates is a RateSource that always returns the same snapshot.
type StaticRates RateSnapshot

func (s StaticRates) Current() RateSnapshot {
	return RateSnapshot(s)
}

// Request is a conversion as received from a caller: raw text plus unit identifiers.
type Request struct {
	Domain string
	Value  string
	From   string
	To     string
}

// Converter resolves text requests and dispatches them to the domain converters.
type Converter struct {
	rates RateSource
}

// NewConverter returns a Converter reading exchange rates from source. A nil source
// uses the fallback rates.
func NewConverter(source RateSource) *Converter {
	if source == nil {
		source = StaticRates(FallbackRates())
	}
	return &Converter{rates: source}
}

// Convert parses and performs req. Empty or non-numeric text yields an empty Result and no
// error. Domain rule violations are returned as *ValidationError; unknown domains and units
// as errors wrapping ErrUnknownDomain or ErrUnknownUnit.
func (c *Converter) Convert(req Request) (Result, error) {
	d, err := ParseDomain(req.Domain)
	if err != nil {
		return Result{}, err
	}

	switch d {
	case DomainLength:
		from, to, err := resolveUnits(req, parseLengthUnit)
		if err != nil {
			return Result{}, err
		}
		v, ok := ParseValue(req.Value)
		if !ok {
			return Result{}, nil
		}
		return Length(v, from, to)
	case DomainTemperature:
		from, to, err := resolveUnits(req, parseTemperatureUnit)
		if err != nil {
			return Result{}, err
		}
		v, ok := ParseValue(req.Value)
		if !ok {
			return Result{}, nil
		}
		return Temperature(v, from, to)
	case DomainCurrency:
		from, to, err := resolveUnits(req, parseCurrencyUnit)
		if err != nil {
			return Result{}, err
		}
		v, ok := ParseValue(req.Value)
		if !ok {
			return Result{}, nil
		}
		return Currency(v, from, to, c.rates.Current())
	}
	return Result{}, fmt.Errorf("%w: %q", ErrUnknownDomain, req.Domain)
}

// Rates returns the snapshot currency conversions currently use.
func (c *Converter) Rates() RateSnapshot {
	return c.rates.Current()
}

func resolveUnits[U ~string](req Request, parse func(string) (U, error)) (U, U, error) {
	from, err := parse(req.From)
	if err != nil {
		return "", "", err
	}
	to, err := parse(req.To)
	if err != nil {
		return "", "", err
	}
	return from, to, nil
}

// ParseValue parses user-entered decimal text into a finite number. It reports false for
// empty, non-numeric, NaN and infinite input, for trailing garbage such as "12abc", and for
// hexadecimal or underscore-separated forms.
func ParseValue(text string) (float64, bool) {
	s := strings.TrimSpace(text)
	if s == "" || strings.ContainsAny(s, "xX_") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !isFinite(v) {
		return 0, false
	}
	return v, true
}
