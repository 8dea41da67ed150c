package conversion

import (
	"fmt"
	"strings"
)

// Domain identifies one independently validated category of convertible quantities.
type Domain string

const (
	DomainLength      Domain = "length"
	DomainTemperature Domain = "temperature"
	DomainCurrency    Domain = "currency"
)

// Domains returns every supported domain in display order.
func Domains() []Domain {
	return []Domain{DomainLength, DomainTemperature, DomainCurrency}
}

// ParseDomain resolves a case-insensitive domain identifier.
func ParseDomain(s string) (Domain, error) {
	d := Domain(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case DomainLength, DomainTemperature, DomainCurrency:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDomain, s)
}

// LengthUnit is a unit of the length domain. Meter is the base unit.
type LengthUnit string

const (
	Millimeter LengthUnit = "millimeter"
	Centimeter LengthUnit = "centimeter"
	Meter      LengthUnit = "meter"
	Kilometer  LengthUnit = "kilometer"
	Inch       LengthUnit = "inch"
	Foot       LengthUnit = "foot"
	Yard       LengthUnit = "yard"
	Mile       LengthUnit = "mile"
)

// lengthUnits holds meters per unit and the short display name, in declaration order.
var lengthUnits = []struct {
	unit    LengthUnit
	factor  float64
	display string
}{
	{Millimeter, 0.001, "mm"},
	{Centimeter, 0.01, "cm"},
	{Meter, 1, "m"},
	{Kilometer, 1000, "km"},
	{Inch, 0.0254, "in"},
	{Foot, 0.3048, "ft"},
	{Yard, 0.9144, "yd"},
	{Mile, 1609.34, "mi"},
}

// LengthUnits lists the length units in display order.
func LengthUnits() []LengthUnit {
	out := make([]LengthUnit, len(lengthUnits))
	for i, u := range lengthUnits {
		out[i] = u.unit
	}
	return out
}

// Factor returns how many meters one unit equals.
func (u LengthUnit) Factor() (float64, bool) {
	for _, lu := range lengthUnits {
		if lu.unit == u {
			return lu.factor, true
		}
	}
	return 0, false
}

func (u LengthUnit) Valid() bool {
	_, ok := u.Factor()
	return ok
}

// Display returns the unit abbreviation, or the raw identifier for unknown units.
func (u LengthUnit) Display() string {
	for _, lu := range lengthUnits {
		if lu.unit == u {
			return lu.display
		}
	}
	return string(u)
}

// TemperatureUnit is a unit of the temperature domain.
type TemperatureUnit string

const (
	Celsius    TemperatureUnit = "celsius"
	Fahrenheit TemperatureUnit = "fahrenheit"
	Kelvin     TemperatureUnit = "kelvin"
)

// TemperatureUnits lists the temperature units in display order.
func TemperatureUnits() []TemperatureUnit {
	return []TemperatureUnit{Celsius, Fahrenheit, Kelvin}
}

func (u TemperatureUnit) Valid() bool {
	switch u {
	case Celsius, Fahrenheit, Kelvin:
		return true
	}
	return false
}

func (u TemperatureUnit) Display() string {
	switch u {
	case Celsius:
		return "°C"
	case Fahrenheit:
		return "°F"
	case Kelvin:
		return "K"
	}
	return string(u)
}

// CurrencyUnit is a unit of the currency domain. USD is the base unit.
type CurrencyUnit string

const (
	USD CurrencyUnit = "usd"
	EUR CurrencyUnit = "eur"
	GBP CurrencyUnit = "gbp"
)

// CurrencyUnits lists the currency units in display order.
func CurrencyUnits() []CurrencyUnit {
	return []CurrencyUnit{USD, EUR, GBP}
}

func (u CurrencyUnit) Valid() bool {
	switch u {
	case USD, EUR, GBP:
		return true
	}
	return false
}

// Code returns the ISO 4217 code, e.g. "EUR".
func (u CurrencyUnit) Code() string {
	return strings.ToUpper(string(u))
}

// Symbol returns the currency sign, e.g. "€".
func (u CurrencyUnit) Symbol() string {
	switch u {
	case USD:
		return "$"
	case EUR:
		return "€"
	case GBP:
		return "£"
	}
	return ""
}

func (u CurrencyUnit) Display() string {
	return u.Code()
}

// UnitInfo describes one unit for listings.
type UnitInfo struct {
	ID      string
	Display string
	Symbol  string
}

// Units lists the units of a domain with their display names.
func Units(d Domain) ([]UnitInfo, error) {
	var out []UnitInfo
	switch d {
	case DomainLength:
		for _, u := range LengthUnits() {
			out = append(out, UnitInfo{ID: string(u), Display: u.Display()})
		}
	case DomainTemperature:
		for _, u := range TemperatureUnits() {
			out = append(out, UnitInfo{ID: string(u), Display: u.Display()})
		}
	case DomainCurrency:
		for _, u := range CurrencyUnits() {
			out = append(out, UnitInfo{ID: string(u), Display: u.Display(), Symbol: u.Symbol()})
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDomain, d)
	}
	return out, nil
}

func normalizeUnit(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func parseLengthUnit(s string) (LengthUnit, error) {
	u := LengthUnit(normalizeUnit(s))
	if !u.Valid() {
		return "", fmt.Errorf("%w: %q is not a length unit", ErrUnknownUnit, s)
	}
	return u, nil
}

func parseTemperatureUnit(s string) (TemperatureUnit, error) {
	u := TemperatureUnit(normalizeUnit(s))
	if !u.Valid() {
		return "", fmt.Errorf("%w: %q is not a temperature unit", ErrUnknownUnit, s)
	}
	return u, nil
}

func parseCurrencyUnit(s string) (CurrencyUnit, error) {
	u := CurrencyUnit(normalizeUnit(s))
	if !u.Valid() {
		return "", fmt.Errorf("%w: %q is not a currency unit", ErrUnknownUnit, s)
	}
	return u, nil
}

// KnownUnit reports whether id names a unit of domain d, ignoring case and surrounding spaces.
func KnownUnit(d Domain, id string) bool {
	switch d {
	case DomainLength:
		_, err := parseLengthUnit(id)
		return err == nil
	case DomainTemperature:
		_, err := parseTemperatureUnit(id)
		return err == nil
	case DomainCurrency:
		_, err := parseCurrencyUnit(id)
		return err == nil
	}
	return false
}
