package conversion

import "fmt"

const absoluteZeroCelsius = 273.15

// temperatureFormula returns the closed-form conversion for a unit pair.
func temperatureFormula(from, to TemperatureUnit) (func(float64) float64, bool) {
	switch from {
	case Celsius:
		switch to {
		case Celsius:
			return identity, true
		case Fahrenheit:
			return func(v float64) float64 { return v*9/5 + 32 }, true
		case Kelvin:
			return func(v float64) float64 { return v + absoluteZeroCelsius }, true
		}
	case Fahrenheit:
		switch to {
		case Celsius:
			return func(v float64) float64 { return (v - 32) * 5 / 9 }, true
		case Fahrenheit:
			return identity, true
		case Kelvin:
			return func(v float64) float64 { return (v-32)*5/9 + absoluteZeroCelsius }, true
		}
	case Kelvin:
		switch to {
		case Celsius:
			return func(v float64) float64 { return v - absoluteZeroCelsius }, true
		case Fahrenheit:
			return func(v float64) float64 { return (v-absoluteZeroCelsius)*9/5 + 32 }, true
		case Kelvin:
			return identity, true
		}
	}
	return nil, false
}

func identity(v float64) float64 { return v }

// Temperature converts value between two temperature units.
//
// A negative Kelvin input is rejected before converting. After converting, only results
// landing in Kelvin are bounds-checked; a Celsius or Fahrenheit result below absolute zero
// is returned as is.
func Temperature(value float64, from, to TemperatureUnit) (Result, error) {
	formula, ok := temperatureFormula(from, to)
	if !ok {
		return Result{}, fmt.Errorf("%w: no temperature conversion from %q to %q", ErrUnknownUnit, from, to)
	}
	if !isFinite(value) {
		return Result{}, nil
	}
	if from == Kelvin && value < 0 {
		return Result{}, ErrNegativeKelvin
	}

	converted := formula(value)
	if to == Kelvin && converted < 0 {
		return Result{}, ErrBelowAbsoluteZero
	}
	if !isFinite(converted) {
		return Result{}, nil
	}

	res := newResult(DomainTemperature, value, converted, temperaturePlaces(converted))
	res.From, res.To = string(from), string(to)
	res.DisplayFrom, res.DisplayTo = from.Display(), to.Display()
	res.Summary = unitSummary(value, res.DisplayFrom, res.Formatted, res.DisplayTo)
	return res, nil
}
