package conversion

import "github.com/shopspring/decimal"

// lengthPlaces picks decimal places from the magnitude of the final converted value.
func lengthPlaces(result float64) int {
	switch {
	case result >= 1000:
		return 2
	case result >= 100:
		return 3
	default:
		return 4
	}
}

// temperaturePlaces widens precision for values close to zero.
func temperaturePlaces(result float64) int {
	if result > -1 && result < 1 {
		return 4
	}
	return 2
}

const currencyPlaces = 2

// RoundHalfAwayFromZero rounds v to the given number of decimal places. Rounding works on the
// shortest decimal representation of v, so 1.005 rounds to 1.01.
func RoundHalfAwayFromZero(v float64, places int) float64 {
	return decimal.NewFromFloat(v).Round(int32(places)).InexactFloat64()
}

// FormatFixed renders v with exactly the given number of decimal places.
func FormatFixed(v float64, places int) string {
	return decimal.NewFromFloat(v).StringFixed(int32(places))
}

// formatInput renders a caller-supplied value the way it was most likely typed.
func formatInput(v float64) string {
	return decimal.NewFromFloat(v).String()
}
