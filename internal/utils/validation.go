package utils

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var (
	// unit identifiers are plain words
	validUnitPattern = regexp.MustCompile(`^[a-zA-Z]+$`)

	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
)

const (
	maxUnitLength  = 32
	maxValueLength = 64
)

// ValidateUnit checks the shape of a unit identifier. Whether the unit exists in a domain
// is decided by the conversion package.
func ValidateUnit(unit string) error {
	if unit == "" {
		return errors.New("unit cannot be empty")
	}
	if len(unit) > maxUnitLength {
		return fmt.Errorf("unit too long (max %d characters)", maxUnitLength)
	}
	if !validUnitPattern.MatchString(unit) {
		return errors.New("unit contains invalid characters")
	}
	return nil
}

// ValidateValue only bounds the length of the raw value. Empty or non-numeric values are
// allowed: they produce an empty conversion.
func ValidateValue(value string) error {
	if len(value) > maxValueLength {
		return fmt.Errorf("value too long (max %d characters)", maxValueLength)
	}
	return nil
}

// SanitizeInput removes HTML tags and surrounding whitespace.
func SanitizeInput(input string) string {
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(input, ""))
}

// ValidateConversionParams validates the query of a convert request and returns the
// sanitized value, from and to along with any field errors.
func ValidateConversionParams(params url.Values) (value, from, to string, fieldErrors map[string][]string) {
	fieldErrors = make(map[string][]string)

	value = SanitizeInput(params.Get("value"))
	if err := ValidateValue(value); err != nil {
		fieldErrors["value"] = append(fieldErrors["value"], err.Error())
	}

	from = SanitizeInput(params.Get("from"))
	if err := ValidateUnit(from); err != nil {
		fieldErrors["from"] = append(fieldErrors["from"], err.Error())
	}

	to = SanitizeInput(params.Get("to"))
	if err := ValidateUnit(to); err != nil {
		fieldErrors["to"] = append(fieldErrors["to"], err.Error())
	}

	return value, from, to, fieldErrors
}

// ParseIntParam retrieves an integer query parameter between 1 and max. A missing key
// returns def. Invalid values are reported in fieldErrors.
func ParseIntParam(params url.Values, key string, def, max int, fieldErrors map[string][]string) (int, map[string][]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}

	val := params.Get(key)
	if val == "" {
		return def, fieldErrors
	}

	n, err := strconv.Atoi(val)
	if err != nil || n < 1 || n > max {
		fieldErrors[key] = append(fieldErrors[key], fmt.Sprintf("Invalid field value for field %q.", key))
		return def, fieldErrors
	}
	return n, fieldErrors
}
