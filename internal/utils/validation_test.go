package utils

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUnit(t *testing.T) {
	tests := []struct {
		name    string
		unit    string
		wantErr bool
		errMsg  string
	}{
		{name: "valid unit", unit: "kilometer"},
		{name: "mixed case", unit: "Celsius"},
		{name: "empty", unit: "", wantErr: true, errMsg: "unit cannot be empty"},
		{name: "too long", unit: strings.Repeat("a", 33), wantErr: true, errMsg: "unit too long"},
		{name: "digits", unit: "km2", wantErr: true, errMsg: "invalid characters"},
		{name: "injection", unit: "usd;--", wantErr: true, errMsg: "invalid characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUnit(tt.unit)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateValue(t *testing.T) {
	assert.NoError(t, ValidateValue(""))
	assert.NoError(t, ValidateValue("abc"))
	assert.NoError(t, ValidateValue("-273.15"))
	assert.Error(t, ValidateValue(strings.Repeat("9", 65)))
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "100", SanitizeInput("  <b>100</b> "))
	assert.Equal(t, "alert(1)", SanitizeInput("<script>alert(1)</script>"))
}

func TestValidateConversionParams(t *testing.T) {
	t.Run("valid query", func(t *testing.T) {
		params := url.Values{"value": {" 12.5 "}, "from": {"meter"}, "to": {"foot"}}
		value, from, to, fieldErrors := ValidateConversionParams(params)
		assert.Empty(t, fieldErrors)
		assert.Equal(t, "12.5", value)
		assert.Equal(t, "meter", from)
		assert.Equal(t, "foot", to)
	})

	t.Run("missing units", func(t *testing.T) {
		_, _, _, fieldErrors := ValidateConversionParams(url.Values{"value": {"1"}})
		assert.Contains(t, fieldErrors, "from")
		assert.Contains(t, fieldErrors, "to")
		assert.NotContains(t, fieldErrors, "value")
	})

	t.Run("empty value is not an error", func(t *testing.T) {
		_, _, _, fieldErrors := ValidateConversionParams(url.Values{"from": {"usd"}, "to": {"eur"}})
		assert.Empty(t, fieldErrors)
	})
}

func TestParseIntParam(t *testing.T) {
	n, fieldErrors := ParseIntParam(url.Values{}, "limit", 20, 100, nil)
	assert.Equal(t, 20, n)
	assert.Empty(t, fieldErrors)

	n, fieldErrors = ParseIntParam(url.Values{"limit": {"5"}}, "limit", 20, 100, nil)
	assert.Equal(t, 5, n)
	assert.Empty(t, fieldErrors)

	for _, bad := range []string{"0", "101", "ten", "-3"} {
		n, fieldErrors = ParseIntParam(url.Values{"limit": {bad}}, "limit", 20, 100, nil)
		assert.Equal(t, 20, n, bad)
		assert.Equal(t, []string{`Invalid field value for field "limit".`}, fieldErrors["limit"], bad)
	}
}
