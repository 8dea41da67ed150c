package conversion

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrencyWithFallbackRates(t *testing.T) {
	rates := FallbackRates()

	res, err := Currency(100, USD, EUR, rates)
	require.NoError(t, err)
	assert.Equal(t, "92.00", res.Formatted)
	assert.Equal(t, 2, res.Precision)
	assert.Equal(t, "$100 USD = €92.00 EUR", res.Summary)
	assert.Nil(t, res.RatesUpdatedAt, "fallback rates carry no timestamp")

	res, err = Currency(79, GBP, USD, rates)
	require.NoError(t, err)
	assert.Equal(t, "100.00", res.Formatted)
}

func TestCurrencyRoundTrip(t *testing.T) {
	rates := FallbackRates()
	for _, x := range CurrencyUnits() {
		for _, y := range CurrencyUnits() {
			for _, v := range []float64{0, 1, 19.99, 250, 1e6} {
				there, err := Currency(v, x, y, rates)
				require.NoError(t, err)
				back, err := Currency(there.Value, y, x, rates)
				require.NoError(t, err)
				assert.InDelta(t, v, back.Value, 0.02, "%v %s->%s->%s", v, x, y, x)
			}
		}
	}
}

func TestCurrencyNegativeAmount(t *testing.T) {
	res, err := Currency(-5, USD, EUR, FallbackRates())
	assert.ErrorIs(t, err, ErrNegativeAmount)
	assert.Equal(t, "Amount cannot be negative", err.Error())
	assert.True(t, res.Empty())
}

func TestCurrencySummaryIncludesUpdateTime(t *testing.T) {
	updated := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rates, err := NewRateSnapshot(map[CurrencyUnit]float64{USD: 1, EUR: 0.9, GBP: 0.8}, updated)
	require.NoError(t, err)

	res, err := Currency(10, USD, GBP, rates)
	require.NoError(t, err)
	assert.Equal(t, "8.00", res.Formatted)
	assert.Equal(t, "$10 USD = £8.00 GBP (Updated: 2026-01-02 03:04:05 UTC)", res.Summary)
	require.NotNil(t, res.RatesUpdatedAt)
	assert.True(t, updated.Equal(*res.RatesUpdatedAt))
}

func TestCurrencyEmptySnapshot(t *testing.T) {
	_, err := Currency(1, USD, EUR, RateSnapshot{})
	assert.ErrorIs(t, err, ErrUnknownUnit)
}

func TestNewRateSnapshot(t *testing.T) {
	t.Run("missing currency", func(t *testing.T) {
		_, err := NewRateSnapshot(map[CurrencyUnit]float64{USD: 1, EUR: 0.9}, time.Time{})
		assert.ErrorContains(t, err, "missing rate for GBP")
	})

	t.Run("non positive rate", func(t *testing.T) {
		_, err := NewRateSnapshot(map[CurrencyUnit]float64{USD: 1, EUR: 0, GBP: 0.8}, time.Time{})
		assert.ErrorContains(t, err, "invalid rate")
	})

	t.Run("usd must be the base", func(t *testing.T) {
		_, err := NewRateSnapshot(map[CurrencyUnit]float64{USD: 1.1, EUR: 0.9, GBP: 0.8}, time.Time{})
		assert.Error(t, err)
	})

	t.Run("input map is copied", func(t *testing.T) {
		in := map[CurrencyUnit]float64{USD: 1, EUR: 0.9, GBP: 0.8}
		s, err := NewRateSnapshot(in, time.Time{})
		require.NoError(t, err)

		in[EUR] = 5
		out := s.Rates()
		out[GBP] = 7

		eur, _ := s.Rate(EUR)
		gbp, _ := s.Rate(GBP)
		assert.Equal(t, 0.9, eur)
		assert.Equal(t, 0.8, gbp)
	})

	t.Run("fallback has no timestamp", func(t *testing.T) {
		s := FallbackRates()
		_, ok := s.UpdatedAt()
		assert.False(t, ok)
		assert.True(t, s.IsFallback())
		eur, _ := s.Rate(EUR)
		assert.Equal(t, 0.92, eur)
	})
}

func TestCurrencyOverflowIsEmpty(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		from, to CurrencyUnit
	}{
		{"pound to dollar", 1.7e308, GBP, USD},
		{"euro to pound", math.MaxFloat64, EUR, GBP},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var res Result
			var err error
			require.NotPanics(t, func() { res, err = Currency(tt.value, tt.from, tt.to, FallbackRates()) })
			assert.NoError(t, err)
			assert.True(t, res.Empty())
		})
	}
}
