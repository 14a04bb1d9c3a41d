package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceQuote(t *testing.T) {
	t.Run("standard rate", func(t *testing.T) {
		q := PriceQuote(200.00)
		assert.Equal(t, 200.00, q.BaseRate)
		assert.InDelta(t, 10.00, q.PlatformFee, 1e-9)
		assert.InDelta(t, 210.00, q.Total, 1e-9)
	})

	t.Run("zero rate is not an error", func(t *testing.T) {
		q := PriceQuote(0)
		assert.Equal(t, 0.0, q.PlatformFee)
		assert.Equal(t, 0.0, q.Total)
	})

	t.Run("fee and total hold for arbitrary rates", func(t *testing.T) {
		rates := []float64{0, 0.01, 1, 33.33, 75.50, 149.99, 200, 999.99, 12345.67}
		for _, rate := range rates {
			q := PriceQuote(rate)
			assert.InDelta(t, rate*0.05, q.PlatformFee, 1e-9)
			assert.InDelta(t, rate*1.05, q.Total, 1e-9)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, PriceQuote(149.99), PriceQuote(149.99))
	})
}

func TestQuoteRounded(t *testing.T) {
	q := PriceQuote(99.99).Rounded()
	assert.Equal(t, 99.99, q.BaseRate)
	assert.Equal(t, 5.0, q.PlatformFee)
	assert.Equal(t, 104.99, q.Total)

	// Rounding is presentation-only: the raw quote keeps full precision.
	raw := PriceQuote(99.99)
	assert.NotEqual(t, raw.PlatformFee, math.Round(raw.PlatformFee*100)/100+1)
	assert.InDelta(t, 4.9995, raw.PlatformFee, 1e-9)
}
