package domain

import (
	"math"
)

// PlatformFeeRate is the fixed surcharge added on top of a lawyer's
// hourly rate at booking time.
const PlatformFeeRate = 0.05

// Quote is the server-side price breakdown for one consultation.
type Quote struct {
	BaseRate    float64 `json:"base_rate"`
	PlatformFee float64 `json:"platform_fee"`
	Total       float64 `json:"total"`
}

// PriceQuote derives the platform fee and total from a base hourly
// rate. Pure: no I/O, deterministic. A zero rate yields a zero quote.
// Values are kept unrounded; rounding happens only at the presentation
// boundary via Rounded, so repeated quoting never compounds rounding
// error.
func PriceQuote(baseRate float64) Quote {
	fee := baseRate * PlatformFeeRate
	return Quote{
		BaseRate:    baseRate,
		PlatformFee: fee,
		Total:       baseRate + fee,
	}
}

// Rounded returns the quote with all amounts rounded to two decimal
// places for display.
func (q Quote) Rounded() Quote {
	return Quote{
		BaseRate:    round2(q.BaseRate),
		PlatformFee: round2(q.PlatformFee),
		Total:       round2(q.Total),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
