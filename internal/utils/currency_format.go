package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

// RatePrecision is the number of decimals shown for exchange rates.
const RatePrecision = 4

// FormatWithPrecision formats an amount with the given precision.
// Example: 83.123456 with precision 4 returns "83.1235"
func FormatWithPrecision(amount float64, precision int) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return ""
	}
	return decimal.NewFromFloat(amount).StringFixed(int32(precision))
}

// FormatRate formats a rate with RatePrecision decimals.
func FormatRate(rate float64) string {
	return FormatWithPrecision(rate, RatePrecision)
}

// NullableFloat maps NaN and infinities to nil so the value can be JSON encoded.
func NullableFloat(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
