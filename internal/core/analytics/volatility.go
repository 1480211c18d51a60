package analytics

import (
	"math"

	"github.com/SscSPs/currency_exchange_tracker/internal/apperrors"
	"github.com/SscSPs/currency_exchange_tracker/internal/core/domain"
)

// Volatility returns the sample standard deviation (N-1) of the row-over-row
// percentage returns of columnB, expressed in percent. columnA must exist but
// only the target column's returns are measured.
//
// ok is false when fewer than two returns are defined; volatility over fewer
// than two observations is unavailable rather than zero.
func Volatility(table domain.RateTable, columnA, columnB string) (value float64, ok bool, err error) {
	if !table.HasTemporalIndex() {
		return 0, false, apperrors.ErrMissingTemporalIndex
	}
	projected, err := table.Select(columnA, columnB)
	if err != nil {
		return 0, false, err
	}
	return volatilityOf(projected.Values[columnB])
}

// VolatilityAt measures volatility on the last observation of each cadence
// period instead of on every row. Daily is equivalent to Volatility.
func VolatilityAt(table domain.RateTable, columnA, columnB string, cadence domain.Cadence) (float64, bool, error) {
	if !table.HasTemporalIndex() {
		return 0, false, apperrors.ErrMissingTemporalIndex
	}
	projected, err := table.Select(columnA, columnB)
	if err != nil {
		return 0, false, err
	}
	sampled := lastObservation(projected, cadence)
	return volatilityOf(sampled.Values[columnB])
}

func volatilityOf(series []float64) (float64, bool, error) {
	sd, ok := SampleStdDev(PctChange(series))
	if !ok {
		return 0, false, nil
	}
	return sd * 100, true, nil
}

// PctChange returns r[i] = (v[i]-v[i-1])/v[i-1]. r[0] is NaN, as is any
// return whose neighbours are missing or whose previous value is zero.
func PctChange(vs []float64) []float64 {
	out := make([]float64, len(vs))
	for i := range vs {
		if i == 0 {
			out[i] = math.NaN()
			continue
		}
		prev, cur := vs[i-1], vs[i]
		if math.IsNaN(prev) || math.IsNaN(cur) || prev == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = (cur - prev) / prev
	}
	return out
}

// SampleStdDev is the N-1 standard deviation of the non-NaN values.
// ok is false with fewer than two values.
func SampleStdDev(vs []float64) (float64, bool) {
	m := mean(vs)
	n := 0
	sq := 0.0
	for _, v := range vs {
		if math.IsNaN(v) {
			continue
		}
		d := v - m
		sq += d * d
		n++
	}
	if n < 2 {
		return 0, false
	}
	return math.Sqrt(sq / float64(n-1)), true
}
