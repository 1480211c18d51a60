// Package analytics holds the pure computations behind the dashboard:
// cadence resampling, return volatility, cross rates and basket valuation.
// None of the functions keep state between calls.
package analytics

import (
	"math"
	"time"

	"github.com/SscSPs/currency_exchange_tracker/internal/apperrors"
	"github.com/SscSPs/currency_exchange_tracker/internal/core/domain"
)

// Resample reduces the columnA and columnB series of table to one row per
// cadence period, indexed by the period end and holding the mean of the
// period's observations. Daily returns the projection unchanged.
// An empty table yields an empty result.
func Resample(table domain.RateTable, columnA, columnB string, cadence domain.Cadence) (domain.RateTable, error) {
	if table.IsEmpty() {
		return domain.NewRateTable(columnA, columnB), nil
	}
	projected, err := table.Select(columnA, columnB)
	if err != nil {
		return domain.RateTable{}, err
	}
	if !projected.HasTemporalIndex() {
		return domain.RateTable{}, apperrors.ErrMissingTemporalIndex
	}
	if cadence == domain.Daily {
		return projected, nil
	}
	return aggregate(projected, cadence, mean), nil
}

// lastObservation resamples keeping the last non-NaN value of each period,
// carrying the previous period's value forward when a period has none.
func lastObservation(table domain.RateTable, cadence domain.Cadence) domain.RateTable {
	if cadence == domain.Daily {
		return table
	}
	out := aggregate(table, cadence, last)
	for _, c := range out.Codes {
		col := out.Values[c]
		for i := 1; i < len(col); i++ {
			if math.IsNaN(col[i]) {
				col[i] = col[i-1]
			}
		}
	}
	return out
}

type reducer func([]float64) float64

// aggregate groups consecutive rows by period end. Rows must be date ordered.
func aggregate(table domain.RateTable, cadence domain.Cadence, reduce reducer) domain.RateTable {
	out := domain.NewRateTable(table.Codes...)
	n := len(table.Dates)
	start := 0
	for start < n {
		end := cadence.PeriodEnd(table.Dates[start])
		stop := start
		for stop < n && !table.Dates[stop].After(endOfDay(end)) {
			stop++
		}
		row := make(map[string]float64, len(table.Codes))
		for _, c := range table.Codes {
			row[c] = reduce(table.Values[c][start:stop])
		}
		out.AppendRow(end, row)
		start = stop
	}
	return out
}

func endOfDay(d time.Time) time.Time {
	return d.Add(24*time.Hour - time.Nanosecond)
}

// mean averages the non-NaN values; NaN when there are none.
func mean(vs []float64) float64 {
	sum, n := 0.0, 0
	for _, v := range vs {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// last returns the final non-NaN value; NaN when there is none.
func last(vs []float64) float64 {
	for i := len(vs) - 1; i >= 0; i-- {
		if !math.IsNaN(vs[i]) {
			return vs[i]
		}
	}
	return math.NaN()
}
