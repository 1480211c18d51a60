package analytics

import (
	"math"

	"github.com/SscSPs/currency_exchange_tracker/internal/core/domain"
)

// CrossRate returns how many units of `to` one unit of `from` buys on the
// last row of table, computed as last(to)/last(from). Both columns share the
// same quoting currency in the source data.
//
// ok is false when the table is empty, `from` has no observations, or either
// last value is missing.
func CrossRate(table domain.RateTable, from, to string) (float64, bool, error) {
	projected, err := table.Select(from, to)
	if err != nil {
		return 0, false, err
	}
	if projected.IsEmpty() {
		return 0, false, nil
	}
	fromCol := projected.Values[from]
	if allNaN(fromCol) {
		return 0, false, nil
	}
	n := len(fromCol)
	f, t := fromCol[n-1], projected.Values[to][n-1]
	if math.IsNaN(f) || math.IsNaN(t) || f == 0 {
		return 0, false, nil
	}
	return t / f, true, nil
}

func allNaN(vs []float64) bool {
	for _, v := range vs {
		if !math.IsNaN(v) {
			return false
		}
	}
	return true
}
