package domain

import (
	"math"
	"sort"
	"time"

	"github.com/SscSPs/currency_exchange_tracker/internal/apperrors"
)

// DateColumn is the name of the date axis in CSV files and SQL tables.
const DateColumn = "Date"

// RateTable is a date-indexed table of per-currency rates.
// Values are stored column-wise; a missing observation is NaN.
// Tables produced by the loaders have unique, non-decreasing dates.
type RateTable struct {
	Dates  []time.Time
	Codes  []string // column order
	Values map[string][]float64
}

// NewRateTable creates an empty table with the given currency columns.
func NewRateTable(codes ...string) RateTable {
	t := RateTable{
		Codes:  make([]string, 0, len(codes)),
		Values: make(map[string][]float64, len(codes)),
	}
	for _, c := range codes {
		if _, ok := t.Values[c]; ok {
			continue
		}
		t.Codes = append(t.Codes, c)
		t.Values[c] = []float64{}
	}
	return t
}

// Len returns the number of rows.
func (t RateTable) Len() int {
	if len(t.Dates) > 0 {
		return len(t.Dates)
	}
	for _, v := range t.Values {
		if len(v) > 0 {
			return len(v)
		}
	}
	return 0
}

// IsEmpty reports whether the table has no rows.
func (t RateTable) IsEmpty() bool { return t.Len() == 0 }

// HasTemporalIndex reports whether every row has a date.
// An empty table trivially has one.
func (t RateTable) HasTemporalIndex() bool {
	return len(t.Dates) == t.Len()
}

// Has reports whether code is a column of the table.
func (t RateTable) Has(code string) bool {
	_, ok := t.Values[code]
	return ok
}

// Column returns the values of a currency column.
// The returned slice is shared with the table and must not be modified.
func (t RateTable) Column(code string) ([]float64, error) {
	v, ok := t.Values[code]
	if !ok {
		return nil, apperrors.NewMissingColumnError(code)
	}
	return v, nil
}

// AppendRow adds a row; codes missing from rates are stored as NaN.
// Rates for codes that are not columns of the table are ignored.
func (t *RateTable) AppendRow(date time.Time, rates map[string]float64) {
	if t.Values == nil {
		t.Values = map[string][]float64{}
	}
	t.Dates = append(t.Dates, date)
	for _, c := range t.Codes {
		v, ok := rates[c]
		if !ok {
			v = math.NaN()
		}
		t.Values[c] = append(t.Values[c], v)
	}
}

// Row returns the rates of row i keyed by currency code.
func (t RateTable) Row(i int) map[string]float64 {
	out := make(map[string]float64, len(t.Codes))
	for _, c := range t.Codes {
		out[c] = t.Values[c][i]
	}
	return out
}

// Select projects the table onto the given columns, in the given order.
// A repeated code is kept once.
func (t RateTable) Select(codes ...string) (RateTable, error) {
	for _, c := range codes {
		if !t.Has(c) {
			return RateTable{}, apperrors.NewMissingColumnError(c)
		}
	}
	out := NewRateTable(codes...)
	out.Dates = append([]time.Time(nil), t.Dates...)
	for _, c := range out.Codes {
		out.Values[c] = append([]float64(nil), t.Values[c]...)
	}
	return out, nil
}

// Between returns the rows whose date lies in [start, end]. A zero bound is open.
func (t RateTable) Between(start, end time.Time) RateTable {
	return t.filter(func(d time.Time) bool {
		if !start.IsZero() && d.Before(start) {
			return false
		}
		if !end.IsZero() && d.After(end) {
			return false
		}
		return true
	})
}

// InYear returns the rows dated in the given calendar year.
func (t RateTable) InYear(year int) RateTable {
	return t.filter(func(d time.Time) bool { return d.Year() == year })
}

func (t RateTable) filter(keep func(time.Time) bool) RateTable {
	out := NewRateTable(t.Codes...)
	for i, d := range t.Dates {
		if !keep(d) {
			continue
		}
		out.Dates = append(out.Dates, d)
		for _, c := range t.Codes {
			out.Values[c] = append(out.Values[c], t.Values[c][i])
		}
	}
	return out
}

// Years returns the distinct calendar years present, ascending.
func (t RateTable) Years() []int {
	seen := map[int]struct{}{}
	var years []int
	for _, d := range t.Dates {
		y := d.Year()
		if _, ok := seen[y]; ok {
			continue
		}
		seen[y] = struct{}{}
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// DateRange returns the first and last dates of the table.
func (t RateTable) DateRange() (time.Time, time.Time, bool) {
	if len(t.Dates) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return t.Dates[0], t.Dates[len(t.Dates)-1], true
}

// Date returns midnight UTC of the given calendar date.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TruncateDay drops the clock part of t, keeping its calendar date in UTC.
func TruncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
