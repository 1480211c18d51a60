package domain

import (
	"math"
	"sort"
	"time"
)

// FillMissing returns a copy of t where each column is forward filled and the
// leading gaps that remain are replaced with the column mean. A column with no
// observations at all stays NaN.
func (t RateTable) FillMissing() RateTable {
	out := NewRateTable(t.Codes...)
	out.Dates = append([]time.Time(nil), t.Dates...)
	for _, c := range t.Codes {
		col := append([]float64(nil), t.Values[c]...)
		for i := 1; i < len(col); i++ {
			if math.IsNaN(col[i]) {
				col[i] = col[i-1]
			}
		}
		sum, n := 0.0, 0
		for _, v := range col {
			if !math.IsNaN(v) {
				sum += v
				n++
			}
		}
		if n > 0 {
			avg := sum / float64(n)
			for i, v := range col {
				if math.IsNaN(v) {
					col[i] = avg
				}
			}
		}
		out.Values[c] = col
	}
	return out
}

// MergeTables concatenates tables into one sorted by date. The column set is
// the union of all inputs in first-seen order. When two inputs share a date the
// row from the later input wins.
func MergeTables(tables ...RateTable) RateTable {
	var codes []string
	for _, t := range tables {
		codes = append(codes, t.Codes...)
	}
	out := NewRateTable(codes...)

	type row struct {
		date  time.Time
		rates map[string]float64
	}
	byDate := map[time.Time]int{}
	var rows []row
	for _, t := range tables {
		for i, d := range t.Dates {
			r := row{date: d, rates: t.Row(i)}
			if idx, ok := byDate[d]; ok {
				rows[idx] = r
				continue
			}
			byDate[d] = len(rows)
			rows = append(rows, r)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].date.Before(rows[j].date) })
	for _, r := range rows {
		out.AppendRow(r.date, r.rates)
	}
	return out
}
