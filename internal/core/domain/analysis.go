package domain

import "time"

// RateQuery selects a currency pair and a slice of the rate table.
type RateQuery struct {
	From string
	To   string
	// Year restricts the rows to one calendar year; 0 means all years.
	Year int
	// Start and End bound the rows inclusively; a zero bound is open.
	Start   time.Time
	End     time.Time
	Cadence Cadence
}

// CurrentExchange is the cross rate on the last row of a query range.
type CurrentExchange struct {
	From      string
	To        string
	Start     time.Time
	End       time.Time
	Rate      float64
	Available bool
}

// VolatilityResult is the volatility of the To currency over a query range.
type VolatilityResult struct {
	From         string
	To           string
	Cadence      Cadence
	Start        time.Time
	End          time.Time
	Observations int
	Value        float64
	Available    bool
}
