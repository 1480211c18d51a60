package domain

import "sort"

// BasketSpec maps a currency code to its weight as a fraction.
// Callers are expected to supply weights summing to 1.0.
type BasketSpec map[string]float64

// Codes returns the basket's currency codes sorted ascending.
func (b BasketSpec) Codes() []string {
	codes := make([]string, 0, len(b))
	for c := range b {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// RateQuote is the result of a single (base, target) lookup.
type RateQuote struct {
	Base   string  `json:"base"`
	Target string  `json:"target"`
	Rate   float64 `json:"rate"`
	Found  bool    `json:"found"`
}

// BasketLine is one currency's contribution to a basket valuation.
type BasketLine struct {
	Quote        RateQuote `json:"quote"`
	Weight       float64   `json:"weight"`
	Contribution float64   `json:"contribution"`
}

// BasketValuation is the outcome of valuing a basket against a base currency.
type BasketValuation struct {
	Base       string       `json:"base"`
	Total      float64      `json:"total"`
	Lines      []BasketLine `json:"lines"`
	Unresolved []string     `json:"unresolved"`
}

// AllUnresolved reports whether no currency in the basket could be priced.
// It distinguishes "no rates available" from a total that is legitimately zero.
func (v BasketValuation) AllUnresolved() bool {
	return len(v.Lines) > 0 && len(v.Unresolved) == len(v.Lines)
}

// BasketPreset is a named basket whose weights are given in percent.
type BasketPreset struct {
	Name        string             `json:"name" yaml:"name"`
	Description string             `json:"description,omitempty" yaml:"description"`
	Base        string             `json:"base,omitempty" yaml:"base"`
	Weights     map[string]float64 `json:"weights" yaml:"weights"`
}
