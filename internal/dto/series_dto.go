package dto

import (
	"fmt"

	"github.com/SscSPs/currency_exchange_tracker/internal/core/domain"
	"github.com/SscSPs/currency_exchange_tracker/internal/utils"
)

// SeriesPoint is one resampled row. A missing value is null.
type SeriesPoint struct {
	Date   string              `json:"date"`
	Values map[string]*float64 `json:"values"`
}

// SeriesResponse is a resampled two-currency series.
type SeriesResponse struct {
	From    string        `json:"from"`
	To      string        `json:"to"`
	Cadence string        `json:"cadence"`
	Codes   []string      `json:"codes"`
	Points  []SeriesPoint `json:"points"`
}

// ToSeriesResponse converts a resampled table to its DTO.
func ToSeriesResponse(q domain.RateQuery, t domain.RateTable) SeriesResponse {
	resp := SeriesResponse{
		From:    q.From,
		To:      q.To,
		Cadence: q.Cadence.String(),
		Codes:   t.Codes,
		Points:  make([]SeriesPoint, len(t.Dates)),
	}
	for i, d := range t.Dates {
		p := SeriesPoint{Date: d.Format(DateLayout), Values: make(map[string]*float64, len(t.Codes))}
		for _, c := range t.Codes {
			p.Values[c] = utils.NullableFloat(t.Values[c][i])
		}
		resp.Points[i] = p
	}
	return resp
}

// VolatilityResponse reports the volatility of the To currency, in percent.
type VolatilityResponse struct {
	From         string   `json:"from"`
	To           string   `json:"to"`
	Cadence      string   `json:"cadence"`
	Start        string   `json:"start,omitempty"`
	End          string   `json:"end,omitempty"`
	Observations int      `json:"observations"`
	Available    bool     `json:"available"`
	Volatility   *float64 `json:"volatility,omitempty"`
	Display      string   `json:"display,omitempty"`
	Message      string   `json:"message,omitempty"`
}

// ToVolatilityResponse converts a domain.VolatilityResult to its DTO.
func ToVolatilityResponse(v *domain.VolatilityResult) VolatilityResponse {
	resp := VolatilityResponse{
		From:         v.From,
		To:           v.To,
		Cadence:      v.Cadence.String(),
		Start:        formatDate(v.Start),
		End:          formatDate(v.End),
		Observations: v.Observations,
		Available:    v.Available,
	}
	if !v.Available {
		resp.Message = "Not enough observations to compute volatility."
		return resp
	}
	resp.Volatility = utils.NullableFloat(v.Value)
	resp.Display = fmt.Sprintf("Volatility of %s to %s: %s%%", v.From, v.To, utils.FormatWithPrecision(v.Value, 2))
	return resp
}
