package dto

import (
	"fmt"

	"github.com/SscSPs/currency_exchange_tracker/internal/core/domain"
	"github.com/SscSPs/currency_exchange_tracker/internal/utils"
)

// NotAvailableMessage is shown when a rate cannot be computed for a selection.
const NotAvailableMessage = "Exchange rate information is not available."

// CurrenciesResponse lists the selectable currency codes.
type CurrenciesResponse struct {
	Currencies []string `json:"currencies"`
}

// YearsResponse lists the years present in the data.
type YearsResponse struct {
	Years []int `json:"years"`
}

// CadencesResponse lists the cadences offered for a year selection.
type CadencesResponse struct {
	Year     int      `json:"year"`
	Cadences []string `json:"cadences"`
	Start    string   `json:"start,omitempty"`
	End      string   `json:"end,omitempty"`
}

// CurrentExchangeResponse is the cross rate on the last day of a range.
type CurrentExchangeResponse struct {
	From      string   `json:"from"`
	To        string   `json:"to"`
	Start     string   `json:"start,omitempty"`
	End       string   `json:"end,omitempty"`
	Available bool     `json:"available"`
	Rate      *float64 `json:"rate,omitempty"`
	Display   string   `json:"display,omitempty"`
	Message   string   `json:"message,omitempty"`
}

// ToCurrentExchangeResponse converts a domain.CurrentExchange to its DTO.
func ToCurrentExchangeResponse(ce *domain.CurrentExchange) CurrentExchangeResponse {
	resp := CurrentExchangeResponse{
		From:      ce.From,
		To:        ce.To,
		Start:     formatDate(ce.Start),
		End:       formatDate(ce.End),
		Available: ce.Available,
	}
	if !ce.Available {
		resp.Message = NotAvailableMessage
		return resp
	}
	resp.Rate = utils.NullableFloat(ce.Rate)
	resp.Display = fmt.Sprintf("1 %s = %s %s", ce.From, utils.FormatRate(ce.Rate), ce.To)
	return resp
}

// CadenceNames returns the display names of cadences.
func CadenceNames(cs []domain.Cadence) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.String()
	}
	return out
}
