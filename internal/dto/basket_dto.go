package dto

import (
	"github.com/SscSPs/currency_exchange_tracker/internal/core/domain"
	"github.com/SscSPs/currency_exchange_tracker/internal/utils"
)

// BasketValueRequest defines a basket to value. Weights are percentages
// keyed by currency code and must add up to 100.
type BasketValueRequest struct {
	Base    string             `json:"base" binding:"required,currency_code"`
	Weights map[string]float64 `json:"weights" binding:"required,min=1,dive,keys,currency_code,endkeys,gte=0,lte=100"`
}

// BasketLineResponse is one currency of a valued basket.
type BasketLineResponse struct {
	Currency      string   `json:"currency"`
	WeightPercent float64  `json:"weightPercent"`
	Rate          *float64 `json:"rate,omitempty"`
	Contribution  float64  `json:"contribution"`
	Resolved      bool     `json:"resolved"`
}

// BasketValueResponse is the value of a basket in its base currency.
type BasketValueResponse struct {
	Base          string               `json:"base"`
	Total         float64              `json:"total"`
	Display       string               `json:"display"`
	Lines         []BasketLineResponse `json:"lines"`
	Unresolved    []string             `json:"unresolved"`
	AllUnresolved bool                 `json:"allUnresolved"`
	Message       string               `json:"message,omitempty"`
}

// ToBasketValueResponse converts a domain.BasketValuation to its DTO.
func ToBasketValueResponse(v *domain.BasketValuation) BasketValueResponse {
	resp := BasketValueResponse{
		Base:          v.Base,
		Total:         v.Total,
		Display:       utils.FormatRate(v.Total) + " " + v.Base,
		Lines:         make([]BasketLineResponse, len(v.Lines)),
		Unresolved:    v.Unresolved,
		AllUnresolved: v.AllUnresolved(),
	}
	if resp.Unresolved == nil {
		resp.Unresolved = []string{}
	}
	for i, l := range v.Lines {
		line := BasketLineResponse{
			Currency:      l.Quote.Target,
			WeightPercent: l.Weight * 100,
			Contribution:  l.Contribution,
			Resolved:      l.Quote.Found,
		}
		if l.Quote.Found {
			line.Rate = utils.NullableFloat(l.Quote.Rate)
		}
		resp.Lines[i] = line
	}
	switch {
	case resp.AllUnresolved:
		resp.Message = "No exchange rates could be retrieved for this basket."
	case len(resp.Unresolved) > 0:
		resp.Message = "Some exchange rates could not be retrieved and were left out of the total."
	}
	return resp
}

// BasketPresetResponse is a named basket with percent weights.
type BasketPresetResponse struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Base        string             `json:"base,omitempty"`
	Weights     map[string]float64 `json:"weights"`
}

// ToBasketPresetResponses converts presets to their DTOs.
func ToBasketPresetResponses(presets []domain.BasketPreset) []BasketPresetResponse {
	out := make([]BasketPresetResponse, len(presets))
	for i, p := range presets {
		out[i] = BasketPresetResponse{Name: p.Name, Description: p.Description, Base: p.Base, Weights: p.Weights}
	}
	return out
}
