package services

import (
	"context"

	"github.com/SscSPs/currency_exchange_tracker/internal/core/domain"
	"github.com/SscSPs/currency_exchange_tracker/internal/dto"
)

// BasketValuerSvc values currency baskets against live rates.
type BasketValuerSvc interface {
	// ValueBasket validates percent weights and values the basket in the base currency.
	ValueBasket(ctx context.Context, req dto.BasketValueRequest) (*domain.BasketValuation, error)
}

// BasketPresetSvc lists the configured named baskets.
type BasketPresetSvc interface {
	ListPresets(ctx context.Context) []domain.BasketPreset
}

// BasketSvcFacade combines the basket service interfaces.
type BasketSvcFacade interface {
	BasketValuerSvc
	BasketPresetSvc
}
