package services

import (
	"context"
	"time"

	"github.com/SscSPs/currency_exchange_tracker/internal/core/domain"
)

// DashboardCatalogSvc describes the loaded rate data.
type DashboardCatalogSvc interface {
	// ListCurrencies returns the currency codes available for selection.
	ListCurrencies(ctx context.Context) []string

	// ListYears returns the calendar years present in the data, ascending.
	ListYears(ctx context.Context) []int

	// CadenceOptions returns the cadences offered for a year selection; year 0 means all years.
	CadenceOptions(year int) []domain.Cadence

	// DateRange returns the first and last dates of a year selection.
	DateRange(ctx context.Context, year int) (time.Time, time.Time, bool)
}

// ExchangeAnalysisSvc computes the analyses shown on the dashboard.
type ExchangeAnalysisSvc interface {
	// CurrentExchange returns last(to)/last(from) over the query range.
	CurrentExchange(ctx context.Context, q domain.RateQuery) (*domain.CurrentExchange, error)

	// Series returns the From and To columns resampled to the query cadence.
	Series(ctx context.Context, q domain.RateQuery) (domain.RateTable, error)

	// Volatility returns the volatility of the To column over the query range.
	Volatility(ctx context.Context, q domain.RateQuery) (*domain.VolatilityResult, error)
}

// DashboardSvcFacade combines the dashboard service interfaces.
type DashboardSvcFacade interface {
	DashboardCatalogSvc
	ExchangeAnalysisSvc
}
