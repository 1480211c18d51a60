package services

import (
	"github.com/SscSPs/currency_exchange_tracker/internal/charts"
	"github.com/SscSPs/currency_exchange_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_exchange_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/currency_exchange_tracker/internal/core/ports/services"
	"github.com/SscSPs/currency_exchange_tracker/internal/platform/config"
)

// NewServiceContainer wires the services over an already loaded rate table.
func NewServiceContainer(cfg *config.Config, table domain.RateTable, repos portsrepo.RepositoryProvider, presets []domain.BasketPreset) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Dashboard = NewDashboardService(table)
	container.Basket = NewBasketService(
		repos.LiveRates,
		WithPresets(presets),
		WithBasketConcurrency(cfg.BasketConcurrency),
	)
	container.Reports = NewReportService(container.Dashboard, charts.NewRenderer(cfg.ChartCacheTTL))

	return container
}
