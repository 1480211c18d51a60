package services_test

import (
	"context"
	"math"
	"testing"

	"github.com/SscSPs/currency_exchange_tracker/internal/apperrors"
	"github.com/SscSPs/currency_exchange_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/currency_exchange_tracker/internal/core/ports/services"
	"github.com/SscSPs/currency_exchange_tracker/internal/core/services"
	"github.com/stretchr/testify/suite"
)

func dashboardTable() domain.RateTable {
	t := domain.NewRateTable("USD", "INR", "EUR")
	t.AppendRow(domain.Date(2022, 12, 30), map[string]float64{"USD": 1, "INR": 82.7, "EUR": 0.93})
	t.AppendRow(domain.Date(2023, 1, 2), map[string]float64{"USD": 1, "INR": 82, "EUR": 0.94})
	t.AppendRow(domain.Date(2023, 1, 3), map[string]float64{"USD": 1, "INR": 83, "EUR": 0.95})
	t.AppendRow(domain.Date(2023, 2, 1), map[string]float64{"USD": 1, "INR": 84, "EUR": 0.92})
	return t
}

type DashboardServiceTestSuite struct {
	suite.Suite
	service portssvc.DashboardSvcFacade
	ctx     context.Context
}

func (suite *DashboardServiceTestSuite) SetupTest() {
	suite.service = services.NewDashboardService(dashboardTable())
	suite.ctx = context.Background()
}

func (suite *DashboardServiceTestSuite) TestCatalog() {
	suite.Equal([]string{"USD", "INR", "EUR"}, suite.service.ListCurrencies(suite.ctx))
	suite.Equal([]int{2022, 2023}, suite.service.ListYears(suite.ctx))
	suite.Equal([]domain.Cadence{domain.Yearly}, suite.service.CadenceOptions(0))
	suite.Equal([]domain.Cadence{domain.Daily, domain.Weekly, domain.Monthly, domain.Quarterly}, suite.service.CadenceOptions(2023))

	first, last, ok := suite.service.DateRange(suite.ctx, 2023)
	suite.True(ok)
	suite.Equal(domain.Date(2023, 1, 2), first)
	suite.Equal(domain.Date(2023, 2, 1), last)

	_, _, ok = suite.service.DateRange(suite.ctx, 2019)
	suite.False(ok)
}

func (suite *DashboardServiceTestSuite) TestListCurrenciesReturnsCopy() {
	codes := suite.service.ListCurrencies(suite.ctx)
	codes[0] = "XXX"
	suite.Equal("USD", suite.service.ListCurrencies(suite.ctx)[0])
}

func (suite *DashboardServiceTestSuite) TestCurrentExchange() {
	ce, err := suite.service.CurrentExchange(suite.ctx, domain.RateQuery{From: "USD", To: "INR", Year: 2023})
	suite.Require().NoError(err)
	suite.True(ce.Available)
	suite.InDelta(84, ce.Rate, 1e-12)
	suite.Equal(domain.Date(2023, 1, 2), ce.Start)
	suite.Equal(domain.Date(2023, 2, 1), ce.End)

	ce, err = suite.service.CurrentExchange(suite.ctx, domain.RateQuery{From: "EUR", To: "INR"})
	suite.Require().NoError(err)
	suite.InDelta(84/0.92, ce.Rate, 1e-9)
}

func (suite *DashboardServiceTestSuite) TestCurrentExchangeEmptyRange() {
	ce, err := suite.service.CurrentExchange(suite.ctx, domain.RateQuery{
		From: "USD", To: "INR", Start: domain.Date(2024, 1, 1),
	})
	suite.Require().NoError(err)
	suite.False(ce.Available)
}

func (suite *DashboardServiceTestSuite) TestCurrentExchangeMissingColumn() {
	_, err := suite.service.CurrentExchange(suite.ctx, domain.RateQuery{From: "USD", To: "JPY"})
	suite.ErrorIs(err, apperrors.ErrMissingColumn)
}

func (suite *DashboardServiceTestSuite) TestSeriesMonthly() {
	out, err := suite.service.Series(suite.ctx, domain.RateQuery{From: "USD", To: "INR", Year: 2023, Cadence: domain.Monthly})
	suite.Require().NoError(err)
	suite.Equal([]string{"USD", "INR"}, out.Codes)
	suite.Require().Equal(2, out.Len())
	suite.Equal(domain.Date(2023, 1, 31), out.Dates[0])
	suite.InDelta(82.5, out.Values["INR"][0], 1e-12)
	suite.InDelta(84, out.Values["INR"][1], 1e-12)
}

func (suite *DashboardServiceTestSuite) TestSeriesDateWindow() {
	out, err := suite.service.Series(suite.ctx, domain.RateQuery{
		From: "USD", To: "EUR", Start: domain.Date(2023, 1, 1), End: domain.Date(2023, 1, 3),
	})
	suite.Require().NoError(err)
	suite.Equal(2, out.Len())
}

func (suite *DashboardServiceTestSuite) TestSeriesErrors() {
	_, err := suite.service.Series(suite.ctx, domain.RateQuery{From: "USD", To: "XYZ"})
	suite.ErrorIs(err, apperrors.ErrMissingColumn)

	_, err = suite.service.Series(suite.ctx, domain.RateQuery{From: "USD", To: "INR", Year: 2021})
	suite.ErrorIs(err, apperrors.ErrInsufficientData)
}

func (suite *DashboardServiceTestSuite) TestVolatilityDaily() {
	v, err := suite.service.Volatility(suite.ctx, domain.RateQuery{From: "USD", To: "INR", Year: 2023})
	suite.Require().NoError(err)
	suite.True(v.Available)
	suite.Equal(3, v.Observations)
	suite.InDelta(math.Abs(1.0/82-1.0/83)/math.Sqrt2*100, v.Value, 1e-9)
	suite.Equal(domain.Date(2023, 1, 2), v.Start)
}

func (suite *DashboardServiceTestSuite) TestVolatilityTooFewObservations() {
	v, err := suite.service.Volatility(suite.ctx, domain.RateQuery{From: "USD", To: "INR", Year: 2022})
	suite.Require().NoError(err)
	suite.False(v.Available)
	suite.Equal(1, v.Observations)

	// Two monthly samples give a single return.
	v, err = suite.service.Volatility(suite.ctx, domain.RateQuery{From: "USD", To: "INR", Year: 2023, Cadence: domain.Monthly})
	suite.Require().NoError(err)
	suite.False(v.Available)
}

func (suite *DashboardServiceTestSuite) TestVolatilityErrors() {
	_, err := suite.service.Volatility(suite.ctx, domain.RateQuery{From: "CHF", To: "INR"})
	suite.ErrorIs(err, apperrors.ErrMissingColumn)

	_, err = suite.service.Volatility(suite.ctx, domain.RateQuery{From: "USD", To: "INR", Start: domain.Date(2030, 1, 1)})
	suite.ErrorIs(err, apperrors.ErrInsufficientData)
}

func TestDashboardServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DashboardServiceTestSuite))
}
