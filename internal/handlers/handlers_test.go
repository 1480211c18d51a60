package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/currency_exchange_tracker/internal/apperrors"
	"github.com/SscSPs/currency_exchange_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/currency_exchange_tracker/internal/core/ports/services"
	"github.com/SscSPs/currency_exchange_tracker/internal/dto"
	"github.com/SscSPs/currency_exchange_tracker/internal/handlers"
	"github.com/SscSPs/currency_exchange_tracker/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock DashboardService ---
type MockDashboardService struct {
	mock.Mock
}

var _ portssvc.DashboardSvcFacade = (*MockDashboardService)(nil)

func (m *MockDashboardService) ListCurrencies(ctx context.Context) []string {
	return m.Called(ctx).Get(0).([]string)
}

func (m *MockDashboardService) ListYears(ctx context.Context) []int {
	return m.Called(ctx).Get(0).([]int)
}

func (m *MockDashboardService) CadenceOptions(year int) []domain.Cadence {
	return m.Called(year).Get(0).([]domain.Cadence)
}

func (m *MockDashboardService) DateRange(ctx context.Context, year int) (time.Time, time.Time, bool) {
	args := m.Called(ctx, year)
	return args.Get(0).(time.Time), args.Get(1).(time.Time), args.Bool(2)
}

func (m *MockDashboardService) CurrentExchange(ctx context.Context, q domain.RateQuery) (*domain.CurrentExchange, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrentExchange), args.Error(1)
}

func (m *MockDashboardService) Series(ctx context.Context, q domain.RateQuery) (domain.RateTable, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(domain.RateTable), args.Error(1)
}

func (m *MockDashboardService) Volatility(ctx context.Context, q domain.RateQuery) (*domain.VolatilityResult, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VolatilityResult), args.Error(1)
}

// --- Mock BasketService ---
type MockBasketService struct {
	mock.Mock
}

var _ portssvc.BasketSvcFacade = (*MockBasketService)(nil)

func (m *MockBasketService) ValueBasket(ctx context.Context, req dto.BasketValueRequest) (*domain.BasketValuation, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BasketValuation), args.Error(1)
}

func (m *MockBasketService) ListPresets(ctx context.Context) []domain.BasketPreset {
	return m.Called(ctx).Get(0).([]domain.BasketPreset)
}

// --- Mock SeriesReportService ---
type MockReportService struct {
	mock.Mock
}

var _ portssvc.SeriesReportSvc = (*MockReportService)(nil)

func (m *MockReportService) SeriesChart(ctx context.Context, q domain.RateQuery) ([]byte, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockReportService) SeriesWorkbook(ctx context.Context, q domain.RateQuery) ([]byte, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// --- Test Suite ---
type HandlersTestSuite struct {
	suite.Suite
	router    *gin.Engine
	dashboard *MockDashboardService
	basket    *MockBasketService
	reports   *MockReportService
}

func (suite *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.dashboard = new(MockDashboardService)
	suite.basket = new(MockBasketService)
	suite.reports = new(MockReportService)

	cfg := &config.Config{
		IsProduction:       true,
		BasketRateLimit:    "2-M",
		CORSAllowedOrigins: []string{"*"},
	}
	container := &portssvc.ServiceContainer{
		Dashboard: suite.dashboard,
		Basket:    suite.basket,
		Reports:   suite.reports,
	}
	err := handlers.RegisterRoutes(suite.router, cfg, container, http.NotFoundHandler())
	suite.Require().NoError(err)
}

func (suite *HandlersTestSuite) do(method, target string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlersTestSuite) decode(w *httptest.ResponseRecorder, v any) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), v))
}

func (suite *HandlersTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlersTestSuite) TestDashboardPage() {
	suite.dashboard.On("ListCurrencies", mock.Anything).Return([]string{"USD", "INR"})
	suite.dashboard.On("ListYears", mock.Anything).Return([]int{2023})

	w := suite.do(http.MethodGet, "/", nil)
	suite.Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	suite.Contains(body, "Analysis &amp; Graph")
	suite.Contains(body, "Volatility")
	suite.Contains(body, "<option>INR</option>")
	suite.Contains(body, `<option value="2023">2023</option>`)
}

func (suite *HandlersTestSuite) TestListCurrencies() {
	suite.dashboard.On("ListCurrencies", mock.Anything).Return([]string{"USD", "EUR"})

	w := suite.do(http.MethodGet, "/api/v1/currencies", nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.CurrenciesResponse
	suite.decode(w, &resp)
	suite.Equal([]string{"USD", "EUR"}, resp.Currencies)
}

func (suite *HandlersTestSuite) TestListCadences() {
	suite.dashboard.On("CadenceOptions", 2023).Return([]domain.Cadence{domain.Daily, domain.Monthly})
	suite.dashboard.On("DateRange", mock.Anything, 2023).Return(domain.Date(2023, 1, 2), domain.Date(2023, 12, 29), true)

	w := suite.do(http.MethodGet, "/api/v1/cadences?year=2023", nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.CadencesResponse
	suite.decode(w, &resp)
	suite.Equal([]string{"Daily", "Monthly"}, resp.Cadences)
	suite.Equal("2023-01-02", resp.Start)
	suite.Equal("2023-12-29", resp.End)

	w = suite.do(http.MethodGet, "/api/v1/cadences?year=abc", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestCurrentExchange() {
	q := domain.RateQuery{From: "USD", To: "INR", Year: 2023}
	suite.dashboard.On("CurrentExchange", mock.Anything, q).Return(&domain.CurrentExchange{
		From: "USD", To: "INR", Rate: 83.12345, Available: true,
		Start: domain.Date(2023, 1, 2), End: domain.Date(2023, 12, 29),
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/exchange/current?from=usd&to=INR&year=2023", nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.CurrentExchangeResponse
	suite.decode(w, &resp)
	suite.True(resp.Available)
	suite.Equal("1 USD = 83.1235 INR", resp.Display)
	suite.dashboard.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestCurrentExchangeNotAvailable() {
	suite.dashboard.On("CurrentExchange", mock.Anything, mock.Anything).
		Return(&domain.CurrentExchange{From: "USD", To: "INR"}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/exchange/current?from=USD&to=INR", nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.CurrentExchangeResponse
	suite.decode(w, &resp)
	suite.False(resp.Available)
	suite.Equal(dto.NotAvailableMessage, resp.Message)
}

func (suite *HandlersTestSuite) TestQueryValidation() {
	cases := []string{
		"/api/v1/exchange/current?to=INR",
		"/api/v1/exchange/current?from=US&to=INR",
		"/api/v1/series?from=USD&to=INR&start=2023-13-01",
		"/api/v1/series?from=USD&to=INR&start=2023-02-01&end=2023-01-01",
		"/api/v1/series?from=USD&to=INR&cadence=hourly",
		"/api/v1/volatility?from=USD&to=INR&year=12",
	}
	for _, target := range cases {
		w := suite.do(http.MethodGet, target, nil)
		suite.Equal(http.StatusBadRequest, w.Code, target)
	}
	suite.dashboard.AssertNotCalled(suite.T(), "Series", mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestSeries() {
	q := domain.RateQuery{From: "USD", To: "INR", Cadence: domain.Monthly}
	t := domain.NewRateTable("USD", "INR")
	t.AppendRow(domain.Date(2023, 1, 31), map[string]float64{"USD": 1, "INR": 82.5})
	suite.dashboard.On("Series", mock.Anything, q).Return(t, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/series?from=USD&to=INR&cadence=monthly", nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.SeriesResponse
	suite.decode(w, &resp)
	suite.Equal("Monthly", resp.Cadence)
	suite.Require().Len(resp.Points, 1)
	suite.Equal("2023-01-31", resp.Points[0].Date)
	suite.InDelta(82.5, *resp.Points[0].Values["INR"], 1e-12)
}

func (suite *HandlersTestSuite) TestSeriesErrorMapping() {
	suite.dashboard.On("Series", mock.Anything, domain.RateQuery{From: "USD", To: "XYZ"}).
		Return(domain.RateTable{}, apperrors.NewMissingColumnError("XYZ")).Once()
	suite.dashboard.On("Series", mock.Anything, domain.RateQuery{From: "USD", To: "INR", Year: 1999}).
		Return(domain.RateTable{}, apperrors.ErrInsufficientData).Once()
	suite.dashboard.On("Series", mock.Anything, domain.RateQuery{From: "USD", To: "EUR"}).
		Return(domain.RateTable{}, apperrors.ErrMissingTemporalIndex).Once()

	w := suite.do(http.MethodGet, "/api/v1/series?from=USD&to=XYZ", nil)
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Contains(w.Body.String(), dto.NotAvailableMessage)

	w = suite.do(http.MethodGet, "/api/v1/series?from=USD&to=INR&year=1999", nil)
	suite.Equal(http.StatusOK, w.Code)
	var body map[string]any
	suite.decode(w, &body)
	suite.Equal(false, body["available"])

	w = suite.do(http.MethodGet, "/api/v1/series?from=USD&to=EUR", nil)
	suite.Equal(http.StatusInternalServerError, w.Code)
}

func (suite *HandlersTestSuite) TestSeriesChart() {
	suite.reports.On("SeriesChart", mock.Anything, domain.RateQuery{From: "USD", To: "INR", Year: 2023, Cadence: domain.Weekly}).
		Return([]byte("\x89PNG fake"), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/series/chart.png?from=USD&to=INR&year=2023&cadence=W", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("image/png", w.Header().Get("Content-Type"))
	suite.Equal("\x89PNG fake", w.Body.String())
}

func (suite *HandlersTestSuite) TestSeriesWorkbook() {
	suite.reports.On("SeriesWorkbook", mock.Anything, domain.RateQuery{From: "USD", To: "INR"}).
		Return([]byte("PK"), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/series/export.xlsx?from=USD&to=INR", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.True(strings.HasPrefix(w.Header().Get("Content-Type"), "application/vnd.openxmlformats"))
	suite.Contains(w.Header().Get("Content-Disposition"), "USD_INR_Daily.xlsx")
}

func (suite *HandlersTestSuite) TestVolatility() {
	q := domain.RateQuery{From: "USD", To: "INR", Start: domain.Date(2023, 1, 1), End: domain.Date(2023, 3, 31)}
	suite.dashboard.On("Volatility", mock.Anything, q).Return(&domain.VolatilityResult{
		From: "USD", To: "INR", Value: 0.23456, Available: true, Observations: 60,
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/volatility?from=USD&to=INR&start=2023-01-01&end=2023-03-31", nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.VolatilityResponse
	suite.decode(w, &resp)
	suite.True(resp.Available)
	suite.Equal("Volatility of USD to INR: 0.23%", resp.Display)
}

func (suite *HandlersTestSuite) TestValueBasket() {
	req := dto.BasketValueRequest{Base: "USD", Weights: map[string]float64{"EUR": 50, "GBP": 50}}
	suite.basket.On("ValueBasket", mock.Anything, req).Return(&domain.BasketValuation{
		Base:  "USD",
		Total: 0.85,
		Lines: []domain.BasketLine{
			{Quote: domain.RateQuote{Base: "USD", Target: "EUR", Rate: 0.9, Found: true}, Weight: 0.5, Contribution: 0.45},
			{Quote: domain.RateQuote{Base: "USD", Target: "GBP", Rate: 0.8, Found: true}, Weight: 0.5, Contribution: 0.4},
		},
		Unresolved: []string{},
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/baskets/value", []byte(`{"base":"USD","weights":{"EUR":50,"GBP":50}}`))
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.BasketValueResponse
	suite.decode(w, &resp)
	suite.InDelta(0.85, resp.Total, 1e-12)
	suite.Len(resp.Lines, 2)
	suite.InDelta(50, resp.Lines[0].WeightPercent, 1e-12)
	suite.basket.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestValueBasketRejectsBadBody() {
	bodies := []string{
		`{"base":"USD"}`,
		`{"base":"USD","weights":{"EURO":100}}`,
		`{"base":"USD","weights":{"EUR":150}}`,
	}
	for _, b := range bodies {
		// Re-register so the rate limit does not interfere.
		suite.SetupTest()
		w := suite.do(http.MethodPost, "/api/v1/baskets/value", []byte(b))
		suite.Equal(http.StatusBadRequest, w.Code, b)
	}
}

func (suite *HandlersTestSuite) TestValueBasketServiceValidation() {
	suite.basket.On("ValueBasket", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewValidationError("weights must add up to 100%")).Once()

	w := suite.do(http.MethodPost, "/api/v1/baskets/value", []byte(`{"base":"USD","weights":{"EUR":40}}`))
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestValueBasketRateLimited() {
	suite.basket.On("ValueBasket", mock.Anything, mock.Anything).
		Return(&domain.BasketValuation{Base: "USD", Unresolved: []string{}}, nil)

	body := []byte(`{"base":"USD","weights":{"EUR":100}}`)
	suite.Equal(http.StatusOK, suite.do(http.MethodPost, "/api/v1/baskets/value", body).Code)
	suite.Equal(http.StatusOK, suite.do(http.MethodPost, "/api/v1/baskets/value", body).Code)
	suite.Equal(http.StatusTooManyRequests, suite.do(http.MethodPost, "/api/v1/baskets/value", body).Code)
}

func (suite *HandlersTestSuite) TestListPresets() {
	suite.basket.On("ListPresets", mock.Anything).Return([]domain.BasketPreset{
		{Name: "SDR", Base: "USD", Weights: map[string]float64{"USD": 43.38, "EUR": 29.31}},
	})

	w := suite.do(http.MethodGet, "/api/v1/baskets/presets", nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.BasketPresetResponse
	suite.decode(w, &resp)
	suite.Require().Len(resp, 1)
	suite.Equal("SDR", resp[0].Name)
}

func (suite *HandlersTestSuite) TestSwaggerDisabledInProduction() {
	w := suite.do(http.MethodGet, "/swagger/index.html", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
