package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/currency_exchange_tracker/internal/core/ports/services"
	"github.com/SscSPs/currency_exchange_tracker/internal/dto"
	"github.com/SscSPs/currency_exchange_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

const (
	pngContentType  = "image/png"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// exchangeHandler serves the analysis endpoints of the dashboard.
type exchangeHandler struct {
	analysisService portssvc.ExchangeAnalysisSvc
	reportService   portssvc.SeriesReportSvc
}

func newExchangeHandler(as portssvc.ExchangeAnalysisSvc, rs portssvc.SeriesReportSvc) *exchangeHandler {
	return &exchangeHandler{analysisService: as, reportService: rs}
}

// registerExchangeRoutes registers the exchange, series and volatility routes.
func registerExchangeRoutes(rg *gin.RouterGroup, analysisService portssvc.ExchangeAnalysisSvc, reportService portssvc.SeriesReportSvc) {
	h := newExchangeHandler(analysisService, reportService)

	rg.GET("/exchange/current", h.getCurrentExchange)
	series := rg.Group("/series")
	{
		series.GET("", h.getSeries)
		series.GET("/chart.png", h.getSeriesChart)
		series.GET("/export.xlsx", h.getSeriesWorkbook)
	}
	rg.GET("/volatility", h.getVolatility)
}

// getCurrentExchange godoc
// @Summary Get the current exchange rate
// @Description Returns how many units of `to` one unit of `from` buys on the last day of the selected range
// @Tags exchange
// @Produce  json
// @Param   from query string true "Base currency code" minlength(3) maxlength(3)
// @Param   to query string true "Target currency code" minlength(3) maxlength(3)
// @Param   year query int false "Calendar year, 0 for all years"
// @Param   start query string false "Start date (YYYY-MM-DD)"
// @Param   end query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.CurrentExchangeResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 404 {object} map[string]string "Exchange rate information is not available"
// @Failure 500 {object} map[string]string "Failed to compute exchange rate"
// @Router /exchange/current [get]
func (h *exchangeHandler) getCurrentExchange(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	params, ok := bindRateQuery(c, logger)
	if !ok {
		return
	}
	q, err := params.ToRateQuery()
	if err != nil {
		respondError(c, logger, err, "to compute exchange rate")
		return
	}

	ce, err := h.analysisService.CurrentExchange(c.Request.Context(), q)
	if err != nil {
		respondError(c, logger, err, "to compute exchange rate")
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrentExchangeResponse(ce))
}

// getSeries godoc
// @Summary Get a resampled rate series
// @Description Returns the `from` and `to` columns averaged per cadence period over the selected range
// @Tags series
// @Produce  json
// @Param   from query string true "First currency code"
// @Param   to query string true "Second currency code"
// @Param   cadence query string false "Daily, Weekly, Monthly, Quarterly or Yearly" default(Daily)
// @Param   year query int false "Calendar year, 0 for all years"
// @Param   start query string false "Start date (YYYY-MM-DD)"
// @Param   end query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.SeriesResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 404 {object} map[string]string "Exchange rate information is not available"
// @Failure 500 {object} map[string]string "Failed to build series"
// @Router /series [get]
func (h *exchangeHandler) getSeries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	params, ok := bindRateQuery(c, logger)
	if !ok {
		return
	}
	q, err := params.ToRateQuery()
	if err != nil {
		respondError(c, logger, err, "to build series")
		return
	}

	t, err := h.analysisService.Series(c.Request.Context(), q)
	if err != nil {
		respondError(c, logger, err, "to build series")
		return
	}
	logger.Info("Series built", slog.String("from", q.From), slog.String("to", q.To), slog.Int("points", t.Len()))
	c.JSON(http.StatusOK, dto.ToSeriesResponse(q, t))
}

// getSeriesChart godoc
// @Summary Get a resampled series as a PNG chart
// @Description Renders the resampled `from` and `to` series as a line chart
// @Tags series
// @Produce  png
// @Param   from query string true "First currency code"
// @Param   to query string true "Second currency code"
// @Param   cadence query string false "Daily, Weekly, Monthly, Quarterly or Yearly" default(Daily)
// @Param   year query int false "Calendar year, 0 for all years"
// @Param   start query string false "Start date (YYYY-MM-DD)"
// @Param   end query string false "End date (YYYY-MM-DD)"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 404 {object} map[string]string "Exchange rate information is not available"
// @Failure 500 {object} map[string]string "Failed to render chart"
// @Router /series/chart.png [get]
func (h *exchangeHandler) getSeriesChart(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	params, ok := bindRateQuery(c, logger)
	if !ok {
		return
	}
	q, err := params.ToRateQuery()
	if err != nil {
		respondError(c, logger, err, "to render chart")
		return
	}

	img, err := h.reportService.SeriesChart(c.Request.Context(), q)
	if err != nil {
		respondError(c, logger, err, "to render chart")
		return
	}
	c.Header("Cache-Control", "max-age=60")
	c.Data(http.StatusOK, pngContentType, img)
}

// getSeriesWorkbook godoc
// @Summary Download a resampled series as XLSX
// @Description Exports the resampled `from` and `to` series to a spreadsheet
// @Tags series
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param   from query string true "First currency code"
// @Param   to query string true "Second currency code"
// @Param   cadence query string false "Daily, Weekly, Monthly, Quarterly or Yearly" default(Daily)
// @Param   year query int false "Calendar year, 0 for all years"
// @Param   start query string false "Start date (YYYY-MM-DD)"
// @Param   end query string false "End date (YYYY-MM-DD)"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 404 {object} map[string]string "Exchange rate information is not available"
// @Failure 500 {object} map[string]string "Failed to export series"
// @Router /series/export.xlsx [get]
func (h *exchangeHandler) getSeriesWorkbook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	params, ok := bindRateQuery(c, logger)
	if !ok {
		return
	}
	q, err := params.ToRateQuery()
	if err != nil {
		respondError(c, logger, err, "to export series")
		return
	}

	data, err := h.reportService.SeriesWorkbook(c.Request.Context(), q)
	if err != nil {
		respondError(c, logger, err, "to export series")
		return
	}
	filename := fmt.Sprintf("%s_%s_%s.xlsx", q.From, q.To, q.Cadence)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// getVolatility godoc
// @Summary Get the volatility of a currency
// @Description Returns the sample standard deviation of the percentage returns of `to`, in percent
// @Tags volatility
// @Produce  json
// @Param   from query string true "Reference currency code"
// @Param   to query string true "Measured currency code"
// @Param   cadence query string false "Sampling cadence" default(Daily)
// @Param   year query int false "Calendar year, 0 for all years"
// @Param   start query string false "Start date (YYYY-MM-DD)"
// @Param   end query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.VolatilityResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 404 {object} map[string]string "Exchange rate information is not available"
// @Failure 500 {object} map[string]string "Failed to compute volatility"
// @Router /volatility [get]
func (h *exchangeHandler) getVolatility(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	params, ok := bindRateQuery(c, logger)
	if !ok {
		return
	}
	q, err := params.ToRateQuery()
	if err != nil {
		respondError(c, logger, err, "to compute volatility")
		return
	}

	v, err := h.analysisService.Volatility(c.Request.Context(), q)
	if err != nil {
		respondError(c, logger, err, "to compute volatility")
		return
	}
	c.JSON(http.StatusOK, dto.ToVolatilityResponse(v))
}
