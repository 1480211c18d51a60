package handlers

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/SscSPs/currency_exchange_tracker/internal/core/ports/services"
	"github.com/SscSPs/currency_exchange_tracker/internal/dto"
	"github.com/SscSPs/currency_exchange_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

// dashboardTemplates holds the server-rendered pages.
var dashboardTemplates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// dashboardHandler serves the dashboard page and the catalog of selectable values.
type dashboardHandler struct {
	dashboardService portssvc.DashboardCatalogSvc
}

func newDashboardHandler(ds portssvc.DashboardCatalogSvc) *dashboardHandler {
	return &dashboardHandler{dashboardService: ds}
}

// registerDashboardRoutes registers the catalog routes on the API group.
func registerDashboardRoutes(rg *gin.RouterGroup, dashboardService portssvc.DashboardCatalogSvc) {
	h := newDashboardHandler(dashboardService)

	rg.GET("/currencies", h.listCurrencies)
	rg.GET("/years", h.listYears)
	rg.GET("/cadences", h.listCadences)
}

// dashboardPageData feeds templates/dashboard.html.
type dashboardPageData struct {
	Currencies []string
	Years      []int
	APIBase    string
}

// showDashboard renders the three tab dashboard page.
func (h *dashboardHandler) showDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	c.HTML(http.StatusOK, "dashboard.html", dashboardPageData{
		Currencies: h.dashboardService.ListCurrencies(ctx),
		Years:      h.dashboardService.ListYears(ctx),
		APIBase:    apiBasePath,
	})
}

// listCurrencies godoc
// @Summary List currencies
// @Description Lists the currency codes present in the loaded rate data
// @Tags catalog
// @Produce  json
// @Success 200 {object} dto.CurrenciesResponse
// @Router /currencies [get]
func (h *dashboardHandler) listCurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, dto.CurrenciesResponse{Currencies: h.dashboardService.ListCurrencies(c.Request.Context())})
}

// listYears godoc
// @Summary List years
// @Description Lists the calendar years present in the loaded rate data
// @Tags catalog
// @Produce  json
// @Success 200 {object} dto.YearsResponse
// @Router /years [get]
func (h *dashboardHandler) listYears(c *gin.Context) {
	c.JSON(http.StatusOK, dto.YearsResponse{Years: h.dashboardService.ListYears(c.Request.Context())})
}

// listCadences godoc
// @Summary List cadences for a year selection
// @Description Returns the cadences offered for a year (omit or 0 for all years) and the date range it covers
// @Tags catalog
// @Produce  json
// @Param   year query int false "Calendar year, 0 for all years"
// @Success 200 {object} dto.CadencesResponse
// @Failure 400 {object} map[string]string "Invalid year"
// @Router /cadences [get]
func (h *dashboardHandler) listCadences(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	year := 0
	if raw := c.Query("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 0 {
			logger.Warn("Invalid year query parameter", slog.String("year", raw))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year: " + raw})
			return
		}
		year = y
	}

	resp := dto.CadencesResponse{
		Year:     year,
		Cadences: dto.CadenceNames(h.dashboardService.CadenceOptions(year)),
	}
	if first, last, ok := h.dashboardService.DateRange(c.Request.Context(), year); ok {
		resp.Start = first.Format(dto.DateLayout)
		resp.End = last.Format(dto.DateLayout)
	}
	c.JSON(http.StatusOK, resp)
}
