package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/currency_exchange_tracker/internal/core/ports/services"
	"github.com/SscSPs/currency_exchange_tracker/internal/dto"
	"github.com/SscSPs/currency_exchange_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// basketHandler values currency baskets against live rates.
type basketHandler struct {
	basketService portssvc.BasketSvcFacade
}

func newBasketHandler(bs portssvc.BasketSvcFacade) *basketHandler {
	return &basketHandler{basketService: bs}
}

// registerBasketRoutes registers the basket routes. Valuation calls an
// external API, so it runs behind limit.
func registerBasketRoutes(rg *gin.RouterGroup, basketService portssvc.BasketSvcFacade, limit gin.HandlerFunc) {
	h := newBasketHandler(basketService)

	baskets := rg.Group("/baskets")
	{
		baskets.POST("/value", limit, h.valueBasket)
		baskets.GET("/presets", h.listPresets)
	}
}

// valueBasket godoc
// @Summary Value a currency basket
// @Description Prices each currency against the base with live rates and returns the weighted total. Weights are percentages summing to 100.
// @Tags baskets
// @Accept  json
// @Produce  json
// @Param   basket body dto.BasketValueRequest true "Base currency and percent weights"
// @Success 200 {object} dto.BasketValueResponse
// @Failure 400 {object} map[string]string "Invalid basket"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 500 {object} map[string]string "Failed to value basket"
// @Router /baskets/value [post]
func (h *basketHandler) valueBasket(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BasketValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ValueBasket", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	v, err := h.basketService.ValueBasket(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "to value basket")
		return
	}
	logger.Info("Basket valued", slog.String("base", v.Base), slog.Int("unresolved", len(v.Unresolved)))
	c.JSON(http.StatusOK, dto.ToBasketValueResponse(v))
}

// listPresets godoc
// @Summary List basket presets
// @Description Lists the configured named baskets
// @Tags baskets
// @Produce  json
// @Success 200 {array} dto.BasketPresetResponse
// @Router /baskets/presets [get]
func (h *basketHandler) listPresets(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToBasketPresetResponses(h.basketService.ListPresets(c.Request.Context())))
}
