package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/currency_exchange_tracker/internal/apperrors"
	"github.com/SscSPs/currency_exchange_tracker/internal/dto"
	"github.com/gin-gonic/gin"
)

// insufficientDataMessage is returned when a selection has too few rows to analyse.
const insufficientDataMessage = "Not enough data for the selected range."

// respondError maps service errors onto HTTP responses. None of them stop the server.
func respondError(c *gin.Context, logger *slog.Logger, err error, action string) {
	var missing *apperrors.MissingColumnError
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &missing):
		logger.Warn("Currency column not found "+action, slog.String("currency", missing.Column))
		c.JSON(http.StatusNotFound, gin.H{"error": dto.NotAvailableMessage, "currency": missing.Column})
	case errors.Is(err, apperrors.ErrMissingColumn), errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Information not found "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": dto.NotAvailableMessage})
	case errors.Is(err, apperrors.ErrInsufficientData):
		logger.Info("Insufficient data "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusOK, gin.H{"available": false, "message": insufficientDataMessage})
	default:
		logger.Error("Failed "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed " + action})
	}
}

// bindRateQuery binds and converts the shared analysis query parameters,
// writing a 400 response and reporting false when they are invalid.
func bindRateQuery(c *gin.Context, logger *slog.Logger) (dto.RateQueryParams, bool) {
	var params dto.RateQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return params, false
	}
	return params, true
}
