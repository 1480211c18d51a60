package services

import (
	"context"

	"github.com/SscSPs/currency_exchange_tracker/internal/core/domain"
)

// SeriesReportSvc renders resampled series as downloadable artifacts.
type SeriesReportSvc interface {
	// SeriesChart returns a PNG line chart of the query series.
	SeriesChart(ctx context.Context, q domain.RateQuery) ([]byte, error)

	// SeriesWorkbook returns an XLSX workbook of the query series.
	SeriesWorkbook(ctx context.Context, q domain.RateQuery) ([]byte, error)
}
