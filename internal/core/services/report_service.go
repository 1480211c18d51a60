package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/currency_exchange_tracker/internal/charts"
	"github.com/SscSPs/currency_exchange_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/currency_exchange_tracker/internal/core/ports/services"
	"github.com/SscSPs/currency_exchange_tracker/internal/export"
	"github.com/SscSPs/currency_exchange_tracker/internal/middleware"
)

// reportService turns dashboard series into charts and workbooks.
type reportService struct {
	series   portssvc.ExchangeAnalysisSvc
	renderer *charts.Renderer
}

var _ portssvc.SeriesReportSvc = (*reportService)(nil)

// NewReportService creates a report service drawing its data from series.
func NewReportService(series portssvc.ExchangeAnalysisSvc, renderer *charts.Renderer) portssvc.SeriesReportSvc {
	return &reportService{series: series, renderer: renderer}
}

// SeriesChart renders the query series as a PNG line chart.
func (s *reportService) SeriesChart(ctx context.Context, q domain.RateQuery) ([]byte, error) {
	t, err := s.series.Series(ctx, q)
	if err != nil {
		return nil, err
	}
	img, err := s.renderer.Render(charts.CacheKey(q), charts.Title(q.From, q.To, q.Cadence), t)
	if err != nil {
		return nil, fmt.Errorf("failed to chart %s/%s: %w", q.From, q.To, err)
	}
	middleware.GetLoggerFromCtx(ctx).Debug("Chart rendered", slog.Int("bytes", len(img)))
	return img, nil
}

// SeriesWorkbook writes the query series to an XLSX workbook.
func (s *reportService) SeriesWorkbook(ctx context.Context, q domain.RateQuery) ([]byte, error) {
	t, err := s.series.Series(ctx, q)
	if err != nil {
		return nil, err
	}
	data, err := export.Workbook(t)
	if err != nil {
		return nil, fmt.Errorf("failed to export %s/%s: %w", q.From, q.To, err)
	}
	return data, nil
}
