package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/currency_exchange_tracker/internal/apperrors"
	"github.com/SscSPs/currency_exchange_tracker/internal/core/analytics"
	"github.com/SscSPs/currency_exchange_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/currency_exchange_tracker/internal/core/ports/services"
	"github.com/SscSPs/currency_exchange_tracker/internal/middleware"
)

// dashboardService answers dashboard queries over a rate table loaded at startup.
// The table is never modified, so the service is safe for concurrent use.
type dashboardService struct {
	table domain.RateTable
}

var _ portssvc.DashboardSvcFacade = (*dashboardService)(nil)

// NewDashboardService creates a dashboard service over table.
func NewDashboardService(table domain.RateTable) portssvc.DashboardSvcFacade {
	return &dashboardService{table: table}
}

// ListCurrencies returns the currency columns in source order.
func (s *dashboardService) ListCurrencies(ctx context.Context) []string {
	return append([]string(nil), s.table.Codes...)
}

// ListYears returns the years present in the table.
func (s *dashboardService) ListYears(ctx context.Context) []int {
	return s.table.Years()
}

// CadenceOptions offers Yearly only across all years, and the finer cadences within one year.
func (s *dashboardService) CadenceOptions(year int) []domain.Cadence {
	if year == 0 {
		return []domain.Cadence{domain.Yearly}
	}
	return []domain.Cadence{domain.Daily, domain.Weekly, domain.Monthly, domain.Quarterly}
}

// DateRange returns the first and last dates of a year selection.
func (s *dashboardService) DateRange(ctx context.Context, year int) (time.Time, time.Time, bool) {
	return s.selectYear(year).DateRange()
}

// CurrentExchange computes last(to)/last(from) over the query range.
func (s *dashboardService) CurrentExchange(ctx context.Context, q domain.RateQuery) (*domain.CurrentExchange, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	rows := s.filter(q)

	rate, ok, err := analytics.CrossRate(rows, q.From, q.To)
	if err != nil {
		return nil, err
	}
	ce := &domain.CurrentExchange{From: q.From, To: q.To, Start: q.Start, End: q.End, Rate: rate, Available: ok}
	if first, last, found := rows.DateRange(); found {
		ce.Start, ce.End = first, last
	}
	if !ok {
		logger.Info("Exchange rate not available for selection",
			slog.String("from", q.From), slog.String("to", q.To), slog.Int("rows", rows.Len()))
	}
	return ce, nil
}

// Series filters the table and resamples the pair to the query cadence.
func (s *dashboardService) Series(ctx context.Context, q domain.RateQuery) (domain.RateTable, error) {
	if err := s.checkColumns(q); err != nil {
		return domain.RateTable{}, err
	}
	rows := s.filter(q)
	if rows.IsEmpty() {
		return domain.RateTable{}, fmt.Errorf("%w: no rates between the selected dates", apperrors.ErrInsufficientData)
	}
	out, err := analytics.Resample(rows, q.From, q.To, q.Cadence)
	if err != nil {
		return domain.RateTable{}, fmt.Errorf("failed to resample %s/%s: %w", q.From, q.To, err)
	}
	middleware.GetLoggerFromCtx(ctx).Debug("Series resampled",
		slog.String("cadence", q.Cadence.String()), slog.Int("rows_in", rows.Len()), slog.Int("rows_out", out.Len()))
	return out, nil
}

// Volatility measures the To column over the query range. Daily uses every
// row; other cadences sample the last observation of each period.
func (s *dashboardService) Volatility(ctx context.Context, q domain.RateQuery) (*domain.VolatilityResult, error) {
	if err := s.checkColumns(q); err != nil {
		return nil, err
	}
	rows := s.filter(q)
	if rows.IsEmpty() {
		return nil, fmt.Errorf("%w: no rates between the selected dates", apperrors.ErrInsufficientData)
	}

	var (
		value float64
		ok    bool
		err   error
	)
	if q.Cadence == domain.Daily {
		value, ok, err = analytics.Volatility(rows, q.From, q.To)
	} else {
		value, ok, err = analytics.VolatilityAt(rows, q.From, q.To, q.Cadence)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to compute volatility of %s: %w", q.To, err)
	}

	first, last, _ := rows.DateRange()
	return &domain.VolatilityResult{
		From:         q.From,
		To:           q.To,
		Cadence:      q.Cadence,
		Start:        first,
		End:          last,
		Observations: rows.Len(),
		Value:        value,
		Available:    ok,
	}, nil
}

func (s *dashboardService) checkColumns(q domain.RateQuery) error {
	for _, c := range []string{q.From, q.To} {
		if !s.table.Has(c) {
			return apperrors.NewMissingColumnError(c)
		}
	}
	return nil
}

func (s *dashboardService) selectYear(year int) domain.RateTable {
	if year == 0 {
		return s.table
	}
	return s.table.InYear(year)
}

func (s *dashboardService) filter(q domain.RateQuery) domain.RateTable {
	return s.selectYear(q.Year).Between(q.Start, q.End)
}
