package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/SscSPs/currency_exchange_tracker/internal/apperrors"
	"github.com/SscSPs/currency_exchange_tracker/internal/core/analytics"
	"github.com/SscSPs/currency_exchange_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_exchange_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/currency_exchange_tracker/internal/core/ports/services"
	"github.com/SscSPs/currency_exchange_tracker/internal/dto"
	"github.com/SscSPs/currency_exchange_tracker/internal/middleware"
)

// weightTolerance is how far percent weights may drift from 100 in total.
const weightTolerance = 1e-6

var currencyCode = regexp.MustCompile(`^[A-Z]{3}$`)

// basketService values baskets through a live rate provider.
type basketService struct {
	provider    portsrepo.RateProvider
	presets     []domain.BasketPreset
	concurrency int
}

var _ portssvc.BasketSvcFacade = (*basketService)(nil)

// BasketOption configures the basket service.
type BasketOption func(*basketService)

// WithPresets sets the named baskets returned by ListPresets.
func WithPresets(presets []domain.BasketPreset) BasketOption {
	return func(s *basketService) { s.presets = presets }
}

// WithBasketConcurrency bounds the number of concurrent rate lookups.
func WithBasketConcurrency(n int) BasketOption {
	return func(s *basketService) { s.concurrency = n }
}

// NewBasketService creates a basket service over provider.
func NewBasketService(provider portsrepo.RateProvider, opts ...BasketOption) portssvc.BasketSvcFacade {
	s := &basketService{provider: provider, concurrency: analytics.DefaultBasketConcurrency}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValueBasket checks the percent weights and values the basket in req.Base.
// Lookup failures never fail the request; they are reported in the valuation.
func (s *basketService) ValueBasket(ctx context.Context, req dto.BasketValueRequest) (*domain.BasketValuation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	base := strings.ToUpper(strings.TrimSpace(req.Base))
	if !currencyCode.MatchString(base) {
		return nil, fmt.Errorf("%w: base currency %q must be a three letter code", apperrors.ErrValidation, req.Base)
	}
	spec, err := percentToFractions(req.Weights)
	if err != nil {
		return nil, err
	}

	logger.Info("Valuing basket", slog.String("base", base), slog.Int("currencies", len(spec)))
	v := analytics.ValueBasket(ctx, spec, base, s.provider, analytics.BasketOptions{
		Concurrency: s.concurrency,
		Logger:      logger,
	})
	if v.AllUnresolved() {
		logger.Warn("No basket rates could be retrieved", slog.String("base", base))
	}
	return &v, nil
}

// ListPresets returns the configured baskets sorted by name.
func (s *basketService) ListPresets(ctx context.Context) []domain.BasketPreset {
	out := append([]domain.BasketPreset(nil), s.presets...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// percentToFractions validates percent weights and converts them to fractions.
func percentToFractions(weights map[string]float64) (domain.BasketSpec, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("%w: basket needs at least one currency", apperrors.ErrValidation)
	}
	spec := make(domain.BasketSpec, len(weights))
	total := 0.0
	for raw, w := range weights {
		code := strings.ToUpper(strings.TrimSpace(raw))
		if !currencyCode.MatchString(code) {
			return nil, fmt.Errorf("%w: %q is not a three letter currency code", apperrors.ErrValidation, raw)
		}
		if _, dup := spec[code]; dup {
			return nil, fmt.Errorf("%w: currency %s appears more than once", apperrors.ErrValidation, code)
		}
		if math.IsNaN(w) || w < 0 || w > 100 {
			return nil, fmt.Errorf("%w: weight of %s must be between 0 and 100", apperrors.ErrValidation, code)
		}
		spec[code] = w / 100
		total += w
	}
	if math.Abs(total-100) > weightTolerance {
		return nil, fmt.Errorf("%w: weights must add up to 100%%, got %g%%", apperrors.ErrValidation, total)
	}
	return spec, nil
}
