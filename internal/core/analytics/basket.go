package analytics

import (
	"context"
	"log/slog"

	"github.com/SscSPs/currency_exchange_tracker/internal/core/domain"
	"github.com/SscSPs/currency_exchange_tracker/internal/core/ports/repositories"
	"golang.org/x/sync/errgroup"
)

// DefaultBasketConcurrency bounds the number of in-flight rate lookups.
const DefaultBasketConcurrency = 4

// BasketOptions tunes ValueBasket.
type BasketOptions struct {
	Concurrency int
	Logger      *slog.Logger
}

// ValueBasket prices every currency of basket against base and returns the
// weighted sum of the resolved rates. A failed lookup contributes nothing and
// is listed in Unresolved; it never aborts the other lookups.
func ValueBasket(ctx context.Context, basket domain.BasketSpec, base string, provider repositories.RateProvider, opts BasketOptions) domain.BasketValuation {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	limit := opts.Concurrency
	if limit <= 0 {
		limit = DefaultBasketConcurrency
	}

	codes := basket.Codes()
	lines := make([]domain.BasketLine, len(codes))

	// Each goroutine owns one slot of lines, so no locking is needed.
	g := new(errgroup.Group)
	g.SetLimit(limit)
	for i, code := range codes {
		g.Go(func() error {
			weight := basket[code]
			q := domain.RateQuote{Base: base, Target: code}
			rate, err := provider.GetRate(ctx, base, code)
			if err != nil {
				logger.Warn("Rate could not be retrieved",
					slog.String("base", base),
					slog.String("currency", code),
					slog.String("error", err.Error()),
				)
			} else {
				q.Rate = rate
				q.Found = true
			}
			lines[i] = domain.BasketLine{Quote: q, Weight: weight}
			if q.Found {
				lines[i].Contribution = rate * weight
			}
			return nil
		})
	}
	_ = g.Wait()

	valuation := domain.BasketValuation{
		Base:       base,
		Lines:      lines,
		Unresolved: []string{},
	}
	for _, l := range lines {
		if !l.Quote.Found {
			valuation.Unresolved = append(valuation.Unresolved, l.Quote.Target)
			continue
		}
		valuation.Total += l.Contribution
	}
	return valuation
}
