// Package rateapi fetches present-day exchange rates from exchangerate-api.com.
package rateapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SscSPs/currency_exchange_tracker/internal/apperrors"
	"github.com/SscSPs/currency_exchange_tracker/internal/core/ports/repositories"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// Default endpoints of the keyed (v6) and open (v4) APIs.
const (
	DefaultKeyedURL = "https://v6.exchangerate-api.com"
	DefaultOpenURL  = "https://api.exchangerate-api.com"
)

// Config configures a Client.
type Config struct {
	// BaseURL overrides the API host. Empty selects the default for the API version.
	BaseURL string
	// APIKey selects the v6 API when set; the keyless v4 API is used otherwise.
	APIKey   string
	Timeout  time.Duration
	CacheTTL time.Duration
	// RPS limits outbound requests per second. Zero or less disables throttling.
	RPS float64
}

// Client implements repositories.RateProvider over the HTTP API.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
	cache   *rateCache
	flight  singleflight.Group
	metrics *Metrics
	logger  *slog.Logger
}

var _ repositories.RateProvider = (*Client)(nil)

// NewClient creates a Client. metrics may be nil.
func NewClient(cfg Config, metrics *Metrics, logger *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultOpenURL
		if cfg.APIKey != "" {
			cfg.BaseURL = DefaultKeyedURL
		}
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if logger == nil {
		logger = slog.Default()
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RPS), 1)
	}
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: limiter,
		cache:   newRateCache(cfg.CacheTTL),
		metrics: metrics,
		logger:  logger,
	}
}

// GetRate returns how many units of target one unit of base buys.
func (c *Client) GetRate(ctx context.Context, base, target string) (float64, error) {
	base, target = strings.ToUpper(base), strings.ToUpper(target)
	rates, err := c.Rates(ctx, base)
	if err != nil {
		return 0, err
	}
	r, ok := rates[target]
	if !ok {
		return 0, fmt.Errorf("%w: no %s rate in %s sheet", apperrors.ErrRateUnavailable, target, base)
	}
	return r, nil
}

// Rates returns the full rate sheet of base, from cache when fresh.
// Concurrent callers asking for the same base share one request.
func (c *Client) Rates(ctx context.Context, base string) (map[string]float64, error) {
	base = strings.ToUpper(base)
	if rates, ok := c.cache.get(base); ok {
		c.metrics.lookup(resultHit)
		return rates, nil
	}

	v, err, _ := c.flight.Do(base, func() (any, error) {
		if rates, ok := c.cache.get(base); ok {
			return rates, nil
		}
		rates, err := c.fetch(ctx, base)
		if err != nil {
			return nil, err
		}
		c.cache.put(base, rates)
		return rates, nil
	})
	if err != nil {
		c.metrics.lookup(resultError)
		c.logger.WarnContext(ctx, "Exchange rate lookup failed", slog.String("base", base), slog.String("error", err.Error()))
		return nil, err
	}
	c.metrics.lookup(resultFetched)
	return v.(map[string]float64), nil
}

type sheet struct {
	Result          string             `json:"result"`
	ErrorType       string             `json:"error-type"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
	Rates           map[string]float64 `json:"rates"`
}

func (c *Client) endpoint(base string) string {
	if c.cfg.APIKey != "" {
		return fmt.Sprintf("%s/v6/%s/latest/%s", c.cfg.BaseURL, url.PathEscape(c.cfg.APIKey), url.PathEscape(base))
	}
	return fmt.Sprintf("%s/v4/latest/%s", c.cfg.BaseURL, url.PathEscape(base))
}

func (c *Client) fetch(ctx context.Context, base string) (map[string]float64, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRateUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(base), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRateUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	c.metrics.observeFetch(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", apperrors.ErrRateUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: unexpected status %d", apperrors.ErrRateUnavailable, resp.StatusCode)
	}

	var s sheet
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: invalid response body: %v", apperrors.ErrRateUnavailable, err)
	}
	if s.Result == "error" {
		return nil, fmt.Errorf("%w: api error %s", apperrors.ErrRateUnavailable, s.ErrorType)
	}

	rates := s.Rates
	if c.cfg.APIKey != "" {
		rates = s.ConversionRates
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("%w: response has no rates", apperrors.ErrRateUnavailable)
	}
	c.logger.DebugContext(ctx, "Fetched exchange rates", slog.String("base", base), slog.Int("currencies", len(rates)))
	return rates, nil
}
