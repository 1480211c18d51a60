package rateapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Lookup results recorded by Metrics.
const (
	resultHit     = "hit"
	resultFetched = "fetched"
	resultError   = "error"
)

// Metrics are the Prometheus collectors of the rate API client.
type Metrics struct {
	lookups       *prometheus.CounterVec
	fetchDuration prometheus.Histogram
}

// NewMetrics registers the client collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		lookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "cet_rate_lookups_total",
			Help: "Live exchange rate lookups by result.",
		}, []string{"result"}),
		fetchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "cet_rate_fetch_duration_seconds",
			Help:    "Duration of requests to the exchange rate API.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) lookup(result string) {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(result).Inc()
}

func (m *Metrics) observeFetch(seconds float64) {
	if m == nil {
		return
	}
	m.fetchDuration.Observe(seconds)
}
