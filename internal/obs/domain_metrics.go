package obs

import "github.com/prometheus/client_golang/prometheus"

// Domain collectors are usable from package init; RegisterDomainMetrics
// attaches them to a registry so they show up on /metrics.
var (
	// QuoteTotal counts shipping quote outcomes by result kind.
	QuoteTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "huum",
		Name:      "shipping_quote_total",
		Help:      "Count of shipping quote attempts by outcome.",
	}, []string{"result"})

	// GeocodeCacheTotal counts coordinate cache lookups by hit or miss.
	GeocodeCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "huum",
		Name:      "geocode_cache_total",
		Help:      "Coordinate cache lookups by result.",
	}, []string{"result"})

	// UpstreamLatency records external lookup latency in milliseconds.
	UpstreamLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "huum",
		Name:      "upstream_lookup_duration_ms",
		Help:      "Latency of external postal and geocoding lookups in milliseconds.",
		Buckets:   []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
	}, []string{"upstream"})
)

// RegisterDomainMetrics registers the domain collectors with the registry.
func RegisterDomainMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	registerCollector(reg, QuoteTotal)
	registerCollector(reg, GeocodeCacheTotal)
	registerCollector(reg, UpstreamLatency)
}
