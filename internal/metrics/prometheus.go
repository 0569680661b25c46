package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusMetrics holds the collectors for the aggregation layer.
type PrometheusMetrics struct {
	registry *prometheus.Registry

	tierServed         *prometheus.CounterVec
	providerErrors     *prometheus.CounterVec
	insightGenerations *prometheus.CounterVec
	aggregatorAnomaly  *prometheus.CounterVec
	cacheEvictions     *prometheus.CounterVec
}

var (
	promMu      sync.RWMutex
	promMetrics *PrometheusMetrics
)

// InitPrometheus builds a fresh registry. Calling it again replaces the
// previous one, which tests rely on.
func InitPrometheus(namespace string) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewGoCollector())
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	pm := &PrometheusMetrics{
		registry: registry,

		tierServed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tier_served_total",
				Help:      "Responses served per data kind and fallback tier",
			},
			[]string{"kind", "tier"},
		),

		providerErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "provider_errors_total",
				Help:      "Failed upstream provider calls",
			},
			[]string{"provider"},
		),

		insightGenerations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "insight_generations_total",
				Help:      "Insight generation attempts by result",
			},
			[]string{"result"},
		),

		aggregatorAnomaly: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "aggregator_anomalies_total",
				Help:      "Dashboard branches replaced by a static fallback",
			},
			[]string{"kind"},
		),

		cacheEvictions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_evictions_total",
				Help:      "Expired entries removed by the sweeper",
			},
			[]string{"cache"},
		),
	}

	registry.MustRegister(
		pm.tierServed,
		pm.providerErrors,
		pm.insightGenerations,
		pm.aggregatorAnomaly,
		pm.cacheEvictions,
	)

	promMu.Lock()
	promMetrics = pm
	promMu.Unlock()
}

func current() *PrometheusMetrics {
	promMu.RLock()
	defer promMu.RUnlock()
	return promMetrics
}

func RecordTierServed(kind, tier string) {
	if pm := current(); pm != nil {
		pm.tierServed.WithLabelValues(kind, tier).Inc()
	}
}

func RecordProviderError(provider string) {
	if pm := current(); pm != nil {
		pm.providerErrors.WithLabelValues(provider).Inc()
	}
}

func RecordInsightGeneration(result string) {
	if pm := current(); pm != nil {
		pm.insightGenerations.WithLabelValues(result).Inc()
	}
}

func RecordAggregatorAnomaly(kind string) {
	if pm := current(); pm != nil {
		pm.aggregatorAnomaly.WithLabelValues(kind).Inc()
	}
}

func RecordCacheEvictions(cache string, n int) {
	if n <= 0 {
		return
	}
	if pm := current(); pm != nil {
		pm.cacheEvictions.WithLabelValues(cache).Add(float64(n))
	}
}

// PrometheusHandler serves the registry, or 503 before InitPrometheus.
func PrometheusHandler() http.Handler {
	pm := current()
	if pm == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("prometheus metrics not initialized"))
		})
	}
	return promhttp.HandlerFor(pm.registry, promhttp.HandlerOpts{})
}

func PrometheusRegistry() *prometheus.Registry {
	if pm := current(); pm != nil {
		return pm.registry
	}
	return nil
}
