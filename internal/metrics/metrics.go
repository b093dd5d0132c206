// Package metrics exposes Prometheus collectors for monitor mode: each
// detection run is counted and its verdict reflected in gauges, so a scrape
// always reports the most recent integrity state.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tamperscan/internal/checks"
)

type Metrics struct {
	registry *prometheus.Registry

	runsTotal          *prometheus.CounterVec
	checkFailuresTotal *prometheus.CounterVec
	compromised        prometheus.Gauge
	runDuration        prometheus.Histogram
}

func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = "tamperscan"
	}

	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		runsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Total number of detection runs by result",
			},
			[]string{"result"},
		),
		checkFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "check_failures_total",
				Help:      "Total number of failing check outcomes by check id",
			},
			[]string{"check_id"},
		),
		compromised: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "compromised",
				Help:      "1 when the most recent detection run found compromise evidence, else 0",
			},
		),
		runDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Detection run latencies in seconds",
				Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
			},
		),
	}
}

// Record folds one finished run into the collectors. partial marks a run
// where at least one probe reported a degraded scope.
func (m *Metrics) Record(v checks.Verdict, partial bool) {
	result := "clean"
	switch {
	case v.IsCompromised:
		result = "compromised"
	case partial:
		result = "partial"
	}
	m.runsTotal.WithLabelValues(result).Inc()

	for _, o := range v.FailedChecks {
		m.checkFailuresTotal.WithLabelValues(string(o.CheckID)).Inc()
	}

	if v.IsCompromised {
		m.compromised.Set(1)
	} else {
		m.compromised.Set(0)
	}

	m.runDuration.Observe(v.Duration.Seconds())
}

// Handler returns the scrape endpoint for this metrics set.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
