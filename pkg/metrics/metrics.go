// Package metrics provides prometheus instrumentation for the HTTP surface
// and the structural mutation engine.
//
// Example:
//
//	if err := metrics.InitMetrics(cfg.Metrics); err != nil {
//		log.Fatal(err)
//	}
//
//	metrics.RequestCounter.WithLabelValues("GET", "/api/v1/folders").Inc()
//	metrics.MutationCounter.WithLabelValues("move", "ok").Inc()
package metrics

import (
	"fmt"
	"net/http"
	_ "net/http/pprof" // registers pprof endpoints on the default mux

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/drivevault/drivevault/pkg/configs"
)

var (
	// RequestCounter counts HTTP requests.
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint"},
	)

	// RequestDuration observes HTTP request durations.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// MutationCounter counts structural mutations by operation and outcome
	// kind (ok, duplicate_path, invalid_state, ...).
	MutationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vault_mutations_total",
			Help: "Structural mutations by operation and outcome",
		},
		[]string{"op", "outcome"},
	)

	// registry is the process-local prometheus registry.
	registry = prometheus.NewRegistry()
)

// InitMetrics registers collectors according to config.
func InitMetrics(config configs.MetricsConfig) error {
	if !config.Enabled {
		return nil
	}

	if config.RuntimeMetrics {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	registry.MustRegister(RequestCounter, RequestDuration, MutationCounter)

	return nil
}

// Registry exposes the registry for plugins (GORM prometheus).
func Registry() *prometheus.Registry {
	return registry
}

// StartMetricsServer serves the registry on its own port.
func StartMetricsServer(config configs.MetricsConfig) error {
	if !config.Enabled {
		return nil
	}

	// The GORM plugin registers on the default registry; gather both.
	gatherers := prometheus.Gatherers{registry, prometheus.DefaultGatherer}

	mux := http.NewServeMux()
	mux.Handle(config.Path, promhttp.HandlerFor(gatherers, promhttp.HandlerOpts{}))
	// pprof registers itself on the default mux via its import.
	mux.Handle("/debug/pprof/", http.DefaultServeMux)

	go func() {
		//nolint:errcheck,gosec // best-effort metrics listener
		http.ListenAndServe(fmt.Sprintf(":%d", config.Port), mux)
	}()

	return nil
}
