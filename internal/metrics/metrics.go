// Package metrics exports kiba's Prometheus instrumentation: a counter of
// accepted connections, a counter of requests processed by operator, a
// counter of store/protocol errors, and a gauge of the message-bus queue
// depth. All of it is observation-only, grounded in the same
// prometheus/client_golang instrumentation style as the runZeroInc-conniver
// TCP exporter in this corpus (internal/exporter.go) — a collector feeding
// a registry exposed over HTTP, kept entirely out of the text wire
// protocol's listener.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles kiba's metrics and exposes them over an HTTP handler.
type Registry struct {
	ConnectionsTotal prometheus.Counter
	RequestsTotal    *prometheus.CounterVec
	ErrorsTotal      prometheus.Counter
	QueueDepth       prometheus.Gauge

	reg *prometheus.Registry
}

// New registers kiba's metrics on a fresh, private Prometheus registry (not
// the global DefaultRegisterer) so that embedding kiba in a larger process
// never collides with that process's own metric names.
func New() *Registry {
	r := &Registry{reg: prometheus.NewRegistry()}

	r.ConnectionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "kiba",
		Name:      "connections_total",
		Help:      "Total TCP connections accepted by the coordinator.",
	})
	r.RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kiba",
		Name:      "requests_total",
		Help:      "Total requests dispatched by the executor, by operator.",
	}, []string{"op"})
	r.ErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "kiba",
		Name:      "errors_total",
		Help:      "Total requests that produced an (error) response.",
	})
	r.QueueDepth = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "kiba",
		Name:      "queue_depth",
		Help:      "Current depth of the message-bus channel feeding the executor.",
	})

	r.reg.MustRegister(r.ConnectionsTotal, r.RequestsTotal, r.ErrorsTotal, r.QueueDepth)
	return r
}

// Handler returns the HTTP handler to serve at /metrics.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// ObserveRequest implements executor.Observer.
func (r *Registry) ObserveRequest(op string, isErr bool) {
	r.RequestsTotal.WithLabelValues(op).Inc()
	if isErr {
		r.ErrorsTotal.Inc()
	}
}
