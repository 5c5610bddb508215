package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics holds the server's Prometheus collectors. Each server carries
// its own registry so multiple instances (and tests) never fight over
// collector registration.
type metrics struct {
	registry *prometheus.Registry
	ops      *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wither",
			Name:      "operations_total",
			Help:      "Store operations served, by operation and result.",
		}, []string{"op", "result"}),
	}
	m.registry.MustRegister(m.ops)
	return m
}

func (m *metrics) observe(op, result string) {
	if result == "" {
		result = "ok"
	}
	m.ops.WithLabelValues(op, result).Inc()
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
