// Package metrics exposes the server's Prometheus collectors. Registration
// is idempotent so any component can record without caring about init order.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "termcast",
			Name:      "requests_total",
			Help:      "Total requests dispatched, by traffic class.",
		},
		[]string{"route"},
	)
	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "termcast",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Request duration in seconds, by traffic class.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route"},
	)
	activeSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "termcast",
			Name:      "active_sessions",
			Help:      "Currently open terminal sessions.",
		},
	)
	wsClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "termcast",
			Name:      "ws_clients",
			Help:      "Currently connected WebSocket viewers.",
		},
	)
	rpcStreams = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "termcast",
			Name:      "rpc_streams",
			Help:      "Currently attached terminal client streams.",
		},
	)
)

// Register installs the collectors into the default registry exactly once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(requestsTotal, requestDuration, activeSessions, wsClients, rpcStreams)
	})
}

// RecordRequest counts one dispatched request and observes its duration.
// Route is the traffic class the request was dispatched to (web, rpc,
// redirect).
func RecordRequest(route string, duration time.Duration) {
	Register()
	requestsTotal.WithLabelValues(route).Inc()
	requestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// SetActiveSessions records the current number of open sessions.
func SetActiveSessions(n int) {
	Register()
	activeSessions.Set(float64(n))
}

// WSClientConnected increments the viewer gauge.
func WSClientConnected() {
	Register()
	wsClients.Inc()
}

// WSClientDisconnected decrements the viewer gauge.
func WSClientDisconnected() {
	Register()
	wsClients.Dec()
}

// StreamAttached increments the terminal client stream gauge.
func StreamAttached() {
	Register()
	rpcStreams.Inc()
}

// StreamDetached decrements the terminal client stream gauge.
func StreamDetached() {
	Register()
	rpcStreams.Dec()
}
