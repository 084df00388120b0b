package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Method channel metrics
	MethodCalls    *prometheus.CounterVec
	MethodDuration *prometheus.HistogramVec
	EventsSent     *prometheus.CounterVec

	// View metrics
	ViewsActive  prometheus.Gauge
	ViewsCreated prometheus.Counter

	// Engine metrics
	PageLoads *prometheus.CounterVec

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	snapshot Snapshot
	mu       sync.RWMutex
}

// Snapshot holds current values for the JSON views endpoint.
type Snapshot struct {
	MethodCalls  int64 `json:"method_calls"`
	MethodErrors int64 `json:"method_errors"`
	EventsSent   int64 `json:"events_sent"`
	ActiveViews  int64 `json:"active_views"`
	Connections  int64 `json:"connections"`
}

// NewMetrics creates a metrics collector with its own registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webview_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webview_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		MethodCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webview_method_calls_total",
				Help: "Inbound method channel calls by outcome",
			},
			[]string{"method", "status"},
		),
		MethodDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webview_method_duration_seconds",
				Help:    "Time spent dispatching inbound method calls",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"method"},
		),
		EventsSent: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webview_events_sent_total",
				Help: "Outbound method channel invocations",
			},
			[]string{"method"},
		),

		ViewsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "webview_views_active",
				Help: "Number of live platform views",
			},
		),
		ViewsCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "webview_views_created_total",
				Help: "Total number of platform views created",
			},
		),

		PageLoads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webview_page_loads_total",
				Help: "Engine page loads by outcome",
			},
			[]string{"status"},
		),

		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "webview_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webview_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest records an HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordMethodCall records one answered inbound call. status is one of
// success, error or not_implemented.
func (m *Metrics) RecordMethodCall(method, status string, duration time.Duration) {
	m.MethodCalls.WithLabelValues(method, status).Inc()
	m.MethodDuration.WithLabelValues(method).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.MethodCalls++
	if status == "error" {
		m.snapshot.MethodErrors++
	}
	m.mu.Unlock()
}

// RecordEvent records an outbound invocation.
func (m *Metrics) RecordEvent(method string) {
	m.EventsSent.WithLabelValues(method).Inc()

	m.mu.Lock()
	m.snapshot.EventsSent++
	m.mu.Unlock()
}

// RecordPageLoad records an engine page load outcome.
func (m *Metrics) RecordPageLoad(status string) {
	m.PageLoads.WithLabelValues(status).Inc()
}

// ViewCreated records a new live view.
func (m *Metrics) ViewCreated() {
	m.ViewsCreated.Inc()
	m.ViewsActive.Inc()

	m.mu.Lock()
	m.snapshot.ActiveViews++
	m.mu.Unlock()
}

// ViewDisposed records a disposed view.
func (m *Metrics) ViewDisposed() {
	m.ViewsActive.Dec()

	m.mu.Lock()
	m.snapshot.ActiveViews--
	m.mu.Unlock()
}

// RecordWSMessage records a WebSocket message.
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSConnections increments WebSocket connections.
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
	m.mu.Lock()
	m.snapshot.Connections++
	m.mu.Unlock()
}

// DecWSConnections decrements WebSocket connections.
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
	m.mu.Lock()
	m.snapshot.Connections--
	m.mu.Unlock()
}

// Snapshot returns the current counters.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}
