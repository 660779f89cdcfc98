// Package metrics expone contadores Prometheus del servicio.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/facturacion-gst/internal/application/billing"
)

const namespace = "facturacion"

// Metrics agrupa los colectores en un registro propio.
type Metrics struct {
	registry *prometheus.Registry

	renderDuration *prometheus.HistogramVec
	renders        *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

var _ billing.RenderMetrics = (*Metrics)(nil)

// New registra los colectores. Con withRuntime incluye las métricas de proceso y del runtime de Go.
func New(withRuntime bool) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		renderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pdf_render_duration_seconds",
			Help:      "Duración de la generación de PDF por resultado.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2},
		}, []string{"outcome"}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pdf_renders_total",
			Help:      "PDF servidos por resultado (ok, cache_hit, error).",
		}, []string{"outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP por método, ruta y estado.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latencia de las peticiones HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	m.registry.MustRegister(m.renderDuration, m.renders, m.httpRequests, m.httpDuration)
	if withRuntime {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return m
}

// ObserveRender registra un render de factura.
func (m *Metrics) ObserveRender(outcome string, elapsed time.Duration) {
	m.renders.WithLabelValues(outcome).Inc()
	m.renderDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// ObserveHTTP registra una petición atendida.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Registry registro subyacente (útil en tests).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler expone el registro en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
