// Package metrics colectores Prometheus del servicio.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Cotizador-api/internal/application/ports"
)

const namespace = "cotizador"

var _ ports.RecalcRecorder = (*Registry)(nil)

// Registry agrupa los colectores en un registro propio (no el global).
type Registry struct {
	reg          *prometheus.Registry
	recalculated *prometheus.CounterVec
	reqTotal     *prometheus.CounterVec
	reqDuration  *prometheus.HistogramVec
}

// NewRegistry crea el registro con los colectores del proceso y de Go.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		recalculated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_recalculated_total",
			Help:      "Recálculos de documentos por tipo (quotation, sales_order, preview).",
		}, []string{"kind"}),
		reqTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total de requests HTTP atendidos.",
		}, []string{"method", "route", "status"}),
		reqDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latencia de requests HTTP en segundos.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	r.reg.MustRegister(
		r.recalculated,
		r.reqTotal,
		r.reqDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Gatherer expone el registro (tests y /metrics).
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

// DocumentRecalculated implementa ports.RecalcRecorder.
func (r *Registry) DocumentRecalculated(kind string) {
	r.recalculated.WithLabelValues(kind).Inc()
}

// Middleware mide cada request. Usa la ruta registrada (ej: /api/quotations/:id)
// para no explotar la cardinalidad con IDs.
func (r *Registry) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else if status < 400 {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		if route == "" || route == "/" && c.Path() != "/" {
			route = "unmatched"
		}
		method := c.Method()
		r.reqTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		r.reqDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler GET /metrics en formato de exposición Prometheus.
func (r *Registry) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}))
}
