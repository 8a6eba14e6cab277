// Package metrics contadores Prometheus del flujo, del stock y de las notificaciones.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/inventario-mmg/internal/application/stock"
	"github.com/jhoicas/inventario-mmg/internal/application/workflow"
	"github.com/jhoicas/inventario-mmg/internal/domain/entity"
)

const namespace = "inventario"

var (
	_ workflow.Recorder = (*Metrics)(nil)
	_ stock.Recorder    = (*Metrics)(nil)
)

// Metrics registro propio (no el global) para poder instanciarlo en tests.
type Metrics struct {
	registry             *prometheus.Registry
	transitions          *prometheus.CounterVec
	compensations        *prometheus.CounterVec
	notificationFailures *prometheus.CounterVec
	stockOps             *prometheus.CounterVec
}

// New crea y registra los contadores, más los collectors de runtime de Go y del proceso.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "workflow",
			Name:      "transitions_total",
			Help:      "Transiciones de solicitudes por resultado.",
		}, []string{"transition", "outcome"}),
		compensations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "workflow",
			Name:      "compensations_total",
			Help:      "Pasos compensados tras un fallo parcial.",
		}, []string{"step", "result"}),
		notificationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "failures_total",
			Help:      "Notificaciones que no pudieron entregarse.",
		}, []string{"type"}),
		stockOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "stock",
			Name:      "operations_total",
			Help:      "Operaciones sobre el libro de stock.",
		}, []string{"op", "outcome"}),
	}
	m.registry.MustRegister(
		m.transitions, m.compensations, m.notificationFailures, m.stockOps,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Transition implementa workflow.Recorder.
func (m *Metrics) Transition(name, outcome string) {
	m.transitions.WithLabelValues(name, outcome).Inc()
}

// Compensation implementa workflow.Recorder.
func (m *Metrics) Compensation(step string, err error) {
	result := "ok"
	if err != nil {
		result = "failed"
	}
	m.compensations.WithLabelValues(step, result).Inc()
}

// NotificationFailed implementa workflow.Recorder.
func (m *Metrics) NotificationFailed(kind entity.NotificationType) {
	m.notificationFailures.WithLabelValues(string(kind)).Inc()
}

// StockOperation implementa stock.Recorder.
func (m *Metrics) StockOperation(op, outcome string) {
	m.stockOps.WithLabelValues(op, outcome).Inc()
}

// Registry para exponer o inspeccionar.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler endpoint /metrics en formato de exposición Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
