package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const subsystem = "pos"

// Pasos de efecto asesor (best-effort) que pueden fallar sin invalidar la orden.
const (
	StepTableOccupy = "table_occupy"
	StepStock       = "stock_consume"
	StepNotify      = "notify"
)

var (
	ordersCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "orders_created_total",
			Help:      "Órdenes creadas por tipo de orden.",
		},
		[]string{"order_type"},
	)
	orderTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "order_transitions_total",
			Help:      "Cambios de estado de órdenes (incluye anulaciones).",
		},
		[]string{"status"},
	)
	stockUnitsConsumed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "stock_units_consumed_total",
			Help:      "Unidades descontadas de lotes por consumo FIFO.",
		},
	)
	stockShortfallUnits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "stock_shortfall_units_total",
			Help:      "Unidades vendidas sin stock disponible para descontar.",
		},
	)
	batchesDiscarded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "batches_discarded_total",
			Help:      "Lotes dados de baja por merma o vencimiento.",
		},
	)
	advisoryFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "advisory_failures_total",
			Help:      "Fallos de pasos best-effort posteriores a la creación/edición de órdenes.",
		},
		[]string{"step"},
	)
)

var registerMetrics sync.Once

// Register registra las métricas en el registry por defecto de Prometheus.
func Register() {
	registerMetrics.Do(func() {
		prometheus.MustRegister(
			ordersCreated,
			orderTransitions,
			stockUnitsConsumed,
			stockShortfallUnits,
			batchesDiscarded,
			advisoryFailures,
		)
	})
}

// RecordOrderCreated cuenta una orden creada.
func RecordOrderCreated(orderType string) {
	ordersCreated.WithLabelValues(orderType).Inc()
}

// RecordOrderTransition cuenta un cambio de estado.
func RecordOrderTransition(status string) {
	orderTransitions.WithLabelValues(status).Inc()
}

// RecordStockConsumption suma unidades consumidas y faltantes de un ConsumeFIFO.
func RecordStockConsumption(consumed, shortfall int) {
	if consumed > 0 {
		stockUnitsConsumed.Add(float64(consumed))
	}
	if shortfall > 0 {
		stockShortfallUnits.Add(float64(shortfall))
	}
}

// RecordBatchDiscarded cuenta un lote dado de baja.
func RecordBatchDiscarded() {
	batchesDiscarded.Inc()
}

// RecordAdvisoryFailure cuenta el fallo de un paso best-effort.
func RecordAdvisoryFailure(step string) {
	advisoryFailures.WithLabelValues(step).Inc()
}
