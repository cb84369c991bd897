// Package metrics define los contadores Prometheus del motor de stock.
// Se registran en el registry global y se exponen en /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReconciliationsTotal reconciliaciones completadas, por tipo de pedido.
	ReconciliationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "autoelectrica_reconciliations_total",
		Help: "Reconciliaciones de pedido completadas, por tipo (purchase|sale).",
	}, []string{"kind"})

	// ReconciliationsRejectedTotal reconciliaciones abortadas por stock insuficiente.
	ReconciliationsRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "autoelectrica_reconciliations_rejected_total",
		Help: "Reconciliaciones rechazadas por stock insuficiente.",
	})

	// MovementsTotal movimientos de stock registrados, por dirección.
	MovementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "autoelectrica_movements_total",
		Help: "Movimientos de stock registrados, por dirección (in|out).",
	}, []string{"direction"})

	// LineItemsSkippedTotal líneas de pedido ignoradas por producto inexistente.
	LineItemsSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "autoelectrica_line_items_skipped_total",
		Help: "Líneas de pedido ignoradas porque el producto referenciado no existe.",
	})
)
