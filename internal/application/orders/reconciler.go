package orders

import (
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/Autoelectrica-api/internal/domain"
	"github.com/jhoicas/Autoelectrica-api/internal/domain/entity"
	"github.com/jhoicas/Autoelectrica-api/internal/domain/repository"
	"github.com/jhoicas/Autoelectrica-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Autoelectrica-api/pkg/logger"
)

// StatusEdge es la transición de estado observada en un update de pedido,
// calculada por el caso de uso comparando el registro previo con el nuevo.
// El reconciliador no compara registros: recibe el flanco ya computado.
type StatusEdge struct {
	WasFulfilled    bool
	WillBeFulfilled bool
}

// Triggered indica si la transición dispara la reconciliación: únicamente el
// flanco no-cumplido -> cumplido. Reenviar un pedido ya cumplido, o cualquier
// otro cambio de estado, no reconcilia.
func (e StatusEdge) Triggered() bool {
	return !e.WasFulfilled && e.WillBeFulfilled
}

// Result productos mutados y movimientos generados por una reconciliación.
type Result struct {
	Products  []*entity.Product
	Movements []*entity.Movement
}

// Reconciler es la única autoridad que modifica StockQty de un producto.
// Aplica las líneas de un pedido contra el stock en dos fases: valida todas
// las líneas sobre una copia de trabajo de las cantidades y solo después
// persiste; una venta sin stock suficiente aborta el pedido completo antes de
// escribir movimiento alguno.
type Reconciler struct {
	log *logger.Logger
}

// NewReconciler construye el reconciliador.
func NewReconciler(log *logger.Logger) *Reconciler {
	return &Reconciler{log: log}
}

// Apply reconcilia el pedido usando los repositorios proporcionados (atados a
// la transacción del caller). Contrato:
//
//   - Bloquea las filas de todos los productos referenciados (FOR UPDATE, en
//     orden ascendente de ID para evitar deadlocks entre pedidos concurrentes).
//   - Recorre las líneas en su orden de secuencia: compra suma stock
//     (movimiento in), venta resta (movimiento out).
//   - Una línea cuyo producto no existe se ignora y se deja constancia en el
//     log (política documentada del flujo; ver DESIGN.md).
//   - Si una venta excede el disponible en ese punto de la secuencia, retorna
//     InsufficientStockError con el nombre del producto y el disponible; el
//     rollback de la tx revierte cualquier efecto parcial.
func (r *Reconciler) Apply(
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
	order *entity.Order,
	actor string,
	now time.Time,
) (*Result, error) {
	if len(order.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	// Fase 1a: resolver y bloquear cada producto referenciado, una sola vez,
	// en orden ascendente de ID.
	ids := distinctProductIDs(order.Items)
	locked := make(map[int64]*entity.Product, len(ids))
	for _, id := range ids {
		p, err := productRepo.GetForUpdate(id)
		if err != nil {
			return nil, fmt.Errorf("bloquear producto %d: %w", id, err)
		}
		if p == nil {
			continue // la línea se ignorará más abajo
		}
		locked[id] = p
	}

	// Fase 1b: validar todas las líneas contra una copia de trabajo de las
	// cantidades; ningún repositorio se toca todavía.
	working := make(map[int64]int, len(locked))
	for id, p := range locked {
		working[id] = p.StockQty
	}

	var pending []*entity.Movement
	touched := make(map[int64]bool, len(locked))
	for _, item := range order.Items {
		p, ok := locked[item.ProductID]
		if !ok {
			metrics.LineItemsSkippedTotal.Inc()
			r.log.Warn().
				Int64("order_id", order.ID).
				Int64("product_id", item.ProductID).
				Msg("línea de pedido ignorada: producto inexistente")
			continue
		}

		var direction string
		switch order.Kind {
		case entity.OrderKindPurchase:
			working[p.ID] += item.Quantity
			direction = entity.MovementIn
		case entity.OrderKindSale:
			if working[p.ID] < item.Quantity {
				metrics.ReconciliationsRejectedTotal.Inc()
				return nil, &domain.InsufficientStockError{
					ProductName: p.Name,
					Available:   working[p.ID],
				}
			}
			working[p.ID] -= item.Quantity
			direction = entity.MovementOut
		default:
			return nil, domain.ErrInvalidInput
		}

		orderID := order.ID
		pending = append(pending, &entity.Movement{
			ProductID: p.ID,
			Direction: direction,
			Quantity:  item.Quantity,
			OrderID:   &orderID,
			Date:      now,
			CreatedBy: actor,
		})
		touched[p.ID] = true
	}

	// Fase 2: commit. Persistir las nuevas cantidades y el rastro de
	// movimientos; cualquier error aquí revierte la tx completa.
	result := &Result{}
	for _, id := range ids {
		if !touched[id] {
			continue
		}
		p := locked[id]
		p.StockQty = working[id]
		p.UpdatedAt = now
		if err := productRepo.UpdateStock(p.ID, p.StockQty); err != nil {
			return nil, fmt.Errorf("actualizar stock de producto %d: %w", p.ID, err)
		}
		result.Products = append(result.Products, p)
	}
	for _, mov := range pending {
		if err := movementRepo.Create(mov); err != nil {
			return nil, fmt.Errorf("registrar movimiento: %w", err)
		}
		metrics.MovementsTotal.WithLabelValues(mov.Direction).Inc()
		result.Movements = append(result.Movements, mov)
	}

	metrics.ReconciliationsTotal.WithLabelValues(order.Kind).Inc()
	r.log.Info().
		Int64("order_id", order.ID).
		Str("kind", order.Kind).
		Int("products", len(result.Products)).
		Int("movements", len(result.Movements)).
		Msg("pedido reconciliado")
	return result, nil
}

// distinctProductIDs IDs únicos de las líneas, ascendentes (orden de bloqueo).
func distinctProductIDs(items []entity.OrderItem) []int64 {
	seen := make(map[int64]bool, len(items))
	var ids []int64
	for _, it := range items {
		if !seen[it.ProductID] {
			seen[it.ProductID] = true
			ids = append(ids, it.ProductID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
