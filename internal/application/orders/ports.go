package orders

import (
	"context"

	"github.com/jhoicas/Autoelectrica-api/internal/domain/entity"
	"github.com/jhoicas/Autoelectrica-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la reconciliación y la
// actualización del pedido se confirmen o reviertan como una sola unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
		orderRepo repository.OrderRepository,
	) error) error
}

// Notifier publica alertas de stock bajo generadas por una reconciliación.
// Las implementaciones no deben bloquear el flujo del pedido: los errores se
// registran y se descartan.
type Notifier interface {
	NotifyLowStock(ctx context.Context, products []*entity.Product) error
}
