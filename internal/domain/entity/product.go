package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un repuesto auto-eléctrico del catálogo.
// StockQty es la cantidad disponible almacenada en el propio registro
// (valor denormalizado); solo el reconciliador de pedidos la modifica como
// efecto de un pedido cumplido. MinAlert es el umbral de alerta de stock bajo.
type Product struct {
	ID          int64
	Name        string
	Code        string          // código único por tienda (insensible a mayúsculas)
	Description string
	Price       decimal.Decimal // precio unitario de venta (> 0)
	StockQty    int             // cantidad en stock (>= 0, invariante del reconciliador)
	MinAlert    int             // umbral de alerta de stock mínimo (>= 0)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
