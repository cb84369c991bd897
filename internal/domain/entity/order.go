package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de pedido.
const (
	OrderKindPurchase = "purchase" // compra a proveedor (entrada de stock)
	OrderKindSale     = "sale"     // venta a cliente (salida de stock)
)

// Estados de pedido. Un pedido nace pending; la transición a fulfilled
// dispara la reconciliación de stock exactamente una vez. fulfilled y
// cancelled son estados terminales para efectos de stock.
const (
	OrderStatusPending   = "pending"
	OrderStatusFulfilled = "fulfilled"
	OrderStatusCancelled = "cancelled"
)

// Order representa un pedido de compra o venta con sus líneas.
type Order struct {
	ID        int64
	Kind      string // purchase | sale
	Status    string // pending | fulfilled | cancelled
	Date      time.Time
	Notes     string
	Items     []OrderItem // secuencia ordenada; se reconcilia en este orden
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderItem una línea del pedido. UnitPrice es informativo: no participa en
// el cálculo de stock.
type OrderItem struct {
	ProductID int64
	Quantity  int             // > 0
	UnitPrice decimal.Decimal // > 0
}

// ValidKind verifica que el tipo de pedido sea conocido.
func ValidKind(kind string) bool {
	return kind == OrderKindPurchase || kind == OrderKindSale
}

// ValidStatus verifica que el estado de pedido sea conocido.
func ValidStatus(status string) bool {
	return status == OrderStatusPending || status == OrderStatusFulfilled || status == OrderStatusCancelled
}
