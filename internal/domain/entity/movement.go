package entity

import "time"

// Direcciones de movimiento de stock.
const (
	MovementIn  = "in"  // entrada (pedido de compra cumplido)
	MovementOut = "out" // salida (pedido de venta cumplido)
)

// Movement es el registro de auditoría de un cambio de stock. Los movimientos
// son append-only: el sistema nunca los actualiza ni los borra.
type Movement struct {
	ID        int64
	ProductID int64
	Direction string // in | out
	Quantity  int
	OrderID   *int64 // pedido que originó el movimiento (nil si el pedido fue borrado)
	Date      time.Time
	CreatedBy string // usuario que cumplió el pedido
}
