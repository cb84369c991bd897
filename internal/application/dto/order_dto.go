package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemDTO una línea de pedido en requests y responses.
type OrderItemDTO struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest entrada para crear un pedido. Status se omite o debe ser
// "pending": los pedidos nacen pendientes.
type CreateOrderRequest struct {
	Kind   string         `json:"kind"` // purchase | sale
	Status string         `json:"status"`
	Notes  string         `json:"notes"`
	Items  []OrderItemDTO `json:"items"`
}

// UpdateOrderRequest entrada para actualizar un pedido. Cambiar Status a
// "fulfilled" desde cualquier otro estado dispara la reconciliación de stock.
type UpdateOrderRequest struct {
	Kind   string         `json:"kind"`
	Status string         `json:"status"`
	Notes  string         `json:"notes"`
	Items  []OrderItemDTO `json:"items"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID        int64          `json:"id"`
	Kind      string         `json:"kind"`
	Status    string         `json:"status"`
	Date      time.Time      `json:"date"`
	Notes     string         `json:"notes"`
	Items     []OrderItemDTO `json:"items"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// OrderListResponse lista de pedidos.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Total int             `json:"total"`
}
