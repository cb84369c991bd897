package dto

import "time"

// MovementResponse salida de un movimiento de stock (solo lectura).
type MovementResponse struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	Direction string    `json:"direction"` // in | out
	Quantity  int       `json:"quantity"`
	OrderID   *int64    `json:"order_id,omitempty"`
	Date      time.Time `json:"date"`
	CreatedBy string    `json:"created_by"`
}

// MovementListResponse lista de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Total int                `json:"total"`
}
