package repository

import "github.com/jhoicas/Autoelectrica-api/internal/domain/entity"

// OrderRepository define el puerto de persistencia para Order y sus líneas.
type OrderRepository interface {
	// Create persiste el pedido y sus líneas; asigna el ID.
	Create(order *entity.Order) error
	// GetByID devuelve el pedido con sus líneas en orden de secuencia, o nil.
	GetByID(id int64) (*entity.Order, error)
	// Update reemplaza la cabecera y las líneas del pedido.
	Update(order *entity.Order) error
	// List filtra por kind y/o status (cadena vacía = sin filtro).
	List(kind, status string, limit, offset int) ([]*entity.Order, error)
	// ListRecent devuelve los pedidos más recientes por fecha.
	ListRecent(limit int) ([]*entity.Order, error)
	Delete(id int64) error
}
