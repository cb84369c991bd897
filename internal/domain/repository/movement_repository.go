package repository

import "github.com/jhoicas/Autoelectrica-api/internal/domain/entity"

// MovementRepository define el puerto de persistencia para el rastro de
// auditoría de stock. Solo hay creación y consulta: los movimientos nunca se
// actualizan ni se borran.
type MovementRepository interface {
	// Create persiste el movimiento y asigna el siguiente ID consecutivo.
	Create(movement *entity.Movement) error
	// List devuelve movimientos, opcionalmente filtrados por producto.
	List(productID *int64, limit, offset int) ([]*entity.Movement, error)
}
