package repository

import "github.com/jhoicas/Autoelectrica-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetForUpdate y UpdateStock existen para el reconciliador: bloquean la fila
// y actualizan solo la cantidad dentro de la transacción en curso.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id int64) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE).
	GetForUpdate(id int64) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStock actualiza solo la cantidad en stock (uso exclusivo del reconciliador).
	UpdateStock(productID int64, qty int) error
	// List busca por nombre o código (término ya normalizado) con paginación.
	List(search string, limit, offset int) ([]*entity.Product, error)
	Delete(id int64) error
}
