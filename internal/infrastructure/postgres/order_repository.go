package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Autoelectrica-api/internal/domain"
	"github.com/jhoicas/Autoelectrica-api/internal/domain/entity"
	"github.com/jhoicas/Autoelectrica-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL (usable con pool o tx).
// Las líneas se guardan en order_items con su posición, que preserva el orden
// de secuencia del pedido.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de persistencia para pedidos. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la cabecera y las líneas del pedido; asigna el ID.
func (r *OrderRepo) Create(order *entity.Order) error {
	query := `
		INSERT INTO orders (kind, status, date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		order.Kind, order.Status, order.Date, order.Notes, order.CreatedAt, order.UpdatedAt,
	).Scan(&order.ID)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return r.insertItems(order)
}

// GetByID devuelve el pedido con sus líneas en orden de secuencia, o nil.
func (r *OrderRepo) GetByID(id int64) (*entity.Order, error) {
	query := `
		SELECT id, kind, status, date, notes, created_at, updated_at
		FROM orders WHERE id = $1`
	var o entity.Order
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.Kind, &o.Status, &o.Date, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	items, err := r.loadItems([]int64{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return &o, nil
}

// Update reemplaza la cabecera y las líneas del pedido (borra y reinserta).
func (r *OrderRepo) Update(order *entity.Order) error {
	query := `
		UPDATE orders SET kind = $2, status = $3, date = $4, notes = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		order.ID, order.Kind, order.Status, order.Date, order.Notes, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(context.Background(), `DELETE FROM order_items WHERE order_id = $1`, order.ID); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	return r.insertItems(order)
}

// List filtra por kind y/o status (cadena vacía = sin filtro), más recientes primero.
func (r *OrderRepo) List(kind, status string, limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT id, kind, status, date, notes, created_at, updated_at
		FROM orders
		WHERE ($1 = '' OR kind = $1) AND ($2 = '' OR status = $2)
		ORDER BY date DESC, id DESC
		LIMIT $3 OFFSET $4`
	return r.queryOrders(query, kind, status, limit, offset)
}

// ListRecent devuelve los pedidos más recientes por fecha.
func (r *OrderRepo) ListRecent(limit int) ([]*entity.Order, error) {
	query := `
		SELECT id, kind, status, date, notes, created_at, updated_at
		FROM orders
		ORDER BY date DESC, id DESC
		LIMIT $1`
	return r.queryOrders(query, limit)
}

// Delete elimina el pedido y sus líneas. Los movimientos ya registrados
// conservan su fila con order_id en NULL (ON DELETE SET NULL).
func (r *OrderRepo) Delete(id int64) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OrderRepo) insertItems(order *entity.Order) error {
	query := `
		INSERT INTO order_items (order_id, position, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)`
	for i, item := range order.Items {
		_, err := r.q.Exec(context.Background(), query,
			order.ID, i, item.ProductID, item.Quantity, item.UnitPrice,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

func (r *OrderRepo) queryOrders(query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.Order
	var ids []int64
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.Kind, &o.Status, &o.Date, &o.Notes, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, &o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}
	items, err := r.loadItems(ids)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		o.Items = items[o.ID]
	}
	return orders, nil
}

// loadItems carga las líneas de varios pedidos en una sola consulta.
func (r *OrderRepo) loadItems(orderIDs []int64) (map[int64][]entity.OrderItem, error) {
	query := `
		SELECT order_id, product_id, quantity, unit_price
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, position`
	rows, err := r.q.Query(context.Background(), query, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	items := make(map[int64][]entity.OrderItem, len(orderIDs))
	for rows.Next() {
		var orderID int64
		var it entity.OrderItem
		if err := rows.Scan(&orderID, &it.ProductID, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items[orderID] = append(items[orderID], it)
	}
	return items, rows.Err()
}
