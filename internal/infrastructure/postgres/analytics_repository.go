package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Autoelectrica-api/internal/domain/entity"
	"github.com/jhoicas/Autoelectrica-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas read-only para el dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica sobre el pool.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// CountProducts cuenta los productos del catálogo.
func (r *AnalyticsRepo) CountProducts(ctx context.Context) (int, error) {
	var count int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

// ListLowStock devuelve los productos en o por debajo de su umbral de alerta,
// los más faltantes primero.
func (r *AnalyticsRepo) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE stock_qty <= min_alert
		ORDER BY (min_alert - stock_qty) DESC, name`
	return r.queryProducts(ctx, query)
}

// ListLowestStock devuelve los productos con menor stock, ascendente.
func (r *AnalyticsRepo) ListLowestStock(ctx context.Context, limit int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY stock_qty ASC, name
		LIMIT $1`
	return r.queryProducts(ctx, query, limit)
}

// DailyFlow agrega entradas y salidas por día calendario en el rango [from, to].
func (r *AnalyticsRepo) DailyFlow(ctx context.Context, from, to time.Time) ([]repository.DailyFlow, error) {
	query := `
		SELECT date_trunc('day', date) AS day,
		       COALESCE(SUM(quantity) FILTER (WHERE direction = 'in'), 0) AS inflow,
		       COALESCE(SUM(quantity) FILTER (WHERE direction = 'out'), 0) AS outflow
		FROM movements
		WHERE date >= $1 AND date <= $2
		GROUP BY day
		ORDER BY day`
	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("daily flow: %w", err)
	}
	defer rows.Close()

	var flow []repository.DailyFlow
	for rows.Next() {
		var f repository.DailyFlow
		if err := rows.Scan(&f.Day, &f.In, &f.Out); err != nil {
			return nil, fmt.Errorf("scan daily flow: %w", err)
		}
		flow = append(flow, f)
	}
	return flow, rows.Err()
}

func (r *AnalyticsRepo) queryProducts(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}
