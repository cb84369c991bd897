package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Autoelectrica-api/internal/domain/entity"
)

// DailyFlow totales de entradas y salidas de un día.
type DailyFlow struct {
	Day time.Time
	In  int
	Out int
}

// AnalyticsRepository consultas read-only para el dashboard.
type AnalyticsRepository interface {
	CountProducts(ctx context.Context) (int, error)
	// ListLowStock devuelve los productos en o por debajo de su umbral de alerta.
	ListLowStock(ctx context.Context) ([]*entity.Product, error)
	// ListLowestStock devuelve los productos con menor stock, ascendente.
	ListLowestStock(ctx context.Context, limit int) ([]*entity.Product, error)
	// DailyFlow agrega los movimientos por día en el rango [from, to].
	DailyFlow(ctx context.Context, from, to time.Time) ([]DailyFlow, error)
}
