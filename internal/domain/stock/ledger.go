// Package stock contiene el libro de stock: hechos de solo lectura derivados
// del estado de un producto (servicio de dominio puro, sin efectos).
package stock

import "github.com/jhoicas/Autoelectrica-api/internal/domain/entity"

// IsLow indica si el producto está en o por debajo de su umbral de alerta.
func IsLow(p *entity.Product) bool {
	return p.StockQty <= p.MinAlert
}

// Shortfall devuelve las unidades que faltan para alcanzar el umbral de
// alerta: max(0, MinAlert - StockQty). Se usa para el agregado de
// "piezas en falta" del dashboard.
func Shortfall(p *entity.Product) int {
	if d := p.MinAlert - p.StockQty; d > 0 {
		return d
	}
	return 0
}
