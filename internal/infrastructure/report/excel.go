// Package report genera el libro Excel de inventario.
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Autoelectrica-api/internal/application/usecase"
	"github.com/jhoicas/Autoelectrica-api/internal/domain/entity"
	"github.com/jhoicas/Autoelectrica-api/internal/domain/stock"
)

var _ usecase.StockReportGenerator = (*ExcelStockReport)(nil)

const (
	sheetStock     = "Stock"
	sheetMovements = "Movimientos"
)

// ExcelStockReport genera un libro xlsx con dos hojas: el stock actual del
// catálogo y el historial de movimientos.
type ExcelStockReport struct{}

// NewExcelStockReport construye el generador.
func NewExcelStockReport() *ExcelStockReport {
	return &ExcelStockReport{}
}

// Generate arma el libro y lo devuelve serializado.
func (g *ExcelStockReport) Generate(products []*entity.Product, movements []*entity.Movement) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// La hoja por defecto pasa a ser la de stock.
	defaultSheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(defaultSheet, sheetStock); err != nil {
		return nil, fmt.Errorf("renombrar hoja: %w", err)
	}
	if _, err := f.NewSheet(sheetMovements); err != nil {
		return nil, fmt.Errorf("crear hoja: %w", err)
	}

	if err := g.writeStock(f, products); err != nil {
		return nil, err
	}
	if err := g.writeMovements(f, movements); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializar xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *ExcelStockReport) writeStock(f *excelize.File, products []*entity.Product) error {
	header := []interface{}{"ID", "Nombre", "Código", "Precio", "Stock", "Mínimo", "Bajo mínimo"}
	if err := f.SetSheetRow(sheetStock, "A1", &header); err != nil {
		return fmt.Errorf("cabecera stock: %w", err)
	}
	for i, p := range products {
		lowStock := ""
		if stock.IsLow(p) {
			lowStock = "sí"
		}
		row := []interface{}{
			p.ID, p.Name, p.Code, p.Price.StringFixed(2), p.StockQty, p.MinAlert, lowStock,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("celda stock: %w", err)
		}
		if err := f.SetSheetRow(sheetStock, cell, &row); err != nil {
			return fmt.Errorf("fila stock: %w", err)
		}
	}
	return nil
}

func (g *ExcelStockReport) writeMovements(f *excelize.File, movements []*entity.Movement) error {
	header := []interface{}{"ID", "Producto", "Dirección", "Cantidad", "Pedido", "Fecha", "Registrado por"}
	if err := f.SetSheetRow(sheetMovements, "A1", &header); err != nil {
		return fmt.Errorf("cabecera movimientos: %w", err)
	}
	for i, m := range movements {
		orderRef := ""
		if m.OrderID != nil {
			orderRef = fmt.Sprintf("%d", *m.OrderID)
		}
		row := []interface{}{
			m.ID, m.ProductID, m.Direction, m.Quantity, orderRef,
			m.Date.Format("2006-01-02 15:04"), m.CreatedBy,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("celda movimientos: %w", err)
		}
		if err := f.SetSheetRow(sheetMovements, cell, &row); err != nil {
			return fmt.Errorf("fila movimientos: %w", err)
		}
	}
	return nil
}
