package usecase

import (
	"context"

	"github.com/jhoicas/Autoelectrica-api/internal/domain"
	"github.com/jhoicas/Autoelectrica-api/internal/domain/entity"
	"github.com/jhoicas/Autoelectrica-api/internal/domain/repository"
)

// Límite al volcar catálogo y movimientos en un reporte.
const reportExportLimit = 10000

// StockReportGenerator puerto para generar el libro Excel de stock.
type StockReportGenerator interface {
	Generate(products []*entity.Product, movements []*entity.Movement) ([]byte, error)
}

// OrderPDFGenerator puerto para generar el documento PDF de un pedido.
type OrderPDFGenerator interface {
	Generate(ctx context.Context, order *entity.Order, products map[int64]*entity.Product, shopName string) ([]byte, error)
}

// ReportUseCase genera el reporte Excel del inventario y el PDF de un pedido.
type ReportUseCase struct {
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
	orderRepo    repository.OrderRepository
	excel        StockReportGenerator
	pdf          OrderPDFGenerator
	shopName     string
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
	orderRepo repository.OrderRepository,
	excel StockReportGenerator,
	pdf OrderPDFGenerator,
	shopName string,
) *ReportUseCase {
	return &ReportUseCase{
		productRepo:  productRepo,
		movementRepo: movementRepo,
		orderRepo:    orderRepo,
		excel:        excel,
		pdf:          pdf,
		shopName:     shopName,
	}
}

// StockWorkbook genera el libro Excel con el stock actual y el historial de
// movimientos.
func (uc *ReportUseCase) StockWorkbook() ([]byte, error) {
	products, err := uc.productRepo.List("", reportExportLimit, 0)
	if err != nil {
		return nil, err
	}
	movements, err := uc.movementRepo.List(nil, reportExportLimit, 0)
	if err != nil {
		return nil, err
	}
	return uc.excel.Generate(products, movements)
}

// OrderPDF genera el documento imprimible de un pedido.
func (uc *ReportUseCase) OrderPDF(ctx context.Context, orderID int64) ([]byte, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	products := make(map[int64]*entity.Product, len(order.Items))
	for _, it := range order.Items {
		if _, ok := products[it.ProductID]; ok {
			continue
		}
		p, err := uc.productRepo.GetByID(it.ProductID)
		if err != nil {
			return nil, err
		}
		if p != nil {
			products[it.ProductID] = p
		}
	}
	return uc.pdf.Generate(ctx, order, products, uc.shopName)
}
