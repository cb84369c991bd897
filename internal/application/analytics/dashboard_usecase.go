// Package analytics contiene los casos de uso read-only del dashboard y de
// las notificaciones de stock bajo.
package analytics

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jhoicas/Autoelectrica-api/internal/application/dto"
	"github.com/jhoicas/Autoelectrica-api/internal/domain/entity"
	"github.com/jhoicas/Autoelectrica-api/internal/domain/repository"
	"github.com/jhoicas/Autoelectrica-api/internal/domain/stock"
)

const (
	dashboardTopLowest    = 10 // productos de menor stock en el widget
	dashboardRecentOrders = 5  // pedidos recientes en el widget
	weeklyFlowDays        = 7
)

var weekdayLabels = map[time.Weekday]string{
	time.Monday:    "lunes",
	time.Tuesday:   "martes",
	time.Wednesday: "miércoles",
	time.Thursday:  "jueves",
	time.Friday:    "viernes",
	time.Saturday:  "sábado",
	time.Sunday:    "domingo",
}

// DashboardUseCase genera los KPIs de inventario para el dashboard de la
// tienda. Fuente de datos: AnalyticsRepository y OrderRepository (consultas
// read-only); los hechos de stock bajo los deriva el libro de stock.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	orderRepo     repository.OrderRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, orderRepo repository.OrderRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, orderRepo: orderRepo}
}

// GetKPIs construye el DashboardKPIsDTO.
//
// Cuatro llamadas en paralelo:
//  1. CountProducts + ListLowStock → totales, % bajo umbral, faltantes, alertas
//  2. ListLowestStock(10)          → TopLowestStock
//  3. ListRecent(5)                → RecentOrders
//  4. DailyFlow(últimos 7 días)    → WeeklyFlow
func (uc *DashboardUseCase) GetKPIs(ctx context.Context) (*dto.DashboardKPIsDTO, error) {
	type lowResult struct {
		total int
		low   []*entity.Product
		err   error
	}
	type lowestResult struct {
		products []*entity.Product
		err      error
	}
	type ordersResult struct {
		orders []*entity.Order
		err    error
	}
	type flowResult struct {
		flow []repository.DailyFlow
		err  error
	}

	lowCh := make(chan lowResult, 1)
	lowestCh := make(chan lowestResult, 1)
	ordersCh := make(chan ordersResult, 1)
	flowCh := make(chan flowResult, 1)

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -(weeklyFlowDays - 1))

	go func() {
		total, err := uc.analyticsRepo.CountProducts(ctx)
		if err != nil {
			lowCh <- lowResult{err: err}
			return
		}
		low, err := uc.analyticsRepo.ListLowStock(ctx)
		lowCh <- lowResult{total: total, low: low, err: err}
	}()
	go func() {
		products, err := uc.analyticsRepo.ListLowestStock(ctx, dashboardTopLowest)
		lowestCh <- lowestResult{products, err}
	}()
	go func() {
		orders, err := uc.orderRepo.ListRecent(dashboardRecentOrders)
		ordersCh <- ordersResult{orders, err}
	}()
	go func() {
		flow, err := uc.analyticsRepo.DailyFlow(ctx, from, now)
		flowCh <- flowResult{flow, err}
	}()

	low := <-lowCh
	lowest := <-lowestCh
	recent := <-ordersCh
	flow := <-flowCh

	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}
	if lowest.err != nil {
		return nil, fmt.Errorf("dashboard: menor stock: %w", lowest.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: pedidos recientes: %w", recent.err)
	}
	if flow.err != nil {
		return nil, fmt.Errorf("dashboard: flujo semanal: %w", flow.err)
	}

	out := &dto.DashboardKPIsDTO{
		TotalProducts: low.total,
		BelowMinimum:  len(low.low),
	}
	if low.total > 0 {
		pct := float64(len(low.low)) / float64(low.total) * 100
		out.PercBelowMinimum = math.Round(pct*10) / 10
	}
	for _, p := range low.low {
		out.MissingUnits += stock.Shortfall(p)
		out.Alerts = append(out.Alerts, toProductDTO(p))
	}
	for _, p := range lowest.products {
		out.TopLowestStock = append(out.TopLowestStock, toProductDTO(p))
	}
	for _, o := range recent.orders {
		out.RecentOrders = append(out.RecentOrders, toOrderDTO(o))
	}
	out.WeeklyFlow = buildWeeklyFlow(from, flow.flow)
	return out, nil
}

// ListAlerts devuelve los productos en o bajo su umbral de alerta
// (GET /api/notifications).
func (uc *DashboardUseCase) ListAlerts(ctx context.Context) (*dto.NotificationsResponse, error) {
	low, err := uc.analyticsRepo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.NotificationsResponse{Items: make([]dto.ProductResponse, 0, len(low))}
	for _, p := range low {
		out.Items = append(out.Items, toProductDTO(p))
	}
	out.Count = len(out.Items)
	return out, nil
}

// buildWeeklyFlow proyecta los agregados por día sobre una ventana continua
// de 7 días: los días sin movimientos aparecen en cero.
func buildWeeklyFlow(from time.Time, flow []repository.DailyFlow) dto.WeeklyFlowDTO {
	byDay := make(map[string]repository.DailyFlow, len(flow))
	for _, f := range flow {
		byDay[f.Day.Format("2006-01-02")] = f
	}
	out := dto.WeeklyFlowDTO{
		Labels: make([]string, 0, weeklyFlowDays),
		In:     make([]int, 0, weeklyFlowDays),
		Out:    make([]int, 0, weeklyFlowDays),
	}
	for i := 0; i < weeklyFlowDays; i++ {
		day := from.AddDate(0, 0, i)
		f := byDay[day.Format("2006-01-02")]
		out.Labels = append(out.Labels, weekdayLabels[day.Weekday()])
		out.In = append(out.In, f.In)
		out.Out = append(out.Out, f.Out)
	}
	return out
}

func toProductDTO(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Code:        p.Code,
		Description: p.Description,
		Price:       p.Price,
		StockQty:    p.StockQty,
		MinAlert:    p.MinAlert,
		LowStock:    stock.IsLow(p),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toOrderDTO(o *entity.Order) dto.OrderResponse {
	items := make([]dto.OrderItemDTO, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemDTO{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return dto.OrderResponse{
		ID:        o.ID,
		Kind:      o.Kind,
		Status:    o.Status,
		Date:      o.Date,
		Notes:     o.Notes,
		Items:     items,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
