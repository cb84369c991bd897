package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Autoelectrica-api/internal/application/dto"
	apporders "github.com/jhoicas/Autoelectrica-api/internal/application/orders"
	"github.com/jhoicas/Autoelectrica-api/internal/domain"
	"github.com/jhoicas/Autoelectrica-api/internal/domain/entity"
	"github.com/jhoicas/Autoelectrica-api/internal/domain/repository"
	apphttp "github.com/jhoicas/Autoelectrica-api/internal/interfaces/http"
	"github.com/jhoicas/Autoelectrica-api/pkg/logger"
)

// Repos en memoria, suficientes para recorrer el flujo handler -> caso de
// uso -> reconciliador sin base de datos.

type memProducts struct {
	byID map[int64]*entity.Product
}

func (r *memProducts) Create(p *entity.Product) error { return nil }
func (r *memProducts) GetByID(id int64) (*entity.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (r *memProducts) GetByCode(string) (*entity.Product, error)      { return nil, nil }
func (r *memProducts) GetForUpdate(id int64) (*entity.Product, error) { return r.GetByID(id) }
func (r *memProducts) Update(*entity.Product) error                   { return nil }
func (r *memProducts) UpdateStock(productID int64, qty int) error {
	p, ok := r.byID[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockQty = qty
	return nil
}
func (r *memProducts) List(string, int, int) ([]*entity.Product, error) { return nil, nil }
func (r *memProducts) Delete(int64) error                               { return nil }

type memMovements struct {
	rows []*entity.Movement
}

func (r *memMovements) Create(m *entity.Movement) error {
	m.ID = int64(len(r.rows) + 1)
	r.rows = append(r.rows, m)
	return nil
}
func (r *memMovements) List(*int64, int, int) ([]*entity.Movement, error) { return r.rows, nil }

type memOrders struct {
	byID map[int64]*entity.Order
}

func (r *memOrders) Create(o *entity.Order) error {
	o.ID = int64(len(r.byID) + 1)
	r.byID[o.ID] = o
	return nil
}
func (r *memOrders) GetByID(id int64) (*entity.Order, error) {
	o, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}
func (r *memOrders) Update(o *entity.Order) error {
	r.byID[o.ID] = o
	return nil
}
func (r *memOrders) List(string, string, int, int) ([]*entity.Order, error) { return nil, nil }
func (r *memOrders) ListRecent(int) ([]*entity.Order, error)                { return nil, nil }
func (r *memOrders) Delete(id int64) error {
	delete(r.byID, id)
	return nil
}

// passthroughTx ejecuta el callback directamente con los repos en memoria;
// no hay rollback real, los tests de atomicidad viven junto al reconciliador.
type passthroughTx struct {
	products  *memProducts
	movements *memMovements
	orders    *memOrders
}

func (t *passthroughTx) Run(_ context.Context, fn func(
	repository.ProductRepository,
	repository.MovementRepository,
	repository.OrderRepository,
) error) error {
	return fn(t.products, t.movements, t.orders)
}

func buildOrderApp(t *testing.T) (*fiber.App, *memProducts, *memOrders) {
	t.Helper()

	products := &memProducts{byID: map[int64]*entity.Product{
		1: {ID: 1, Name: "Farol H7", Code: "FAR-007", Price: decimal.NewFromInt(30000), StockQty: 1, MinAlert: 0},
	}}
	movements := &memMovements{}
	ordersRepo := &memOrders{byID: map[int64]*entity.Order{
		5: {ID: 5, Kind: entity.OrderKindSale, Status: entity.OrderStatusPending, Items: []entity.OrderItem{
			{ProductID: 1, Quantity: 3, UnitPrice: decimal.NewFromInt(30000)},
		}},
		6: {ID: 6, Kind: entity.OrderKindSale, Status: entity.OrderStatusCancelled, Items: []entity.OrderItem{
			{ProductID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(30000)},
		}},
	}}

	log := logger.New(logger.Config{Level: "error"})
	uc := apporders.NewOrderUseCase(
		&passthroughTx{products, movements, ordersRepo},
		ordersRepo,
		apporders.NewReconciler(log),
		nil,
		log,
	)

	app := fiber.New()
	handler := apphttp.NewOrderHandler(uc)
	app.Put("/api/orders/:id", handler.Update)
	return app, products, ordersRepo
}

func putOrder(t *testing.T, app *fiber.App, id int64, body dto.UpdateOrderRequest) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/orders/%d", id), bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func saleUpdate(status string, qty int) dto.UpdateOrderRequest {
	return dto.UpdateOrderRequest{
		Kind:   entity.OrderKindSale,
		Status: status,
		Items: []dto.OrderItemDTO{
			{ProductID: 1, Quantity: qty, UnitPrice: decimal.NewFromInt(30000)},
		},
	}
}

func TestOrderUpdate_StockInsuficiente_Retorna400(t *testing.T) {
	app, products, _ := buildOrderApp(t)

	// Venta de 3 unidades con stock 1.
	resp := putOrder(t, app, 5, saleUpdate(entity.OrderStatusFulfilled, 3))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	assert.Contains(t, body.Message, "Farol H7")
	assert.Contains(t, body.Message, "disponible 1")

	p, _ := products.GetByID(1)
	assert.Equal(t, 1, p.StockQty, "el stock no debe cambiar tras un rechazo")
}

func TestOrderUpdate_Despacho_Retorna200(t *testing.T) {
	app, products, ordersRepo := buildOrderApp(t)

	resp := putOrder(t, app, 5, saleUpdate(entity.OrderStatusFulfilled, 1))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	p, _ := products.GetByID(1)
	assert.Equal(t, 0, p.StockQty)
	o, _ := ordersRepo.GetByID(5)
	assert.Equal(t, entity.OrderStatusFulfilled, o.Status)
}

func TestOrderUpdate_PedidoInexistente_Retorna404(t *testing.T) {
	app, _, _ := buildOrderApp(t)

	resp := putOrder(t, app, 999, saleUpdate(entity.OrderStatusPending, 1))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOrderUpdate_SalirDeCancelado_Retorna409(t *testing.T) {
	app, _, _ := buildOrderApp(t)

	resp := putOrder(t, app, 6, saleUpdate(entity.OrderStatusFulfilled, 1))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "CONFLICT", body.Code)
}

func TestOrderUpdate_IDNoNumerico_Retorna400(t *testing.T) {
	app, _, _ := buildOrderApp(t)

	req := httptest.NewRequest(http.MethodPut, "/api/orders/abc", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
