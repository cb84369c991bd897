package orders_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Autoelectrica-api/internal/application/dto"
	"github.com/jhoicas/Autoelectrica-api/internal/application/orders"
	"github.com/jhoicas/Autoelectrica-api/internal/domain"
	"github.com/jhoicas/Autoelectrica-api/internal/domain/entity"
)

type fixture struct {
	products  *fakeProductRepo
	movements *fakeMovementRepo
	orders    *fakeOrderRepo
	notifier  *fakeNotifier
	uc        *orders.OrderUseCase
}

func newFixture(products []*entity.Product, existing ...*entity.Order) *fixture {
	f := &fixture{
		products:  newFakeProductRepo(products...),
		movements: &fakeMovementRepo{},
		orders:    newFakeOrderRepo(existing...),
		notifier:  newFakeNotifier(),
	}
	tx := &fakeTxRunner{products: f.products, movements: f.movements, orders: f.orders}
	f.uc = orders.NewOrderUseCase(tx, f.orders, orders.NewReconciler(testLogger()), f.notifier, testLogger())
	return f
}

func itemDTO(productID int64, qty int) dto.OrderItemDTO {
	return dto.OrderItemDTO{ProductID: productID, Quantity: qty, UnitPrice: decimal.NewFromInt(55)}
}

func pendingOrder(id int64, kind string, items ...entity.OrderItem) *entity.Order {
	return &entity.Order{
		ID:     id,
		Kind:   kind,
		Status: entity.OrderStatusPending,
		Date:   time.Now(),
		Items:  items,
	}
}

func TestCreate_NaceEnPendiente(t *testing.T) {
	f := newFixture([]*entity.Product{product(1, "Farol H7", 5, 2)})

	resp, err := f.uc.Create(context.Background(), dto.CreateOrderRequest{
		Kind:  entity.OrderKindSale,
		Items: []dto.OrderItemDTO{itemDTO(1, 2)},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, resp.Status)
	assert.NotZero(t, resp.ID)

	// La creación jamás toca stock ni genera movimientos.
	assert.Equal(t, 5, f.products.stockOf(1))
	assert.Empty(t, f.movements.movements)
}

func TestCreate_RechazaEstadoDistintoDePendiente(t *testing.T) {
	f := newFixture([]*entity.Product{product(1, "Farol H7", 5, 2)})

	_, err := f.uc.Create(context.Background(), dto.CreateOrderRequest{
		Kind:   entity.OrderKindSale,
		Status: entity.OrderStatusFulfilled,
		Items:  []dto.OrderItemDTO{itemDTO(1, 2)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_ValidaLineas(t *testing.T) {
	f := newFixture([]*entity.Product{product(1, "Farol H7", 5, 2)})

	cases := []struct {
		name string
		req  dto.CreateOrderRequest
	}{
		{"tipo desconocido", dto.CreateOrderRequest{Kind: "trade", Items: []dto.OrderItemDTO{itemDTO(1, 1)}}},
		{"sin líneas", dto.CreateOrderRequest{Kind: entity.OrderKindSale}},
		{"cantidad cero", dto.CreateOrderRequest{Kind: entity.OrderKindSale, Items: []dto.OrderItemDTO{{ProductID: 1, Quantity: 0, UnitPrice: decimal.NewFromInt(10)}}}},
		{"precio cero", dto.CreateOrderRequest{Kind: entity.OrderKindSale, Items: []dto.OrderItemDTO{{ProductID: 1, Quantity: 1}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Create(context.Background(), tc.req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// Flanco pendiente -> cumplido: reconcilia y persiste pedido, stock y
// movimientos como una unidad.
func TestUpdate_FlancoACumplidoReconcilia(t *testing.T) {
	f := newFixture(
		[]*entity.Product{product(1, "Alternador", 5, 2)},
		pendingOrder(1, entity.OrderKindPurchase, item(1, 5)),
	)

	resp, err := f.uc.Update(context.Background(), 1, "admin", dto.UpdateOrderRequest{
		Kind:   entity.OrderKindPurchase,
		Status: entity.OrderStatusFulfilled,
		Items:  []dto.OrderItemDTO{itemDTO(1, 5)},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusFulfilled, resp.Status)
	assert.Equal(t, 10, f.products.stockOf(1))
	require.Len(t, f.movements.movements, 1)
	assert.Equal(t, entity.MovementIn, f.movements.movements[0].Direction)

	stored, _ := f.orders.GetByID(1)
	assert.Equal(t, entity.OrderStatusFulfilled, stored.Status)
}

// Reenviar un pedido ya cumplido no genera movimientos ni mutaciones.
func TestUpdate_ReenvioDeCumplidoNoReconcilia(t *testing.T) {
	fulfilled := pendingOrder(1, entity.OrderKindPurchase, item(1, 5))
	fulfilled.Status = entity.OrderStatusFulfilled
	f := newFixture([]*entity.Product{product(1, "Alternador", 10, 2)}, fulfilled)

	resp, err := f.uc.Update(context.Background(), 1, "admin", dto.UpdateOrderRequest{
		Kind:   entity.OrderKindPurchase,
		Status: entity.OrderStatusFulfilled,
		Notes:  "nota editada",
		Items:  []dto.OrderItemDTO{itemDTO(1, 5)},
	})
	require.NoError(t, err)
	assert.Equal(t, "nota editada", resp.Notes)
	assert.Equal(t, 10, f.products.stockOf(1), "sin mutaciones de stock")
	assert.Empty(t, f.movements.movements, "cero movimientos nuevos")
}

// Rechazo por stock insuficiente: el update del pedido también se revierte y
// el estado queda como estaba.
func TestUpdate_SinStockRechazaPedidoCompleto(t *testing.T) {
	f := newFixture(
		[]*entity.Product{product(2, "Farol H7", 1, 3)},
		pendingOrder(1, entity.OrderKindSale, item(2, 2)),
	)

	_, err := f.uc.Update(context.Background(), 1, "admin", dto.UpdateOrderRequest{
		Kind:   entity.OrderKindSale,
		Status: entity.OrderStatusFulfilled,
		Items:  []dto.OrderItemDTO{itemDTO(2, 2)},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 1, f.products.stockOf(2))
	assert.Empty(t, f.movements.movements)
	stored, _ := f.orders.GetByID(1)
	assert.Equal(t, entity.OrderStatusPending, stored.Status, "el pedido no cambia de estado")
}

func TestUpdate_PendienteACanceladoSinEfecto(t *testing.T) {
	f := newFixture(
		[]*entity.Product{product(1, "Bateria", 4, 1)},
		pendingOrder(1, entity.OrderKindSale, item(1, 2)),
	)

	resp, err := f.uc.Update(context.Background(), 1, "admin", dto.UpdateOrderRequest{
		Kind:   entity.OrderKindSale,
		Status: entity.OrderStatusCancelled,
		Items:  []dto.OrderItemDTO{itemDTO(1, 2)},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, resp.Status)
	assert.Equal(t, 4, f.products.stockOf(1))
	assert.Empty(t, f.movements.movements)
}

func TestUpdate_EstadosTerminales(t *testing.T) {
	fulfilled := pendingOrder(1, entity.OrderKindPurchase, item(1, 1))
	fulfilled.Status = entity.OrderStatusFulfilled
	cancelled := pendingOrder(2, entity.OrderKindSale, item(1, 1))
	cancelled.Status = entity.OrderStatusCancelled

	f := newFixture([]*entity.Product{product(1, "Bateria", 4, 1)}, fulfilled, cancelled)

	// fulfilled -> cancelled: permitido, sin efecto sobre stock.
	resp, err := f.uc.Update(context.Background(), 1, "admin", dto.UpdateOrderRequest{
		Kind:   entity.OrderKindPurchase,
		Status: entity.OrderStatusCancelled,
		Items:  []dto.OrderItemDTO{itemDTO(1, 1)},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, resp.Status)
	assert.Equal(t, 4, f.products.stockOf(1))
	assert.Empty(t, f.movements.movements)

	// fulfilled -> pending: reabrir queda prohibido.
	fulfilled2 := pendingOrder(3, entity.OrderKindPurchase, item(1, 1))
	fulfilled2.Status = entity.OrderStatusFulfilled
	require.NoError(t, f.orders.Update(fulfilled2))
	_, err = f.uc.Update(context.Background(), 3, "admin", dto.UpdateOrderRequest{
		Kind:   entity.OrderKindPurchase,
		Status: entity.OrderStatusPending,
		Items:  []dto.OrderItemDTO{itemDTO(1, 1)},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// cancelled -> fulfilled: los cancelados no reviven.
	_, err = f.uc.Update(context.Background(), 2, "admin", dto.UpdateOrderRequest{
		Kind:   entity.OrderKindSale,
		Status: entity.OrderStatusFulfilled,
		Items:  []dto.OrderItemDTO{itemDTO(1, 1)},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdate_PedidoInexistente(t *testing.T) {
	f := newFixture([]*entity.Product{product(1, "Bateria", 4, 1)})
	_, err := f.uc.Update(context.Background(), 42, "admin", dto.UpdateOrderRequest{
		Kind:   entity.OrderKindSale,
		Status: entity.OrderStatusPending,
		Items:  []dto.OrderItemDTO{itemDTO(1, 1)},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Una venta que deja el producto en o bajo su umbral dispara la alerta push.
func TestUpdate_DisparaAlertaDeStockBajo(t *testing.T) {
	f := newFixture(
		[]*entity.Product{product(1, "Farol H7", 4, 3)},
		pendingOrder(1, entity.OrderKindSale, item(1, 2)),
	)

	_, err := f.uc.Update(context.Background(), 1, "admin", dto.UpdateOrderRequest{
		Kind:   entity.OrderKindSale,
		Status: entity.OrderStatusFulfilled,
		Items:  []dto.OrderItemDTO{itemDTO(1, 2)},
	})
	require.NoError(t, err)

	select {
	case low := <-f.notifier.ch:
		require.Len(t, low, 1)
		assert.Equal(t, int64(1), low[0].ID)
		assert.Equal(t, 2, low[0].StockQty)
	case <-time.After(2 * time.Second):
		t.Fatal("se esperaba una alerta de stock bajo")
	}
}

func TestDelete(t *testing.T) {
	f := newFixture(nil, pendingOrder(1, entity.OrderKindSale, item(1, 1)))

	require.NoError(t, f.uc.Delete(1))
	assert.ErrorIs(t, f.uc.Delete(1), domain.ErrNotFound)
}
