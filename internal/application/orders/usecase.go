package orders

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Autoelectrica-api/internal/application/dto"
	"github.com/jhoicas/Autoelectrica-api/internal/domain"
	"github.com/jhoicas/Autoelectrica-api/internal/domain/entity"
	"github.com/jhoicas/Autoelectrica-api/internal/domain/repository"
	"github.com/jhoicas/Autoelectrica-api/internal/domain/stock"
	"github.com/jhoicas/Autoelectrica-api/pkg/logger"
)

// OrderUseCase CRUD de pedidos más el disparo de la reconciliación de stock
// en el flanco pendiente -> cumplido de un update.
type OrderUseCase struct {
	txRunner   TxRunner
	orderRepo  repository.OrderRepository
	reconciler *Reconciler
	notifier   Notifier // opcional; nil = sin alertas push
	log        *logger.Logger
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	txRunner TxRunner,
	orderRepo repository.OrderRepository,
	reconciler *Reconciler,
	notifier Notifier,
	log *logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:   txRunner,
		orderRepo:  orderRepo,
		reconciler: reconciler,
		notifier:   notifier,
		log:        log,
	}
}

// Create crea un pedido. Los pedidos nacen en estado pending; un status
// distinto en el request es entrada inválida. La creación nunca toca stock.
func (uc *OrderUseCase) Create(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.Status != "" && in.Status != entity.OrderStatusPending {
		return nil, domain.ErrInvalidInput
	}
	items, err := validateItems(in.Kind, in.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &entity.Order{
		Kind:      in.Kind,
		Status:    entity.OrderStatusPending,
		Date:      now,
		Notes:     in.Notes,
		Items:     items,
		CreatedAt: now,
		UpdatedAt: now,
	}
	// Cabecera y líneas en una sola transacción.
	err = uc.txRunner.Run(ctx, func(
		_ repository.ProductRepository,
		_ repository.MovementRepository,
		orderRepo repository.OrderRepository,
	) error {
		return orderRepo.Create(order)
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// GetByID obtiene un pedido por ID.
func (uc *OrderUseCase) GetByID(id int64) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return toOrderResponse(order), nil
}

// List lista pedidos con filtros opcionales por tipo y estado.
func (uc *OrderUseCase) List(kind, status string, page dto.PageRequest) (*dto.OrderListResponse, error) {
	if kind != "" && !entity.ValidKind(kind) {
		return nil, domain.ErrInvalidInput
	}
	if status != "" && !entity.ValidStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	list, err := uc.orderRepo.List(kind, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.OrderListResponse{Items: make([]dto.OrderResponse, 0, len(list))}
	for _, o := range list {
		out.Items = append(out.Items, *toOrderResponse(o))
	}
	out.Total = len(out.Items)
	return out, nil
}

// Update actualiza un pedido. Si el estado cruza el flanco hacia fulfilled,
// la reconciliación de stock y el update del pedido se confirman (o se
// revierten) como una sola transacción: un rechazo por stock insuficiente
// deja el pedido exactamente como estaba.
//
// Política de estados terminales: un pedido cancelled no admite más cambios
// de estado, y un pedido fulfilled solo puede pasar a cancelled (sin efecto
// sobre stock); reabrir a pending desharía la coherencia con el ledger.
func (uc *OrderUseCase) Update(ctx context.Context, id int64, actor string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	if !entity.ValidStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	items, err := validateItems(in.Kind, in.Items)
	if err != nil {
		return nil, err
	}

	prev, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if prev == nil {
		return nil, domain.ErrNotFound
	}

	if prev.Status == entity.OrderStatusCancelled && in.Status != entity.OrderStatusCancelled {
		return nil, domain.ErrConflict
	}
	if prev.Status == entity.OrderStatusFulfilled && in.Status == entity.OrderStatusPending {
		return nil, domain.ErrConflict
	}

	edge := StatusEdge{
		WasFulfilled:    prev.Status == entity.OrderStatusFulfilled,
		WillBeFulfilled: in.Status == entity.OrderStatusFulfilled,
	}

	now := time.Now()
	order := &entity.Order{
		ID:        id,
		Kind:      in.Kind,
		Status:    in.Status,
		Date:      prev.Date,
		Notes:     in.Notes,
		Items:     items,
		CreatedAt: prev.CreatedAt,
		UpdatedAt: now,
	}

	var result *Result
	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
		orderRepo repository.OrderRepository,
	) error {
		if edge.Triggered() {
			res, err := uc.reconciler.Apply(productRepo, movementRepo, order, actor, now)
			if err != nil {
				return err
			}
			result = res
		}
		return orderRepo.Update(order)
	})
	if err != nil {
		return nil, err
	}

	if result != nil {
		uc.pushLowStockAlerts(result.Products)
	}
	return toOrderResponse(order), nil
}

// Delete elimina un pedido. Los movimientos que lo referencian conservan su
// historial (la referencia queda en NULL).
func (uc *OrderUseCase) Delete(id int64) error {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	return uc.orderRepo.Delete(id)
}

// pushLowStockAlerts envía en segundo plano los productos que quedaron en o
// bajo su umbral tras la reconciliación. Nunca afecta la respuesta HTTP.
func (uc *OrderUseCase) pushLowStockAlerts(products []*entity.Product) {
	if uc.notifier == nil {
		return
	}
	var low []*entity.Product
	for _, p := range products {
		if stock.IsLow(p) {
			low = append(low, p)
		}
	}
	if len(low) == 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := uc.notifier.NotifyLowStock(ctx, low); err != nil {
			uc.log.Warn().Err(err).Msg("alerta de stock bajo no enviada")
		}
	}()
}

// validateItems valida tipo de pedido y líneas: cantidad y precio positivos.
func validateItems(kind string, in []dto.OrderItemDTO) ([]entity.OrderItem, error) {
	if !entity.ValidKind(kind) {
		return nil, domain.ErrInvalidInput
	}
	if len(in) == 0 {
		return nil, domain.ErrInvalidInput
	}
	items := make([]entity.OrderItem, 0, len(in))
	for _, it := range in {
		if it.ProductID <= 0 || it.Quantity <= 0 || !it.UnitPrice.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		items = append(items, entity.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return items, nil
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	items := make([]dto.OrderItemDTO, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemDTO{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return &dto.OrderResponse{
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
