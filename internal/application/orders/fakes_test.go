package orders_test

import (
	"context"
	"sort"

	"github.com/jhoicas/Autoelectrica-api/internal/domain/entity"
	"github.com/jhoicas/Autoelectrica-api/internal/domain/repository"
)

// Fakes en memoria para los tests del reconciliador y del caso de uso de
// pedidos. El fakeTxRunner emula la semántica transaccional: toma un
// snapshot del estado y lo restaura si el callback falla.

type fakeProductRepo struct {
	seq      int64
	products map[int64]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[int64]*entity.Product)}
	for _, p := range products {
		if p.ID > r.seq {
			r.seq = p.ID
		}
		cp := *p
		r.products[p.ID] = &cp
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.seq++
	p.ID = r.seq
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id int64) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByCode(code string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetForUpdate(id int64) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateStock(productID int64, qty int) error {
	if p, ok := r.products[productID]; ok {
		p.StockQty = qty
	}
	return nil
}

func (r *fakeProductRepo) List(string, int, int) ([]*entity.Product, error) {
	var ids []int64
	for id := range r.products {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var out []*entity.Product
	for _, id := range ids {
		cp := *r.products[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProductRepo) Delete(id int64) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) snapshot() map[int64]*entity.Product {
	snap := make(map[int64]*entity.Product, len(r.products))
	for id, p := range r.products {
		cp := *p
		snap[id] = &cp
	}
	return snap
}

// stockOf consulta directa para asserts.
func (r *fakeProductRepo) stockOf(id int64) int {
	return r.products[id].StockQty
}

type fakeMovementRepo struct {
	seq       int64
	movements []*entity.Movement
}

func (r *fakeMovementRepo) Create(m *entity.Movement) error {
	r.seq++
	m.ID = r.seq
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) List(productID *int64, limit, offset int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.movements {
		if productID != nil && m.ProductID != *productID {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

type fakeOrderRepo struct {
	seq    int64
	orders map[int64]*entity.Order
}

func newFakeOrderRepo(orders ...*entity.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: make(map[int64]*entity.Order)}
	for _, o := range orders {
		if o.ID > r.seq {
			r.seq = o.ID
		}
		cp := *o
		cp.Items = append([]entity.OrderItem(nil), o.Items...)
		r.orders[o.ID] = &cp
	}
	return r
}

func (r *fakeOrderRepo) Create(o *entity.Order) error {
	r.seq++
	o.ID = r.seq
	cp := *o
	cp.Items = append([]entity.OrderItem(nil), o.Items...)
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetByID(id int64) (*entity.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	cp.Items = append([]entity.OrderItem(nil), o.Items...)
	return &cp, nil
}

func (r *fakeOrderRepo) Update(o *entity.Order) error {
	cp := *o
	cp.Items = append([]entity.OrderItem(nil), o.Items...)
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) List(kind, status string, limit, offset int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.orders {
		if kind != "" && o.Kind != kind {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeOrderRepo) ListRecent(limit int) ([]*entity.Order, error) {
	return r.List("", "", limit, 0)
}

func (r *fakeOrderRepo) Delete(id int64) error {
	delete(r.orders, id)
	return nil
}

func (r *fakeOrderRepo) snapshot() map[int64]*entity.Order {
	snap := make(map[int64]*entity.Order, len(r.orders))
	for id, o := range r.orders {
		cp := *o
		cp.Items = append([]entity.OrderItem(nil), o.Items...)
		snap[id] = &cp
	}
	return snap
}

// fakeTxRunner aplica el callback sobre los fakes y restaura el snapshot si
// falla, igual que el rollback de una transacción real.
type fakeTxRunner struct {
	products  *fakeProductRepo
	movements *fakeMovementRepo
	orders    *fakeOrderRepo
}

func (t *fakeTxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
	orderRepo repository.OrderRepository,
) error) error {
	prodSnap := t.products.snapshot()
	movSnap := append([]*entity.Movement(nil), t.movements.movements...)
	movSeq := t.movements.seq
	orderSnap := t.orders.snapshot()
	orderSeq := t.orders.seq

	if err := fn(t.products, t.movements, t.orders); err != nil {
		t.products.products = prodSnap
		t.movements.movements = movSnap
		t.movements.seq = movSeq
		t.orders.orders = orderSnap
		t.orders.seq = orderSeq
		return err
	}
	return nil
}

// fakeNotifier captura las alertas enviadas.
type fakeNotifier struct {
	ch chan []*entity.Product
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{ch: make(chan []*entity.Product, 1)}
}

func (n *fakeNotifier) NotifyLowStock(_ context.Context, products []*entity.Product) error {
	n.ch <- products
	return nil
}
