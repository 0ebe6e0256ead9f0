package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-restaurante/internal/domain"
	"github.com/jhoicas/pos-restaurante/internal/domain/entity"
	"github.com/jhoicas/pos-restaurante/internal/domain/repository"
)

var (
	_ repository.DiningTableRepository = (*DiningTableRepo)(nil)
	_ repository.OrderRepository       = (*OrderRepo)(nil)
	_ repository.ActivityLogRepository = (*ActivityLogRepo)(nil)
	_ repository.SalesRepository       = (*SalesRepo)(nil)
)

// DiningTableRepo mesas en memoria.
type DiningTableRepo struct{ s *Store }

// NewDiningTableRepository construye el repositorio.
func NewDiningTableRepository(s *Store) *DiningTableRepo { return &DiningTableRepo{s: s} }

func (r *DiningTableRepo) List(_ context.Context) ([]*entity.DiningTable, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.DiningTable, 0, len(r.s.tables))
	for _, t := range r.s.tables {
		c := t
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TableNumber < out[j].TableNumber })
	return out, nil
}

func (r *DiningTableRepo) GetByNumber(_ context.Context, number int) (*entity.DiningTable, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tables[number]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *DiningTableRepo) SetStatus(_ context.Context, number int, status string) (*entity.DiningTable, error) {
	if err := r.s.fault("table.set_status"); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tables[number]
	if !ok {
		return nil, nil
	}
	t.Status = status
	t.UpdatedAt = time.Now()
	r.s.tables[number] = t
	return &t, nil
}

func (r *DiningTableRepo) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.tables), nil
}

func (r *DiningTableRepo) SeedRange(_ context.Context, count int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now()
	for n := 1; n <= count; n++ {
		if _, ok := r.s.tables[n]; ok {
			continue
		}
		r.s.tables[n] = entity.DiningTable{ID: int64(n), TableNumber: n, Status: entity.TableStatusAvailable, UpdatedAt: now}
	}
	return nil
}

// OrderRepo órdenes en memoria.
type OrderRepo struct {
	s    *Store
	undo *undoLog
}

// NewOrderRepository construye el repositorio.
func NewOrderRepository(s *Store) *OrderRepo { return &OrderRepo{s: s} }

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	if err := r.s.fault("order.create"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o.ID = r.s.nextID()
	now := time.Now()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now
	r.s.orders[o.ID] = cloneOrder(*o)
	id := o.ID
	r.undo.add(func() { delete(r.s.orders, id) })
	return nil
}

func (r *OrderRepo) GetByID(_ context.Context, id int64) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	out := cloneOrder(o)
	return &out, nil
}

func (r *OrderRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *OrderRepo) Update(_ context.Context, o *entity.Order) error {
	if err := r.s.fault("order.update"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.orders[o.ID]
	if !ok {
		return domain.ErrNotFound
	}
	prev := cloneOrder(cur)
	r.undo.add(func() { r.s.orders[o.ID] = prev })
	cur.Items = append([]entity.OrderItem(nil), o.Items...)
	cur.Total = o.Total
	cur.Notes = o.Notes
	cur.OrderType = o.OrderType
	cur.TableNumber = o.TableNumber
	cur.UpdatedAt = time.Now()
	r.s.orders[o.ID] = cur
	o.UpdatedAt = cur.UpdatedAt
	return nil
}

func (r *OrderRepo) UpdateStatus(_ context.Context, id int64, status, voidReason string) error {
	if err := r.s.fault("order.update_status"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	prev := cur
	r.undo.add(func() { r.s.orders[id] = prev })
	cur.Status = status
	if voidReason != "" {
		cur.VoidReason = voidReason
	}
	cur.UpdatedAt = time.Now()
	r.s.orders[id] = cur
	return nil
}

func (r *OrderRepo) List(_ context.Context, f repository.OrderFilter) ([]*entity.Order, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Order, 0)
	for _, o := range r.s.orders {
		if f.Status == "" || o.Status == f.Status {
			c := cloneOrder(o)
			out = append(out, &c)
		}
	}
	// Más recientes primero
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	total := len(out)
	return paginate(out, f.Limit, f.Offset), total, nil
}

func (r *OrderRepo) CountItemReferences(_ context.Context, itemID int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, o := range r.s.orders {
		for _, it := range o.Items {
			if it.ItemID != nil && *it.ItemID == itemID {
				n++
				break
			}
		}
	}
	return n, nil
}

func cloneOrder(o entity.Order) entity.Order {
	o.Items = append([]entity.OrderItem(nil), o.Items...)
	if o.TableNumber != nil {
		n := *o.TableNumber
		o.TableNumber = &n
	}
	return o
}

// ActivityLogRepo auditoría en memoria.
type ActivityLogRepo struct{ s *Store }

// NewActivityLogRepository construye el repositorio.
func NewActivityLogRepository(s *Store) *ActivityLogRepo { return &ActivityLogRepo{s: s} }

func (r *ActivityLogRepo) Create(_ context.Context, l *entity.ActivityLog) error {
	if err := r.s.fault("activity.create"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l.ID = r.s.nextID()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	r.s.logs = append(r.s.logs, *l)
	return nil
}

// SalesRepo reportes de ventas calculados sobre las órdenes en memoria.
type SalesRepo struct{ s *Store }

// NewSalesRepository construye el repositorio.
func NewSalesRepository(s *Store) *SalesRepo { return &SalesRepo{s: s} }

func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

func (r *SalesRepo) GetRevenue(_ context.Context, start, end time.Time) (decimal.Decimal, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total := decimal.Zero
	n := 0
	for _, o := range r.s.orders {
		if o.Status == entity.OrderStatusCompleted && inRange(o.CreatedAt, start, end) {
			total = total.Add(o.Total)
			n++
		}
	}
	return total, n, nil
}

func (r *SalesRepo) CountByStatus(_ context.Context, start, end time.Time) (map[string]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[string]int)
	for _, o := range r.s.orders {
		if inRange(o.CreatedAt, start, end) {
			out[o.Status]++
		}
	}
	return out, nil
}

func (r *SalesRepo) GetTopItems(_ context.Context, start, end time.Time, limit int) ([]repository.TopItemResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	byName := make(map[string]*repository.TopItemResult)
	for _, o := range r.s.orders {
		if o.Status != entity.OrderStatusCompleted || !inRange(o.CreatedAt, start, end) {
			continue
		}
		for _, it := range o.Items {
			agg, ok := byName[it.Name]
			if !ok {
				agg = &repository.TopItemResult{ItemID: it.ItemID, Name: it.Name, Revenue: decimal.Zero}
				byName[it.Name] = agg
			}
			agg.Quantity += it.Quantity
			agg.Revenue = agg.Revenue.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
	}
	out := make([]repository.TopItemResult, 0, len(byName))
	for _, v := range byName {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
