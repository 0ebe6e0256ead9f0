package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/jhoicas/pos-restaurante/internal/domain"
	"github.com/jhoicas/pos-restaurante/internal/domain/entity"
	domaininv "github.com/jhoicas/pos-restaurante/internal/domain/inventory"
	"github.com/jhoicas/pos-restaurante/internal/domain/repository"
)

var (
	_ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)
	_ repository.StockBatchRepository    = (*StockBatchRepo)(nil)
	_ repository.StockMovementRepository = (*StockMovementRepo)(nil)
)

func fold(s string) string { return cases.Fold().String(s) }

// InventoryItemRepo artículos en memoria.
type InventoryItemRepo struct{ s *Store }

// NewInventoryItemRepository construye el repositorio.
func NewInventoryItemRepository(s *Store) *InventoryItemRepo { return &InventoryItemRepo{s: s} }

func (r *InventoryItemRepo) Create(_ context.Context, item *entity.InventoryItem) error {
	if err := r.s.fault("item.create"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range r.s.items {
		if it.Type == item.Type && fold(it.Name) == fold(item.Name) {
			return domain.ErrDuplicate
		}
	}
	item.ID = r.s.nextID()
	r.s.items[item.ID] = cloneItem(*item)
	return nil
}

func (r *InventoryItemRepo) Update(_ context.Context, item *entity.InventoryItem) error {
	if err := r.s.fault("item.update"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.items[item.ID] = cloneItem(*item)
	return nil
}

// Delete elimina el artículo y sus lotes (ON DELETE CASCADE).
func (r *InventoryItemRepo) Delete(_ context.Context, id int64) error {
	if err := r.s.fault("item.delete"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.items, id)
	for bid, b := range r.s.batches {
		if b.ItemID == id {
			delete(r.s.batches, bid)
		}
	}
	return nil
}

func (r *InventoryItemRepo) GetByID(_ context.Context, id int64) (*entity.InventoryItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	out := cloneItem(it)
	return &out, nil
}

func (r *InventoryItemRepo) List(_ context.Context, itemType string) ([]*entity.InventoryItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.filterLocked(func(it entity.InventoryItem) bool {
		return itemType == "" || it.Type == itemType
	}, 0), nil
}

func (r *InventoryItemRepo) FindByNameAndType(_ context.Context, name, itemType string) (*entity.InventoryItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := fold(strings.TrimSpace(name))
	for _, it := range r.s.items {
		if it.Type == itemType && fold(it.Name) == key {
			out := cloneItem(it)
			return &out, nil
		}
	}
	return nil, nil
}

func (r *InventoryItemRepo) Search(_ context.Context, term string, limit int) ([]*entity.InventoryItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t := fold(term)
	return r.filterLocked(func(it entity.InventoryItem) bool {
		return strings.Contains(fold(it.Name), t) || strings.Contains(fold(it.Category), t)
	}, limit), nil
}

func (r *InventoryItemRepo) ListWithStock(_ context.Context, itemType string) ([]entity.ItemStock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	items := r.filterLocked(func(it entity.InventoryItem) bool {
		return itemType == "" || it.Type == itemType
	}, 0)
	out := make([]entity.ItemStock, 0, len(items))
	for _, it := range items {
		stock := 0
		for _, b := range r.s.batches {
			if b.ItemID == it.ID {
				stock += b.Quantity
			}
		}
		out = append(out, entity.ItemStock{Item: it, CurrentStock: stock})
	}
	return out, nil
}

// filterLocked devuelve copias ordenadas por nombre. Requiere r.s.mu tomado.
func (r *InventoryItemRepo) filterLocked(keep func(entity.InventoryItem) bool, limit int) []*entity.InventoryItem {
	out := make([]*entity.InventoryItem, 0)
	for _, it := range r.s.items {
		if keep(it) {
			c := cloneItem(it)
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func cloneItem(it entity.InventoryItem) entity.InventoryItem {
	it.RawMaterials = append([]entity.RecipeComponent(nil), it.RawMaterials...)
	return it
}

// StockBatchRepo lotes en memoria. Dentro de Store.Run las transacciones ya están serializadas,
// por lo que ListByItemForUpdate no necesita un bloqueo adicional.
type StockBatchRepo struct {
	s    *Store
	undo *undoLog
}

// NewStockBatchRepository construye el repositorio.
func NewStockBatchRepository(s *Store) *StockBatchRepo { return &StockBatchRepo{s: s} }

func (r *StockBatchRepo) Create(_ context.Context, b *entity.StockBatch) error {
	if err := r.s.fault("batch.create"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[b.ItemID]; !ok {
		return domain.ErrInvalidInput
	}
	b.ID = r.s.nextID()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	r.s.batches[b.ID] = *b
	id := b.ID
	r.undo.add(func() { delete(r.s.batches, id) })
	return nil
}

// Put inserta un lote con id explícito (fixtures de tests).
func (r *StockBatchRepo) Put(b entity.StockBatch) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.batches[b.ID] = b
	if b.ID > r.s.seq {
		r.s.seq = b.ID
	}
}

func (r *StockBatchRepo) GetByID(_ context.Context, id int64) (*entity.StockBatch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.batches[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *StockBatchRepo) ListByItem(_ context.Context, itemID int64) ([]*entity.StockBatch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.sortedLocked(func(b entity.StockBatch) bool { return b.ItemID == itemID }), nil
}

func (r *StockBatchRepo) ListByItemForUpdate(ctx context.Context, itemID int64) ([]*entity.StockBatch, error) {
	return r.ListByItem(ctx, itemID)
}

func (r *StockBatchRepo) UpdateQuantity(_ context.Context, id int64, quantity int) error {
	if err := r.s.fault("batch.update"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.batches[id]
	if !ok {
		return domain.ErrNotFound
	}
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	prev := b
	r.undo.add(func() { r.s.batches[id] = prev })
	b.Quantity = quantity
	r.s.batches[id] = b
	return nil
}

func (r *StockBatchRepo) Delete(_ context.Context, id int64) error {
	if err := r.s.fault("batch.delete"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if prev, ok := r.s.batches[id]; ok {
		r.undo.add(func() { r.s.batches[id] = prev })
	}
	delete(r.s.batches, id)
	return nil
}

func (r *StockBatchRepo) CountByItem(_ context.Context, itemID int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, b := range r.s.batches {
		if b.ItemID == itemID {
			n++
		}
	}
	return n, nil
}

func (r *StockBatchRepo) ListExpiringBefore(_ context.Context, limit time.Time) ([]*entity.StockBatch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.sortedLocked(func(b entity.StockBatch) bool { return b.Expiry.Before(limit) }), nil
}

func (r *StockBatchRepo) sortedLocked(keep func(entity.StockBatch) bool) []*entity.StockBatch {
	out := make([]*entity.StockBatch, 0)
	for _, b := range r.s.batches {
		if keep(b) {
			c := b
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return domaininv.SortKeyLess(out[i], out[j]) })
	return out
}

// StockMovementRepo libro de movimientos en memoria.
type StockMovementRepo struct {
	s    *Store
	undo *undoLog
}

// NewStockMovementRepository construye el repositorio.
func NewStockMovementRepository(s *Store) *StockMovementRepo { return &StockMovementRepo{s: s} }

func (r *StockMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	if err := r.s.fault("movement.create"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m.ID = r.s.nextID()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	r.s.movements = append(r.s.movements, *m)
	id := m.ID
	r.undo.add(func() {
		for i := range r.s.movements {
			if r.s.movements[i].ID == id {
				r.s.movements = append(r.s.movements[:i], r.s.movements[i+1:]...)
				return
			}
		}
	})
	return nil
}

func (r *StockMovementRepo) ListByItem(_ context.Context, itemID int64, limit, offset int) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.StockMovement, 0)
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		if r.s.movements[i].ItemID == itemID {
			m := r.s.movements[i]
			out = append(out, &m)
		}
	}
	return paginate(out, limit, offset), nil
}

func paginate[T any](in []T, limit, offset int) []T {
	if offset >= len(in) {
		return in[:0]
	}
	in = in[offset:]
	if limit > 0 && len(in) > limit {
		in = in[:limit]
	}
	return in
}
