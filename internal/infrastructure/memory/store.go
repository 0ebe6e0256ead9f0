// Package memory implementa los puertos de persistencia en memoria.
// Se usa en tests y en modo demo (sin PostgreSQL). Las transacciones se serializan y se
// revierten con un registro de deshacer por transacción.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/pos-restaurante/internal/application/inventory"
	"github.com/jhoicas/pos-restaurante/internal/application/orders"
	"github.com/jhoicas/pos-restaurante/internal/domain/entity"
	"github.com/jhoicas/pos-restaurante/internal/domain/repository"
)

var (
	_ inventory.TxRunner = (*Store)(nil)
	_ orders.TxRunner    = (*Store)(nil)
)

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex // una transacción a la vez (equivale a bloquear las filas tocadas)

	items     map[int64]entity.InventoryItem
	batches   map[int64]entity.StockBatch
	tables    map[int]entity.DiningTable
	orders    map[int64]entity.Order
	movements []entity.StockMovement
	logs      []entity.ActivityLog
	seq       int64

	// Fault, si no es nil, se consulta antes de cada escritura con el nombre de la operación
	// ("batch.update", "batch.delete", "order.create", "table.set_status", ...). Un error aborta la operación.
	Fault func(op string) error
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		items:   make(map[int64]entity.InventoryItem),
		batches: make(map[int64]entity.StockBatch),
		tables:  make(map[int]entity.DiningTable),
		orders:  make(map[int64]entity.Order),
	}
}

// undoLog deshace, en orden inverso, las escrituras hechas por los repositorios de una transacción.
// Solo toca las claves que la transacción modificó: las escrituras concurrentes fuera de ella se conservan.
type undoLog struct {
	ops []func()
}

// add registra cómo revertir una escritura. Con u nil (fuera de transacción) no hace nada.
func (u *undoLog) add(op func()) {
	if u != nil {
		u.ops = append(u.ops, op)
	}
}

func (s *Store) rollback(u *undoLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(u.ops) - 1; i >= 0; i-- {
		u.ops[i]()
	}
}

func (s *Store) fault(op string) error {
	if s.Fault == nil {
		return nil
	}
	if err := s.Fault(op); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

// inTx ejecuta fn serializado; si fn falla se deshacen sus escrituras.
func (s *Store) inTx(fn func(u *undoLog) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	u := &undoLog{}
	if err := fn(u); err != nil {
		s.rollback(u)
		return err
	}
	return nil
}

// Run implementa inventory.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(
	batchRepo repository.StockBatchRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.inTx(func(u *undoLog) error {
		return fn(&StockBatchRepo{s: s, undo: u}, &StockMovementRepo{s: s, undo: u})
	})
}

// RunOrders implementa orders.TxRunner.
func (s *Store) RunOrders(ctx context.Context, fn func(orderRepo repository.OrderRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.inTx(func(u *undoLog) error {
		return fn(&OrderRepo{s: s, undo: u})
	})
}

// Movements copia del libro de movimientos (para inspección en tests).
func (s *Store) Movements() []entity.StockMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.StockMovement(nil), s.movements...)
}

// ActivityLogs copia de la auditoría registrada.
func (s *Store) ActivityLogs() []entity.ActivityLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.ActivityLog(nil), s.logs...)
}
