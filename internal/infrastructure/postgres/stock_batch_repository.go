package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-restaurante/internal/domain"
	"github.com/jhoicas/pos-restaurante/internal/domain/entity"
	"github.com/jhoicas/pos-restaurante/internal/domain/repository"
)

var _ repository.StockBatchRepository = (*StockBatchRepo)(nil)

const batchColumns = `id, item_id, quantity, expiry, unit_amount, unit_label, created_at`

// Orden FIFO: primero vence, primero sale; empate por id.
const fifoOrder = ` ORDER BY expiry ASC, id ASC`

// StockBatchRepo implementación de StockBatchRepository sobre PostgreSQL.
type StockBatchRepo struct {
	q Querier
}

// NewStockBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockBatchRepository(q Querier) *StockBatchRepo {
	return &StockBatchRepo{q: q}
}

// Create inserta un lote. Artículo inexistente → ErrInvalidInput.
func (r *StockBatchRepo) Create(ctx context.Context, b *entity.StockBatch) error {
	query := `
		INSERT INTO inventory_batches (item_id, quantity, expiry, unit_amount, unit_label)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query, b.ItemID, b.Quantity, b.Expiry, b.UnitAmount, b.UnitLabel).
		Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: item %d does not exist", domain.ErrInvalidInput, b.ItemID)
		}
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote; nil si no existe.
func (r *StockBatchRepo) GetByID(ctx context.Context, id int64) (*entity.StockBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM inventory_batches WHERE id = $1`
	b, err := scanBatch(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return b, nil
}

// ListByItem lotes del artículo en orden FIFO.
func (r *StockBatchRepo) ListByItem(ctx context.Context, itemID int64) ([]*entity.StockBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM inventory_batches WHERE item_id = $1` + fifoOrder
	return r.list(ctx, "list batches", query, itemID)
}

// ListByItemForUpdate igual que ListByItem pero bloquea las filas (SELECT FOR UPDATE).
// Dos consumos concurrentes del mismo artículo quedan serializados.
func (r *StockBatchRepo) ListByItemForUpdate(ctx context.Context, itemID int64) ([]*entity.StockBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM inventory_batches WHERE item_id = $1` + fifoOrder + ` FOR UPDATE`
	return r.list(ctx, "list batches for update", query, itemID)
}

// UpdateQuantity fija la cantidad restante del lote.
func (r *StockBatchRepo) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	tag, err := r.q.Exec(ctx, `UPDATE inventory_batches SET quantity = $2 WHERE id = $1`, id, quantity)
	if err != nil {
		return fmt.Errorf("update batch quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el lote (agotado o descartado).
func (r *StockBatchRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM inventory_batches WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	return nil
}

// CountByItem número de lotes vivos del artículo.
func (r *StockBatchRepo) CountByItem(ctx context.Context, itemID int64) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM inventory_batches WHERE item_id = $1`, itemID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count batches: %w", err)
	}
	return n, nil
}

// ListExpiringBefore lotes con vencimiento anterior a limit.
func (r *StockBatchRepo) ListExpiringBefore(ctx context.Context, limit time.Time) ([]*entity.StockBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM inventory_batches WHERE expiry < $1` + fifoOrder
	return r.list(ctx, "list expiring batches", query, limit)
}

func (r *StockBatchRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.StockBatch, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var list []*entity.StockBatch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func scanBatch(row pgx.Row) (*entity.StockBatch, error) {
	var b entity.StockBatch
	if err := row.Scan(&b.ID, &b.ItemID, &b.Quantity, &b.Expiry, &b.UnitAmount, &b.UnitLabel, &b.CreatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}
