package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-restaurante/internal/domain/entity"
	"github.com/jhoicas/pos-restaurante/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de movimientos sobre PostgreSQL.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create registra un movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (batch_id, item_id, delta, reason, reference)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	if err := r.q.QueryRow(ctx, query, m.BatchID, m.ItemID, m.Delta, m.Reason, m.Reference).
		Scan(&m.ID, &m.CreatedAt); err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByItem movimientos del artículo, más recientes primero.
func (r *StockMovementRepo) ListByItem(ctx context.Context, itemID int64, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, batch_id, item_id, delta, reason, reference, created_at
		FROM stock_movements
		WHERE item_id = $1
		ORDER BY id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.BatchID, &m.ItemID, &m.Delta, &m.Reason, &m.Reference, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
