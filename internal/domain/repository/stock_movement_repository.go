package repository

import (
	"context"

	"github.com/jhoicas/pos-restaurante/internal/domain/entity"
)

// StockMovementRepository libro de movimientos de lotes (append-only).
type StockMovementRepository interface {
	Create(ctx context.Context, m *entity.StockMovement) error
	ListByItem(ctx context.Context, itemID int64, limit, offset int) ([]*entity.StockMovement, error)
}
