package repository

import (
	"context"
	"time"

	"github.com/jhoicas/pos-restaurante/internal/domain/entity"
)

// StockBatchRepository define el puerto de persistencia para lotes (DIP).
// Los listados siempre se devuelven en orden FIFO: vencimiento asc, id asc.
type StockBatchRepository interface {
	Create(ctx context.Context, b *entity.StockBatch) error
	GetByID(ctx context.Context, id int64) (*entity.StockBatch, error)
	ListByItem(ctx context.Context, itemID int64) ([]*entity.StockBatch, error)
	// ListByItemForUpdate bloquea los lotes del artículo hasta el fin de la transacción.
	ListByItemForUpdate(ctx context.Context, itemID int64) ([]*entity.StockBatch, error)
	UpdateQuantity(ctx context.Context, id int64, quantity int) error
	Delete(ctx context.Context, id int64) error
	CountByItem(ctx context.Context, itemID int64) (int, error)
	// ListExpiringBefore lotes que vencen antes de limit, en orden FIFO global.
	ListExpiringBefore(ctx context.Context, limit time.Time) ([]*entity.StockBatch, error)
}
