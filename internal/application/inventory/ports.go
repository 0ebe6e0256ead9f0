package inventory

import (
	"context"

	"github.com/jhoicas/pos-restaurante/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Commit si fn devuelve nil; Rollback en cualquier otro caso. Garantiza atomicidad del libro de stock.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		batchRepo repository.StockBatchRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
