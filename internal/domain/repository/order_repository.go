package repository

import (
	"context"

	"github.com/jhoicas/pos-restaurante/internal/domain/entity"
)

// OrderFilter filtros de listado de órdenes.
type OrderFilter struct {
	Status string
	Limit  int
	Offset int
}

// OrderRepository define el puerto de persistencia de órdenes (DIP).
type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	GetByID(ctx context.Context, id int64) (*entity.Order, error)
	// GetByIDForUpdate bloquea la fila de la orden dentro de la transacción.
	GetByIDForUpdate(ctx context.Context, id int64) (*entity.Order, error)
	// Update persiste items, total, notas, tipo y mesa.
	Update(ctx context.Context, o *entity.Order) error
	UpdateStatus(ctx context.Context, id int64, status, voidReason string) error
	List(ctx context.Context, f OrderFilter) ([]*entity.Order, int, error)
	// CountItemReferences cuántas órdenes contienen el artículo en sus líneas.
	CountItemReferences(ctx context.Context, itemID int64) (int, error)
}
