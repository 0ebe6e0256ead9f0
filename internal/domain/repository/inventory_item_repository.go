package repository

import (
	"context"

	"github.com/jhoicas/pos-restaurante/internal/domain/entity"
)

// InventoryItemRepository define el puerto de persistencia para artículos del catálogo (DIP).
type InventoryItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	Update(ctx context.Context, item *entity.InventoryItem) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*entity.InventoryItem, error)
	// List filtra por tipo si itemType no está vacío.
	List(ctx context.Context, itemType string) ([]*entity.InventoryItem, error)
	// FindByNameAndType búsqueda exacta (sin distinguir mayúsculas) usada para reutilizar artículos.
	FindByNameAndType(ctx context.Context, name, itemType string) (*entity.InventoryItem, error)
	Search(ctx context.Context, term string, limit int) ([]*entity.InventoryItem, error)
	// ListWithStock devuelve artículos con la suma de sus lotes.
	ListWithStock(ctx context.Context, itemType string) ([]entity.ItemStock, error)
}
