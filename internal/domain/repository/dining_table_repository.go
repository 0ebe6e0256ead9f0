package repository

import (
	"context"

	"github.com/jhoicas/pos-restaurante/internal/domain/entity"
)

// DiningTableRepository define el puerto de persistencia de mesas (DIP).
type DiningTableRepository interface {
	List(ctx context.Context) ([]*entity.DiningTable, error)
	GetByNumber(ctx context.Context, number int) (*entity.DiningTable, error)
	// SetStatus sobrescribe el estado; devuelve nil si la mesa no existe.
	SetStatus(ctx context.Context, number int, status string) (*entity.DiningTable, error)
	Count(ctx context.Context) (int, error)
	// SeedRange inserta las mesas 1..count con estado available.
	SeedRange(ctx context.Context, count int) error
}
