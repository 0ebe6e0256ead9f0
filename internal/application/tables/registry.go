package tables

import (
	"context"

	"github.com/jhoicas/pos-restaurante/internal/domain"
	"github.com/jhoicas/pos-restaurante/internal/domain/entity"
	"github.com/jhoicas/pos-restaurante/internal/domain/repository"
)

// Registry fuente única del estado de ocupación de las mesas, indexadas por número.
// Las escrituras sobre una mesa no se bloquean: gana la última (last-writer-wins).
type Registry struct {
	repo repository.DiningTableRepository
}

// NewRegistry construye el registro de mesas.
func NewRegistry(repo repository.DiningTableRepository) *Registry {
	return &Registry{repo: repo}
}

// List devuelve todas las mesas ordenadas por número.
func (r *Registry) List(ctx context.Context) ([]*entity.DiningTable, error) {
	return r.repo.List(ctx)
}

// GetByNumber devuelve la mesa o nil si el número no existe.
func (r *Registry) GetByNumber(ctx context.Context, number int) (*entity.DiningTable, error) {
	if number <= 0 {
		return nil, nil
	}
	return r.repo.GetByNumber(ctx, number)
}

// SetStatus sobrescribe el estado sin condiciones. Devuelve nil si la mesa no existe.
func (r *Registry) SetStatus(ctx context.Context, number int, status string) (*entity.DiningTable, error) {
	if !entity.IsValidTableStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	if number <= 0 {
		return nil, nil
	}
	return r.repo.SetStatus(ctx, number, status)
}

// Toggle alterna available <-> occupied. Lee y luego escribe sin bloqueo: dos toggles
// concurrentes pueden dejar la mesa en el mismo estado.
func (r *Registry) Toggle(ctx context.Context, number int) (*entity.DiningTable, error) {
	t, err := r.GetByNumber(ctx, number)
	if err != nil || t == nil {
		return nil, err
	}
	next := entity.TableStatusOccupied
	if t.IsOccupied() {
		next = entity.TableStatusAvailable
	}
	return r.repo.SetStatus(ctx, number, next)
}

// Seed crea las mesas 1..count solo si todavía no existe ninguna. Devuelve true si sembró.
func (r *Registry) Seed(ctx context.Context, count int) (bool, error) {
	if count <= 0 {
		return false, nil
	}
	n, err := r.repo.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	if err := r.repo.SeedRange(ctx, count); err != nil {
		return false, err
	}
	return true, nil
}
