package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-restaurante/internal/domain/entity"
	"github.com/jhoicas/pos-restaurante/internal/domain/repository"
)

var _ repository.DiningTableRepository = (*DiningTableRepo)(nil)

// DiningTableRepo mesas sobre PostgreSQL.
type DiningTableRepo struct {
	q Querier
}

// NewDiningTableRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDiningTableRepository(q Querier) *DiningTableRepo {
	return &DiningTableRepo{q: q}
}

// List todas las mesas por número.
func (r *DiningTableRepo) List(ctx context.Context) ([]*entity.DiningTable, error) {
	rows, err := r.q.Query(ctx, `SELECT id, table_number, status, updated_at FROM dining_tables ORDER BY table_number`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var list []*entity.DiningTable
	for rows.Next() {
		var t entity.DiningTable
		if err := rows.Scan(&t.ID, &t.TableNumber, &t.Status, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan table: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// GetByNumber mesa por número; nil si no existe.
func (r *DiningTableRepo) GetByNumber(ctx context.Context, number int) (*entity.DiningTable, error) {
	var t entity.DiningTable
	err := r.q.QueryRow(ctx,
		`SELECT id, table_number, status, updated_at FROM dining_tables WHERE table_number = $1`, number,
	).Scan(&t.ID, &t.TableNumber, &t.Status, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get table: %w", err)
	}
	return &t, nil
}

// SetStatus sobrescribe el estado (último en escribir gana); nil si la mesa no existe.
func (r *DiningTableRepo) SetStatus(ctx context.Context, number int, status string) (*entity.DiningTable, error) {
	var t entity.DiningTable
	err := r.q.QueryRow(ctx, `
		UPDATE dining_tables SET status = $2, updated_at = now()
		WHERE table_number = $1
		RETURNING id, table_number, status, updated_at`, number, status,
	).Scan(&t.ID, &t.TableNumber, &t.Status, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("set table status: %w", err)
	}
	return &t, nil
}

// Count número de mesas registradas.
func (r *DiningTableRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM dining_tables`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count tables: %w", err)
	}
	return n, nil
}

// SeedRange inserta las mesas 1..count disponibles; las existentes no se tocan.
func (r *DiningTableRepo) SeedRange(ctx context.Context, count int) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO dining_tables (table_number, status)
		SELECT n, 'available' FROM generate_series(1, $1::int) AS n
		ON CONFLICT (table_number) DO NOTHING`, count)
	if err != nil {
		return fmt.Errorf("seed tables: %w", err)
	}
	return nil
}
