package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-restaurante/internal/domain"
	"github.com/jhoicas/pos-restaurante/internal/domain/entity"
	"github.com/jhoicas/pos-restaurante/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, items, order_type, table_number, status, total, notes, created_by, void_reason, created_at, updated_at`

// OrderRepo órdenes sobre PostgreSQL. Las líneas viven en una columna JSONB.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la orden y asigna ID y fechas.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}
	query := `
		INSERT INTO orders (items, order_type, table_number, status, total, notes, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`
	if err := r.q.QueryRow(ctx, query,
		items, o.OrderType, o.TableNumber, o.Status, o.Total, o.Notes, o.CreatedBy,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID orden por ID; nil si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

// GetByIDForUpdate bloquea la fila hasta el fin de la transacción.
func (r *OrderRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Order, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *OrderRepo) get(ctx context.Context, query string, id int64) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// Update persiste líneas, total, notas, tipo y mesa.
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}
	query := `
		UPDATE orders
		SET items = $2, total = $3, notes = $4, order_type = $5, table_number = $6, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`
	err = r.q.QueryRow(ctx, query, o.ID, items, o.Total, o.Notes, o.OrderType, o.TableNumber).Scan(&o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

// UpdateStatus cambia el estado; voidReason solo se escribe si no está vacío.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id int64, status, voidReason string) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE orders
		SET status = $2, void_reason = COALESCE(NULLIF($3, ''), void_reason), updated_at = now()
		WHERE id = $1`, id, status, voidReason)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List órdenes más recientes primero, con el total para paginar.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, int, error) {
	var total int
	if err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE ($1 = '' OR status = $1)`, f.Status,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE ($1 = '' OR status = $1)
		ORDER BY id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, f.Status, f.Limit, f.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, total, rows.Err()
}

// CountItemReferences órdenes cuyas líneas referencian el artículo.
func (r *OrderRepo) CountItemReferences(ctx context.Context, itemID int64) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*) FROM orders o
		WHERE EXISTS (
			SELECT 1 FROM jsonb_array_elements(o.items) AS line
			WHERE (line->>'item_id')::bigint = $1
		)`, itemID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count item references: %w", err)
	}
	return n, nil
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var items []byte
	if err := row.Scan(
		&o.ID, &items, &o.OrderType, &o.TableNumber, &o.Status, &o.Total,
		&o.Notes, &o.CreatedBy, &o.VoidReason, &o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}
	return &o, nil
}
