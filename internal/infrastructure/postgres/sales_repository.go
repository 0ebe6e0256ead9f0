package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-restaurante/internal/domain/repository"
)

var _ repository.SalesRepository = (*SalesRepo)(nil)

// SalesRepo consultas de reportes (read-only) sobre órdenes completadas.
type SalesRepo struct {
	q Querier
}

// NewSalesRepository construye el adaptador.
func NewSalesRepository(q Querier) *SalesRepo {
	return &SalesRepo{q: q}
}

// GetRevenue suma y conteo de órdenes completed en [start, end).
func (r *SalesRepo) GetRevenue(ctx context.Context, start, end time.Time) (decimal.Decimal, int, error) {
	var total decimal.Decimal
	var n int
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(total), 0), COUNT(*)
		FROM orders
		WHERE status = 'completed' AND created_at >= $1 AND created_at < $2`, start, end,
	).Scan(&total, &n)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("get revenue: %w", err)
	}
	return total, n, nil
}

// CountByStatus órdenes creadas en [start, end) agrupadas por estado.
func (r *SalesRepo) CountByStatus(ctx context.Context, start, end time.Time) (map[string]int, error) {
	rows, err := r.q.Query(ctx, `
		SELECT status, COUNT(*)
		FROM orders
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY status`, start, end)
	if err != nil {
		return nil, fmt.Errorf("count orders by status: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		out[status] = n
	}
	return out, rows.Err()
}

// GetTopItems líneas de órdenes completed agregadas por nombre.
func (r *SalesRepo) GetTopItems(ctx context.Context, start, end time.Time, limit int) ([]repository.TopItemResult, error) {
	rows, err := r.q.Query(ctx, `
		SELECT
			MIN((line->>'item_id')::bigint) AS item_id,
			line->>'name' AS name,
			SUM((line->>'quantity')::int) AS quantity,
			SUM((line->>'quantity')::numeric * (line->>'price')::numeric) AS revenue
		FROM orders o, jsonb_array_elements(o.items) AS line
		WHERE o.status = 'completed' AND o.created_at >= $1 AND o.created_at < $2
		GROUP BY line->>'name'
		ORDER BY quantity DESC, name ASC
		LIMIT $3`, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("get top items: %w", err)
	}
	defer rows.Close()

	var list []repository.TopItemResult
	for rows.Next() {
		var t repository.TopItemResult
		if err := rows.Scan(&t.ItemID, &t.Name, &t.Quantity, &t.Revenue); err != nil {
			return nil, fmt.Errorf("scan top item: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
