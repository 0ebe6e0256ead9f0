package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TopItemResult resultado crudo de artículos más vendidos.
type TopItemResult struct {
	ItemID   *int64
	Name     string
	Quantity int
	Revenue  decimal.Decimal
}

// SalesRepository consultas de lectura para reportes de ventas.
// Las implementaciones son read-only y solo consideran órdenes completed.
type SalesRepository interface {
	// GetRevenue suma de totales de órdenes completadas en [start, end).
	GetRevenue(ctx context.Context, start, end time.Time) (decimal.Decimal, int, error)
	// CountByStatus número de órdenes por estado creadas en [start, end).
	CountByStatus(ctx context.Context, start, end time.Time) (map[string]int, error)
	// GetTopItems líneas agregadas por nombre ordenadas por cantidad descendente.
	GetTopItems(ctx context.Context, start, end time.Time, limit int) ([]TopItemResult, error)
}
