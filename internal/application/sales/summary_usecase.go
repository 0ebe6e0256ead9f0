// Package sales contiene los reportes de ventas del restaurante.
package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/pos-restaurante/internal/application/dto"
	"github.com/jhoicas/pos-restaurante/internal/domain"
	"github.com/jhoicas/pos-restaurante/internal/domain/repository"
)

const (
	defaultTopItems = 10
	maxTopItems     = 100
)

// SummaryUseCase genera el resumen de ventas del día y del mes en curso.
//
// Fuente de datos: SalesRepository (consultas read-only). Solo las órdenes completed suman ingresos.
type SummaryUseCase struct {
	salesRepo repository.SalesRepository
	now       func() time.Time
}

// NewSummaryUseCase construye el caso de uso.
func NewSummaryUseCase(salesRepo repository.SalesRepository) *SummaryUseCase {
	return &SummaryUseCase{salesRepo: salesRepo, now: time.Now}
}

// GetSummary ejecuta en paralelo los ingresos de hoy, los del mes y el conteo por estado de hoy.
func (uc *SummaryUseCase) GetSummary(ctx context.Context) (*dto.SalesSummaryResponse, error) {
	now := uc.now()

	// ── Rangos de fecha ────────────────────────────────────────────────────────
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.AddDate(0, 0, 1)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var (
		out    dto.SalesSummaryResponse
		counts map[string]int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rev, n, err := uc.salesRepo.GetRevenue(gctx, todayStart, todayEnd)
		if err != nil {
			return fmt.Errorf("ventas de hoy: %w", err)
		}
		out.TodayRevenue, out.TodayOrders = rev, n
		return nil
	})
	g.Go(func() error {
		rev, n, err := uc.salesRepo.GetRevenue(gctx, monthStart, todayEnd)
		if err != nil {
			return fmt.Errorf("ventas del mes: %w", err)
		}
		out.MonthRevenue, out.MonthOrders = rev, n
		return nil
	})
	g.Go(func() error {
		c, err := uc.salesRepo.CountByStatus(gctx, todayStart, todayEnd)
		if err != nil {
			return fmt.Errorf("órdenes por estado: %w", err)
		}
		counts = c
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.StatusCountToday = counts
	out.AverageTicket = decimal.Zero
	if out.MonthOrders > 0 {
		out.AverageTicket = out.MonthRevenue.Div(decimal.NewFromInt(int64(out.MonthOrders))).Round(2)
	}
	return &out, nil
}

// TopItems artículos más vendidos en [from, to] (fechas inclusivas).
func (uc *SummaryUseCase) TopItems(ctx context.Context, from, to time.Time, limit int) ([]dto.TopItemDTO, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = defaultTopItems
	}
	if limit > maxTopItems {
		limit = maxTopItems
	}
	rows, err := uc.salesRepo.GetTopItems(ctx, from, to.AddDate(0, 0, 1), limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TopItemDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopItemDTO{ItemID: r.ItemID, Name: r.Name, Quantity: r.Quantity, Revenue: r.Revenue})
	}
	return out, nil
}
