package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/pos-restaurante/internal/application/dto"
	"github.com/jhoicas/pos-restaurante/internal/domain/repository"
)

// AlertsUseCase genera las alertas de stock: artículos bajo su umbral y lotes vencidos o por vencer.
type AlertsUseCase struct {
	itemRepo    repository.InventoryItemRepository
	batchRepo   repository.StockBatchRepository
	warningDays int
	now         func() time.Time
}

// NewAlertsUseCase construye el caso de uso. warningDays: ventana de aviso de vencimiento.
func NewAlertsUseCase(
	itemRepo repository.InventoryItemRepository,
	batchRepo repository.StockBatchRepository,
	warningDays int,
) *AlertsUseCase {
	if warningDays < 0 {
		warningDays = 0
	}
	return &AlertsUseCase{
		itemRepo:    itemRepo,
		batchRepo:   batchRepo,
		warningDays: warningDays,
		now:         time.Now,
	}
}

// GetAlerts devuelve las alertas ordenadas por urgencia.
func (uc *AlertsUseCase) GetAlerts(ctx context.Context) (*dto.StockAlertsResponse, error) {
	rows, err := uc.itemRepo.ListWithStock(ctx, "")
	if err != nil {
		return nil, err
	}

	names := make(map[int64]string, len(rows))
	low := make([]dto.LowStockAlertDTO, 0)
	for _, r := range rows {
		names[r.Item.ID] = r.Item.Name
		if r.CurrentStock <= r.Item.LowStockThreshold {
			low = append(low, dto.LowStockAlertDTO{
				ItemID:       r.Item.ID,
				Name:         r.Item.Name,
				Type:         r.Item.Type,
				CurrentStock: r.CurrentStock,
				Threshold:    r.Item.LowStockThreshold,
			})
		}
	}
	// Mayor déficit primero
	sort.SliceStable(low, func(i, j int) bool {
		return low[i].CurrentStock-low[i].Threshold < low[j].CurrentStock-low[j].Threshold
	})

	today := truncateDay(uc.now())
	limit := today.AddDate(0, 0, uc.warningDays+1)
	batches, err := uc.batchRepo.ListExpiringBefore(ctx, limit)
	if err != nil {
		return nil, err
	}
	expiring := make([]dto.ExpiryAlertDTO, 0, len(batches))
	for _, b := range batches {
		days := int(truncateDay(b.Expiry).Sub(today).Hours() / 24)
		expiring = append(expiring, dto.ExpiryAlertDTO{
			BatchID:  b.ID,
			ItemID:   b.ItemID,
			ItemName: names[b.ItemID],
			Quantity: b.Quantity,
			Expiry:   b.Expiry.Format(dto.DateLayout),
			DaysLeft: days,
			Expired:  days < 0,
		})
	}

	return &dto.StockAlertsResponse{LowStock: low, Expiring: expiring}, nil
}
