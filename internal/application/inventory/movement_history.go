package inventory

import (
	"context"

	"github.com/jhoicas/pos-restaurante/internal/application/dto"
	"github.com/jhoicas/pos-restaurante/internal/domain"
	"github.com/jhoicas/pos-restaurante/internal/domain/repository"
)

// MovementHistory consulta el libro de movimientos de un artículo.
type MovementHistory struct {
	movRepo repository.StockMovementRepository
}

// NewMovementHistory construye la consulta.
func NewMovementHistory(movRepo repository.StockMovementRepository) *MovementHistory {
	return &MovementHistory{movRepo: movRepo}
}

// List movimientos del artículo, más recientes primero.
func (h *MovementHistory) List(ctx context.Context, itemID int64, page dto.PageRequest) (*dto.MovementListResponse, error) {
	if itemID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	list, err := h.movRepo.ListByItem(ctx, itemID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.MovementListResponse{
		Items: make([]dto.MovementResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, m := range list {
		out.Items = append(out.Items, dto.MovementResponse{
			ID:        m.ID,
			BatchID:   m.BatchID,
			ItemID:    m.ItemID,
			Delta:     m.Delta,
			Reason:    m.Reason,
			Reference: m.Reference,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}
