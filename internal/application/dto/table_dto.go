package dto

import (
	"time"

	"github.com/jhoicas/pos-restaurante/internal/domain/entity"
)

// TableResponse mesa del salón.
type TableResponse struct {
	ID          int64     `json:"id"`
	TableNumber int       `json:"table_number"`
	Status      string    `json:"status"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SetTableStatusRequest body para PUT /api/tables/:number/status.
type SetTableStatusRequest struct {
	Status string `json:"status"`
}

// TableFromEntity mapea una mesa a su DTO.
func TableFromEntity(t *entity.DiningTable) TableResponse {
	return TableResponse{ID: t.ID, TableNumber: t.TableNumber, Status: t.Status, UpdatedAt: t.UpdatedAt}
}
