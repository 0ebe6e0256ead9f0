package repository

import (
	"context"

	"github.com/jhoicas/pos-restaurante/internal/domain/entity"
)

// ActivityLogRepository persiste la auditoría de acciones.
type ActivityLogRepository interface {
	Create(ctx context.Context, l *entity.ActivityLog) error
}
