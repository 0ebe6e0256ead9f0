package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-restaurante/internal/domain/entity"
	"github.com/jhoicas/pos-restaurante/internal/domain/repository"
)

var _ repository.ActivityLogRepository = (*ActivityLogRepo)(nil)

// ActivityLogRepo auditoría sobre PostgreSQL.
type ActivityLogRepo struct {
	q Querier
}

// NewActivityLogRepository construye el adaptador.
func NewActivityLogRepository(q Querier) *ActivityLogRepo {
	return &ActivityLogRepo{q: q}
}

// Create registra una acción.
func (r *ActivityLogRepo) Create(ctx context.Context, l *entity.ActivityLog) error {
	var metadata any
	if len(l.Metadata) > 0 {
		metadata = []byte(l.Metadata)
	}
	query := `
		INSERT INTO activity_logs (user_id, role, action, description, ip_address, user_agent, status, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`
	if err := r.q.QueryRow(ctx, query,
		l.UserID, l.Role, l.Action, l.Description, l.IPAddress, l.UserAgent, l.Status, metadata,
	).Scan(&l.ID, &l.CreatedAt); err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}
	return nil
}
