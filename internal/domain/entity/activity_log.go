package entity

import (
	"encoding/json"
	"time"
)

// ActivityLog auditoría de una acción realizada vía API.
type ActivityLog struct {
	ID          int64
	UserID      string
	Role        string
	Action      string
	Description string
	IPAddress   string
	UserAgent   string
	Status      int
	Metadata    json.RawMessage
	CreatedAt   time.Time
}
