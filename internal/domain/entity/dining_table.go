package entity

import "time"

// Estados de mesa.
const (
	TableStatusAvailable = "available"
	TableStatusOccupied  = "occupied"
)

// DiningTable mesa del salón identificada por su número.
type DiningTable struct {
	ID          int64
	TableNumber int
	Status      string
	UpdatedAt   time.Time
}

// IsOccupied indica si la mesa está ocupada.
func (t *DiningTable) IsOccupied() bool {
	return t.Status == TableStatusOccupied
}

// IsValidTableStatus valida un estado de mesa.
func IsValidTableStatus(s string) bool {
	return s == TableStatusAvailable || s == TableStatusOccupied
}
