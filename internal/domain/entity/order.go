package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de orden.
const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
	// OrderStatusVoided solo se alcanza con la acción de anulación, no con UpdateStatus.
	OrderStatusVoided = "voided"
)

// Tipos de orden.
const (
	OrderTypeDineIn   = "dine-in"
	OrderTypeTakeout  = "takeout"
	OrderTypeDelivery = "delivery"
)

// OrderItem línea de una orden. ItemID es nil para líneas libres sin artículo de inventario.
type OrderItem struct {
	ItemID   *int64          `json:"item_id,omitempty"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Order orden del POS.
type Order struct {
	ID          int64
	Items       []OrderItem
	OrderType   string
	TableNumber *int
	Status      string
	Total       decimal.Decimal
	Notes       string
	CreatedBy   string
	VoidReason  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsPending indica si la orden aún admite edición o anulación.
func (o *Order) IsPending() bool {
	return o.Status == OrderStatusPending
}

// IsDineIn indica si la orden ocupa mesa.
func (o *Order) IsDineIn() bool {
	return o.OrderType == OrderTypeDineIn
}

// IsValidOrderStatus valida los cinco estados aceptados por la actualización de estado.
func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusReady, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// IsValidOrderType valida el tipo de orden.
func IsValidOrderType(t string) bool {
	switch t {
	case OrderTypeDineIn, OrderTypeTakeout, OrderTypeDelivery:
		return true
	}
	return false
}
