package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-restaurante/internal/domain/entity"
)

// OrderItemDTO línea de orden. ID es el artículo de inventario (opcional).
type OrderItemDTO struct {
	ID       *int64          `json:"id,omitempty"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	Items             []OrderItemDTO  `json:"items"`
	Total             decimal.Decimal `json:"total"`
	OrderType         string          `json:"order_type"`
	TableNumber       *int            `json:"table_number,omitempty"`
	SameTableOverride bool            `json:"same_table_override,omitempty"`
	SameTableNumber   *int            `json:"same_table_number,omitempty"`
	Notes             string          `json:"notes,omitempty"`
}

// EditOrderRequest body para PUT /api/orders/:id.
type EditOrderRequest struct {
	Items       []OrderItemDTO  `json:"items"`
	Total       decimal.Decimal `json:"total"`
	OrderType   string          `json:"order_type,omitempty"`
	TableNumber *int            `json:"table_number,omitempty"`
	Notes       *string         `json:"notes,omitempty"`
}

// VoidOrderRequest body para POST /api/orders/:id/void.
type VoidOrderRequest struct {
	Credential string `json:"credential"`
	Reason     string `json:"reason,omitempty"`
}

// UpdateOrderStatusRequest body para PATCH /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderResponse orden serializada (API y eventos).
type OrderResponse struct {
	ID          int64           `json:"id"`
	Items       []OrderItemDTO  `json:"items"`
	OrderType   string          `json:"order_type"`
	TableNumber *int            `json:"table_number,omitempty"`
	Status      string          `json:"status"`
	Total       decimal.Decimal `json:"total"`
	Notes       string          `json:"notes,omitempty"`
	CreatedBy   string          `json:"created_by,omitempty"`
	VoidReason  string          `json:"void_reason,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// StockConsumptionDTO resultado de descontar stock para una línea.
type StockConsumptionDTO struct {
	ItemID    int64  `json:"item_id"`
	Requested int    `json:"requested"`
	Consumed  int    `json:"consumed"`
	Shortfall int    `json:"shortfall"`
	Error     string `json:"error,omitempty"`
}

// AdvisoryDTO resultado de los pasos best-effort; nunca afecta el código HTTP.
type AdvisoryDTO struct {
	TableOccupied *bool                 `json:"table_occupied,omitempty"`
	Stock         []StockConsumptionDTO `json:"stock,omitempty"`
	Notified      bool                  `json:"notified"`
	Warnings      []string              `json:"warnings,omitempty"`
}

// OrderWithAdvisoryResponse respuesta de creación/edición.
type OrderWithAdvisoryResponse struct {
	Order    OrderResponse `json:"order"`
	Advisory AdvisoryDTO   `json:"advisory"`
}

// OrderListResponse listado paginado.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// OrderFromEntity mapea una orden a su DTO.
func OrderFromEntity(o *entity.Order) OrderResponse {
	items := make([]OrderItemDTO, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemDTO{ID: it.ItemID, Name: it.Name, Quantity: it.Quantity, Price: it.Price})
	}
	return OrderResponse{
		ID:          o.ID,
		Items:       items,
		OrderType:   o.OrderType,
		TableNumber: o.TableNumber,
		Status:      o.Status,
		Total:       o.Total,
		Notes:       o.Notes,
		CreatedBy:   o.CreatedBy,
		VoidReason:  o.VoidReason,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

// OrderItemsToEntity convierte las líneas del request a entidades.
func OrderItemsToEntity(in []OrderItemDTO) []entity.OrderItem {
	out := make([]entity.OrderItem, 0, len(in))
	for _, it := range in {
		out = append(out, entity.OrderItem{ItemID: it.ID, Name: it.Name, Quantity: it.Quantity, Price: it.Price})
	}
	return out
}
