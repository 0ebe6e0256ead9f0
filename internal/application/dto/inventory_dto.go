package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-restaurante/internal/domain/entity"
)

// RecipeComponentDTO materia prima de una receta.
type RecipeComponentDTO struct {
	RawMaterialID int64           `json:"raw_material_id"`
	Amount        decimal.Decimal `json:"amount"`
	Unit          string          `json:"unit"`
}

// ItemRequest body para POST/PUT /api/inventory/items.
type ItemRequest struct {
	Name                 string               `json:"name"`
	Type                 string               `json:"type"` // RawMaterial | Product
	Unit                 string               `json:"unit"`
	Category             string               `json:"category"`
	LowStockThreshold    *int                 `json:"low_stock_threshold,omitempty"`
	Price                decimal.Decimal      `json:"price"`
	RequiresRawMaterials bool                 `json:"requires_raw_materials"`
	RawMaterials         []RecipeComponentDTO `json:"raw_materials,omitempty"`
}

// ItemResponse artículo con su stock actual y, opcionalmente, sus lotes.
type ItemResponse struct {
	ID                   int64                `json:"id"`
	Name                 string               `json:"name"`
	Type                 string               `json:"type"`
	Unit                 string               `json:"unit"`
	Category             string               `json:"category"`
	LowStockThreshold    int                  `json:"low_stock_threshold"`
	Price                decimal.Decimal      `json:"price"`
	RequiresRawMaterials bool                 `json:"requires_raw_materials"`
	RawMaterials         []RecipeComponentDTO `json:"raw_materials"`
	CurrentStock         int                  `json:"current_stock"`
	Batches              []BatchResponse      `json:"batches,omitempty"`
	CreatedAt            time.Time            `json:"created_at"`
	UpdatedAt            time.Time            `json:"updated_at"`
}

// AddBatchRequest body para POST /api/inventory/batches.
type AddBatchRequest struct {
	ItemID     int64            `json:"item_id"`
	Quantity   int              `json:"quantity"`
	Expiry     string           `json:"expiry"` // YYYY-MM-DD
	UnitAmount *decimal.Decimal `json:"unit_amount,omitempty"`
	UnitLabel  string           `json:"unit_label,omitempty"`
}

// BatchResponse lote de stock.
type BatchResponse struct {
	ID         int64            `json:"id"`
	ItemID     int64            `json:"item_id"`
	Quantity   int              `json:"quantity"`
	Expiry     string           `json:"expiry"`
	UnitAmount *decimal.Decimal `json:"unit_amount,omitempty"`
	UnitLabel  string           `json:"unit_label,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
}

// POSProductDTO producto vendible con su stock para la pantalla del POS.
type POSProductDTO struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Unit         string          `json:"unit"`
	Price        decimal.Decimal `json:"price"`
	CurrentStock int             `json:"current_stock"`
}

// LowStockAlertDTO artículo en o por debajo de su umbral.
type LowStockAlertDTO struct {
	ItemID       int64  `json:"item_id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	CurrentStock int    `json:"current_stock"`
	Threshold    int    `json:"threshold"`
}

// ExpiryAlertDTO lote vencido o próximo a vencer.
type ExpiryAlertDTO struct {
	BatchID  int64  `json:"batch_id"`
	ItemID   int64  `json:"item_id"`
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
	Expiry   string `json:"expiry"`
	DaysLeft int    `json:"days_left"`
	Expired  bool   `json:"expired"`
}

// StockAlertsResponse respuesta de GET /api/inventory/alerts.
type StockAlertsResponse struct {
	LowStock []LowStockAlertDTO `json:"low_stock"`
	Expiring []ExpiryAlertDTO   `json:"expiring"`
}

// BatchFromEntity mapea un lote a su DTO.
func BatchFromEntity(b *entity.StockBatch) BatchResponse {
	return BatchResponse{
		ID:         b.ID,
		ItemID:     b.ItemID,
		Quantity:   b.Quantity,
		Expiry:     b.Expiry.Format(DateLayout),
		UnitAmount: b.UnitAmount,
		UnitLabel:  b.UnitLabel,
		CreatedAt:  b.CreatedAt,
	}
}

// ItemFromEntity mapea un artículo a su DTO (sin lotes).
func ItemFromEntity(it *entity.InventoryItem, currentStock int) ItemResponse {
	recipe := make([]RecipeComponentDTO, 0, len(it.RawMaterials))
	for _, rc := range it.RawMaterials {
		recipe = append(recipe, RecipeComponentDTO(rc))
	}
	return ItemResponse{
		ID:                   it.ID,
		Name:                 it.Name,
		Type:                 it.Type,
		Unit:                 it.Unit,
		Category:             it.Category,
		LowStockThreshold:    it.LowStockThreshold,
		Price:                it.Price,
		RequiresRawMaterials: it.RequiresRawMaterials,
		RawMaterials:         recipe,
		CurrentStock:         currentStock,
		CreatedAt:            it.CreatedAt,
		UpdatedAt:            it.UpdatedAt,
	}
}

// MovementResponse movimiento del libro de stock.
type MovementResponse struct {
	ID        int64     `json:"id"`
	BatchID   int64     `json:"batch_id"`
	ItemID    int64     `json:"item_id"`
	Delta     int       `json:"delta"`
	Reason    string    `json:"reason"`
	Reference string    `json:"reference,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MovementListResponse historial paginado de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
