package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de artículo de inventario.
const (
	ItemTypeRawMaterial = "RawMaterial"
	ItemTypeProduct     = "Product"
)

// DefaultLowStockThreshold umbral de stock bajo cuando el artículo no define uno.
const DefaultLowStockThreshold = 10

// RecipeComponent materia prima requerida por un producto derivado.
type RecipeComponent struct {
	RawMaterialID int64           `json:"raw_material_id"`
	Amount        decimal.Decimal `json:"amount"`
	Unit          string          `json:"unit"`
}

// InventoryItem artículo del catálogo: materia prima o producto vendible en el POS.
// El stock no vive aquí; es la suma de sus StockBatch.
type InventoryItem struct {
	ID                   int64
	Name                 string
	Type                 string // RawMaterial | Product
	Unit                 string
	Category             string
	LowStockThreshold    int
	Price                decimal.Decimal
	RequiresRawMaterials bool
	RawMaterials         []RecipeComponent
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// IsValidItemType indica si t es un tipo de artículo conocido.
func IsValidItemType(t string) bool {
	return t == ItemTypeRawMaterial || t == ItemTypeProduct
}

// ItemStock artículo con su stock actual (suma de lotes).
type ItemStock struct {
	Item         *InventoryItem
	CurrentStock int
}
