package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/jhoicas/pos-restaurante/internal/application/dto"
	"github.com/jhoicas/pos-restaurante/internal/domain"
	"github.com/jhoicas/pos-restaurante/internal/domain/entity"
	"github.com/jhoicas/pos-restaurante/internal/domain/repository"
)

const searchLimit = 20

// ItemUseCase catálogo de artículos (materias primas y productos del menú).
type ItemUseCase struct {
	itemRepo  repository.InventoryItemRepository
	batchRepo repository.StockBatchRepository
	orderRepo repository.OrderRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(
	itemRepo repository.InventoryItemRepository,
	batchRepo repository.StockBatchRepository,
	orderRepo repository.OrderRepository,
) *ItemUseCase {
	return &ItemUseCase{itemRepo: itemRepo, batchRepo: batchRepo, orderRepo: orderRepo}
}

// NameKey clave de comparación de nombres: espacios colapsados y plegado Unicode de mayúsculas.
func NameKey(s string) string {
	return cases.Fold().String(strings.Join(strings.Fields(s), " "))
}

// Create crea un artículo. Si ya existe uno con el mismo nombre (sin distinguir mayúsculas) y tipo
// se devuelve el existente sin modificarlo; created indica si se insertó uno nuevo.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.ItemRequest) (resp *dto.ItemResponse, created bool, err error) {
	item, err := uc.buildItem(ctx, in)
	if err != nil {
		return nil, false, err
	}

	existing, err := uc.itemRepo.FindByNameAndType(ctx, item.Name, item.Type)
	if err != nil {
		return nil, false, err
	}
	if existing != nil && NameKey(existing.Name) == NameKey(item.Name) {
		out, err := uc.withStock(ctx, existing, false)
		return out, false, err
	}

	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now
	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, false, err
	}
	out := dto.ItemFromEntity(item, 0)
	return &out, true, nil
}

// Update reemplaza los datos del artículo. Renombrar a un nombre ya usado por otro artículo del
// mismo tipo devuelve ErrDuplicate.
func (uc *ItemUseCase) Update(ctx context.Context, id int64, in dto.ItemRequest) (*dto.ItemResponse, error) {
	current, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	item, err := uc.buildItem(ctx, in)
	if err != nil {
		return nil, err
	}
	for _, rc := range item.RawMaterials {
		if rc.RawMaterialID == id {
			return nil, fmt.Errorf("%w: un artículo no puede ser materia prima de sí mismo", domain.ErrInvalidInput)
		}
	}
	other, err := uc.itemRepo.FindByNameAndType(ctx, item.Name, item.Type)
	if err != nil {
		return nil, err
	}
	if other != nil && other.ID != id {
		return nil, domain.ErrDuplicate
	}

	item.ID = id
	item.CreatedAt = current.CreatedAt
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return uc.withStock(ctx, item, true)
}

// Delete elimina el artículo solo si no tiene lotes ni aparece en órdenes.
func (uc *ItemUseCase) Delete(ctx context.Context, id int64) error {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}

	var reasons []error
	batches, err := uc.batchRepo.CountByItem(ctx, id)
	if err != nil {
		return err
	}
	if batches > 0 {
		reasons = append(reasons, fmt.Errorf("%w (%d lotes); dé de baja los lotes primero", domain.ErrItemHasBatches, batches))
	}
	refs, err := uc.orderRepo.CountItemReferences(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		reasons = append(reasons, fmt.Errorf("%w (%d órdenes)", domain.ErrItemInOrders, refs))
	}
	if len(reasons) > 0 {
		return errors.Join(reasons...)
	}
	return uc.itemRepo.Delete(ctx, id)
}

// Get devuelve el artículo con sus lotes en orden FIFO.
func (uc *ItemUseCase) Get(ctx context.Context, id int64) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return uc.withStock(ctx, item, true)
}

// List lista artículos (filtrados por tipo si se indica) con su stock actual.
func (uc *ItemUseCase) List(ctx context.Context, itemType string, withBatches bool) ([]dto.ItemResponse, error) {
	if itemType != "" && !entity.IsValidItemType(itemType) {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.itemRepo.ListWithStock(ctx, itemType)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(rows))
	for _, r := range rows {
		resp := dto.ItemFromEntity(r.Item, r.CurrentStock)
		if withBatches {
			batches, err := uc.batchRepo.ListByItem(ctx, r.Item.ID)
			if err != nil {
				return nil, err
			}
			resp.Batches = batchDTOs(batches)
		}
		out = append(out, resp)
	}
	return out, nil
}

// Search busca artículos por nombre o categoría.
func (uc *ItemUseCase) Search(ctx context.Context, term string) ([]dto.ItemResponse, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, domain.ErrInvalidInput
	}
	items, err := uc.itemRepo.Search(ctx, term, searchLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		resp, err := uc.withStock(ctx, it, false)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

// ProductsForPOS lista los productos vendibles con su stock actual.
func (uc *ItemUseCase) ProductsForPOS(ctx context.Context) ([]dto.POSProductDTO, error) {
	rows, err := uc.itemRepo.ListWithStock(ctx, entity.ItemTypeProduct)
	if err != nil {
		return nil, err
	}
	out := make([]dto.POSProductDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.POSProductDTO{
			ID:           r.Item.ID,
			Name:         r.Item.Name,
			Category:     r.Item.Category,
			Unit:         r.Item.Unit,
			Price:        r.Item.Price,
			CurrentStock: r.CurrentStock,
		})
	}
	return out, nil
}

func (uc *ItemUseCase) buildItem(ctx context.Context, in dto.ItemRequest) (*entity.InventoryItem, error) {
	name := strings.Join(strings.Fields(in.Name), " ")
	if name == "" || !entity.IsValidItemType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	threshold := entity.DefaultLowStockThreshold
	if in.LowStockThreshold != nil {
		if *in.LowStockThreshold < 0 {
			return nil, domain.ErrInvalidInput
		}
		threshold = *in.LowStockThreshold
	}

	var recipe []entity.RecipeComponent
	if in.RequiresRawMaterials {
		if len(in.RawMaterials) == 0 {
			return nil, fmt.Errorf("%w: el producto requiere materias primas", domain.ErrInvalidInput)
		}
		for _, rc := range in.RawMaterials {
			if !rc.Amount.GreaterThan(decimal.Zero) {
				return nil, domain.ErrInvalidInput
			}
			raw, err := uc.itemRepo.GetByID(ctx, rc.RawMaterialID)
			if err != nil {
				return nil, err
			}
			if raw == nil || raw.Type != entity.ItemTypeRawMaterial {
				return nil, fmt.Errorf("%w: materia prima %d inválida", domain.ErrInvalidInput, rc.RawMaterialID)
			}
			recipe = append(recipe, entity.RecipeComponent(rc))
		}
	}

	return &entity.InventoryItem{
		Name:                 name,
		Type:                 in.Type,
		Unit:                 strings.TrimSpace(in.Unit),
		Category:             strings.TrimSpace(in.Category),
		LowStockThreshold:    threshold,
		Price:                in.Price,
		RequiresRawMaterials: in.RequiresRawMaterials,
		RawMaterials:         recipe,
	}, nil
}

func (uc *ItemUseCase) withStock(ctx context.Context, item *entity.InventoryItem, withBatches bool) (*dto.ItemResponse, error) {
	batches, err := uc.batchRepo.ListByItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	out := dto.ItemFromEntity(item, sumQuantities(batches))
	if withBatches {
		out.Batches = batchDTOs(batches)
	}
	return &out, nil
}

func batchDTOs(batches []*entity.StockBatch) []dto.BatchResponse {
	out := make([]dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, dto.BatchFromEntity(b))
	}
	return out
}
