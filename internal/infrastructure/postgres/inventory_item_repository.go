package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-restaurante/internal/domain"
	"github.com/jhoicas/pos-restaurante/internal/domain/entity"
	"github.com/jhoicas/pos-restaurante/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

const itemColumns = `id, name, type, unit, category, low_stock_threshold, price,
	requires_raw_materials, raw_materials, created_at, updated_at`

// InventoryItemRepo implementación de InventoryItemRepository sobre PostgreSQL (usable con pool o tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

// Create persiste un artículo y asigna su ID. Nombre+tipo repetido → ErrDuplicate.
func (r *InventoryItemRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	recipe, err := marshalRecipe(item.RawMaterials)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO inventory_items (name, type, unit, category, low_stock_threshold, price, requires_raw_materials, raw_materials)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`
	err = r.q.QueryRow(ctx, query,
		item.Name, item.Type, item.Unit, item.Category, item.LowStockThreshold,
		item.Price, item.RequiresRawMaterials, recipe,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// Update sobrescribe los campos editables del artículo.
func (r *InventoryItemRepo) Update(ctx context.Context, item *entity.InventoryItem) error {
	recipe, err := marshalRecipe(item.RawMaterials)
	if err != nil {
		return err
	}
	query := `
		UPDATE inventory_items
		SET name = $2, type = $3, unit = $4, category = $5, low_stock_threshold = $6, price = $7,
			requires_raw_materials = $8, raw_materials = $9, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`
	err = r.q.QueryRow(ctx, query,
		item.ID, item.Name, item.Type, item.Unit, item.Category, item.LowStockThreshold,
		item.Price, item.RequiresRawMaterials, recipe,
	).Scan(&item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update inventory item: %w", err)
	}
	return nil
}

// Delete elimina el artículo; sus lotes caen por ON DELETE CASCADE.
func (r *InventoryItemRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un artículo por ID; nil si no existe.
func (r *InventoryItemRepo) GetByID(ctx context.Context, id int64) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1`
	it, err := scanItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return it, nil
}

// List devuelve los artículos ordenados por nombre, filtrando por tipo si se indica.
func (r *InventoryItemRepo) List(ctx context.Context, itemType string) ([]*entity.InventoryItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM inventory_items
		WHERE ($1 = '' OR type = $1)
		ORDER BY name, id`
	rows, err := r.q.Query(ctx, query, itemType)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

// FindByNameAndType búsqueda exacta sin distinguir mayúsculas.
func (r *InventoryItemRepo) FindByNameAndType(ctx context.Context, name, itemType string) (*entity.InventoryItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM inventory_items
		WHERE lower(name) = lower($1) AND type = $2`
	it, err := scanItem(r.q.QueryRow(ctx, query, strings.TrimSpace(name), itemType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find inventory item: %w", err)
	}
	return it, nil
}

// Search busca por nombre o categoría (ILIKE).
func (r *InventoryItemRepo) Search(ctx context.Context, term string, limit int) ([]*entity.InventoryItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM inventory_items
		WHERE name ILIKE $1 OR category ILIKE $1
		ORDER BY name, id
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, "%"+escapeLike(term)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search inventory items: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

// ListWithStock artículos con la suma de sus lotes (0 si no tienen).
func (r *InventoryItemRepo) ListWithStock(ctx context.Context, itemType string) ([]entity.ItemStock, error) {
	query := `
		SELECT i.id, i.name, i.type, i.unit, i.category, i.low_stock_threshold, i.price,
			i.requires_raw_materials, i.raw_materials, i.created_at, i.updated_at,
			COALESCE(SUM(b.quantity), 0)
		FROM inventory_items i
		LEFT JOIN inventory_batches b ON b.item_id = i.id
		WHERE ($1 = '' OR i.type = $1)
		GROUP BY i.id
		ORDER BY i.name, i.id`
	rows, err := r.q.Query(ctx, query, itemType)
	if err != nil {
		return nil, fmt.Errorf("list inventory items with stock: %w", err)
	}
	defer rows.Close()

	var out []entity.ItemStock
	for rows.Next() {
		var it entity.InventoryItem
		var recipe []byte
		var stock int
		if err := rows.Scan(
			&it.ID, &it.Name, &it.Type, &it.Unit, &it.Category, &it.LowStockThreshold, &it.Price,
			&it.RequiresRawMaterials, &recipe, &it.CreatedAt, &it.UpdatedAt, &stock,
		); err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		if err := unmarshalRecipe(recipe, &it); err != nil {
			return nil, err
		}
		out = append(out, entity.ItemStock{Item: &it, CurrentStock: stock})
	}
	return out, rows.Err()
}

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	var recipe []byte
	if err := row.Scan(
		&it.ID, &it.Name, &it.Type, &it.Unit, &it.Category, &it.LowStockThreshold, &it.Price,
		&it.RequiresRawMaterials, &recipe, &it.CreatedAt, &it.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := unmarshalRecipe(recipe, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

func collectItems(rows pgx.Rows) ([]*entity.InventoryItem, error) {
	var list []*entity.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

func marshalRecipe(rc []entity.RecipeComponent) ([]byte, error) {
	if rc == nil {
		rc = []entity.RecipeComponent{}
	}
	b, err := json.Marshal(rc)
	if err != nil {
		return nil, fmt.Errorf("marshal raw materials: %w", err)
	}
	return b, nil
}

func unmarshalRecipe(b []byte, it *entity.InventoryItem) error {
	if len(b) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, &it.RawMaterials); err != nil {
		return fmt.Errorf("unmarshal raw materials: %w", err)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
