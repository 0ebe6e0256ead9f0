package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-restaurante/internal/application/dto"
	"github.com/jhoicas/pos-restaurante/internal/application/inventory"
	"github.com/jhoicas/pos-restaurante/internal/domain"
	"github.com/jhoicas/pos-restaurante/internal/domain/entity"
	"github.com/jhoicas/pos-restaurante/internal/infrastructure/memory"
)

type catalogFixture struct {
	store  *memory.Store
	items  *inventory.ItemUseCase
	ledger *inventory.StockLedger
	orders *memory.OrderRepo
}

func newCatalogFixture() *catalogFixture {
	store := memory.NewStore()
	itemRepo := memory.NewInventoryItemRepository(store)
	batchRepo := memory.NewStockBatchRepository(store)
	orderRepo := memory.NewOrderRepository(store)
	return &catalogFixture{
		store:  store,
		items:  inventory.NewItemUseCase(itemRepo, batchRepo, orderRepo),
		ledger: inventory.NewStockLedger(store, itemRepo, batchRepo),
		orders: orderRepo,
	}
}

func product(name string, price int64) dto.ItemRequest {
	return dto.ItemRequest{Name: name, Type: entity.ItemTypeProduct, Unit: "pcs", Category: "Drinks", Price: decimal.NewFromInt(price)}
}

func TestItemCreate_ReutilizaMismoNombreYTipo(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	first, created, err := f.items.Create(ctx, product("Coke", 25))
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, entity.DefaultLowStockThreshold, first.LowStockThreshold, "umbral por defecto")

	again, created, err := f.items.Create(ctx, product("  COKE ", 99))
	require.NoError(t, err)
	assert.False(t, created, "mismo nombre sin distinguir mayúsculas reutiliza el artículo")
	assert.Equal(t, first.ID, again.ID)
	assert.True(t, again.Price.Equal(decimal.NewFromInt(25)), "el existente no se modifica")

	raw := product("Coke", 0)
	raw.Type = entity.ItemTypeRawMaterial
	other, created, err := f.items.Create(ctx, raw)
	require.NoError(t, err)
	assert.True(t, created, "otro tipo es otro artículo")
	assert.NotEqual(t, first.ID, other.ID)
}

func TestItemCreate_Validaciones(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	_, _, err := f.items.Create(ctx, dto.ItemRequest{Name: "", Type: entity.ItemTypeProduct})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = f.items.Create(ctx, dto.ItemRequest{Name: "X", Type: "Service"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	neg := product("Y", -1)
	_, _, err = f.items.Create(ctx, neg)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	recipe := product("Halo-Halo", 80)
	recipe.RequiresRawMaterials = true
	_, _, err = f.items.Create(ctx, recipe)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "requiere receta no vacía")

	recipe.RawMaterials = []dto.RecipeComponentDTO{{RawMaterialID: 12345, Amount: decimal.NewFromInt(1), Unit: "g"}}
	_, _, err = f.items.Create(ctx, recipe)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "materia prima inexistente")
}

func TestItemCreate_ConReceta(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	ice := dto.ItemRequest{Name: "Shaved Ice", Type: entity.ItemTypeRawMaterial, Unit: "g"}
	rawResp, _, err := f.items.Create(ctx, ice)
	require.NoError(t, err)

	req := product("Halo-Halo", 80)
	req.RequiresRawMaterials = true
	req.RawMaterials = []dto.RecipeComponentDTO{{RawMaterialID: rawResp.ID, Amount: decimal.NewFromInt(200), Unit: "g"}}
	resp, created, err := f.items.Create(ctx, req)
	require.NoError(t, err)
	assert.True(t, created)
	require.Len(t, resp.RawMaterials, 1)
	assert.Equal(t, rawResp.ID, resp.RawMaterials[0].RawMaterialID)
}

func TestItemUpdate(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	coke, _, _ := f.items.Create(ctx, product("Coke", 25))
	sprite, _, _ := f.items.Create(ctx, product("Sprite", 25))

	_, err := f.items.Update(ctx, 777, product("Nada", 1))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.items.Update(ctx, sprite.ID, product("coke", 30))
	assert.ErrorIs(t, err, domain.ErrDuplicate, "no se puede renombrar a un nombre existente")

	upd, err := f.items.Update(ctx, coke.ID, product("Coke Zero", 30))
	require.NoError(t, err)
	assert.Equal(t, "Coke Zero", upd.Name)
	assert.True(t, upd.Price.Equal(decimal.NewFromInt(30)))
}

func TestItemDelete_PreverificaLotesYOrdenes(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	coke, _, _ := f.items.Create(ctx, product("Coke", 25))

	_, err := f.ledger.AddBatch(ctx, inventory.AddBatchInput{ItemID: coke.ID, Quantity: 5, Expiry: time.Now().AddDate(0, 1, 0)})
	require.NoError(t, err)
	id := coke.ID
	require.NoError(t, f.orders.Create(ctx, &entity.Order{
		Items:     []entity.OrderItem{{ItemID: &id, Name: "Coke", Quantity: 1, Price: decimal.NewFromInt(25)}},
		OrderType: entity.OrderTypeTakeout,
		Status:    entity.OrderStatusCompleted,
	}))

	err = f.items.Delete(ctx, coke.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.ErrorIs(t, err, domain.ErrItemHasBatches)
	assert.ErrorIs(t, err, domain.ErrItemInOrders)

	_, err = f.items.Get(ctx, coke.ID)
	assert.NoError(t, err, "el artículo sigue existiendo")
}

func TestItemDelete_SinReferencias(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	tmp, _, _ := f.items.Create(ctx, product("Temporal", 1))

	require.NoError(t, f.items.Delete(ctx, tmp.ID))
	_, err := f.items.Get(ctx, tmp.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.items.Delete(ctx, tmp.ID), domain.ErrNotFound)
}

func TestProductsForPOS_SumaLotes(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	coke, _, _ := f.items.Create(ctx, product("Coke", 25))
	raw := dto.ItemRequest{Name: "Sugar", Type: entity.ItemTypeRawMaterial}
	_, _, _ = f.items.Create(ctx, raw)

	for _, q := range []int{10, 7} {
		_, err := f.ledger.AddBatch(ctx, inventory.AddBatchInput{ItemID: coke.ID, Quantity: q, Expiry: time.Now().AddDate(0, 0, 30)})
		require.NoError(t, err)
	}

	list, err := f.items.ProductsForPOS(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1, "solo productos, no materias primas")
	assert.Equal(t, 17, list[0].CurrentStock)
}

func TestItemSearch(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	_, _, _ = f.items.Create(ctx, product("Pancit Canton", 90))
	_, _, _ = f.items.Create(ctx, product("Fried Rice", 70))

	_, err := f.items.Search(ctx, "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	res, err := f.items.Search(ctx, "canton")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Pancit Canton", res[0].Name)
}

func TestNameKey(t *testing.T) {
	assert.Equal(t, inventory.NameKey("Leche  Flan"), inventory.NameKey(" LECHE flan "))
	assert.NotEqual(t, inventory.NameKey("Turon"), inventory.NameKey("Turrón"))
}
