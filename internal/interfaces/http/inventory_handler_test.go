package http_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-restaurante/internal/application/dto"
	"github.com/jhoicas/pos-restaurante/internal/domain/entity"
)

func createItem(t *testing.T, s *testServer, name, itemType string) dto.ItemResponse {
	t.Helper()
	status, out := s.call(t, entity.RoleAdmin, http.MethodPost, "/api/inventory/items", map[string]any{
		"name": name, "type": itemType, "price": 10, "unit": "pcs",
	})
	require.Equal(t, http.StatusCreated, status, string(out))
	return decode[dto.ItemResponse](t, out)
}

func addBatch(t *testing.T, s *testServer, itemID int64, qty int, expiry time.Time) dto.BatchResponse {
	t.Helper()
	status, out := s.call(t, entity.RoleAdmin, http.MethodPost, "/api/inventory/batches", map[string]any{
		"item_id": itemID, "quantity": qty, "expiry": expiry.Format(dto.DateLayout),
	})
	require.Equal(t, http.StatusCreated, status, string(out))
	return decode[dto.BatchResponse](t, out)
}

// Artículos

func TestCreateItem_ReutilizaNombreExistente(t *testing.T) {
	s := newTestServer(t, 1)
	first := createItem(t, s, "Halo-Halo", entity.ItemTypeProduct)

	status, out := s.call(t, entity.RoleAdmin, http.MethodPost, "/api/inventory/items", map[string]any{
		"name": "  halo-halo ", "type": entity.ItemTypeProduct, "price": 99,
	})
	require.Equal(t, http.StatusOK, status, string(out))
	again := decode[dto.ItemResponse](t, out)
	assert.Equal(t, first.ID, again.ID)
	assert.True(t, first.Price.Equal(again.Price), "no se modifica el existente")

	// Mismo nombre con otro tipo es un artículo distinto.
	raw := createItem(t, s, "Halo-Halo", entity.ItemTypeRawMaterial)
	assert.NotEqual(t, first.ID, raw.ID)
}

func TestCreateItem_Validaciones(t *testing.T) {
	s := newTestServer(t, 1)

	status, _ := s.call(t, entity.RoleAdmin, http.MethodPost, "/api/inventory/items", map[string]any{"name": "", "type": entity.ItemTypeProduct})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.call(t, entity.RoleAdmin, http.MethodPost, "/api/inventory/items", map[string]any{"name": "Turon", "type": "Combo"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.call(t, entity.RoleCashier, http.MethodPost, "/api/inventory/items", map[string]any{"name": "Turon", "type": entity.ItemTypeProduct})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestUpdateItem_NombreDuplicado_409(t *testing.T) {
	s := newTestServer(t, 1)
	createItem(t, s, "Coke", entity.ItemTypeProduct)
	sprite := createItem(t, s, "Sprite", entity.ItemTypeProduct)

	status, out := s.call(t, entity.RoleAdmin, http.MethodPut, "/api/inventory/items/"+itoa(sprite.ID), map[string]any{
		"name": "COKE", "type": entity.ItemTypeProduct, "price": 25,
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE", decode[dto.ErrorResponse](t, out).Code)

	status, out = s.call(t, entity.RoleAdmin, http.MethodPut, "/api/inventory/items/"+itoa(sprite.ID), map[string]any{
		"name": "Sprite Zero", "type": entity.ItemTypeProduct, "price": 30,
	})
	require.Equal(t, http.StatusOK, status, string(out))
	assert.Equal(t, "Sprite Zero", decode[dto.ItemResponse](t, out).Name)
}

func TestDeleteItem(t *testing.T) {
	s := newTestServer(t, 1)
	item := createItem(t, s, "Leche Flan", entity.ItemTypeProduct)
	batch := addBatch(t, s, item.ID, 3, time.Now().AddDate(0, 0, 5))
	path := "/api/inventory/items/" + itoa(item.ID)

	status, out := s.call(t, entity.RoleAdmin, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", decode[dto.ErrorResponse](t, out).Code)

	status, _ = s.call(t, entity.RoleAdmin, http.MethodDelete, "/api/inventory/batches/"+itoa(batch.ID), nil)
	require.Equal(t, http.StatusNoContent, status)

	status, _ = s.call(t, entity.RoleAdmin, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = s.call(t, entity.RoleAdmin, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSearchItems(t *testing.T) {
	s := newTestServer(t, 1)
	createItem(t, s, "Pancit Canton", entity.ItemTypeProduct)
	createItem(t, s, "Fried Rice", entity.ItemTypeProduct)

	status, out := s.call(t, entity.RoleCashier, http.MethodGet, "/api/inventory/items/search?q=canton", nil)
	require.Equal(t, http.StatusOK, status)
	found := decode[[]dto.ItemResponse](t, out)
	require.Len(t, found, 1)
	assert.Equal(t, "Pancit Canton", found[0].Name)
}

// Lotes

func TestAddBatch_Validaciones(t *testing.T) {
	s := newTestServer(t, 1)
	item := createItem(t, s, "Coke", entity.ItemTypeProduct)

	status, _ := s.call(t, entity.RoleAdmin, http.MethodPost, "/api/inventory/batches", map[string]any{
		"item_id": item.ID, "quantity": 5, "expiry": "31/12/2026",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.call(t, entity.RoleAdmin, http.MethodPost, "/api/inventory/batches", map[string]any{
		"item_id": item.ID, "quantity": 0, "expiry": "2030-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.call(t, entity.RoleAdmin, http.MethodPost, "/api/inventory/batches", map[string]any{
		"item_id": 999, "quantity": 1, "expiry": "2030-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestListBatches_OrdenFIFO(t *testing.T) {
	s := newTestServer(t, 1)
	item := createItem(t, s, "San Miguel Beer", entity.ItemTypeProduct)
	base := time.Now()
	late := addBatch(t, s, item.ID, 5, base.AddDate(0, 0, 30))
	early := addBatch(t, s, item.ID, 5, base.AddDate(0, 0, 3))
	sameDay := addBatch(t, s, item.ID, 5, base.AddDate(0, 0, 3))

	status, out := s.call(t, entity.RoleCashier, http.MethodGet, "/api/inventory/items/"+itoa(item.ID)+"/batches", nil)
	require.Equal(t, http.StatusOK, status)
	batches := decode[[]dto.BatchResponse](t, out)
	require.Len(t, batches, 3)
	assert.Equal(t, []int64{early.ID, sameDay.ID, late.ID}, []int64{batches[0].ID, batches[1].ID, batches[2].ID})

	status, out = s.call(t, entity.RoleCashier, http.MethodGet, "/api/inventory/items/"+itoa(item.ID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 15, decode[dto.ItemResponse](t, out).CurrentStock)
}

func TestDiscardBatch_NoExiste_404(t *testing.T) {
	s := newTestServer(t, 1)
	status, _ := s.call(t, entity.RoleAdmin, http.MethodDelete, "/api/inventory/batches/77", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAlerts_BajoStockYVencimiento(t *testing.T) {
	s := newTestServer(t, 1)
	item := createItem(t, s, "Turon", entity.ItemTypeProduct)
	addBatch(t, s, item.ID, 2, time.Now().AddDate(0, 0, 2))

	status, out := s.call(t, entity.RoleKitchen, http.MethodGet, "/api/inventory/alerts", nil)
	require.Equal(t, http.StatusOK, status)
	alerts := decode[dto.StockAlertsResponse](t, out)
	require.Len(t, alerts.LowStock, 1)
	assert.Equal(t, item.ID, alerts.LowStock[0].ItemID)
	assert.Equal(t, entity.DefaultLowStockThreshold, alerts.LowStock[0].Threshold)
	require.Len(t, alerts.Expiring, 1)
	assert.False(t, alerts.Expiring[0].Expired)
}
