package http_test

import (
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-restaurante/internal/application/dto"
	"github.com/jhoicas/pos-restaurante/internal/domain/entity"
)

// Helpers

func dineIn(table int, lines ...map[string]any) map[string]any {
	return map[string]any{
		"items":        lines,
		"total":        100,
		"order_type":   entity.OrderTypeDineIn,
		"table_number": table,
	}
}

func line(name string, qty int) map[string]any {
	return map[string]any{"name": name, "quantity": qty, "price": 50}
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

func createOrder(t *testing.T, s *testServer, body map[string]any) dto.OrderWithAdvisoryResponse {
	t.Helper()
	status, out := s.call(t, entity.RoleCashier, http.MethodPost, "/api/orders", body)
	require.Equal(t, http.StatusCreated, status, string(out))
	return decode[dto.OrderWithAdvisoryResponse](t, out)
}

// Crear orden

func TestCreateOrder_OcupaMesaYReportaAdvisory(t *testing.T) {
	s := newTestServer(t, 5)

	res := createOrder(t, s, dineIn(3, line("Sisig", 2)))
	assert.Equal(t, entity.OrderStatusPending, res.Order.Status)
	require.NotNil(t, res.Order.TableNumber)
	assert.Equal(t, 3, *res.Order.TableNumber)
	assert.Equal(t, testUsername, res.Order.CreatedBy)
	require.NotNil(t, res.Advisory.TableOccupied)
	assert.True(t, *res.Advisory.TableOccupied)

	status, out := s.call(t, entity.RoleServer, http.MethodGet, "/api/tables/3", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, entity.TableStatusOccupied, decode[dto.TableResponse](t, out).Status)
}

func TestCreateOrder_MesaOcupada_409(t *testing.T) {
	s := newTestServer(t, 5)
	createOrder(t, s, dineIn(2, line("Sisig", 1)))

	status, out := s.call(t, entity.RoleCashier, http.MethodPost, "/api/orders", dineIn(2, line("Coke", 1)))
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", decode[dto.ErrorResponse](t, out).Code)

	// Con confirmación explícita de la misma mesa se permite.
	body := dineIn(2, line("Coke", 1))
	body["same_table_override"] = true
	body["same_table_number"] = 2
	createOrder(t, s, body)
}

func TestCreateOrder_ConfirmacionDeMesaDistinta_400(t *testing.T) {
	s := newTestServer(t, 8)
	body := dineIn(4, line("Coke", 1))
	body["same_table_override"] = true
	body["same_table_number"] = 6

	status, out := s.call(t, entity.RoleCashier, http.MethodPost, "/api/orders", body)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, out).Code)
}

func TestCreateOrder_MesaInexistente_400(t *testing.T) {
	s := newTestServer(t, 5)
	status, out := s.call(t, entity.RoleCashier, http.MethodPost, "/api/orders", dineIn(99, line("Sisig", 1)))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, out).Code)
}

func TestCreateOrder_CocinaNoPuedeCrear_403(t *testing.T) {
	s := newTestServer(t, 5)
	status, _ := s.call(t, entity.RoleKitchen, http.MethodPost, "/api/orders", dineIn(1, line("Sisig", 1)))
	assert.Equal(t, http.StatusForbidden, status)
}

func TestCreateOrder_SinToken_401(t *testing.T) {
	s := newTestServer(t, 5)
	status, _ := s.call(t, "", http.MethodPost, "/api/orders", dineIn(1, line("Sisig", 1)))
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestCreateOrder_CuerpoInvalido_400(t *testing.T) {
	s := newTestServer(t, 5)
	status, out := s.call(t, entity.RoleCashier, http.MethodPost, "/api/orders", map[string]any{"items": "x"})
	assert.Equal(t, http.StatusBadRequest, status, string(out))
}

// Estado, edición y anulación

func TestUpdateStatus_CocinaAvanzaLaOrden(t *testing.T) {
	s := newTestServer(t, 5)
	res := createOrder(t, s, dineIn(1, line("Sisig", 1)))
	path := "/api/orders/" + itoa(res.Order.ID)

	status, out := s.call(t, entity.RoleKitchen, http.MethodPatch, path+"/status", map[string]string{"status": "preparing"})
	require.Equal(t, http.StatusOK, status, string(out))
	assert.Equal(t, entity.OrderStatusPreparing, decode[dto.OrderResponse](t, out).Status)

	status, _ = s.call(t, entity.RoleKitchen, http.MethodPatch, path+"/status", map[string]string{"status": "voided"})
	assert.Equal(t, http.StatusBadRequest, status, "voided solo se alcanza con la anulación")

	// Una orden en preparing ya no se edita ni se anula.
	status, _ = s.call(t, entity.RoleCashier, http.MethodPut, path, map[string]any{"items": []any{line("Sisig", 2)}, "total": 100})
	assert.Equal(t, http.StatusConflict, status)
	status, _ = s.call(t, entity.RoleCashier, http.MethodPost, path+"/void", map[string]string{"credential": "pasig"})
	assert.Equal(t, http.StatusConflict, status)

	status, out = s.call(t, entity.RoleCashier, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, status)
	got := decode[dto.OrderResponse](t, out)
	assert.Equal(t, entity.OrderStatusPreparing, got.Status)
	assert.Equal(t, 1, got.Items[0].Quantity)
}

func TestVoidOrder_Credencial(t *testing.T) {
	s := newTestServer(t, 5)
	res := createOrder(t, s, dineIn(4, line("Coke", 1)))
	path := "/api/orders/" + itoa(res.Order.ID) + "/void"

	status, out := s.call(t, entity.RoleCashier, http.MethodPost, path, map[string]string{"credential": "incorrecta"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", decode[dto.ErrorResponse](t, out).Code)

	status, out = s.call(t, entity.RoleCashier, http.MethodPost, path, map[string]string{"credential": "  PASIG ", "reason": "cliente se fue"})
	require.Equal(t, http.StatusOK, status, string(out))
	got := decode[dto.OrderResponse](t, out)
	assert.Equal(t, entity.OrderStatusVoided, got.Status)
	assert.Equal(t, "cliente se fue", got.VoidReason)

	// La anulación es terminal: cocina no puede devolverla a pending.
	statusPath := "/api/orders/" + itoa(res.Order.ID) + "/status"
	status, _ = s.call(t, entity.RoleKitchen, http.MethodPatch, statusPath, map[string]string{"status": "pending"})
	assert.Equal(t, http.StatusConflict, status)
}

func TestEditOrder_Pendiente(t *testing.T) {
	s := newTestServer(t, 5)
	res := createOrder(t, s, dineIn(1, line("Sisig", 1)))

	status, out := s.call(t, entity.RoleCashier, http.MethodPut, "/api/orders/"+itoa(res.Order.ID), map[string]any{
		"items": []any{line("Sisig", 3)},
		"total": 150,
		"notes": "sin cebolla",
	})
	require.Equal(t, http.StatusOK, status, string(out))
	got := decode[dto.OrderWithAdvisoryResponse](t, out)
	assert.Equal(t, 3, got.Order.Items[0].Quantity)
	assert.Equal(t, "sin cebolla", got.Order.Notes)
}

func TestGetOrder_NoExiste_404(t *testing.T) {
	s := newTestServer(t, 1)
	status, out := s.call(t, entity.RoleCashier, http.MethodGet, "/api/orders/999", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, out).Code)

	status, _ = s.call(t, entity.RoleCashier, http.MethodGet, "/api/orders/abc", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestListOrders_FiltroYPaginacion(t *testing.T) {
	s := newTestServer(t, 5)
	for i := 1; i <= 3; i++ {
		createOrder(t, s, dineIn(i, line("Coke", 1)))
	}

	status, out := s.call(t, entity.RoleKitchen, http.MethodGet, "/api/orders?status=pending&limit=2", nil)
	require.Equal(t, http.StatusOK, status)
	list := decode[dto.OrderListResponse](t, out)
	assert.Len(t, list.Items, 2)
	assert.Equal(t, 3, list.Page.Total)
	assert.Greater(t, list.Items[0].ID, list.Items[1].ID, "más recientes primero")

	status, _ = s.call(t, entity.RoleKitchen, http.MethodGet, "/api/orders?status=raro", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestTicket_DevuelvePDF(t *testing.T) {
	s := newTestServer(t, 5)
	res := createOrder(t, s, dineIn(1, line("Sisig", 2)))

	status, out := s.call(t, entity.RoleKitchen, http.MethodGet, "/api/orders/"+itoa(res.Order.ID)+"/ticket", nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}

// Escenario completo: stock de Coke descontado por órdenes

func TestEscenarioCoke_HTTP(t *testing.T) {
	s := newTestServer(t, 10)

	status, out := s.call(t, entity.RoleAdmin, http.MethodPost, "/api/inventory/items", map[string]any{
		"name": "Coke", "type": entity.ItemTypeProduct, "price": 25, "category": "Bebidas",
	})
	require.Equal(t, http.StatusCreated, status, string(out))
	coke := decode[dto.ItemResponse](t, out)

	soon := time.Now().AddDate(0, 0, 10).Format(dto.DateLayout)
	later := time.Now().AddDate(0, 0, 20).Format(dto.DateLayout)
	for _, exp := range []string{later, soon} {
		status, out = s.call(t, entity.RoleAdmin, http.MethodPost, "/api/inventory/batches", map[string]any{
			"item_id": coke.ID, "quantity": 10, "expiry": exp,
		})
		require.Equal(t, http.StatusCreated, status, string(out))
	}

	order := func(table, qty int) dto.OrderWithAdvisoryResponse {
		return createOrder(t, s, dineIn(table, map[string]any{"id": coke.ID, "name": "Coke", "quantity": qty, "price": 25}))
	}

	first := order(1, 15)
	require.Len(t, first.Advisory.Stock, 1)
	assert.Equal(t, 15, first.Advisory.Stock[0].Consumed)

	status, out = s.call(t, entity.RoleCashier, http.MethodGet, "/api/inventory/items/"+itoa(coke.ID)+"/batches", nil)
	require.Equal(t, http.StatusOK, status)
	batches := decode[[]dto.BatchResponse](t, out)
	require.Len(t, batches, 1)
	assert.Equal(t, later, batches[0].Expiry, "el lote que vence primero se agotó")
	assert.Equal(t, 5, batches[0].Quantity)

	second := order(2, 5)
	assert.Equal(t, 5, second.Advisory.Stock[0].Consumed)

	third := order(3, 1)
	assert.Equal(t, entity.OrderStatusPending, third.Order.Status, "la orden se crea aunque no haya stock")
	assert.Equal(t, 1, third.Advisory.Stock[0].Shortfall)

	status, out = s.call(t, entity.RoleCashier, http.MethodGet, "/api/inventory/pos-products", nil)
	require.Equal(t, http.StatusOK, status)
	products := decode[[]dto.POSProductDTO](t, out)
	require.Len(t, products, 1)
	assert.Equal(t, 0, products[0].CurrentStock)

	status, out = s.call(t, entity.RoleCashier, http.MethodGet, "/api/inventory/items/"+itoa(coke.ID)+"/movements?limit=50", nil)
	require.Equal(t, http.StatusOK, status)
	movs := decode[dto.MovementListResponse](t, out)
	assert.Len(t, movs.Items, 5, "2 entradas + 3 consumos (15 cruza dos lotes, 5 agota el último)")
}
