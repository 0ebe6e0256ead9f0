package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-restaurante/internal/application/inventory"
	"github.com/jhoicas/pos-restaurante/internal/application/orders"
	"github.com/jhoicas/pos-restaurante/internal/application/sales"
	"github.com/jhoicas/pos-restaurante/internal/application/tables"
	"github.com/jhoicas/pos-restaurante/internal/infrastructure/memory"
	"github.com/jhoicas/pos-restaurante/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/pos-restaurante/internal/interfaces/http"
)

var (
	authOnce   sync.Once
	authShared *orders.PasswordAuthorizer
)

// testServer aplicación completa sobre el store en memoria.
type testServer struct {
	app   *fiber.App
	store *memory.Store
}

func newTestServer(t *testing.T, tableCount int) *testServer {
	t.Helper()
	authOnce.Do(func() {
		a, err := orders.NewPasswordAuthorizer([]string{"july 2 2004", "pasig", "waiter"})
		if err != nil {
			panic(err)
		}
		authShared = a
	})

	store := memory.NewStore()
	itemRepo := memory.NewInventoryItemRepository(store)
	batchRepo := memory.NewStockBatchRepository(store)
	movRepo := memory.NewStockMovementRepository(store)
	orderRepo := memory.NewOrderRepository(store)
	registry := tables.NewRegistry(memory.NewDiningTableRepository(store))
	_, err := registry.Seed(t.Context(), tableCount)
	require.NoError(t, err)

	ledger := inventory.NewStockLedger(store, itemRepo, batchRepo)
	wf := orders.NewWorkflow(orders.WorkflowDeps{
		OrderRepo:  orderRepo,
		TxRunner:   store,
		Tables:     registry,
		Stock:      ledger,
		Authorizer: authShared,
		Tickets:    pdf.NewKitchenTicketGenerator("Test"),
		Logger:     zerolog.Nop(),
	})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Workflow:     wf,
		Tables:       registry,
		Items:        inventory.NewItemUseCase(itemRepo, batchRepo, orderRepo),
		Ledger:       ledger,
		Alerts:       inventory.NewAlertsUseCase(itemRepo, batchRepo, 7),
		Movements:    inventory.NewMovementHistory(movRepo),
		Sales:        sales.NewSummaryUseCase(memory.NewSalesRepository(store)),
		ActivityRepo: memory.NewActivityLogRepository(store),
		JWTSecret:    testJWTSecret,
		Logger:       zerolog.Nop(),
	})
	return &testServer{app: app, store: store}
}

// newRequest arma una petición sin cuerpo con el token del rol indicado ("" = sin token).
func newRequest(t *testing.T, role, method, path string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	return req
}

// call ejecuta una petición con el rol indicado y devuelve status y cuerpo.
func (s *testServer) call(t *testing.T, role, method, path string, body any) (int, []byte) {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(b, &v), string(b))
	return v
}
