package orders

import (
	"context"
	"time"

	"github.com/jhoicas/pos-restaurante/internal/application/dto"
	"github.com/jhoicas/pos-restaurante/internal/application/inventory"
	"github.com/jhoicas/pos-restaurante/internal/domain/entity"
	"github.com/jhoicas/pos-restaurante/internal/domain/repository"
)

// TxRunner ejecuta fn en una transacción con el repositorio de órdenes atado a ella.
type TxRunner interface {
	RunOrders(ctx context.Context, fn func(orderRepo repository.OrderRepository) error) error
}

// TableRegistry consulta y marca mesas (implementado por tables.Registry).
type TableRegistry interface {
	GetByNumber(ctx context.Context, number int) (*entity.DiningTable, error)
	SetStatus(ctx context.Context, number int, status string) (*entity.DiningTable, error)
}

// StockConsumer descuenta stock FIFO (implementado por inventory.StockLedger).
type StockConsumer interface {
	ConsumeFIFO(ctx context.Context, itemID int64, quantity int, reference string) (inventory.ConsumptionResult, error)
}

// VoidAuthorizer valida la credencial requerida para anular una orden.
type VoidAuthorizer interface {
	Authorize(credential string) bool
}

// TicketRenderer genera la comanda de cocina de una orden.
type TicketRenderer interface {
	RenderKitchenTicket(order dto.OrderResponse) ([]byte, error)
}

// Tipos de evento de orden.
const (
	EventOrderCreated       = "order.created"
	EventOrderUpdated       = "order.updated"
	EventOrderVoided        = "order.voided"
	EventOrderStatusChanged = "order.status_changed"
)

// Event notificación para pantallas de cocina/caja.
type Event struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	OccurredAt time.Time         `json:"occurred_at"`
	Order      dto.OrderResponse `json:"order"`
}

// Notifier publica eventos de órdenes. Es un paso best-effort.
type Notifier interface {
	Publish(ctx context.Context, ev Event) error
}

// NopNotifier descarta los eventos (sin broker configurado).
type NopNotifier struct{}

// Publish no hace nada.
func (NopNotifier) Publish(context.Context, Event) error { return nil }
