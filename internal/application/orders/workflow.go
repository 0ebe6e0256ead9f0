package orders

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/pos-restaurante/internal/application/dto"
	"github.com/jhoicas/pos-restaurante/internal/application/inventory"
	"github.com/jhoicas/pos-restaurante/internal/domain"
	"github.com/jhoicas/pos-restaurante/internal/domain/entity"
	"github.com/jhoicas/pos-restaurante/internal/domain/repository"
	"github.com/jhoicas/pos-restaurante/pkg/metrics"
)

var tracer = otel.Tracer("github.com/jhoicas/pos-restaurante/internal/application/orders")

// maxStockWorkers límite de consumos FIFO concurrentes por orden.
const maxStockWorkers = 4

// Workflow orquesta crear/editar/anular órdenes y sus cambios de estado.
// La validación de mesa es estricta y previa; ocupar la mesa, descontar stock y notificar
// son pasos best-effort posteriores cuyo fallo se registra pero no deshace la orden.
type Workflow struct {
	orderRepo  repository.OrderRepository
	txRunner   TxRunner
	tables     TableRegistry
	stock      StockConsumer
	notifier   Notifier
	authorizer VoidAuthorizer
	tickets    TicketRenderer
	log        zerolog.Logger
	now        func() time.Time
}

// WorkflowDeps dependencias del flujo de órdenes.
type WorkflowDeps struct {
	OrderRepo  repository.OrderRepository
	TxRunner   TxRunner
	Tables     TableRegistry
	Stock      StockConsumer
	Notifier   Notifier // nil = NopNotifier
	Authorizer VoidAuthorizer
	Tickets    TicketRenderer // opcional
	Logger     zerolog.Logger
}

// NewWorkflow construye el flujo de órdenes.
func NewWorkflow(deps WorkflowDeps) *Workflow {
	notifier := deps.Notifier
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Workflow{
		orderRepo:  deps.OrderRepo,
		txRunner:   deps.TxRunner,
		tables:     deps.Tables,
		stock:      deps.Stock,
		notifier:   notifier,
		authorizer: deps.Authorizer,
		tickets:    deps.Tickets,
		log:        deps.Logger.With().Str("component", "orders").Logger(),
		now:        time.Now,
	}
}

// CreateOrderInput entrada para crear una orden.
type CreateOrderInput struct {
	Items             []entity.OrderItem
	Total             decimal.Decimal
	OrderType         string
	TableNumber       *int
	SameTableOverride bool
	SameTableNumber   *int
	Notes             string
	CreatedBy         string
}

// EditOrderInput entrada para editar una orden pendiente. OrderType vacío y Notes nil conservan el valor actual.
type EditOrderInput struct {
	OrderID     int64
	Items       []entity.OrderItem
	Total       decimal.Decimal
	OrderType   string
	TableNumber *int
	Notes       *string
}

// VoidOrderInput entrada para anular una orden.
type VoidOrderInput struct {
	OrderID    int64
	Credential string
	Reason     string
}

// OrderResult orden resultante junto con el reporte de pasos best-effort.
type OrderResult struct {
	Order    *entity.Order
	Advisory AdvisoryReport
}

// CreateOrder valida, persiste la orden en estado pending y ejecuta los pasos best-effort.
func (w *Workflow) CreateOrder(ctx context.Context, in CreateOrderInput) (*OrderResult, error) {
	ctx, span := tracer.Start(ctx, "orders.CreateOrder", trace.WithAttributes(attribute.String("order.type", in.OrderType)))
	defer span.End()

	if err := validateLines(in.Items, in.Total); err != nil {
		return nil, err
	}
	if !entity.IsValidOrderType(in.OrderType) {
		return nil, fmt.Errorf("%w: tipo de orden desconocido", domain.ErrInvalidInput)
	}

	var table *int
	if in.OrderType == entity.OrderTypeDineIn {
		if in.TableNumber == nil || *in.TableNumber <= 0 {
			return nil, fmt.Errorf("%w: las órdenes en mesa requieren número de mesa", domain.ErrInvalidInput)
		}
		t, err := w.tables.GetByNumber(ctx, *in.TableNumber)
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, domain.ErrInvalidTable
		}
		// La confirmación de misma mesa debe coincidir aunque la mesa esté libre
		if in.SameTableOverride && in.SameTableNumber != nil && *in.SameTableNumber != t.TableNumber {
			return nil, domain.ErrTableMismatch
		}
		if t.IsOccupied() && !in.SameTableOverride {
			return nil, domain.ErrTableOccupied
		}
		n := t.TableNumber
		table = &n
	}

	now := w.now()
	order := &entity.Order{
		Items:       in.Items,
		OrderType:   in.OrderType,
		TableNumber: table,
		Status:      entity.OrderStatusPending,
		Total:       in.Total,
		Notes:       strings.TrimSpace(in.Notes),
		CreatedBy:   in.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := w.orderRepo.Create(ctx, order); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "create order")
		return nil, err
	}
	span.SetAttributes(attribute.Int64("order.id", order.ID))
	metrics.RecordOrderCreated(order.OrderType)

	// Los pasos posteriores no dependen de la cancelación del request.
	advCtx := context.WithoutCancel(ctx)
	var report AdvisoryReport
	if order.TableNumber != nil {
		report.Table = w.occupyTable(advCtx, order.ID, *order.TableNumber)
	}
	report.Stock = w.consumeStock(advCtx, order)
	report.Notify = w.publish(advCtx, EventOrderCreated, order)

	w.log.Info().
		Int64("order_id", order.ID).
		Str("order_type", order.OrderType).
		Bool("advisory_failed", report.Failed()).
		Msg("orden creada")
	return &OrderResult{Order: order, Advisory: report}, nil
}

// EditOrder reemplaza las líneas de una orden pendiente. Si se indica mesa se valida existencia y
// disponibilidad sin la opción de override de CreateOrder.
func (w *Workflow) EditOrder(ctx context.Context, in EditOrderInput) (*OrderResult, error) {
	ctx, span := tracer.Start(ctx, "orders.EditOrder", trace.WithAttributes(attribute.Int64("order.id", in.OrderID)))
	defer span.End()

	if err := validateLines(in.Items, in.Total); err != nil {
		return nil, err
	}
	if in.OrderType != "" && !entity.IsValidOrderType(in.OrderType) {
		return nil, fmt.Errorf("%w: tipo de orden desconocido", domain.ErrInvalidInput)
	}
	if in.TableNumber != nil && *in.TableNumber <= 0 {
		return nil, domain.ErrInvalidTable
	}

	var updated *entity.Order
	err := w.txRunner.RunOrders(ctx, func(orderRepo repository.OrderRepository) error {
		order, err := orderRepo.GetByIDForUpdate(ctx, in.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.IsPending() {
			return domain.ErrOrderNotPending
		}
		if in.TableNumber != nil {
			t, err := w.tables.GetByNumber(ctx, *in.TableNumber)
			if err != nil {
				return err
			}
			if t == nil {
				return domain.ErrInvalidTable
			}
			if t.IsOccupied() {
				return domain.ErrTableOccupied
			}
			n := t.TableNumber
			order.TableNumber = &n
		}
		order.Items = in.Items
		order.Total = in.Total
		if in.OrderType != "" {
			order.OrderType = in.OrderType
		}
		if in.Notes != nil {
			order.Notes = strings.TrimSpace(*in.Notes)
		}
		if err := orderRepo.Update(ctx, order); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	advCtx := context.WithoutCancel(ctx)
	var report AdvisoryReport
	if in.TableNumber != nil {
		report.Table = w.occupyTable(advCtx, updated.ID, *updated.TableNumber)
	}
	report.Notify = w.publish(advCtx, EventOrderUpdated, updated)

	w.log.Info().Int64("order_id", updated.ID).Msg("orden editada")
	return &OrderResult{Order: updated, Advisory: report}, nil
}

// VoidOrder anula una orden pendiente si la credencial es válida. La mesa no se libera.
func (w *Workflow) VoidOrder(ctx context.Context, in VoidOrderInput) (*entity.Order, error) {
	ctx, span := tracer.Start(ctx, "orders.VoidOrder", trace.WithAttributes(attribute.Int64("order.id", in.OrderID)))
	defer span.End()

	if w.authorizer == nil || !w.authorizer.Authorize(in.Credential) {
		w.log.Warn().Int64("order_id", in.OrderID).Msg("intento de anulación con credencial inválida")
		return nil, domain.ErrInvalidVoidCredential
	}

	var voided *entity.Order
	err := w.txRunner.RunOrders(ctx, func(orderRepo repository.OrderRepository) error {
		order, err := orderRepo.GetByIDForUpdate(ctx, in.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.IsPending() {
			return domain.ErrOrderNotPending
		}
		reason := strings.TrimSpace(in.Reason)
		if err := orderRepo.UpdateStatus(ctx, order.ID, entity.OrderStatusVoided, reason); err != nil {
			return err
		}
		order.Status = entity.OrderStatusVoided
		order.VoidReason = reason
		order.UpdatedAt = w.now()
		voided = order
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	metrics.RecordOrderTransition(entity.OrderStatusVoided)
	w.publish(context.WithoutCancel(ctx), EventOrderVoided, voided)
	w.log.Info().Int64("order_id", voided.ID).Msg("orden anulada")
	return voided, nil
}

// UpdateStatus fija cualquiera de los cinco estados válidos; no hay reglas de adyacencia.
// Una orden anulada es terminal y no admite cambios de estado.
func (w *Workflow) UpdateStatus(ctx context.Context, orderID int64, status string) (*entity.Order, error) {
	if !entity.IsValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: estado %q no permitido", domain.ErrInvalidInput, status)
	}

	var order *entity.Order
	err := w.txRunner.RunOrders(ctx, func(orderRepo repository.OrderRepository) error {
		cur, err := orderRepo.GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if cur == nil {
			return domain.ErrNotFound
		}
		if cur.Status == entity.OrderStatusVoided {
			return domain.ErrOrderVoided
		}
		if err := orderRepo.UpdateStatus(ctx, orderID, status, ""); err != nil {
			return err
		}
		cur.Status = status
		cur.UpdatedAt = w.now()
		order = cur
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordOrderTransition(status)
	w.publish(context.WithoutCancel(ctx), EventOrderStatusChanged, order)
	return order, nil
}

// GetOrder devuelve la orden o ErrNotFound.
func (w *Workflow) GetOrder(ctx context.Context, id int64) (*entity.Order, error) {
	order, err := w.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// ListOrders lista órdenes (más recientes primero) con filtro opcional de estado.
func (w *Workflow) ListOrders(ctx context.Context, status string, page dto.PageRequest) ([]*entity.Order, int, error) {
	if status != "" && status != entity.OrderStatusVoided && !entity.IsValidOrderStatus(status) {
		return nil, 0, domain.ErrInvalidInput
	}
	page.DefaultPage()
	return w.orderRepo.List(ctx, repository.OrderFilter{Status: status, Limit: page.Limit, Offset: page.Offset})
}

// KitchenTicket genera la comanda de cocina en PDF.
func (w *Workflow) KitchenTicket(ctx context.Context, id int64) ([]byte, error) {
	if w.tickets == nil {
		return nil, fmt.Errorf("kitchen ticket: renderer no configurado")
	}
	order, err := w.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	return w.tickets.RenderKitchenTicket(dto.OrderFromEntity(order))
}

func validateLines(items []entity.OrderItem, total decimal.Decimal) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: la orden no tiene líneas", domain.ErrInvalidInput)
	}
	if total.IsNegative() {
		return fmt.Errorf("%w: total negativo", domain.ErrInvalidInput)
	}
	for _, it := range items {
		if it.Quantity <= 0 || it.Price.IsNegative() {
			return fmt.Errorf("%w: cantidad o precio inválido en %q", domain.ErrInvalidInput, it.Name)
		}
		if it.ItemID != nil && *it.ItemID <= 0 {
			return fmt.Errorf("%w: artículo inválido en %q", domain.ErrInvalidInput, it.Name)
		}
	}
	return nil
}

func (w *Workflow) occupyTable(ctx context.Context, orderID int64, number int) StepOutcome {
	out := StepOutcome{Attempted: true}
	t, err := w.tables.SetStatus(ctx, number, entity.TableStatusOccupied)
	if err == nil && t == nil {
		err = domain.ErrInvalidTable
	}
	if err != nil {
		out.Err = err
		metrics.RecordAdvisoryFailure(metrics.StepTableOccupy)
		w.log.Warn().Err(err).Int64("order_id", orderID).Int("table_number", number).
			Msg("no se pudo marcar la mesa como ocupada")
	}
	return out
}

// consumeStock descuenta stock por cada línea con artículo. Cada ConsumeFIFO es una transacción
// independiente; los artículos distintos se procesan en paralelo.
func (w *Workflow) consumeStock(ctx context.Context, order *entity.Order) []StockOutcome {
	ref := strconv.FormatInt(order.ID, 10)
	outcomes := make([]StockOutcome, 0, len(order.Items))
	for _, it := range order.Items {
		if it.ItemID != nil {
			outcomes = append(outcomes, StockOutcome{ItemID: *it.ItemID, Result: inventory.ConsumptionResult{ItemID: *it.ItemID, Requested: it.Quantity}})
		}
	}
	if len(outcomes) == 0 {
		return nil
	}

	var g errgroup.Group
	g.SetLimit(maxStockWorkers)
	for i := range outcomes {
		g.Go(func() error {
			o := &outcomes[i]
			res, err := w.stock.ConsumeFIFO(ctx, o.ItemID, o.Result.Requested, ref)
			o.Result = res
			if err != nil {
				o.Err = err
				metrics.RecordAdvisoryFailure(metrics.StepStock)
				w.log.Error().Err(err).Int64("order_id", order.ID).Int64("item_id", o.ItemID).
					Msg("no se pudo descontar stock; la orden se mantiene")
				return nil
			}
			if res.Shortfall > 0 {
				w.log.Warn().Int64("order_id", order.ID).Int64("item_id", o.ItemID).
					Int("shortfall", res.Shortfall).Msg("stock insuficiente para la línea")
			}
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

func (w *Workflow) publish(ctx context.Context, eventType string, order *entity.Order) StepOutcome {
	out := StepOutcome{Attempted: true}
	ev := Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: w.now().UTC(),
		Order:      dto.OrderFromEntity(order),
	}
	if err := w.notifier.Publish(ctx, ev); err != nil {
		out.Err = err
		metrics.RecordAdvisoryFailure(metrics.StepNotify)
		w.log.Warn().Err(err).Int64("order_id", order.ID).Str("event", eventType).Msg("no se pudo publicar el evento")
	}
	return out
}
