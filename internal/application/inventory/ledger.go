package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jhoicas/pos-restaurante/internal/domain"
	"github.com/jhoicas/pos-restaurante/internal/domain/entity"
	domaininv "github.com/jhoicas/pos-restaurante/internal/domain/inventory"
	"github.com/jhoicas/pos-restaurante/internal/domain/repository"
	"github.com/jhoicas/pos-restaurante/pkg/metrics"
)

var tracer = otel.Tracer("github.com/jhoicas/pos-restaurante/internal/application/inventory")

// StockLedger libro de lotes por artículo: entradas, bajas y consumo FIFO/FEFO.
type StockLedger struct {
	txRunner  TxRunner
	itemRepo  repository.InventoryItemRepository
	batchRepo repository.StockBatchRepository
}

// NewStockLedger construye el libro de stock.
func NewStockLedger(
	txRunner TxRunner,
	itemRepo repository.InventoryItemRepository,
	batchRepo repository.StockBatchRepository,
) *StockLedger {
	return &StockLedger{
		txRunner:  txRunner,
		itemRepo:  itemRepo,
		batchRepo: batchRepo,
	}
}

// AddBatchInput entrada para registrar un lote nuevo.
type AddBatchInput struct {
	ItemID     int64
	Quantity   int
	Expiry     time.Time
	UnitAmount *decimal.Decimal
	UnitLabel  string
}

// ConsumptionResult resultado de un ConsumeFIFO. Shortfall > 0 no es un error.
type ConsumptionResult struct {
	ItemID    int64
	Requested int
	Consumed  int
	Shortfall int
	Changes   []domaininv.BatchChange
}

// AddBatch inserta un lote y registra el movimiento de entrada en la misma transacción.
func (l *StockLedger) AddBatch(ctx context.Context, in AddBatchInput) (*entity.StockBatch, error) {
	if in.ItemID <= 0 || in.Quantity <= 0 || in.Expiry.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitAmount != nil && !in.UnitAmount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	item, err := l.itemRepo.GetByID(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: el artículo %d no existe", domain.ErrInvalidInput, in.ItemID)
	}

	batch := &entity.StockBatch{
		ItemID:     in.ItemID,
		Quantity:   in.Quantity,
		Expiry:     truncateDay(in.Expiry),
		UnitAmount: in.UnitAmount,
		UnitLabel:  strings.TrimSpace(in.UnitLabel),
		CreatedAt:  time.Now(),
	}
	err = l.txRunner.Run(ctx, func(batchRepo repository.StockBatchRepository, movRepo repository.StockMovementRepository) error {
		if err := batchRepo.Create(ctx, batch); err != nil {
			return err
		}
		return movRepo.Create(ctx, &entity.StockMovement{
			BatchID: batch.ID,
			ItemID:  batch.ItemID,
			Delta:   batch.Quantity,
			Reason:  entity.MovementReceive,
		})
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}

// ListBatches devuelve los lotes del artículo en orden de consumo (vencimiento asc, id asc).
func (l *StockLedger) ListBatches(ctx context.Context, itemID int64) ([]*entity.StockBatch, error) {
	return l.batchRepo.ListByItem(ctx, itemID)
}

// DiscardBatch elimina un lote completo (merma o vencimiento) sin tocar otros lotes.
func (l *StockLedger) DiscardBatch(ctx context.Context, batchID int64) error {
	err := l.txRunner.Run(ctx, func(batchRepo repository.StockBatchRepository, movRepo repository.StockMovementRepository) error {
		b, err := batchRepo.GetByID(ctx, batchID)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		if err := batchRepo.Delete(ctx, b.ID); err != nil {
			return err
		}
		return movRepo.Create(ctx, &entity.StockMovement{
			BatchID: b.ID,
			ItemID:  b.ItemID,
			Delta:   -b.Quantity,
			Reason:  entity.MovementDiscard,
		})
	})
	if err != nil {
		return err
	}
	metrics.RecordBatchDiscarded()
	return nil
}

// ConsumeFIFO descuenta quantity unidades del artículo recorriendo sus lotes en orden FIFO/FEFO.
// Los lotes del artículo quedan bloqueados durante toda la transacción: dos consumos del mismo
// artículo se serializan. Un lote que llega a cero se elimina. Si el stock no alcanza se consume
// todo lo disponible y el faltante se informa en el resultado. quantity <= 0 no hace nada.
// Cualquier error deja todos los lotes como estaban.
func (l *StockLedger) ConsumeFIFO(ctx context.Context, itemID int64, quantity int, reference string) (ConsumptionResult, error) {
	res := ConsumptionResult{ItemID: itemID, Requested: quantity}
	if quantity <= 0 {
		return res, nil
	}

	ctx, span := tracer.Start(ctx, "inventory.ConsumeFIFO")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("item.id", itemID),
		attribute.Int("quantity", quantity),
		attribute.String("reference", reference),
	)

	var plan domaininv.Plan
	err := l.txRunner.Run(ctx, func(batchRepo repository.StockBatchRepository, movRepo repository.StockMovementRepository) error {
		batches, err := batchRepo.ListByItemForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		plan = domaininv.PlanConsumption(batches, quantity)
		for _, ch := range plan.Changes {
			if ch.Delete {
				err = batchRepo.Delete(ctx, ch.BatchID)
			} else {
				err = batchRepo.UpdateQuantity(ctx, ch.BatchID, ch.NewQuantity)
			}
			if err != nil {
				return err
			}
			if err := movRepo.Create(ctx, &entity.StockMovement{
				BatchID:   ch.BatchID,
				ItemID:    itemID,
				Delta:     -ch.Consumed,
				Reason:    entity.MovementConsume,
				Reference: reference,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "consume fifo")
		return res, fmt.Errorf("consume fifo item %d: %w", itemID, err)
	}

	res.Consumed = plan.Consumed
	res.Shortfall = plan.Shortfall
	res.Changes = plan.Changes
	span.SetAttributes(attribute.Int("consumed", res.Consumed), attribute.Int("shortfall", res.Shortfall))
	metrics.RecordStockConsumption(res.Consumed, res.Shortfall)
	return res, nil
}

// CurrentStock suma de cantidades de los lotes del artículo.
func (l *StockLedger) CurrentStock(ctx context.Context, itemID int64) (int, error) {
	batches, err := l.batchRepo.ListByItem(ctx, itemID)
	if err != nil {
		return 0, err
	}
	return sumQuantities(batches), nil
}

func sumQuantities(batches []*entity.StockBatch) int {
	total := 0
	for _, b := range batches {
		total += b.Quantity
	}
	return total
}

// truncateDay normaliza a fecha (UTC, 00:00): el vencimiento se compara por día.
func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
