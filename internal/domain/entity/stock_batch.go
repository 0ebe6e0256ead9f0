package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockBatch lote de stock de un artículo con su propia cantidad y vencimiento.
// Un lote existe solo mientras Quantity > 0; al llegar a cero se elimina.
type StockBatch struct {
	ID         int64
	ItemID     int64
	Quantity   int
	Expiry     time.Time
	UnitAmount *decimal.Decimal
	UnitLabel  string
	CreatedAt  time.Time
}

// ExpiresBefore indica si el lote vence antes de t (comparación por fecha).
func (b *StockBatch) ExpiresBefore(t time.Time) bool {
	return b.Expiry.Before(t)
}
