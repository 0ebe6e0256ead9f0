package entity

import "time"

// Motivos de movimiento de lote.
const (
	MovementReceive = "receive" // entrada de un lote nuevo
	MovementConsume = "consume" // consumo FIFO por venta
	MovementDiscard = "discard" // baja por merma o vencimiento
)

// StockMovement registro inmutable de un cambio sobre un lote.
// Delta es positivo en entradas y negativo en consumos/bajas.
type StockMovement struct {
	ID        int64
	BatchID   int64
	ItemID    int64
	Delta     int
	Reason    string
	Reference string // id de orden u otra referencia
	CreatedAt time.Time
}
