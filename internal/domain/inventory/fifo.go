package inventory

import "github.com/jhoicas/pos-restaurante/internal/domain/entity"

// BatchChange efecto de un consumo sobre un lote.
type BatchChange struct {
	BatchID     int64
	Consumed    int
	NewQuantity int
	Delete      bool // el lote quedó en cero y debe eliminarse
}

// Plan resultado de planificar un consumo FIFO.
type Plan struct {
	Changes   []BatchChange
	Consumed  int
	Shortfall int // unidades solicitadas que no había en stock
}

// PlanConsumption calcula qué lotes se consumen para cubrir qty (servicio de dominio, sin I/O).
// batches debe venir ordenado por (vencimiento asc, id asc): ese orden es el orden de consumo.
// qty <= 0 devuelve un plan vacío. Si no alcanza el stock se consume todo y el faltante queda en Shortfall.
func PlanConsumption(batches []*entity.StockBatch, qty int) Plan {
	var p Plan
	if qty <= 0 {
		return p
	}
	remaining := qty
	for _, b := range batches {
		if remaining == 0 {
			break
		}
		if b.Quantity <= 0 {
			continue
		}
		take := min(remaining, b.Quantity)
		left := b.Quantity - take
		p.Changes = append(p.Changes, BatchChange{
			BatchID:     b.ID,
			Consumed:    take,
			NewQuantity: left,
			Delete:      left == 0,
		})
		p.Consumed += take
		remaining -= take
	}
	p.Shortfall = remaining
	return p
}

// SortKeyLess orden FIFO/FEFO de lotes: vencimiento ascendente y, a igual fecha, id ascendente.
func SortKeyLess(a, b *entity.StockBatch) bool {
	if !a.Expiry.Equal(b.Expiry) {
		return a.Expiry.Before(b.Expiry)
	}
	return a.ID < b.ID
}
