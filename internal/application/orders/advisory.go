package orders

import (
	"github.com/jhoicas/pos-restaurante/internal/application/dto"
	"github.com/jhoicas/pos-restaurante/internal/application/inventory"
)

// StepOutcome resultado de un paso best-effort. Attempted=false si el paso no aplicaba.
type StepOutcome struct {
	Attempted bool
	Err       error
}

// OK indica que el paso se ejecutó sin error.
func (s StepOutcome) OK() bool { return s.Attempted && s.Err == nil }

// StockOutcome consumo de stock de una línea de la orden.
type StockOutcome struct {
	ItemID int64
	Result inventory.ConsumptionResult
	Err    error
}

// AdvisoryReport resultado de los efectos posteriores a la operación principal.
// Sus fallos nunca invalidan la orden ya persistida.
type AdvisoryReport struct {
	Table  StepOutcome
	Stock  []StockOutcome
	Notify StepOutcome
}

// Failed indica si algún paso intentado falló.
func (r AdvisoryReport) Failed() bool {
	if r.Table.Attempted && r.Table.Err != nil {
		return true
	}
	if r.Notify.Attempted && r.Notify.Err != nil {
		return true
	}
	for _, s := range r.Stock {
		if s.Err != nil {
			return true
		}
	}
	return false
}

// ToDTO serializa el reporte para la respuesta HTTP.
func (r AdvisoryReport) ToDTO() dto.AdvisoryDTO {
	out := dto.AdvisoryDTO{Notified: r.Notify.OK()}
	if r.Table.Attempted {
		ok := r.Table.Err == nil
		out.TableOccupied = &ok
		if !ok {
			out.Warnings = append(out.Warnings, "no se pudo marcar la mesa como ocupada")
		}
	}
	for _, s := range r.Stock {
		c := dto.StockConsumptionDTO{
			ItemID:    s.ItemID,
			Requested: s.Result.Requested,
			Consumed:  s.Result.Consumed,
			Shortfall: s.Result.Shortfall,
		}
		if s.Err != nil {
			c.Error = s.Err.Error()
			out.Warnings = append(out.Warnings, "no se pudo descontar stock de un artículo")
		} else if s.Result.Shortfall > 0 {
			out.Warnings = append(out.Warnings, "stock insuficiente para un artículo; se vendió igual")
		}
		out.Stock = append(out.Stock, c)
	}
	return out
}
