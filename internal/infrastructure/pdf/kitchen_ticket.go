// Package pdf genera la comanda de cocina de una orden.
//
// Layout (A5):
//
//	┌───────────────────────────────────────┐
//	│  COMANDA #id            Tipo / Mesa    │
//	│  ────────────────────────────────────  │
//	│  Cant | Producto                       │
//	│  ────────────────────────────────────  │
//	│  Notas                                 │
//	│  Total + QR con el número de orden     │
//	└───────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-restaurante/internal/application/dto"
	"github.com/jhoicas/pos-restaurante/internal/application/orders"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 140, Green: 30, Blue: 30}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var orderTypeLabels = map[string]string{
	"dine-in":  "EN MESA",
	"takeout":  "PARA LLEVAR",
	"delivery": "DOMICILIO",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// KitchenTicketGenerator implementa orders.TicketRenderer usando Maroto v2.
type KitchenTicketGenerator struct {
	restaurant string
}

var _ orders.TicketRenderer = (*KitchenTicketGenerator)(nil)

// NewKitchenTicketGenerator construye el generador. restaurant aparece como autor del PDF.
func NewKitchenTicketGenerator(restaurant string) *KitchenTicketGenerator {
	return &KitchenTicketGenerator{restaurant: restaurant}
}

// RenderKitchenTicket genera la comanda y devuelve sus bytes.
func (g *KitchenTicketGenerator) RenderKitchenTicket(order dto.OrderResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle(fmt.Sprintf("Comanda #%d", order.ID), true).
		WithAuthor(nonEmpty(g.restaurant, "POS"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(itemsHeaderRow())
	m.AddRows(itemRows(order.Items)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if order.Notes != "" {
		m.AddRows(notesRow(order.Notes))
	}
	m.AddRows(footerRow(order))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comanda: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: número de orden (izq) y tipo/mesa/hora (der).
func headerRow(order dto.OrderResponse) core.Row {
	destino := nonEmpty(orderTypeLabels[order.OrderType], order.OrderType)
	if order.TableNumber != nil {
		destino += " · MESA " + strconv.Itoa(*order.TableNumber)
	}
	return row.New(18).Add(
		col.New(6).Add(
			text.New(fmt.Sprintf("COMANDA #%d", order.ID), props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Estado: "+order.Status, props.Text{
				Size: 8, Top: 10, Color: colorGray,
			}),
		),
		col.New(6).Add(
			text.New(destino, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New(order.CreatedAt.Local().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

func itemsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: a,
			Color: colorWhite, Top: 1.5, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h("Cant.", 2, align.Center),
		h("Producto", 10, align.Left),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// itemRows: una fila por línea, la cantidad en grande para la cocina.
func itemRows(items []dto.OrderItemDTO) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(8).Add(
			col.New(2).Add(text.New(
				strconv.Itoa(it.Quantity),
				props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Center, Top: 1},
			)),
			col.New(10).Add(text.New(
				it.Name,
				props.Text{Size: 11, Align: align.Left, Top: 1, Left: 1},
			)),
		))
	}
	return result
}

func notesRow(notes string) core.Row {
	return row.New(14).Add(col.New(12).Add(
		text.New("NOTAS", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}),
		text.New(notes, props.Text{Size: 10, Top: 6}),
	))
}

// footerRow: total (izq) y QR con el número de orden (der).
func footerRow(order dto.OrderResponse) core.Row {
	return row.New(30).Add(
		col.New(8).Add(
			text.New("Total: $"+formatMoney(order.Total), props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 4,
			}),
			text.New(nonEmpty(order.CreatedBy, "—"), props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
		),
		col.New(4).Add(code.NewQr("ORDER-"+strconv.FormatInt(order.ID, 10), props.Rect{
			Percent: 90,
			Center:  true,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formatea con dos decimales y puntos de miles.
// Ej: 25000 → "25.000,00", 1234.5 → "1.234,50"
func formatMoney(d decimal.Decimal) string {
	neg := d.IsNegative()
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]

	n := len(intPart)
	buf := make([]byte, 0, n+n/3+4)
	if neg {
		buf = append(buf, '-')
	}
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	buf = append(buf, ',')
	buf = append(buf, frac...)
	return string(buf)
}
