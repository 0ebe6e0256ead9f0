package pdf

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-restaurante/internal/application/dto"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":         "0,00",
		"999":       "999,00",
		"25000":     "25.000,00",
		"1234.5":    "1.234,50",
		"1000000":   "1.000.000,00",
		"-4500.255": "-4.500,26",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestRenderKitchenTicket_GeneraPDF(t *testing.T) {
	mesa := 7
	id := int64(3)
	order := dto.OrderResponse{
		ID: 42,
		Items: []dto.OrderItemDTO{
			{ID: &id, Name: "Sisig", Quantity: 2, Price: decimal.NewFromInt(180)},
			{Name: "Arroz", Quantity: 3, Price: decimal.NewFromInt(25)},
		},
		OrderType:   "dine-in",
		TableNumber: &mesa,
		Status:      "pending",
		Total:       decimal.NewFromInt(435),
		Notes:       "sin cebolla",
		CreatedBy:   "mesero1",
		CreatedAt:   time.Date(2024, 7, 2, 12, 30, 0, 0, time.UTC),
	}

	g := NewKitchenTicketGenerator("Restaurante")
	b, err := g.RenderKitchenTicket(order)
	require.NoError(t, err)
	require.NotEmpty(t, b)
	assert.Equal(t, "%PDF", string(b[:4]))
}

func TestRenderKitchenTicket_SinMesaNiNotas(t *testing.T) {
	g := NewKitchenTicketGenerator("")
	b, err := g.RenderKitchenTicket(dto.OrderResponse{
		ID:        1,
		Items:     []dto.OrderItemDTO{{Name: "Café", Quantity: 1, Price: decimal.NewFromInt(60)}},
		OrderType: "takeout",
		Status:    "pending",
		Total:     decimal.NewFromInt(60),
	})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(b[:4]))
}
