package tables_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-restaurante/internal/application/tables"
	"github.com/jhoicas/pos-restaurante/internal/domain"
	"github.com/jhoicas/pos-restaurante/internal/domain/entity"
	"github.com/jhoicas/pos-restaurante/internal/infrastructure/memory"
)

func newRegistry(t *testing.T, count int) (*tables.Registry, *memory.DiningTableRepo) {
	t.Helper()
	repo := memory.NewDiningTableRepository(memory.NewStore())
	reg := tables.NewRegistry(repo)
	_, err := reg.Seed(context.Background(), count)
	require.NoError(t, err)
	return reg, repo
}

func TestSeed_NumerosContiguosDesdeUno(t *testing.T) {
	reg, _ := newRegistry(t, 5)

	list, err := reg.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 5)
	for i, tb := range list {
		assert.Equal(t, i+1, tb.TableNumber)
		assert.Equal(t, entity.TableStatusAvailable, tb.Status)
	}
}

func TestSeed_NoResiembraSiYaHayMesas(t *testing.T) {
	reg, _ := newRegistry(t, 3)
	ctx := context.Background()

	_, err := reg.SetStatus(ctx, 2, entity.TableStatusOccupied)
	require.NoError(t, err)

	seeded, err := reg.Seed(ctx, 40)
	require.NoError(t, err)
	assert.False(t, seeded, "el registro no debe resembrarse")

	list, _ := reg.List(ctx)
	assert.Len(t, list, 3)
	tb, _ := reg.GetByNumber(ctx, 2)
	assert.True(t, tb.IsOccupied(), "el estado existente se conserva")
}

func TestGetByNumber_Desconocida(t *testing.T) {
	reg, _ := newRegistry(t, 3)

	tb, err := reg.GetByNumber(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, tb)

	tb, err = reg.SetStatus(context.Background(), 99, entity.TableStatusOccupied)
	require.NoError(t, err)
	assert.Nil(t, tb, "SetStatus sobre mesa desconocida devuelve nil")
}

func TestSetStatus_EstadoInvalido(t *testing.T) {
	reg, _ := newRegistry(t, 1)

	_, err := reg.SetStatus(context.Background(), 1, "reserved")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSetStatus_SobrescrituraIncondicional(t *testing.T) {
	reg, _ := newRegistry(t, 1)
	ctx := context.Background()

	for _, s := range []string{entity.TableStatusOccupied, entity.TableStatusOccupied, entity.TableStatusAvailable} {
		tb, err := reg.SetStatus(ctx, 1, s)
		require.NoError(t, err)
		assert.Equal(t, s, tb.Status)
	}
}

func TestToggle_AlternaEstado(t *testing.T) {
	reg, _ := newRegistry(t, 2)
	ctx := context.Background()

	tb, err := reg.Toggle(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, entity.TableStatusOccupied, tb.Status)

	tb, err = reg.Toggle(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, entity.TableStatusAvailable, tb.Status)

	tb, err = reg.Toggle(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, tb)
}

// Toggle lee y escribe sin bloqueo. Dos toggles que leen el mismo estado antes de escribir
// dejan la mesa ocupada en lugar de volver a available: se acepta last-writer-wins.
func TestToggle_LastWriterWinsSinBloqueo(t *testing.T) {
	reg, repo := newRegistry(t, 1)
	ctx := context.Background()

	// Simula dos lectores concurrentes que vieron "available".
	seenA, _ := reg.GetByNumber(ctx, 1)
	seenB, _ := reg.GetByNumber(ctx, 1)
	require.False(t, seenA.IsOccupied())
	require.False(t, seenB.IsOccupied())

	_, err := repo.SetStatus(ctx, 1, entity.TableStatusOccupied)
	require.NoError(t, err)
	_, err = repo.SetStatus(ctx, 1, entity.TableStatusOccupied)
	require.NoError(t, err)

	tb, _ := reg.GetByNumber(ctx, 1)
	assert.Equal(t, entity.TableStatusOccupied, tb.Status,
		"dos toggles intercalados no se compensan: queda el último valor escrito")
}
