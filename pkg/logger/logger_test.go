package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONConServicioYComponente(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "info", Service: "pos", Output: &buf})

	orders := l.Component("orders")
	orders.Info().Int64("order_id", 7).Msg("orden creada")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "pos", line["service"])
	assert.Equal(t, "orders", line["component"])
	assert.Equal(t, "orden creada", line["message"])
	assert.EqualValues(t, 7, line["order_id"])
}

func TestNew_RespetaNivel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "WARN", Output: &buf})

	l.Info().Msg("no sale")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("sí sale")
	assert.Contains(t, buf.String(), "sí sale")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.ErrorLevel, parseLevel(" error "))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("desconocido"))
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Error().Msg("descartado")
	assert.Equal(t, zerolog.Disabled, l.Zerolog().GetLevel())
}
