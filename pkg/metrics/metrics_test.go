package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordStockConsumption_SumaConsumoYFaltante(t *testing.T) {
	beforeConsumed := testutil.ToFloat64(stockUnitsConsumed)
	beforeShort := testutil.ToFloat64(stockShortfallUnits)

	RecordStockConsumption(7, 0)
	RecordStockConsumption(3, 90)
	RecordStockConsumption(0, 0)

	assert.Equal(t, beforeConsumed+10, testutil.ToFloat64(stockUnitsConsumed))
	assert.Equal(t, beforeShort+90, testutil.ToFloat64(stockShortfallUnits))
}

func TestRecordAdvisoryFailure_PorPaso(t *testing.T) {
	before := testutil.ToFloat64(advisoryFailures.WithLabelValues(StepStock))

	RecordAdvisoryFailure(StepStock)
	RecordAdvisoryFailure(StepStock)
	RecordAdvisoryFailure(StepNotify)

	assert.Equal(t, before+2, testutil.ToFloat64(advisoryFailures.WithLabelValues(StepStock)))
}

func TestRegister_EsIdempotente(t *testing.T) {
	assert.NotPanics(t, func() {
		Register()
		Register()
	})
}
