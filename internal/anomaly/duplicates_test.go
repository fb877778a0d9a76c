package anomaly

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grana/internal/model"
)

func TestDetectDuplicateCharges_SameDayIsCritical(t *testing.T) {
	day := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		txnOn(model.CategoryAlimentacao, 45.90, day, "IFOOD *RESTAURANTE A"),
		txnOn(model.CategoryAlimentacao, 45.90, day.Add(2*time.Hour), "IFOOD *RESTAURANTE B"),
	}

	findings := DetectDuplicateCharges(txns)
	require.Len(t, findings, 1)
	assert.Equal(t, model.FindingDuplicateCharge, findings[0].Kind)
	assert.Equal(t, model.SeverityCritical, findings[0].Severity)
}

func TestDetectDuplicateCharges_NextDayWithinWindowIsHigh(t *testing.T) {
	day := time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		txnOn(model.CategoryCompras, 99.99, day, "LOJA MAGAZINE"),
		txnOn(model.CategoryCompras, 99.99, day.Add(10*time.Hour), "LOJA MAGAZINE"),
	}

	findings := DetectDuplicateCharges(txns)
	require.Len(t, findings, 1)
	assert.Equal(t, model.SeverityHigh, findings[0].Severity)
}

func TestDetectDuplicateCharges_FarApartIsQuiet(t *testing.T) {
	day := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		txnOn(model.CategoryCompras, 99.99, day, "LOJA MAGAZINE"),
		txnOn(model.CategoryCompras, 99.99, day.AddDate(0, 0, 3), "LOJA MAGAZINE"),
	}

	assert.Empty(t, DetectDuplicateCharges(txns))
}

func TestDetectDuplicateCharges_DifferentAmountsAreQuiet(t *testing.T) {
	day := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		txnOn(model.CategoryCompras, 99.99, day, "LOJA MAGAZINE"),
		txnOn(model.CategoryCompras, 89.99, day.Add(time.Hour), "LOJA MAGAZINE"),
	}

	assert.Empty(t, DetectDuplicateCharges(txns))
}

func TestDetectDuplicateCharges_OrderStableAcrossGroups(t *testing.T) {
	day := time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		txnOn(model.CategoryCompras, 50.00, day, "LAVA RAPIDO CENTRO"),
		txnOn(model.CategoryCompras, 50.00, day.Add(10*time.Hour), "LAVA RAPIDO CENTRO"),
		txnOn(model.CategoryCompras, 35.00, day, "BARBEARIA DO ZE"),
		txnOn(model.CategoryCompras, 35.00, day.Add(10*time.Hour), "BARBEARIA DO ZE"),
	}

	// Both pairs are high severity; group order must not depend on map
	// iteration.
	findings := DetectDuplicateCharges(txns)
	require.Len(t, findings, 2)
	assert.Contains(t, findings[0].Message, "BARBEARIA")
	assert.Contains(t, findings[1].Message, "LAVA RAPIDO")
}
