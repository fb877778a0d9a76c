package anomaly

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grana/internal/model"
)

func feeOn(amount float64, date time.Time, desc string) model.Transaction {
	return txnOn(model.CategoryTarifas, amount, date, desc)
}

func TestFeeType_GroupsAcrossStatementNoise(t *testing.T) {
	assert.Equal(t, feeType("TARIFA MANUTENCAO CONTA 05/2026"), feeType("TARIFA MANUTENCAO CONTA 06/2026"))
}

func TestDetectUnexpectedFees_NewFeeType(t *testing.T) {
	day := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	txns := []model.Transaction{feeOn(25, day, "TARIFA DEVOLUCAO CHEQUE")}

	findings := DetectUnexpectedFees(txns)
	require.Len(t, findings, 1)
	assert.Equal(t, model.FindingUnexpectedFee, findings[0].Kind)
	assert.Equal(t, model.SeverityMedium, findings[0].Severity)
}

func TestDetectUnexpectedFees_SmallOneOffIgnored(t *testing.T) {
	day := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	txns := []model.Transaction{feeOn(15, day, "TARIFA DEVOLUCAO CHEQUE")}

	assert.Empty(t, DetectUnexpectedFees(txns))
}

func TestDetectUnexpectedFees_SpikeAboveOwnAverage(t *testing.T) {
	var txns []model.Transaction
	for month := 1; month <= 4; month++ {
		txns = append(txns, feeOn(10, time.Date(2026, time.Month(month), 5, 0, 0, 0, 0, time.UTC), "TARIFA MANUTENCAO CONTA"))
	}
	txns = append(txns, feeOn(70, time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC), "TARIFA MANUTENCAO CONTA"))

	findings := DetectUnexpectedFees(txns)
	require.Len(t, findings, 1)
	assert.Equal(t, model.SeverityHigh, findings[0].Severity)
	assert.InDelta(t, 70, findings[0].Amount, 0.001)
}

func TestDetectUnexpectedFees_SteadyFeeIsQuiet(t *testing.T) {
	var txns []model.Transaction
	for month := 1; month <= 4; month++ {
		txns = append(txns, feeOn(10, time.Date(2026, time.Month(month), 5, 0, 0, 0, 0, time.UTC), "TARIFA MANUTENCAO CONTA"))
	}

	assert.Empty(t, DetectUnexpectedFees(txns))
}

func TestDetectUnexpectedFees_IgnoresOtherCategories(t *testing.T) {
	day := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	txns := []model.Transaction{txnOn(model.CategoryCompras, 500, day, "LOJA MAGAZINE")}

	assert.Empty(t, DetectUnexpectedFees(txns))
}

func TestDetectUnexpectedFees_OrderStableAcrossTypes(t *testing.T) {
	day := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		feeOn(30, day, "TARIFA PACOTE SERVICOS"),
		feeOn(40, day, "ANUIDADE CARTAO GOLD"),
	}

	// Two new fee types at the same severity; type order must not depend on
	// map iteration.
	findings := DetectUnexpectedFees(txns)
	require.Len(t, findings, 2)
	assert.Contains(t, findings[0].Message, "anuidade cartao")
	assert.Contains(t, findings[1].Message, "tarifa pacote")
}
