package anomaly

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grana/internal/model"
)

func smallCharge(amount float64, date time.Time, desc string) model.Transaction {
	return txnOn(model.CategoryOutros, amount, date, desc)
}

func TestDetectHiddenRecurring_MonthlyCadence(t *testing.T) {
	txns := []model.Transaction{
		smallCharge(29.90, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), "CLUBE DO LIVRO"),
		smallCharge(29.90, time.Date(2026, 2, 4, 0, 0, 0, 0, time.UTC), "CLUBE DO LIVRO"),
		smallCharge(29.90, time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC), "CLUBE DO LIVRO"),
	}

	findings := DetectHiddenRecurring(txns)
	require.Len(t, findings, 1)
	assert.Equal(t, model.FindingHiddenRecurring, findings[0].Kind)
	assert.Equal(t, model.SeverityMedium, findings[0].Severity)
	assert.Contains(t, findings[0].Message, "monthly")
	assert.InDelta(t, 1, findings[0].Confidence, 0.001)
}

func TestDetectHiddenRecurring_WeeklyCadence(t *testing.T) {
	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	var txns []model.Transaction
	for i := 0; i < 4; i++ {
		txns = append(txns, smallCharge(19.90, start.AddDate(0, 0, 7*i), "LAVANDERIA EXPRESS"))
	}

	findings := DetectHiddenRecurring(txns)
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, "weekly")
}

func TestDetectHiddenRecurring_IrregularGapsAreQuiet(t *testing.T) {
	txns := []model.Transaction{
		smallCharge(29.90, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), "CLUBE DO LIVRO"),
		smallCharge(29.90, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), "CLUBE DO LIVRO"),
		smallCharge(29.90, time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC), "CLUBE DO LIVRO"),
	}

	assert.Empty(t, DetectHiddenRecurring(txns))
}

func TestDetectHiddenRecurring_ModerateVarianceNeedsMoreOccurrences(t *testing.T) {
	dates := []time.Time{
		time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC),
	}
	var txns []model.Transaction
	for _, d := range dates {
		txns = append(txns, smallCharge(29.90, d, "CLUBE DO LIVRO"))
	}
	assert.Empty(t, DetectHiddenRecurring(txns))

	// Two more occurrences at the same loose cadence cross the relaxed bar.
	txns = append(txns,
		smallCharge(29.90, time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC), "CLUBE DO LIVRO"),
		smallCharge(29.90, time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC), "CLUBE DO LIVRO"),
	)
	findings := DetectHiddenRecurring(txns)
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, "monthly")
}

func TestDetectHiddenRecurring_SkipsKnownSubscriptions(t *testing.T) {
	var txns []model.Transaction
	for month := 1; month <= 3; month++ {
		txns = append(txns, smallCharge(34.90, time.Date(2026, time.Month(month), 5, 0, 0, 0, 0, time.UTC), "NETFLIX.COM"))
	}
	assert.Empty(t, DetectHiddenRecurring(txns))
}

func TestDetectHiddenRecurring_SkipsSubscriptionCategory(t *testing.T) {
	var txns []model.Transaction
	for month := 1; month <= 3; month++ {
		txns = append(txns, txnOn(model.CategoryAssinaturas, 34.90, time.Date(2026, time.Month(month), 5, 0, 0, 0, 0, time.UTC), "CLUBE DO LIVRO"))
	}
	assert.Empty(t, DetectHiddenRecurring(txns))
}

func TestDetectHiddenRecurring_LargeAmountsAreNotHidden(t *testing.T) {
	var txns []model.Transaction
	for month := 1; month <= 3; month++ {
		txns = append(txns, smallCharge(250, time.Date(2026, time.Month(month), 5, 0, 0, 0, 0, time.UTC), "CLUBE DO LIVRO"))
	}
	assert.Empty(t, DetectHiddenRecurring(txns))
}

func TestDetectHiddenRecurring_GroupsOnRoundedAmount(t *testing.T) {
	txns := []model.Transaction{
		smallCharge(29.90, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), "CLUBE DO LIVRO"),
		smallCharge(30.10, time.Date(2026, 2, 4, 0, 0, 0, 0, time.UTC), "CLUBE DO LIVRO"),
		smallCharge(29.95, time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC), "CLUBE DO LIVRO"),
	}

	findings := DetectHiddenRecurring(txns)
	assert.Len(t, findings, 1)
}

func TestDetectHiddenRecurring_OrderStableAcrossGroups(t *testing.T) {
	txns := []model.Transaction{
		smallCharge(35.00, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), "LAVANDERIA EXPRESS"),
		smallCharge(35.00, time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC), "LAVANDERIA EXPRESS"),
		smallCharge(35.00, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), "LAVANDERIA EXPRESS"),
		smallCharge(29.90, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), "CLUBE DO LIVRO"),
		smallCharge(29.90, time.Date(2026, 2, 4, 0, 0, 0, 0, time.UTC), "CLUBE DO LIVRO"),
		smallCharge(29.90, time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC), "CLUBE DO LIVRO"),
	}

	// Both groups are monthly at medium severity; group order must not
	// depend on map iteration.
	findings := DetectHiddenRecurring(txns)
	require.Len(t, findings, 2)
	assert.Contains(t, findings[0].Message, "clube do livro")
	assert.Contains(t, findings[1].Message, "lavanderia express")
}
