package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grana/internal/model"
)

func expense(amount float64, date time.Time) model.Transaction {
	return model.Transaction{
		ID:          date.Format("20060102150405") + "-e",
		Date:        date,
		Description: "GASTO",
		Amount:      amount,
		Direction:   model.DirectionExpense,
		Category:    model.CategoryOutros,
	}
}

func income(amount float64, date time.Time) model.Transaction {
	return model.Transaction{
		ID:          date.Format("20060102150405") + "-i",
		Date:        date,
		Description: "ENTRADA",
		Amount:      amount,
		Direction:   model.DirectionIncome,
		Category:    model.CategoryTransferenciaRecebida,
	}
}

func TestComputeMonthlyMetrics_RunRateScenario(t *testing.T) {
	// Day 10 of a 30-day month, 500 spent at a steady 50/day, one 300
	// deposit: current balance 800, burn rate 50/day, 20 days remaining,
	// so the projection lands at -200.
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)

	var txns []model.Transaction
	for day := 1; day <= 10; day++ {
		txns = append(txns, expense(50, time.Date(2026, 6, day, 10, 0, 0, 0, time.UTC)))
	}
	txns = append(txns, income(300, time.Date(2026, 6, 5, 9, 0, 0, 0, time.UTC)))

	m := ComputeMonthlyMetrics(txns, 1000, now)

	assert.InDelta(t, 500, m.MonthExpenses, 0.001)
	assert.InDelta(t, 300, m.MonthIncome, 0.001)
	assert.InDelta(t, 800, m.CurrentBalance, 0.001)
	assert.InDelta(t, 50, m.BurnRate, 0.001)
	assert.InDelta(t, 50, m.WeeklyBurnRate, 0.001)
	assert.Equal(t, 20, m.DaysRemaining)

	assert.InDelta(t, -200, m.Forecast.ProjectedBalance, 0.001)
	assert.True(t, m.Forecast.WillGoNegative)

	// ceil(800 / 50) = 16 days until the crossing.
	assert.Equal(t, 16, m.Forecast.DaysUntilCrossing)
	assert.Equal(t, time.Date(2026, 6, 26, 0, 0, 0, 0, time.UTC), m.Forecast.CrossingDate)
}

func TestComputeMonthlyMetrics_ZeroBurnSignConsistency(t *testing.T) {
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	txns := []model.Transaction{income(300, time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC))}

	m := ComputeMonthlyMetrics(txns, 1000, now)

	assert.Zero(t, m.BurnRate)
	assert.InDelta(t, m.CurrentBalance, m.Forecast.ProjectedBalance, 0.001)
	assert.False(t, m.Forecast.WillGoNegative)
}

func TestComputeMonthlyMetrics_SequentialFoldBeforeMonthStart(t *testing.T) {
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)

	// History from previous months must be folded into the month-start
	// balance in chronological order.
	txns := []model.Transaction{
		expense(200, time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC)),
		income(500, time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC)),
		expense(100, time.Date(2026, 5, 25, 0, 0, 0, 0, time.UTC)),
	}

	m := ComputeMonthlyMetrics(txns, 1000, now)
	assert.InDelta(t, 1200, m.BalanceAtStart, 0.001)
	assert.InDelta(t, 1200, m.CurrentBalance, 0.001)
}

func TestComputeMonthlyMetrics_WeeklyWindowClampedToMonthStart(t *testing.T) {
	// On day 3 the trailing-7-day window must not reach into May.
	now := time.Date(2026, 6, 3, 12, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		expense(900, time.Date(2026, 5, 30, 0, 0, 0, 0, time.UTC)), // Outside the window
		expense(30, time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)),
		expense(30, time.Date(2026, 6, 2, 10, 0, 0, 0, time.UTC)),
		expense(30, time.Date(2026, 6, 3, 10, 0, 0, 0, time.UTC)),
	}

	m := ComputeMonthlyMetrics(txns, 1000, now)
	assert.InDelta(t, 30, m.WeeklyBurnRate, 0.001)
}

func TestComputeMonthlyMetrics_CrossingTodayWhenAlreadyNegative(t *testing.T) {
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		expense(1500, time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC)),
	}

	m := ComputeMonthlyMetrics(txns, 1000, now)
	require.True(t, m.Forecast.WillGoNegative)
	assert.Equal(t, time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC), m.Forecast.CrossingDate)
	assert.Zero(t, m.Forecast.DaysUntilCrossing)
}

func TestComputeMonthlyMetrics_BleedingRate(t *testing.T) {
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	var txns []model.Transaction
	for day := 1; day <= 10; day++ {
		txns = append(txns, expense(60, time.Date(2026, 6, day, 10, 0, 0, 0, time.UTC)))
	}
	txns = append(txns, income(900, time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)))

	m := ComputeMonthlyMetrics(txns, 2000, now)

	// Burn 60/day against a 30/day income allowance: bleeding 30/day.
	assert.InDelta(t, 30, m.BleedingRate, 0.001)
}

func TestComputeCategoryMetrics(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	spend := func(amount float64) model.Transaction {
		txn := expense(amount, time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC))
		txn.Category = model.CategoryMercado
		return txn
	}

	tests := []struct {
		name       string
		goal       float64
		amounts    []float64
		wantStatus model.CategoryStatus
	}{
		{"under goal", 1000, []float64{100, 200}, model.StatusOK},
		{"at eighty percent", 1000, []float64{800}, model.StatusRisk},
		{"at goal", 1000, []float64{1000}, model.StatusCritical},
		{"over goal", 1000, []float64{1200}, model.StatusCritical},
		{"zero goal flags any spend", 0, []float64{5}, model.StatusCritical},
		{"zero goal with no spend is ok", 0, nil, model.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var txns []model.Transaction
			for _, amount := range tt.amounts {
				txns = append(txns, spend(amount))
			}

			cm := ComputeCategoryMetrics(txns, model.CategoryMercado, tt.goal, 5000, now)
			assert.Equal(t, tt.wantStatus, cm.Status)
		})
	}
}

func TestComputeCategoryMetrics_PercentOfSalary(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	txn := expense(500, time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC))
	txn.Category = model.CategoryMercado

	cm := ComputeCategoryMetrics([]model.Transaction{txn}, model.CategoryMercado, 1000, 5000, now)
	assert.InDelta(t, 10, cm.PercentOfSalary, 0.001)
}
