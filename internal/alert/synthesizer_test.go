package alert

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grana/internal/model"
)

var alertNow = time.Date(2026, 6, 18, 15, 0, 0, 0, time.UTC)

func expenseAt(category model.Category, amount float64, date time.Time, desc string) model.Transaction {
	return model.Transaction{
		ID:          fmt.Sprintf("%s-%s", desc, date.Format("20060102150405")),
		Date:        date,
		Description: desc,
		Amount:      amount,
		Direction:   model.DirectionExpense,
		Category:    category,
	}
}

func findByKind(alerts []model.Alert, kind model.AlertKind) (model.Alert, bool) {
	for _, a := range alerts {
		if a.Kind == kind {
			return a, true
		}
	}
	return model.Alert{}, false
}

func TestSynthesize_ForecastNegativeIsCriticalAndSticky(t *testing.T) {
	in := Input{
		Metrics: model.MonthlyMetrics{
			Forecast: model.ForecastResult{
				ProjectedBalance: -200,
				WillGoNegative:   true,
				CrossingDate:     time.Date(2026, 6, 26, 0, 0, 0, 0, time.UTC),
			},
		},
		Now: alertNow,
	}

	alerts := Synthesize(context.Background(), in)
	a, ok := findByKind(alerts, model.AlertForecastNegative)
	require.True(t, ok)
	assert.Equal(t, model.SeverityCritical, a.Severity)
	assert.False(t, a.Dismissible)
	assert.Contains(t, a.Message, "26/06")
}

func TestSynthesize_HealthyForecastRaisesNothing(t *testing.T) {
	in := Input{
		Metrics: model.MonthlyMetrics{Forecast: model.ForecastResult{ProjectedBalance: 500}},
		Now:     alertNow,
	}

	assert.Empty(t, Synthesize(context.Background(), in))
}

func TestSynthesize_CategoryGoalDismissibility(t *testing.T) {
	tests := []struct {
		name            string
		spent           float64
		wantAlert       bool
		wantDismissible bool
	}{
		{"below warn ratio", 800, false, false},
		{"at ninety percent", 900, true, true},
		{"goal exceeded", 1050, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Input{
				Goals:  map[model.Category]float64{model.CategoryMercado: 1000},
				Salary: 5000,
				Now:    alertNow,
				Transactions: []model.Transaction{
					expenseAt(model.CategoryMercado, tt.spent, time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC), "SUPERMERCADO"),
				},
			}

			alerts := Synthesize(context.Background(), in)
			a, ok := findByKind(alerts, model.AlertCategoryCritical)
			require.Equal(t, tt.wantAlert, ok)
			if ok {
				assert.Equal(t, model.SeverityCritical, a.Severity)
				assert.Equal(t, tt.wantDismissible, a.Dismissible)
				assert.Equal(t, model.CategoryMercado, a.Category)
			}
		})
	}
}

func TestSynthesize_NightTransfersRunningHot(t *testing.T) {
	// Night transfers from earlier weeks so the weekly behavior checks
	// stay out of the way.
	var txns []model.Transaction
	for day := 1; day <= 3; day++ {
		txns = append(txns, expenseAt(model.CategoryPix, 300, time.Date(2026, 6, day, 22, 0, 0, 0, time.UTC), fmt.Sprintf("PIX NO %d", day)))
	}
	for day := 1; day <= 3; day++ {
		txns = append(txns, expenseAt(model.CategoryPix, 100, time.Date(2026, 6, day, 14, 0, 0, 0, time.UTC), fmt.Sprintf("PIX DIA %d", day)))
	}

	in := Input{Transactions: txns, Now: alertNow}
	alerts := Synthesize(context.Background(), in)

	a, ok := findByKind(alerts, model.AlertDangerousBehavior)
	require.True(t, ok)
	assert.Equal(t, model.SeverityHigh, a.Severity)
	assert.Equal(t, model.CategoryPix, a.Category)
	assert.True(t, a.Dismissible)
}

func TestSynthesize_LargePurchaseBurst(t *testing.T) {
	day := time.Date(2026, 6, 2, 10, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		expenseAt(model.CategoryCompras, 400, day, "LOJA A"),
		expenseAt(model.CategoryCompras, 350, day.Add(2*time.Hour), "LOJA B"),
		expenseAt(model.CategoryLazer, 200, day.Add(4*time.Hour), "SHOW"),
	}

	in := Input{Transactions: txns, Now: alertNow}
	alerts := Synthesize(context.Background(), in)

	a, ok := findByKind(alerts, model.AlertDangerousBehavior)
	require.True(t, ok)
	assert.Contains(t, a.Message, "2026-06-02")
}

func TestSynthesize_LargeProtectedPurchasesAreFine(t *testing.T) {
	day := time.Date(2026, 6, 2, 10, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		expenseAt(model.CategoryMoradia, 1200, day, "ALUGUEL"),
		expenseAt(model.CategorySaude, 400, day.Add(time.Hour), "HOSPITAL"),
		expenseAt(model.CategoryImpostos, 600, day.Add(2*time.Hour), "IPTU"),
	}

	in := Input{Transactions: txns, Now: alertNow}
	_, ok := findByKind(Synthesize(context.Background(), in), model.AlertDangerousBehavior)
	assert.False(t, ok)
}

func TestSynthesize_FalseIncome(t *testing.T) {
	windfall := model.Transaction{
		ID:          "windfall",
		Date:        time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC),
		Description: "PIX RECEBIDO HERANCA",
		Amount:      3000,
		Direction:   model.DirectionIncome,
		Category:    model.CategoryTransferenciaRecebida,
	}

	in := Input{
		Transactions: []model.Transaction{windfall},
		Metrics:      model.MonthlyMetrics{Forecast: model.ForecastResult{ProjectedBalance: -150, WillGoNegative: true}},
		Now:          alertNow,
	}

	alerts := Synthesize(context.Background(), in)
	a, ok := findByKind(alerts, model.AlertFalseIncome)
	require.True(t, ok)
	assert.Equal(t, model.SeverityCritical, a.Severity)
	assert.False(t, a.Dismissible)
}

func TestSynthesize_SalaryIsNeverFalseIncome(t *testing.T) {
	salary := model.Transaction{
		ID:          "payroll",
		Date:        time.Date(2026, 6, 5, 9, 0, 0, 0, time.UTC),
		Description: "PAGAMENTO SALARIO",
		Amount:      4000,
		Direction:   model.DirectionIncome,
		Category:    model.CategorySalario,
	}

	in := Input{
		Transactions: []model.Transaction{salary},
		Metrics:      model.MonthlyMetrics{Forecast: model.ForecastResult{ProjectedBalance: -150}},
		Now:          alertNow,
	}

	_, ok := findByKind(Synthesize(context.Background(), in), model.AlertFalseIncome)
	assert.False(t, ok)
}

func TestSynthesize_OrdersBySeverity(t *testing.T) {
	// Forecast negative (critical) plus a night-transfer pattern (high).
	var txns []model.Transaction
	for day := 1; day <= 3; day++ {
		txns = append(txns, expenseAt(model.CategoryPix, 300, time.Date(2026, 6, day, 22, 0, 0, 0, time.UTC), fmt.Sprintf("PIX NO %d", day)))
		txns = append(txns, expenseAt(model.CategoryPix, 100, time.Date(2026, 6, day, 14, 0, 0, 0, time.UTC), fmt.Sprintf("PIX DIA %d", day)))
	}

	in := Input{
		Transactions: txns,
		Metrics:      model.MonthlyMetrics{Forecast: model.ForecastResult{ProjectedBalance: -200, WillGoNegative: true}},
		Now:          alertNow,
	}

	alerts := Synthesize(context.Background(), in)
	require.GreaterOrEqual(t, len(alerts), 2)
	for i := 1; i < len(alerts); i++ {
		assert.GreaterOrEqual(t, alerts[i-1].Severity.Rank(), alerts[i].Severity.Rank())
	}
	assert.Equal(t, model.AlertForecastNegative, alerts[0].Kind)
}
