// Package metrics computes month-to-date aggregates and the end-of-month
// balance forecast. All functions are pure folds over the transaction set;
// "today" is passed in explicitly so results are reproducible.
package metrics

import (
	"math"
	"sort"
	"time"

	"grana/internal/model"
)

// ComputeMonthlyMetrics folds the full transaction history into the current
// month's view. The fold is sequential from the starting balance because that
// balance is defined as of the earliest known statement: transactions before
// month start must be applied in order, not summed via shortcut.
func ComputeMonthlyMetrics(transactions []model.Transaction, startingBalance float64, now time.Time) model.MonthlyMetrics {
	sorted := make([]model.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	endOfToday := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())

	balanceAtStart := startingBalance
	var monthIncome, monthExpenses float64

	for _, txn := range sorted {
		switch {
		case txn.Date.Before(monthStart):
			balanceAtStart += txn.SignedAmount()
		case !txn.Date.After(endOfToday):
			if txn.Direction == model.DirectionIncome {
				monthIncome += txn.Amount
			} else {
				monthExpenses += txn.Amount
			}
		}
	}

	currentBalance := balanceAtStart + monthIncome - monthExpenses

	daysElapsed := now.Day()
	if daysElapsed < 1 {
		daysElapsed = 1
	}
	burnRate := monthExpenses / float64(daysElapsed)

	weeklyBurn := weeklyBurnRate(sorted, monthStart, now)
	bleedingRate := burnRate - monthIncome/30

	daysInMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()
	daysRemaining := daysInMonth - now.Day()

	m := model.MonthlyMetrics{
		CurrentBalance: currentBalance,
		BalanceAtStart: balanceAtStart,
		MonthIncome:    monthIncome,
		MonthExpenses:  monthExpenses,
		BurnRate:       burnRate,
		WeeklyBurnRate: weeklyBurn,
		BleedingRate:   bleedingRate,
		DaysElapsed:    daysElapsed,
		DaysRemaining:  daysRemaining,
	}
	m.Forecast = forecast(currentBalance, burnRate, weeklyBurn, daysRemaining, now)
	return m
}

// weeklyBurnRate averages expenses over the trailing seven days, with the
// window clamped so it never reaches into the previous month.
func weeklyBurnRate(sorted []model.Transaction, monthStart, now time.Time) float64 {
	windowStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -6)
	if windowStart.Before(monthStart) {
		windowStart = monthStart
	}
	endOfToday := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())

	windowDays := int(endOfToday.Sub(windowStart).Hours()/24) + 1
	if windowDays < 1 {
		windowDays = 1
	}

	var total float64
	for _, txn := range sorted {
		if txn.Direction != model.DirectionExpense {
			continue
		}
		if txn.Date.Before(windowStart) || txn.Date.After(endOfToday) {
			continue
		}
		total += txn.Amount
	}
	return total / float64(windowDays)
}

// forecast projects the end-of-month balance from the current balance and
// run rates. The weekly rate reacts faster to habit changes than the monthly
// one, so it drives the projection when available.
func forecast(currentBalance, burnRate, weeklyBurn float64, daysRemaining int, now time.Time) model.ForecastResult {
	dailyRate := weeklyBurn
	if dailyRate <= 0 {
		dailyRate = burnRate
	}

	projected := currentBalance - dailyRate*float64(daysRemaining)

	result := model.ForecastResult{ProjectedBalance: projected}
	if projected >= 0 || burnRate <= 0 {
		return result
	}

	result.WillGoNegative = true
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if currentBalance <= 0 {
		result.CrossingDate = today
		return result
	}

	days := int(math.Ceil(currentBalance / burnRate))
	if days > daysRemaining {
		days = daysRemaining
	}
	result.DaysUntilCrossing = days
	result.CrossingDate = today.AddDate(0, 0, days)
	return result
}

// ComputeCategoryMetrics totals this month's spend for one category and
// grades it against the configured goal. A zero goal means the budget was
// never set: any spend at all is flagged critical rather than passed.
func ComputeCategoryMetrics(transactions []model.Transaction, category model.Category, goal, salary float64, now time.Time) model.CategoryMetrics {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	endOfToday := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())

	var total float64
	for _, txn := range transactions {
		if txn.Direction != model.DirectionExpense || txn.Category != category {
			continue
		}
		if txn.Date.Before(monthStart) || txn.Date.After(endOfToday) {
			continue
		}
		total += txn.Amount
	}

	cm := model.CategoryMetrics{
		Category:   category,
		TotalSpent: total,
		Goal:       goal,
		Status:     model.StatusOK,
	}
	if salary > 0 {
		cm.PercentOfSalary = total / salary * 100
	}

	switch {
	case goal <= 0:
		if total > 0 {
			cm.Status = model.StatusCritical
		}
	case total >= goal:
		cm.Status = model.StatusCritical
	case total >= 0.8*goal:
		cm.Status = model.StatusRisk
	}
	return cm
}
