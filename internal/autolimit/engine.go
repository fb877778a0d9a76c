// Package autolimit derives per-category spending ceilings from a trailing
// three-month window of transactions.
package autolimit

import (
	"fmt"
	"math"
	"time"

	"grana/internal/model"
	"grana/internal/rules"
)

// Tuning constants for limit synthesis.
const (
	trimFactor          = 0.8  // Base limits sit 20% under the historical average
	austerityMultiplier = 0.85 // Applied globally when last month closed in the red
	growthCap           = 1.1  // Healthy months may lift limits at most 10% above average
	dailyDivisor        = 1.8  // Softens the top driver's daily cap
	windowMonths        = 3
	driverWindowDays    = 60

	// Behavioral limit tuning.
	largePurchase        = 150.0
	singleTxnCeiling     = 300.0
	singleTxnWeeklyShare = 0.15
	nightShareThreshold  = 0.30
	falseIncomeThreshold = 1000.0
)

// salaryCapPercent caps each category's monthly limit as a fraction of
// salary. Categories not listed use capDefault.
var salaryCapPercent = map[model.Category]float64{
	model.CategoryMercado:     0.30,
	model.CategoryAlimentacao: 0.15,
	model.CategoryTransporte:  0.10,
	model.CategoryLazer:       0.10,
	model.CategoryCompras:     0.10,
	model.CategoryAssinaturas: 0.05,
}

const capDefault = 0.20

// protectedCategories are essentials that must never be selected as the top
// spending driver nor suggested for cuts.
var protectedCategories = map[model.Category]bool{
	model.CategoryMoradia:  true,
	model.CategoryContas:   true,
	model.CategoryDividas:  true,
	model.CategoryImpostos: true,
	model.CategoryTarifas:  true,
	model.CategorySaude:    true,
}

// behavioralCategories get habit-level caps in addition to amount limits.
var behavioralCategories = map[model.Category]bool{
	model.CategoryAlimentacao: true,
	model.CategoryLazer:       true,
	model.CategoryCompras:     true,
	model.CategoryPix:         true,
}

// IsProtected reports whether a category is exempt from suggested cuts.
func IsProtected(c model.Category) bool {
	return protectedCategories[c]
}

// categoryHistory is the bucketed view of one category's trailing window.
type categoryHistory struct {
	weekTotals   map[string]float64 // ISO year-week -> spend
	monthTotals  map[string]float64 // calendar year-month -> spend
	transactions []model.Transaction
	total        float64
	last60Total  float64
}

// ComputeAutoLimits derives a limit suggestion for every requested category
// from the trailing three months of history. Salary caps, austerity, growth
// caps, and essential-category protection follow the fixed policy tables
// above.
func ComputeAutoLimits(transactions []model.Transaction, categories []model.Category, salary, startingBalance float64, now time.Time) map[model.Category]model.AutoLimit {
	windowStart := now.AddDate(0, -windowMonths, 0)
	driverStart := now.AddDate(0, 0, -driverWindowDays)

	histories := make(map[model.Category]*categoryHistory, len(categories))
	for _, c := range categories {
		histories[c] = &categoryHistory{
			weekTotals:  make(map[string]float64),
			monthTotals: make(map[string]float64),
		}
	}

	for _, txn := range transactions {
		if txn.Direction != model.DirectionExpense || txn.Date.Before(windowStart) || txn.Date.After(now) {
			continue
		}
		h, ok := histories[txn.Category]
		if !ok {
			continue
		}
		h.transactions = append(h.transactions, txn)
		h.total += txn.Amount
		h.weekTotals[isoWeekKey(txn.Date)] += txn.Amount
		h.monthTotals[txn.Date.Format("2006-01")] += txn.Amount
		if !txn.Date.Before(driverStart) {
			h.last60Total += txn.Amount
		}
	}

	austerity, growthAllowed := monthlyPosture(transactions, startingBalance, now)
	topDriver := largestUnprotectedDriver(histories)

	limits := make(map[model.Category]model.AutoLimit, len(categories))
	for _, c := range categories {
		h := histories[c]
		limit := buildLimit(c, h, salary, austerity, growthAllowed)

		if c == topDriver && h.last60Total > 0 {
			limit.DailyLimit = (h.last60Total / driverWindowDays) / dailyDivisor
			limit.HasDailyLimit = true
		}
		if behavioralCategories[c] {
			b := behavioralLimits(h, limit.WeeklyLimit, now)
			limit.Behavioral = &b
		}
		limits[c] = limit
	}
	return limits
}

func buildLimit(c model.Category, h *categoryHistory, salary float64, austerity, growthAllowed bool) model.AutoLimit {
	weeks := len(h.weekTotals)
	months := len(h.monthTotals)

	var weeklyAvg, monthlyAvg float64
	if weeks > 0 {
		weeklyAvg = h.total / float64(weeks)
	}
	if months > 0 {
		monthlyAvg = h.total / float64(months)
	}

	limit := model.AutoLimit{
		Category:    c,
		Confidence:  confidence(months, weeks),
		IsProtected: protectedCategories[c],
	}

	if limit.IsProtected {
		// Essentials keep their historical averages untouched; cutting
		// rent or medicine is not a budgeting suggestion.
		limit.WeeklyLimit = weeklyAvg
		limit.MonthlyLimit = monthlyAvg
		return limit
	}

	weekly := weeklyAvg * trimFactor
	monthly := monthlyAvg * trimFactor

	switch {
	case austerity:
		weekly *= austerityMultiplier
		monthly *= austerityMultiplier
	case growthAllowed:
		weekly = weeklyAvg * growthCap
		monthly = monthlyAvg * growthCap
	}

	if salary > 0 {
		capPct, ok := salaryCapPercent[c]
		if !ok {
			capPct = capDefault
		}
		if cap := capPct * salary; monthly > cap {
			monthly = cap
		}
	}

	limit.WeeklyLimit = weekly
	limit.MonthlyLimit = monthly
	return limit
}

// monthlyPosture inspects last calendar month: austerity triggers when it
// closed with income below expenses; growth is allowed only when it closed
// with a positive final balance and no unexplained large non-payroll income.
func monthlyPosture(transactions []model.Transaction, startingBalance float64, now time.Time) (austerity, growthAllowed bool) {
	thisMonthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonthStart := thisMonthStart.AddDate(0, -1, 0)

	balanceAtClose := startingBalance
	var lastIncome, lastExpenses float64
	suspicious := false

	for _, txn := range transactions {
		if txn.Date.Before(thisMonthStart) {
			balanceAtClose += txn.SignedAmount()
		}
		if txn.Date.Before(lastMonthStart) || !txn.Date.Before(thisMonthStart) {
			continue
		}
		if txn.Direction == model.DirectionIncome {
			lastIncome += txn.Amount
			if txn.Category != model.CategorySalario && txn.Amount > falseIncomeThreshold {
				suspicious = true
			}
		} else {
			lastExpenses += txn.Amount
		}
	}

	austerity = lastIncome < lastExpenses
	growthAllowed = balanceAtClose > 0 && !suspicious
	return austerity, growthAllowed
}

// largestUnprotectedDriver returns the category with the biggest 60-day
// spend among non-protected categories, or "" when nothing qualifies.
func largestUnprotectedDriver(histories map[model.Category]*categoryHistory) model.Category {
	var top model.Category
	best := 0.0
	for c, h := range histories {
		if protectedCategories[c] {
			continue
		}
		if h.last60Total > best {
			best = h.last60Total
			top = c
		}
	}
	return top
}

func confidence(months, weeks int) model.LimitConfidence {
	switch {
	case months >= 3 && weeks >= 12:
		return model.ConfidenceHigh
	case months >= 2 && weeks >= 8:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceLow
	}
}

// behavioralLimits derives habit caps for a discretionary category from its
// window history.
func behavioralLimits(h *categoryHistory, weeklyLimit float64, now time.Time) model.BehavioralLimits {
	weeks := float64(len(h.weekTotals))
	if weeks < 1 {
		weeks = 1
	}

	deliveries := 0
	nightCount := 0
	largeCount := 0
	for _, txn := range h.transactions {
		if rules.IsDelivery(txn.Description) {
			deliveries++
		}
		if isNight(txn.Date) {
			nightCount++
		}
		if txn.Amount > largePurchase {
			largeCount++
		}
	}

	b := model.BehavioralLimits{
		MaxDeliveriesPerWeek:     trimmedWeeklyCount(float64(deliveries) / weeks),
		MaxLargePurchasesPerWeek: trimmedWeeklyCount(float64(largeCount) / weeks),
		MaxSingleTransaction:     math.Min(singleTxnWeeklyShare*weeklyLimit, singleTxnCeiling),
	}
	if n := len(h.transactions); n > 0 && float64(nightCount)/float64(n) > nightShareThreshold {
		b.NightPurchaseBan = true
	}
	return b
}

// trimmedWeeklyCount converts a historical per-week frequency into a cap one
// notch below it, with a floor of one when the habit exists at all.
func trimmedWeeklyCount(avgPerWeek float64) int {
	if avgPerWeek <= 0 {
		return 0
	}
	capped := int(math.Floor(avgPerWeek * trimFactor))
	if capped < 1 {
		return 1
	}
	return capped
}

// isNight reports whether a timestamp falls in the 20:00-06:00 window.
func isNight(t time.Time) bool {
	h := t.Hour()
	return h >= 20 || h < 6
}

func isoWeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-%02d", year, week)
}
