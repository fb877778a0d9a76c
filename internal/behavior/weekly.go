// Package behavior runs the emotional-spending checks over the current
// calendar week, comparing it against trailing baselines.
package behavior

import (
	"fmt"
	"sort"
	"time"

	"grana/internal/model"
	"grana/internal/rules"
)

// Thresholds for the weekly behavior checks.
const (
	nightHour           = 20
	rapidWindow         = 4 * time.Hour
	rapidMinTransfers   = 2
	countSpikeFactor    = 2.0
	deliveryFlagFactor  = 1.5
	deliveryHighFactor  = 2.0
	weeklyDeviation     = 1.5 // Current week >50% above the 8-week average
	baselineWeeks       = 4
	longBaselineWeeks   = 8
	daySpikeMinCount    = 5
	discretionaryMinHit = 3
)

// discretionary categories considered in the night/weekend checks.
var discretionary = map[model.Category]bool{
	model.CategoryAlimentacao: true,
	model.CategoryLazer:       true,
	model.CategoryCompras:     true,
	model.CategoryPix:         true,
}

// DetectEmotionalSpending runs five independent checks over the current
// calendar week and returns their findings sorted by severity.
func DetectEmotionalSpending(transactions []model.Transaction, now time.Time) []model.Finding {
	weekStart := startOfWeek(now)

	var findings []model.Finding
	findings = append(findings, nightRapidTransfers(transactions, weekStart, now)...)
	findings = append(findings, nightWeekendCounts(transactions, weekStart, now)...)
	findings = append(findings, deliveryFrequency(transactions, weekStart, now)...)
	findings = append(findings, dailyCountSpikes(transactions, weekStart, now)...)
	findings = append(findings, weeklyTotalDeviation(transactions, weekStart, now)...)

	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Severity.Rank() > findings[j].Severity.Rank()
	})
	return findings
}

// nightRapidTransfers flags two or more transfers fired within a four-hour
// window after 20:00. Late-night transfer bursts rarely end well.
func nightRapidTransfers(transactions []model.Transaction, weekStart, now time.Time) []model.Finding {
	var night []model.Transaction
	for _, txn := range currentWeek(transactions, weekStart, now) {
		if txn.Direction != model.DirectionExpense || txn.Category != model.CategoryPix {
			continue
		}
		if txn.Date.Hour() >= nightHour {
			night = append(night, txn)
		}
	}
	if len(night) < rapidMinTransfers {
		return nil
	}
	sort.SliceStable(night, func(i, j int) bool { return night[i].Date.Before(night[j].Date) })

	for i := 1; i < len(night); i++ {
		if night[i].Date.Sub(night[i-1].Date) <= rapidWindow {
			return []model.Finding{{
				Date:          night[i].Date,
				Kind:          model.FindingEmotionalSpend,
				Severity:      model.SeverityHigh,
				Message:       fmt.Sprintf("%d night transfers within four hours", len(night)),
				TransactionID: night[i].ID,
				Category:      model.CategoryPix,
				Amount:        night[i].Amount,
			}}
		}
	}
	return nil
}

// nightWeekendCounts compares this week's night and weekend discretionary
// purchases against the trailing four-week average.
func nightWeekendCounts(transactions []model.Transaction, weekStart, now time.Time) []model.Finding {
	isOffHours := func(t time.Time) bool {
		wd := t.Weekday()
		return t.Hour() >= nightHour || t.Hour() < 6 || wd == time.Saturday || wd == time.Sunday
	}

	current := 0
	for _, txn := range currentWeek(transactions, weekStart, now) {
		if txn.Direction == model.DirectionExpense && discretionary[txn.Category] && isOffHours(txn.Date) {
			current++
		}
	}
	if current < discretionaryMinHit {
		return nil
	}

	baseline := 0
	baselineStart := weekStart.AddDate(0, 0, -7*baselineWeeks)
	for _, txn := range transactions {
		if txn.Date.Before(baselineStart) || !txn.Date.Before(weekStart) {
			continue
		}
		if txn.Direction == model.DirectionExpense && discretionary[txn.Category] && isOffHours(txn.Date) {
			baseline++
		}
	}
	avg := float64(baseline) / baselineWeeks
	if avg > 0 && float64(current) <= countSpikeFactor*avg {
		return nil
	}

	return []model.Finding{{
		Date:     now,
		Kind:     model.FindingEmotionalSpend,
		Severity: model.SeverityMedium,
		Message:  fmt.Sprintf("%d night/weekend purchases this week vs %.1f/week baseline", current, avg),
	}}
}

// deliveryFrequency compares this week's delivery orders against the
// trailing four-week baseline.
func deliveryFrequency(transactions []model.Transaction, weekStart, now time.Time) []model.Finding {
	current := 0
	for _, txn := range currentWeek(transactions, weekStart, now) {
		if txn.Direction == model.DirectionExpense && rules.IsDelivery(txn.Description) {
			current++
		}
	}
	if current < discretionaryMinHit {
		return nil
	}

	baseline := 0
	baselineStart := weekStart.AddDate(0, 0, -7*baselineWeeks)
	for _, txn := range transactions {
		if txn.Date.Before(baselineStart) || !txn.Date.Before(weekStart) {
			continue
		}
		if txn.Direction == model.DirectionExpense && rules.IsDelivery(txn.Description) {
			baseline++
		}
	}
	avg := float64(baseline) / baselineWeeks
	if avg > 0 && float64(current) <= deliveryFlagFactor*avg {
		return nil
	}

	severity := model.SeverityMedium
	if avg > 0 && float64(current) > deliveryHighFactor*avg {
		severity = model.SeverityHigh
	}
	return []model.Finding{{
		Date:     now,
		Kind:     model.FindingEmotionalSpend,
		Severity: severity,
		Message:  fmt.Sprintf("%d delivery orders this week vs %.1f/week baseline", current, avg),
		Category: model.CategoryAlimentacao,
	}}
}

// dailyCountSpikes flags any single day this week with an unusual number of
// transactions compared to the eight-week daily average.
func dailyCountSpikes(transactions []model.Transaction, weekStart, now time.Time) []model.Finding {
	perDay := make(map[string]int)
	for _, txn := range currentWeek(transactions, weekStart, now) {
		if txn.Direction == model.DirectionExpense {
			perDay[txn.Date.Format("2006-01-02")]++
		}
	}

	baselineStart := weekStart.AddDate(0, 0, -7*longBaselineWeeks)
	baselineCount := 0
	for _, txn := range transactions {
		if txn.Direction != model.DirectionExpense {
			continue
		}
		if txn.Date.Before(baselineStart) || !txn.Date.Before(weekStart) {
			continue
		}
		baselineCount++
	}
	dailyAvg := float64(baselineCount) / float64(7*longBaselineWeeks)

	var findings []model.Finding
	days := make([]string, 0, len(perDay))
	for day := range perDay {
		days = append(days, day)
	}
	sort.Strings(days)

	for _, day := range days {
		count := perDay[day]
		if count < daySpikeMinCount {
			continue
		}
		if dailyAvg > 0 && float64(count) <= countSpikeFactor*dailyAvg {
			continue
		}
		findings = append(findings, model.Finding{
			Date:     now,
			Kind:     model.FindingEmotionalSpend,
			Severity: model.SeverityMedium,
			Message:  fmt.Sprintf("%d purchases on %s vs %.1f/day baseline", count, day, dailyAvg),
		})
	}
	return findings
}

// weeklyTotalDeviation flags the current week running more than 50% above
// the eight-week historical weekly average.
func weeklyTotalDeviation(transactions []model.Transaction, weekStart, now time.Time) []model.Finding {
	var current float64
	for _, txn := range currentWeek(transactions, weekStart, now) {
		if txn.Direction == model.DirectionExpense {
			current += txn.Amount
		}
	}

	baselineStart := weekStart.AddDate(0, 0, -7*longBaselineWeeks)
	var baseline float64
	for _, txn := range transactions {
		if txn.Direction != model.DirectionExpense {
			continue
		}
		if txn.Date.Before(baselineStart) || !txn.Date.Before(weekStart) {
			continue
		}
		baseline += txn.Amount
	}
	weeklyAvg := baseline / longBaselineWeeks
	if weeklyAvg <= 0 || current <= weeklyDeviation*weeklyAvg {
		return nil
	}

	return []model.Finding{{
		Date:     now,
		Kind:     model.FindingEmotionalSpend,
		Severity: model.SeverityHigh,
		Message:  fmt.Sprintf("this week's spend %.2f is %.0f%% above the %.2f weekly average", current, (current/weeklyAvg-1)*100, weeklyAvg),
		Amount:   current,
	}}
}

// startOfWeek returns Monday 00:00 of the week containing t.
func startOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func currentWeek(transactions []model.Transaction, weekStart, now time.Time) []model.Transaction {
	var out []model.Transaction
	for _, txn := range transactions {
		if txn.Date.Before(weekStart) || txn.Date.After(now) {
			continue
		}
		out = append(out, txn)
	}
	return out
}
