// Package alert composes detector findings and monthly metrics into a
// ranked, severity-tagged alert list.
package alert

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"grana/internal/autolimit"
	"grana/internal/behavior"
	"grana/internal/metrics"
	"grana/internal/model"
)

// Synthesis thresholds.
const (
	goalWarnRatio        = 0.9
	nightVsDayFactor     = 1.2
	nightMinSamples      = 3
	largePurchase        = 150.0
	largePerDayLimit     = 3
	falseIncomeThreshold = 1000.0
	nightHour            = 20
)

// Input carries everything the synthesizer reads. It never mutates any of it.
type Input struct {
	Goals        map[model.Category]float64
	Transactions []model.Transaction
	Metrics      model.MonthlyMetrics
	Salary       float64
	Now          time.Time
}

// Synthesize runs the independent alert sources concurrently and merges
// their output into a single list ordered critical, high, medium, stable
// within each tier.
func Synthesize(ctx context.Context, in Input) []model.Alert {
	var (
		behaviorAlerts []model.Alert
		categoryAlerts []model.Alert
		dangerAlerts   []model.Alert
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		behaviorAlerts = fromBehaviorFindings(behavior.DetectEmotionalSpending(in.Transactions, in.Now))
		return nil
	})
	g.Go(func() error {
		categoryAlerts = categoryCritical(in)
		return nil
	})
	g.Go(func() error {
		dangerAlerts = dangerousBehavior(in)
		return nil
	})
	// The detectors are pure; the group exists to fan them out, not to fail.
	_ = g.Wait()

	var alerts []model.Alert
	alerts = append(alerts, forecastNegative(in)...)
	alerts = append(alerts, behaviorAlerts...)
	alerts = append(alerts, categoryAlerts...)
	alerts = append(alerts, dangerAlerts...)
	alerts = append(alerts, falseIncome(in)...)

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Severity.Rank() > alerts[j].Severity.Rank()
	})
	return alerts
}

// forecastNegative raises the non-dismissible headline alert when the
// end-of-month projection crosses zero.
func forecastNegative(in Input) []model.Alert {
	f := in.Metrics.Forecast
	if f.ProjectedBalance >= 0 {
		return nil
	}
	msg := fmt.Sprintf("projected end-of-month balance is %.2f", f.ProjectedBalance)
	if f.WillGoNegative && !f.CrossingDate.IsZero() {
		msg = fmt.Sprintf("%s; balance goes negative around %s", msg, f.CrossingDate.Format("02/01"))
	}
	return []model.Alert{{
		Kind:        model.AlertForecastNegative,
		Severity:    model.SeverityCritical,
		Title:       "saldo projetado negativo",
		Message:     msg,
		Dismissible: false,
	}}
}

// fromBehaviorFindings promotes high and critical emotional-spending
// findings into alerts.
func fromBehaviorFindings(findings []model.Finding) []model.Alert {
	var alerts []model.Alert
	for _, f := range findings {
		if f.Severity.Rank() < model.SeverityHigh.Rank() {
			continue
		}
		alerts = append(alerts, model.Alert{
			Kind:        model.AlertEmotionalSpending,
			Severity:    f.Severity,
			Title:       "gasto por impulso",
			Message:     f.Message,
			Category:    f.Category,
			Dismissible: true,
		})
	}
	return alerts
}

// categoryCritical raises alerts for categories at 90% of their monthly
// goal. At or past 100% the alert can no longer be dismissed.
func categoryCritical(in Input) []model.Alert {
	categories := make([]model.Category, 0, len(in.Goals))
	for c := range in.Goals {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })

	var alerts []model.Alert
	for _, c := range categories {
		goal := in.Goals[c]
		if goal <= 0 {
			continue
		}
		cm := metrics.ComputeCategoryMetrics(in.Transactions, c, goal, in.Salary, in.Now)
		if cm.TotalSpent < goalWarnRatio*goal {
			continue
		}
		alerts = append(alerts, model.Alert{
			Kind:        model.AlertCategoryCritical,
			Severity:    model.SeverityCritical,
			Title:       fmt.Sprintf("limite de %s quase estourado", c),
			Message:     fmt.Sprintf("%.2f of the %.2f monthly goal spent", cm.TotalSpent, goal),
			Category:    c,
			Dismissible: cm.TotalSpent < goal,
		})
	}
	return alerts
}

// dangerousBehavior flags night transfers running hotter than daytime ones
// and days with too many large discretionary purchases.
func dangerousBehavior(in Input) []model.Alert {
	var alerts []model.Alert

	var nightTotal, dayTotal float64
	var nightCount, dayCount int
	largeByDay := make(map[string]int)

	for _, txn := range in.Transactions {
		if txn.Direction != model.DirectionExpense {
			continue
		}
		if txn.Category == model.CategoryPix {
			if txn.Date.Hour() >= nightHour || txn.Date.Hour() < 6 {
				nightTotal += txn.Amount
				nightCount++
			} else {
				dayTotal += txn.Amount
				dayCount++
			}
		}
		if txn.Amount > largePurchase && !autolimit.IsProtected(txn.Category) {
			largeByDay[txn.Date.Format("2006-01-02")]++
		}
	}

	if nightCount >= nightMinSamples && dayCount > 0 {
		nightAvg := nightTotal / float64(nightCount)
		dayAvg := dayTotal / float64(dayCount)
		if dayAvg > 0 && nightAvg > nightVsDayFactor*dayAvg {
			alerts = append(alerts, model.Alert{
				Kind:        model.AlertDangerousBehavior,
				Severity:    model.SeverityHigh,
				Title:       "transferencias noturnas elevadas",
				Message:     fmt.Sprintf("night transfers average %.2f vs %.2f during the day", nightAvg, dayAvg),
				Category:    model.CategoryPix,
				Dismissible: true,
			})
		}
	}

	days := make([]string, 0, len(largeByDay))
	for day := range largeByDay {
		days = append(days, day)
	}
	sort.Strings(days)
	for _, day := range days {
		if largeByDay[day] < largePerDayLimit {
			continue
		}
		alerts = append(alerts, model.Alert{
			Kind:        model.AlertDangerousBehavior,
			Severity:    model.SeverityHigh,
			Title:       "varias compras grandes no mesmo dia",
			Message:     fmt.Sprintf("%d purchases above %.0f on %s", largeByDay[day], largePurchase, day),
			Dismissible: true,
		})
	}
	return alerts
}

// falseIncome warns when a single large transfer-in this month makes the
// balance look healthy while the projection is still negative.
func falseIncome(in Input) []model.Alert {
	if in.Metrics.Forecast.ProjectedBalance >= 0 {
		return nil
	}

	monthStart := time.Date(in.Now.Year(), in.Now.Month(), 1, 0, 0, 0, 0, in.Now.Location())
	for _, txn := range in.Transactions {
		if txn.Direction != model.DirectionIncome || txn.Category == model.CategorySalario {
			continue
		}
		if txn.Date.Before(monthStart) || txn.Date.After(in.Now) {
			continue
		}
		if txn.Amount > falseIncomeThreshold {
			return []model.Alert{{
				Kind:        model.AlertFalseIncome,
				Severity:    model.SeverityCritical,
				Title:       "entrada grande nao resolve o mes",
				Message:     fmt.Sprintf("a transfer of %.2f came in, but the projection is still %.2f", txn.Amount, in.Metrics.Forecast.ProjectedBalance),
				Dismissible: false,
			}}
		}
	}
	return nil
}

