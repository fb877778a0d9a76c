package anomaly

import (
	"fmt"
	"math"
	"sort"

	"grana/internal/model"
	"grana/internal/rules"
)

// Hidden-recurring detection thresholds. Small charges repeating at a
// regular cadence that are not a known subscription are probably a forgotten
// one.
const (
	recurringMaxAmount      = 100.0
	recurringMinOccurrences = 3
	relaxedMinOccurrences   = 5
	lowGapStddev            = 2.0
	moderateGapStddev       = 4.0
)

// cadence classification by mean gap between occurrences, in days.
var cadences = []struct {
	name     string
	min, max float64
}{
	{"weekly", 6, 8},
	{"biweekly", 12, 16},
	{"monthly", 27, 33},
}

// DetectHiddenRecurring groups small expenses by normalized description and
// rounded amount, then looks for regular day gaps between occurrences.
func DetectHiddenRecurring(transactions []model.Transaction) []model.Finding {
	type key struct {
		description string
		amount      float64
	}

	groups := make(map[key][]model.Transaction)
	for _, txn := range transactions {
		if txn.Direction != model.DirectionExpense || txn.Amount >= recurringMaxAmount {
			continue
		}
		if txn.Category == model.CategoryAssinaturas || rules.IsKnownSubscription(txn.Description) {
			continue
		}
		k := key{description: rules.Normalize(txn.Description), amount: math.Round(txn.Amount)}
		groups[k] = append(groups[k], txn)
	}

	keys := make([]key, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].description != keys[j].description {
			return keys[i].description < keys[j].description
		}
		return keys[i].amount < keys[j].amount
	})

	var findings []model.Finding
	for _, k := range keys {
		group := groups[k]
		if len(group) < recurringMinOccurrences {
			continue
		}
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Date.Before(group[j].Date)
		})

		gaps := make([]float64, 0, len(group)-1)
		for i := 1; i < len(group); i++ {
			gaps = append(gaps, group[i].Date.Sub(group[i-1].Date).Hours()/24)
		}
		mean, stddev := meanStddev(gaps)

		cadence := classifyCadence(mean)
		if cadence == "" {
			continue
		}
		if stddev > moderateGapStddev {
			continue
		}
		if stddev > lowGapStddev && len(group) < relaxedMinOccurrences {
			continue
		}

		latest := group[len(group)-1]
		findings = append(findings, model.Finding{
			Date:          latest.Date,
			Kind:          model.FindingHiddenRecurring,
			Severity:      model.SeverityMedium,
			Message:       fmt.Sprintf("possible hidden %s subscription: %q around %.0f, %d occurrences", cadence, k.description, k.amount, len(group)),
			TransactionID: latest.ID,
			Category:      latest.Category,
			Amount:        latest.Amount,
			Confidence:    gapRegularity(mean, stddev),
		})
	}
	return sortBySeverity(findings)
}

func classifyCadence(meanGap float64) string {
	for _, c := range cadences {
		if meanGap >= c.min && meanGap <= c.max {
			return c.name
		}
	}
	return ""
}

// gapRegularity maps gap variance to a 0..1 confidence: perfectly regular
// gaps score 1.
func gapRegularity(mean, stddev float64) float64 {
	if mean <= 0 {
		return 0
	}
	c := 1 - stddev/mean
	if c < 0 {
		return 0
	}
	return c
}
