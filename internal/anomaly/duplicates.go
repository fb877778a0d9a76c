package anomaly

import (
	"fmt"
	"math"
	"sort"

	"grana/internal/model"
	"grana/internal/rules"
)

// duplicatePrefixLen bounds the normalized-description prefix used for
// grouping, so "IFOOD *RESTAURANTE A" and "IFOOD *RESTAURANTE B" can still
// land in the same bucket when the charge is the suspicious part.
const duplicatePrefixLen = 12

// DetectDuplicateCharges flags pairs of equal-amount charges with matching
// description prefixes that landed within a day of each other. Same-day
// pairs are critical; the card was probably charged twice.
func DetectDuplicateCharges(transactions []model.Transaction) []model.Finding {
	type key struct {
		prefix string
		amount float64
	}

	groups := make(map[key][]model.Transaction)
	for _, txn := range transactions {
		if txn.Direction != model.DirectionExpense {
			continue
		}
		normalized := rules.Normalize(txn.Description)
		if len(normalized) > duplicatePrefixLen {
			normalized = normalized[:duplicatePrefixLen]
		}
		k := key{prefix: normalized, amount: txn.Amount}
		groups[k] = append(groups[k], txn)
	}

	keys := make([]key, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].prefix != keys[j].prefix {
			return keys[i].prefix < keys[j].prefix
		}
		return keys[i].amount < keys[j].amount
	})

	var findings []model.Finding
	for _, k := range keys {
		group := groups[k]
		if len(group) < 2 {
			continue
		}
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Date.Before(group[j].Date)
		})

		for i := 1; i < len(group); i++ {
			prev, curr := group[i-1], group[i]
			gap := math.Abs(curr.Date.Sub(prev.Date).Hours())
			if gap > 24 {
				continue
			}

			severity := model.SeverityHigh
			if sameCalendarDay(prev, curr) {
				severity = model.SeverityCritical
			}
			findings = append(findings, model.Finding{
				Date:          curr.Date,
				Kind:          model.FindingDuplicateCharge,
				Severity:      severity,
				Message:       fmt.Sprintf("%s charged %.2f twice within a day", curr.Description, curr.Amount),
				TransactionID: curr.ID,
				Category:      curr.Category,
				Amount:        curr.Amount,
			})
		}
	}
	return sortBySeverity(findings)
}

func sameCalendarDay(a, b model.Transaction) bool {
	return a.Date.Year() == b.Date.Year() && a.Date.YearDay() == b.Date.YearDay()
}
