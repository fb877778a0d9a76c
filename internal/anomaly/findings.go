// Package anomaly holds the statistical detectors that scan a transaction
// set for outliers, suspicious duplicates, unexpected fees, and hidden
// recurring payments. Every detector is a pure function over the set and can
// be called independently or composed.
package anomaly

import (
	"math"
	"sort"

	"grana/internal/model"
)

// sortBySeverity orders findings most severe first, preserving the
// detector's internal order within each tier.
func sortBySeverity(findings []model.Finding) []model.Finding {
	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Severity.Rank() > findings[j].Severity.Rank()
	})
	return findings
}

// expensesByCategory groups expense transactions by category.
func expensesByCategory(transactions []model.Transaction) map[model.Category][]model.Transaction {
	groups := make(map[model.Category][]model.Transaction)
	for _, txn := range transactions {
		if txn.Direction != model.DirectionExpense {
			continue
		}
		groups[txn.Category] = append(groups[txn.Category], txn)
	}
	return groups
}

// meanStddev returns the mean and population standard deviation of values.
func meanStddev(values []float64) (mean, stddev float64) {
	if len(values) == 0 {
		return 0, 0
	}
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}
