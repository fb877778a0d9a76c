package anomaly

import (
	"fmt"
	"sort"

	"grana/internal/model"
)

// Z-score thresholds for large-purchase severity.
const (
	outlierMinSamples = 3
	zFlag             = 2.0
	zHigh             = 3.0
	zCritical         = 4.0
)

// DetectLargePurchases flags transactions whose amount sits more than two
// standard deviations above their category's mean. Categories with fewer
// than three samples are skipped; there is no distribution to speak of.
func DetectLargePurchases(transactions []model.Transaction) []model.Finding {
	var findings []model.Finding

	grouped := expensesByCategory(transactions)
	categories := make([]model.Category, 0, len(grouped))
	for category := range grouped {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })

	for _, category := range categories {
		txns := grouped[category]
		if len(txns) < outlierMinSamples {
			continue
		}

		amounts := make([]float64, len(txns))
		for i, txn := range txns {
			amounts[i] = txn.Amount
		}
		mean, stddev := meanStddev(amounts)
		if stddev == 0 {
			continue
		}

		for _, txn := range txns {
			z := (txn.Amount - mean) / stddev
			if z <= zFlag {
				continue
			}
			findings = append(findings, model.Finding{
				Date:          txn.Date,
				Kind:          model.FindingLargePurchase,
				Severity:      outlierSeverity(z),
				Message:       fmt.Sprintf("%s: %.2f is %.1fx the category average of %.2f", txn.Description, txn.Amount, txn.Amount/mean, mean),
				TransactionID: txn.ID,
				Category:      category,
				Amount:        txn.Amount,
			})
		}
	}
	return sortBySeverity(findings)
}

func outlierSeverity(z float64) model.Severity {
	switch {
	case z > zCritical:
		return model.SeverityCritical
	case z > zHigh:
		return model.SeverityHigh
	default:
		return model.SeverityMedium
	}
}
