package anomaly

import (
	"fmt"
	"sort"
	"strings"

	"grana/internal/model"
	"grana/internal/rules"
)

// Fee detection thresholds.
const (
	feeMinAbsolute  = 20.0 // One-off fees below this are not worth an alert
	feeSpikeFactor  = 3.0
	feeTypeTokens   = 2
)

// feeType collapses a fee description to its first tokens, so "tarifa
// manutencao conta 05/2024" and "tarifa manutencao conta 06/2024" group
// together.
func feeType(description string) string {
	tokens := rules.Tokens(description)
	if len(tokens) > feeTypeTokens {
		tokens = tokens[:feeTypeTokens]
	}
	return strings.Join(tokens, " ")
}

// DetectUnexpectedFees scans the fee category for two patterns: a fee type
// that has appeared exactly once (a brand-new charge), and any fee far above
// its own type's average.
func DetectUnexpectedFees(transactions []model.Transaction) []model.Finding {
	groups := make(map[string][]model.Transaction)
	for _, txn := range transactions {
		if txn.Direction != model.DirectionExpense || txn.Category != model.CategoryTarifas {
			continue
		}
		groups[feeType(txn.Description)] = append(groups[feeType(txn.Description)], txn)
	}

	types := make([]string, 0, len(groups))
	for ft := range groups {
		types = append(types, ft)
	}
	sort.Strings(types)

	var findings []model.Finding
	for _, ft := range types {
		group := groups[ft]
		if len(group) == 1 {
			txn := group[0]
			if txn.Amount > feeMinAbsolute {
				findings = append(findings, model.Finding{
					Date:          txn.Date,
					Kind:          model.FindingUnexpectedFee,
					Severity:      model.SeverityMedium,
					Message:       fmt.Sprintf("new fee %q of %.2f never seen before", ft, txn.Amount),
					TransactionID: txn.ID,
					Category:      model.CategoryTarifas,
					Amount:        txn.Amount,
				})
			}
			continue
		}

		var total float64
		for _, txn := range group {
			total += txn.Amount
		}
		average := total / float64(len(group))
		if average == 0 {
			continue
		}

		for _, txn := range group {
			if txn.Amount <= feeSpikeFactor*average {
				continue
			}
			findings = append(findings, model.Finding{
				Date:          txn.Date,
				Kind:          model.FindingUnexpectedFee,
				Severity:      model.SeverityHigh,
				Message:       fmt.Sprintf("fee %q of %.2f is %.1fx its own average", ft, txn.Amount, txn.Amount/average),
				TransactionID: txn.ID,
				Category:      model.CategoryTarifas,
				Amount:        txn.Amount,
			})
		}
	}
	return sortBySeverity(findings)
}
