package anomaly

import (
	"fmt"
	"strings"

	"grana/internal/model"
	"grana/internal/rules"
)

// Unusual-recipient thresholds: a recipient seen exactly once whose amount
// exceeds twice the category average is suspicious; five times is worse.
const (
	recipientFlagMultiple = 2.0
	recipientHighMultiple = 5.0
)

// transferNoise are tokens that carry no recipient identity.
var transferNoise = map[string]bool{
	"pix": true, "transferencia": true, "ted": true, "doc": true,
	"enviada": true, "enviado": true, "para": true, "pgto": true,
	"pagamento": true,
}

// recipientKey strips transfer boilerplate from a description, leaving the
// tokens that identify who was paid.
func recipientKey(description string) string {
	var kept []string
	for _, tok := range rules.Tokens(description) {
		if transferNoise[tok] {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

// DetectUnusualRecipients scans PIX transfers for one-off recipients paid
// far above the category's usual transfer size.
func DetectUnusualRecipients(transactions []model.Transaction) []model.Finding {
	var transfers []model.Transaction
	var total float64
	for _, txn := range transactions {
		if txn.Direction != model.DirectionExpense || txn.Category != model.CategoryPix {
			continue
		}
		transfers = append(transfers, txn)
		total += txn.Amount
	}
	if len(transfers) == 0 {
		return nil
	}
	average := total / float64(len(transfers))
	if average == 0 {
		return nil
	}

	seen := make(map[string]int, len(transfers))
	for _, txn := range transfers {
		seen[recipientKey(txn.Description)]++
	}

	var findings []model.Finding
	for _, txn := range transfers {
		key := recipientKey(txn.Description)
		if key == "" || seen[key] != 1 {
			continue
		}
		multiple := txn.Amount / average
		if multiple <= recipientFlagMultiple {
			continue
		}

		severity := model.SeverityMedium
		if multiple > recipientHighMultiple {
			severity = model.SeverityHigh
		}
		findings = append(findings, model.Finding{
			Date:          txn.Date,
			Kind:          model.FindingUnusualRecipient,
			Severity:      severity,
			Message:       fmt.Sprintf("first transfer to %q at %.1fx the usual transfer size", key, multiple),
			TransactionID: txn.ID,
			Category:      model.CategoryPix,
			Amount:        txn.Amount,
		})
	}
	return sortBySeverity(findings)
}
