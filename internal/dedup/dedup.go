// Package dedup removes and merges transactions that are identical under a
// fuzzy key: same calendar day, amounts within a cent, and byte-equal
// normalized descriptions. Similarity-based matching is deliberately not
// used; near-duplicates with different wording are kept.
package dedup

import (
	"math"
	"strings"
	"time"

	"grana/internal/model"
	"grana/internal/rules"
)

const amountTolerance = 0.01

// isDuplicate reports whether two transactions are the same purchase seen
// twice. Calendar day, not instant: bank exports often drop the time of day
// on one side.
func isDuplicate(a, b model.Transaction) bool {
	if !sameDay(a.Date, b.Date) {
		return false
	}
	if math.Abs(a.Amount-b.Amount) > amountTolerance {
		return false
	}
	return rules.Normalize(a.Description) == rules.Normalize(b.Description)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// Dedupe keeps the first occurrence of each duplicate group and drops the
// rest. Every candidate is compared against every previously kept
// transaction rather than a bucket key, so normalization edge cases that
// collide on a key cannot cause a false keep.
func Dedupe(transactions []model.Transaction) []model.Transaction {
	kept := make([]model.Transaction, 0, len(transactions))

	for _, txn := range transactions {
		duplicate := false
		for _, prev := range kept {
			if isDuplicate(txn, prev) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			kept = append(kept, txn)
		}
	}
	return kept
}

// Merge collapses each duplicate group into a single transaction that fuses
// the group's information: the most complete member is the base, longer
// detail text wins, and distinct descriptions are concatenated when neither
// contains the other.
func Merge(transactions []model.Transaction) []model.Transaction {
	merged := make([]model.Transaction, 0, len(transactions))

	for _, txn := range transactions {
		found := false
		for i := range merged {
			if isDuplicate(txn, merged[i]) {
				merged[i] = fuse(merged[i], txn)
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, txn)
		}
	}
	return merged
}

// fuse combines two duplicates, using the more complete one as the base.
func fuse(a, b model.Transaction) model.Transaction {
	base, other := a, b
	if completeness(b) > completeness(a) {
		base, other = b, a
	}

	if len(other.StatementDetail) > len(base.StatementDetail) {
		base.StatementDetail = other.StatementDetail
	}
	if len(other.StatementLine) > len(base.StatementLine) {
		base.StatementLine = other.StatementLine
	}
	if base.DocumentNumber == "" {
		base.DocumentNumber = other.DocumentNumber
	}

	if other.Description != base.Description &&
		!strings.Contains(base.Description, other.Description) &&
		!strings.Contains(other.Description, base.Description) {
		base.Description = base.Description + " | " + other.Description
	}

	return base
}

// completeness counts non-empty optional fields.
func completeness(t model.Transaction) int {
	n := 0
	if t.StatementLine != "" {
		n++
	}
	if t.StatementDetail != "" {
		n++
	}
	if t.DocumentNumber != "" {
		n++
	}
	return n
}
