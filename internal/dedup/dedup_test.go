package dedup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grana/internal/model"
)

func txn(id, description string, amount float64, date time.Time) model.Transaction {
	return model.Transaction{
		ID:          id,
		Date:        date,
		Description: description,
		Amount:      amount,
		Direction:   model.DirectionExpense,
		Category:    model.CategoryOutros,
	}
}

func TestDedupe(t *testing.T) {
	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input []model.Transaction
		want  int
	}{
		{
			name: "exact duplicates collapse",
			input: []model.Transaction{
				txn("a", "UBER *TRIP", 24.90, day),
				txn("b", "UBER *TRIP", 24.90, day.Add(3*time.Hour)),
			},
			want: 1,
		},
		{
			name: "normalization-equal descriptions collapse",
			input: []model.Transaction{
				txn("a", "UBER   *TRIP--BR", 24.90, day),
				txn("b", "uber trip br", 24.90, day),
			},
			want: 1,
		},
		{
			name: "amounts within a cent collapse",
			input: []model.Transaction{
				txn("a", "UBER *TRIP", 24.90, day),
				txn("b", "UBER *TRIP", 24.905, day),
			},
			want: 1,
		},
		{
			name: "different day is not a duplicate",
			input: []model.Transaction{
				txn("a", "UBER *TRIP", 24.90, day),
				txn("b", "UBER *TRIP", 24.90, day.AddDate(0, 0, 1)),
			},
			want: 2,
		},
		{
			name: "different amount is not a duplicate",
			input: []model.Transaction{
				txn("a", "UBER *TRIP", 24.90, day),
				txn("b", "UBER *TRIP", 25.90, day),
			},
			want: 2,
		},
		{
			name: "similar but not byte-equal descriptions are kept",
			input: []model.Transaction{
				txn("a", "UBER TRIP SP", 24.90, day),
				txn("b", "UBER TRIP RJ", 24.90, day),
			},
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, Dedupe(tt.input), tt.want)
		})
	}
}

func TestDedupe_KeepsFirstOccurrence(t *testing.T) {
	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	out := Dedupe([]model.Transaction{
		txn("first", "UBER *TRIP", 24.90, day),
		txn("second", "UBER *TRIP", 24.90, day),
	})

	require.Len(t, out, 1)
	assert.Equal(t, "first", out[0].ID)
}

func TestDedupe_Idempotent(t *testing.T) {
	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	input := []model.Transaction{
		txn("a", "UBER *TRIP", 24.90, day),
		txn("b", "UBER *TRIP", 24.90, day),
		txn("c", "IFOOD BURGER", 42.00, day),
		txn("d", "IFOOD BURGER", 42.00, day.AddDate(0, 0, 2)),
	}

	once := Dedupe(input)
	twice := Dedupe(once)
	assert.Equal(t, once, twice)
}

func TestMerge_FusesDetail(t *testing.T) {
	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

	a := txn("a", "PIX MARIA", 80.00, day)
	a.StatementLine = "PIX"

	b := txn("b", "PIX MARIA", 80.00, day)
	b.StatementLine = "PIX"
	b.StatementDetail = "PIX MARIA SILVA 123.456.789-00"
	b.DocumentNumber = "000123"

	out := Merge([]model.Transaction{a, b})
	require.Len(t, out, 1)

	// b is more complete and becomes the base; its longer detail survives.
	assert.Equal(t, "000123", out[0].DocumentNumber)
	assert.Equal(t, "PIX MARIA SILVA 123.456.789-00", out[0].StatementDetail)
}

func TestMerge_ConcatenatesDistinctDescriptions(t *testing.T) {
	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

	// Byte-equal after normalization, but the display strings differ and
	// neither contains the other.
	a := txn("a", "UBER   *TRIP", 24.90, day)
	b := txn("b", "uber trip", 24.90, day)

	out := Merge([]model.Transaction{a, b})
	require.Len(t, out, 1)
	assert.Contains(t, out[0].Description, " | ")
}

func TestMerge_SubstringDescriptionNotDuplicated(t *testing.T) {
	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

	a := txn("a", "UBER TRIP", 24.90, day)
	b := txn("b", "UBER TRIP", 24.90, day)

	out := Merge([]model.Transaction{a, b})
	require.Len(t, out, 1)
	assert.Equal(t, "UBER TRIP", out[0].Description)
}
