// Package ingest converts already-parsed statement rows into classified
// transactions. It sits at the boundary with the statement-parsing
// collaborator and must never fail on a single malformed row: bad dates and
// amounts resolve to safe defaults instead of errors.
package ingest

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"grana/internal/learning"
	"grana/internal/model"
)

// RawRow is one pre-parsed statement row as delivered by the parser
// collaborator: free-text fields plus a signed amount in Brazilian numeric
// format ("1.234,56").
type RawRow struct {
	Date           string
	LineType       string
	Detail         string
	Amount         string
	DocumentNumber string
}

var dateLayouts = []string{"02/01/2006", "2006-01-02", "02/01/2006 15:04", "2006-01-02 15:04:05"}

// parseDate tries the supported statement layouts, falling back to now for
// anything unparseable.
func parseDate(s string, now time.Time) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, now.Location()); err == nil {
			return t
		}
	}
	slog.Debug("unparseable date, defaulting to today", "value", s)
	return now
}

// parseAmount parses a signed Brazilian-format number. Thousands use ".",
// decimals use ",". Unparseable values resolve to zero.
func parseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		slog.Debug("unparseable amount, defaulting to zero", "value", s)
		return 0
	}
	return v
}

// FromRows converts raw rows into classified transactions. Classification
// goes through the learned classifier so user corrections apply during
// ingestion too.
func FromRows(ctx context.Context, rows []RawRow, classifier *learning.Classifier, now time.Time) []model.Transaction {
	transactions := make([]model.Transaction, 0, len(rows))

	for _, row := range rows {
		description := strings.TrimSpace(row.Detail)
		if description == "" {
			description = strings.TrimSpace(row.LineType)
		}

		signed := parseAmount(row.Amount)
		result := classifier.Classify(ctx, description, signed)

		transactions = append(transactions, model.Transaction{
			ID:              uuid.NewString(),
			Date:            parseDate(row.Date, now),
			Description:     description,
			Amount:          math.Abs(signed),
			Direction:       result.Direction,
			Category:        result.Category,
			StatementLine:   strings.TrimSpace(row.LineType),
			StatementDetail: strings.TrimSpace(row.Detail),
			DocumentNumber:  strings.TrimSpace(row.DocumentNumber),
		})
	}
	return transactions
}
