package storage

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"grana/internal/model"
)

// Snapshot is the full persisted session state. New fields must stay
// additive: Load tolerates their absence in older databases.
type Snapshot struct {
	AsOf             time.Time
	Goals            map[model.Category]float64
	Transactions     []model.Transaction
	CustomCategories []string
	StartingBalance  float64
	Salary           float64
}

const asOfLayout = time.RFC3339

// SaveSnapshot replaces the persisted session state. The engine treats this
// as fire-and-forget; use the SaveQueue rather than calling it from a
// mutation path.
func (s *SQLiteStorage) SaveSnapshot(ctx context.Context, snap Snapshot) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if len(snap.Transactions) > 0 {
		if err := s.SaveTransactions(ctx, snap.Transactions); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	settings := map[string]string{
		"starting_balance": strconv.FormatFloat(snap.StartingBalance, 'f', -1, 64),
		"salary":           strconv.FormatFloat(snap.Salary, 'f', -1, 64),
	}
	if !snap.AsOf.IsZero() {
		settings["as_of"] = snap.AsOf.Format(asOfLayout)
	}
	for key, value := range settings {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO settings (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, key, value); err != nil {
			return fmt.Errorf("failed to save setting %s: %w", key, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM goals`); err != nil {
		return fmt.Errorf("failed to reset goals: %w", err)
	}
	for category, amount := range snap.Goals {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO goals (category, amount) VALUES (?, ?)`,
			string(category), amount); err != nil {
			return fmt.Errorf("failed to save goal for %s: %w", category, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM custom_categories`); err != nil {
		return fmt.Errorf("failed to reset custom categories: %w", err)
	}
	for _, name := range snap.CustomCategories {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO custom_categories (name) VALUES (?)`, name); err != nil {
			return fmt.Errorf("failed to save custom category %s: %w", name, err)
		}
	}

	return tx.Commit()
}

// LoadSnapshot reads the persisted session state. Absent settings load as
// zero values; a completely empty database yields an empty snapshot, not an
// error.
func (s *SQLiteStorage) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	snap := &Snapshot{Goals: make(map[model.Category]float64)}

	transactions, err := s.GetTransactions(ctx)
	if err != nil {
		return nil, err
	}
	snap.Transactions = transactions

	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		switch key {
		case "starting_balance":
			snap.StartingBalance, _ = strconv.ParseFloat(value, 64)
		case "salary":
			snap.Salary, _ = strconv.ParseFloat(value, 64)
		case "as_of":
			snap.AsOf, _ = time.Parse(asOfLayout, value)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	goalRows, err := s.db.QueryContext(ctx, `SELECT category, amount FROM goals`)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer func() { _ = goalRows.Close() }()

	for goalRows.Next() {
		var category string
		var amount float64
		if err := goalRows.Scan(&category, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		snap.Goals[model.Category(category)] = amount
	}
	if err := goalRows.Err(); err != nil {
		return nil, err
	}

	catRows, err := s.db.QueryContext(ctx, `SELECT name FROM custom_categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query custom categories: %w", err)
	}
	defer func() { _ = catRows.Close() }()

	for catRows.Next() {
		var name string
		if err := catRows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan custom category: %w", err)
		}
		snap.CustomCategories = append(snap.CustomCategories, name)
	}
	return snap, catRows.Err()
}
