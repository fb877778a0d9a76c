package storage

import (
	"context"
	"fmt"
	"time"

	"grana/internal/common"
	"grana/internal/model"
)

// fillAndValidate assigns content-hash IDs to transactions that lack one and
// validates the whole batch before anything touches the database.
func fillAndValidate(transactions []model.Transaction) error {
	for i := range transactions {
		if transactions[i].ID == "" {
			transactions[i].ID = transactions[i].GenerateHash()
		}
		if err := validateTransaction(&transactions[i]); err != nil {
			return fmt.Errorf("transaction at index %d: %w", i, err)
		}
	}
	return nil
}

// SaveTransactions upserts a batch of transactions in one database
// transaction. Transactions without an ID get a content hash as their key.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := fillAndValidate(transactions); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (
			id, date, description, amount, direction, category,
			statement_line, statement_detail, document_number
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			category = excluded.category
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, txn := range transactions {
		if _, err := stmt.ExecContext(ctx,
			txn.ID, txn.Date, txn.Description, txn.Amount,
			string(txn.Direction), string(txn.Category),
			txn.StatementLine, txn.StatementDetail, txn.DocumentNumber,
		); err != nil {
			return fmt.Errorf("failed to save transaction %s: %w", txn.ID, err)
		}
	}

	return tx.Commit()
}

// ReplaceTransactions swaps the stored set for the given one. The delete and
// the inserts commit together, so a failed replace leaves the previous set
// untouched.
func (s *SQLiteStorage) ReplaceTransactions(ctx context.Context, transactions []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := fillAndValidate(transactions); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("failed to clear transactions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (
			id, date, description, amount, direction, category,
			statement_line, statement_detail, document_number
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, txn := range transactions {
		if _, err := stmt.ExecContext(ctx,
			txn.ID, txn.Date, txn.Description, txn.Amount,
			string(txn.Direction), string(txn.Category),
			txn.StatementLine, txn.StatementDetail, txn.DocumentNumber,
		); err != nil {
			return fmt.Errorf("failed to save transaction %s: %w", txn.ID, err)
		}
	}

	return tx.Commit()
}

// GetTransactions returns all transactions in chronological order.
func (s *SQLiteStorage) GetTransactions(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, description, amount, direction, category,
		       COALESCE(statement_line, ''), COALESCE(statement_detail, ''),
		       COALESCE(document_number, '')
		FROM transactions
		ORDER BY date, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		var date time.Time
		var direction, category string
		if err := rows.Scan(&txn.ID, &date, &txn.Description, &txn.Amount,
			&direction, &category,
			&txn.StatementLine, &txn.StatementDetail, &txn.DocumentNumber); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txn.Date = date
		txn.Direction = model.Direction(direction)
		txn.Category = model.Category(category)
		transactions = append(transactions, txn)
	}
	return transactions, rows.Err()
}

// UpdateTransactionCategory re-categorizes a single transaction. Category is
// the only field re-categorization may touch.
func (s *SQLiteStorage) UpdateTransactionCategory(ctx context.Context, id string, category model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE transactions SET category = ? WHERE id = ?`,
		string(category), id)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("transaction %s: %w", id, common.ErrNotFound)
	}
	return nil
}

// ClearTransactions removes every transaction. Individual deletes are not
// supported; the data model only allows bulk reset.
func (s *SQLiteStorage) ClearTransactions(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM transactions`)
	if err != nil {
		return fmt.Errorf("failed to clear transactions: %w", err)
	}
	return nil
}
