package storage

import (
	"context"
	"fmt"
	"time"

	"grana/internal/model"
)

// The example store implements learning.Repository. Put runs the
// remove-prepend-truncate sequence inside a single SQL transaction so
// concurrent corrections cannot interleave and lose writes.

// List returns all learned examples, most recent first.
func (s *SQLiteStorage) List(ctx context.Context) ([]model.ClassificationExample, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT normalized_description, category, direction, amount, learned_at
		FROM learned_examples
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query learned examples: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var examples []model.ClassificationExample
	for rows.Next() {
		var ex model.ClassificationExample
		var category, direction string
		var learnedAt time.Time
		if err := rows.Scan(&ex.NormalizedDescription, &category, &direction, &ex.Amount, &learnedAt); err != nil {
			return nil, fmt.Errorf("failed to scan learned example: %w", err)
		}
		ex.Category = model.Category(category)
		ex.Direction = model.Direction(direction)
		ex.LearnedAt = learnedAt
		examples = append(examples, ex)
	}
	return examples, rows.Err()
}

// Put stores a correction, evicting any prior example with the same
// normalized description and truncating the store to its cap.
func (s *SQLiteStorage) Put(ctx context.Context, example model.ClassificationExample) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(example.NormalizedDescription, "normalizedDescription"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM learned_examples WHERE normalized_description = ?`,
		example.NormalizedDescription); err != nil {
		return fmt.Errorf("failed to evict prior example: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO learned_examples (normalized_description, category, direction, amount, learned_at)
		VALUES (?, ?, ?, ?, ?)
	`, example.NormalizedDescription, string(example.Category), string(example.Direction),
		example.Amount, example.LearnedAt); err != nil {
		return fmt.Errorf("failed to insert example: %w", err)
	}

	// Newest rows have the highest ids; anything past the cap goes.
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM learned_examples
		WHERE id NOT IN (SELECT id FROM learned_examples ORDER BY id DESC LIMIT ?)
	`, model.MaxExamples); err != nil {
		return fmt.Errorf("failed to truncate examples: %w", err)
	}

	return tx.Commit()
}

// Delete removes the example with the given normalized description.
// Deleting an absent key is not an error.
func (s *SQLiteStorage) Delete(ctx context.Context, normalizedDescription string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`DELETE FROM learned_examples WHERE normalized_description = ?`,
		normalizedDescription)
	if err != nil {
		return fmt.Errorf("failed to delete example: %w", err)
	}
	return nil
}
