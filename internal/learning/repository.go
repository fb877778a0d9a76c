// Package learning wraps the rule cascade with a similarity matcher over
// persisted user corrections.
package learning

import (
	"context"
	"sync"

	"grana/internal/model"
)

// Repository stores classification examples most-recent-first. Put must be
// atomic with respect to other writers: it removes any example with the same
// normalized description, prepends the new one, and truncates to the cap as
// a single operation. A lost correction is a user-visible bug.
type Repository interface {
	// List returns all examples, most recent first.
	List(ctx context.Context) ([]model.ClassificationExample, error)
	// Put inserts an example, evicting any prior example with the same
	// normalized description and truncating to model.MaxExamples.
	Put(ctx context.Context, example model.ClassificationExample) error
	// Delete removes the example with the given normalized description.
	// Deleting an absent key is not an error.
	Delete(ctx context.Context, normalizedDescription string) error
}

// MemoryRepository is an in-memory Repository, safe for concurrent use.
type MemoryRepository struct {
	mu       sync.Mutex
	examples []model.ClassificationExample
}

// NewMemoryRepository creates an empty in-memory example store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// List returns a copy of the stored examples, most recent first.
func (r *MemoryRepository) List(_ context.Context) ([]model.ClassificationExample, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.ClassificationExample, len(r.examples))
	copy(out, r.examples)
	return out, nil
}

// Put applies the remove-prepend-truncate sequence under the store lock.
func (r *MemoryRepository) Put(_ context.Context, example model.ClassificationExample) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.examples[:0]
	for _, ex := range r.examples {
		if ex.NormalizedDescription != example.NormalizedDescription {
			kept = append(kept, ex)
		}
	}

	r.examples = append([]model.ClassificationExample{example}, kept...)
	if len(r.examples) > model.MaxExamples {
		r.examples = r.examples[:model.MaxExamples]
	}
	return nil
}

// Delete removes the example with the given normalized description.
func (r *MemoryRepository) Delete(_ context.Context, normalizedDescription string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.examples[:0]
	for _, ex := range r.examples {
		if ex.NormalizedDescription != normalizedDescription {
			kept = append(kept, ex)
		}
	}
	r.examples = kept
	return nil
}
