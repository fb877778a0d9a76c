package learning

import (
	"context"
	"fmt"
	"math"
	"time"

	"grana/internal/common"
	"grana/internal/model"
	"grana/internal/rules"
)

// Source says which path produced a classification.
type Source string

// Classification source constants.
const (
	SourceRules   Source = "rules"
	SourceLearned Source = "learned"
)

// Result is a classification enriched with confidence and provenance.
type Result struct {
	Category   model.Category
	Direction  model.Direction
	Confidence float64
	Source     Source
}

// Classifier consults stored user corrections before falling back to the
// rule cascade. It is safe for concurrent use; all mutation goes through the
// repository.
type Classifier struct {
	repo Repository
}

// NewClassifier creates a classifier backed by the given example repository.
func NewClassifier(repo Repository) *Classifier {
	return &Classifier{repo: repo}
}

// Classify returns the best learned match for (description, amount) if one
// scores above the acceptance threshold, otherwise the rule-cascade result.
// A repository failure degrades silently to rules: classification must never
// depend on the learned store being reachable.
func (c *Classifier) Classify(ctx context.Context, description string, signedAmount float64) Result {
	ruleResult := rules.Classify(description, signedAmount)
	fallback := Result{
		Category:   ruleResult.Category,
		Direction:  ruleResult.Direction,
		Confidence: 0.5,
		Source:     SourceRules,
	}

	if c.repo == nil {
		return fallback
	}

	examples, err := c.repo.List(ctx)
	if err != nil {
		common.LogDebug("learned store unavailable, using rules", common.Fields{"error": err})
		return fallback
	}

	normalized := rules.Normalize(description)
	amount := math.Abs(signedAmount)

	// Examples are most-recent-first; keeping the first-found max gives
	// newer corrections the tie-break.
	best := -1.0
	var bestExample model.ClassificationExample
	for _, ex := range examples {
		if s := score(normalized, amount, ex.NormalizedDescription, ex.Amount); s > best {
			best = s
			bestExample = ex
		}
	}

	if best >= acceptThreshold {
		return Result{
			Category:   bestExample.Category,
			Direction:  bestExample.Direction,
			Confidence: best,
			Source:     SourceLearned,
		}
	}
	return fallback
}

// Learn records a user correction. Corrections with the same normalized
// description overwrite rather than accumulate. Unlike Classify, mutation
// requires a reachable store: a correction the user cannot rely on later is
// worse than an error now.
func (c *Classifier) Learn(ctx context.Context, description string, amount float64, category model.Category, direction model.Direction) error {
	if c.repo == nil {
		return fmt.Errorf("learned store not configured: %w", common.ErrMissingConfig)
	}
	return c.repo.Put(ctx, model.ClassificationExample{
		LearnedAt:             time.Now(),
		NormalizedDescription: rules.Normalize(description),
		Category:              category,
		Direction:             direction,
		Amount:                math.Abs(amount),
	})
}

// Unlearn forgets the correction stored for a description, if any.
func (c *Classifier) Unlearn(ctx context.Context, description string) error {
	if c.repo == nil {
		return fmt.Errorf("learned store not configured: %w", common.ErrMissingConfig)
	}
	return c.repo.Delete(ctx, rules.Normalize(description))
}
