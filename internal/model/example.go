package model

import "time"

// MaxExamples caps the learned-example store. Corrections beyond the cap
// evict the oldest entries.
const MaxExamples = 500

// ClassificationExample is a stored user correction. The learned classifier
// matches new transactions against these by text similarity before falling
// back to the rule cascade.
type ClassificationExample struct {
	LearnedAt             time.Time
	NormalizedDescription string
	Category              Category
	Direction             Direction
	Amount                float64
}
