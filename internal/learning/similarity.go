package learning

import (
	"math"
	"strings"
)

// Similarity scoring weights and thresholds. The weighted score is
// 0.5*Jaccard + 0.3*keyword overlap + 0.2 amount bonus; an example must
// reach acceptThreshold to override the rule cascade.
const (
	jaccardWeight   = 0.5
	keywordWeight   = 0.3
	amountBonus     = 0.2
	amountTolerance = 10.0
	acceptThreshold = 0.55

	// Tokens this short carry no signal for keyword overlap.
	minKeywordLen = 4
)

// jaccard computes token-set Jaccard similarity between two normalized
// descriptions.
func jaccard(a, b string) float64 {
	setA := tokenSet(strings.Fields(a))
	setB := tokenSet(strings.Fields(b))
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for tok := range setA {
		if setB[tok] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

// keywordOverlap is like jaccard but only counts tokens long enough to be
// meaningful keywords, and divides by the smaller set so a short description
// fully contained in a longer one still scores 1.
func keywordOverlap(a, b string) float64 {
	setA := keywordSet(strings.Fields(a))
	setB := keywordSet(strings.Fields(b))
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for tok := range setA {
		if setB[tok] {
			intersection++
		}
	}
	smaller := len(setA)
	if len(setB) < smaller {
		smaller = len(setB)
	}
	return float64(intersection) / float64(smaller)
}

// score computes the weighted similarity between an input and a stored
// example, both already normalized.
func score(normalizedInput string, inputAmount float64, normalizedExample string, exampleAmount float64) float64 {
	s := jaccardWeight*jaccard(normalizedInput, normalizedExample) +
		keywordWeight*keywordOverlap(normalizedInput, normalizedExample)

	if math.Abs(inputAmount-exampleAmount) <= amountTolerance {
		s += amountBonus
	}
	return s
}

func tokenSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}

func keywordSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		if len(t) >= minKeywordLen {
			set[t] = true
		}
	}
	return set
}
