// Package rules implements the deterministic keyword-cascade classifier.
package rules

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// deaccent removes combining diacritical marks so "cartão" and "cartao"
// normalize identically.
var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// pixPattern recognizes the PIX acronym even when statements pepper it with
// punctuation ("P.I.X", "PIX*RECIPIENT"). It must be rewritten to a plain
// token before punctuation is collapsed, or the acronym is lost.
var pixPattern = regexp.MustCompile(`\bp\W?i\W?x\b`)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Normalize lowercases, strips diacritics, and collapses punctuation to
// single spaces. The same normalization is shared by the rule cascade, the
// learned-example store, and the deduplicator: two descriptions are "the
// same" only if their normalized forms are byte-for-byte equal.
func Normalize(s string) string {
	s = strings.ToLower(s)
	if out, _, err := transform.String(deaccent, s); err == nil {
		s = out
	}
	s = pixPattern.ReplaceAllString(s, "pix")
	s = nonAlnum.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// Tokens splits a normalized description into its word set.
func Tokens(s string) []string {
	return strings.Fields(Normalize(s))
}
