package domain

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Scorer returns a normalized similarity in [0,1] for two strings. It must be
// symmetric and score identical strings at 1.0.
type Scorer func(a, b string) float64

// Similarity is the default Scorer: the longest-matching-block ratio,
// 2*M/T, where M is the number of matched characters and T the total length
// of both strings. Arguments are put in a canonical order first so the score
// does not depend on which side is the query.
func Similarity(a, b string) float64 {
	return newMatcher(a, b).Ratio()
}

// similarityAtLeast reports the Similarity of a and b when it reaches cutoff.
// The cheap upper bounds are checked first, which skips most candidates of a
// large tool list without computing matching blocks.
func similarityAtLeast(a, b string, cutoff float64) (float64, bool) {
	m := newMatcher(a, b)
	if m.RealQuickRatio() < cutoff || m.QuickRatio() < cutoff {
		return 0, false
	}
	score := m.Ratio()
	return score, score >= cutoff
}

func newMatcher(a, b string) *difflib.SequenceMatcher {
	if b < a {
		a, b = b, a
	}
	return difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
}
