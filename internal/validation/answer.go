// Package validation compares a player's guess with a question's answer.
package validation

import (
	"strings"
	"unicode"
)

// similarityThreshold is the largest edit distance, as a share of the
// longer normalised answer, still accepted as a match
const similarityThreshold = 0.2

var articles = []string{"the ", "a ", "an "}

// Normalize lower-cases s, drops a leading article and punctuation, and
// collapses runs of whitespace.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, article := range articles {
		if strings.HasPrefix(s, article) {
			s = strings.TrimPrefix(s, article)
			break
		}
	}

	var b strings.Builder
	for _, r := range s {
		if !unicode.IsPunct(r) {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Match reports whether guess is close enough to answer. An empty guess
// never matches.
func Match(guess, answer string) bool {
	g, a := Normalize(guess), Normalize(answer)
	if g == "" || a == "" {
		return false
	}
	if g == a || strings.Contains(g, a) || strings.Contains(a, g) {
		return true
	}

	gr, ar := []rune(g), []rune(a)
	distance := levenshtein(gr, ar)
	return float64(distance)/float64(max(len(gr), len(ar))) < similarityThreshold
}

// levenshtein computes the edit distance between a and b with two rows
func levenshtein(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
