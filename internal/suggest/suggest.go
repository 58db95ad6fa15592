// Package suggest finds "did you mean" candidates for mistyped keys and
// enum values using Levenshtein distance.
package suggest

import (
	"sort"
	"strings"
)

// levenshtein calculates the edit distance between two strings
func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
		matrix[i][0] = i
	}
	for j := range matrix[0] {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}

// Closest returns up to three entries of valid that are close to unknown,
// best first. Case and separators ('-' vs '_') are ignored.
func Closest(unknown string, valid []string) []string {
	norm := func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimLeft(s, "-")), "-", "_")
	}
	u := norm(unknown)
	if u == "" {
		return nil
	}

	type scored struct {
		value string
		score int
	}
	var candidates []scored
	maxDist := max(2, len(u)/3)
	for _, v := range valid {
		n := norm(v)
		dist := levenshtein(u, n)
		// prefixes like "dead" for "deadline_window_days" count as close
		if strings.HasPrefix(n, u) && len(u) >= 3 {
			dist = 0
		}
		if dist <= maxDist {
			candidates = append(candidates, scored{v, dist})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score < candidates[j].score
	})

	var result []string
	for i := 0; i < len(candidates) && i < 3; i++ {
		result = append(result, candidates[i].value)
	}
	return result
}

// Hint formats Closest as a sentence, or returns "" when nothing is close.
func Hint(unknown string, valid []string) string {
	c := Closest(unknown, valid)
	if len(c) == 0 {
		return ""
	}
	return "did you mean " + strings.Join(c, " or ") + "?"
}
