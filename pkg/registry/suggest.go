package registry

import (
	"strings"

	"github.com/agext/levenshtein"
)

// minSuggestScore is the normalised similarity below which no suggestion is made.
const minSuggestScore = 0.5

// Suggest returns the known edge label closest to label, for hinting at
// typos. ok is false when label is empty or nothing is similar enough.
func Suggest(label string) (suggestion string, ok bool) {
	query := strings.ToLower(strings.TrimSpace(label))
	if query == "" {
		return "", false
	}

	best := 0.0
	for _, candidate := range EdgeLabels() {
		dist := levenshtein.Distance(query, candidate, nil)
		maxLen := max(len(query), len(candidate))
		score := 1.0 - float64(dist)/float64(maxLen)
		if score > best {
			best = score
			suggestion = candidate
		}
	}
	if best < minSuggestScore {
		return "", false
	}
	return suggestion, true
}
