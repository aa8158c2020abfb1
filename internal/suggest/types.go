// Package suggest assembles discovered patterns into ranked, human-readable
// automation suggestions.
package suggest

import (
	"github.com/bluebitnetworks/home-assistant-mcp-v2/internal/pattern"
)

// Categories are the fixed suggestion groupings, one per pattern kind.
var Categories = []string{"daily", "conditional", "sequence", "periodic"}

// Suggestion is one ranked automation proposal. It is read-only once
// returned: the assembler never hands out shared mutable state.
type Suggestion struct {
	// ID uniquely identifies the suggestion; it matches the id of the
	// generated automation document.
	ID string `json:"id"`

	// Type is the pattern kind the suggestion came from.
	Type string `json:"type"`

	Title       string  `json:"title"`
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence"`

	// Entities lists every entity the suggestion touches, in pattern
	// order with duplicates removed.
	Entities []string `json:"entities"`

	// Pattern is the mined pattern backing the suggestion.
	Pattern pattern.Pattern `json:"pattern"`

	// Config is the generated automation configuration, serialized and
	// ready for the caller's configuration layer to validate and persist.
	Config string `json:"config"`
}

// ByCategory groups suggestions into the fixed categories. Every category
// key is present even when empty.
func ByCategory(suggestions []Suggestion) map[string][]Suggestion {
	grouped := make(map[string][]Suggestion, len(Categories))
	for _, c := range Categories {
		grouped[c] = []Suggestion{}
	}
	for _, s := range suggestions {
		if _, ok := grouped[s.Type]; ok {
			grouped[s.Type] = append(grouped[s.Type], s)
		}
	}
	return grouped
}

// ByEntity returns the suggestions whose entity set contains entityID.
func ByEntity(suggestions []Suggestion, entityID string) []Suggestion {
	var matched []Suggestion
	for _, s := range suggestions {
		for _, id := range s.Entities {
			if id == entityID {
				matched = append(matched, s)
				break
			}
		}
	}
	return matched
}
