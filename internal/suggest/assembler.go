package suggest

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/bluebitnetworks/home-assistant-mcp-v2/internal/history"
	"github.com/bluebitnetworks/home-assistant-mcp-v2/internal/pattern"
)

// Assembler runs the mining passes and turns their patterns into ranked,
// filtered, capped suggestions.
type Assembler struct {
	opts           pattern.Options
	minConfidence  float64
	maxSuggestions int
	miners         []pattern.Miner
}

// NewAssembler creates an assembler with the four built-in mining passes.
// minConfidence is the confidence floor applied to the merged suggestion
// list; maxSuggestions caps its length (unlimited when <= 0).
func NewAssembler(opts pattern.Options, minConfidence float64, maxSuggestions int) *Assembler {
	return &Assembler{
		opts:           opts,
		minConfidence:  minConfidence,
		maxSuggestions: maxSuggestions,
		miners:         pattern.Miners(),
	}
}

// Generate runs every mining pass over the same normalized histories and
// assembles the results. The passes only read the history map, so they run
// concurrently, one goroutine each; output order is fixed by the canonical
// miner order, not by completion order. Suggestions come back sorted by
// confidence descending, ties keeping their merge order.
func (a *Assembler) Generate(ctx context.Context, histories history.Map) ([]Suggestion, error) {
	results := make([][]pattern.Pattern, len(a.miners))

	g, _ := errgroup.WithContext(ctx)
	for i, miner := range a.miners {
		i, miner := i, miner
		g.Go(func() error {
			results[i] = miner(histories, a.opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var suggestions []Suggestion
	for _, patterns := range results {
		for _, p := range patterns {
			s, err := Convert(p)
			if err != nil {
				// A pattern the synthesizer cannot express is dropped, not fatal.
				continue
			}
			suggestions = append(suggestions, s)
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})

	filtered := suggestions[:0]
	for _, s := range suggestions {
		if s.Confidence >= a.minConfidence {
			filtered = append(filtered, s)
		}
	}
	suggestions = filtered

	if a.maxSuggestions > 0 && len(suggestions) > a.maxSuggestions {
		suggestions = suggestions[:a.maxSuggestions]
	}
	return suggestions, nil
}
