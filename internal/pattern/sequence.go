package pattern

import (
	"sort"
	"strings"

	"github.com/bluebitnetworks/home-assistant-mcp-v2/internal/history"
)

// DiscoverSequences finds ordered chains of state changes across different
// entities that recur within a short window. Every timeline position seeds
// a candidate chain; the chain absorbs later events from entities other
// than the seed's while they fall inside opts.SequenceWindow. Chains
// shorter than three steps are discarded. Each distinct (entity, state)
// shape is counted once across the whole timeline; shapes reaching
// opts.MinOccurrences are emitted with confidence min(1, occurrences/10).
func DiscoverSequences(histories history.Map, opts Options) []Pattern {
	timeline := flatten(histories)

	var patterns []Pattern
	seen := make(map[string]bool)

	for i := range timeline {
		seed := timeline[i]
		chain := []history.StateEvent{seed}
		for j := i + 1; j < len(timeline); j++ {
			ev := timeline[j]
			if ev.Timestamp.Sub(seed.Timestamp) > opts.SequenceWindow {
				break
			}
			if ev.EntityID == seed.EntityID {
				continue
			}
			chain = append(chain, ev)
		}
		if len(chain) < 3 {
			continue
		}

		key := shapeKey(chain)
		if seen[key] {
			continue
		}
		seen[key] = true

		occurrences := countShape(timeline, chain, opts)
		if occurrences < opts.MinOccurrences {
			continue
		}

		steps := make([]Step, len(chain))
		for k, ev := range chain {
			steps[k] = Step{EntityID: ev.EntityID, State: ev.State, Domain: ev.Domain()}
		}
		confidence := float64(occurrences) / 10
		if confidence > 1 {
			confidence = 1
		}
		patterns = append(patterns, Pattern{
			Kind:        KindSequence,
			Steps:       steps,
			Confidence:  confidence,
			Occurrences: occurrences,
		})
	}

	return patterns
}

// flatten merges all entity histories into one timeline, stably sorted by
// timestamp. Entities are appended in lexical order first so that equal
// timestamps keep a deterministic relative order.
func flatten(histories history.Map) []history.StateEvent {
	var timeline []history.StateEvent
	for _, entityID := range sortedEntities(histories) {
		timeline = append(timeline, histories[entityID]...)
	}
	sort.SliceStable(timeline, func(i, j int) bool {
		return timeline[i].Timestamp.Before(timeline[j].Timestamp)
	})
	return timeline
}

// shapeKey builds a dedup key from the ordered (entity, state) pairs of a
// chain.
func shapeKey(chain []history.StateEvent) string {
	var sb strings.Builder
	for _, ev := range chain {
		sb.WriteString(ev.EntityID)
		sb.WriteByte('=')
		sb.WriteString(ev.State)
		sb.WriteByte('|')
	}
	return sb.String()
}

// countShape counts how many times the chain's exact ordered shape recurs
// in the timeline. A match starts at any event equal to the chain's seed;
// each later step must then appear, in order, within the window measured
// from that seed.
func countShape(timeline []history.StateEvent, chain []history.StateEvent, opts Options) int {
	count := 0
	for i := range timeline {
		if timeline[i].EntityID != chain[0].EntityID || timeline[i].State != chain[0].State {
			continue
		}
		seedTime := timeline[i].Timestamp
		pos := i
		matched := true
		for _, want := range chain[1:] {
			found := false
			for k := pos + 1; k < len(timeline); k++ {
				if timeline[k].Timestamp.Sub(seedTime) > opts.SequenceWindow {
					break
				}
				if timeline[k].EntityID == want.EntityID && timeline[k].State == want.State {
					pos = k
					found = true
					break
				}
			}
			if !found {
				matched = false
				break
			}
		}
		if matched {
			count++
		}
	}
	return count
}
