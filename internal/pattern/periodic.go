package pattern

import (
	"math"
	"sort"
	"time"

	"github.com/bluebitnetworks/home-assistant-mcp-v2/internal/history"
)

// DiscoverPeriodic finds controllable entities that reach the same state
// at a steady interval. A state needs at least 2×opts.MinOccurrences
// timestamps. The inter-arrival intervals must be consistent (population
// standard deviation under 30% of the mean); the mean rounds to the
// nearest half hour and is accepted only inside [1,24] hours. Confidence
// is 1 - stddev/mean.
func DiscoverPeriodic(histories history.Map, opts Options) []Pattern {
	floor := 2 * opts.MinOccurrences

	var patterns []Pattern
	for _, entityID := range sortedEntities(histories) {
		events := histories[entityID]
		if !controllable(entityID) || len(events) < floor {
			continue
		}
		domain := history.Domain(entityID)

		byState := make(map[string][]time.Time)
		var states []string
		for _, ev := range events {
			if _, seen := byState[ev.State]; !seen {
				states = append(states, ev.State)
			}
			byState[ev.State] = append(byState[ev.State], ev.Timestamp)
		}

		for _, state := range states {
			timestamps := byState[state]
			if len(timestamps) < floor {
				continue
			}
			sort.Slice(timestamps, func(i, j int) bool { return timestamps[i].Before(timestamps[j]) })

			intervals := make([]float64, 0, len(timestamps)-1)
			for i := 1; i < len(timestamps); i++ {
				intervals = append(intervals, timestamps[i].Sub(timestamps[i-1]).Hours())
			}

			mean, stddev := meanStddev(intervals)
			if mean <= 0 || stddev >= mean*0.3 {
				continue
			}

			rounded := math.Round(mean*2) / 2
			if rounded < 1 || rounded > 24 {
				continue
			}

			patterns = append(patterns, Pattern{
				Kind:          KindPeriodic,
				EntityID:      entityID,
				Domain:        domain,
				State:         state,
				IntervalHours: rounded,
				Confidence:    1 - stddev/mean,
				Occurrences:   len(timestamps),
			})
		}
	}

	return patterns
}

// meanStddev returns the mean and population standard deviation of values.
func meanStddev(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}
