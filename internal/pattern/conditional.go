package pattern

import (
	"github.com/bluebitnetworks/home-assistant-mcp-v2/internal/history"
)

// DiscoverConditional finds controllable entities whose state changes
// consistently follow another entity's state changes. Sensor-like domains
// (binary_sensor, sensor, sun, weather, person, device_tracker) act as
// condition candidates; a target state change counts as correlated when it
// happens within opts.ConditionalWindow after the condition event, bounds
// inclusive. For each condition state with at least opts.MinOccurrences
// correlated changes, the majority target state is proposed when its share
// reaches opts.ConfidenceThreshold. An entity is never its own condition.
func DiscoverConditional(histories history.Map, opts Options) []Pattern {
	entities := sortedEntities(histories)

	var candidates []string
	for _, id := range entities {
		if conditionDomains[history.Domain(id)] {
			candidates = append(candidates, id)
		}
	}

	var patterns []Pattern
	for _, entityID := range entities {
		events := histories[entityID]
		if !controllable(entityID) || len(events) < opts.MinOccurrences {
			continue
		}
		domain := history.Domain(entityID)

		for _, conditionID := range candidates {
			if conditionID == entityID {
				continue
			}
			conditionEvents := histories[conditionID]
			if len(conditionEvents) < opts.MinOccurrences {
				continue
			}

			// condition state -> counter of target states seen shortly after.
			correlations := make(map[string]*stateCounter)
			var conditionStates []string
			for _, cond := range conditionEvents {
				for _, ev := range events {
					delta := ev.Timestamp.Sub(cond.Timestamp)
					if delta < 0 || delta > opts.ConditionalWindow {
						continue
					}
					c := correlations[cond.State]
					if c == nil {
						c = newStateCounter()
						correlations[cond.State] = c
						conditionStates = append(conditionStates, cond.State)
					}
					c.add(ev.State)
				}
			}

			for _, conditionState := range conditionStates {
				c := correlations[conditionState]
				total := c.total()
				if total < opts.MinOccurrences {
					continue
				}
				targetState, count := c.majority()
				confidence := float64(count) / float64(total)
				if confidence < opts.ConfidenceThreshold {
					continue
				}
				patterns = append(patterns, Pattern{
					Kind:            KindConditional,
					EntityID:        entityID,
					Domain:          domain,
					ConditionEntity: conditionID,
					ConditionState:  conditionState,
					TargetState:     targetState,
					Confidence:      confidence,
					Occurrences:     count,
				})
			}
		}
	}

	return patterns
}
