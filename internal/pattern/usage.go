package pattern

import (
	"fmt"
	"sort"
	"time"

	"github.com/bluebitnetworks/home-assistant-mcp-v2/internal/history"
)

// Usage pattern types produced by AnalyzeUsage.
const (
	UsageTime  = "time"
	UsageState = "state"
)

// UsagePattern is a lightweight single-pass finding: either a fixed
// time-of-day habit or a fast follow of one entity after another. It is a
// coarser, cheaper cousin of the full mining passes, useful for a quick
// first look at an unfamiliar history.
type UsagePattern struct {
	EntityID    string  `json:"entity_id"`
	Type        string  `json:"type"`
	Confidence  float64 `json:"confidence"`
	Occurrences int     `json:"occurrences"`

	// TriggerTime is an "HH:00" bucket label, set for time patterns.
	TriggerTime string `json:"trigger_time,omitempty"`

	// TriggerEntity and TriggerState are set for state patterns.
	TriggerEntity string `json:"trigger_entity,omitempty"`
	TriggerState  string `json:"trigger_state,omitempty"`

	// ActionState is the state the entity settles into.
	ActionState string `json:"action_state"`
}

// usageConfidenceFloor is the fixed acceptance floor for usage analysis.
const usageConfidenceFloor = 0.7

// usageFollowWindow bounds how long after a trigger change a target change
// still counts for a state usage pattern.
const usageFollowWindow = time.Minute

// usageTriggerDomains are domains treated as triggers by the state pass.
var usageTriggerDomains = map[string]bool{
	"binary_sensor":  true,
	"sensor":         true,
	"device_tracker": true,
	"person":         true,
}

// AnalyzeUsage runs the quick usage analysis over all entities: hour-of-day
// habits and one-minute follow correlations. Results sort by confidence
// descending and are capped at max (unlimited when max <= 0).
func AnalyzeUsage(histories history.Map, opts Options, max int) []UsagePattern {
	var patterns []UsagePattern

	for _, entityID := range sortedEntities(histories) {
		events := histories[entityID]
		if len(events) < opts.MinOccurrences {
			continue
		}
		patterns = append(patterns, usageTimePatterns(entityID, events, opts)...)
		patterns = append(patterns, usageStatePatterns(entityID, events, histories, opts)...)
	}

	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].Confidence > patterns[j].Confidence
	})
	if max > 0 && len(patterns) > max {
		patterns = patterns[:max]
	}
	return patterns
}

// usageTimePatterns buckets an entity's events by hour of day and emits a
// pattern for every hour whose majority state is consistent enough.
func usageTimePatterns(entityID string, events history.EntityHistory, opts Options) []UsagePattern {
	buckets := make(map[int]*stateCounter)
	for _, ev := range events {
		hour := ev.Timestamp.Hour()
		c := buckets[hour]
		if c == nil {
			c = newStateCounter()
			buckets[hour] = c
		}
		c.add(ev.State)
	}

	hours := make([]int, 0, len(buckets))
	for h := range buckets {
		hours = append(hours, h)
	}
	sort.Ints(hours)

	var patterns []UsagePattern
	for _, hour := range hours {
		c := buckets[hour]
		total := c.total()
		if total < opts.MinOccurrences {
			continue
		}
		state, count := c.majority()
		confidence := float64(count) / float64(total)
		if confidence < usageConfidenceFloor {
			continue
		}
		patterns = append(patterns, UsagePattern{
			EntityID:    entityID,
			Type:        UsageTime,
			TriggerTime: fmt.Sprintf("%02d:00", hour),
			ActionState: state,
			Confidence:  confidence,
			Occurrences: total,
		})
	}
	return patterns
}

// usageStatePatterns looks for this entity following another entity's
// state change within one minute, consistently enough to automate.
func usageStatePatterns(entityID string, events history.EntityHistory, histories history.Map, opts Options) []UsagePattern {
	if !controllable(entityID) {
		return nil
	}

	var patterns []UsagePattern
	for _, triggerID := range sortedEntities(histories) {
		if triggerID == entityID || !usageTriggerDomains[history.Domain(triggerID)] {
			continue
		}
		triggerEvents := histories[triggerID]
		if len(triggerEvents) < opts.MinOccurrences {
			continue
		}

		// trigger state -> follower states within the window.
		followers := make(map[string]*stateCounter)
		var triggerStates []string
		for _, trig := range triggerEvents {
			for _, ev := range events {
				delta := ev.Timestamp.Sub(trig.Timestamp)
				if delta < 0 || delta > usageFollowWindow {
					continue
				}
				c := followers[trig.State]
				if c == nil {
					c = newStateCounter()
					followers[trig.State] = c
					triggerStates = append(triggerStates, trig.State)
				}
				c.add(ev.State)
			}
		}

		for _, triggerState := range triggerStates {
			c := followers[triggerState]
			total := c.total()
			if total < opts.MinOccurrences {
				continue
			}
			state, count := c.majority()
			confidence := float64(count) / float64(total)
			if confidence < usageConfidenceFloor {
				continue
			}
			patterns = append(patterns, UsagePattern{
				EntityID:      entityID,
				Type:          UsageState,
				TriggerEntity: triggerID,
				TriggerState:  triggerState,
				ActionState:   state,
				Confidence:    confidence,
				Occurrences:   count,
			})
		}
	}
	return patterns
}
