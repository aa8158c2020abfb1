// Package pattern implements the mining passes that discover recurring
// usage patterns in normalized entity state histories.
package pattern

import (
	"time"

	"github.com/bluebitnetworks/home-assistant-mcp-v2/internal/history"
)

// Kind identifies which mining pass produced a pattern.
type Kind string

// Pattern kinds.
const (
	KindDaily       Kind = "daily"
	KindSequence    Kind = "sequence"
	KindConditional Kind = "conditional"
	KindPeriodic    Kind = "periodic"
)

// Step is one element of a sequence pattern: an entity reaching a state.
type Step struct {
	EntityID string `json:"entity_id"`
	State    string `json:"state"`
	Domain   string `json:"domain"`
}

// Pattern is a discovered usage pattern. Kind selects which of the
// variant fields are meaningful:
//
//   - daily: EntityID, Domain, DayOfWeek, Hour, State
//   - sequence: Steps (always three or more)
//   - conditional: EntityID, Domain, ConditionEntity, ConditionState, TargetState
//   - periodic: EntityID, Domain, State, IntervalHours
//
// Confidence is a heuristic score in [0,1]; Occurrences is the number of
// observed instances supporting the pattern.
type Pattern struct {
	Kind        Kind    `json:"type"`
	Confidence  float64 `json:"confidence"`
	Occurrences int     `json:"occurrences"`

	EntityID string `json:"entity_id,omitempty"`
	Domain   string `json:"domain,omitempty"`
	State    string `json:"state,omitempty"`

	// DayOfWeek is zero-based with Monday as 0, Sunday as 6.
	DayOfWeek int `json:"day_of_week,omitempty"`
	Hour      int `json:"hour,omitempty"`

	Steps []Step `json:"steps,omitempty"`

	ConditionEntity string `json:"condition_entity,omitempty"`
	ConditionState  string `json:"condition_state,omitempty"`
	TargetState     string `json:"target_state,omitempty"`

	// IntervalHours is a multiple of 0.5 in [1,24].
	IntervalHours float64 `json:"interval_hours,omitempty"`
}

// Entities returns every entity id the pattern touches.
func (p Pattern) Entities() []string {
	switch p.Kind {
	case KindSequence:
		ids := make([]string, len(p.Steps))
		for i, s := range p.Steps {
			ids[i] = s.EntityID
		}
		return ids
	case KindConditional:
		return []string{p.EntityID, p.ConditionEntity}
	default:
		return []string{p.EntityID}
	}
}

// Options are the tunable knobs shared by all mining passes.
type Options struct {
	// MinOccurrences is the minimum sample count before a pattern is
	// proposed. The periodic miner requires twice this many events.
	MinOccurrences int

	// ConfidenceThreshold is the acceptance floor for the daily and
	// conditional miners.
	ConfidenceThreshold float64

	// SequenceWindow bounds how far apart the first and last step of a
	// sequence may be.
	SequenceWindow time.Duration

	// ConditionalWindow bounds how long after a condition change a target
	// state change still counts as correlated. The bound is inclusive.
	ConditionalWindow time.Duration
}

// DefaultOptions returns the mining knobs used when no configuration is
// supplied.
func DefaultOptions() Options {
	return Options{
		MinOccurrences:      3,
		ConfidenceThreshold: 0.7,
		SequenceWindow:      2 * time.Minute,
		ConditionalWindow:   10 * time.Minute,
	}
}

// Miner is a single mining pass over normalized histories. Miners only
// read the history map and may safely run concurrently with one another.
type Miner func(histories history.Map, opts Options) []Pattern

// Miners returns the four built-in mining passes in their canonical order:
// daily, sequence, conditional, periodic.
func Miners() []Miner {
	return []Miner{DiscoverDaily, DiscoverSequences, DiscoverConditional, DiscoverPeriodic}
}

// conditionDomains are entity domains that make good automation conditions.
var conditionDomains = map[string]bool{
	"binary_sensor":  true,
	"sensor":         true,
	"sun":            true,
	"weather":        true,
	"person":         true,
	"device_tracker": true,
}

// passiveDomains are domains that cannot be commanded; their entities are
// never targets of a mined automation.
var passiveDomains = map[string]bool{
	"binary_sensor": true,
	"sensor":        true,
	"sun":           true,
	"weather":       true,
}

// controllable reports whether an entity can be commanded.
func controllable(entityID string) bool {
	return !passiveDomains[history.Domain(entityID)]
}
