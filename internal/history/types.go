// Package history normalizes raw Home Assistant state history into
// per-entity ordered event sequences.
package history

import (
	"strings"
	"time"
)

// StateEvent is a single recorded state change for one entity.
type StateEvent struct {
	EntityID  string    `json:"entity_id"`
	Timestamp time.Time `json:"timestamp"`
	State     string    `json:"state"`
}

// Domain returns the domain prefix of the event's entity id
// (the part before the first dot, e.g. "light" for "light.kitchen").
func (e StateEvent) Domain() string {
	return Domain(e.EntityID)
}

// EntityHistory is the ordered event sequence for one entity. Events keep
// their arrival order; after normalization timestamps are non-decreasing
// within a well-formed source.
type EntityHistory []StateEvent

// Map groups entity histories by entity id. It is built once per discovery
// call and treated as immutable by everything downstream.
type Map map[string]EntityHistory

// Entities returns the entity ids present in the map, in no particular order.
func (m Map) Entities() []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	return ids
}

// EventCount returns the total number of events across all entities.
func (m Map) EventCount() int {
	n := 0
	for _, h := range m {
		n += len(h)
	}
	return n
}

// Domain returns the domain prefix of an entity id. An id without a dot is
// its own domain.
func Domain(entityID string) string {
	if i := strings.IndexByte(entityID, '.'); i >= 0 {
		return entityID[:i]
	}
	return entityID
}
