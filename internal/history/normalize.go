package history

import (
	"encoding/json"
	"log/slog"
	"time"
)

// RawEvent is one history entry as delivered by the platform's history API
// or a recorder export. LastChanged is an ISO 8601 string, possibly with a
// trailing 'Z'.
type RawEvent struct {
	EntityID    string `json:"entity_id"`
	State       string `json:"state"`
	LastChanged string `json:"last_changed"`
}

// Normalize groups a flat list of raw events into per-entity histories,
// preserving arrival order. Events with an empty state, an empty timestamp,
// or an unparsable timestamp are dropped; a drop never fails the batch.
func Normalize(events []RawEvent, log *slog.Logger) Map {
	m := make(Map)
	dropped := 0
	for _, ev := range events {
		if ev.EntityID == "" {
			dropped++
			continue
		}
		ts, ok := ParseTimestamp(ev.LastChanged)
		if !ok || ev.State == "" {
			dropped++
			continue
		}
		m[ev.EntityID] = append(m[ev.EntityID], StateEvent{
			EntityID:  ev.EntityID,
			Timestamp: ts,
			State:     ev.State,
		})
	}
	if dropped > 0 && log != nil {
		log.Warn("dropped malformed history events", "dropped", dropped, "kept", m.EventCount())
	}
	return m
}

// NormalizeGrouped handles input that is already grouped by entity id.
// The map key wins over any entity_id carried inside the events themselves,
// matching the platform's pre-grouped history response shape.
func NormalizeGrouped(grouped map[string][]RawEvent, log *slog.Logger) Map {
	var flat []RawEvent
	for entityID, events := range grouped {
		for _, ev := range events {
			ev.EntityID = entityID
			flat = append(flat, ev)
		}
	}
	return Normalize(flat, log)
}

// NormalizeJSON accepts raw JSON in either supported container shape: a
// flat array of events or an object mapping entity id to event arrays.
// Any other shape yields an empty map and a warning, not an error.
func NormalizeJSON(data []byte, log *slog.Logger) Map {
	var flat []RawEvent
	if err := json.Unmarshal(data, &flat); err == nil {
		return Normalize(flat, log)
	}
	var grouped map[string][]RawEvent
	if err := json.Unmarshal(data, &grouped); err == nil {
		return NormalizeGrouped(grouped, log)
	}
	if log != nil {
		log.Warn("unsupported history input shape, expected event array or entity map")
	}
	return make(Map)
}

// timestampLayouts are tried in order by ParseTimestamp. RFC 3339 covers
// the trailing-Z form, which parses as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses an ISO 8601 timestamp string. A trailing 'Z' is
// treated as UTC. Returns false for empty or unparsable input.
func ParseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
