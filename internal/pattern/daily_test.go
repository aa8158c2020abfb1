package pattern

import (
	"testing"
	"time"

	"github.com/bluebitnetworks/home-assistant-mcp-v2/internal/history"
)

// event builds a StateEvent at the given UTC time.
func event(entityID, state string, t time.Time) history.StateEvent {
	return history.StateEvent{EntityID: entityID, Timestamp: t, State: state}
}

// at is shorthand for a UTC timestamp.
func at(year int, month time.Month, day, hour, min, sec int) time.Time {
	return time.Date(year, month, day, hour, min, sec, 0, time.UTC)
}

// --- DiscoverDaily ---

func TestDiscoverDaily_ConsistentBucket(t *testing.T) {
	// Three Mondays in a row, always "on" in the 7 o'clock hour.
	// 2026-01-05, 2026-01-12, 2026-01-19 are Mondays.
	histories := history.Map{
		"light.living_room": {
			event("light.living_room", "on", at(2026, time.January, 5, 7, 5, 0)),
			event("light.living_room", "on", at(2026, time.January, 12, 7, 10, 0)),
			event("light.living_room", "on", at(2026, time.January, 19, 7, 20, 0)),
		},
	}

	patterns := DiscoverDaily(histories, DefaultOptions())
	if len(patterns) != 1 {
		t.Fatalf("expected exactly 1 daily pattern, got %d", len(patterns))
	}

	p := patterns[0]
	if p.Kind != KindDaily {
		t.Errorf("kind = %q, want %q", p.Kind, KindDaily)
	}
	if p.EntityID != "light.living_room" || p.Domain != "light" {
		t.Errorf("entity = %q domain = %q", p.EntityID, p.Domain)
	}
	if p.DayOfWeek != 0 {
		t.Errorf("day_of_week = %d, want 0 (Monday)", p.DayOfWeek)
	}
	if p.Hour != 7 {
		t.Errorf("hour = %d, want 7", p.Hour)
	}
	if p.State != "on" {
		t.Errorf("state = %q, want on", p.State)
	}
	if p.Confidence != 1.0 {
		t.Errorf("confidence = %g, want 1.0 for a fully consistent bucket", p.Confidence)
	}
	if p.Occurrences != 3 {
		t.Errorf("occurrences = %d, want 3", p.Occurrences)
	}
}

func TestDiscoverDaily_MajorityConfidence(t *testing.T) {
	// Four events in one bucket, three "on" and one "off": confidence 3/4.
	histories := history.Map{
		"switch.fan": {
			event("switch.fan", "on", at(2026, time.January, 6, 9, 0, 0)),
			event("switch.fan", "on", at(2026, time.January, 13, 9, 15, 0)),
			event("switch.fan", "off", at(2026, time.January, 20, 9, 30, 0)),
			event("switch.fan", "on", at(2026, time.January, 27, 9, 45, 0)),
		},
	}

	patterns := DiscoverDaily(histories, DefaultOptions())
	if len(patterns) != 1 {
		t.Fatalf("expected 1 pattern, got %d", len(patterns))
	}
	if got, want := patterns[0].Confidence, 0.75; got != want {
		t.Errorf("confidence = %g, want %g", got, want)
	}
	if patterns[0].Occurrences != 3 {
		t.Errorf("occurrences = %d, want majority count 3", patterns[0].Occurrences)
	}
}

func TestDiscoverDaily_SuppressedBelowThreshold(t *testing.T) {
	// Two "on", one "off": confidence 2/3 < 0.7 suppresses the bucket.
	histories := history.Map{
		"light.hall": {
			event("light.hall", "on", at(2026, time.January, 7, 18, 0, 0)),
			event("light.hall", "off", at(2026, time.January, 14, 18, 5, 0)),
			event("light.hall", "on", at(2026, time.January, 21, 18, 10, 0)),
		},
	}

	patterns := DiscoverDaily(histories, DefaultOptions())
	if len(patterns) != 0 {
		t.Fatalf("expected no patterns below the confidence threshold, got %d", len(patterns))
	}
}

func TestDiscoverDaily_TieBreakFirstEncountered(t *testing.T) {
	// Two "on" and two "off" in one bucket: the first-encountered state wins.
	histories := history.Map{
		"light.desk": {
			event("light.desk", "off", at(2026, time.January, 1, 8, 0, 0)),
			event("light.desk", "on", at(2026, time.January, 8, 8, 10, 0)),
			event("light.desk", "off", at(2026, time.January, 15, 8, 20, 0)),
			event("light.desk", "on", at(2026, time.January, 22, 8, 30, 0)),
		},
	}

	opts := DefaultOptions()
	opts.ConfidenceThreshold = 0.5
	patterns := DiscoverDaily(histories, opts)
	if len(patterns) != 1 {
		t.Fatalf("expected 1 pattern, got %d", len(patterns))
	}
	if patterns[0].State != "off" {
		t.Errorf("state = %q, want the first-encountered %q on a tie", patterns[0].State, "off")
	}
}

func TestDiscoverDaily_ShortHistorySkipped(t *testing.T) {
	histories := history.Map{
		"light.porch": {
			event("light.porch", "on", at(2026, time.January, 5, 19, 0, 0)),
			event("light.porch", "on", at(2026, time.January, 12, 19, 0, 0)),
		},
	}

	patterns := DiscoverDaily(histories, DefaultOptions())
	if len(patterns) != 0 {
		t.Fatalf("expected no patterns for history shorter than min occurrences, got %d", len(patterns))
	}
}

func TestDiscoverDaily_SundayMapsToSix(t *testing.T) {
	// 2026-01-04, 11, 18 are Sundays.
	histories := history.Map{
		"light.bedroom": {
			event("light.bedroom", "off", at(2026, time.January, 4, 22, 0, 0)),
			event("light.bedroom", "off", at(2026, time.January, 11, 22, 30, 0)),
			event("light.bedroom", "off", at(2026, time.January, 18, 22, 45, 0)),
		},
	}

	patterns := DiscoverDaily(histories, DefaultOptions())
	if len(patterns) != 1 {
		t.Fatalf("expected 1 pattern, got %d", len(patterns))
	}
	if patterns[0].DayOfWeek != 6 {
		t.Errorf("day_of_week = %d, want 6 (Sunday)", patterns[0].DayOfWeek)
	}
}
