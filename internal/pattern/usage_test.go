package pattern

import (
	"testing"
	"time"

	"github.com/bluebitnetworks/home-assistant-mcp-v2/internal/history"
)

// --- AnalyzeUsage ---

func TestAnalyzeUsage_TimeOfDayHabit(t *testing.T) {
	// The coffee maker turns on in the 6 o'clock hour three days running.
	m := make(history.Map)
	for day := 0; day < 3; day++ {
		m["switch.coffee"] = append(m["switch.coffee"],
			event("switch.coffee", "on", time.Date(2026, time.June, 1+day, 6, 30, 0, 0, time.UTC)))
	}

	patterns := AnalyzeUsage(m, DefaultOptions(), 0)
	if len(patterns) != 1 {
		t.Fatalf("expected 1 usage pattern, got %d", len(patterns))
	}

	p := patterns[0]
	if p.Type != UsageTime {
		t.Errorf("type = %q, want %q", p.Type, UsageTime)
	}
	if p.TriggerTime != "06:00" {
		t.Errorf("trigger time = %q, want 06:00", p.TriggerTime)
	}
	if p.ActionState != "on" || p.Confidence != 1.0 {
		t.Errorf("state = %q confidence = %g", p.ActionState, p.Confidence)
	}
}

func TestAnalyzeUsage_StateFollow(t *testing.T) {
	// The light follows the motion sensor within a minute.
	m := make(history.Map)
	for i := 0; i < 3; i++ {
		base := time.Date(2026, time.June, 1, 6+i, 0, 0, 0, time.UTC)
		m["binary_sensor.motion"] = append(m["binary_sensor.motion"],
			event("binary_sensor.motion", "on", base))
		m["light.kitchen"] = append(m["light.kitchen"],
			event("light.kitchen", "on", base.Add(15*time.Second)))
	}

	patterns := AnalyzeUsage(m, DefaultOptions(), 0)

	var found *UsagePattern
	for i := range patterns {
		if patterns[i].Type == UsageState {
			found = &patterns[i]
			break
		}
	}
	if found == nil {
		t.Fatal("expected a state usage pattern")
	}
	if found.EntityID != "light.kitchen" || found.TriggerEntity != "binary_sensor.motion" {
		t.Errorf("entity = %q trigger = %q", found.EntityID, found.TriggerEntity)
	}
	if found.TriggerState != "on" || found.ActionState != "on" {
		t.Errorf("trigger state = %q action state = %q", found.TriggerState, found.ActionState)
	}
}

func TestAnalyzeUsage_FollowWindowExcludesSlow(t *testing.T) {
	// 61 seconds is outside the follow window.
	m := make(history.Map)
	for i := 0; i < 3; i++ {
		base := time.Date(2026, time.June, 1, 6+i, 0, 0, 0, time.UTC)
		m["binary_sensor.motion"] = append(m["binary_sensor.motion"],
			event("binary_sensor.motion", "on", base))
		m["light.kitchen"] = append(m["light.kitchen"],
			event("light.kitchen", "on", base.Add(61*time.Second)))
	}

	patterns := AnalyzeUsage(m, DefaultOptions(), 0)
	for _, p := range patterns {
		if p.Type == UsageState {
			t.Errorf("unexpected state pattern for a 61s lag: %+v", p)
		}
	}
}

func TestAnalyzeUsage_CapsResults(t *testing.T) {
	m := make(history.Map)
	entities := []string{"switch.a", "switch.b", "switch.c", "switch.d"}
	for _, id := range entities {
		for day := 0; day < 3; day++ {
			m[id] = append(m[id],
				event(id, "on", time.Date(2026, time.June, 1+day, 7, 0, 0, 0, time.UTC)))
		}
	}

	patterns := AnalyzeUsage(m, DefaultOptions(), 2)
	if len(patterns) != 2 {
		t.Fatalf("expected the cap to hold, got %d patterns", len(patterns))
	}
}
