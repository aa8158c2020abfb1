package suggest

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bluebitnetworks/home-assistant-mcp-v2/internal/history"
	"github.com/bluebitnetworks/home-assistant-mcp-v2/internal/pattern"
)

func ev(entityID, state string, t time.Time) history.StateEvent {
	return history.StateEvent{EntityID: entityID, Timestamp: t, State: state}
}

func at(day, hour, min int) time.Time {
	return time.Date(2026, time.January, day, hour, min, 0, 0, time.UTC)
}

// mondayHistories yields two daily patterns with distinct confidences:
// light.porch on at 07:00 every Monday (confidence 1.0) and
// light.garage mostly on at 09:00 (confidence 0.75).
func mondayHistories() history.Map {
	return history.Map{
		"light.porch": {
			ev("light.porch", "on", at(5, 7, 0)),
			ev("light.porch", "on", at(12, 7, 5)),
			ev("light.porch", "on", at(19, 7, 10)),
		},
		"light.garage": {
			ev("light.garage", "on", at(5, 9, 0)),
			ev("light.garage", "on", at(12, 9, 0)),
			ev("light.garage", "off", at(19, 9, 0)),
			ev("light.garage", "on", at(26, 9, 0)),
		},
	}
}

// --- Generate ---

func TestGenerate_RanksByConfidence(t *testing.T) {
	a := NewAssembler(pattern.DefaultOptions(), 0.7, 0)
	suggestions, err := a.Generate(context.Background(), mondayHistories())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("got %d suggestions, want 2", len(suggestions))
	}
	if suggestions[0].Confidence < suggestions[1].Confidence {
		t.Errorf("suggestions not sorted by confidence: %v then %v",
			suggestions[0].Confidence, suggestions[1].Confidence)
	}
	if suggestions[0].Entities[0] != "light.porch" {
		t.Errorf("top suggestion entity = %q, want light.porch", suggestions[0].Entities[0])
	}
}

func TestGenerate_FiltersBelowMinConfidence(t *testing.T) {
	a := NewAssembler(pattern.DefaultOptions(), 0.8, 0)
	suggestions, err := a.Generate(context.Background(), mondayHistories())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(suggestions) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(suggestions))
	}
	if suggestions[0].Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0", suggestions[0].Confidence)
	}
}

func TestGenerate_CapsSuggestions(t *testing.T) {
	a := NewAssembler(pattern.DefaultOptions(), 0.7, 1)
	suggestions, err := a.Generate(context.Background(), mondayHistories())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(suggestions) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(suggestions))
	}
}

func TestGenerate_EmptyHistory(t *testing.T) {
	a := NewAssembler(pattern.DefaultOptions(), 0.7, 5)
	suggestions, err := a.Generate(context.Background(), history.Map{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(suggestions) != 0 {
		t.Fatalf("got %d suggestions from empty history, want 0", len(suggestions))
	}
}

func TestGenerate_SuggestionFields(t *testing.T) {
	a := NewAssembler(pattern.DefaultOptions(), 0.7, 0)
	suggestions, err := a.Generate(context.Background(), mondayHistories())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(suggestions) == 0 {
		t.Fatal("no suggestions")
	}
	s := suggestions[0]
	if s.ID == "" {
		t.Error("suggestion has no id")
	}
	if s.Type != "daily" {
		t.Errorf("Type = %q, want daily", s.Type)
	}
	if !strings.Contains(s.Title, "light.porch") {
		t.Errorf("Title %q does not name the entity", s.Title)
	}
	if !strings.Contains(s.Description, "confidence") {
		t.Errorf("Description %q does not mention confidence", s.Description)
	}
	if !strings.Contains(s.Config, "platform: time") {
		t.Errorf("Config does not carry a time trigger:\n%s", s.Config)
	}
}

// --- Convert ---

func TestConvert_ConditionalDescription(t *testing.T) {
	s, err := Convert(pattern.Pattern{
		Kind:            pattern.KindConditional,
		EntityID:        "light.living_room",
		Domain:          "light",
		ConditionEntity: "binary_sensor.motion",
		ConditionState:  "on",
		TargetState:     "on",
		Confidence:      0.9,
		Occurrences:     9,
	})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if want := "Turn on light.living_room when binary_sensor.motion is on"; s.Title != want {
		t.Errorf("Title = %q, want %q", s.Title, want)
	}
	if !strings.Contains(s.Description, "90% confidence") {
		t.Errorf("Description %q does not report 90%% confidence", s.Description)
	}
	if len(s.Entities) != 2 {
		t.Errorf("Entities = %v, want target and condition entity", s.Entities)
	}
}

func TestConvert_UnknownKind(t *testing.T) {
	if _, err := Convert(pattern.Pattern{Kind: "mystery"}); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

// --- grouping ---

func TestByCategory_AllKeysPresent(t *testing.T) {
	grouped := ByCategory(nil)
	for _, c := range Categories {
		if _, ok := grouped[c]; !ok {
			t.Errorf("category %q missing from empty grouping", c)
		}
	}

	grouped = ByCategory([]Suggestion{
		{Type: "daily"},
		{Type: "daily"},
		{Type: "periodic"},
	})
	if len(grouped["daily"]) != 2 {
		t.Errorf("daily group has %d entries, want 2", len(grouped["daily"]))
	}
	if len(grouped["periodic"]) != 1 {
		t.Errorf("periodic group has %d entries, want 1", len(grouped["periodic"]))
	}
	if len(grouped["sequence"]) != 0 {
		t.Errorf("sequence group has %d entries, want 0", len(grouped["sequence"]))
	}
}

func TestByEntity(t *testing.T) {
	suggestions := []Suggestion{
		{ID: "a", Entities: []string{"light.porch"}},
		{ID: "b", Entities: []string{"light.garage", "binary_sensor.motion"}},
		{ID: "c", Entities: []string{"light.porch", "sensor.lux"}},
	}
	matched := ByEntity(suggestions, "light.porch")
	if len(matched) != 2 {
		t.Fatalf("got %d matches, want 2", len(matched))
	}
	if matched[0].ID != "a" || matched[1].ID != "c" {
		t.Errorf("matched ids = %s, %s; want a, c", matched[0].ID, matched[1].ID)
	}
	if got := ByEntity(suggestions, "fan.attic"); len(got) != 0 {
		t.Errorf("got %d matches for unknown entity, want 0", len(got))
	}
}
