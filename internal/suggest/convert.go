package suggest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bluebitnetworks/home-assistant-mcp-v2/internal/automation"
	"github.com/bluebitnetworks/home-assistant-mcp-v2/internal/pattern"
)

var dayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Convert turns one mined pattern into a suggestion, synthesizing its
// automation configuration along the way.
func Convert(p pattern.Pattern) (Suggestion, error) {
	doc, err := automation.Synthesize(p)
	if err != nil {
		return Suggestion{}, err
	}
	config, err := doc.YAML()
	if err != nil {
		return Suggestion{}, fmt.Errorf("serializing automation %s: %w", doc.ID, err)
	}

	title, description := describe(p)
	return Suggestion{
		ID:          doc.ID,
		Type:        string(p.Kind),
		Title:       title,
		Description: description,
		Confidence:  p.Confidence,
		Entities:    uniqueEntities(p),
		Pattern:     p,
		Config:      config,
	}, nil
}

// describe builds the human-readable title and description for a pattern.
func describe(p pattern.Pattern) (string, string) {
	percent := fmt.Sprintf("%.0f%%", p.Confidence*100)

	switch p.Kind {
	case pattern.KindDaily:
		day := "day"
		if p.DayOfWeek >= 0 && p.DayOfWeek <= 6 {
			day = dayNames[p.DayOfWeek]
		}
		title := fmt.Sprintf("Turn %s %s every %s at %d:00", p.State, p.EntityID, day, p.Hour)
		description := fmt.Sprintf(
			"This automation will turn %s the %s every %s at %d:00. "+
				"This pattern was detected with %s confidence.",
			p.State, p.EntityID, day, p.Hour, percent)
		return title, description

	case pattern.KindSequence:
		first := ""
		var others []string
		for i, step := range p.Steps {
			if i == 0 {
				first = step.EntityID
				continue
			}
			others = append(others, step.EntityID)
		}
		title := fmt.Sprintf("Create a scene with %d devices", len(p.Steps))
		description := fmt.Sprintf(
			"This automation will create a scene that sets %d devices to specific states. "+
				"The scene starts with %s and includes %s. "+
				"This pattern was detected with %s confidence.",
			len(p.Steps), first, strings.Join(others, ", "), percent)
		return title, description

	case pattern.KindConditional:
		title := fmt.Sprintf("Turn %s %s when %s is %s",
			p.TargetState, p.EntityID, p.ConditionEntity, p.ConditionState)
		description := fmt.Sprintf(
			"This automation will turn %s the %s when %s changes to %s. "+
				"This pattern was detected with %s confidence.",
			p.TargetState, p.EntityID, p.ConditionEntity, p.ConditionState, percent)
		return title, description

	case pattern.KindPeriodic:
		interval := strconv.FormatFloat(p.IntervalHours, 'f', -1, 64)
		title := fmt.Sprintf("Turn %s %s every %s hours", p.State, p.EntityID, interval)
		description := fmt.Sprintf(
			"This automation will turn %s the %s every %s hours. "+
				"This pattern was detected with %s confidence.",
			p.State, p.EntityID, interval, percent)
		return title, description

	default:
		return string(p.Kind), ""
	}
}

// uniqueEntities returns the pattern's entities in first-appearance order
// without duplicates.
func uniqueEntities(p pattern.Pattern) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, id := range p.Entities() {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}
