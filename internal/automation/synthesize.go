package automation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bluebitnetworks/home-assistant-mcp-v2/internal/pattern"
)

var dayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// toggleDomains support turn_on/turn_off service calls.
var toggleDomains = map[string]bool{
	"light":  true,
	"switch": true,
	"fan":    true,
	"cover":  true,
}

// Synthesize maps one discovered pattern to an automation document.
// Document ids derive only from pattern fields, so synthesizing the same
// pattern twice yields identical output.
func Synthesize(p pattern.Pattern) (Document, error) {
	switch p.Kind {
	case pattern.KindDaily:
		return synthesizeDaily(p), nil
	case pattern.KindSequence:
		return synthesizeSequence(p), nil
	case pattern.KindConditional:
		return synthesizeConditional(p), nil
	case pattern.KindPeriodic:
		return synthesizePeriodic(p), nil
	default:
		return Document{}, fmt.Errorf("unknown pattern kind %q", p.Kind)
	}
}

func synthesizeDaily(p pattern.Pattern) Document {
	day := dayName(p.DayOfWeek)
	return Document{
		ID:          fmt.Sprintf("daily_%s_%d_%d", sanitize(p.EntityID), p.DayOfWeek, p.Hour),
		Alias:       fmt.Sprintf("Turn %s %s on %s at %d:00", p.State, p.EntityID, day, p.Hour),
		Description: fmt.Sprintf("Automatically turn %s the %s every %s at %d:00", p.State, p.EntityID, day, p.Hour),
		Mode:        "single",
		Trigger: []Trigger{{
			Platform: "time",
			At:       fmt.Sprintf("%02d:00:00", p.Hour),
			// The platform numbers weekdays 1-7 starting Monday.
			Weekday: []int{p.DayOfWeek + 1},
		}},
		Action: []Action{actionFor(p.EntityID, p.Domain, p.State)},
	}
}

func synthesizeSequence(p pattern.Pattern) Document {
	first := ""
	if len(p.Steps) > 0 {
		first = p.Steps[0].EntityID
	}
	actions := make([]Action, len(p.Steps))
	for i, step := range p.Steps {
		actions[i] = actionFor(step.EntityID, step.Domain, step.State)
	}
	return Document{
		ID:    fmt.Sprintf("sequence_%s_%d", sanitize(first), len(p.Steps)),
		Alias: fmt.Sprintf("Sequence: %s and %d other devices", first, len(p.Steps)-1),
		Description: fmt.Sprintf(
			"Automation to control %d devices in sequence.\n"+
				"Note: this automation uses a placeholder MQTT button trigger. You should customize this.",
			len(p.Steps)),
		Mode: "single",
		Trigger: []Trigger{{
			Platform: "device",
			Domain:   "mqtt",
			Type:     "button_short_press",
			Subtype:  "1",
		}},
		Action: actions,
	}
}

func synthesizeConditional(p pattern.Pattern) Document {
	return Document{
		ID:    fmt.Sprintf("condition_%s_%s", sanitize(p.EntityID), sanitize(p.ConditionEntity)),
		Alias: fmt.Sprintf("Control %s based on %s", p.EntityID, p.ConditionEntity),
		Description: fmt.Sprintf("Turn %s the %s when %s changes to %s",
			p.TargetState, p.EntityID, p.ConditionEntity, p.ConditionState),
		Mode: "single",
		Trigger: []Trigger{{
			Platform: "state",
			EntityID: p.ConditionEntity,
			To:       p.ConditionState,
		}},
		Action: []Action{actionFor(p.EntityID, p.Domain, p.TargetState)},
	}
}

func synthesizePeriodic(p pattern.Pattern) Document {
	interval := formatInterval(p.IntervalHours)
	trigger := Trigger{Platform: "time_pattern"}
	if p.IntervalHours == float64(int(p.IntervalHours)) {
		trigger.Hours = "/" + strconv.Itoa(int(p.IntervalHours))
	} else {
		// time_pattern only divides whole hours; half-hour intervals are
		// expressed in minutes instead.
		trigger.Minutes = "/" + strconv.Itoa(int(p.IntervalHours*60))
	}
	return Document{
		ID:          fmt.Sprintf("periodic_%s_%s", sanitize(p.EntityID), strings.ReplaceAll(interval, ".", "_")),
		Alias:       fmt.Sprintf("Control %s every %s hours", p.EntityID, interval),
		Description: fmt.Sprintf("Turn %s the %s every %s hours", p.State, p.EntityID, interval),
		Mode:        "single",
		Trigger:     []Trigger{trigger},
		Action:      []Action{actionFor(p.EntityID, p.Domain, p.State)},
	}
}

// SynthesizeUsage maps a quick usage pattern to an automation document.
func SynthesizeUsage(p pattern.UsagePattern) (Document, error) {
	doc := Document{
		Alias:       fmt.Sprintf("Auto-generated %s automation for %s", p.Type, p.EntityID),
		Description: fmt.Sprintf("Automatically generated %s-based automation for %s", p.Type, p.EntityID),
		Mode:        "single",
		Action:      []Action{actionFor(p.EntityID, domainOf(p.EntityID), p.ActionState)},
	}
	switch p.Type {
	case pattern.UsageTime:
		doc.ID = fmt.Sprintf("auto_time_%s_%s", sanitize(p.EntityID), strings.ReplaceAll(p.TriggerTime, ":", ""))
		doc.Trigger = []Trigger{{Platform: "time", At: p.TriggerTime}}
	case pattern.UsageState:
		doc.ID = fmt.Sprintf("auto_state_%s_%s", sanitize(p.EntityID), sanitize(p.TriggerEntity))
		doc.Trigger = []Trigger{{Platform: "state", EntityID: p.TriggerEntity, To: p.TriggerState}}
	default:
		return Document{}, fmt.Errorf("unknown usage pattern type %q", p.Type)
	}
	return doc, nil
}

// actionFor builds the service call for driving an entity to a state.
// Toggle-capable domains use turn_on/turn_off, climate sets an HVAC mode,
// and everything else falls back to a generic set_state call.
func actionFor(entityID, domain, state string) Action {
	target := Target{EntityID: entityID}
	switch {
	case toggleDomains[domain]:
		service := domain + ".turn_off"
		if state == "on" {
			service = domain + ".turn_on"
		}
		return Action{Service: service, Target: target}
	case domain == "climate":
		return Action{
			Service: "climate.set_hvac_mode",
			Target:  target,
			Data:    map[string]string{"hvac_mode": state},
		}
	default:
		return Action{
			Service: domain + ".set_state",
			Target:  target,
			Data:    map[string]string{"state": state},
		}
	}
}

// sanitize turns an entity id into an identifier-safe fragment.
func sanitize(entityID string) string {
	return strings.ReplaceAll(entityID, ".", "_")
}

func domainOf(entityID string) string {
	if i := strings.IndexByte(entityID, '.'); i >= 0 {
		return entityID[:i]
	}
	return entityID
}

// formatInterval renders an interval in hours without trailing zeros
// ("2", "1.5").
func formatInterval(hours float64) string {
	return strconv.FormatFloat(hours, 'f', -1, 64)
}

// dayName returns the english weekday name for a zero-based Monday index.
func dayName(day int) string {
	if day < 0 || day > 6 {
		return "day"
	}
	return dayNames[day]
}
