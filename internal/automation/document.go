// Package automation synthesizes executable automation configuration from
// discovered patterns.
package automation

import (
	"gopkg.in/yaml.v3"
)

// Trigger is one automation trigger. Platform selects which of the other
// fields are meaningful. Triggers always travel as a list, even when there
// is only one; nothing downstream branches on shape.
type Trigger struct {
	Platform string `yaml:"platform" json:"platform"`

	// At and Weekday configure a time trigger. Weekday is 1-based with
	// Monday as 1, the numbering the platform expects.
	At      string `yaml:"at,omitempty" json:"at,omitempty"`
	Weekday []int  `yaml:"weekday,omitempty,flow" json:"weekday,omitempty"`

	// EntityID and To configure a state trigger.
	EntityID string `yaml:"entity_id,omitempty" json:"entity_id,omitempty"`
	To       string `yaml:"to,omitempty" json:"to,omitempty"`

	// Hours and Minutes configure a time_pattern trigger.
	Hours   string `yaml:"hours,omitempty" json:"hours,omitempty"`
	Minutes string `yaml:"minutes,omitempty" json:"minutes,omitempty"`

	// Domain, Type and Subtype configure a device trigger placeholder.
	Domain  string `yaml:"domain,omitempty" json:"domain,omitempty"`
	Type    string `yaml:"type,omitempty" json:"type,omitempty"`
	Subtype string `yaml:"subtype,omitempty" json:"subtype,omitempty"`
}

// Condition gates an automation run.
type Condition struct {
	Condition string `yaml:"condition" json:"condition"`
	EntityID  string `yaml:"entity_id,omitempty" json:"entity_id,omitempty"`
	State     string `yaml:"state,omitempty" json:"state,omitempty"`
}

// Target addresses the entity an action operates on.
type Target struct {
	EntityID string `yaml:"entity_id" json:"entity_id"`
}

// Action is one service call.
type Action struct {
	Service string            `yaml:"service" json:"service"`
	Target  Target            `yaml:"target" json:"target"`
	Data    map[string]string `yaml:"data,omitempty" json:"data,omitempty"`
}

// Document is a complete automation ready for the platform's configuration
// layer. It is the only synthesis artifact a caller may persist.
type Document struct {
	ID          string      `yaml:"id" json:"id"`
	Alias       string      `yaml:"alias" json:"alias"`
	Description string      `yaml:"description" json:"description"`
	Mode        string      `yaml:"mode" json:"mode"`
	Trigger     []Trigger   `yaml:"trigger" json:"trigger"`
	Condition   []Condition `yaml:"condition,omitempty" json:"condition,omitempty"`
	Action      []Action    `yaml:"action" json:"action"`
}

// YAML serializes the document to the platform's configuration text.
func (d Document) YAML() (string, error) {
	out, err := yaml.Marshal(d)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Parse reads a document back from its serialized form.
func Parse(text string) (Document, error) {
	var d Document
	if err := yaml.Unmarshal([]byte(text), &d); err != nil {
		return Document{}, err
	}
	return d, nil
}
