// Package config provides configuration loading and defaults for the
// discovery pipeline.
package config

import "time"

// DefaultConfigDir is the default location for configuration.
const DefaultConfigDir = "~/.config/hadiscover"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultMinOccurrences is the minimum sample count before a pattern is
// proposed.
const DefaultMinOccurrences = 3

// DefaultConfidenceThreshold is the acceptance floor for mined patterns.
const DefaultConfidenceThreshold = 0.7

// DefaultMinConfidence is the confidence floor for assembled suggestions.
const DefaultMinConfidence = 0.7

// DefaultMaxSuggestions caps the assembled suggestion list.
const DefaultMaxSuggestions = 5

// DefaultSequenceWindow bounds how far apart the first and last step of a
// sequence pattern may be.
const DefaultSequenceWindow = 2 * time.Minute

// DefaultConditionalWindow bounds how long after a condition change a
// target state change still counts as correlated.
const DefaultConditionalWindow = 10 * time.Minute
