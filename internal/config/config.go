package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/bluebitnetworks/home-assistant-mcp-v2/internal/pattern"
)

// Config is the top-level configuration.
type Config struct {
	Automation Automation `mapstructure:"automation"`
}

// Automation holds the discovery pipeline knobs. Every option is listed
// here explicitly with its default in defaults.go; nothing reads raw
// config keys ad hoc.
type Automation struct {
	// MinOccurrences is the minimum sample count before a pattern is
	// proposed.
	MinOccurrences int `mapstructure:"min_occurrences"`

	// ConfidenceThreshold is the acceptance floor for mined patterns.
	ConfidenceThreshold float64 `mapstructure:"confidence_threshold"`

	// MinConfidence is the confidence floor applied to assembled
	// suggestions.
	MinConfidence float64 `mapstructure:"min_confidence"`

	// MaxSuggestions caps the assembled suggestion list.
	MaxSuggestions int `mapstructure:"max_suggestions"`

	// SequenceWindow bounds a sequence pattern's total span.
	SequenceWindow time.Duration `mapstructure:"sequence_window"`

	// ConditionalWindow bounds condition-to-target correlation.
	ConditionalWindow time.Duration `mapstructure:"conditional_window"`
}

// Options converts the automation section to miner options.
func (a Automation) Options() pattern.Options {
	return pattern.Options{
		MinOccurrences:      a.MinOccurrences,
		ConfidenceThreshold: a.ConfidenceThreshold,
		SequenceWindow:      a.SequenceWindow,
		ConditionalWindow:   a.ConditionalWindow,
	}
}

// Load reads configuration from the given path (or the default location)
// and returns a validated Config with all defaults applied. A missing
// config file is not an error.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("automation.min_occurrences", DefaultMinOccurrences)
	v.SetDefault("automation.confidence_threshold", DefaultConfidenceThreshold)
	v.SetDefault("automation.min_confidence", DefaultMinConfidence)
	v.SetDefault("automation.max_suggestions", DefaultMaxSuggestions)
	v.SetDefault("automation.sequence_window", DefaultSequenceWindow)
	v.SetDefault("automation.conditional_window", DefaultConditionalWindow)

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(expandPath(DefaultConfigDir))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every option once at load time.
func (c *Config) Validate() error {
	a := c.Automation
	if a.MinOccurrences < 1 {
		return fmt.Errorf("automation.min_occurrences must be at least 1, got %d", a.MinOccurrences)
	}
	if a.ConfidenceThreshold < 0 || a.ConfidenceThreshold > 1 {
		return fmt.Errorf("automation.confidence_threshold must be in [0,1], got %g", a.ConfidenceThreshold)
	}
	if a.MinConfidence < 0 || a.MinConfidence > 1 {
		return fmt.Errorf("automation.min_confidence must be in [0,1], got %g", a.MinConfidence)
	}
	if a.MaxSuggestions < 1 {
		return fmt.Errorf("automation.max_suggestions must be at least 1, got %d", a.MaxSuggestions)
	}
	if a.SequenceWindow <= 0 {
		return fmt.Errorf("automation.sequence_window must be positive, got %s", a.SequenceWindow)
	}
	if a.ConditionalWindow <= 0 {
		return fmt.Errorf("automation.conditional_window must be positive, got %s", a.ConditionalWindow)
	}
	return nil
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
