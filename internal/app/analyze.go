package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bluebitnetworks/home-assistant-mcp-v2/internal/config"
	"github.com/bluebitnetworks/home-assistant-mcp-v2/internal/output"
	"github.com/bluebitnetworks/home-assistant-mcp-v2/internal/pattern"
)

var (
	analyzeInput string
	analyzeDB    string
	analyzeLimit int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the quick usage analysis over a history",
	Long: `Run the lightweight single-pass usage analysis: hour-of-day habits and
one-minute follow correlations. Coarser than discover, but cheap enough for
a first look at an unfamiliar history.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeInput, "input", "", "JSON history file (flat event list or entity map)")
	analyzeCmd.Flags().StringVar(&analyzeDB, "db", "", "Recorder-style SQLite state database")
	analyzeCmd.Flags().IntVar(&analyzeLimit, "limit", 0, "Override the configured pattern cap")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if flagNoColor {
		output.SetNoColor(true)
	}

	histories, err := loadHistories(analyzeInput, analyzeDB)
	if err != nil {
		return err
	}

	max := cfg.Automation.MaxSuggestions
	if analyzeLimit > 0 {
		max = analyzeLimit
	}
	patterns := pattern.AnalyzeUsage(histories, cfg.Automation.Options(), max)

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(patterns)
	}

	renderUsagePatterns(patterns)
	return nil
}

func renderUsagePatterns(patterns []pattern.UsagePattern) {
	fmt.Println(output.Section("Usage Patterns"))
	fmt.Println()

	if len(patterns) == 0 {
		fmt.Println(" No usage patterns found.")
		return
	}

	table := output.NewTable("ENTITY", "TYPE", "TRIGGER", "STATE", "CONFIDENCE").AlignRight(4)
	for _, p := range patterns {
		trigger := p.TriggerTime
		if p.Type == pattern.UsageState {
			trigger = fmt.Sprintf("%s=%s", p.TriggerEntity, p.TriggerState)
		}
		table.AddRow(p.EntityID, p.Type, trigger, p.ActionState, fmt.Sprintf("%.0f%%", p.Confidence*100))
	}
	fmt.Print(table.Render())
}
