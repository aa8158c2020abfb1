package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bluebitnetworks/home-assistant-mcp-v2/internal/config"
	"github.com/bluebitnetworks/home-assistant-mcp-v2/internal/output"
	"github.com/bluebitnetworks/home-assistant-mcp-v2/internal/suggest"
)

var (
	discoverInput    string
	discoverDB       string
	discoverCategory string
	discoverEntity   string
	discoverLimit    int
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Mine history and print ranked automation suggestions",
	Long: `Run the four mining passes (daily, sequence, conditional, periodic)
over an entity state history and print the resulting suggestions ranked by
confidence. Each suggestion carries generated automation configuration.

Examples:
  hadiscover discover --input history.json
  hadiscover discover --db states.db --category conditional
  hadiscover discover --input history.json --entity light.living_room --json`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().StringVar(&discoverInput, "input", "", "JSON history file (flat event list or entity map)")
	discoverCmd.Flags().StringVar(&discoverDB, "db", "", "Recorder-style SQLite state database")
	discoverCmd.Flags().StringVar(&discoverCategory, "category", "", "Filter by category (daily, conditional, sequence, periodic)")
	discoverCmd.Flags().StringVar(&discoverEntity, "entity", "", "Only show suggestions touching this entity")
	discoverCmd.Flags().IntVar(&discoverLimit, "limit", 0, "Override the configured suggestion cap")
	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if flagNoColor {
		output.SetNoColor(true)
	}

	histories, err := loadHistories(discoverInput, discoverDB)
	if err != nil {
		return err
	}

	max := cfg.Automation.MaxSuggestions
	if discoverLimit > 0 {
		max = discoverLimit
	}

	assembler := suggest.NewAssembler(cfg.Automation.Options(), cfg.Automation.MinConfidence, max)
	suggestions, err := assembler.Generate(cmd.Context(), histories)
	if err != nil {
		return fmt.Errorf("generating suggestions: %w", err)
	}

	if discoverCategory != "" {
		suggestions = suggest.ByCategory(suggestions)[discoverCategory]
	}
	if discoverEntity != "" {
		suggestions = suggest.ByEntity(suggestions, discoverEntity)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(suggestions)
	}

	renderSuggestions(suggestions)
	return nil
}

func renderSuggestions(suggestions []suggest.Suggestion) {
	if len(suggestions) == 0 {
		fmt.Println(output.Section("Automation Suggestions"))
		fmt.Println()
		fmt.Println(" No patterns found. Try a longer history window.")
		return
	}

	fmt.Println(output.Section("Automation Suggestions"))
	fmt.Println()

	for i, s := range suggestions {
		fmt.Printf(" #%d %s %s\n", i+1, output.ConfidenceBar(s.Confidence, 10), output.StyleBold.Render(s.Title))
		fmt.Printf("    id: %s  |  type: %s  |  %d occurrences\n", s.ID, s.Type, s.Pattern.Occurrences)
		fmt.Printf("    %s\n", s.Description)
		fmt.Println()
	}
}
