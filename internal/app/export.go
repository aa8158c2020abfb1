package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bluebitnetworks/home-assistant-mcp-v2/internal/config"
	"github.com/bluebitnetworks/home-assistant-mcp-v2/internal/suggest"
)

var (
	exportInput string
	exportDB    string
	exportID    string
	exportOut   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write one suggestion's automation configuration",
	Long: `Re-run discovery and write the generated automation configuration for
the suggestion with the given id. The output is ready for the platform's
configuration layer to validate and persist.

Example:
  hadiscover export --input history.json --id daily_light_living_room_2_7 --out automation.yaml`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportInput, "input", "", "JSON history file (flat event list or entity map)")
	exportCmd.Flags().StringVar(&exportDB, "db", "", "Recorder-style SQLite state database")
	exportCmd.Flags().StringVar(&exportID, "id", "", "Suggestion id to export (required)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (defaults to stdout)")
	_ = exportCmd.MarkFlagRequired("id")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	histories, err := loadHistories(exportInput, exportDB)
	if err != nil {
		return err
	}

	// No cap here: the requested suggestion may rank below the display cut.
	assembler := suggest.NewAssembler(cfg.Automation.Options(), cfg.Automation.MinConfidence, 0)
	suggestions, err := assembler.Generate(cmd.Context(), histories)
	if err != nil {
		return fmt.Errorf("generating suggestions: %w", err)
	}

	for _, s := range suggestions {
		if s.ID != exportID {
			continue
		}
		if exportOut == "" {
			fmt.Print(s.Config)
			return nil
		}
		if err := os.WriteFile(exportOut, []byte(s.Config), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", exportOut, err)
		}
		fmt.Printf("wrote %s (%s)\n", exportOut, s.Title)
		return nil
	}

	return fmt.Errorf("no suggestion with id %q", exportID)
}
