// Package app contains the Cobra command tree for hadiscover.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "hadiscover",
	Short: "Mine Home Assistant history for automation suggestions",
	Long: `hadiscover mines time-stamped entity state histories for recurring
usage patterns and turns the strongest ones into ranked automation
suggestions with generated configuration.

History comes from a JSON export of the history API or from a
recorder-style SQLite capture; hadiscover performs no network I/O.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("hadiscover", appVersion)
		fmt.Println()
		fmt.Println("Use a subcommand:")
		fmt.Println("  discover  Mine history and print ranked automation suggestions")
		fmt.Println("  analyze   Run the quick usage analysis over a history")
		fmt.Println("  export    Write one suggestion's automation configuration")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file (default ~/.config/hadiscover/config.yaml)")
}
