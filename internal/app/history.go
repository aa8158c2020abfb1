package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/bluebitnetworks/home-assistant-mcp-v2/internal/history"
	"github.com/bluebitnetworks/home-assistant-mcp-v2/internal/store"
)

// newLogger builds the structured logger handed into the data layer.
// Warnings about dropped events go to stderr so stdout stays parseable.
func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

// loadHistories reads history from a JSON file or a recorder database and
// normalizes it. Exactly one of inputPath and dbPath must be set.
func loadHistories(inputPath, dbPath string) (history.Map, error) {
	log := newLogger()

	switch {
	case inputPath != "" && dbPath != "":
		return nil, fmt.Errorf("--input and --db are mutually exclusive")
	case inputPath != "":
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return nil, fmt.Errorf("reading history file: %w", err)
		}
		return history.NormalizeJSON(data, log), nil
	case dbPath != "":
		db, err := store.Open(dbPath)
		if err != nil {
			return nil, fmt.Errorf("opening state database: %w", err)
		}
		defer func() { _ = db.Close() }()
		events, err := db.ReadHistory()
		if err != nil {
			return nil, fmt.Errorf("reading state history: %w", err)
		}
		return history.Normalize(events, log), nil
	default:
		return nil, fmt.Errorf("either --input or --db is required")
	}
}
