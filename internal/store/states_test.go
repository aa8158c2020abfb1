package store

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluebitnetworks/home-assistant-mcp-v2/internal/history"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seed(t *testing.T, db *DB, events ...history.RawEvent) {
	t.Helper()
	for _, ev := range events {
		require.NoError(t, db.InsertState(ev))
	}
}

func TestReadHistory_OrdersByEntityAndTime(t *testing.T) {
	db := openTestDB(t)
	seed(t, db,
		history.RawEvent{EntityID: "light.hall", State: "off", LastChanged: "2026-01-05T08:00:00Z"},
		history.RawEvent{EntityID: "binary_sensor.door", State: "on", LastChanged: "2026-01-05T07:59:00Z"},
		history.RawEvent{EntityID: "light.hall", State: "on", LastChanged: "2026-01-05T07:00:00Z"},
	)

	events, err := db.ReadHistory()
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "binary_sensor.door", events[0].EntityID)
	assert.Equal(t, "light.hall", events[1].EntityID)
	assert.Equal(t, "on", events[1].State, "earlier row must come first within an entity")
	assert.Equal(t, "off", events[2].State)
}

func TestReadEntityHistory(t *testing.T) {
	db := openTestDB(t)
	seed(t, db,
		history.RawEvent{EntityID: "light.hall", State: "on", LastChanged: "2026-01-05T07:00:00Z"},
		history.RawEvent{EntityID: "light.porch", State: "on", LastChanged: "2026-01-05T07:01:00Z"},
		history.RawEvent{EntityID: "light.hall", State: "off", LastChanged: "2026-01-05T08:00:00Z"},
	)

	events, err := db.ReadEntityHistory("light.hall")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "on", events[0].State)
	assert.Equal(t, "off", events[1].State)

	none, err := db.ReadEntityHistory("fan.attic")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestReadHistory_FeedsNormalization(t *testing.T) {
	db := openTestDB(t)
	seed(t, db,
		history.RawEvent{EntityID: "light.hall", State: "on", LastChanged: "2026-01-05T07:00:00Z"},
		history.RawEvent{EntityID: "light.hall", State: "off", LastChanged: "not a timestamp"},
	)

	events, err := db.ReadHistory()
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	histories := history.Normalize(events, logger)
	require.Len(t, histories["light.hall"], 1, "the malformed row is dropped during normalization")
	assert.Equal(t, "on", histories["light.hall"][0].State)
}

func TestOpen_CreatesDatabaseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "states.db")
	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	seed(t, db, history.RawEvent{EntityID: "switch.pump", State: "on", LastChanged: "2026-01-05T07:00:00Z"})
	events, err := db.ReadHistory()
	require.NoError(t, err)
	assert.Len(t, events, 1)
}
