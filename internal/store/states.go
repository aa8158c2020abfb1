package store

import (
	"github.com/bluebitnetworks/home-assistant-mcp-v2/internal/history"
)

// ReadHistory returns all recorded state rows as raw history events,
// ordered by entity and change time so normalization sees each entity's
// events in chronological order.
func (db *DB) ReadHistory() ([]history.RawEvent, error) {
	rows, err := db.conn.Query(
		`SELECT entity_id, state, last_changed FROM states ORDER BY entity_id, last_changed, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []history.RawEvent
	for rows.Next() {
		var ev history.RawEvent
		if err := rows.Scan(&ev.EntityID, &ev.State, &ev.LastChanged); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// ReadEntityHistory returns the recorded rows for one entity in change
// order.
func (db *DB) ReadEntityHistory(entityID string) ([]history.RawEvent, error) {
	rows, err := db.conn.Query(
		`SELECT entity_id, state, last_changed FROM states WHERE entity_id = ? ORDER BY last_changed, id`,
		entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []history.RawEvent
	for rows.Next() {
		var ev history.RawEvent
		if err := rows.Scan(&ev.EntityID, &ev.State, &ev.LastChanged); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// InsertState appends one state row. Used by capture tooling and tests.
func (db *DB) InsertState(ev history.RawEvent) error {
	_, err := db.conn.Exec(
		`INSERT INTO states (entity_id, state, last_changed) VALUES (?, ?, ?)`,
		ev.EntityID, ev.State, ev.LastChanged)
	return err
}
