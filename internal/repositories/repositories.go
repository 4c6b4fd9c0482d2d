// package repositories provides the SQLite persistence layer for requests,
// per-service sync state, and event playlists.
//
// Sync state writes are incremental: each service's outcome is upserted the
// moment it is known, so a crash mid-sync loses at most the in-flight
// service.
package repositories

import (
	"database/sql"
	"fmt"
)

// schema holds every table the engine persists to. Statements are idempotent
// so startup can run them unconditionally.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS requests (
		id TEXT PRIMARY KEY,
		event_id TEXT NOT NULL,
		title TEXT NOT NULL,
		artist TEXT NOT NULL,
		raw_query TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		bpm REAL,
		key TEXT,
		genre TEXT,
		legacy_status TEXT NOT NULL DEFAULT '',
		legacy_track_id TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_requests_event ON requests (event_id, status)`,
	`CREATE TABLE IF NOT EXISTS request_sync_state (
		request_id TEXT NOT NULL,
		service TEXT NOT NULL,
		status TEXT NOT NULL,
		track_id TEXT NOT NULL DEFAULT '',
		playlist_id TEXT NOT NULL DEFAULT '',
		confidence REAL NOT NULL DEFAULT 0,
		error TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMP NOT NULL,
		PRIMARY KEY (request_id, service)
	)`,
	`CREATE TABLE IF NOT EXISTS user_tokens (
		user_id TEXT NOT NULL,
		service TEXT NOT NULL,
		token TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		PRIMARY KEY (user_id, service)
	)`,
	`CREATE TABLE IF NOT EXISTS event_playlists (
		event_id TEXT NOT NULL,
		service TEXT NOT NULL,
		playlist_id TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		PRIMARY KEY (event_id, service)
	)`,
}

// InitSchema creates all tables and indexes if they do not exist.
func InitSchema(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
