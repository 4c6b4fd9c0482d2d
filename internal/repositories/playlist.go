package repositories

import (
	"database/sql"
	"fmt"
	"time"
)

// EventPlaylistRepository stores the playlist each adapter created for an
// event on its service. Implements the adapters' PlaylistStore contract.
type EventPlaylistRepository struct {
	db *sql.DB
}

// NewEventPlaylistRepository creates a new EventPlaylistRepository with the given database connection
func NewEventPlaylistRepository(db *sql.DB) *EventPlaylistRepository {
	return &EventPlaylistRepository{db: db}
}

// PlaylistID returns the stored playlist ID for an (event, service) pair, or
// "" when none was created yet.
func (r *EventPlaylistRepository) PlaylistID(eventID, service string) (string, error) {
	var playlistID string
	err := r.db.QueryRow(
		`SELECT playlist_id FROM event_playlists WHERE event_id = ? AND service = ?`,
		eventID, service,
	).Scan(&playlistID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query event playlist: %w", err)
	}
	return playlistID, nil
}

// SavePlaylistID records the playlist an adapter created. Re-saving the same
// pair overwrites, covering playlists recreated after deletion upstream.
func (r *EventPlaylistRepository) SavePlaylistID(eventID, service, playlistID string) error {
	query := `
		INSERT INTO event_playlists (event_id, service, playlist_id, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (event_id, service) DO UPDATE SET playlist_id = excluded.playlist_id
	`

	if _, err := r.db.Exec(query, eventID, service, playlistID, time.Now()); err != nil {
		return fmt.Errorf("failed to save event playlist: %w", err)
	}
	return nil
}
