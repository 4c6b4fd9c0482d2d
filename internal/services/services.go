// package services wraps the external music catalog APIs behind narrow
// capability interfaces.
//
// Spinlist exposes search plus playlist writes; Wavebeat is read-only for
// third parties and exposes search only. Adapters and the orchestrator
// depend on these interfaces, never on a concrete API shape.
package services

import (
	"context"

	"github.com/spinsync/spinsync/internal/models"
)

// Searcher is the minimum capability every catalog provides.
type Searcher interface {
	// SearchTracks runs a free-text search and returns up to limit raw results.
	SearchTracks(ctx context.Context, query string, limit int) ([]models.RawResult, error)
}

// PlaylistWriter is the playlist capability of catalogs that allow third
// parties to write.
type PlaylistWriter interface {
	// CreatePlaylist creates a playlist and returns its ID.
	CreatePlaylist(ctx context.Context, name, description string) (string, error)

	// AddTracks appends tracks to a playlist. Tracks already present count
	// as success, not as an error.
	AddTracks(ctx context.Context, playlistID string, trackIDs []string) error
}

// Catalog is a full-capability music service.
type Catalog interface {
	Searcher
	PlaylistWriter
}

// PlayingTrack is what a service reports as currently playing.
type PlayingTrack struct {
	Title  string
	Artist string
}

// Player is the live-playback capability: what the user is listening to
// right now.
type Player interface {
	// NowPlaying returns the current track, or nil when playback is stopped.
	NowPlaying(ctx context.Context) (*PlayingTrack, error)
}
