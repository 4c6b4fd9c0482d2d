package adapters

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/spinsync/spinsync/internal/intent"
	"github.com/spinsync/spinsync/internal/models"
	"github.com/spinsync/spinsync/internal/normalizer"
	"github.com/spinsync/spinsync/internal/services"
)

// ServiceSpinlist is the Spinlist service key. Spinlist is also the
// designated legacy service whose result is mirrored into flat request
// fields.
const ServiceSpinlist = "spinlist"

// SpinlistAdapter syncs requests to Spinlist playlists.
type SpinlistAdapter struct {
	catalog   services.Catalog
	playlists PlaylistStore
	logger    *log.Logger
}

// NewSpinlistAdapter wires the Spinlist catalog client and playlist store.
func NewSpinlistAdapter(catalog services.Catalog, playlists PlaylistStore, logger *log.Logger) *SpinlistAdapter {
	return &SpinlistAdapter{catalog: catalog, playlists: playlists, logger: logger}
}

func (a *SpinlistAdapter) ServiceName() string { return ServiceSpinlist }

// IsConnected reports whether the user holds a valid Spinlist OAuth token.
func (a *SpinlistAdapter) IsConnected(user models.User) bool {
	return user.Connected(ServiceSpinlist)
}

func (a *SpinlistAdapter) IsSyncEnabled(event models.Event) bool {
	return event.SyncEnabled(ServiceSpinlist)
}

func (a *SpinlistAdapter) SearchTrack(ctx context.Context, track normalizer.NormalizedTrack, ictx intent.Context) (*models.TrackMatch, error) {
	return searchForMatch(ctx, a.catalog, ServiceSpinlist, track, ictx)
}

func (a *SpinlistAdapter) SearchCandidates(ctx context.Context, query string, limit int) ([]models.TrackProfile, error) {
	return searchCandidates(ctx, a.catalog, ServiceSpinlist, query, limit)
}

// EnsurePlaylist returns the event's Spinlist playlist, creating and
// persisting it on first use.
func (a *SpinlistAdapter) EnsurePlaylist(ctx context.Context, user models.User, event models.Event) (string, error) {
	stored, err := a.playlists.PlaylistID(event.ID, ServiceSpinlist)
	if err != nil {
		return "", err
	}
	if stored != "" {
		return stored, nil
	}

	name := event.Name
	if name == "" {
		name = "Event Requests"
	}
	playlistID, err := a.catalog.CreatePlaylist(ctx, name, fmt.Sprintf("Song requests for %s", event.Name))
	if err != nil {
		return "", err
	}

	if err := a.playlists.SavePlaylistID(event.ID, ServiceSpinlist, playlistID); err != nil {
		return "", err
	}
	a.logger.Debug("created event playlist", "service", ServiceSpinlist, "event", event.ID, "playlist", playlistID)
	return playlistID, nil
}

func (a *SpinlistAdapter) AddToPlaylist(ctx context.Context, playlistID string, match models.TrackMatch) error {
	return a.catalog.AddTracks(ctx, playlistID, []string{match.TrackID})
}

// AddTracksToPlaylist uses Spinlist's bulk endpoint: one call for the whole
// batch.
func (a *SpinlistAdapter) AddTracksToPlaylist(ctx context.Context, playlistID string, trackIDs []string) error {
	return a.catalog.AddTracks(ctx, playlistID, trackIDs)
}

func (a *SpinlistAdapter) SyncTrack(ctx context.Context, user models.User, event models.Event, track normalizer.NormalizedTrack, ictx intent.Context) (models.SyncResult, error) {
	return RunDefaultSync(ctx, a, user, event, track, ictx)
}
