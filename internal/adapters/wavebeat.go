package adapters

import (
	"context"

	"github.com/spinsync/spinsync/internal/intent"
	"github.com/spinsync/spinsync/internal/models"
	"github.com/spinsync/spinsync/internal/normalizer"
	"github.com/spinsync/spinsync/internal/services"
)

// ServiceWavebeat is the Wavebeat service key.
const ServiceWavebeat = "wavebeat"

// WavebeatAdapter is the search-only adapter: Wavebeat's catalog cannot be
// written by third parties, so syncing reports MATCHED rather than
// attempting playlist writes.
type WavebeatAdapter struct {
	catalog services.Searcher
}

// NewWavebeatAdapter wires the Wavebeat catalog client.
func NewWavebeatAdapter(catalog services.Searcher) *WavebeatAdapter {
	return &WavebeatAdapter{catalog: catalog}
}

func (a *WavebeatAdapter) ServiceName() string { return ServiceWavebeat }

// IsConnected is true whenever a catalog client is configured; Wavebeat
// access is keyed to the deployment, not to individual users.
func (a *WavebeatAdapter) IsConnected(user models.User) bool {
	return a.catalog != nil
}

func (a *WavebeatAdapter) IsSyncEnabled(event models.Event) bool {
	return event.SyncEnabled(ServiceWavebeat)
}

func (a *WavebeatAdapter) SearchTrack(ctx context.Context, track normalizer.NormalizedTrack, ictx intent.Context) (*models.TrackMatch, error) {
	return searchForMatch(ctx, a.catalog, ServiceWavebeat, track, ictx)
}

func (a *WavebeatAdapter) SearchCandidates(ctx context.Context, query string, limit int) ([]models.TrackProfile, error) {
	return searchCandidates(ctx, a.catalog, ServiceWavebeat, query, limit)
}

// EnsurePlaylist is a no-op: Wavebeat has no third-party playlists.
func (a *WavebeatAdapter) EnsurePlaylist(ctx context.Context, user models.User, event models.Event) (string, error) {
	return "", nil
}

// AddToPlaylist is a no-op for the read-only catalog.
func (a *WavebeatAdapter) AddToPlaylist(ctx context.Context, playlistID string, match models.TrackMatch) error {
	return nil
}

// AddTracksToPlaylist is a no-op for the read-only catalog.
func (a *WavebeatAdapter) AddTracksToPlaylist(ctx context.Context, playlistID string, trackIDs []string) error {
	return nil
}

func (a *WavebeatAdapter) SyncTrack(ctx context.Context, user models.User, event models.Event, track normalizer.NormalizedTrack, ictx intent.Context) (models.SyncResult, error) {
	return RunSearchOnlySync(ctx, a, track, ictx)
}
