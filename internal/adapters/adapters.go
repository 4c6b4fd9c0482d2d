// package adapters wraps each external music catalog behind the uniform
// SyncAdapter contract the orchestrator fans out to.
//
// Adapters are constructed explicitly at startup and passed in as a slice;
// there is no package-level registry.
package adapters

import (
	"context"

	"github.com/spinsync/spinsync/internal/intent"
	"github.com/spinsync/spinsync/internal/models"
	"github.com/spinsync/spinsync/internal/normalizer"
	"github.com/spinsync/spinsync/internal/scoring"
	"github.com/spinsync/spinsync/internal/services"
	"github.com/spinsync/spinsync/internal/shared"
	"github.com/spinsync/spinsync/internal/version"
)

// searchLimit bounds how many raw results one catalog search requests.
const searchLimit = 10

// SyncAdapter is the uniform contract over one external music service.
type SyncAdapter interface {
	// ServiceName returns the stable service key ("spinlist", "wavebeat").
	ServiceName() string

	// IsConnected reports whether the user can reach this service.
	IsConnected(user models.User) bool

	// IsSyncEnabled reports whether the event allows syncing to this service.
	IsSyncEnabled(event models.Event) bool

	// SearchTrack finds the best catalog match for a normalized request, or
	// nil when nothing clears the match thresholds.
	SearchTrack(ctx context.Context, track normalizer.NormalizedTrack, ictx intent.Context) (*models.TrackMatch, error)

	// SearchCandidates runs a free-text search and returns candidate
	// profiles tagged with this adapter's service name.
	SearchCandidates(ctx context.Context, query string, limit int) ([]models.TrackProfile, error)

	// EnsurePlaylist returns the event's playlist on this service, creating
	// it on first use. Search-only services return "".
	EnsurePlaylist(ctx context.Context, user models.User, event models.Event) (string, error)

	// AddToPlaylist adds one matched track. Already-present tracks are
	// success, not an error.
	AddToPlaylist(ctx context.Context, playlistID string, match models.TrackMatch) error

	// AddTracksToPlaylist adds many tracks in as few calls as the service
	// allows.
	AddTracksToPlaylist(ctx context.Context, playlistID string, trackIDs []string) error

	// SyncTrack runs this service's full flow for one request. Errors are
	// returned raw; the orchestrator sanitizes them.
	SyncTrack(ctx context.Context, user models.User, event models.Event, track normalizer.NormalizedTrack, ictx intent.Context) (models.SyncResult, error)
}

// PlaylistStore persists the per-event playlist ID an adapter created on
// its service.
type PlaylistStore interface {
	PlaylistID(eventID, service string) (string, error)
	SavePlaylistID(eventID, service, playlistID string) error
}

// RunDefaultSync is the standard sync flow: search, then ensure the event
// playlist, then add. Adapters with ordinary write access delegate their
// SyncTrack to it.
func RunDefaultSync(ctx context.Context, a SyncAdapter, user models.User, event models.Event, track normalizer.NormalizedTrack, ictx intent.Context) (models.SyncResult, error) {
	match, err := a.SearchTrack(ctx, track, ictx)
	if err != nil {
		return models.SyncResult{}, err
	}
	if match == nil {
		return models.SyncResult{Service: a.ServiceName(), Status: models.StatusNotFound}, nil
	}

	playlistID, err := a.EnsurePlaylist(ctx, user, event)
	if err != nil {
		return models.SyncResult{}, err
	}
	if err := a.AddToPlaylist(ctx, playlistID, *match); err != nil {
		return models.SyncResult{}, err
	}

	return models.SyncResult{
		Service:    a.ServiceName(),
		Status:     models.StatusAdded,
		Match:      match,
		PlaylistID: playlistID,
	}, nil
}

// RunSearchOnlySync is the flow for read-only catalogs: report MATCHED
// instead of attempting playlist writes.
func RunSearchOnlySync(ctx context.Context, a SyncAdapter, track normalizer.NormalizedTrack, ictx intent.Context) (models.SyncResult, error) {
	match, err := a.SearchTrack(ctx, track, ictx)
	if err != nil {
		return models.SyncResult{}, err
	}
	if match == nil {
		return models.SyncResult{Service: a.ServiceName(), Status: models.StatusNotFound}, nil
	}
	return models.SyncResult{Service: a.ServiceName(), Status: models.StatusMatched, Match: match}, nil
}

// AddTracksSequentially is the fallback batch add for services without a
// bulk endpoint: one call per track, stopping at the first failure.
func AddTracksSequentially(ctx context.Context, a SyncAdapter, playlistID string, trackIDs []string) error {
	for _, id := range trackIDs {
		if err := a.AddToPlaylist(ctx, playlistID, models.TrackMatch{Service: a.ServiceName(), TrackID: id}); err != nil {
			return err
		}
	}
	return nil
}

// buildSearchQuery derives the catalog query for a normalized request. The
// remixer is appended when the requester asked for a specific remix so
// catalogs rank that version first.
func buildSearchQuery(track normalizer.NormalizedTrack, ictx intent.Context) string {
	query := track.Title + " " + normalizer.PrimaryArtist(track.Artist)
	if ictx.WantsRemix() {
		if artist := ictx.ExplicitRemixArtist(); artist != "" && !track.HasNamedRemix {
			query += " " + artist + " remix"
		}
	}
	return normalizer.CollapseSpaces(query)
}

// searchForMatch runs the shared search flow: query the catalog, drop
// unwanted versions, pick the best remaining candidate.
func searchForMatch(ctx context.Context, catalog services.Searcher, service string, track normalizer.NormalizedTrack, ictx intent.Context) (*models.TrackMatch, error) {
	results, err := catalog.SearchTracks(ctx, buildSearchQuery(track, ictx), searchLimit)
	if err != nil {
		return nil, err
	}

	wanted := results[:0:0]
	for _, r := range results {
		if version.IsUnwanted(r.Title, &ictx) {
			continue
		}
		wanted = append(wanted, r)
	}

	opts := scoring.DefaultMatchOptions()
	opts.PreferOriginal = ictx.WantsOriginal()

	best, score := scoring.FindBestMatch(wanted, track.Title, track.Artist, opts)
	if best == nil {
		return nil, nil
	}

	return &models.TrackMatch{
		Service:         service,
		TrackID:         best.ID,
		Title:           best.Title,
		Artist:          best.Artist,
		Confidence:      shared.Clamp01(score),
		URL:             best.URL,
		DurationSeconds: best.DurationSeconds,
	}, nil
}

// searchCandidates maps raw catalog results to source-tagged profiles for
// the recommendation pipeline.
func searchCandidates(ctx context.Context, catalog services.Searcher, service string, query string, limit int) ([]models.TrackProfile, error) {
	results, err := catalog.SearchTracks(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	out := make([]models.TrackProfile, 0, len(results))
	for _, r := range results {
		out = append(out, models.TrackProfile{
			Title:           r.Title,
			Artist:          r.Artist,
			BPM:             r.BPM,
			Key:             r.Key,
			Genre:           r.Genre,
			Source:          service,
			TrackID:         r.ID,
			URL:             r.URL,
			CoverURL:        r.CoverURL,
			DurationSeconds: r.DurationSeconds,
		})
	}
	return out, nil
}
