// Spinlist implementation of [Catalog], backed by the Spotify-compatible
// client library.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	spotifyapi "github.com/zmb3/spotify/v2"

	"github.com/spinsync/spinsync/internal/models"
	"github.com/spinsync/spinsync/internal/shared"
)

// SpinlistClient wraps an authenticated Spinlist Web API client.
type SpinlistClient struct {
	client *spotifyapi.Client
	userID string
}

// NewSpinlistClient builds a client from an OAuth-authenticated
// [http.Client] and the account the playlists belong to.
func NewSpinlistClient(httpClient *http.Client, userID string) *SpinlistClient {
	return &SpinlistClient{client: spotifyapi.New(httpClient), userID: userID}
}

// SearchTracks implements [Searcher].
func (c *SpinlistClient) SearchTracks(ctx context.Context, query string, limit int) ([]models.RawResult, error) {
	res, err := c.client.Search(ctx, query, spotifyapi.SearchTypeTrack, spotifyapi.Limit(limit))
	if err != nil {
		return nil, normalizeSpinlistError(err)
	}
	if res.Tracks == nil {
		return nil, nil
	}

	out := make([]models.RawResult, 0, len(res.Tracks.Tracks))
	for _, t := range res.Tracks.Tracks {
		names := make([]string, 0, len(t.Artists))
		for _, a := range t.Artists {
			names = append(names, a.Name)
		}

		raw := models.RawResult{
			ID:              string(t.ID),
			Title:           t.Name,
			Artist:          strings.Join(names, ", "),
			DurationSeconds: int(t.Duration) / 1000,
			URL:             t.ExternalURLs["spotify"],
		}
		if len(t.Album.Images) > 0 {
			raw.CoverURL = t.Album.Images[0].URL
		}
		out = append(out, raw)
	}
	return out, nil
}

// CreatePlaylist implements [PlaylistWriter].
func (c *SpinlistClient) CreatePlaylist(ctx context.Context, name, description string) (string, error) {
	pl, err := c.client.CreatePlaylistForUser(ctx, c.userID, name, description, false, false)
	if err != nil {
		return "", normalizeSpinlistError(err)
	}
	return string(pl.ID), nil
}

// AddTracks implements [PlaylistWriter]. The Spinlist API accepts duplicate
// adds without error, so already-present tracks are naturally a success.
func (c *SpinlistClient) AddTracks(ctx context.Context, playlistID string, trackIDs []string) error {
	if len(trackIDs) == 0 {
		return nil
	}

	ids := make([]spotifyapi.ID, 0, len(trackIDs))
	for _, id := range trackIDs {
		ids = append(ids, spotifyapi.ID(id))
	}

	if _, err := c.client.AddTracksToPlaylist(ctx, spotifyapi.ID(playlistID), ids...); err != nil {
		return normalizeSpinlistError(err)
	}
	return nil
}

// NowPlaying returns the track currently playing on the user's account, or
// nil when playback is stopped.
func (c *SpinlistClient) NowPlaying(ctx context.Context) (*PlayingTrack, error) {
	cp, err := c.client.PlayerCurrentlyPlaying(ctx)
	if err != nil {
		return nil, normalizeSpinlistError(err)
	}
	if cp == nil || !cp.Playing || cp.Item == nil {
		return nil, nil
	}

	names := make([]string, 0, len(cp.Item.Artists))
	for _, a := range cp.Item.Artists {
		names = append(names, a.Name)
	}
	return &PlayingTrack{Title: cp.Item.Name, Artist: strings.Join(names, ", ")}, nil
}

// normalizeSpinlistError converts library errors into the shared taxonomy
// so callers never need to inspect Spinlist-specific error shapes.
func normalizeSpinlistError(err error) error {
	var apiErr spotifyapi.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %w", shared.ErrAPIRequest, &shared.StatusError{Code: apiErr.Status})
	}
	return err
}
