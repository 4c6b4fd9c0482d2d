// Wavebeat implementation of [Searcher].
//
// Wavebeat's catalog is read-only for third parties but carries the
// richest musical metadata (BPM, key, genre, mix name), which makes it the
// enrichment source for recommendation profiles.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/spinsync/spinsync/internal/models"
	"github.com/spinsync/spinsync/internal/shared"
)

const defaultWavebeatTimeout = 10 * time.Second

type wavebeatArtist struct {
	Name string `json:"name"`
}

type wavebeatNamed struct {
	Name string `json:"name"`
}

type wavebeatTrack struct {
	ID         int64            `json:"id"`
	Name       string           `json:"name"`
	Artists    []wavebeatArtist `json:"artists"`
	BPM        *float64         `json:"bpm"`
	Key        *wavebeatNamed   `json:"key"`
	Genre      *wavebeatNamed   `json:"genre"`
	MixName    string           `json:"mix_name"`
	LengthMS   int              `json:"length_ms"`
	URL        string           `json:"url"`
	ArtworkURL string           `json:"artwork_url"`
}

type wavebeatSearchResponse struct {
	Tracks []wavebeatTrack `json:"tracks"`
}

// WavebeatClient is a raw HTTP client for the Wavebeat catalog API.
// Requests are paced through a rate limiter because catalog search is the
// hottest external call in batch sync and enrichment.
type WavebeatClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
}

// NewWavebeatClient creates a client for the given API base URL and key.
func NewWavebeatClient(baseURL, apiKey string, searchesPerSecond int) *WavebeatClient {
	if searchesPerSecond <= 0 {
		searchesPerSecond = 4
	}
	return &WavebeatClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: defaultWavebeatTimeout},
		limiter: rate.NewLimiter(rate.Limit(searchesPerSecond), 1),
	}
}

// SearchTracks implements [Searcher].
func (c *WavebeatClient) SearchTracks(ctx context.Context, query string, limit int) ([]models.RawResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/catalog/search?query=%s&per_page=%s",
		c.baseURL, url.QueryEscape(query), url.QueryEscape(strconv.Itoa(limit)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %w", shared.ErrAPIRequest, &shared.StatusError{Code: resp.StatusCode})
	}

	var parsed wavebeatSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	out := make([]models.RawResult, 0, len(parsed.Tracks))
	for _, t := range parsed.Tracks {
		names := make([]string, 0, len(t.Artists))
		for _, a := range t.Artists {
			names = append(names, a.Name)
		}

		raw := models.RawResult{
			ID:              strconv.FormatInt(t.ID, 10),
			Title:           t.Name,
			Artist:          strings.Join(names, ", "),
			BPM:             t.BPM,
			DurationSeconds: t.LengthMS / 1000,
			URL:             t.URL,
			CoverURL:        t.ArtworkURL,
		}
		if t.Key != nil && t.Key.Name != "" {
			key := t.Key.Name
			raw.Key = &key
		}
		if t.Genre != nil && t.Genre.Name != "" {
			genre := t.Genre.Name
			raw.Genre = &genre
		}
		if t.MixName != "" {
			mix := t.MixName
			raw.MixName = &mix
		}
		out = append(out, raw)
	}
	return out, nil
}
