// package recommend suggests tracks that fit an event's musical profile.
//
// The pipeline enriches stored requests with BPM, key and genre from the
// metadata catalog, aggregates them into an event profile, then searches
// every connected service and ranks the candidates against that profile.
// Enrichment and candidate searches are best-effort: a failing service is
// logged and skipped, never fatal.
package recommend

import (
	"context"
	"fmt"
	stdsync "sync"

	"github.com/arunsworld/nursery"
	"github.com/charmbracelet/log"

	"github.com/spinsync/spinsync/internal/adapters"
	"github.com/spinsync/spinsync/internal/models"
	"github.com/spinsync/spinsync/internal/normalizer"
	"github.com/spinsync/spinsync/internal/scoring"
	"github.com/spinsync/spinsync/internal/services"
	"github.com/spinsync/spinsync/internal/shared"
)

// duplicateThreshold is the combined title/artist similarity above which a
// candidate counts as a track the event already has.
const duplicateThreshold = 0.8

// enrichmentSearchLimit bounds each per-request metadata lookup.
const enrichmentSearchLimit = 5

// RequestStore is the request persistence the recommender needs.
type RequestStore interface {
	ListPlayable(eventID string) ([]*models.Request, error)
	UpdateTrackMetadata(id string, bpm *float64, key, genre *string) error
}

// Result is the outcome of one recommendation run.
type Result struct {
	Suggestions             []models.ScoredTrack
	Profile                 models.EventProfile
	EnrichedCount           int
	TotalCandidatesSearched int
	ServicesUsed            []string
}

// Service runs the recommendation pipeline.
type Service struct {
	requests RequestStore
	metadata services.Searcher
	adapters []adapters.SyncAdapter
	cfg      shared.RecommendConfig
	logger   *log.Logger
}

// NewService wires the recommender. metadata is the catalog used for BPM,
// key and genre enrichment; candidate searches go through the adapters.
func NewService(requests RequestStore, metadata services.Searcher, svcAdapters []adapters.SyncAdapter, cfg shared.RecommendConfig, logger *log.Logger) *Service {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 20
	}
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = 25
	}
	if cfg.MaxQueries <= 0 {
		cfg.MaxQueries = 3
	}
	return &Service{requests: requests, metadata: metadata, adapters: svcAdapters, cfg: cfg, logger: logger}
}

// Recommend builds suggestions for an event from its accepted and played
// requests.
func (s *Service) Recommend(ctx context.Context, user models.User, event models.Event) (Result, error) {
	reqs, err := s.requests.ListPlayable(event.ID)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load requests: %w", err)
	}
	if len(reqs) == 0 || !s.anyConnected(user) {
		return Result{}, nil
	}

	result := Result{EnrichedCount: s.enrich(ctx, reqs)}

	tracks := make([]models.TrackProfile, len(reqs))
	for i, req := range reqs {
		tracks[i] = models.TrackProfile{
			Title:  req.Title,
			Artist: req.Artist,
			BPM:    req.BPM,
			Key:    req.Key,
			Genre:  req.Genre,
		}
	}
	result.Profile = scoring.BuildEventProfile(tracks)

	candidates, servicesUsed := s.searchCandidates(ctx, user, deriveQueries(result.Profile, s.cfg.MaxQueries))
	result.TotalCandidatesSearched = len(candidates)
	result.ServicesUsed = servicesUsed

	kept := dedupe(candidates, reqs)
	result.Suggestions = scoring.RankCandidates(kept, result.Profile, s.cfg.MaxResults)

	return result, nil
}

// anyConnected reports whether at least one adapter can search for this
// user. Without one there is nowhere to source candidates from, so the
// pipeline skips enrichment and profiling entirely.
func (s *Service) anyConnected(user models.User) bool {
	for _, a := range s.adapters {
		if a.IsConnected(user) {
			return true
		}
	}
	return false
}

// enrich fills missing BPM, key and genre on each request from the metadata
// catalog and stores what it found. Returns how many requests gained data.
func (s *Service) enrich(ctx context.Context, reqs []*models.Request) int {
	if s.metadata == nil {
		return 0
	}

	enriched := 0
	for _, req := range reqs {
		if req.HasFullMetadata() {
			continue
		}

		query := normalizer.CollapseSpaces(req.Title + " " + normalizer.PrimaryArtist(req.Artist))
		results, err := s.metadata.SearchTracks(ctx, query, enrichmentSearchLimit)
		if err != nil {
			s.logger.Warn("metadata lookup failed", "request", req.ID, "err", err)
			continue
		}

		best, _ := scoring.FindBestMatch(results, req.Title, req.Artist, scoring.DefaultMatchOptions())
		if best == nil {
			continue
		}

		var bpm *float64
		var key, genre *string
		if req.BPM == nil && best.BPM != nil {
			bpm = best.BPM
		}
		if req.Key == nil && best.Key != nil {
			key = best.Key
		}
		if req.Genre == nil && best.Genre != nil {
			genre = best.Genre
		}
		if bpm == nil && key == nil && genre == nil {
			continue
		}

		// fill the in-memory request regardless; persistence is best-effort
		if bpm != nil {
			req.BPM = bpm
		}
		if key != nil {
			req.Key = key
		}
		if genre != nil {
			req.Genre = genre
		}
		enriched++

		if err := s.requests.UpdateTrackMetadata(req.ID, bpm, key, genre); err != nil {
			s.logger.Warn("failed to store enriched metadata", "request", req.ID, "err", err)
		}
	}
	return enriched
}

// deriveQueries turns the event profile into up to maxQueries catalog
// searches: one per dominant genre, a tempo-flavored query when the profile
// carries a BPM, and a generic fallback when nothing is known.
func deriveQueries(profile models.EventProfile, maxQueries int) []string {
	var queries []string
	for _, genre := range profile.DominantGenres {
		if len(queries) == maxQueries {
			return queries
		}
		queries = append(queries, genre)
	}

	if len(queries) < maxQueries && profile.AvgBPM > 0 {
		flavor := "dance"
		if len(profile.DominantGenres) > 0 {
			flavor = profile.DominantGenres[0]
		}
		queries = append(queries, fmt.Sprintf("%s %.0f bpm", flavor, profile.AvgBPM))
	}

	if len(queries) == 0 {
		queries = append(queries, "dance music")
	}
	return queries
}

// searchCandidates fans the derived queries out to every connected adapter
// concurrently. Failed searches are logged and skipped.
func (s *Service) searchCandidates(ctx context.Context, user models.User, queries []string) ([]models.TrackProfile, []string) {
	var mu stdsync.Mutex
	var candidates []models.TrackProfile
	used := map[string]bool{}

	var jobs []nursery.ConcurrentJob
	for _, a := range s.adapters {
		if !a.IsConnected(user) {
			continue
		}
		for _, query := range queries {
			a, query := a, query
			jobs = append(jobs, func(jctx context.Context, _ chan error) {
				found, err := a.SearchCandidates(jctx, query, s.cfg.SearchLimit)
				if err != nil {
					s.logger.Warn("candidate search failed", "service", a.ServiceName(), "err", err)
					return
				}
				mu.Lock()
				candidates = append(candidates, found...)
				used[a.ServiceName()] = true
				mu.Unlock()
			})
		}
	}
	if err := nursery.RunConcurrentlyWithContext(ctx, jobs...); err != nil {
		s.logger.Warn("candidate fan-out interrupted", "err", err)
	}

	servicesUsed := make([]string, 0, len(used))
	for _, a := range s.adapters {
		if used[a.ServiceName()] {
			servicesUsed = append(servicesUsed, a.ServiceName())
		}
	}
	return candidates, servicesUsed
}

// dedupe drops candidates that duplicate an existing request or an earlier
// kept candidate, judged by the combined title/artist similarity.
func dedupe(candidates []models.TrackProfile, reqs []*models.Request) []models.TrackProfile {
	kept := make([]models.TrackProfile, 0, len(candidates))

	for _, cand := range candidates {
		duplicate := false
		for _, req := range reqs {
			if similar(cand.Title, cand.Artist, req.Title, req.Artist) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			for _, prev := range kept {
				if similar(cand.Title, cand.Artist, prev.Title, prev.Artist) {
					duplicate = true
					break
				}
			}
		}
		if !duplicate {
			kept = append(kept, cand)
		}
	}
	return kept
}

func similar(titleA, artistA, titleB, artistB string) bool {
	score := scoring.CombinedScore(
		normalizer.FuzzyScore(normalizer.NormalizeTitle(titleA), normalizer.NormalizeTitle(titleB)),
		normalizer.ArtistMatchScore(artistA, artistB),
	)
	return score >= duplicateThreshold
}
