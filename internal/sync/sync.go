// package sync fans one song request out to every connected music service
// and records each service's outcome independently.
//
// One service failing, timing out, or panicking never blocks the others;
// its result is an ERROR entry with a sanitized message.
package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/arunsworld/nursery"
	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/spinsync/spinsync/internal/adapters"
	"github.com/spinsync/spinsync/internal/intent"
	"github.com/spinsync/spinsync/internal/models"
	"github.com/spinsync/spinsync/internal/normalizer"
	"github.com/spinsync/spinsync/internal/shared"
)

// RequestStore is the slice of request persistence the orchestrator needs:
// mirroring the legacy service's outcome into the flat request fields.
type RequestStore interface {
	UpdateLegacyResult(id string, status models.SyncStatus, trackID string) error
}

// SyncStateStore persists per-service sync outcomes incrementally.
type SyncStateStore interface {
	Save(requestID string, result models.SyncResult) error
	Status(requestID, service string) (models.SyncStatus, error)
}

// Orchestrator coordinates sync across all configured service adapters.
type Orchestrator struct {
	adapters []adapters.SyncAdapter
	requests RequestStore
	state    SyncStateStore
	limiter  *rate.Limiter
	timeout  time.Duration
	legacy   string
	logger   *log.Logger
}

// NewOrchestrator wires the adapter slice and stores. Adapters are attempted
// in slice order and results preserve that order.
func NewOrchestrator(svcAdapters []adapters.SyncAdapter, requests RequestStore, state SyncStateStore, cfg shared.SyncConfig, logger *log.Logger) *Orchestrator {
	perSecond := cfg.SearchRatePerSecond
	if perSecond <= 0 {
		perSecond = 4
	}
	legacy := cfg.LegacyService
	if legacy == "" {
		legacy = adapters.ServiceSpinlist
	}

	return &Orchestrator{
		adapters: svcAdapters,
		requests: requests,
		state:    state,
		limiter:  rate.NewLimiter(rate.Limit(perSecond), perSecond),
		timeout:  cfg.AdapterTimeout(),
		legacy:   legacy,
		logger:   logger,
	}
}

// eligible returns the adapters that will attempt this user and event:
// connected services the event has not disabled.
func (o *Orchestrator) eligible(user models.User, event models.Event) []adapters.SyncAdapter {
	out := make([]adapters.SyncAdapter, 0, len(o.adapters))
	for _, a := range o.adapters {
		if !a.IsConnected(user) {
			o.logger.Debug("skipping disconnected service", "service", a.ServiceName())
			continue
		}
		if !a.IsSyncEnabled(event) {
			o.logger.Debug("skipping disabled service", "service", a.ServiceName(), "event", event.ID)
			continue
		}
		out = append(out, a)
	}
	return out
}

// SyncRequest syncs one request to every eligible service concurrently.
// Each service's result is persisted the moment it is known; the returned
// results follow adapter order.
func (o *Orchestrator) SyncRequest(ctx context.Context, user models.User, event models.Event, request models.Request) (models.MultiSyncResult, error) {
	ictx := intent.Parse(request.RawQuery)
	track := normalizer.NormalizeTrack(request.Title, request.Artist)
	eligible := o.eligible(user, event)

	results := make([]models.SyncResult, len(eligible))
	jobs := make([]nursery.ConcurrentJob, len(eligible))
	for i, a := range eligible {
		i, a := i, a
		jobs[i] = func(jctx context.Context, _ chan error) {
			results[i] = o.syncOne(jctx, a, user, event, track, ictx)
			o.persist(request.ID, results[i])
		}
	}
	if err := nursery.RunConcurrentlyWithContext(ctx, jobs...); err != nil {
		return models.MultiSyncResult{}, fmt.Errorf("sync fan-out failed: %w", err)
	}

	return models.MultiSyncResult{Results: results}, nil
}

// syncOne runs a single adapter with its own deadline, converting errors and
// panics into ERROR results so one service never poisons the fan-out.
func (o *Orchestrator) syncOne(ctx context.Context, a adapters.SyncAdapter, user models.User, event models.Event, track normalizer.NormalizedTrack, ictx intent.Context) (result models.SyncResult) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("adapter panicked", "service", a.ServiceName(), "panic", r)
			result = o.errorResult(a.ServiceName(), errAdapterPanic)
		}
	}()

	actx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	res, err := a.SyncTrack(actx, user, event, track, ictx)
	if err != nil {
		o.logger.Warn("sync attempt failed", "service", a.ServiceName(), "err", err)
		return o.errorResult(a.ServiceName(), err)
	}
	return res
}

func (o *Orchestrator) errorResult(service string, err error) models.SyncResult {
	return models.SyncResult{Service: service, Status: models.StatusError, Error: Sanitize(err)}
}

// persist upserts one service's outcome and mirrors the legacy service's
// result into the request's flat fields. Persistence failures are logged,
// never surfaced, so a storage hiccup cannot fail an otherwise good sync.
func (o *Orchestrator) persist(requestID string, result models.SyncResult) {
	if err := o.state.Save(requestID, result); err != nil {
		o.logger.Error("failed to persist sync state", "request", requestID, "service", result.Service, "err", err)
	}

	if result.Service != o.legacy {
		return
	}
	var trackID string
	if result.Match != nil {
		trackID = result.Match.TrackID
	}
	if err := o.requests.UpdateLegacyResult(requestID, result.Status, trackID); err != nil {
		o.logger.Error("failed to mirror legacy result", "request", requestID, "err", err)
	}
}

// BatchSummary is one service's tally for a batch sync.
type BatchSummary struct {
	Service  string
	Added    int
	Matched  int
	NotFound int
	Errors   int
	Skipped  int
}

// SyncBatch syncs many requests per service: searches run concurrently
// under the shared rate limit, the event playlist is ensured once, and all
// matches land in a single batch add. Requests a service already ADDED or
// MATCHED are skipped, so re-running a batch is safe.
func (o *Orchestrator) SyncBatch(ctx context.Context, user models.User, event models.Event, reqs []*models.Request) ([]BatchSummary, error) {
	eligible := o.eligible(user, event)

	summaries := make([]BatchSummary, 0, len(eligible))
	for _, a := range eligible {
		summary, err := o.batchForAdapter(ctx, a, user, event, reqs)
		if err != nil {
			return summaries, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (o *Orchestrator) batchForAdapter(ctx context.Context, a adapters.SyncAdapter, user models.User, event models.Event, reqs []*models.Request) (BatchSummary, error) {
	service := a.ServiceName()
	summary := BatchSummary{Service: service}

	var pending []*models.Request
	for _, req := range reqs {
		status, err := o.state.Status(req.ID, service)
		if err != nil {
			return summary, fmt.Errorf("failed to read sync state: %w", err)
		}
		if status == models.StatusAdded || status == models.StatusMatched {
			summary.Skipped++
			continue
		}
		pending = append(pending, req)
	}
	if len(pending) == 0 {
		return summary, nil
	}

	matches := make([]*models.TrackMatch, len(pending))
	searchErrs := make([]error, len(pending))
	jobs := make([]nursery.ConcurrentJob, len(pending))
	for i, req := range pending {
		i, req := i, req
		jobs[i] = func(jctx context.Context, _ chan error) {
			matches[i], searchErrs[i] = o.searchOne(jctx, a, req)
		}
	}
	if err := nursery.RunConcurrentlyWithContext(ctx, jobs...); err != nil {
		return summary, fmt.Errorf("batch search failed: %w", err)
	}

	var matched []*models.Request
	var matchedTracks []*models.TrackMatch
	for i, req := range pending {
		switch {
		case searchErrs[i] != nil:
			summary.Errors++
			o.persist(req.ID, o.errorResult(service, searchErrs[i]))
		case matches[i] == nil:
			summary.NotFound++
			o.persist(req.ID, models.SyncResult{Service: service, Status: models.StatusNotFound})
		default:
			matched = append(matched, req)
			matchedTracks = append(matchedTracks, matches[i])
		}
	}
	if len(matched) == 0 {
		return summary, nil
	}

	playlistID, err := a.EnsurePlaylist(ctx, user, event)
	if err != nil {
		for _, req := range matched {
			summary.Errors++
			o.persist(req.ID, o.errorResult(service, err))
		}
		return summary, nil
	}

	// search-only services have nothing to write to
	if playlistID == "" {
		for i, req := range matched {
			summary.Matched++
			o.persist(req.ID, models.SyncResult{Service: service, Status: models.StatusMatched, Match: matchedTracks[i]})
		}
		return summary, nil
	}

	trackIDs := make([]string, len(matchedTracks))
	for i, m := range matchedTracks {
		trackIDs[i] = m.TrackID
	}
	if err := a.AddTracksToPlaylist(ctx, playlistID, trackIDs); err != nil {
		for _, req := range matched {
			summary.Errors++
			o.persist(req.ID, o.errorResult(service, err))
		}
		return summary, nil
	}

	for i, req := range matched {
		summary.Added++
		o.persist(req.ID, models.SyncResult{
			Service:    service,
			Status:     models.StatusAdded,
			Match:      matchedTracks[i],
			PlaylistID: playlistID,
		})
	}
	return summary, nil
}

// searchOne runs one rate-limited search with the per-adapter deadline,
// recovering panics into errors.
func (o *Orchestrator) searchOne(ctx context.Context, a adapters.SyncAdapter, req *models.Request) (match *models.TrackMatch, err error) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("adapter panicked", "service", a.ServiceName(), "panic", r)
			match, err = nil, errAdapterPanic
		}
	}()

	if err := o.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	actx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	ictx := intent.Parse(req.RawQuery)
	track := normalizer.NormalizeTrack(req.Title, req.Artist)
	return a.SearchTrack(actx, track, ictx)
}
