// package tasks implements the now-playing watcher: a long-running loop
// that polls live playback and marks matching requests as played.
//
// The watcher emits progress updates via a channel for non-blocking status
// reporting to the CLI layer.
package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/spinsync/spinsync/internal/models"
	"github.com/spinsync/spinsync/internal/scoring"
	"github.com/spinsync/spinsync/internal/services"
	"github.com/spinsync/spinsync/internal/shared"
)

// RequestStore is the request persistence the watcher needs.
type RequestStore interface {
	ListForEvent(eventID string, statuses ...models.RequestStatus) ([]*models.Request, error)
	UpdateStatus(id string, status models.RequestStatus) error
}

// Watcher polls a service's live playback and marks the accepted request
// best matching the playing track as played.
type Watcher struct {
	player   services.Player
	requests RequestStore
	interval time.Duration
	logger   *log.Logger
}

// NewWatcher builds a watcher polling at the given interval (defaults to 15s).
func NewWatcher(player services.Player, requests RequestStore, interval time.Duration, logger *log.Logger) *Watcher {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &Watcher{player: player, requests: requests, interval: interval, logger: logger}
}

// Run polls until ctx is cancelled, sending updates through progress.
func (w *Watcher) Run(ctx context.Context, eventID string, progress chan<- ProgressUpdate) error {
	if w.player == nil {
		return fmt.Errorf("%w: no playback source configured", shared.ErrServiceUnavailable)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.Check(ctx, eventID, progress); err != nil {
				w.logger.Warn("now-playing check failed", "err", err)
			}
		}
	}
}

// Check runs a single poll: fetch the playing track, match it against the
// event's accepted requests, and mark the best match played.
func (w *Watcher) Check(ctx context.Context, eventID string, progress chan<- ProgressUpdate) error {
	playing, err := w.player.NowPlaying(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch playback: %w", err)
	}
	if playing == nil {
		w.sendProgress(progress, idleUpdate())
		return nil
	}
	w.sendProgress(progress, playingUpdate(playing))

	accepted, err := w.requests.ListForEvent(eventID, models.RequestAccepted)
	if err != nil {
		return fmt.Errorf("failed to load accepted requests: %w", err)
	}
	if len(accepted) == 0 {
		return nil
	}

	candidates := make([]models.Request, len(accepted))
	for i, req := range accepted {
		candidates[i] = *req
	}

	match := scoring.MatchNowPlaying(playing.Title, playing.Artist, candidates)
	if match == nil {
		return nil
	}

	if err := w.requests.UpdateStatus(match.ID, models.RequestPlayed); err != nil {
		return fmt.Errorf("failed to mark request played: %w", err)
	}
	w.logger.Info("request played", "request", match.ID, "title", match.Title, "artist", match.Artist)
	w.sendProgress(progress, playedUpdate(match))
	return nil
}

// sendProgress sends an update without blocking; a full or absent channel
// never stalls the poll loop.
func (w *Watcher) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}
