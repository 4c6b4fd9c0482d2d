package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/spinsync/spinsync/internal/shared"
	"github.com/spinsync/spinsync/internal/tasks"
)

// Watch polls live playback and marks matching requests as played until
// interrupted.
func (r *Runner) Watch(ctx context.Context, cmd *cli.Command) error {
	if err := r.openDatabase(); err != nil {
		return err
	}

	player, err := r.spinlistClient()
	if err != nil {
		return err
	}
	if player == nil {
		return fmt.Errorf("%w: run `spinsync connect spinlist` first", shared.ErrNotConnected)
	}

	interval := time.Duration(cmd.Int("interval")) * time.Second
	watcher := tasks.NewWatcher(player, r.requests, interval, r.logger)

	progress := make(chan tasks.ProgressUpdate, 8)
	go func() {
		for update := range progress {
			r.writePlainln("%s", update.Message)
		}
	}()

	eventID := cmd.String("event")
	r.writePlainln("Watching playback for event %s (every %s). Ctrl-C to stop.", eventID, interval)

	err = watcher.Run(ctx, eventID, progress)
	close(progress)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
