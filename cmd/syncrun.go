package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/spinsync/spinsync/internal/formatter"
	"github.com/spinsync/spinsync/internal/models"
	"github.com/spinsync/spinsync/internal/shared"
)

// SyncRun syncs a single request to every connected service.
func (r *Runner) SyncRun(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: request id", shared.ErrMissingArgument)
	}
	if err := r.openDatabase(); err != nil {
		return err
	}

	request, err := r.requests.Get(id)
	if err != nil {
		return err
	}

	user, err := r.tokens.LoadUser(localUser)
	if err != nil {
		return err
	}

	orchestrator, err := r.buildOrchestrator()
	if err != nil {
		return err
	}

	event := models.Event{ID: request.EventID}
	result, err := orchestrator.SyncRequest(ctx, user, event, *request)
	if err != nil {
		return err
	}

	return r.writePlain("%s", formatter.FormatSyncResults(*request, result))
}

// SyncBatch syncs all playable requests for an event, one playlist write
// per service.
func (r *Runner) SyncBatch(ctx context.Context, cmd *cli.Command) error {
	if err := r.openDatabase(); err != nil {
		return err
	}

	eventID := cmd.String("event")
	reqs, err := r.requests.ListPlayable(eventID)
	if err != nil {
		return err
	}
	if len(reqs) == 0 {
		return r.writePlainln("No accepted requests for event %s", eventID)
	}

	user, err := r.tokens.LoadUser(localUser)
	if err != nil {
		return err
	}

	orchestrator, err := r.buildOrchestrator()
	if err != nil {
		return err
	}

	summaries, err := orchestrator.SyncBatch(ctx, user, models.Event{ID: eventID}, reqs)
	if err != nil {
		return err
	}

	return r.writePlain("%s", formatter.FormatBatchSummaries(summaries))
}
