package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/spinsync/spinsync/internal/models"
	"github.com/spinsync/spinsync/internal/shared"
	"github.com/spinsync/spinsync/internal/ui"
)

// RequestAdd records a new song request for an event.
func (r *Runner) RequestAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.openDatabase(); err != nil {
		return err
	}

	request := &models.Request{
		EventID:  cmd.String("event"),
		Title:    strings.TrimSpace(cmd.String("title")),
		Artist:   strings.TrimSpace(cmd.String("artist")),
		RawQuery: strings.TrimSpace(cmd.String("query")),
	}
	if cmd.Bool("accept") {
		request.Status = models.RequestAccepted
	}

	if err := r.requests.Create(request); err != nil {
		return err
	}

	r.logger.Info("request created", "id", request.ID, "event", request.EventID)
	return r.writePlainln("Added request %s (%s)", request.ID, request.Status)
}

// RequestList prints every request for an event in submission order.
func (r *Runner) RequestList(ctx context.Context, cmd *cli.Command) error {
	if err := r.openDatabase(); err != nil {
		return err
	}

	eventID := cmd.String("event")
	reqs, err := r.requests.ListForEvent(eventID)
	if err != nil {
		return err
	}
	if len(reqs) == 0 {
		return r.writePlainln("No requests for event %s", eventID)
	}

	for _, req := range reqs {
		line := fmt.Sprintf("%s  %-8s  %s - %s", req.ID, req.Status, req.Artist, req.Title)
		if req.LegacyStatus != "" {
			line += "  [" + ui.Status(req.LegacyStatus) + "]"
		}
		if err := r.writePlainln("%s", line); err != nil {
			return err
		}
	}
	return nil
}

// RequestAccept moves a request into the accepted state.
func (r *Runner) RequestAccept(ctx context.Context, cmd *cli.Command) error {
	return r.setRequestStatus(cmd.StringArg("id"), models.RequestAccepted)
}

// RequestReject moves a request into the rejected state.
func (r *Runner) RequestReject(ctx context.Context, cmd *cli.Command) error {
	return r.setRequestStatus(cmd.StringArg("id"), models.RequestRejected)
}

func (r *Runner) setRequestStatus(id string, status models.RequestStatus) error {
	if id == "" {
		return fmt.Errorf("%w: request id", shared.ErrMissingArgument)
	}
	if err := r.openDatabase(); err != nil {
		return err
	}
	if err := r.requests.UpdateStatus(id, status); err != nil {
		return err
	}
	return r.writePlainln("Request %s is now %s", id, status)
}
