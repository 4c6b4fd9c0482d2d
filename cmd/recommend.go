package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/spinsync/spinsync/internal/formatter"
	"github.com/spinsync/spinsync/internal/models"
)

// Recommend prints track suggestions that fit the event's profile, and
// optionally writes them to CSV.
func (r *Runner) Recommend(ctx context.Context, cmd *cli.Command) error {
	if err := r.openDatabase(); err != nil {
		return err
	}

	user, err := r.tokens.LoadUser(localUser)
	if err != nil {
		return err
	}

	service, err := r.buildRecommender()
	if err != nil {
		return err
	}

	result, err := service.Recommend(ctx, user, models.Event{ID: cmd.String("event")})
	if err != nil {
		return err
	}

	if err := r.writePlain("%s", formatter.FormatRecommendations(result)); err != nil {
		return err
	}

	if path := cmd.String("csv"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create csv file: %w", err)
		}
		defer f.Close()

		if err := formatter.WriteRecommendationsCSV(f, result); err != nil {
			return err
		}
		if err := r.writePlainln("Wrote %d suggestions to %s", len(result.Suggestions), path); err != nil {
			return err
		}
	}
	return nil
}
