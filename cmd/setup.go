package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/spinsync/spinsync/internal/shared"
)

// SetupConfig writes the example configuration file.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("output")
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}
	return r.writePlainln("Wrote %s. Fill in your credentials before connecting services.", path)
}

// SetupDatabase opens the configured database and applies the schema.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	if err := r.openDatabase(); err != nil {
		return err
	}
	return r.writePlainln("Database ready at %s", r.config.Database.Path)
}
