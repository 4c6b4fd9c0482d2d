// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles configuration and database initialization.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write an example config.toml to the current directory",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path to write the config file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Initialize the database schema",
				Action: r.SetupDatabase,
			},
		},
	}
}

// connectCommand handles service authorization.
func connectCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "connect",
		Usage: "Connect a music service via OAuth2",
		Commands: []*cli.Command{
			{
				Name:   "spinlist",
				Usage:  "Authorize Spinlist and store the token",
				Action: r.ConnectSpinlist,
			},
			{
				Name:   "status",
				Usage:  "Show which services are connected",
				Action: r.ConnectStatus,
			},
		},
	}
}

// requestCommand manages song requests.
func requestCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "request",
		Aliases: []string{"req"},
		Usage:   "Manage song requests for an event",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Add a song request",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "event",
						Aliases:  []string{"e"},
						Usage:    "Event ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "title",
						Usage:    "Track title",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "artist",
						Usage:    "Artist name",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "query",
						Usage: "The requester's original free-text query",
					},
					&cli.BoolFlag{
						Name:  "accept",
						Usage: "Accept the request immediately",
					},
				},
				Action: r.RequestAdd,
			},
			{
				Name:  "list",
				Usage: "List an event's requests",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "event",
						Aliases:  []string{"e"},
						Usage:    "Event ID",
						Required: true,
					},
				},
				Action: r.RequestList,
			},
			{
				Name:  "accept",
				Usage: "Accept a pending request",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.RequestAccept,
			},
			{
				Name:  "reject",
				Usage: "Reject a pending request",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.RequestReject,
			},
		},
	}
}

// syncCommand runs sync operations.
func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Sync requests to connected music services",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Sync a single request to every connected service",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.SyncRun,
			},
			{
				Name:  "batch",
				Usage: "Sync all accepted requests for an event",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "event",
						Aliases:  []string{"e"},
						Usage:    "Event ID",
						Required: true,
					},
				},
				Action: r.SyncBatch,
			},
		},
	}
}

// recommendCommand runs the recommendation pipeline.
func recommendCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "recommend",
		Aliases: []string{"rec"},
		Usage:   "Recommend tracks matching an event's profile",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "event",
				Aliases:  []string{"e"},
				Usage:    "Event ID",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "csv",
				Usage: "Also write suggestions to a CSV file at this path",
			},
		},
		Action: r.Recommend,
	}
}

// watchCommand runs the now-playing watcher.
func watchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Watch live playback and mark matching requests played",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "event",
				Aliases:  []string{"e"},
				Usage:    "Event ID",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "interval",
				Usage: "Poll interval in seconds",
				Value: 15,
			},
		},
		Action: r.Watch,
	}
}

// keyCommand converts musical keys to Camelot positions.
func keyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "key",
		Usage: "Convert a musical key to its Camelot position and list mixable keys",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "key"},
		},
		Action: r.Key,
	}
}
