package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"

	"github.com/spinsync/spinsync/internal/adapters"
	"github.com/spinsync/spinsync/internal/recommend"
	"github.com/spinsync/spinsync/internal/repositories"
	"github.com/spinsync/spinsync/internal/services"
	"github.com/spinsync/spinsync/internal/shared"
	"github.com/spinsync/spinsync/internal/sync"
)

// localUser is the account the CLI operates as. Single-operator tool; the
// schema supports more.
const localUser = "local"

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	logger *log.Logger
	output io.Writer

	db        *sql.DB
	requests  *repositories.RequestRepository
	syncState *repositories.SyncStateRepository
	playlists *repositories.EventPlaylistRepository
	tokens    *repositories.TokenRepository
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config: opts.Config,
		logger: opts.Logger,
		output: opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, connectCommand, requestCommand, syncCommand, recommendCommand, watchCommand, keyCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// openDatabase lazily opens the configured database and applies the schema.
func (r *Runner) openDatabase() error {
	if r.db != nil {
		return nil
	}

	db, err := shared.NewDatabase(r.config.Database.Path, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)
	if err != nil {
		return err
	}

	if err := repositories.InitSchema(db); err != nil {
		db.Close()
		return err
	}

	r.db = db
	r.requests = repositories.NewRequestRepository(db)
	r.syncState = repositories.NewSyncStateRepository(db)
	r.playlists = repositories.NewEventPlaylistRepository(db)
	r.tokens = repositories.NewTokenRepository(db)
	return nil
}

// spinlistClient builds an authenticated Spinlist client from the stored
// token, or nil when the service was never connected.
func (r *Runner) spinlistClient() (*services.SpinlistClient, error) {
	token, err := r.tokens.Token(localUser, adapters.ServiceSpinlist)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, nil
	}

	oauthCfg := r.config.Credentials.Spinlist.OAuthConfig()
	httpClient := oauth2.NewClient(
		context.Background(),
		oauthCfg.TokenSource(context.Background(), token),
	)
	return services.NewSpinlistClient(httpClient, r.config.Credentials.Spinlist.UserID), nil
}

// wavebeatClient builds the Wavebeat catalog client when an API key is
// configured.
func (r *Runner) wavebeatClient() *services.WavebeatClient {
	wb := r.config.Credentials.Wavebeat
	if wb.APIKey == "" || wb.BaseURL == "" {
		return nil
	}
	return services.NewWavebeatClient(wb.BaseURL, wb.APIKey, r.config.Sync.SearchRatePerSecond)
}

// buildAdapters assembles the adapter slice in attempt order.
func (r *Runner) buildAdapters() ([]adapters.SyncAdapter, error) {
	spinlist, err := r.spinlistClient()
	if err != nil {
		return nil, err
	}

	var spinlistCatalog services.Catalog
	if spinlist != nil {
		spinlistCatalog = spinlist
	}

	var wavebeatCatalog services.Searcher
	if wb := r.wavebeatClient(); wb != nil {
		wavebeatCatalog = wb
	}

	return []adapters.SyncAdapter{
		adapters.NewSpinlistAdapter(spinlistCatalog, r.playlists, r.logger),
		adapters.NewWavebeatAdapter(wavebeatCatalog),
	}, nil
}

// buildOrchestrator wires the sync orchestrator for the current config.
func (r *Runner) buildOrchestrator() (*sync.Orchestrator, error) {
	svcAdapters, err := r.buildAdapters()
	if err != nil {
		return nil, err
	}
	return sync.NewOrchestrator(svcAdapters, r.requests, r.syncState, r.config.Sync, r.logger), nil
}

// buildRecommender wires the recommendation pipeline; Wavebeat doubles as
// the metadata enrichment catalog.
func (r *Runner) buildRecommender() (*recommend.Service, error) {
	svcAdapters, err := r.buildAdapters()
	if err != nil {
		return nil, err
	}

	var metadata services.Searcher
	if wb := r.wavebeatClient(); wb != nil {
		metadata = wb
	}

	return recommend.NewService(r.requests, metadata, svcAdapters, r.config.Recommend, r.logger), nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	return r.writePlain(format+"\n", args...)
}
