package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/spinsync/spinsync/internal/adapters"
	"github.com/spinsync/spinsync/internal/server"
	"github.com/spinsync/spinsync/internal/shared"
	"github.com/spinsync/spinsync/internal/ui"
)

// authFlowTimeout bounds how long the connect command waits for the user to
// finish the browser flow.
const authFlowTimeout = 5 * time.Minute

// ConnectSpinlist runs the Spinlist OAuth2 authorization code flow and
// stores the resulting token.
func (r *Runner) ConnectSpinlist(ctx context.Context, cmd *cli.Command) error {
	creds := r.config.Credentials.Spinlist
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return fmt.Errorf("%w: spinlist client_id and client_secret must be set in config.toml", shared.ErrMissingCredentials)
	}

	if err := r.openDatabase(); err != nil {
		return err
	}

	state, err := server.NewState()
	if err != nil {
		return err
	}

	oauthCfg := creds.OAuthConfig()
	r.writePlainln("Open this URL in your browser to authorize Spinlist:")
	r.writePlainln("  %s", oauthCfg.AuthCodeURL(state))

	waitCtx, cancel := context.WithTimeout(ctx, authFlowTimeout)
	defer cancel()

	token, err := server.WaitForToken(waitCtx, oauthCfg, state)
	if err != nil {
		return fmt.Errorf("authorization failed: %w", err)
	}

	if err := r.tokens.SaveToken(localUser, adapters.ServiceSpinlist, token); err != nil {
		return err
	}

	r.logger.Info("service connected", "service", adapters.ServiceSpinlist)
	return r.writePlainln("%s", ui.OK("Spinlist connected."))
}

// ConnectStatus reports which services are usable right now.
func (r *Runner) ConnectStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.openDatabase(); err != nil {
		return err
	}

	user, err := r.tokens.LoadUser(localUser)
	if err != nil {
		return err
	}

	spinlist := ui.Err("not connected")
	if user.Connected(adapters.ServiceSpinlist) {
		spinlist = ui.OK("connected")
	}
	r.writePlainln("  %-10s %s", adapters.ServiceSpinlist, spinlist)

	wavebeat := ui.Err("no API key")
	if r.wavebeatClient() != nil {
		wavebeat = ui.OK("configured")
	}
	return r.writePlainln("  %-10s %s", adapters.ServiceWavebeat, wavebeat)
}
