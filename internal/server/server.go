// package server runs the short-lived local HTTP server that completes a
// service's OAuth authorization code flow for the connect command.
package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net"
	"net/http"
	"net/url"
	stdsync "sync"

	"golang.org/x/oauth2"
)

// AuthResult is the outcome of one authorization flow.
type AuthResult struct {
	Token *oauth2.Token
	err   error
}

func (r *AuthResult) Error() error { return r.err }

// NewState returns a random state token for CSRF protection.
func NewState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// CallbackHandler serves a service's OAuth redirect URI: it validates the
// state parameter, exchanges the authorization code, and delivers the token
// through Result. Only the first callback is processed.
type CallbackHandler struct {
	config     *oauth2.Config
	state      string
	resultChan chan AuthResult
	once       stdsync.Once
	mu         stdsync.Mutex
	handled    bool
}

// NewCallbackHandler creates a handler for the given OAuth2 config and state
// token.
func NewCallbackHandler(config *oauth2.Config, state string) *CallbackHandler {
	return &CallbackHandler{
		config:     config,
		state:      state,
		resultChan: make(chan AuthResult, 1),
	}
}

func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	if h.handled {
		h.mu.Unlock()
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}
	h.handled = true
	h.mu.Unlock()

	if r.URL.Query().Get("state") != h.state {
		h.send(AuthResult{err: fmt.Errorf("invalid state parameter")})
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		errParam := r.URL.Query().Get("error")
		h.send(AuthResult{err: fmt.Errorf("authorization denied: %s", errParam)})
		http.Error(w, "Authorization failed", http.StatusBadRequest)
		return
	}

	token, err := h.config.Exchange(r.Context(), code)
	if err != nil {
		h.send(AuthResult{err: fmt.Errorf("token exchange failed: %w", err)})
		http.Error(w, "Token exchange failed", http.StatusInternalServerError)
		return
	}

	h.send(AuthResult{Token: token})

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, `<!DOCTYPE html>
<html>
<head><title>Connected</title></head>
<body>
	<h1>Service connected</h1>
	<p>You can close this window and return to the terminal.</p>
</body>
</html>
`)
}

// send delivers the result exactly once.
func (h *CallbackHandler) send(result AuthResult) {
	h.once.Do(func() {
		h.resultChan <- result
		close(h.resultChan)
	})
}

// Result returns the channel the flow's single outcome arrives on.
func (h *CallbackHandler) Result() <-chan AuthResult {
	return h.resultChan
}

// WaitForToken serves the config's redirect URI until the callback arrives
// or ctx expires, returning the exchanged token.
func WaitForToken(ctx context.Context, config *oauth2.Config, state string) (*oauth2.Token, error) {
	redirect, err := url.Parse(config.RedirectURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redirect URI: %w", err)
	}

	handler := NewCallbackHandler(config, state)
	mux := http.NewServeMux()
	mux.Handle(redirect.Path, handler)

	listener, err := net.Listen("tcp", redirect.Host)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", redirect.Host, err)
	}

	srv := &http.Server{Handler: mux}
	go srv.Serve(listener)
	defer srv.Shutdown(context.Background())

	select {
	case result := <-handler.Result():
		if result.Error() != nil {
			return nil, result.Error()
		}
		return result.Token, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("authorization not completed: %w", ctx.Err())
	}
}
