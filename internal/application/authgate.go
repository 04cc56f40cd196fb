package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/ericfisherdev/quickdynalist/internal/domain/model"
	"github.com/ericfisherdev/quickdynalist/internal/domain/port/driven"
)

// DefaultDeveloperURL is where Dynalist users generate API tokens.
const DefaultDeveloperURL = "https://dynalist.io/developer"

const (
	acquisitionExplanation = "quickdynalist needs a Dynalist API token. Your browser will open the " +
		"Dynalist developer page; generate a token there and paste it here."
	tokenPrompt = "Paste your Dynalist API token"
)

// AuthGate decides whether the application holds a usable token and drives
// the acquisition flow when it does not.
//
// States: unauthenticated -> awaiting_input (prompt opened) -> validating
// (token submitted) -> authenticated on an Ok response, or back to
// awaiting_input on anything else. At most one prompt is open at a time.
type AuthGate struct {
	session      *Session
	client       driven.DynalistClient
	prompter     driven.Prompter
	browser      driven.Browser
	developerURL string
	logger       *slog.Logger

	mu         sync.Mutex
	state      model.AuthState
	promptOpen bool
}

// NewAuthGate creates an AuthGate. prompter and browser may be nil for
// non-interactive callers such as the local API; such a gate can validate
// tokens but cannot run the acquisition flow.
func NewAuthGate(
	session *Session,
	client driven.DynalistClient,
	prompter driven.Prompter,
	browser driven.Browser,
	developerURL string,
	logger *slog.Logger,
) *AuthGate {
	if developerURL == "" {
		developerURL = DefaultDeveloperURL
	}

	state := model.AuthStateUnauthenticated
	if session.IsAuthenticated() {
		state = model.AuthStateAuthenticated
	}

	return &AuthGate{
		session:      session,
		client:       client,
		prompter:     prompter,
		browser:      browser,
		developerURL: developerURL,
		logger:       logger,
		state:        state,
	}
}

// IsAuthenticated reports whether a token is stored. It has no side effects.
func (g *AuthGate) IsAuthenticated() bool {
	return g.session.IsAuthenticated()
}

// State returns the current gate state.
func (g *AuthGate) State() model.AuthState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// PromptOpen reports whether an acquisition prompt is currently open.
func (g *AuthGate) PromptOpen() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.promptOpen
}

// Ensure returns immediately when a token is stored and otherwise runs the
// acquisition flow until a token is accepted or the user gives up.
func (g *AuthGate) Ensure(ctx context.Context) error {
	if g.IsAuthenticated() && g.State() == model.AuthStateAuthenticated {
		return nil
	}
	return g.BeginAcquisition(ctx)
}

// BeginAcquisition runs the acquisition flow: explain, then open the
// developer page and ask for the token at the same time, then validate.
// A rejected token shows the invalid-token notice and restarts the flow;
// there is no retry limit. The flow ends when a token is accepted, the user
// declines, input ends, or ctx is done.
func (g *AuthGate) BeginAcquisition(ctx context.Context) error {
	if g.prompter == nil {
		return ErrNoPrompter
	}
	if !g.openPrompt() {
		return ErrAcquisitionInProgress
	}
	defer g.closePrompt()

	for {
		ok, err := g.prompter.Confirm(ctx, acquisitionExplanation)
		if err != nil {
			return fmt.Errorf("acquisition prompt: %w", err)
		}
		if !ok {
			return ErrAcquisitionDeclined
		}

		go g.openDeveloperPage()

		token, err := g.prompter.ReadToken(ctx, tokenPrompt)
		if err != nil {
			return fmt.Errorf("read token: %w", err)
		}

		err = g.Validate(ctx, token)
		if err == nil {
			g.prompter.Notify(driven.NoticeTokenAccepted)
			return nil
		}
		if ctx.Err() != nil {
			return err
		}

		g.prompter.Notify(driven.NoticeTokenInvalid)
	}
}

// Validate checks token against the file list endpoint and stores it on an
// Ok response. Any other outcome (non-Ok code, malformed body, transport
// failure, blank token) leaves the stored token untouched and returns an
// error wrapping ErrInvalidToken. The gate then returns to awaiting_input,
// unless it was authenticated before: a rejected candidate does not
// invalidate the token already stored.
func (g *AuthGate) Validate(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	failState := model.AuthStateAwaitingInput
	if g.swapState(model.AuthStateValidating) == model.AuthStateAuthenticated && g.session.IsAuthenticated() {
		failState = model.AuthStateAuthenticated
	}

	if token == "" {
		g.setState(failState)
		return fmt.Errorf("%w: empty token", ErrInvalidToken)
	}

	task := Go(ctx, func(ctx context.Context) ([]model.File, error) {
		return g.client.ListFiles(ctx, token)
	})
	res := task.Await(ctx)

	if err := ctx.Err(); err != nil {
		g.setState(failState)
		return fmt.Errorf("%w: %w", ErrSessionEnded, err)
	}

	if res.Err != nil {
		g.logger.Warn("token validation failed", "error", res.Err)
		g.setState(failState)
		return fmt.Errorf("%w: %w", ErrInvalidToken, res.Err)
	}

	if err := g.session.SetToken(ctx, token); err != nil {
		g.setState(failState)
		return err
	}

	g.logger.Info("token accepted", "files", len(res.Value))
	g.setState(model.AuthStateAuthenticated)
	return nil
}

// Fail is the failure path taken when the API rejects a request made with
// the stored token: the invalid-token notice is shown, the gate returns to
// awaiting_input, and the acquisition flow restarts when a prompter is
// available. The stored token is not cleared.
func (g *AuthGate) Fail(ctx context.Context) error {
	g.MarkRejected()

	if g.prompter == nil {
		return nil
	}

	g.prompter.Notify(driven.NoticeTokenInvalid)
	return g.BeginAcquisition(ctx)
}

// MarkRejected moves the gate to awaiting_input without prompting.
func (g *AuthGate) MarkRejected() {
	g.setState(model.AuthStateAwaitingInput)
}

func (g *AuthGate) openDeveloperPage() {
	if g.browser == nil {
		return
	}
	if err := g.browser.OpenURL(g.developerURL); err != nil {
		g.logger.Warn("could not open browser", "url", g.developerURL, "error", err)
	}
}

// openPrompt claims the single prompt slot. It returns false when another
// prompt is already open.
func (g *AuthGate) openPrompt() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.promptOpen {
		return false
	}
	g.promptOpen = true
	g.state = model.AuthStateAwaitingInput
	return true
}

func (g *AuthGate) closePrompt() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.promptOpen = false
}

// swapState sets state and returns the previous one.
func (g *AuthGate) swapState(state model.AuthState) model.AuthState {
	g.mu.Lock()
	defer g.mu.Unlock()
	prev := g.state
	g.state = state
	return prev
}

func (g *AuthGate) setState(state model.AuthState) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = state
}
