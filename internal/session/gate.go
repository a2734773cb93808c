// Package session implements the auth gate in front of the review workflow:
// it resolves the current identity once per process, exposes sign-in /
// sign-up / sign-out, and answers whether the protected workflow may be
// entered.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/payam/backend/internal/model"
)

// State is the gate's position in its lifecycle.
type State int

const (
	// Resolving means the persisted-session check has not completed yet.
	// Callers must not redirect to sign-in from this state.
	Resolving State = iota
	Anonymous
	AuthenticatedNonAdmin
	AuthenticatedAdmin
)

func (s State) String() string {
	switch s {
	case Resolving:
		return "resolving"
	case Anonymous:
		return "anonymous"
	case AuthenticatedNonAdmin:
		return "authenticated"
	case AuthenticatedAdmin:
		return "admin"
	}
	return "unknown"
}

// Authenticator is the remote auth surface the gate delegates to.
type Authenticator interface {
	// SignIn returns the profile and a session token.
	SignIn(ctx context.Context, email, password string) (*model.Profile, string, error)
	// SignUp creates an account without starting a session.
	SignUp(ctx context.Context, email, password, fullName string) (*model.Profile, error)
	// SignOut invalidates the remote session, best effort.
	SignOut(ctx context.Context, token string) error
	// Me resolves a persisted token back to its profile.
	Me(ctx context.Context, token string) (*model.Profile, error)
}

// TokenStore persists the session token between runs.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// ErrConfirmMismatch is returned by SignUp when the confirmation does not
// equal the password. Checked locally, before any remote call.
var ErrConfirmMismatch = errors.New("password confirmation does not match")

// Gate is the process-wide session holder. The gate is its only writer;
// everything else reads through its accessors.
type Gate struct {
	auth   Authenticator
	tokens TokenStore

	mu       sync.Mutex
	state    State
	profile  *model.Profile
	token    string
	resolved bool
	subs     map[int]func(State)
	nextSub  int
}

// New creates a Gate in the Resolving state.
func New(auth Authenticator, tokens TokenStore) *Gate {
	return &Gate{auth: auth, tokens: tokens, state: Resolving, subs: make(map[int]func(State))}
}

// Resolve performs the persisted-session check. It transitions out of
// Resolving exactly once; later calls return the settled state without
// touching the store again.
func (g *Gate) Resolve(ctx context.Context) State {
	g.mu.Lock()
	if g.resolved {
		state := g.state
		g.mu.Unlock()
		return state
	}
	g.mu.Unlock()

	token, err := g.tokens.Load()
	if err != nil || token == "" {
		return g.settle("", nil)
	}

	profile, err := g.auth.Me(ctx, token)
	if err != nil {
		// Expired or revoked token: drop it and settle anonymous.
		_ = g.tokens.Clear()
		slog.Debug("persisted session rejected", "error", err)
		return g.settle("", nil)
	}
	return g.settle(token, profile)
}

// settle records the outcome of resolution or a sign-in/out transition and
// notifies subscribers.
func (g *Gate) settle(token string, profile *model.Profile) State {
	g.mu.Lock()
	g.resolved = true
	g.token = token
	g.profile = profile
	g.state = deriveState(profile)
	state := g.state
	subs := make([]func(State), 0, len(g.subs))
	for _, fn := range g.subs {
		subs = append(subs, fn)
	}
	g.mu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
	return state
}

// deriveState computes the gate state from the profile alone; the admin
// role is never cached separately from the profile that carries it.
func deriveState(profile *model.Profile) State {
	switch {
	case profile == nil:
		return Anonymous
	case profile.IsAdmin:
		return AuthenticatedAdmin
	default:
		return AuthenticatedNonAdmin
	}
}

// State returns the current gate state.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Profile returns the current profile, nil when anonymous or resolving.
func (g *Gate) Profile() *model.Profile {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.profile
}

// Token returns the current session token, empty when there is no session.
func (g *Gate) Token() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.token
}

// IsAdmin is a pure derivation of the current profile. It is false while
// the gate is still resolving and false for anonymous sessions.
func (g *Gate) IsAdmin() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.profile != nil && g.profile.IsAdmin
}

// Allowed reports whether the protected review workflow may be entered.
func (g *Gate) Allowed() bool {
	return g.State() == AuthenticatedAdmin
}

// ShouldRedirect reports whether the caller should send the visitor to the
// sign-in entry point. Never true while resolving: redirecting early would
// bounce a restorable session.
func (g *Gate) ShouldRedirect() bool {
	s := g.State()
	return s == Anonymous || s == AuthenticatedNonAdmin
}

// SignIn authenticates, persists the session token and settles the gate.
func (g *Gate) SignIn(ctx context.Context, email, password string) error {
	profile, token, err := g.auth.SignIn(ctx, email, password)
	if err != nil {
		return err
	}
	if err := g.tokens.Save(token); err != nil {
		slog.Warn("session token not persisted", "error", err)
	}
	g.settle(token, profile)
	return nil
}

// SignUp registers a new account. The confirmation equality check happens
// here, before any remote call; no session is created on success.
func (g *Gate) SignUp(ctx context.Context, email, password, confirm, fullName string) error {
	if password != confirm {
		return ErrConfirmMismatch
	}
	_, err := g.auth.SignUp(ctx, email, password, fullName)
	return err
}

// SignOut clears the local session synchronously and unconditionally; the
// remote invalidation is best effort and its failure is only logged.
func (g *Gate) SignOut(ctx context.Context) {
	g.mu.Lock()
	token := g.token
	g.mu.Unlock()

	_ = g.tokens.Clear()
	g.settle("", nil)

	if token != "" {
		if err := g.auth.SignOut(ctx, token); err != nil {
			slog.Debug("remote sign-out failed", "error", err)
		}
	}
}

// Subscribe registers fn to run on every state change and returns an
// unsubscribe function.
func (g *Gate) Subscribe(fn func(State)) func() {
	g.mu.Lock()
	id := g.nextSub
	g.nextSub++
	g.subs[id] = fn
	g.mu.Unlock()

	return func() {
		g.mu.Lock()
		delete(g.subs, id)
		g.mu.Unlock()
	}
}
