// Package auth owns the session lifecycle: signup, login, backend
// verification, and logout.
//
// The service computes what should happen next (a Route) and leaves the
// navigation side effect to the caller, so the lifecycle logic stays
// testable without a terminal. The cached role is never the trust
// boundary: every gated surface re-verifies against the backend.
package auth

import (
	"context"

	"github.com/felixgeelhaar/hackdesk/internal/api"
	"github.com/felixgeelhaar/hackdesk/internal/log"
	"github.com/felixgeelhaar/hackdesk/internal/session"
)

// Route names the landing surface a successful auth outcome leads to
type Route int

const (
	// RouteHome is the default participant landing surface
	RouteHome Route = iota
	// RouteAdmin is the admin review dashboard
	RouteAdmin
)

// String returns the route's command-line destination
func (r Route) String() string {
	if r == RouteAdmin {
		return "dashboard"
	}
	return "home"
}

// RouteFor maps a role to its landing surface, accepting both admin
// role spellings
func RouteFor(role string) Route {
	if session.IsAdminRole(role) {
		return RouteAdmin
	}
	return RouteHome
}

// Result is the structured outcome of signup and login. Network and
// backend failures degrade to Success=false with a user-facing message;
// nothing propagates a raw transport error.
type Result struct {
	Success bool
	Message string
}

// State is the outcome of a session verification
type State struct {
	Authenticated bool
	User          *api.User
}

// Service performs the auth operations against the backend and owns the
// session store. Both collaborators are injected.
type Service struct {
	client *api.Client
	store  *session.Store
	logger *log.Logger
}

// NewService creates an auth service
func NewService(client *api.Client, store *session.Store) *Service {
	return &Service{
		client: client,
		store:  store,
		logger: log.DefaultLogger().With("component", "auth"),
	}
}

// failureMessage turns an operation error into the message shown to the
// user, preferring the backend's own wording
func failureMessage(err error, fallback string) string {
	switch {
	case api.IsNetwork(err):
		return "Network error"
	case api.IsMalformed(err):
		return "Malformed response from server"
	default:
		return api.Message(err, fallback)
	}
}

// Signup creates an account. It stores nothing: signing up does not
// imply being logged in.
func (s *Service) Signup(ctx context.Context, username, password string) Result {
	if _, err := s.client.Signup(ctx, username, password); err != nil {
		s.logger.WithError(err).Debug("signup failed", "username", username)
		return Result{Success: false, Message: failureMessage(err, "Signup failed")}
	}

	return Result{Success: true, Message: "Signup successful"}
}

// Login exchanges credentials for a session. Success requires both an
// HTTP-OK response and a non-empty token; an OK response without a
// token is still a failed login and writes no session state. On success
// the session is persisted and the returned Route says where the caller
// should land.
func (s *Service) Login(ctx context.Context, username, password string) (Result, Route) {
	resp, err := s.client.Login(ctx, username, password)
	if err != nil {
		s.logger.WithError(err).Debug("login failed", "username", username)
		return Result{Success: false, Message: failureMessage(err, "Login failed")}, RouteHome
	}

	if resp.Token == "" {
		message := resp.Message
		if message == "" {
			message = "Login failed"
		}
		return Result{Success: false, Message: message}, RouteHome
	}

	role := resp.Role
	if role == "" {
		role = session.RoleUser
	}

	if err := s.store.SetSession(resp.Token, resp.Username, role); err != nil {
		s.logger.WithError(err).Error("cannot persist session")
		return Result{Success: false, Message: "Could not save session"}, RouteHome
	}

	s.client.SetToken(resp.Token)
	s.logger.Info("logged in", "username", resp.Username, "role", role)

	return Result{Success: true}, RouteFor(role)
}

// VerifyAuth checks the stored session against the backend. With no
// stored token it short-circuits to unauthenticated without a network
// call. A definitive 401/403 clears the stale session; a transport
// failure leaves it intact, since an unreachable server says nothing
// about the session's validity.
func (s *Service) VerifyAuth(ctx context.Context) State {
	token := s.store.Token()
	if token == "" {
		return State{Authenticated: false}
	}

	s.client.SetToken(token)

	user, err := s.client.Me(ctx)
	if err != nil {
		if api.IsUnauthorized(err) {
			if clearErr := s.store.Clear(); clearErr != nil {
				s.logger.WithError(clearErr).Warn("cannot clear rejected session")
			}
		}
		s.logger.WithError(err).Debug("session verification failed")
		return State{Authenticated: false}
	}

	// Refresh the cached identity from the authoritative answer.
	if err := s.store.SetUser(user.Username, user.Role); err != nil {
		s.logger.WithError(err).Warn("cannot refresh cached user")
	}

	return State{Authenticated: true, User: user}
}

// Logout clears the session unconditionally. No network call, no
// confirmation.
func (s *Service) Logout() (Route, error) {
	if err := s.store.Clear(); err != nil {
		return RouteHome, err
	}
	s.client.SetToken("")
	s.logger.Info("logged out")
	return RouteHome, nil
}

// Token passes through to the session store
func (s *Service) Token() string {
	return s.store.Token()
}

// User passes through to the session store
func (s *Service) User() (session.User, bool) {
	return s.store.User()
}
