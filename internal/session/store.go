// Package session persists the client-held session record: the bearer
// token, username, and role issued at login, plus the reviewer name the
// admin dashboard remembers between runs.
//
// The record lives as JSON in the user's hackdesk directory. Nothing
// here validates the token or tracks expiry; a stale token is only
// discovered when a verification call fails.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/hackdesk/internal/config"
	hderrors "github.com/felixgeelhaar/hackdesk/internal/errors"
)

const sessionFileName = "session.json"

// Role values the portal issues. RoleAdmin has a legacy spelling some
// backend versions still emit; both gate the admin surface.
const (
	RoleUser        = "USER"
	RoleAdmin       = "ADMIN"
	RoleAdminLegacy = "ROLE_ADMIN"
)

// IsAdminRole reports whether role names the admin role in either spelling.
func IsAdminRole(role string) bool {
	return role == RoleAdmin || role == RoleAdminLegacy
}

// User is the locally cached identity. The cached role is advisory:
// gated commands re-verify with the backend before trusting it.
type User struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// record is the on-disk session shape.
type record struct {
	Token    string `json:"token,omitempty"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
	Reviewer string `json:"reviewer,omitempty"`
}

// Store reads and writes the session record under a directory. The
// directory is injectable so tests and the application shell control
// where state lives instead of reading ambient globals.
type Store struct {
	dir string
}

// NewStore creates a session store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultStore creates a session store in the per-user hackdesk directory.
func DefaultStore() (*Store, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	return NewStore(dir), nil
}

func (s *Store) path() string {
	return filepath.Join(s.dir, sessionFileName)
}

func (s *Store) load() (record, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return record{}, nil
		}
		return record{}, hderrors.Wrap(hderrors.ErrCodeSessionRead, "cannot read session file", err)
	}

	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		// A corrupt session file is treated as no session rather
		// than locking the user out of every command.
		return record{}, nil
	}
	return r, nil
}

func (s *Store) save(r record) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return hderrors.Wrap(hderrors.ErrCodeSessionWrite, "cannot create session directory", err)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return hderrors.Wrap(hderrors.ErrCodeSessionWrite, "cannot encode session", err)
	}

	if err := os.WriteFile(s.path(), data, 0o600); err != nil {
		return hderrors.Wrap(hderrors.ErrCodeSessionWrite, "cannot write session file", err)
	}
	return nil
}

// SetSession stores the token, username, and role issued at login. The
// reviewer selection survives re-login.
func (s *Store) SetSession(token, username, role string) error {
	r, err := s.load()
	if err != nil {
		return err
	}
	r.Token = token
	r.Username = username
	r.Role = role
	return s.save(r)
}

// SetUser refreshes the cached username and role without touching the token.
func (s *Store) SetUser(username, role string) error {
	r, err := s.load()
	if err != nil {
		return err
	}
	if username != "" {
		r.Username = username
	}
	if role != "" {
		r.Role = role
	}
	return s.save(r)
}

// Token returns the stored bearer token, empty when logged out.
func (s *Store) Token() string {
	r, _ := s.load()
	return r.Token
}

// User returns the cached user. The second result is false when no
// username is stored; a token alone is not enough to report a user.
func (s *Store) User() (User, bool) {
	r, err := s.load()
	if err != nil || r.Username == "" {
		return User{}, false
	}
	return User{Username: r.Username, Role: r.Role}, true
}

// SetReviewer persists the admin's reviewer selection.
func (s *Store) SetReviewer(name string) error {
	r, err := s.load()
	if err != nil {
		return err
	}
	r.Reviewer = name
	return s.save(r)
}

// Reviewer returns the persisted reviewer selection, empty when unset.
func (s *Store) Reviewer() string {
	r, _ := s.load()
	return r.Reviewer
}

// Clear removes the session credentials. The reviewer selection is a UI
// convenience, not a credential, and is kept.
func (s *Store) Clear() error {
	r, err := s.load()
	if err != nil {
		return err
	}
	if r.Token == "" && r.Username == "" && r.Role == "" {
		return nil
	}
	r.Token = ""
	r.Username = ""
	r.Role = ""
	if err := s.save(r); err != nil {
		return hderrors.Wrap(hderrors.ErrCodeSessionClear, fmt.Sprintf("cannot clear session at %s", s.path()), err)
	}
	return nil
}
