// Package session holds the client-side credential state shared by the
// gateway client and the login/logout flows. The store is the only piece of
// cross-component mutable state in the client layer; every mutation is
// mirrored to disk synchronously so a session survives process restarts.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Snapshot is an immutable view of the current session.
type Snapshot struct {
	AccessToken   string `json:"access_token"`
	RefreshToken  string `json:"refresh_token"`
	Username      string `json:"username"`
	Authenticated bool   `json:"is_authenticated"`
}

// Store keeps session credentials in memory and mirrors them to a JSON file.
type Store struct {
	mu   sync.Mutex
	path string
	cur  Snapshot
}

// Open loads the session file at path, or starts with an empty session when
// the file does not exist. An empty path keeps the store memory-only.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("session: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &s.cur); err != nil {
		return nil, fmt.Errorf("session: parse %s: %w", path, err)
	}
	return s, nil
}

// Snapshot returns the current credentials.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// Authenticated reports whether a session is currently held.
func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur.Authenticated
}

// SetTokens replaces the full credential set after a successful login.
func (s *Store) SetTokens(access, refresh, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = Snapshot{
		AccessToken:   access,
		RefreshToken:  refresh,
		Username:      username,
		Authenticated: true,
	}
	return s.persistLocked()
}

// SetAccessToken replaces the access token after a successful refresh. The
// refresh token and authenticated flag are left untouched.
func (s *Store) SetAccessToken(access string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.AccessToken = access
	return s.persistLocked()
}

// Logout clears all credentials.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = Snapshot{}
	return s.persistLocked()
}

// AccessTokenExpiry returns the exp claim of the stored access token. The
// token is parsed without signature verification; the result is informational
// only and never gates a request (refresh is driven by 401 responses).
func (s *Store) AccessTokenExpiry() (time.Time, bool) {
	s.mu.Lock()
	token := s.cur.AccessToken
	s.mu.Unlock()

	if token == "" {
		return time.Time{}, false
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// persistLocked writes the current snapshot to disk via a temp file rename so
// a crash mid-write never truncates the session file. Caller holds s.mu.
func (s *Store) persistLocked() error {
	if s.path == "" {
		return nil
	}
	data, err := json.MarshalIndent(s.cur, "", "  ")
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("session: create dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("session: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("session: rename %s: %w", tmp, err)
	}
	return nil
}
