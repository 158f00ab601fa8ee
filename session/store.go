package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lumenik/install-client/model"
)

// Fixed persistence keys, kept stable across releases.
const (
	KeyToken = "token_lumenik"
	KeyUser  = "usuario_lumenik"
)

type (
	// Store persists the auth session (bearer token + profile) in a single
	// local key-value file. Both keys are written and cleared together.
	Store struct {
		path string
	}

	record struct {
		Token string      `json:"token_lumenik,omitempty"`
		User  *model.User `json:"usuario_lumenik,omitempty"`
	}
)

// NewStore creates a session store backed by the given file path.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("%s: must be set", "path")
	}

	return &Store{path: path}, nil
}

// Save persists the token and the user profile together.
func (s *Store) Save(token string, user model.User) error {
	data, err := json.MarshalIndent(record{Token: token, User: &user}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	// write-then-rename keeps a crashed save from leaving a torn session
	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("committing session: %w", err)
	}

	return nil
}

// Token returns the stored bearer token ("" when logged out).
func (s *Store) Token() string {
	rec, err := s.load()
	if err != nil {
		return ""
	}

	return rec.Token
}

// User returns the stored profile.
func (s *Store) User() (model.User, bool) {
	rec, err := s.load()
	if err != nil || rec.User == nil {
		return model.User{}, false
	}

	return *rec.User, true
}

// Authenticated reports whether a token is present.
func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

// Clear drops the whole session; both keys disappear in a single operation.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clearing session: %w", err)
	}

	return nil
}

// TokenExpired inspects the token's exp claim without verifying the
// signature (verification is the backend's job). A missing or unreadable
// claim does not count as expired.
func (s *Store) TokenExpired(now time.Time) bool {
	token := s.Token()
	if token == "" {
		return true
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return exp.Before(now)
}

func (s *Store) load() (record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return record{}, err
	}

	rec := record{}
	if err := json.Unmarshal(data, &rec); err != nil {
		return record{}, fmt.Errorf("decoding session: %w", err)
	}

	return rec, nil
}
