// Package session holds the client-side authentication state: the bearer
// token, the signed-in user and the authenticated flag.
//
// The state has two values, Anonymous and Authenticated. IsAuthenticated is
// true exactly when a token is present; every mutation goes through Store so
// the two never drift apart, including when the API reports an expired token.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/coursecomment/coursecomment/internal/client/models"
	"github.com/coursecomment/coursecomment/internal/client/repositories/metadata"
	"github.com/coursecomment/coursecomment/internal/common"
)

var ErrEmptyToken = errors.New("empty session token")

// Session is a point-in-time copy of the store state.
type Session struct {
	Token           string
	User            *models.User
	IsAuthenticated bool
}

// Store owns the session. It is safe for concurrent use; the last write wins.
type Store struct {
	mu    sync.RWMutex
	repo  metadata.Repository
	token string
	user  *models.User

	now func() time.Time
}

// NewStore returns an anonymous store persisting its token through repo.
func NewStore(repo metadata.Repository) *Store {
	return &Store{repo: repo, now: time.Now}
}

// Hydrate loads the persisted token, if any. The user is not persisted, so
// it stays nil until the next login. A token whose exp claim has passed is
// dropped from memory and storage.
func (s *Store) Hydrate(ctx context.Context) error {
	raw, err := s.repo.Get(ctx, common.TokenStorageKey)
	if err != nil {
		return fmt.Errorf("load session token: %w", err)
	}

	token := string(raw)
	if token != "" && TokenExpired(token, s.now()) {
		if err := s.repo.Delete(ctx, common.TokenStorageKey); err != nil {
			return fmt.Errorf("drop expired session token: %w", err)
		}
		token = ""
	}

	s.mu.Lock()
	s.token = token
	s.user = nil
	s.mu.Unlock()
	return nil
}

// SetAuthenticated moves the store to Authenticated and persists the token.
// The in-memory state is updated even if persisting fails; the error is
// still returned so the caller can report it.
func (s *Store) SetAuthenticated(ctx context.Context, token string, user *models.User) error {
	if token == "" {
		return ErrEmptyToken
	}

	var u *models.User
	if user != nil {
		cp := *user
		u = &cp
	}

	s.mu.Lock()
	s.token = token
	s.user = u
	s.mu.Unlock()

	if err := s.repo.Set(ctx, common.TokenStorageKey, []byte(token)); err != nil {
		return fmt.Errorf("persist session token: %w", err)
	}
	return nil
}

// Clear moves the store to Anonymous and removes the persisted token. It
// reports whether the store was authenticated before the call, which lets
// callers react to a transition only once.
func (s *Store) Clear(ctx context.Context) (bool, error) {
	s.mu.Lock()
	changed := s.token != ""
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if err := s.repo.Delete(ctx, common.TokenStorageKey); err != nil {
		return changed, fmt.Errorf("remove session token: %w", err)
	}
	return changed, nil
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// User returns a copy of the signed-in user, or nil.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	cp := *s.user
	return &cp
}

func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := Session{Token: s.token, IsAuthenticated: s.token != ""}
	if s.user != nil {
		cp := *s.user
		out.User = &cp
	}
	return out
}
