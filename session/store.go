// Package session holds the client-local record of who is logged in,
// persisted under the "user" storage key and rehydrated at startup.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/phanto-shop/storefront/models"
	"github.com/phanto-shop/storefront/storage"
)

// Result is the outcome of a login or registration attempt.
type Result struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user,omitempty"`
}

// Store owns the current-user state. Mutations are serialized by a mutex
// because HTTP handlers read and write it concurrently.
type Store struct {
	mu      sync.RWMutex
	current *models.User
	ready   bool

	storage storage.Store
	auth    Authenticator
	log     *zap.Logger
}

func NewStore(st storage.Store, auth Authenticator, log *zap.Logger) *Store {
	return &Store{storage: st, auth: auth, log: log}
}

// Initialize rehydrates the persisted user record; callers must invoke it
// before any consumer reads the current user. Once it has succeeded, further
// calls are no-ops; after a storage error the store stays uninitialized and
// the call can be retried. A corrupt record is logged and treated as
// logged-out.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return nil
	}

	data, err := s.storage.Get(ctx, storage.KeyUser)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		// no stored session
	case err != nil:
		return fmt.Errorf("read user record: %w", err)
	default:
		var user models.User
		if err := json.Unmarshal(data, &user); err != nil {
			s.log.Warn("Discarding corrupt user record", zap.Error(err))
		} else {
			s.current = &user
		}
	}

	s.ready = true
	return nil
}

// Login delegates to the authenticator and persists the resulting user.
func (s *Store) Login(ctx context.Context, email, password string) (Result, error) {
	user, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return Result{}, err
	}
	if err := s.setCurrent(ctx, user); err != nil {
		return Result{}, err
	}
	return Result{Success: true, User: user}, nil
}

// Register delegates to the authenticator and persists the new user.
func (s *Store) Register(ctx context.Context, displayName, email, password string) (Result, error) {
	user, err := s.auth.Register(ctx, displayName, email, password)
	if err != nil {
		return Result{}, err
	}
	if err := s.setCurrent(ctx, user); err != nil {
		return Result{}, err
	}
	return Result{Success: true, User: user}, nil
}

// Logout clears the current user and the persisted record. Calling it while
// logged out is a no-op.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := s.storage.Delete(ctx, storage.KeyUser); err != nil {
		return fmt.Errorf("delete user record: %w", err)
	}
	return nil
}

// Current returns the logged-in user, or nil.
func (s *Store) Current() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil
	}
	user := *s.current
	return &user
}

// IsAuthenticated reports whether a user is logged in.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// Ready reports whether the initial storage read has completed.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

func (s *Store) setCurrent(ctx context.Context, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user record: %w", err)
	}
	if err := s.storage.Set(ctx, storage.KeyUser, data); err != nil {
		return fmt.Errorf("persist user record: %w", err)
	}

	s.mu.Lock()
	s.current = user
	s.mu.Unlock()
	return nil
}
