// Package session owns the persisted authentication state: an opaque token and
// the user's display name.
package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

const (
	tokenKey       = "authToken"
	displayNameKey = "displayName"
)

// ErrEmptyToken is returned when a session is set without a token.
var ErrEmptyToken = errors.New("session token must not be empty")

// KV is the persistent key-value storage behind a Store.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(keys ...string) error
}

// Store is the single owner of the session. It is shared by the API client,
// the route guard and the views; every operation is atomic.
type Store struct {
	mu sync.RWMutex
	kv KV
}

func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// Set persists the token and display name. An empty display name is stored as absent.
func (s *Store) Set(token, displayName string) error {
	if token == "" {
		return ErrEmptyToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Set(tokenKey, token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	var err error
	if displayName == "" {
		if err = s.kv.Delete(displayNameKey); err != nil {
			err = fmt.Errorf("failed to clear display name: %w", err)
		}
	} else if err = s.kv.Set(displayNameKey, displayName); err != nil {
		err = fmt.Errorf("failed to store display name: %w", err)
	}
	if err != nil {
		// no half-written session
		if derr := s.kv.Delete(tokenKey); derr != nil {
			err = errors.Join(err, fmt.Errorf("failed to roll back token: %w", derr))
		}
		return err
	}
	return nil
}

// Token returns the stored token, if any. Storage failures are logged and
// reported as "no session".
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.get(tokenKey)
}

// DisplayName returns the stored display name. It is absent whenever the
// token is absent.
func (s *Store) DisplayName() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.get(tokenKey); !ok {
		return "", false
	}
	return s.get(displayNameKey)
}

// Authenticated reports whether a token is stored.
func (s *Store) Authenticated() bool {
	_, ok := s.Token()
	return ok
}

// Clear removes both values regardless of prior state.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(tokenKey, displayNameKey); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (s *Store) get(key string) (string, bool) {
	value, ok, err := s.kv.Get(key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to read session storage")
		return "", false
	}
	if !ok || value == "" {
		return "", false
	}
	return value, true
}
