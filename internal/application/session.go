package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/ericfisherdev/quickdynalist/internal/domain/model"
	"github.com/ericfisherdev/quickdynalist/internal/domain/port/driven"
)

// Session holds the Dynalist credential for the lifetime of the process.
// It is loaded once from the credential store at construction, written back
// to the store on SetToken, and read everywhere else. Reads and writes are
// mutex-protected so the local API can serve concurrent requests.
type Session struct {
	mu    sync.RWMutex
	store driven.CredentialStore
	token string
}

// NewSession loads the stored token, if any, from store.
func NewSession(ctx context.Context, store driven.CredentialStore) (*Session, error) {
	token, err := store.Get(ctx, model.CredentialServiceDynalist, model.CredentialKeyToken)
	if err != nil {
		return nil, fmt.Errorf("load stored token: %w", err)
	}
	return &Session{store: store, token: token}, nil
}

// IsAuthenticated reports whether a token is present.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Token returns the current token, or "" when unauthenticated.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetToken persists token and then makes it the session's credential. The
// in-memory value only changes once the write succeeded.
func (s *Session) SetToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Set(ctx, model.CredentialServiceDynalist, model.CredentialKeyToken, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	s.token = token
	return nil
}
