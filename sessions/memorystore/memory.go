package memorystore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ggoodman/fortune-compass/sessions"
)

var _ sessions.Store = (*Store)(nil)

// Store is an in-memory implementation of sessions.Store.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*sessions.Session
}

func New() *Store {
	return &Store{
		sessions: make(map[string]*sessions.Session),
	}
}

func (s *Store) Get(ctx context.Context, id string) (*sessions.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", sessions.ErrSessionNotFound, id)
	}
	return sess, nil
}

func (s *Store) Put(ctx context.Context, sess *sessions.Session) error {
	if sess == nil {
		return errors.New("session is required")
	}
	if sess.ID == "" {
		return errors.New("session id is required")
	}
	if sess.Transport == nil {
		return errors.New("session transport is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sess.ID]; ok {
		return fmt.Errorf("%w: %s", sessions.ErrSessionExists, sess.ID)
	}
	s.sessions[sess.ID] = sess
	return nil
}

func (s *Store) Contains(ctx context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.sessions[id]
	return ok, nil
}

// Len returns the number of registered sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
