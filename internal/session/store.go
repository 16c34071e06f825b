// Package session holds the per-user conversation state in memory.
//
// State is deliberately ephemeral: a restart drops every in-progress
// form and users simply start over from the main menu. One user's
// session never touches another's, so a single mutex around the map is
// all the coordination the store needs.
package session

import (
	"sync"

	"gitlab.com/nepalfinance/claims-bot/internal/models"
)

// Store maps Telegram user IDs to their active form session.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]*models.Session
}

// NewStore returns an empty session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[int64]*models.Session),
	}
}

// Get returns the user's session, creating an idle one on first access.
func (s *Store) Get(userID int64) *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		sess = models.NewSession()
		s.sessions[userID] = sess
	}
	return sess
}

// Advance merges fieldUpdates into the draft and moves the session to
// next, as a single atomic step. Passing the current step with updates
// records an answer without advancing.
func (s *Store) Advance(userID int64, next models.Step, fieldUpdates map[models.Field]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		sess = models.NewSession()
		s.sessions[userID] = sess
	}

	for field, value := range fieldUpdates {
		sess.Draft[field] = value
	}
	sess.ActiveStep = next
}

// Reset returns the user's session to idle with an empty draft. It is
// idempotent and safe to call for users with no session.
func (s *Store) Reset(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[userID] = models.NewSession()
}
