package scan

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryRepository backs tests and local development.
type InMemoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]*Session // keyed by userID + "/" + scanID
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{sessions: make(map[string]*Session)}
}

func sessionKey(userID, scanID string) string {
	return userID + "/" + scanID
}

func (r *InMemoryRepository) Create(_ context.Context, s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.Version == 0 {
		s.Version = 1
	}
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now

	stored := cloneSession(s)
	r.sessions[sessionKey(s.UserID, s.ScanID)] = stored
	return nil
}

func (r *InMemoryRepository) Get(_ context.Context, userID, scanID string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[sessionKey(userID, scanID)]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return cloneSession(s), nil
}

func (r *InMemoryRepository) Update(_ context.Context, s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.sessions[sessionKey(s.UserID, s.ScanID)]
	if !ok {
		return ErrSessionNotFound
	}
	if stored.Version != s.Version {
		return ErrConflict
	}

	updated := cloneSession(s)
	updated.Version = stored.Version + 1
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = time.Now()
	r.sessions[sessionKey(s.UserID, s.ScanID)] = updated

	s.Version = updated.Version
	return nil
}

func cloneSession(s *Session) *Session {
	c := *s
	c.ImageURLs = append([]string(nil), s.ImageURLs...)
	c.WineData = make(WineData, len(s.WineData))
	for k, v := range s.WineData {
		c.WineData[k] = v
	}
	return &c
}
