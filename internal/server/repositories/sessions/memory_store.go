package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
)

// InMemoryStore is a process-local Store for development and tests.
type InMemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]models.Session
}

func NewInMemoryStore(ttl time.Duration) *InMemoryStore {
	return &InMemoryStore{ttl: ttl, now: time.Now, sessions: make(map[string]models.Session)}
}

func (s *InMemoryStore) Create(ctx context.Context, userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := newToken()
	s.sessions[token] = models.Session{Token: token, UserID: userID, ExpiresAt: s.now().Add(s.ttl)}
	return token, nil
}

func (s *InMemoryStore) Resolve(ctx context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return "", common.ErrorNotFound
	}
	if !s.now().Before(sess.ExpiresAt) {
		delete(s.sessions, token)
		return "", common.ErrorNotFound
	}
	return sess.UserID, nil
}

func (s *InMemoryStore) Destroy(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	return nil
}

func (s *InMemoryStore) Ping(ctx context.Context) error { return nil }
