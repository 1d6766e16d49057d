package sessions

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/conclave-hq/conclave/pkg/pagination"
)

// Store is an in-memory session System. Sessions live for the process
// lifetime. Each session carries a weight-1 semaphore acting as its step
// lock, so acquisition is context-aware: a caller abandoning a blocked
// request does not queue a stale step.
type Store struct {
	mu         sync.RWMutex
	sessions   map[uuid.UUID]*Session
	locks      map[uuid.UUID]*semaphore.Weighted
	topic      string
	pagination pagination.Config
	logger     *slog.Logger
}

// NewStore creates a session store. New sessions start with the given
// default debate topic.
func NewStore(topic string, pcfg pagination.Config, logger *slog.Logger) *Store {
	return &Store{
		sessions:   make(map[uuid.UUID]*Session),
		locks:      make(map[uuid.UUID]*semaphore.Weighted),
		topic:      topic,
		pagination: pcfg,
		logger:     logger.With("system", "sessions"),
	}
}

// Handler returns the HTTP handler for session queries.
func (s *Store) Handler() *Handler {
	return NewHandler(s, s.logger, s.pagination)
}

func (s *Store) GetOrCreate(id string) *Session {
	if parsed, err := uuid.Parse(id); err == nil {
		s.mu.RLock()
		session, ok := s.sessions[parsed]
		s.mu.RUnlock()
		if ok {
			return session
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fresh := uuid.New()
	session := newSession(fresh, s.topic)
	s.sessions[fresh] = session
	s.locks[fresh] = semaphore.NewWeighted(1)

	s.logger.Info("session created", "session_id", fresh)
	return session
}

func (s *Store) Find(id uuid.UUID) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return session, nil
}

func (s *Store) List(page pagination.PageRequest) pagination.PageResult[ListEntry] {
	s.mu.RLock()
	entries := make([]ListEntry, 0, len(s.sessions))
	for _, session := range s.sessions {
		entries = append(entries, session.listEntry())
	}
	s.mu.RUnlock()

	slices.SortFunc(entries, func(a, b ListEntry) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})

	return pagination.Slice(entries, page)
}

func (s *Store) Acquire(ctx context.Context, id uuid.UUID) error {
	s.mu.RLock()
	lock, ok := s.locks[id]
	s.mu.RUnlock()

	if !ok {
		return ErrNotFound
	}

	return lock.Acquire(ctx, 1)
}

func (s *Store) Release(id uuid.UUID) {
	s.mu.RLock()
	lock, ok := s.locks[id]
	s.mu.RUnlock()

	if ok {
		lock.Release(1)
	}
}
