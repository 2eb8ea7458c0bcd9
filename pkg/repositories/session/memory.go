package session

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fadedpez/tucobet/pkg/entities"
)

// MemoryRepository implements Repository with in-memory maps keyed by user ID
type MemoryRepository struct {
	mu          sync.RWMutex
	progression map[string]*entities.ProgressionSession
	bacbo       map[string]*entities.BacBoSession
}

// NewMemoryRepository creates a new in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		progression: make(map[string]*entities.ProgressionSession),
		bacbo:       make(map[string]*entities.BacBoSession),
	}
}

// SaveProgression stores s unless the user already has a different live session
func (r *MemoryRepository) SaveProgression(ctx context.Context, s *entities.ProgressionSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.progression[s.UserID]; ok && existing.ID != s.ID {
		return ErrSessionExists
	}
	r.progression[s.UserID] = s
	return nil
}

// GetProgression returns the user's live progression session
func (r *MemoryRepository) GetProgression(ctx context.Context, userID string) (*entities.ProgressionSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.progression[userID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// DeleteProgression removes the user's session if it is still sessionID
func (r *MemoryRepository) DeleteProgression(ctx context.Context, userID, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.progression[userID]
	if !ok || s.ID != sessionID {
		return ErrSessionNotFound
	}
	delete(r.progression, userID)
	return nil
}

// SaveBacBo stores s unless the user already has a different live session
func (r *MemoryRepository) SaveBacBo(ctx context.Context, s *entities.BacBoSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.bacbo[s.UserID]; ok && existing.ID != s.ID {
		return ErrSessionExists
	}
	r.bacbo[s.UserID] = s
	return nil
}

// GetBacBo returns the user's live Bac Bo session
func (r *MemoryRepository) GetBacBo(ctx context.Context, userID string) (*entities.BacBoSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.bacbo[userID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// DeleteBacBo removes the user's Bac Bo session if it is still sessionID
func (r *MemoryRepository) DeleteBacBo(ctx context.Context, userID, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.bacbo[userID]
	if !ok || s.ID != sessionID {
		return ErrSessionNotFound
	}
	delete(r.bacbo, userID)
	return nil
}

// ListIdle returns sessions last active before the cutoff, oldest first.
// Session locks are taken only after the repository lock is released.
func (r *MemoryRepository) ListIdle(ctx context.Context, before time.Time) ([]IdleSession, error) {
	r.mu.RLock()
	progression := make([]*entities.ProgressionSession, 0, len(r.progression))
	for _, s := range r.progression {
		progression = append(progression, s)
	}
	bacbo := make([]*entities.BacBoSession, 0, len(r.bacbo))
	for _, s := range r.bacbo {
		bacbo = append(bacbo, s)
	}
	r.mu.RUnlock()

	var idle []IdleSession
	for _, s := range progression {
		s.Lock()
		if s.LastActive.Before(before) {
			idle = append(idle, IdleSession{Kind: KindProgression, UserID: s.UserID, SessionID: s.ID, LastActive: s.LastActive})
		}
		s.Unlock()
	}
	for _, s := range bacbo {
		s.Lock()
		if s.LastActive.Before(before) {
			idle = append(idle, IdleSession{Kind: KindBacBo, UserID: s.UserID, SessionID: s.ID, LastActive: s.LastActive})
		}
		s.Unlock()
	}

	sort.Slice(idle, func(i, j int) bool {
		return idle[i].LastActive.Before(idle[j].LastActive)
	})
	return idle, nil
}

// Close is a no-op for the memory repository
func (r *MemoryRepository) Close() error {
	return nil
}
