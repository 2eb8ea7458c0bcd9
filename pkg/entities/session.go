package entities

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// ProgressionSession is a user's live Martingale session.
// Lock serialises operations on the same session; the engines themselves hold no locks.
type ProgressionSession struct {
	mu sync.Mutex

	ID         string
	UserID     string
	CreatedAt  time.Time
	LastActive time.Time

	InitialBankroll decimal.Decimal
	BankrollHistory []decimal.Decimal // bankroll after every reported round, starting with the initial one
	State           *ProgressionState
}

// NewProgressionSession wraps a fresh state for userID
func NewProgressionSession(id, userID string, state *ProgressionState, now time.Time) *ProgressionSession {
	return &ProgressionSession{
		ID:              id,
		UserID:          userID,
		CreatedAt:       now,
		LastActive:      now,
		InitialBankroll: state.Bankroll,
		BankrollHistory: []decimal.Decimal{state.Bankroll},
		State:           state,
	}
}

func (s *ProgressionSession) Lock()   { s.mu.Lock() }
func (s *ProgressionSession) Unlock() { s.mu.Unlock() }

// Snapshot returns a deep copy that can be read without holding the lock
func (s *ProgressionSession) Snapshot() *ProgressionSession {
	return &ProgressionSession{
		ID:              s.ID,
		UserID:          s.UserID,
		CreatedAt:       s.CreatedAt,
		LastActive:      s.LastActive,
		InitialBankroll: s.InitialBankroll,
		BankrollHistory: append([]decimal.Decimal(nil), s.BankrollHistory...),
		State:           s.State.Clone(),
	}
}

// BacBoSession is a user's live Bac Bo session
type BacBoSession struct {
	mu sync.Mutex

	ID         string
	UserID     string
	CreatedAt  time.Time
	LastActive time.Time

	State *RoundState
}

// NewBacBoSession creates an empty Bac Bo session for userID
func NewBacBoSession(id, userID string, now time.Time) *BacBoSession {
	return &BacBoSession{
		ID:         id,
		UserID:     userID,
		CreatedAt:  now,
		LastActive: now,
		State:      &RoundState{},
	}
}

func (s *BacBoSession) Lock()   { s.mu.Lock() }
func (s *BacBoSession) Unlock() { s.mu.Unlock() }

// Snapshot returns a deep copy that can be read without holding the lock
func (s *BacBoSession) Snapshot() *BacBoSession {
	return &BacBoSession{
		ID:         s.ID,
		UserID:     s.UserID,
		CreatedAt:  s.CreatedAt,
		LastActive: s.LastActive,
		State:      s.State.Clone(),
	}
}
