package session

import (
	"context"
	"errors"
	"time"

	"github.com/fadedpez/tucobet/pkg/entities"
)

//go:generate mockgen -source=$GOFILE -destination=mock/mock.go -package=mock_session

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExists   = errors.New("session already exists")
)

// Kind tells the two session types apart
type Kind string

const (
	KindProgression Kind = "progression"
	KindBacBo       Kind = "bacbo"
)

// IdleSession identifies a session that has not been touched since a cutoff
type IdleSession struct {
	Kind       Kind
	UserID     string
	SessionID  string
	LastActive time.Time
}

// Repository keeps the live sessions, at most one of each kind per user.
// Get methods return the live record; callers lock it before mutating.
type Repository interface {
	// Progression sessions
	SaveProgression(ctx context.Context, s *entities.ProgressionSession) error
	GetProgression(ctx context.Context, userID string) (*entities.ProgressionSession, error)
	DeleteProgression(ctx context.Context, userID, sessionID string) error

	// Bac Bo sessions
	SaveBacBo(ctx context.Context, s *entities.BacBoSession) error
	GetBacBo(ctx context.Context, userID string) (*entities.BacBoSession, error)
	DeleteBacBo(ctx context.Context, userID, sessionID string) error

	// ListIdle returns every session whose last activity is before the cutoff
	ListIdle(ctx context.Context, before time.Time) ([]IdleSession, error)

	// Close closes any resources used by the repository
	Close() error
}
