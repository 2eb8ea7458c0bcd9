package session

import (
	"context"
	"errors"
	"time"

	"github.com/coder/quartz"
	"github.com/fadedpez/tucobet/internal/config"
	"github.com/fadedpez/tucobet/internal/logging"
	"github.com/fadedpez/tucobet/internal/types"
	"github.com/fadedpez/tucobet/pkg/entities"
	sessionRepo "github.com/fadedpez/tucobet/pkg/repositories/session"
	"github.com/fadedpez/tucobet/pkg/services/bacbo"
	"github.com/fadedpez/tucobet/pkg/services/martingale"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Params are the settings a progression session starts with
type Params struct {
	Bankroll       decimal.Decimal
	BaseBet        decimal.Decimal
	PayoutMultiple decimal.Decimal
	MaxLossStreak  int
}

// ParamsFromPreset converts a configured preset
func ParamsFromPreset(p config.SessionPreset) Params {
	return Params{
		Bankroll:       decimal.NewFromFloat(p.Bankroll),
		BaseBet:        decimal.NewFromFloat(p.BaseBet),
		PayoutMultiple: decimal.NewFromFloat(p.Payout),
		MaxLossStreak:  p.MaxLossStreak,
	}
}

// EndReason says why a progression session was discarded
type EndReason string

const (
	EndNone     EndReason = ""
	EndStopLoss EndReason = "stop_loss"
	EndBankrupt EndReason = "bankrupt"
)

// ResultReport is what the adapters render after a reported result
type ResultReport struct {
	Session  *entities.ProgressionSession // snapshot taken after the result
	Stake    decimal.Decimal              // the bet that was settled
	Decision martingale.Decision
	Advice   martingale.Advice

	Ended     bool
	EndReason EndReason
}

// RoundReport is a resolved Bac Bo round plus the running tally
type RoundReport struct {
	Result  *entities.RoundResult
	Summary bacbo.Summary
}

// maxLockAttempts bounds how often lockBacBo retries after losing its session
const maxLockAttempts = 3

// Service owns the session lifecycle shared by every adapter
type Service struct {
	repo     sessionRepo.Repository
	resolver *bacbo.Resolver
	clock    quartz.Clock
	log      *logging.Logger
}

// NewService creates a new session service
func NewService(repo sessionRepo.Repository, resolver *bacbo.Resolver, clock quartz.Clock, logger *logging.Logger) *Service {
	return &Service{
		repo:     repo,
		resolver: resolver,
		clock:    clock,
		log:      logger.WithPrefix("session"),
	}
}

// StartProgression opens a new Martingale session for the user
func (s *Service) StartProgression(ctx context.Context, userID string, p Params) (*entities.ProgressionSession, error) {
	if _, err := s.repo.GetProgression(ctx, userID); err == nil {
		return nil, types.NewGameError(types.ErrSessionInProgress, "a progression session is already running")
	} else if !errors.Is(err, sessionRepo.ErrSessionNotFound) {
		return nil, types.WrapError(types.ErrInternalError, "failed to look up session", err)
	}

	state, err := entities.NewProgressionState(p.Bankroll, p.BaseBet, p.PayoutMultiple, p.MaxLossStreak)
	if err != nil {
		return nil, types.WrapError(types.ErrInvalidArgument, "invalid session parameters", err)
	}

	session := entities.NewProgressionSession(uuid.NewString(), userID, state, s.clock.Now())
	if err := s.repo.SaveProgression(ctx, session); err != nil {
		if errors.Is(err, sessionRepo.ErrSessionExists) {
			return nil, types.WrapError(types.ErrSessionInProgress, "a progression session is already running", err)
		}
		return nil, types.WrapError(types.ErrInternalError, "failed to save session", err)
	}

	s.log.Info("started progression %s for user %s: bankroll %s, base bet %s",
		session.ID, userID, p.Bankroll.StringFixed(2), p.BaseBet.StringFixed(2))
	return session.Snapshot(), nil
}

// CurrentProgression returns a snapshot of the user's session. A session whose
// bankroll ran dry is discarded and reported as bankrupt.
func (s *Service) CurrentProgression(ctx context.Context, userID string) (*entities.ProgressionSession, error) {
	session, err := s.lockProgression(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer session.Unlock()

	if martingale.Depleted(session.State) {
		s.discardProgression(ctx, session, EndBankrupt)
		return nil, types.NewGameError(types.ErrBankrupt, "bankroll is empty")
	}

	session.LastActive = s.clock.Now()
	return session.Snapshot(), nil
}

// ReportResult feeds a round result into the user's progression
func (s *Service) ReportResult(ctx context.Context, userID string, won bool) (*ResultReport, error) {
	session, err := s.lockProgression(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer session.Unlock()

	stake := session.State.CurrentBet
	decision, err := martingale.RecordResult(session.State, won)
	session.LastActive = s.clock.Now()
	session.BankrollHistory = append(session.BankrollHistory, session.State.Bankroll)

	report := &ResultReport{
		Stake:    stake,
		Decision: decision,
		Advice:   martingale.Advise(session.State, session.InitialBankroll),
	}

	switch {
	case errors.Is(err, martingale.ErrStopLossExceeded):
		report.Ended, report.EndReason = true, EndStopLoss
	case err != nil:
		return nil, types.WrapError(types.ErrInternalError, "failed to record result", err)
	case martingale.Depleted(session.State):
		report.Ended, report.EndReason = true, EndBankrupt
	}

	report.Session = session.Snapshot()
	if report.Ended {
		s.discardProgression(ctx, session, report.EndReason)
	}
	return report, nil
}

// StopProgression discards the user's session
func (s *Service) StopProgression(ctx context.Context, userID string) (*entities.ProgressionSession, error) {
	session, err := s.lockProgression(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer session.Unlock()

	if err := s.repo.DeleteProgression(ctx, userID, session.ID); err != nil {
		return nil, s.repoError(err)
	}
	s.log.Info("stopped progression %s for user %s", session.ID, userID)
	return session.Snapshot(), nil
}

// PlayBacBo resolves one round, opening a Bac Bo session if the user has none
func (s *Service) PlayBacBo(ctx context.Context, userID string, wager entities.Wager) (*RoundReport, error) {
	if !wager.Valid() {
		return nil, types.WrapError(types.ErrInvalidWager, "choose player, banker or tie", entities.ErrInvalidWager)
	}

	session, err := s.lockBacBo(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer session.Unlock()

	result, err := s.resolver.PlayRound(session.State, wager)
	if err != nil {
		return nil, types.WrapError(types.ErrInvalidWager, "round could not be played", err)
	}
	session.LastActive = s.clock.Now()

	s.log.Debug("bacbo round for user %s: %d vs %d, %s on %s",
		userID, result.PlayerScore, result.BankerScore, result.Outcome, wager)
	return &RoundReport{Result: result, Summary: bacbo.Tally(session.State.History)}, nil
}

// ExitBacBo discards the user's Bac Bo session. It is a no-op when none exists.
func (s *Service) ExitBacBo(ctx context.Context, userID string) (bacbo.Summary, error) {
	session, err := s.repo.GetBacBo(ctx, userID)
	if errors.Is(err, sessionRepo.ErrSessionNotFound) {
		return bacbo.Summary{}, nil
	}
	if err != nil {
		return bacbo.Summary{}, s.repoError(err)
	}

	session.Lock()
	defer session.Unlock()

	summary := bacbo.Tally(session.State.History)
	if err := s.repo.DeleteBacBo(ctx, userID, session.ID); err != nil && !errors.Is(err, sessionRepo.ErrSessionNotFound) {
		return summary, s.repoError(err)
	}
	return summary, nil
}

// ReapIdle discards every session untouched for longer than maxIdle and
// returns how many were removed
func (s *Service) ReapIdle(ctx context.Context, maxIdle time.Duration) (int, error) {
	cutoff := s.clock.Now().Add(-maxIdle)
	idle, err := s.repo.ListIdle(ctx, cutoff)
	if err != nil {
		return 0, s.repoError(err)
	}

	reaped := 0
	for _, candidate := range idle {
		if err := ctx.Err(); err != nil {
			return reaped, err
		}

		var removed bool
		switch candidate.Kind {
		case sessionRepo.KindProgression:
			removed = s.reapProgression(ctx, candidate, cutoff)
		case sessionRepo.KindBacBo:
			removed = s.reapBacBo(ctx, candidate, cutoff)
		}
		if removed {
			reaped++
		}
	}

	if reaped > 0 {
		s.log.Info("reaped %d idle sessions", reaped)
	}
	return reaped, nil
}

func (s *Service) reapProgression(ctx context.Context, candidate sessionRepo.IdleSession, cutoff time.Time) bool {
	session, err := s.repo.GetProgression(ctx, candidate.UserID)
	if err != nil || session.ID != candidate.SessionID {
		return false
	}
	session.Lock()
	defer session.Unlock()

	// Activity since ListIdle keeps the session alive
	if !session.LastActive.Before(cutoff) {
		return false
	}
	return s.repo.DeleteProgression(ctx, candidate.UserID, candidate.SessionID) == nil
}

func (s *Service) reapBacBo(ctx context.Context, candidate sessionRepo.IdleSession, cutoff time.Time) bool {
	session, err := s.repo.GetBacBo(ctx, candidate.UserID)
	if err != nil || session.ID != candidate.SessionID {
		return false
	}
	session.Lock()
	defer session.Unlock()

	if !session.LastActive.Before(cutoff) {
		return false
	}
	return s.repo.DeleteBacBo(ctx, candidate.UserID, candidate.SessionID) == nil
}

// lockProgression returns the user's live session locked. The caller unlocks.
func (s *Service) lockProgression(ctx context.Context, userID string) (*entities.ProgressionSession, error) {
	session, err := s.repo.GetProgression(ctx, userID)
	if err != nil {
		return nil, s.repoError(err)
	}
	session.Lock()

	// The session may have been discarded while we waited for the lock
	current, err := s.repo.GetProgression(ctx, userID)
	if err != nil || current != session {
		session.Unlock()
		return nil, types.NewGameError(types.ErrSessionNotFound, "no progression session is running")
	}
	return session, nil
}

// lockBacBo returns the user's live Bac Bo session locked, opening one if
// needed. The caller unlocks.
func (s *Service) lockBacBo(ctx context.Context, userID string) (*entities.BacBoSession, error) {
	for attempt := 0; attempt < maxLockAttempts; attempt++ {
		session, err := s.bacBoSession(ctx, userID)
		if err != nil {
			return nil, err
		}
		session.Lock()

		// An exit or the reaper may have discarded it while we waited for the lock
		current, err := s.repo.GetBacBo(ctx, userID)
		if err == nil && current == session {
			return session, nil
		}
		session.Unlock()
		if err != nil && !errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, s.repoError(err)
		}
	}
	return nil, types.NewGameError(types.ErrSessionNotFound, "bac bo session keeps being replaced, try again")
}

func (s *Service) bacBoSession(ctx context.Context, userID string) (*entities.BacBoSession, error) {
	session, err := s.repo.GetBacBo(ctx, userID)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, sessionRepo.ErrSessionNotFound) {
		return nil, s.repoError(err)
	}

	session = entities.NewBacBoSession(uuid.NewString(), userID, s.clock.Now())
	if err := s.repo.SaveBacBo(ctx, session); err != nil {
		if !errors.Is(err, sessionRepo.ErrSessionExists) {
			return nil, s.repoError(err)
		}
		// Lost a race with a concurrent round, use the winner's session
		existing, err := s.repo.GetBacBo(ctx, userID)
		if err != nil {
			return nil, s.repoError(err)
		}
		return existing, nil
	}
	s.log.Debug("opened bacbo session %s for user %s", session.ID, userID)
	return session, nil
}

// discardProgression removes a finished session. Caller holds its lock.
func (s *Service) discardProgression(ctx context.Context, session *entities.ProgressionSession, reason EndReason) {
	if err := s.repo.DeleteProgression(ctx, session.UserID, session.ID); err != nil && !errors.Is(err, sessionRepo.ErrSessionNotFound) {
		s.log.LogError(types.WrapError(types.ErrInternalError, "failed to discard session", err))
		return
	}
	s.log.Info("progression %s for user %s ended: %s, bankroll %s",
		session.ID, session.UserID, reason, session.State.Bankroll.StringFixed(2))
}

func (s *Service) repoError(err error) error {
	switch {
	case errors.Is(err, sessionRepo.ErrSessionNotFound):
		return types.WrapError(types.ErrSessionNotFound, "no session is running", err)
	case errors.Is(err, sessionRepo.ErrSessionExists):
		return types.WrapError(types.ErrSessionInProgress, "a session is already running", err)
	default:
		return types.WrapError(types.ErrInternalError, "session storage failed", err)
	}
}
