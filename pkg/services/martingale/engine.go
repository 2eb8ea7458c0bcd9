package martingale

import (
	"errors"
	"fmt"

	"github.com/fadedpez/tucobet/pkg/entities"
	"github.com/shopspring/decimal"
)

var ErrStopLossExceeded = errors.New("stop-loss exceeded")

// StopLossError is returned by RecordResult once the loss streak passes the limit.
// The state has already been debited; the session must be discarded.
type StopLossError struct {
	LossStreak    int
	MaxLossStreak int
	Bankroll      decimal.Decimal
}

func (e *StopLossError) Error() string {
	return fmt.Sprintf("stop-loss exceeded: %d consecutive losses (limit %d), bankroll %s",
		e.LossStreak, e.MaxLossStreak, e.Bankroll.StringFixed(2))
}

// Unwrap lets errors.Is match ErrStopLossExceeded
func (e *StopLossError) Unwrap() error {
	return ErrStopLossExceeded
}

// DecisionKind says whether the session may continue after a result
type DecisionKind string

const (
	DecisionContinue DecisionKind = "continue"
	DecisionStopLoss DecisionKind = "stop_loss"
)

// Decision is the outcome of recording a result.
// NextBet is set for DecisionContinue, FinalBankroll for DecisionStopLoss.
type Decision struct {
	Kind          DecisionKind
	NextBet       decimal.Decimal
	FinalBankroll decimal.Decimal
}

// Continue reports whether the session may keep playing
func (d Decision) Continue() bool {
	return d.Kind == DecisionContinue
}

// NextBet returns the wager the bettor should place now. It never mutates state.
func NextBet(s *entities.ProgressionState) decimal.Decimal {
	return s.CurrentBet
}

// RecordResult applies a reported round result to the state.
//
// A win pays CurrentBet*(PayoutMultiple-1) and resets the bet to BaseBet,
// capped at the bankroll.
// A loss debits CurrentBet and doubles the bet (capped at the bankroll), unless
// the loss streak now exceeds MaxLossStreak, in which case the mutated state is
// kept and a *StopLossError is returned together with a DecisionStopLoss.
func RecordResult(s *entities.ProgressionState, won bool) (Decision, error) {
	s.OutcomeHistory.Append(won)

	if won {
		gain := s.CurrentBet.Mul(s.PayoutMultiple.Sub(decimal.NewFromInt(1)))
		s.Bankroll = s.Bankroll.Add(gain)
		s.CurrentBet = decimal.Min(s.BaseBet, s.Bankroll)
		s.LossStreak = 0
		s.WinStreak++
		return Decision{Kind: DecisionContinue, NextBet: s.CurrentBet}, nil
	}

	s.Bankroll = s.Bankroll.Sub(s.CurrentBet)
	s.LossStreak++
	s.WinStreak = 0

	if s.LossStreak > s.MaxLossStreak {
		return Decision{Kind: DecisionStopLoss, FinalBankroll: s.Bankroll}, &StopLossError{
			LossStreak:    s.LossStreak,
			MaxLossStreak: s.MaxLossStreak,
			Bankroll:      s.Bankroll,
		}
	}

	// The debit never exceeds the bankroll, so the cap is never negative
	s.CurrentBet = decimal.Min(doubled(s.BaseBet, s.LossStreak), s.Bankroll)
	return Decision{Kind: DecisionContinue, NextBet: s.CurrentBet}, nil
}

// Depleted reports whether the bankroll can no longer cover the next bet
func Depleted(s *entities.ProgressionState) bool {
	return !s.Bankroll.IsPositive() || s.CurrentBet.GreaterThan(s.Bankroll)
}

// doubled returns base * 2^n
func doubled(base decimal.Decimal, n int) decimal.Decimal {
	two := decimal.NewFromInt(2)
	out := base
	for i := 0; i < n; i++ {
		out = out.Mul(two)
	}
	return out
}
