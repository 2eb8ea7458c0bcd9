package entities

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// HistoryCapacity is how many recent results a progression keeps for display
const HistoryCapacity = 20

var ErrInvalidProgressionParams = errors.New("invalid progression parameters")

// OutcomeHistory keeps the most recent round results, oldest first
type OutcomeHistory struct {
	results []bool
}

// Append records a result, evicting the oldest one once full
func (h *OutcomeHistory) Append(won bool) {
	h.results = append(h.results, won)
	if len(h.results) > HistoryCapacity {
		h.results = h.results[len(h.results)-HistoryCapacity:]
	}
}

// Values returns a copy of the recorded results
func (h *OutcomeHistory) Values() []bool {
	out := make([]bool, len(h.results))
	copy(out, h.results)
	return out
}

// Len returns the number of recorded results
func (h *OutcomeHistory) Len() int {
	return len(h.results)
}

// ProgressionState is the bookkeeping for one Martingale session.
// Only the martingale engine mutates it.
type ProgressionState struct {
	Bankroll       decimal.Decimal
	BaseBet        decimal.Decimal
	PayoutMultiple decimal.Decimal // total return per unit staked on a win, 2.0 is even money
	MaxLossStreak  int

	CurrentBet     decimal.Decimal
	LossStreak     int
	WinStreak      int
	OutcomeHistory OutcomeHistory
}

// NewProgressionState validates the session parameters and returns a fresh state
func NewProgressionState(bankroll, baseBet, payoutMultiple decimal.Decimal, maxLossStreak int) (*ProgressionState, error) {
	switch {
	case !bankroll.IsPositive():
		return nil, fmt.Errorf("%w: bankroll must be positive", ErrInvalidProgressionParams)
	case !baseBet.IsPositive():
		return nil, fmt.Errorf("%w: base bet must be positive", ErrInvalidProgressionParams)
	case baseBet.GreaterThan(bankroll):
		return nil, fmt.Errorf("%w: base bet cannot be greater than bankroll", ErrInvalidProgressionParams)
	case payoutMultiple.LessThan(decimal.NewFromInt(1)):
		return nil, fmt.Errorf("%w: payout multiple must be at least 1.0", ErrInvalidProgressionParams)
	case maxLossStreak < 1:
		return nil, fmt.Errorf("%w: max loss streak must be at least 1", ErrInvalidProgressionParams)
	}

	return &ProgressionState{
		Bankroll:       bankroll,
		BaseBet:        baseBet,
		PayoutMultiple: payoutMultiple,
		MaxLossStreak:  maxLossStreak,
		CurrentBet:     baseBet,
	}, nil
}

// Clone returns a deep copy safe to hand to renderers
func (s *ProgressionState) Clone() *ProgressionState {
	c := *s
	c.OutcomeHistory = OutcomeHistory{results: s.OutcomeHistory.Values()}
	return &c
}
