package martingale

import (
	"math"

	"github.com/fadedpez/tucobet/pkg/entities"
	"github.com/shopspring/decimal"
)

// Level grades how much attention the current streak deserves
type Level string

const (
	LevelNone       Level = "none"
	LevelCaution    Level = "caution"    // third loss in a row
	LevelInflection Level = "inflection" // fourth loss in a row
	LevelAlert      Level = "alert"      // five or more losses in a row
	LevelHotStreak  Level = "hot_streak" // three or more wins in a row
)

const (
	cautionLossStreak = 3
	hotWinStreak      = 3
)

// Advice summarises the risk of the next bet for display
type Advice struct {
	Level Level

	NextBet decimal.Decimal
	// BetShare is the next bet as a fraction of the bankroll
	BetShare float64
	// NextLossProbability is the chance the loss streak grows by one more,
	// assuming a fair game where the win probability is 1/payout
	NextLossProbability float64
	// GainShare is the bankroll change relative to the initial bankroll
	GainShare float64
}

// Advise grades the state's streak. initialBankroll is the session's starting bankroll.
func Advise(s *entities.ProgressionState, initialBankroll decimal.Decimal) Advice {
	advice := Advice{Level: LevelNone, NextBet: NextBet(s)}

	if s.Bankroll.IsPositive() {
		advice.BetShare = advice.NextBet.Div(s.Bankroll).InexactFloat64()
	}
	if initialBankroll.IsPositive() {
		advice.GainShare = s.Bankroll.Sub(initialBankroll).Div(initialBankroll).InexactFloat64()
	}

	payout := s.PayoutMultiple.InexactFloat64()
	if payout > 0 {
		lossProb := 1 - 1/payout
		advice.NextLossProbability = math.Pow(lossProb, float64(s.LossStreak+1))
	}

	switch {
	case s.LossStreak >= 5:
		advice.Level = LevelAlert
	case s.LossStreak == 4:
		advice.Level = LevelInflection
	case s.LossStreak == cautionLossStreak:
		advice.Level = LevelCaution
	case s.LossStreak == 0 && s.WinStreak >= hotWinStreak:
		advice.Level = LevelHotStreak
	}

	return advice
}
