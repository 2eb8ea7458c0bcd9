// Package bacbo resolves Bac Bo rounds: two dice each for player and banker,
// highest total wins.
package bacbo

import (
	"fmt"

	"github.com/fadedpez/tucobet/pkg/dice"
	"github.com/fadedpez/tucobet/pkg/entities"
)

// Resolver plays rounds against a single randomness source
type Resolver struct {
	roller dice.Roller
}

func NewResolver(roller dice.Roller) *Resolver {
	return &Resolver{roller: roller}
}

// PlayRound rolls the four dice, classifies the round against wager and
// records the wager and outcome on state.
//
// An invalid wager is rejected with entities.ErrInvalidWager before any die is
// rolled and state is left untouched.
func (r *Resolver) PlayRound(state *entities.RoundState, wager entities.Wager) (*entities.RoundResult, error) {
	if !wager.Valid() {
		return nil, fmt.Errorf("%w: %q", entities.ErrInvalidWager, wager)
	}

	// Roll order is p1, p2, b1, b2
	result := &entities.RoundResult{Wager: wager}
	result.PlayerDice = [2]int{dice.RollDie(r.roller), dice.RollDie(r.roller)}
	result.BankerDice = [2]int{dice.RollDie(r.roller), dice.RollDie(r.roller)}
	result.PlayerScore = result.PlayerDice[0] + result.PlayerDice[1]
	result.BankerScore = result.BankerDice[0] + result.BankerDice[1]
	result.Winner = Winner(result.PlayerScore, result.BankerScore)

	// On a tie both scores are equal, so either one is the tie sum
	result.Outcome, result.Payout = Classify(wager, result.Winner, result.PlayerScore)

	state.Choice = wager
	state.History = append(state.History, result.Outcome)

	return result, nil
}

// Winner compares the two totals
func Winner(playerScore, bankerScore int) entities.Side {
	switch {
	case playerScore > bankerScore:
		return entities.SidePlayer
	case bankerScore > playerScore:
		return entities.SideBanker
	default:
		return entities.SideTie
	}
}

// Classify settles wager against the round winner. tieSum is only read when
// the round tied. Wagers outside the closed set classify as OutcomeError.
func Classify(wager entities.Wager, winner entities.Side, tieSum int) (entities.Outcome, entities.Payout) {
	if !wager.Valid() {
		return entities.OutcomeError, entities.NoPayout
	}

	if winner == entities.SideTie {
		if wager == entities.WagerTie {
			ratio, ok := TiePayout(tieSum)
			if !ok {
				return entities.OutcomeError, entities.NoPayout
			}
			return entities.OutcomeTieWin, entities.OddsPayout(ratio)
		}
		return entities.OutcomeTiePush, entities.RefundPayout(TiePushRefund())
	}

	if string(wager) == string(winner) {
		return entities.OutcomeWin, entities.OddsPayout(1)
	}
	return entities.OutcomeLoss, entities.NoPayout
}

// Summary counts a session's outcomes
type Summary struct {
	Rounds   int
	Wins     int
	Losses   int
	TiePush  int
	TieWins  int
	Errors   int
	LastSeen entities.Outcome
}

// Tally summarises an outcome history for display
func Tally(history []entities.Outcome) Summary {
	var s Summary
	for _, o := range history {
		s.Rounds++
		switch o {
		case entities.OutcomeWin:
			s.Wins++
		case entities.OutcomeLoss:
			s.Losses++
		case entities.OutcomeTiePush:
			s.TiePush++
		case entities.OutcomeTieWin:
			s.TieWins++
		default:
			s.Errors++
		}
		s.LastSeen = o
	}
	return s
}
