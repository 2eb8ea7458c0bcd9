package bacbo

import (
	"errors"
	"testing"

	"github.com/fadedpez/tucobet/pkg/dice"
	"github.com/fadedpez/tucobet/pkg/entities"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestPlayRoundScenarios(t *testing.T) {
	testCases := []struct {
		name        string
		faces       []int
		wager       entities.Wager
		winner      entities.Side
		outcome     entities.Outcome
		payoutKind  entities.PayoutKind
		payoutRatio string
	}{
		{
			name:        "player wins with player wager",
			faces:       []int{4, 5, 2, 3},
			wager:       entities.WagerPlayer,
			winner:      entities.SidePlayer,
			outcome:     entities.OutcomeWin,
			payoutKind:  entities.PayoutOdds,
			payoutRatio: "1",
		},
		{
			name:        "player wins with banker wager",
			faces:       []int{4, 5, 2, 3},
			wager:       entities.WagerBanker,
			winner:      entities.SidePlayer,
			outcome:     entities.OutcomeLoss,
			payoutKind:  entities.PayoutNone,
			payoutRatio: "0",
		},
		{
			name:        "banker wins with banker wager",
			faces:       []int{1, 2, 6, 6},
			wager:       entities.WagerBanker,
			winner:      entities.SideBanker,
			outcome:     entities.OutcomeWin,
			payoutKind:  entities.PayoutOdds,
			payoutRatio: "1",
		},
		{
			name:        "tie on seven with tie wager",
			faces:       []int{3, 4, 2, 5},
			wager:       entities.WagerTie,
			winner:      entities.SideTie,
			outcome:     entities.OutcomeTieWin,
			payoutKind:  entities.PayoutOdds,
			payoutRatio: "4",
		},
		{
			name:        "tie on seven with banker wager",
			faces:       []int{3, 4, 2, 5},
			wager:       entities.WagerBanker,
			winner:      entities.SideTie,
			outcome:     entities.OutcomeTiePush,
			payoutKind:  entities.PayoutRefund,
			payoutRatio: "0.9",
		},
		{
			name:        "snake eyes tie with tie wager",
			faces:       []int{1, 1, 1, 1},
			wager:       entities.WagerTie,
			winner:      entities.SideTie,
			outcome:     entities.OutcomeTieWin,
			payoutKind:  entities.PayoutOdds,
			payoutRatio: "88",
		},
		{
			name:        "tie wager loses when banker wins",
			faces:       []int{1, 1, 6, 6},
			wager:       entities.WagerTie,
			winner:      entities.SideBanker,
			outcome:     entities.OutcomeLoss,
			payoutKind:  entities.PayoutNone,
			payoutRatio: "0",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resolver := NewResolver(dice.NewSequence(tc.faces...))
			state := &entities.RoundState{}

			result, err := resolver.PlayRound(state, tc.wager)
			require.NoError(t, err)

			assert.Equal(t, [2]int{tc.faces[0], tc.faces[1]}, result.PlayerDice)
			assert.Equal(t, [2]int{tc.faces[2], tc.faces[3]}, result.BankerDice)
			assert.Equal(t, tc.faces[0]+tc.faces[1], result.PlayerScore)
			assert.Equal(t, tc.faces[2]+tc.faces[3], result.BankerScore)
			assert.Equal(t, tc.winner, result.Winner)
			assert.Equal(t, tc.outcome, result.Outcome)
			assert.Equal(t, tc.payoutKind, result.Payout.Kind)
			assert.True(t, result.PayoutRatio().Equal(decimal.RequireFromString(tc.payoutRatio)),
				"ratio %s", result.PayoutRatio())

			assert.Equal(t, tc.wager, state.Choice)
			assert.Equal(t, []entities.Outcome{tc.outcome}, state.History)
		})
	}
}

func TestPlayRoundRejectsInvalidWager(t *testing.T) {
	roller := dice.NewSequence(6, 6, 1, 1)
	resolver := NewResolver(roller)
	state := &entities.RoundState{Choice: entities.WagerPlayer, History: []entities.Outcome{entities.OutcomeWin}}

	result, err := resolver.PlayRound(state, entities.Wager("dragon"))

	assert.Nil(t, result)
	assert.True(t, errors.Is(err, entities.ErrInvalidWager))
	assert.Equal(t, entities.WagerPlayer, state.Choice)
	assert.Equal(t, []entities.Outcome{entities.OutcomeWin}, state.History)

	// No die was consumed
	next, err := resolver.PlayRound(state, entities.WagerPlayer)
	require.NoError(t, err)
	assert.Equal(t, [2]int{6, 6}, next.PlayerDice)
}

func TestPlayRoundAppendsHistory(t *testing.T) {
	resolver := NewResolver(dice.NewSequence(6, 6, 1, 1, 1, 1, 6, 6, 3, 3, 3, 3))
	state := &entities.RoundState{}

	for _, w := range []entities.Wager{entities.WagerPlayer, entities.WagerPlayer, entities.WagerTie} {
		_, err := resolver.PlayRound(state, w)
		require.NoError(t, err)
	}

	assert.Equal(t, entities.WagerTie, state.Choice)
	assert.Equal(t, []entities.Outcome{
		entities.OutcomeWin,
		entities.OutcomeLoss,
		entities.OutcomeTieWin,
	}, state.History)
}

func TestClassifyInvalidWager(t *testing.T) {
	outcome, payout := Classify(entities.Wager(""), entities.SidePlayer, 0)

	assert.Equal(t, entities.OutcomeError, outcome)
	assert.Equal(t, entities.PayoutNone, payout.Kind)
	assert.True(t, payout.Ratio.IsZero())
}

func TestTiePayout(t *testing.T) {
	for sum := MinScore; sum <= MaxScore; sum++ {
		ratio, ok := TiePayout(sum)
		assert.True(t, ok, "sum %d", sum)
		mirror, _ := TiePayout(MinScore + MaxScore - sum)
		assert.Equal(t, mirror, ratio, "paytable is symmetric around 7")
	}

	_, ok := TiePayout(1)
	assert.False(t, ok)
	_, ok = TiePayout(13)
	assert.False(t, ok)
}

func TestTally(t *testing.T) {
	summary := Tally([]entities.Outcome{
		entities.OutcomeWin,
		entities.OutcomeLoss,
		entities.OutcomeLoss,
		entities.OutcomeTiePush,
		entities.OutcomeTieWin,
	})

	assert.Equal(t, 5, summary.Rounds)
	assert.Equal(t, 1, summary.Wins)
	assert.Equal(t, 2, summary.Losses)
	assert.Equal(t, 1, summary.TiePush)
	assert.Equal(t, 1, summary.TieWins)
	assert.Zero(t, summary.Errors)
	assert.Equal(t, entities.OutcomeTieWin, summary.LastSeen)

	assert.Equal(t, Summary{}, Tally(nil))
}

func TestRoundProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Int64().Draw(t, "seed")
		wager := rapid.SampledFrom(entities.Wagers).Draw(t, "wager")

		resolver := NewResolver(dice.NewRoller(seed))
		state := &entities.RoundState{}

		result, err := resolver.PlayRound(state, wager)
		if err != nil {
			t.Fatalf("valid wager rejected: %v", err)
		}

		for _, score := range []int{result.PlayerScore, result.BankerScore} {
			if score < MinScore || score > MaxScore {
				t.Fatalf("score %d out of range", score)
			}
		}
		if (result.Winner == entities.SideTie) != (result.PlayerScore == result.BankerScore) {
			t.Fatalf("winner %s for scores %d/%d", result.Winner, result.PlayerScore, result.BankerScore)
		}
		if result.Outcome == entities.OutcomeError {
			t.Fatalf("valid wager classified as error")
		}
		if result.Outcome == entities.OutcomeTieWin {
			expected, _ := TiePayout(result.PlayerScore)
			if !result.Payout.Ratio.Equal(decimal.NewFromInt(expected)) {
				t.Fatalf("tie win paid %s, paytable says %d", result.Payout.Ratio, expected)
			}
		}
		if len(state.History) != 1 || state.History[0] != result.Outcome || state.Choice != wager {
			t.Fatalf("state not updated: %+v", state)
		}
	})
}
