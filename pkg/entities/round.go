package entities

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidWager = errors.New("invalid wager")

// Wager is the side a Bac Bo bettor backs
type Wager string

const (
	WagerPlayer Wager = "player"
	WagerBanker Wager = "banker"
	WagerTie    Wager = "tie"
)

// Wagers lists every valid wager in display order
var Wagers = []Wager{WagerPlayer, WagerBanker, WagerTie}

// ParseWager accepts a wager name in any case
func ParseWager(s string) (Wager, error) {
	w := Wager(strings.ToLower(strings.TrimSpace(s)))
	if !w.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidWager, s)
	}
	return w, nil
}

// Valid reports whether w is one of the three wager targets
func (w Wager) Valid() bool {
	switch w {
	case WagerPlayer, WagerBanker, WagerTie:
		return true
	}
	return false
}

// String returns the string representation of the wager
func (w Wager) String() string {
	return string(w)
}

// Side is the winner of a Bac Bo round
type Side string

const (
	SidePlayer Side = "player"
	SideBanker Side = "banker"
	SideTie    Side = "tie"
)

// String returns the string representation of the side
func (s Side) String() string {
	return string(s)
}

// Outcome classifies a round relative to the wager
type Outcome string

const (
	OutcomeWin     Outcome = "win"
	OutcomeLoss    Outcome = "loss"
	OutcomeTiePush Outcome = "tie_push" // player/banker wager, round tied
	OutcomeTieWin  Outcome = "tie_win"
	OutcomeError   Outcome = "error"
)

// String returns the string representation of the outcome
func (o Outcome) String() string {
	return string(o)
}

// PayoutKind tags the unit a payout ratio is expressed in
type PayoutKind string

const (
	// PayoutNone returns nothing to the bettor
	PayoutNone PayoutKind = "none"
	// PayoutOdds pays Ratio:1 winnings and returns the stake
	PayoutOdds PayoutKind = "odds"
	// PayoutRefund hands back Ratio of the stake and pays no winnings
	PayoutRefund PayoutKind = "refund"
)

// Payout is a ratio together with the unit it is expressed in
type Payout struct {
	Kind  PayoutKind
	Ratio decimal.Decimal
}

// NoPayout is the payout of a losing round
var NoPayout = Payout{Kind: PayoutNone, Ratio: decimal.Zero}

// OddsPayout pays ratio:1
func OddsPayout(ratio int64) Payout {
	return Payout{Kind: PayoutOdds, Ratio: decimal.NewFromInt(ratio)}
}

// RefundPayout returns the given fraction of the stake
func RefundPayout(fraction decimal.Decimal) Payout {
	return Payout{Kind: PayoutRefund, Ratio: fraction}
}

// Returned is the total amount handed back to the bettor for stake
func (p Payout) Returned(stake decimal.Decimal) decimal.Decimal {
	switch p.Kind {
	case PayoutOdds:
		return stake.Add(stake.Mul(p.Ratio))
	case PayoutRefund:
		return stake.Mul(p.Ratio)
	default:
		return decimal.Zero
	}
}

// Net is the bettor's profit (negative for a loss) for stake
func (p Payout) Net(stake decimal.Decimal) decimal.Decimal {
	return p.Returned(stake).Sub(stake)
}

// String renders the payout the way a croupier would announce it
func (p Payout) String() string {
	switch p.Kind {
	case PayoutOdds:
		return p.Ratio.String() + ":1"
	case PayoutRefund:
		return p.Ratio.Mul(decimal.NewFromInt(100)).String() + "% returned"
	default:
		return "N/A"
	}
}

// RoundState is the Bac Bo session bookkeeping: last wager and outcome history
type RoundState struct {
	Choice  Wager
	History []Outcome
}

// Clone returns a copy whose history does not alias the original
func (s *RoundState) Clone() *RoundState {
	c := *s
	c.History = append([]Outcome(nil), s.History...)
	return &c
}

// RoundResult is everything a renderer needs about one resolved round
type RoundResult struct {
	PlayerDice  [2]int
	BankerDice  [2]int
	PlayerScore int
	BankerScore int
	Winner      Side
	Wager       Wager
	Outcome     Outcome
	Payout      Payout
}

// PayoutRatio returns the raw ratio without its unit
func (r *RoundResult) PayoutRatio() decimal.Decimal {
	return r.Payout.Ratio
}

// TiePaytableLabel describes the tie-sum payout, "N/A" unless the tie wager won
func (r *RoundResult) TiePaytableLabel() string {
	if r.Outcome != OutcomeTieWin || !r.Payout.Ratio.IsPositive() {
		return "N/A"
	}
	return r.Payout.String()
}
