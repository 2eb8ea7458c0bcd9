package dashboard

import (
	"time"

	"github.com/fadedpez/tucobet/pkg/entities"
	"github.com/fadedpez/tucobet/pkg/services/bacbo"
	"github.com/fadedpez/tucobet/pkg/services/martingale"
	"github.com/fadedpez/tucobet/pkg/services/session"
	"github.com/shopspring/decimal"
)

// StartRequest starts a progression. Omitted fields fall back to the dashboard preset.
type StartRequest struct {
	Bankroll      *decimal.Decimal `json:"bankroll,omitempty"`
	BaseBet       *decimal.Decimal `json:"base_bet,omitempty"`
	Payout        *decimal.Decimal `json:"payout,omitempty"`
	MaxLossStreak *int             `json:"max_loss_streak,omitempty"`
}

type ResultRequest struct {
	Won *bool `json:"won"`
}

type RoundRequest struct {
	Wager string `json:"wager"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type AdviceResponse struct {
	Level               martingale.Level `json:"level"`
	BetShare            float64          `json:"bet_share"`
	NextLossProbability float64          `json:"next_loss_probability"`
	GainShare           float64          `json:"gain_share"`
}

type ProgressionResponse struct {
	SessionID       string            `json:"session_id"`
	UserID          string            `json:"user_id"`
	CreatedAt       time.Time         `json:"created_at"`
	LastActive      time.Time         `json:"last_active"`
	Bankroll        decimal.Decimal   `json:"bankroll"`
	InitialBankroll decimal.Decimal   `json:"initial_bankroll"`
	BaseBet         decimal.Decimal   `json:"base_bet"`
	Payout          decimal.Decimal   `json:"payout"`
	MaxLossStreak   int               `json:"max_loss_streak"`
	NextBet         decimal.Decimal   `json:"next_bet"`
	LossStreak      int               `json:"loss_streak"`
	WinStreak       int               `json:"win_streak"`
	RecentResults   []bool            `json:"recent_results"`
	BankrollHistory []decimal.Decimal `json:"bankroll_history"`
	Advice          AdviceResponse    `json:"advice"`
}

type ResultResponse struct {
	Won         bool                `json:"won"`
	Stake       decimal.Decimal     `json:"stake"`
	Decision    string              `json:"decision"`
	Ended       bool                `json:"ended"`
	EndReason   string              `json:"end_reason,omitempty"`
	Progression ProgressionResponse `json:"progression"`
}

type RoundResponse struct {
	PlayerDice  [2]int          `json:"player_dice"`
	BankerDice  [2]int          `json:"banker_dice"`
	PlayerScore int             `json:"player_score"`
	BankerScore int             `json:"banker_score"`
	Winner      string          `json:"winner"`
	Wager       string          `json:"wager"`
	Outcome     string          `json:"outcome"`
	PayoutKind  string          `json:"payout_kind"`
	PayoutRatio decimal.Decimal `json:"payout_ratio"`
	TiePayout   string          `json:"tie_payout"`
	Summary     SummaryResponse `json:"summary"`
}

type SummaryResponse struct {
	Rounds  int `json:"rounds"`
	Wins    int `json:"wins"`
	Losses  int `json:"losses"`
	TiePush int `json:"tie_push"`
	TieWins int `json:"tie_wins"`
}

func (r StartRequest) params(defaults session.Params) session.Params {
	p := defaults
	if r.Bankroll != nil {
		p.Bankroll = *r.Bankroll
	}
	if r.BaseBet != nil {
		p.BaseBet = *r.BaseBet
	}
	if r.Payout != nil {
		p.PayoutMultiple = *r.Payout
	}
	if r.MaxLossStreak != nil {
		p.MaxLossStreak = *r.MaxLossStreak
	}
	return p
}

func toProgressionResponse(s *entities.ProgressionSession) ProgressionResponse {
	advice := martingale.Advise(s.State, s.InitialBankroll)
	return ProgressionResponse{
		SessionID:       s.ID,
		UserID:          s.UserID,
		CreatedAt:       s.CreatedAt,
		LastActive:      s.LastActive,
		Bankroll:        s.State.Bankroll,
		InitialBankroll: s.InitialBankroll,
		BaseBet:         s.State.BaseBet,
		Payout:          s.State.PayoutMultiple,
		MaxLossStreak:   s.State.MaxLossStreak,
		NextBet:         martingale.NextBet(s.State),
		LossStreak:      s.State.LossStreak,
		WinStreak:       s.State.WinStreak,
		RecentResults:   s.State.OutcomeHistory.Values(),
		BankrollHistory: s.BankrollHistory,
		Advice: AdviceResponse{
			Level:               advice.Level,
			BetShare:            advice.BetShare,
			NextLossProbability: advice.NextLossProbability,
			GainShare:           advice.GainShare,
		},
	}
}

func toResultResponse(won bool, report *session.ResultReport) ResultResponse {
	return ResultResponse{
		Won:         won,
		Stake:       report.Stake,
		Decision:    string(report.Decision.Kind),
		Ended:       report.Ended,
		EndReason:   string(report.EndReason),
		Progression: toProgressionResponse(report.Session),
	}
}

func toSummaryResponse(s bacbo.Summary) SummaryResponse {
	return SummaryResponse{
		Rounds:  s.Rounds,
		Wins:    s.Wins,
		Losses:  s.Losses,
		TiePush: s.TiePush,
		TieWins: s.TieWins,
	}
}

func toRoundResponse(report *session.RoundReport) RoundResponse {
	r := report.Result
	return RoundResponse{
		PlayerDice:  r.PlayerDice,
		BankerDice:  r.BankerDice,
		PlayerScore: r.PlayerScore,
		BankerScore: r.BankerScore,
		Winner:      r.Winner.String(),
		Wager:       r.Wager.String(),
		Outcome:     r.Outcome.String(),
		PayoutKind:  string(r.Payout.Kind),
		PayoutRatio: r.PayoutRatio(),
		TiePayout:   r.TiePaytableLabel(),
		Summary:     toSummaryResponse(report.Summary),
	}
}
