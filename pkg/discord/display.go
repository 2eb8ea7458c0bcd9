package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/tucobet/pkg/entities"
	"github.com/fadedpez/tucobet/pkg/services/bacbo"
	"github.com/fadedpez/tucobet/pkg/services/martingale"
	"github.com/fadedpez/tucobet/pkg/services/session"
	"github.com/shopspring/decimal"
)

// Component IDs
const (
	ButtonWon         = "won"
	ButtonLost        = "lost"
	ButtonBacBoPlayer = "bacbo_player"
	ButtonBacBoBanker = "bacbo_banker"
	ButtonBacBoTie    = "bacbo_tie"
	ButtonBacBoExit   = "bacbo_exit"
)

const placeBetLine = "Place the bet and tell Tuco how it went."

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func progressionButtons() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "I Won ✅", Style: discordgo.SuccessButton, CustomID: ButtonWon},
				discordgo.Button{Label: "I Lost ❌", Style: discordgo.DangerButton, CustomID: ButtonLost},
			},
		},
	}
}

func bacBoButtons() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "Player", Style: discordgo.PrimaryButton, CustomID: ButtonBacBoPlayer},
				discordgo.Button{Label: "Banker", Style: discordgo.DangerButton, CustomID: ButtonBacBoBanker},
				discordgo.Button{Label: "Tie", Style: discordgo.SuccessButton, CustomID: ButtonBacBoTie},
			},
		},
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "Exit Game", Style: discordgo.SecondaryButton, CustomID: ButtonBacBoExit},
			},
		},
	}
}

func helpMessage(mention string, defaults session.Params) string {
	return fmt.Sprintf(`¡Hola %s! *Tuco tips his hat* Welcome to Tuco's Martingale table.

To start a game, use **/play**.

You can set your starting bankroll and base bet: `+"`/play bankroll:200 base_bet:5`"+`

With plain `+"`/play`"+` you start with %s bankroll and a %s base bet. Tuco doubles your bet after every loss and goes back to the base bet after every win. After %d losses in a row, Tuco calls it.

Use **/stop** to end your game at any time, or **/bacbo** to roll some dice.`,
		mention, money(defaults.Bankroll), money(defaults.BaseBet), defaults.MaxLossStreak)
}

func newGameMessage(s *entities.ProgressionSession) string {
	return fmt.Sprintf("¡Ándale! New game started!\nInitial Bankroll: **%s** | Base Bet: **%s**\n\nYour first bet is: **%s**\n\n%s",
		money(s.State.Bankroll), money(s.State.BaseBet), money(s.State.CurrentBet), placeBetLine)
}

func currentBetMessage(s *entities.ProgressionSession) string {
	return fmt.Sprintf("Bankroll: **%s** | Loss Streak: %d/%d\n\nYour next bet is: **%s**\n\n%s",
		money(s.State.Bankroll), s.State.LossStreak, s.State.MaxLossStreak, money(s.State.CurrentBet), placeBetLine)
}

func resultMessage(report *session.ResultReport, won bool) string {
	outcome := "LOST"
	if won {
		outcome = "WON"
	}
	state := report.Session.State

	switch report.EndReason {
	case session.EndStopLoss:
		return fmt.Sprintf("🛑 STOP-LOSS HIT! %d losses in a row, the limit was %d. Final bankroll: **%s**\n*Tuco shakes his head* Game over. Use /play to start a new one.",
			state.LossStreak, state.MaxLossStreak, money(report.Decision.FinalBankroll))
	case session.EndBankrupt:
		return fmt.Sprintf("You %s the last round of %s.\nYour bankroll is now empty. Game over, amigo!\nUse /play to start a new one.",
			outcome, money(report.Stake))
	}

	msg := fmt.Sprintf("Last Round: You %s a bet of %s.\nNew Bankroll: **%s** | Loss Streak: %d/%d\n\nYour next bet is: **%s**\n\n%s",
		outcome, money(report.Stake), money(state.Bankroll), state.LossStreak, state.MaxLossStreak, money(report.Decision.NextBet), placeBetLine)
	if warning := adviceMessage(report.Advice, state); warning != "" {
		msg += "\n\n" + warning
	}
	return msg
}

func adviceMessage(a martingale.Advice, s *entities.ProgressionState) string {
	share := a.BetShare * 100
	prob := a.NextLossProbability * 100

	switch a.Level {
	case martingale.LevelCaution:
		return fmt.Sprintf("⚠️ **3 losses in a row.** This bet is %.1f%% of your bankroll. The chance of a 4th loss in a row is %.2f%%. *Stick to the plan, the risk grows fast.*", share, prob)
	case martingale.LevelInflection:
		return fmt.Sprintf("🚨 **Turning point: 4 losses.** This bet is %.1f%% of your bankroll. The chance of a 5th loss in a row is %.2f%%. *Review your stop-loss, amigo.*", share, prob)
	case martingale.LevelAlert:
		return fmt.Sprintf("🚨 **Maximum alert: %d losses.** This bet eats %.1f%% of what you have left. The chance of one more loss is %.2f%%. *Tuco would think twice.*", s.LossStreak, share, prob)
	case martingale.LevelHotStreak:
		return fmt.Sprintf("📈 **%d wins in a row.** You are %+.1f%% against your starting bankroll. Next bet stays at %s. *Fortune favours the disciplined.*", s.WinStreak, a.GainShare*100, money(s.BaseBet))
	}
	return ""
}

func bacBoWelcomeMessage() string {
	return "🎲 Welcome to Bac Bo! Two dice for the Player, two for the Banker, highest total wins. Choose your bet:"
}

func bacBoTieLine(sum int) string {
	ratio, ok := bacbo.TiePayout(sum)
	if !ok {
		return "N/A"
	}
	return fmt.Sprintf("%d:1", ratio)
}

func bacBoResultMessage(report *session.RoundReport) string {
	r := report.Result
	lines := []string{
		fmt.Sprintf("Your choice: **%s**", titleCase(r.Wager.String())),
		fmt.Sprintf("Player rolls: 🎲%d + 🎲%d = **%d**", r.PlayerDice[0], r.PlayerDice[1], r.PlayerScore),
		fmt.Sprintf("Banker rolls: 🎲%d + 🎲%d = **%d**", r.BankerDice[0], r.BankerDice[1], r.BankerScore),
		"",
	}

	switch r.Outcome {
	case entities.OutcomeWin:
		lines = append(lines, fmt.Sprintf("🎉 You WON! The winner was %s. Pays 1:1.", titleCase(r.Winner.String())))
	case entities.OutcomeLoss:
		lines = append(lines, fmt.Sprintf("😔 You LOST. The winner was %s.", titleCase(r.Winner.String())))
	case entities.OutcomeTiePush:
		lines = append(lines, fmt.Sprintf("⚖️ It's a TIE! Your bet on %s is pushed, %s.", titleCase(r.Wager.String()), r.Payout))
	case entities.OutcomeTieWin:
		lines = append(lines, fmt.Sprintf("🎉 You WON by betting on Tie! A Tie on sum %d pays %s.", r.PlayerScore, bacBoTieLine(r.PlayerScore)))
	default:
		lines = append(lines, "*Tuco squints at the dice* An unexpected game outcome occurred.")
	}

	s := report.Summary
	lines = append(lines,
		"",
		fmt.Sprintf("Rounds: %d | Wins: %d | Losses: %d | Ties: %d", s.Rounds, s.Wins+s.TieWins, s.Losses, s.TiePush),
		"",
		"Choose your next bet:",
	)
	return strings.Join(lines, "\n")
}

func bacBoExitMessage(summary bacbo.Summary) string {
	if summary.Rounds == 0 {
		return "You have exited the Bac Bo game. Use /start to see the menu again."
	}
	return fmt.Sprintf("You have exited the Bac Bo game after %d rounds (%d won). Use /start to see the menu again.",
		summary.Rounds, summary.Wins+summary.TieWins)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
