// Command simulate walks a Martingale progression in the terminal: it prints
// the next bet and asks whether the round was won or lost.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/fadedpez/tucobet/internal/logging"
	"github.com/fadedpez/tucobet/pkg/entities"
	"github.com/fadedpez/tucobet/pkg/services/martingale"
	"github.com/shopspring/decimal"
)

var (
	endStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	doneStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	hintStyle = lipgloss.NewStyle().Faint(true)
)

type CLI struct {
	Bankroll      float64 `default:"1000" help:"Starting bankroll"`
	BaseBet       float64 `default:"1" help:"Base bet the progression resets to"`
	Payout        float64 `default:"2" help:"Total return per unit staked on a win (2 is even money)"`
	MaxLossStreak int     `default:"10" help:"Losses in a row before the stop-loss ends the session"`
	Rounds        int     `default:"20" help:"Maximum number of rounds to play"`
	Verbose       bool    `short:"v" help:"Verbose logging"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("simulate"),
		kong.Description("Play a Martingale progression by hand."),
	)

	level := logging.WARN
	if cli.Verbose {
		level = logging.DEBUG
	}
	logger := logging.NewLoggerTo(os.Stderr, level, "simulate")

	if err := run(cli, os.Stdin, os.Stdout, logger); err != nil {
		logger.Error("%v", err)
		ctx.Exit(1)
	}
	ctx.Exit(0)
}

// run plays up to cli.Rounds rounds, reading one answer per line from in
func run(cli CLI, in io.Reader, out io.Writer, logger *logging.Logger) error {
	state, err := entities.NewProgressionState(
		decimal.NewFromFloat(cli.Bankroll),
		decimal.NewFromFloat(cli.BaseBet),
		decimal.NewFromFloat(cli.Payout),
		cli.MaxLossStreak,
	)
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for round := 1; round <= cli.Rounds; round++ {
		bet := martingale.NextBet(state)
		fmt.Fprintf(out, "Bet now: %s | Bankroll: %s\n", bet.StringFixed(2), state.Bankroll.StringFixed(2))
		if martingale.Depleted(state) || !bet.IsPositive() {
			fmt.Fprintln(out, endStyle.Render("Bankroll is broken or the bet is invalid. Session over."))
			return nil
		}

		won, ok := ask(scanner, out)
		if !ok {
			fmt.Fprintln(out, "No more answers. Session over.")
			return scanner.Err()
		}

		decision, err := martingale.RecordResult(state, won)
		logger.Debug("round %d: won=%t streak=%d/%d", round, won, state.WinStreak, state.LossStreak)

		var stopLoss *martingale.StopLossError
		if errors.As(err, &stopLoss) {
			fmt.Fprintln(out, endStyle.Render(fmt.Sprintf("Stop-loss hit after %d losses in a row. Final bankroll: %s",
				stopLoss.LossStreak, decision.FinalBankroll.StringFixed(2))))
			return nil
		}
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(out, doneStyle.Render("Round limit reached. Final bankroll: "+state.Bankroll.StringFixed(2)))
	return nil
}

// ask prompts until it reads a win (g/w) or loss (p/l) answer. ok is false at end of input.
func ask(scanner *bufio.Scanner, out io.Writer) (won bool, ok bool) {
	for {
		fmt.Fprint(out, "Won (g/w) / Lost (p/l)? ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return false, false
		}

		answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
		switch {
		case strings.HasPrefix(answer, "g"), strings.HasPrefix(answer, "w"):
			return true, true
		case strings.HasPrefix(answer, "p"), strings.HasPrefix(answer, "l"):
			return false, true
		}
		fmt.Fprintln(out, hintStyle.Render("Answer g or w for a win, p or l for a loss."))
	}
}
