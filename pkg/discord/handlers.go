package discord

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/coder/quartz"
	"github.com/fadedpez/tucobet/internal/discord"
	"github.com/fadedpez/tucobet/internal/logging"
	"github.com/fadedpez/tucobet/internal/types"
	"github.com/fadedpez/tucobet/pkg/entities"
	"github.com/fadedpez/tucobet/pkg/services/bacbo"
	"github.com/fadedpez/tucobet/pkg/services/session"
	"github.com/shopspring/decimal"
)

const (
	// Discord drops interactions that are not answered within three seconds
	interactionTimeout = 3 * time.Second

	// Processed interaction IDs are forgotten after interactionTTL, checked once
	// more than pruneThreshold are remembered
	interactionTTL = 10 * time.Minute
	pruneThreshold = 100
)

// SessionService is the part of the session service the chat adapter drives
type SessionService interface {
	StartProgression(ctx context.Context, userID string, p session.Params) (*entities.ProgressionSession, error)
	CurrentProgression(ctx context.Context, userID string) (*entities.ProgressionSession, error)
	ReportResult(ctx context.Context, userID string, won bool) (*session.ResultReport, error)
	StopProgression(ctx context.Context, userID string) (*entities.ProgressionSession, error)
	PlayBacBo(ctx context.Context, userID string, wager entities.Wager) (*session.RoundReport, error)
	ExitBacBo(ctx context.Context, userID string) (bacbo.Summary, error)
}

// Handler turns Discord interactions into session service calls
type Handler struct {
	service  SessionService
	defaults session.Params
	clock    quartz.Clock
	log      *logging.Logger

	// Interaction tracking to prevent duplicates
	interactionMu sync.Mutex
	processed     map[string]time.Time
}

// NewHandler creates a handler that starts new games with defaults
func NewHandler(service SessionService, defaults session.Params, clock quartz.Clock, logger *logging.Logger) *Handler {
	return &Handler{
		service:   service,
		defaults:  defaults,
		clock:     clock,
		log:       logger.WithPrefix("discord"),
		processed: make(map[string]time.Time),
	}
}

// HandleInteraction routes slash commands and button presses
func (h *Handler) HandleInteraction(s discord.SessionHandler, i *discordgo.InteractionCreate) {
	if !h.markProcessed(i.ID) {
		h.log.Debug("Skipping already processed interaction: %s", i.ID)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
	defer cancel()

	var err error
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		err = h.handleCommand(ctx, s, i)
	case discordgo.InteractionMessageComponent:
		err = h.handleComponent(ctx, s, i)
	default:
		return
	}

	if err != nil {
		h.log.Error("Error responding to interaction %s: %v", i.ID, err)
	}
}

// markProcessed records id and reports whether it was new
func (h *Handler) markProcessed(id string) bool {
	h.interactionMu.Lock()
	defer h.interactionMu.Unlock()

	if _, seen := h.processed[id]; seen {
		return false
	}

	now := h.clock.Now()
	h.processed[id] = now

	if len(h.processed) > pruneThreshold {
		for seenID, at := range h.processed {
			if now.Sub(at) > interactionTTL {
				delete(h.processed, seenID)
			}
		}
	}
	return true
}

func (h *Handler) handleCommand(ctx context.Context, s discord.SessionHandler, i *discordgo.InteractionCreate) error {
	data := i.ApplicationCommandData()
	h.log.Debug("Received application command: %s", data.Name)

	switch data.Name {
	case CommandStart:
		return discord.SendResponse(s, i, discord.NewResponse(helpMessage("<@"+discord.UserID(i)+">", h.defaults), nil))
	case CommandPlay:
		return h.handlePlay(ctx, s, i, data.Options)
	case CommandStop:
		return h.handleStop(ctx, s, i)
	case CommandBacBo:
		return discord.SendResponse(s, i, discord.NewResponse(bacBoWelcomeMessage(), bacBoButtons()))
	default:
		return discord.SendErrorResponse(s, i, types.NewGameError(types.ErrInvalidCommand, "¿Qué? Tuco doesn't know that command."))
	}
}

func (h *Handler) handlePlay(ctx context.Context, s discord.SessionHandler, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) error {
	userID := discord.UserID(i)
	params, hasArgs := h.playParams(options)

	current, err := h.service.CurrentProgression(ctx, userID)
	switch {
	case err == nil:
		if hasArgs {
			return discord.SendErrorResponse(s, i, types.NewGameError(types.ErrSessionInProgress,
				"¡Espera! You already have a game in progress. Use /stop before starting a new one."))
		}
		return discord.SendResponse(s, i, discord.NewResponse(currentBetMessage(current), progressionButtons()))
	case types.IsGameError(err, types.ErrBankrupt):
		return discord.SendResponse(s, i, discord.NewResponse(
			"Game over! Your bankroll is depleted. Use /play to start a new game.", nil))
	case !types.IsGameError(err, types.ErrSessionNotFound):
		return discord.SendErrorResponse(s, i, err)
	}

	started, err := h.service.StartProgression(ctx, userID, params)
	if err != nil {
		if types.IsGameError(err, types.ErrInvalidArgument) {
			err = types.WrapError(types.ErrInvalidArgument,
				"Bankroll and base bet must be positive numbers, and the base bet cannot be greater than your bankroll.", err)
		}
		return discord.SendErrorResponse(s, i, err)
	}
	return discord.SendResponse(s, i, discord.NewResponse(newGameMessage(started), progressionButtons()))
}

// playParams overlays the /play options on the defaults
func (h *Handler) playParams(options []*discordgo.ApplicationCommandInteractionDataOption) (session.Params, bool) {
	params := h.defaults
	hasArgs := false
	for _, opt := range options {
		switch opt.Name {
		case "bankroll":
			params.Bankroll = decimal.NewFromFloat(opt.FloatValue())
			hasArgs = true
		case "base_bet":
			params.BaseBet = decimal.NewFromFloat(opt.FloatValue())
			hasArgs = true
		}
	}
	return params, hasArgs
}

func (h *Handler) handleStop(ctx context.Context, s discord.SessionHandler, i *discordgo.InteractionCreate) error {
	_, err := h.service.StopProgression(ctx, discord.UserID(i))
	if types.IsGameError(err, types.ErrSessionNotFound) {
		return discord.SendResponse(s, i, discord.NewEphemeralResponse("You don't have an active game session to stop.", nil))
	}
	if err != nil {
		return discord.SendErrorResponse(s, i, err)
	}
	return discord.SendResponse(s, i, discord.NewResponse("*Tuco sweeps the chips off the table* Your game session has been stopped and all progress cleared.", nil))
}

func (h *Handler) handleComponent(ctx context.Context, s discord.SessionHandler, i *discordgo.InteractionCreate) error {
	customID := i.MessageComponentData().CustomID
	h.log.Debug("Received message component interaction: %s", customID)

	switch customID {
	case ButtonWon, ButtonLost:
		return h.handleResult(ctx, s, i, customID == ButtonWon)
	case ButtonBacBoPlayer, ButtonBacBoBanker, ButtonBacBoTie:
		return h.handleBacBoRound(ctx, s, i, entities.Wager(strings.TrimPrefix(customID, "bacbo_")))
	case ButtonBacBoExit:
		summary, err := h.service.ExitBacBo(ctx, discord.UserID(i))
		if err != nil {
			return discord.SendErrorResponse(s, i, err)
		}
		return discord.UpdateResponse(s, i, discord.NewResponse(bacBoExitMessage(summary), noComponents()))
	default:
		h.log.Warn("Unknown component ID: %s", customID)
		return discord.SendErrorResponse(s, i, types.NewGameError(types.ErrInvalidCommand,
			"*Tuco looks confused* ¿Qué? I don't understand that button."))
	}
}

func (h *Handler) handleResult(ctx context.Context, s discord.SessionHandler, i *discordgo.InteractionCreate, won bool) error {
	report, err := h.service.ReportResult(ctx, discord.UserID(i), won)
	if types.IsGameError(err, types.ErrSessionNotFound) {
		return discord.UpdateResponse(s, i, discord.NewResponse(
			"Your game session has expired or was stopped. Use /play to start a new one.", noComponents()))
	}
	if err != nil {
		return discord.SendErrorResponse(s, i, err)
	}

	components := progressionButtons()
	if report.Ended {
		components = noComponents()
	}
	return discord.UpdateResponse(s, i, discord.NewResponse(resultMessage(report, won), components))
}

func (h *Handler) handleBacBoRound(ctx context.Context, s discord.SessionHandler, i *discordgo.InteractionCreate, wager entities.Wager) error {
	report, err := h.service.PlayBacBo(ctx, discord.UserID(i), wager)
	if err != nil {
		return discord.SendErrorResponse(s, i, err)
	}
	return discord.UpdateResponse(s, i, discord.NewResponse(bacBoResultMessage(report), bacBoButtons()))
}

// noComponents clears the buttons of an updated message
func noComponents() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{}
}
