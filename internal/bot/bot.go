package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/tucobet/internal/config"
	"github.com/fadedpez/tucobet/internal/discord"
	"github.com/fadedpez/tucobet/internal/logging"
	tucodiscord "github.com/fadedpez/tucobet/pkg/discord"
)

// InteractionHandler answers Discord interactions
type InteractionHandler interface {
	HandleInteraction(s discord.SessionHandler, i *discordgo.InteractionCreate)
}

// Bot owns the gateway connection and the registered slash commands
type Bot struct {
	config   *config.Config
	session  discord.SessionHandler
	handler  InteractionHandler
	commands []*discordgo.ApplicationCommand
	log      *logging.Logger

	removeHandler func()
}

// New creates a new instance of Bot
func New(cfg *config.Config, session discord.SessionHandler, handler InteractionHandler, logger *logging.Logger) *Bot {
	return &Bot{
		config:   cfg,
		session:  session,
		handler:  handler,
		commands: make([]*discordgo.ApplicationCommand, 0),
		log:      logger.WithPrefix("bot"),
	}
}

// Start registers handlers, connects to Discord and registers the slash commands
func (b *Bot) Start() error {
	b.removeHandler = b.session.AddHandler(b.handleInteractionCreate)

	// Open connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	// Register commands
	if err := b.registerCommands(); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	b.log.Info("Bot is ready with %d commands", len(b.commands))
	return nil
}

// Run starts the bot and shuts it down once ctx is done
func (b *Bot) Run(ctx context.Context) error {
	if err := b.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	return b.Shutdown()
}

// Shutdown gracefully shuts down the bot
func (b *Bot) Shutdown() error {
	var errs []error

	// Cleanup commands if in development
	if b.config.IsDevelopment() {
		if err := b.cleanupCommands(); err != nil {
			errs = append(errs, err)
		}
	}

	if b.removeHandler != nil {
		b.removeHandler()
	}

	// Close Discord session
	if err := b.session.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close Discord session: %w", err))
	}

	return errors.Join(errs...)
}

func (b *Bot) registerCommands() error {
	registered, err := b.session.ApplicationCommandBulkOverwrite(b.config.AppID, b.config.GuildID, tucodiscord.Commands)
	if err != nil {
		return err
	}
	b.commands = registered
	return nil
}

// cleanupCommands removes the commands this bot registered
func (b *Bot) cleanupCommands() error {
	var errs []error
	for _, cmd := range b.commands {
		if err := b.session.ApplicationCommandDelete(b.config.AppID, b.config.GuildID, cmd.ID); err != nil {
			errs = append(errs, fmt.Errorf("failed to delete command %s: %w", cmd.Name, err))
		}
	}
	b.commands = b.commands[:0]
	return errors.Join(errs...)
}

// handleInteractionCreate handles Discord interaction events
func (b *Bot) handleInteractionCreate(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	b.handler.HandleInteraction(b.session, i)
}
