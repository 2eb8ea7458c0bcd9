package discord

import (
	"github.com/bwmarrin/discordgo"
)

// SessionHandler is the slice of *discordgo.Session the bot uses, so handlers
// can be tested without a gateway connection
type SessionHandler interface {
	// Interactions
	InteractionRespond(i *discordgo.Interaction, r *discordgo.InteractionResponse, options ...discordgo.RequestOption) error

	// Application commands
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
	ApplicationCommandDelete(appID string, guildID string, cmdID string, options ...discordgo.RequestOption) error

	// Gateway
	Open() error
	Close() error
	AddHandler(handler interface{}) func()
}

// DiscordSession implements SessionHandler using discordgo.Session
type DiscordSession struct {
	*discordgo.Session
}

// NewSession creates a new DiscordSession
func NewSession(token string) (*DiscordSession, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}
	return &DiscordSession{Session: s}, nil
}

// Ensure DiscordSession implements SessionHandler
var _ SessionHandler = (*DiscordSession)(nil)
