package mock

import (
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/mock"
)

// SessionHandler is a mock implementation of discord.SessionHandler
type SessionHandler struct {
	mock.Mock
}

// InteractionRespond implements discord.SessionHandler
func (s *SessionHandler) InteractionRespond(i *discordgo.Interaction, r *discordgo.InteractionResponse, options ...discordgo.RequestOption) error {
	args := s.Called(i, r)
	return args.Error(0)
}

// ApplicationCommandBulkOverwrite implements discord.SessionHandler
func (s *SessionHandler) ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	args := s.Called(appID, guildID, commands)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*discordgo.ApplicationCommand), args.Error(1)
}

// ApplicationCommandDelete implements discord.SessionHandler
func (s *SessionHandler) ApplicationCommandDelete(appID string, guildID string, cmdID string, options ...discordgo.RequestOption) error {
	args := s.Called(appID, guildID, cmdID)
	return args.Error(0)
}

// Open implements discord.SessionHandler
func (s *SessionHandler) Open() error {
	args := s.Called()
	return args.Error(0)
}

// Close implements discord.SessionHandler
func (s *SessionHandler) Close() error {
	args := s.Called()
	return args.Error(0)
}

// AddHandler implements discord.SessionHandler
func (s *SessionHandler) AddHandler(handler interface{}) func() {
	args := s.Called(handler)
	return args.Get(0).(func())
}
