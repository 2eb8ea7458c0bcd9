package bot

import (
	"io"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/tucobet/internal/config"
	discordmock "github.com/fadedpez/tucobet/internal/discord/mock"
	"github.com/fadedpez/tucobet/internal/logging"
	tucodiscord "github.com/fadedpez/tucobet/pkg/discord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type BotTestSuite struct {
	suite.Suite
	session *discordmock.SessionHandler
	handler *MockInteractionHandler
	config  *config.Config
	bot     *Bot

	registered func(*discordgo.Session, *discordgo.InteractionCreate)
}

func TestBotSuite(t *testing.T) {
	suite.Run(t, new(BotTestSuite))
}

func (s *BotTestSuite) SetupTest() {
	s.session = &discordmock.SessionHandler{}
	s.session.Test(s.T())
	s.handler = &MockInteractionHandler{}
	s.handler.Test(s.T())
	s.config = &config.Config{
		AppID:       "test-app-id",
		GuildID:     "test-guild-id",
		Environment: "development",
	}

	s.session.On("AddHandler", mock.AnythingOfType("func(*discordgo.Session, *discordgo.InteractionCreate)")).
		Run(func(args mock.Arguments) {
			s.registered = args.Get(0).(func(*discordgo.Session, *discordgo.InteractionCreate))
		}).
		Return(func() {})

	s.bot = New(s.config, s.session, s.handler, logging.NewLoggerTo(io.Discard, logging.DEBUG, ""))
}

func (s *BotTestSuite) registeredCommands() []*discordgo.ApplicationCommand {
	out := make([]*discordgo.ApplicationCommand, 0, len(tucodiscord.Commands))
	for _, cmd := range tucodiscord.Commands {
		out = append(out, &discordgo.ApplicationCommand{ID: cmd.Name + "-id", Name: cmd.Name})
	}
	return out
}

func (s *BotTestSuite) TestStartRegistersCommands() {
	s.session.On("Open").Return(nil)
	s.session.On("ApplicationCommandBulkOverwrite", s.config.AppID, s.config.GuildID, tucodiscord.Commands).
		Return(s.registeredCommands(), nil)

	err := s.bot.Start()

	s.Require().NoError(err)
	s.session.AssertExpectations(s.T())
	s.Len(s.bot.commands, len(tucodiscord.Commands))
}

func (s *BotTestSuite) TestStartOpenError() {
	s.session.On("Open").Return(assert.AnError)

	err := s.bot.Start()

	s.Require().ErrorIs(err, assert.AnError)
	s.session.AssertNotCalled(s.T(), "ApplicationCommandBulkOverwrite", mock.Anything, mock.Anything, mock.Anything)
}

func (s *BotTestSuite) TestStartRegisterError() {
	s.session.On("Open").Return(nil)
	s.session.On("ApplicationCommandBulkOverwrite", s.config.AppID, s.config.GuildID, mock.Anything).
		Return(nil, assert.AnError)

	err := s.bot.Start()

	s.Require().Error(err)
	s.Empty(s.bot.commands)
}

func (s *BotTestSuite) TestInteractionsReachHandler() {
	s.session.On("Open").Return(nil)
	s.session.On("ApplicationCommandBulkOverwrite", mock.Anything, mock.Anything, mock.Anything).
		Return(s.registeredCommands(), nil)
	s.Require().NoError(s.bot.Start())

	interaction := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{ID: "i-1"}}
	s.handler.On("HandleInteraction", s.session, interaction).Return()

	s.Require().NotNil(s.registered)
	s.registered(nil, interaction)

	s.handler.AssertExpectations(s.T())
}

func (s *BotTestSuite) TestShutdownCleansUpInDevelopment() {
	s.session.On("Open").Return(nil)
	s.session.On("ApplicationCommandBulkOverwrite", mock.Anything, mock.Anything, mock.Anything).
		Return(s.registeredCommands(), nil)
	s.Require().NoError(s.bot.Start())

	for _, cmd := range s.registeredCommands() {
		s.session.On("ApplicationCommandDelete", s.config.AppID, s.config.GuildID, cmd.ID).Return(nil).Once()
	}
	s.session.On("Close").Return(nil)

	s.Require().NoError(s.bot.Shutdown())
	s.session.AssertExpectations(s.T())
	s.Empty(s.bot.commands)
}

func (s *BotTestSuite) TestShutdownKeepsCommandsInProduction() {
	s.config.Environment = "production"
	s.bot.commands = s.registeredCommands()
	s.session.On("Close").Return(assert.AnError)

	err := s.bot.Shutdown()

	s.ErrorIs(err, assert.AnError)
	s.session.AssertNotCalled(s.T(), "ApplicationCommandDelete", mock.Anything, mock.Anything, mock.Anything)
}
