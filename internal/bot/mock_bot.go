package bot

import (
	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/tucobet/internal/discord"
	"github.com/stretchr/testify/mock"
)

// MockInteractionHandler implements InteractionHandler for testing
type MockInteractionHandler struct {
	mock.Mock
}

func (m *MockInteractionHandler) HandleInteraction(s discord.SessionHandler, i *discordgo.InteractionCreate) {
	m.Called(s, i)
}
