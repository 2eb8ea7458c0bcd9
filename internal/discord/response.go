package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/tucobet/internal/types"
)

// ResponseEmoji maps error codes to appropriate emojis
var ResponseEmoji = map[types.ErrorCode]string{
	types.ErrSessionNotFound:   "🔍",
	types.ErrSessionInProgress: "🎮",
	types.ErrSessionEnded:      "🏁",
	types.ErrStopLoss:          "🛑",
	types.ErrBankrupt:          "💸",
	types.ErrInvalidArgument:   "❗",
	types.ErrInvalidWager:      "🎲",
	types.ErrInvalidCommand:    "⛔",
	types.ErrInternalError:     "💥",
	types.ErrNetworkError:      "🌐",
}

// internalErrorText hides internal details from chat users
const internalErrorText = "*Tuco scratches his head* Something went wrong back there, amigo. Try again."

// Response represents a Discord interaction response
type Response struct {
	Content    string
	Components []discordgo.MessageComponent
	Ephemeral  bool
}

// NewResponse creates a new Response
func NewResponse(content string, components []discordgo.MessageComponent) *Response {
	return &Response{
		Content:    content,
		Components: components,
		Ephemeral:  false,
	}
}

// NewEphemeralResponse creates a new ephemeral Response (only visible to the user)
func NewEphemeralResponse(content string, components []discordgo.MessageComponent) *Response {
	return &Response{
		Content:    content,
		Components: components,
		Ephemeral:  true,
	}
}

// NewErrorResponse creates a new error Response
func NewErrorResponse(err error) *Response {
	var gameErr *types.GameError
	if types.As(err, &gameErr) && gameErr.Code != types.ErrInternalError {
		emoji := ResponseEmoji[gameErr.Code]
		if emoji == "" {
			emoji = "❌"
		}
		return NewEphemeralResponse(fmt.Sprintf("%s %s", emoji, gameErr.Message), nil)
	}
	return NewEphemeralResponse(fmt.Sprintf("%s %s", ResponseEmoji[types.ErrInternalError], internalErrorText), nil)
}

// SendResponse posts a new message in reply to an interaction
func SendResponse(s SessionHandler, i *discordgo.InteractionCreate, r *Response) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    r.Content,
			Components: r.Components,
			Flags:      getFlags(r.Ephemeral),
		},
	})
}

// UpdateResponse edits the message a component interaction came from
func UpdateResponse(s SessionHandler, i *discordgo.InteractionCreate, r *Response) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    r.Content,
			Components: r.Components,
			Flags:      getFlags(r.Ephemeral),
		},
	})
}

// SendErrorResponse sends an error response
func SendErrorResponse(s SessionHandler, i *discordgo.InteractionCreate, err error) error {
	return SendResponse(s, i, NewErrorResponse(err))
}

// UserID returns the ID of whoever triggered the interaction, in a guild or a DM
func UserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// Helper functions

func getFlags(ephemeral bool) discordgo.MessageFlags {
	if ephemeral {
		return discordgo.MessageFlagsEphemeral
	}
	return 0
}
