package discord

import (
	"github.com/bwmarrin/discordgo"
)

// Slash command names
const (
	CommandStart = "start"
	CommandPlay  = "play"
	CommandStop  = "stop"
	CommandBacBo = "bacbo"
)

// Commands defines all slash commands for the bot
var Commands = []*discordgo.ApplicationCommand{
	{
		Name:        CommandStart,
		Description: "¿Qué pasa? Learn how to play with Tuco",
	},
	{
		Name:        CommandPlay,
		Description: "Start a Martingale game or see your next bet",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionNumber,
				Name:        "bankroll",
				Description: "Starting bankroll",
			},
			{
				Type:        discordgo.ApplicationCommandOptionNumber,
				Name:        "base_bet",
				Description: "Bet placed after every win",
			},
		},
	},
	{
		Name:        CommandStop,
		Description: "End your Martingale game",
	},
	{
		Name:        CommandBacBo,
		Description: "Roll the dice at Tuco's Bac Bo table",
	},
}
