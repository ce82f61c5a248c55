package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

type commandOverwriter interface {
	ApplicationCommandBulkOverwrite(appID, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

// Commands returns the slash command definitions for the bot.
func Commands(name string, maxTarget int) []*discordgo.ApplicationCommand {
	minTarget := float64(0)
	return []*discordgo.ApplicationCommand{
		{
			Name:        name,
			Description: "Say something silly, in exactly the right number of syllables",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        optionOffline,
					Description: "Build the phrase from the word list instead of asking the text provider",
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        optionTarget,
					Description: "Number of syllables",
					MinValue:    &minTarget,
					MaxValue:    float64(maxTarget),
				},
			},
		},
	}
}

// RegisterCommands replaces the application's commands with Commands. An
// empty guildID registers them globally.
func RegisterCommands(ctx context.Context, s commandOverwriter, appID, guildID, name string, maxTarget int) ([]*discordgo.ApplicationCommand, error) {
	cmds, err := s.ApplicationCommandBulkOverwrite(appID, guildID, Commands(name, maxTarget), discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("register commands: %w", err)
	}
	return cmds, nil
}
