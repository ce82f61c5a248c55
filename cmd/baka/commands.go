package main

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/bakabot/internal/transport/discord"
)

func newCommandsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commands",
		Short: "Manage the Discord slash command",
	}

	register := &cobra.Command{
		Use:   "register",
		Short: "Create or update the slash command",
		Long: `Overwrite the application's slash commands with the bot's command.
With discord.guild_id set the command is registered for that guild only and
shows up at once; otherwise it is global.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			d := cfg.Discord
			if d.BotToken == "" || d.ApplicationID == "" {
				return errors.New("discord.bot_token and discord.application_id are required")
			}

			session, err := discordgo.New("Bot " + d.BotToken)
			if err != nil {
				return fmt.Errorf("discord session: %w", err)
			}
			cmds, err := discord.RegisterCommands(cmd.Context(), session, d.ApplicationID, d.GuildID, d.CommandName, cfg.Baka.MaxTarget)
			if err != nil {
				return err
			}

			scope := "global"
			if d.GuildID != "" {
				scope = "guild " + d.GuildID
			}
			for _, c := range cmds {
				fmt.Fprintf(cmd.OutOrStdout(), "registered /%s (%s, id %s)\n", c.Name, scope, c.ID)
			}
			return nil
		},
	}

	cmd.AddCommand(register)
	return cmd
}
