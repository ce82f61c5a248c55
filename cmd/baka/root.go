package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/bakabot/internal/app"
	"github.com/heartmarshall/bakabot/internal/config"
	"github.com/heartmarshall/bakabot/internal/lexicon"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	verbose bool
}

func newRootCmd() *cobra.Command {
	var gf globalFlags

	root := &cobra.Command{
		Use:           "baka",
		Short:         "Syllable-counted phrase bot tooling",
		Long:          "Generate and validate \"Baka: ...\" phrases, inspect the lexicon, issue API tokens and manage the Discord command.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&gf.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newGenerateCmd(&gf),
		newValidateCmd(&gf),
		newLexiconCmd(&gf),
		newTokenCmd(),
		newCommandsCmd(),
	)
	return root
}

// loadConfig reads configuration without the server-only checks.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Read()
	if err != nil {
		return nil, err
	}
	if err := cfg.ValidateCore(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (gf *globalFlags) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if gf.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

func (gf *globalFlags) lexicon(cmd *cobra.Command, cfg *config.Config) (*lexicon.Lexicon, error) {
	return app.NewLexicon(cfg.Lexicon, gf.logger(cmd))
}
