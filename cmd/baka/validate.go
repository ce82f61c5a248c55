package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/bakabot/internal/app"
)

var errNoMatch = errors.New("no phrase matches the target")

func newValidateCmd(gf *globalFlags) *cobra.Command {
	var target int

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Find labelled phrases in text read from stdin",
		Long: `Read text from stdin and print every "<label>: ... ." phrase whose
words are all in the lexicon and whose syllables sum to --target.
Exits non-zero when nothing matches.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("target") {
				target = cfg.Baka.Target
			}

			text, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}

			logger := gf.logger(cmd)
			lex, err := gf.lexicon(cmd, cfg)
			if err != nil {
				return err
			}
			svc, err := app.NewBakaService(cfg, lex, nil, nil, logger)
			if err != nil {
				return err
			}

			candidates, err := svc.Validate(string(text), target)
			if err != nil {
				return err
			}
			if len(candidates) == 0 {
				return errNoMatch
			}
			fmt.Fprintln(cmd.OutOrStdout(), svc.FormatAll(candidates))
			return nil
		},
	}

	cmd.Flags().IntVarP(&target, "target", "t", 5, "Syllable count (default from config)")
	return cmd
}
