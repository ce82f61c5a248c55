package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/bakabot/internal/app"
	"github.com/heartmarshall/bakabot/internal/domain"
	"github.com/heartmarshall/bakabot/internal/service/baka"
)

func newGenerateCmd(gf *globalFlags) *cobra.Command {
	var (
		target int
		count  int
		mode   string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print phrases with the given syllable count",
		Long: `Print phrases whose syllables sum to --target.

Mode "offline" builds them from the lexicon. Mode "validated" asks the
configured text provider and prints every matching phrase it returned.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("target") {
				target = cfg.Baka.Target
			}
			in := baka.ReplyInput{Mode: domain.PhraseMode(mode), Target: target}
			if err := in.Validate(cfg.Baka.MaxTarget); err != nil {
				return err
			}
			if count < 1 {
				return fmt.Errorf("--count must be at least 1")
			}

			logger := gf.logger(cmd)
			lex, err := gf.lexicon(cmd, cfg)
			if err != nil {
				return err
			}
			prov, err := app.NewTextProvider(cmd.Context(), cfg.Provider, logger)
			if err != nil {
				return err
			}
			svc, err := app.NewBakaService(cfg, lex, prov, nil, logger)
			if err != nil {
				return err
			}

			for range count {
				out, err := svc.Reply(cmd.Context(), in)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&target, "target", "t", 5, "Syllable count (default from config)")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of phrases")
	cmd.Flags().StringVarP(&mode, "mode", "m", domain.PhraseModeOffline.String(), "offline or validated")
	return cmd
}
