package main

import (
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newLexiconCmd(gf *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lexicon",
		Short: "Inspect the syllable lexicon",
	}

	var path, format string
	stats := &cobra.Command{
		Use:   "stats",
		Short: "Print lexicon size, bucket sizes and fingerprint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if path != "" {
				cfg.Lexicon.Path = path
			}
			if format != "" {
				cfg.Lexicon.Format = format
			}
			cfg.Lexicon.RequireCoverage = false

			lex, err := gf.lexicon(cmd, cfg)
			if err != nil {
				return err
			}
			st := lex.Stats()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "words\t%d\n", lex.Len())
			fmt.Fprintf(w, "rows\t%d\n", st.Rows)
			fmt.Fprintf(w, "over cap\t%d\n", st.OverCap)
			fmt.Fprintf(w, "duplicates\t%d\n", st.Duplicates)
			fmt.Fprintf(w, "max syllables\t%d\n", lex.MaxSyllables())

			counts := make([]int, 0, len(st.Buckets))
			for n := range st.Buckets {
				counts = append(counts, n)
			}
			slices.Sort(counts)
			for _, n := range counts {
				fmt.Fprintf(w, "  %d syllables\t%d\n", n, st.Buckets[n])
			}
			if missing := lex.Missing(lex.MaxSyllables()); len(missing) > 0 {
				fmt.Fprintf(w, "missing\t%v\n", missing)
			}
			fmt.Fprintf(w, "fingerprint\t%s\n", lex.Fingerprint())
			return w.Flush()
		},
	}
	stats.Flags().StringVar(&path, "path", "", "Lexicon file (default from config, else embedded)")
	stats.Flags().StringVar(&format, "format", "", "csv or cmu")

	cmd.AddCommand(stats)
	return cmd
}
