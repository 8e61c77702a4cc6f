package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordfill/internal/ledger"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show word counts per mastery level",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		sum := e.ledger.Summary()
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "%-10s  %6s\n", "Level", "Words")
		fmt.Fprintln(out, strings.Repeat("─", 18))
		for _, lvl := range ledger.Levels {
			fmt.Fprintf(out, "%-10s  %6d\n", lvl, sum.Counts[lvl])
		}
		fmt.Fprintln(out, strings.Repeat("─", 18))
		fmt.Fprintf(out, "%-10s  %6d\n", "known", sum.Known)

		if review := e.ledger.ReviewWords(5); len(review) > 0 {
			fmt.Fprintf(out, "\nPractise next: %s\n", strings.Join(review, ", "))
		}

		if e.text != nil {
			fmt.Fprintf(out, "\nKnown words: %s\n", e.text.KnownWordsPath())
			fmt.Fprintf(out, "Usage:       %s\n", e.text.UsagePath())
		}
		return nil
	},
}
