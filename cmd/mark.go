package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var markCmd = &cobra.Command{
	Use:   "mark",
	Short: "Record words as seen or guessed without playing",
}

var markSeenCmd = &cobra.Command{
	Use:   "seen <word>...",
	Short: "Record that words were shown",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := commandContext(cmd)
		for _, w := range args {
			if err := e.ledger.MarkSeen(ctx, w); err != nil {
				return fmt.Errorf("mark %q seen: %w", w, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", w, e.ledger.MasteryLevel(w))
		}
		return nil
	},
}

var markGuessedCmd = &cobra.Command{
	Use:   "guessed <word>...",
	Short: "Record correct guesses",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := commandContext(cmd)
		for _, w := range args {
			if err := e.ledger.MarkGuessed(ctx, w); err != nil {
				return fmt.Errorf("mark %q guessed: %w", w, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", w, e.ledger.MasteryLevel(w))
		}
		return nil
	},
}

func init() {
	markCmd.AddCommand(markSeenCmd)
	markCmd.AddCommand(markGuessedCmd)
}
