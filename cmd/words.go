package cmd

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/wordfill/internal/ledger"
	"github.com/abhisek/wordfill/internal/ui/components"
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "List known words with their mastery level",
	RunE: func(cmd *cobra.Command, args []string) error {
		levelFlag, _ := cmd.Flags().GetString("level")
		var filter *ledger.Level
		if levelFlag != "" {
			lvl, ok := ledger.ParseLevel(strings.ToLower(levelFlag))
			if !ok {
				return fmt.Errorf("invalid level %q: must be new, learnt or mastered", levelFlag)
			}
			filter = &lvl
		}

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		out := cmd.OutOrStdout()
		var shown int
		for _, w := range e.ledger.AllKnownWords() {
			rec, _ := e.ledger.Record(w)
			lvl := ledger.Classify(rec.TimesCorrect)
			if filter != nil && lvl != *filter {
				continue
			}
			shown++
			lipgloss.Fprintln(out, fmt.Sprintf("%-24s %s  seen %d, correct %d",
				strings.ToUpper(w), components.MasteryTag(lvl), rec.TimesSeen, rec.TimesCorrect))
		}

		if shown == 0 {
			fmt.Fprintln(out, "No words yet.")
		}
		return nil
	},
}

func init() {
	wordsCmd.Flags().StringP("level", "l", "", "Only show words at this level (new, learnt, mastered)")
}
