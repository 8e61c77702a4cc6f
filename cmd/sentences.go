package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordfill/internal/sentences"
)

var sentencesCmd = &cobra.Command{
	Use:   "sentences",
	Short: "Manage the sentence bank",
}

var sentencesImportCmd = &cobra.Command{
	Use:   "import <file.xlsx|file.csv>",
	Short: "Import questions from a spreadsheet into the sentence bank",
	Long: `Import fill-in-the-blank questions from an .xlsx or .csv file.

Columns, in order: word, sentence (with ___ for the blank), option 1..4.
Valid rows are merged into the bank file (--out, the configured sentences
path, or sentences.json in the data directory). Invalid rows are reported
and skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		cfg := sentences.DefaultImportConfig()
		cfg.SheetName, _ = cmd.Flags().GetString("sheet")
		noHeader, _ := cmd.Flags().GetBool("no-header")
		cfg.SkipHeader = !noHeader

		imported, res, err := sentences.Import(args[0], cfg)
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out, _ = e.sentencesPath()
		}

		bank, err := sentences.LoadBank(out)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			bank, err = sentences.NewBank(nil)
			if err != nil {
				return err
			}
		case err != nil:
			return fmt.Errorf("load %s: %w", out, err)
		}
		added := bank.Merge(imported)

		if err := bank.Save(out); err != nil {
			return fmt.Errorf("save %s: %w", out, err)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Rows processed: %d\n", res.Processed)
		fmt.Fprintf(w, "Valid:          %d\n", res.Imported)
		fmt.Fprintf(w, "Skipped:        %d\n", res.Skipped)
		fmt.Fprintf(w, "New in bank:    %d (total %d)\n", added, bank.Len())
		fmt.Fprintf(w, "Saved to:       %s\n", out)
		for _, msg := range res.Errors {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", msg)
		}
		e.logger.Info("sentences imported", "file", args[0], "out", out, "added", added, "skipped", res.Skipped)
		return nil
	},
}

var sentencesCheckCmd = &cobra.Command{
	Use:   "check <file.json>",
	Short: "Validate a sentence bank file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(args[0]); err != nil {
			return err
		}
		bank, err := sentences.LoadBank(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok, %d questions\n", args[0], bank.Len())
		return nil
	},
}

func init() {
	sentencesImportCmd.Flags().String("sheet", "", "Sheet name for .xlsx files (default: first sheet)")
	sentencesImportCmd.Flags().String("out", "", "Bank file to merge into")
	sentencesImportCmd.Flags().Bool("no-header", false, "Treat the first row as data")

	sentencesCmd.AddCommand(sentencesImportCmd)
	sentencesCmd.AddCommand(sentencesCheckCmd)
}
