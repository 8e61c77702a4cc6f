package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/wordfill/internal/app"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the quiz",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

// runPlay launches the TUI.
func runPlay(cmd *cobra.Command) error {
	e, err := openEnv(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	source, sourceName, err := e.source(commandContext(cmd))
	if err != nil {
		return err
	}

	e.logger.Info("starting ui", "source", sourceName)
	return app.Run(app.Options{
		Ledger:     e.ledger,
		Source:     source,
		SourceName: sourceName,
		Logger:     e.logger,
	})
}
