package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dshills/formrunner/internal/portal"
	"github.com/dshills/formrunner/internal/tui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var runForm string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the interactive form",
	Long: `Open the interactive terminal UI.

The credential screen asks for a roll number and full name. On login the
user is registered with the form service and their form is fetched. Each
section must be valid before the next one opens.

Keys:
  tab / shift+tab   move between fields
  ctrl+n / ctrl+p   next / previous section
  ctrl+s            submit (last section)
  pgup / pgdown     scroll
  ctrl+c            quit

Logs are written only when logging.output names a file.

Example:
  # Use the configured form service
  formrunner run

  # Work offline against a local form definition
  formrunner run --form ./survey.yaml`,
	Args: cobra.NoArgs,
	RunE: runInteractive,
}

func setupRunFlags() {
	runCmd.Flags().StringVarP(&runForm, "form", "f", "", "load the form from a local JSON or YAML file instead of the form service")
}

func runInteractive(cmd *cobra.Command, _ []string) error {
	submitter, err := newSubmitter()
	if err != nil {
		return err
	}

	p := portal.New(newService(runForm), submitter)
	app := tui.New(cmd.Context(), p.Login)

	log.Info().Str("form", runForm).Msg("Starting interactive session")

	program := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := program.Run(); err != nil {
		return ExitError{Code: ExitCodeInternalError, Err: fmt.Errorf("terminal UI failed: %w", err)}
	}

	if s := app.Session(); s != nil {
		log.Info().
			Str("session_id", s.ID).
			Int("submissions", app.Submitted()).
			Msg("Interactive session ended")
	}
	return nil
}
