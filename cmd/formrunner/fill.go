package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/formrunner/internal/cli"
	"github.com/dshills/formrunner/internal/engine"
	"github.com/dshills/formrunner/internal/models"
	"github.com/dshills/formrunner/internal/portal"
	"github.com/dshills/formrunner/internal/schema"
	"github.com/dshills/formrunner/internal/submit"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	fillRoll    string
	fillName    string
	fillAnswers string
	fillForm    string
	fillDryRun  bool
	fillQuiet   bool
)

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill in and submit a form without the interactive UI",
	Long: `Log in, apply answers from a file section by section, and submit.

Answers are a flat JSON or YAML mapping of field id to a string, boolean,
or list of strings. Checkbox answers may be booleans or "true"/"false"
strings. Fields without an answer keep their defaults. Each
section is printed as it is filled; the command stops at the first section
that fails validation.

Exit codes:
  0 - Form submitted (or validated, with --dry-run)
  1 - Missing credentials or other errors
  2 - The form definition is malformed
  3 - A section failed validation or an answer does not fit its field
  4 - Registration failed
  5 - The form could not be fetched
  6 - The submission failed
  7 - A file could not be read or written

Example:
  # Fill the assigned form
  formrunner fill --roll RA2111003 --name "Alice Doe" --answers answers.yaml

  # Check answers against a local form without submitting
  formrunner fill --roll 1 --name test --form survey.yaml --answers a.json --dry-run`,
	Args: cobra.NoArgs,
	RunE: runFill,
}

func setupFillFlags() {
	fillCmd.Flags().StringVar(&fillRoll, "roll", "", "roll number")
	fillCmd.Flags().StringVar(&fillName, "name", "", "full name")
	fillCmd.Flags().StringVarP(&fillAnswers, "answers", "a", "", "answers file (JSON or YAML)")
	fillCmd.Flags().StringVarP(&fillForm, "form", "f", "", "load the form from a local JSON or YAML file instead of the form service")
	fillCmd.Flags().BoolVar(&fillDryRun, "dry-run", false, "validate every section but do not submit")
	fillCmd.Flags().BoolVarP(&fillQuiet, "quiet", "q", false, "only print failures")
}

func runFill(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	renderer := cli.NewRenderer(cli.RenderConfig{Writer: cmd.OutOrStdout(), Quiet: fillQuiet})

	answers := map[string]models.AnswerValue{}
	if fillAnswers != "" {
		var err error
		answers, err = schema.LoadAnswers(fillAnswers)
		if err != nil {
			return exitError(fmt.Errorf("failed to load answers: %w", err))
		}
	}

	var submitter engine.Submitter
	if !fillDryRun {
		var err error
		if submitter, err = newSubmitter(); err != nil {
			return err
		}
	}

	p := portal.New(newService(fillForm), submitter)
	session, err := p.Login(ctx, models.User{RollNumber: fillRoll, Name: fillName})
	renderer.Notice(portal.NoticeFor(err))
	if err != nil {
		return exitError(err)
	}

	warnUnknownAnswers(session.Form, answers)
	if answers, err = convertAnswers(session.Form, answers); err != nil {
		return ExitError{Code: ExitCodeValidationError, Err: fmt.Errorf("invalid answers file: %w", err)}
	}
	renderer.Header(session.Form)

	for {
		section := session.Section()
		for _, field := range section.Fields {
			if v, ok := answers[field.FieldID]; ok {
				session.Set(field.FieldID, v)
			}
		}

		renderer.Progress(session.Navigator())
		renderer.Section(session)

		if invalid := session.Validation().Invalid(); len(invalid) > 0 {
			return ExitError{
				Code: ExitCodeValidationError,
				Err:  fmt.Errorf("section %q has invalid fields: %s", section.Title, strings.Join(invalid, ", ")),
			}
		}
		if session.Navigator().IsLast() {
			break
		}
		if !session.Advance() {
			return ExitError{Code: ExitCodeInternalError, Err: fmt.Errorf("could not leave valid section %q", section.Title)}
		}
	}

	renderer.Summary(session)

	if fillDryRun {
		log.Info().Str("form_id", session.Form.FormID).Msg("Dry run complete, form not submitted")
		return nil
	}

	submitted, err := session.Submit(ctx)
	if err != nil {
		renderer.Notice(portal.NoticeFor(err))
		return ExitError{Code: ExitCodeSubmissionError, Err: err}
	}
	if submitted {
		renderer.Notice(portal.SubmittedNotice())
	}
	if fs, ok := submitter.(*submit.FileSubmitter); ok {
		renderer.Changes(fs.LastChanges())
	}
	return nil
}

// warnUnknownAnswers logs answers whose field id is not in the form
func warnUnknownAnswers(form *models.FormDefinition, answers map[string]models.AnswerValue) {
	var unknown []string
	for id := range answers {
		if _, ok := form.Field(id); !ok {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) == 0 {
		return
	}
	sort.Strings(unknown)
	log.Warn().Strs("fields", unknown).Msg("Ignoring answers for fields not in the form")
}

// convertAnswers coerces every answer for a known field to the field's type,
// in form order so the first bad answer reported is the earliest one
func convertAnswers(form *models.FormDefinition, answers map[string]models.AnswerValue) (map[string]models.AnswerValue, error) {
	converted := make(map[string]models.AnswerValue, len(answers))
	for _, section := range form.Sections {
		for _, field := range section.Fields {
			v, ok := answers[field.FieldID]
			if !ok {
				continue
			}
			c, err := engine.ConvertAnswer(field, v)
			if err != nil {
				return nil, err
			}
			converted[field.FieldID] = c
		}
	}
	return converted, nil
}

// newSubmitter builds the submitter selected by the submit config section
func newSubmitter() (engine.Submitter, error) {
	submitter, err := submit.New(submit.Config{
		Mode:   submit.Mode(cfg.Submit.Mode),
		Output: cfg.Submit.Output,
	})
	if err != nil {
		return nil, ExitError{Code: ExitCodeGeneralError, Err: err}
	}
	return submitter, nil
}
