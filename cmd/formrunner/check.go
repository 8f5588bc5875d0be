package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/dshills/formrunner/internal/cli"
	"github.com/dshills/formrunner/internal/models"
	"github.com/dshills/formrunner/internal/schema"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	checkAllowUnknown bool
	checkQuiet        bool
)

var checkCmd = &cobra.Command{
	Use:   "check <form-file>...",
	Short: "Validate form definition files",
	Long: `Parse and validate one or more form definition files.

Each file is checked for at least one section, unique non-empty field ids,
supported field types, options on choice fields, and sane length limits.
Files are checked concurrently; every problem in a file is reported.

Exit codes:
  0 - All files are valid
  2 - At least one file is malformed
  7 - A file could not be read

Example:
  formrunner check forms/*.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func setupCheckFlags() {
	checkCmd.Flags().BoolVar(&checkAllowUnknown, "allow-unknown-types", false, "accept field types outside the supported set")
	checkCmd.Flags().BoolVarP(&checkQuiet, "quiet", "q", false, "only print failures")
}

type checkResult struct {
	form *models.FormDefinition
	err  error
}

func runCheck(cmd *cobra.Command, args []string) error {
	validator := schema.NewValidator()
	validator.AllowUnknownTypes = checkAllowUnknown

	results := make([]checkResult, len(args))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.NumCPU())
	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			form, err := checkForm(validator, path)
			results[i] = checkResult{form: form, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ExitError{Code: ExitCodeInternalError, Err: err}
	}

	renderer := cli.NewRenderer(cli.RenderConfig{Writer: cmd.OutOrStdout(), Quiet: checkQuiet})

	var firstErr error
	failed := 0
	for i, path := range args {
		res := results[i]
		renderer.CheckResult(path, res.form, res.err)
		if res.err != nil {
			failed++
			if firstErr == nil {
				firstErr = res.err
			}
		}
	}

	log.Info().
		Int("files", len(args)).
		Int("failed", failed).
		Msg("Form check completed")

	if firstErr != nil {
		return ExitError{
			Code: exitCodeFor(firstErr),
			Err:  fmt.Errorf("%d of %d form files failed validation", failed, len(args)),
		}
	}
	return nil
}

// checkForm loads one file. Unreadable files and malformed definitions come
// back as ExitErrors carrying their exit codes.
func checkForm(validator *schema.Validator, path string) (*models.FormDefinition, error) {
	format, err := schema.FormatFromPath(path)
	if err != nil {
		return nil, ExitError{Code: ExitCodeSchemaError, Err: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ExitError{Code: ExitCodeFileSystemError, Err: err}
	}

	form, err := schema.ParseForm(format, string(data))
	if err != nil {
		return nil, ExitError{Code: ExitCodeSchemaError, Err: err}
	}

	if err := validator.Validate(form); err != nil {
		return nil, ExitError{Code: ExitCodeSchemaError, Err: err}
	}
	return form, nil
}
