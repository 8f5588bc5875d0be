package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/dshills/formrunner/internal/portal"
	"github.com/dshills/formrunner/internal/schema"
)

// Exit codes returned by formrunner commands
const (
	ExitCodeSuccess           = 0 // Success
	ExitCodeGeneralError      = 1 // General error (invalid arguments, config errors, missing credentials)
	ExitCodeSchemaError       = 2 // Form definition parsing/validation error
	ExitCodeValidationError   = 3 // A section failed field validation
	ExitCodeRegistrationError = 4 // The form service refused or failed registration
	ExitCodeFetchError        = 5 // The form could not be fetched
	ExitCodeSubmissionError   = 6 // The submitter failed
	ExitCodeFileSystemError   = 7 // File system error (missing file, permission denied)
	ExitCodeInternalError     = 8 // Internal error (terminal failure, etc.)
)

// ExitError wraps an error with an exit code
type ExitError struct {
	Code int
	Err  error
}

func (e ExitError) Error() string {
	return e.Err.Error()
}

func (e ExitError) Unwrap() error {
	return e.Err
}

// exitCodeFor classifies an error. An ExitError keeps its own code.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}

	var exitErr ExitError
	var regErr *portal.RegistrationError
	var fetchErr *portal.FetchError
	var pathErr *fs.PathError

	switch {
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, portal.ErrMissingCredentials):
		return ExitCodeGeneralError
	case errors.As(err, &regErr):
		return ExitCodeRegistrationError
	case errors.Is(err, schema.ErrInvalidForm):
		return ExitCodeSchemaError
	case errors.As(err, &pathErr):
		return ExitCodeFileSystemError
	case errors.As(err, &fetchErr):
		return ExitCodeFetchError
	default:
		return ExitCodeGeneralError
	}
}

// exitError attaches the classified exit code to err
func exitError(err error) error {
	if err == nil {
		return nil
	}
	var exitErr ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return ExitError{Code: exitCodeFor(err), Err: err}
}

// FormatError formats an error message for display
func FormatError(err error, command string) string {
	code := exitCodeFor(err)

	msg := fmt.Sprintf("Error: %s\n\n", getErrorType(code))
	msg += fmt.Sprintf("%s\n\n", err.Error())
	msg += fmt.Sprintf("For help, run: formrunner %s --help\n", command)

	return msg
}

func getErrorType(code int) string {
	switch code {
	case ExitCodeSchemaError:
		return "Invalid Form Definition"
	case ExitCodeValidationError:
		return "Validation Failed"
	case ExitCodeRegistrationError:
		return "Registration Failed"
	case ExitCodeFetchError:
		return "Form Unavailable"
	case ExitCodeSubmissionError:
		return "Submission Failed"
	case ExitCodeFileSystemError:
		return "File System Error"
	case ExitCodeInternalError:
		return "Internal Error"
	default:
		return "Error"
	}
}
