package portal

import (
	"errors"
	"fmt"
)

// ErrMissingCredentials is returned when the roll number or name is blank
var ErrMissingCredentials = errors.New("roll number and name are required")

const (
	msgMissingCredentials = "Please fill in all fields"
	msgFetchFailed        = "Failed to fetch form"
)

// RegistrationError reports that the form service refused or failed to
// register the user. The user may correct the details and try again.
type RegistrationError struct {
	RollNumber string
	Err        error
}

// Error implements the error interface
func (e *RegistrationError) Error() string {
	return fmt.Sprintf("registration failed for %s: %v", e.RollNumber, e.Err)
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// FetchError reports that the user's form could not be loaded
type FetchError struct {
	RollNumber string
	Err        error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to load form for %s: %v", e.RollNumber, e.Err)
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Notice is a short user-facing message describing the outcome of an action
type Notice struct {
	Title       string
	Body        string
	Destructive bool
}

// userMessager is implemented by errors that carry a display-safe message
type userMessager interface {
	UserMessage() string
}

// NoticeFor converts a login or submission error into a notice. A nil error
// yields the login success notice.
func NoticeFor(err error) Notice {
	if err == nil {
		return Notice{Title: "Success", Body: "Login successful"}
	}

	if errors.Is(err, ErrMissingCredentials) {
		return Notice{Title: "Error", Body: msgMissingCredentials, Destructive: true}
	}

	body := err.Error()
	var um userMessager
	var fetchErr *FetchError
	switch {
	case errors.As(err, &um):
		body = um.UserMessage()
	case errors.As(err, &fetchErr):
		// the cause is logged; a malformed form or local path means nothing to the user
		body = msgFetchFailed
	}

	var regErr *RegistrationError
	if errors.As(err, &regErr) {
		return Notice{Title: "Registration Failed", Body: body, Destructive: true}
	}

	return Notice{Title: "Error", Body: body, Destructive: true}
}

// SubmittedNotice is shown after a successful submission
func SubmittedNotice() Notice {
	return Notice{Title: "Form Submitted", Body: "Your form has been successfully submitted."}
}
