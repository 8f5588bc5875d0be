package models

import (
	"strings"
	"time"
)

// User identifies the person filling a form
type User struct {
	RollNumber string `json:"rollNumber" yaml:"rollNumber"`
	Name       string `json:"name" yaml:"name"`
}

// Complete reports whether both credentials are non-blank
func (u User) Complete() bool {
	return strings.TrimSpace(u.RollNumber) != "" && strings.TrimSpace(u.Name) != ""
}

// RegistrationResult is the outcome of registering a user with the form service
type RegistrationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Submission is everything handed to a submitter when a form is completed
type Submission struct {
	SubmissionID string                 `json:"submissionId"`
	SessionID    string                 `json:"sessionId"`
	FormID       string                 `json:"formId"`
	Version      string                 `json:"version"`
	User         User                   `json:"user"`
	Answers      map[string]AnswerValue `json:"answers"`
	SubmittedAt  time.Time              `json:"submittedAt"`
}
