package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dshills/formrunner/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	// ErrNoSections is returned when a session is created for a form without sections
	ErrNoSections = errors.New("form has no sections")
	// ErrNotLastSection is returned by Submit when the final section is not active
	ErrNotLastSection = errors.New("submit is only allowed on the last section")
)

// Submitter receives the answers of a completed form
type Submitter interface {
	Submit(ctx context.Context, submission models.Submission) error
}

// Session holds the state of one user working through one form: the schema,
// the answers, the active section, and the validation state of that section.
// A session is owned by a single goroutine and is not safe for concurrent use.
type Session struct {
	ID   string
	User models.User
	Form *models.FormDefinition

	answers     *AnswerStore
	nav         *Navigator
	validation  ValidationState
	submitter   Submitter
	submissions int
	now         func() time.Time
}

// NewSession creates a session positioned on the first section, with that
// section's defaults seeded and validated
func NewSession(user models.User, form *models.FormDefinition, submitter Submitter) (*Session, error) {
	if form == nil || len(form.Sections) == 0 {
		return nil, ErrNoSections
	}

	s := &Session{
		ID:        uuid.New().String(),
		User:      user,
		Form:      form,
		answers:   NewAnswerStore(),
		nav:       NewNavigator(len(form.Sections)),
		submitter: submitter,
		now:       time.Now,
	}
	s.activate()

	log.Debug().
		Str("session_id", s.ID).
		Str("form_id", form.FormID).
		Int("sections", len(form.Sections)).
		Msg("Session started")

	return s, nil
}

// Section returns the active section definition
func (s *Session) Section() models.SectionDefinition {
	return s.Form.Sections[s.nav.Index()]
}

// Navigator exposes the navigation state
func (s *Session) Navigator() *Navigator {
	return s.nav
}

// Validation returns the validation state of the active section
func (s *Session) Validation() ValidationState {
	return s.validation
}

// Answers returns a copy of every answer recorded so far
func (s *Session) Answers() map[string]models.AnswerValue {
	return s.answers.Snapshot()
}

// Value returns the current value of a field, or its default when unset
func (s *Session) Value(fieldID string) models.AnswerValue {
	if v, ok := s.answers.Get(fieldID); ok {
		return v
	}
	if field, ok := s.Form.Field(fieldID); ok {
		return DefaultValue(field)
	}
	return models.AnswerValue{}
}

// Submissions returns how many times the form has been submitted
func (s *Session) Submissions() int {
	return s.submissions
}

// Set records a value and revalidates the active section before returning
func (s *Session) Set(fieldID string, value models.AnswerValue) {
	s.answers.Set(fieldID, value)
	s.revalidate()
}

// Advance moves to the next section if the active one is valid. When it is
// not, validation is recomputed and the index is left unchanged.
func (s *Session) Advance() bool {
	if !s.nav.Advance(s.validation.Valid) {
		s.revalidate()
		return false
	}
	s.activate()

	log.Debug().
		Str("session_id", s.ID).
		Int("section", s.nav.Index()).
		Msg("Advanced to next section")
	return true
}

// Retreat moves to the previous section without validating the one left behind
func (s *Session) Retreat() bool {
	if !s.nav.Retreat() {
		return false
	}
	s.activate()

	log.Debug().
		Str("session_id", s.ID).
		Int("section", s.nav.Index()).
		Msg("Returned to previous section")
	return true
}

// Submit hands all answers to the submitter when the last section is active
// and valid. It reports whether a submission was made; an invalid section is
// not an error. Navigation state is kept after submitting.
func (s *Session) Submit(ctx context.Context) (bool, error) {
	if !s.nav.IsLast() {
		return false, ErrNotLastSection
	}
	if !s.validation.Valid {
		s.revalidate()
		return false, nil
	}

	submission := models.Submission{
		SubmissionID: uuid.New().String(),
		SessionID:    s.ID,
		FormID:       s.Form.FormID,
		Version:      s.Form.Version,
		User:         s.User,
		Answers:      s.answers.Snapshot(),
		SubmittedAt:  s.now().UTC(),
	}

	if s.submitter != nil {
		if err := s.submitter.Submit(ctx, submission); err != nil {
			return false, fmt.Errorf("failed to submit form %s: %w", s.Form.FormID, err)
		}
	}
	s.submissions++

	log.Info().
		Str("session_id", s.ID).
		Str("submission_id", submission.SubmissionID).
		Int("answers", len(submission.Answers)).
		Msg("Form submitted")

	return true, nil
}

// activate seeds defaults for the active section and validates it
func (s *Session) activate() {
	s.answers.Seed(s.Section())
	s.revalidate()
}

func (s *Session) revalidate() {
	s.validation = ValidateSection(s.Section(), s.answers)
}
