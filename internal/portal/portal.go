// Package portal implements the login flow: it checks credentials, registers
// the user with the form service, fetches the user's form, and opens a
// session for it.
package portal

import (
	"context"
	"fmt"
	"strings"

	"github.com/dshills/formrunner/internal/engine"
	"github.com/dshills/formrunner/internal/models"
	"github.com/dshills/formrunner/internal/schema"
	"github.com/rs/zerolog/log"
)

// Service is the remote (or offline) form service
type Service interface {
	RegisterUser(ctx context.Context, user models.User) (*models.RegistrationResult, error)
	FetchForm(ctx context.Context, rollNumber string) (*models.FormResponse, error)
}

// Portal opens sessions for users
type Portal struct {
	service   Service
	submitter engine.Submitter
	validator *schema.Validator
}

// New creates a portal. Sessions it opens submit through submitter.
func New(service Service, submitter engine.Submitter) *Portal {
	return &Portal{
		service:   service,
		submitter: submitter,
		validator: schema.NewLenientValidator(),
	}
}

// Login registers the user, fetches their form, and returns a new session.
// Failures come back as ErrMissingCredentials, *RegistrationError, or
// *FetchError; none of them leave partial state behind.
func (p *Portal) Login(ctx context.Context, user models.User) (*engine.Session, error) {
	if !user.Complete() {
		return nil, ErrMissingCredentials
	}
	user = models.User{
		RollNumber: strings.TrimSpace(user.RollNumber),
		Name:       strings.TrimSpace(user.Name),
	}

	log.Info().Str("roll_number", user.RollNumber).Msg("Logging in")

	if _, err := p.service.RegisterUser(ctx, user); err != nil {
		log.Warn().Err(err).Str("roll_number", user.RollNumber).Msg("Registration failed")
		return nil, &RegistrationError{RollNumber: user.RollNumber, Err: err}
	}

	resp, err := p.service.FetchForm(ctx, user.RollNumber)
	if err != nil {
		log.Warn().Err(err).Str("roll_number", user.RollNumber).Msg("Form fetch failed")
		return nil, &FetchError{RollNumber: user.RollNumber, Err: err}
	}

	form := resp.Form
	if err := p.validator.Validate(&form); err != nil {
		log.Warn().Err(err).Str("form_id", form.FormID).Msg("Fetched form is malformed")
		return nil, &FetchError{RollNumber: user.RollNumber, Err: err}
	}

	session, err := engine.NewSession(user, &form, p.submitter)
	if err != nil {
		return nil, &FetchError{RollNumber: user.RollNumber, Err: fmt.Errorf("failed to open session: %w", err)}
	}

	log.Info().
		Str("session_id", session.ID).
		Str("form_id", form.FormID).
		Msg("Login successful")

	return session, nil
}
