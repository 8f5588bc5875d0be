package schema

import (
	"context"
	"fmt"

	"github.com/dshills/formrunner/internal/models"
	"github.com/rs/zerolog/log"
)

// FileSource serves a form definition from a local file in place of the
// remote form service. Registration always succeeds.
type FileSource struct {
	Path string
}

// NewFileSource creates a file-backed form source
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// RegisterUser accepts every user without contacting a server
func (s *FileSource) RegisterUser(_ context.Context, user models.User) (*models.RegistrationResult, error) {
	log.Debug().
		Str("roll_number", user.RollNumber).
		Str("source", s.Path).
		Msg("Offline registration")

	return &models.RegistrationResult{Success: true, Message: "Registered offline"}, nil
}

// FetchForm loads the form definition file with the lenient validator, as a
// served form would be. The roll number is ignored.
func (s *FileSource) FetchForm(ctx context.Context, rollNumber string) (*models.FormResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	form, err := loadForm(s.Path, NewLenientValidator())
	if err != nil {
		return nil, fmt.Errorf("failed to load form from %s: %w", s.Path, err)
	}

	log.Debug().
		Str("roll_number", rollNumber).
		Str("form_id", form.FormID).
		Msg("Loaded form from file")

	return &models.FormResponse{Form: *form}, nil
}
