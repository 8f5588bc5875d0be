// Package submit provides the collaborators that receive completed forms.
package submit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/dshills/formrunner/internal/engine"
	"github.com/dshills/formrunner/internal/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Mode selects a submitter implementation
type Mode string

// Mode constants
const (
	ModeLog  Mode = "log"
	ModeFile Mode = "file"
)

// Config selects and configures a submitter
type Config struct {
	Mode Mode
	// Output is the file written in file mode
	Output string
}

// New creates the submitter selected by cfg
func New(cfg Config) (engine.Submitter, error) {
	switch cfg.Mode {
	case ModeLog, "":
		return NewLogSubmitter(log.Logger), nil
	case ModeFile:
		if cfg.Output == "" {
			return nil, fmt.Errorf("file submitter requires an output path")
		}
		return NewFileSubmitter(cfg.Output), nil
	default:
		return nil, fmt.Errorf("unknown submit mode: %s", cfg.Mode)
	}
}

// LogSubmitter records submissions as structured log events
type LogSubmitter struct {
	logger zerolog.Logger
}

// NewLogSubmitter creates a submitter that logs to logger
func NewLogSubmitter(logger zerolog.Logger) *LogSubmitter {
	return &LogSubmitter{logger: logger}
}

// Submit logs the submission with one field per answer
func (s *LogSubmitter) Submit(_ context.Context, sub models.Submission) error {
	ids := make([]string, 0, len(sub.Answers))
	for id := range sub.Answers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	answers := zerolog.Dict()
	for _, id := range ids {
		v := sub.Answers[id]
		switch v.Kind() {
		case models.AnswerBool:
			b, _ := v.Bool()
			answers = answers.Bool(id, b)
		case models.AnswerList:
			answers = answers.Strs(id, v.List())
		default:
			answers = answers.Str(id, v.Text())
		}
	}

	s.logger.Info().
		Str("submission_id", sub.SubmissionID).
		Str("session_id", sub.SessionID).
		Str("form_id", sub.FormID).
		Str("version", sub.Version).
		Str("roll_number", sub.User.RollNumber).
		Time("submitted_at", sub.SubmittedAt).
		Dict("answers", answers).
		Msg("Form submitted with data")

	return nil
}

// FileSubmitter writes each submission to a JSON file, replacing the previous
// one atomically
type FileSubmitter struct {
	path string
	last ChangeSummary
}

// NewFileSubmitter creates a submitter writing to path
func NewFileSubmitter(path string) *FileSubmitter {
	return &FileSubmitter{path: path}
}

// Path returns the output file
func (s *FileSubmitter) Path() string {
	return s.path
}

// LastChanges returns the diff between the latest submission and the one it
// replaced. It is empty for the first submission.
func (s *FileSubmitter) LastChanges() ChangeSummary {
	return s.last
}

// Submit writes the submission, logging which answers changed since the
// previous submission in the same file
func (s *FileSubmitter) Submit(ctx context.Context, sub models.Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	previous, err := s.readPrevious()
	if err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("Ignoring unreadable previous submission")
	}

	data, err := json.MarshalIndent(sub, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode submission: %w", err)
	}
	data = append(data, '\n')

	if err := atomicWrite(s.path, data); err != nil {
		return fmt.Errorf("failed to write submission: %w", err)
	}

	s.last = ChangeSummary{}
	if previous != nil && previous.FormID == sub.FormID {
		s.last = DiffAnswers(previous.Answers, sub.Answers)
		if !s.last.Empty() {
			changes := make([]string, len(s.last.Changes))
			for i, c := range s.last.Changes {
				changes[i] = c.String()
			}
			log.Debug().Strs("changes", changes).Msg("Answers changed since previous submission")
		}
	}

	log.Info().
		Str("path", s.path).
		Str("submission_id", sub.SubmissionID).
		Int("changed_fields", len(s.last.Fields)).
		Msg("Submission written")

	return nil
}

func (s *FileSubmitter) readPrevious() (*models.Submission, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var prev models.Submission
	if err := json.Unmarshal(data, &prev); err != nil {
		return nil, fmt.Errorf("failed to decode previous submission: %w", err)
	}
	return &prev, nil
}
