package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dshills/formrunner/internal/models"
)

// ParseAnswers decodes an answer file: a flat mapping of field id to a
// string, boolean, or list of strings
func ParseAnswers(format Format, content string) (map[string]models.AnswerValue, error) {
	if strings.TrimSpace(content) == "" {
		return map[string]models.AnswerValue{}, nil
	}

	answers := make(map[string]models.AnswerValue)
	switch format {
	case FormatJSON:
		if err := json.Unmarshal([]byte(content), &answers); err != nil {
			return nil, fmt.Errorf("failed to parse json answers: %w", err)
		}
	case FormatYAML:
		if err := decodeYAML(content, &answers); err != nil {
			return nil, fmt.Errorf("failed to parse yaml answers: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	return answers, nil
}

// LoadAnswers reads and decodes an answer file, inferring its format from
// the extension
func LoadAnswers(path string) (map[string]models.AnswerValue, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read answers file: %w", err)
	}

	return ParseAnswers(format, string(data))
}

// LoadForm reads, decodes, and validates a form definition file
func LoadForm(path string) (*models.FormDefinition, error) {
	return loadForm(path, NewValidator())
}

func loadForm(path string, validator *Validator) (*models.FormDefinition, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read form file: %w", err)
	}

	form, err := ParseForm(format, string(data))
	if err != nil {
		return nil, err
	}
	if err := validator.Validate(form); err != nil {
		return nil, err
	}
	return form, nil
}
