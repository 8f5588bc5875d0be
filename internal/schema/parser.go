// Package schema loads form definitions and answer files from disk and
// checks form definitions for structural problems.
package schema

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dshills/formrunner/internal/models"
)

// Format is the encoding of a form or answer document
type Format string

// Format constants define the supported document encodings
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath infers the document format from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("cannot infer format of %q: expected .json, .yaml or .yml", path)
	}
}

// Parser defines the interface for form definition parsers
type Parser interface {
	// Parse decodes a form definition. Both the {"form": ...} envelope and a
	// bare definition are accepted.
	Parse(content string) (*models.FormDefinition, error)
}

// NewParser creates a parser for the given format
func NewParser(format Format) (Parser, error) {
	switch format {
	case FormatJSON:
		return &JSONParser{}, nil
	case FormatYAML:
		return &YAMLParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// ParseForm is a convenience function that creates a parser and parses content
func ParseForm(format Format, content string) (*models.FormDefinition, error) {
	parser, err := NewParser(format)
	if err != nil {
		return nil, fmt.Errorf("failed to create parser: %w", err)
	}

	form, err := parser.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse form definition: %w", err)
	}

	return form, nil
}

// ParseAndValidate parses a form definition and checks its structure
func ParseAndValidate(format Format, content string) (*models.FormDefinition, error) {
	form, err := ParseForm(format, content)
	if err != nil {
		return nil, err
	}

	if err := NewValidator().Validate(form); err != nil {
		return nil, err
	}

	return form, nil
}

// envelope lets one decode pass handle both document shapes
type envelope struct {
	Form                  *models.FormDefinition `json:"form" yaml:"form"`
	models.FormDefinition `yaml:",inline"`
}

func (e *envelope) definition() *models.FormDefinition {
	if e.Form != nil {
		return e.Form
	}
	form := e.FormDefinition
	return &form
}
