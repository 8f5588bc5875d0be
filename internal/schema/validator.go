package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/formrunner/internal/models"
)

// ErrInvalidForm is matched by every *SchemaError
var ErrInvalidForm = errors.New("invalid form definition")

// Issue is one structural problem found in a form definition
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// SchemaError reports every structural problem found in a form definition
type SchemaError struct {
	FormID string
	Issues []Issue
}

// Error implements the error interface
func (e *SchemaError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	if e.FormID == "" {
		return fmt.Sprintf("invalid form definition: %s", strings.Join(parts, "; "))
	}
	return fmt.Sprintf("invalid form definition %q: %s", e.FormID, strings.Join(parts, "; "))
}

// Is makes errors.Is(err, ErrInvalidForm) match
func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidForm
}

// Validator checks form definitions for structural problems
type Validator struct {
	// AllowUnknownTypes accepts field types outside the supported set.
	// The engine validates such fields as plain text.
	AllowUnknownTypes bool

	// Lenient limits validation to what a session depends on: at least one
	// section, unique non-empty field ids and options on choice fields.
	// Unknown types, duplicate option values and inverted lengths pass.
	Lenient bool
}

// NewValidator creates a new validator with default settings
func NewValidator() *Validator {
	return &Validator{}
}

// NewLenientValidator creates a validator for forms served to a user, which
// are rendered as long as a session can be built on them
func NewLenientValidator() *Validator {
	return &Validator{AllowUnknownTypes: true, Lenient: true}
}

// Validate runs every check and returns a *SchemaError listing all issues,
// or nil when the definition is sound
func (v *Validator) Validate(form *models.FormDefinition) error {
	if form == nil {
		return &SchemaError{Issues: []Issue{{Message: "form definition is missing"}}}
	}

	checks := []func(*models.FormDefinition) []Issue{
		checkSections,
		checkFieldIDs,
		v.checkOptions,
	}
	if !v.Lenient {
		checks = append(checks, v.checkFieldTypes, checkLengths)
	}

	var issues []Issue
	for _, check := range checks {
		issues = append(issues, check(form)...)
	}

	if len(issues) > 0 {
		return &SchemaError{FormID: form.FormID, Issues: issues}
	}
	return nil
}

func fieldPath(si, fi int, field models.FieldDefinition) string {
	if field.FieldID == "" {
		return fmt.Sprintf("sections[%d].fields[%d]", si, fi)
	}
	return fmt.Sprintf("sections[%d].fields[%d](%s)", si, fi, field.FieldID)
}

// checkSections requires at least one section
func checkSections(form *models.FormDefinition) []Issue {
	if len(form.Sections) == 0 {
		return []Issue{{Path: "sections", Message: "form must have at least one section"}}
	}
	return nil
}

// checkFieldIDs requires non-empty ids that are unique across the form
func checkFieldIDs(form *models.FormDefinition) []Issue {
	var issues []Issue
	seen := make(map[string]string)

	for si, section := range form.Sections {
		for fi, field := range section.Fields {
			path := fieldPath(si, fi, field)
			if strings.TrimSpace(field.FieldID) == "" {
				issues = append(issues, Issue{Path: path, Message: "fieldId is required"})
				continue
			}
			if first, dup := seen[field.FieldID]; dup {
				issues = append(issues, Issue{
					Path:    path,
					Message: fmt.Sprintf("duplicate fieldId %q (first defined at %s)", field.FieldID, first),
				})
				continue
			}
			seen[field.FieldID] = path
		}
	}

	return issues
}

func (v *Validator) checkFieldTypes(form *models.FormDefinition) []Issue {
	if v.AllowUnknownTypes {
		return nil
	}

	var issues []Issue
	for si, section := range form.Sections {
		for fi, field := range section.Fields {
			if !field.Type.IsKnown() {
				issues = append(issues, Issue{
					Path:    fieldPath(si, fi, field),
					Message: fmt.Sprintf("unsupported field type %q", field.Type),
				})
			}
		}
	}
	return issues
}

// checkOptions requires options on choice fields and, unless lenient,
// unique option values
func (v *Validator) checkOptions(form *models.FormDefinition) []Issue {
	var issues []Issue

	for si, section := range form.Sections {
		for fi, field := range section.Fields {
			if !field.Type.HasOptions() {
				continue
			}
			path := fieldPath(si, fi, field)
			if len(field.Options) == 0 {
				issues = append(issues, Issue{Path: path, Message: fmt.Sprintf("%s field must define options", field.Type)})
				continue
			}
			if v.Lenient {
				continue
			}
			values := make(map[string]bool, len(field.Options))
			for _, opt := range field.Options {
				if values[opt.Value] {
					issues = append(issues, Issue{Path: path, Message: fmt.Sprintf("duplicate option value %q", opt.Value)})
				}
				values[opt.Value] = true
			}
		}
	}

	return issues
}

// checkLengths rejects negative or inverted length constraints
func checkLengths(form *models.FormDefinition) []Issue {
	var issues []Issue

	for si, section := range form.Sections {
		for fi, field := range section.Fields {
			path := fieldPath(si, fi, field)
			if field.MinLength < 0 || field.MaxLength < 0 {
				issues = append(issues, Issue{Path: path, Message: "length constraints must not be negative"})
				continue
			}
			if field.MinLength > 0 && field.MaxLength > 0 && field.MinLength > field.MaxLength {
				issues = append(issues, Issue{
					Path:    path,
					Message: fmt.Sprintf("minLength %d exceeds maxLength %d", field.MinLength, field.MaxLength),
				})
			}
		}
	}

	return issues
}
