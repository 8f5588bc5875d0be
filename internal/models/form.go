// Package models defines the data types shared across formrunner: the form
// schema received from the remote service, answer values, users, and
// submissions.
package models

// FieldType identifies how a field is edited and validated
type FieldType string

// FieldType constants use the wire values sent by the form service
const (
	FieldTypeText     FieldType = "text"
	FieldTypePhone    FieldType = "tel"
	FieldTypeEmail    FieldType = "email"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeDate     FieldType = "date"
	FieldTypeDropdown FieldType = "dropdown"
	FieldTypeRadio    FieldType = "radio"
	FieldTypeCheckbox FieldType = "checkbox"
)

// FieldTypes lists every supported field type in display order
var FieldTypes = []FieldType{
	FieldTypeText,
	FieldTypePhone,
	FieldTypeEmail,
	FieldTypeTextarea,
	FieldTypeDate,
	FieldTypeDropdown,
	FieldTypeRadio,
	FieldTypeCheckbox,
}

// IsKnown reports whether t is one of the supported field types
func (t FieldType) IsKnown() bool {
	for _, known := range FieldTypes {
		if t == known {
			return true
		}
	}
	return false
}

// HasOptions reports whether fields of this type choose from a list of options
func (t FieldType) HasOptions() bool {
	return t == FieldTypeDropdown || t == FieldTypeRadio
}

// IsToggle reports whether the field holds a boolean
func (t FieldType) IsToggle() bool {
	return t == FieldTypeCheckbox
}

// DefaultRequiredMessage is shown for an unanswered required field
// unless the field overrides it.
const DefaultRequiredMessage = "This field is required"

// Option is one selectable value of a dropdown or radio field
type Option struct {
	Value      string `json:"value" yaml:"value"`
	Label      string `json:"label" yaml:"label"`
	DataTestID string `json:"dataTestId,omitempty" yaml:"dataTestId,omitempty"`
}

// FieldValidation carries per-field validation overrides
type FieldValidation struct {
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// FieldDefinition is the schema of one form input.
// MinLength and MaxLength of zero mean the constraint is unset.
type FieldDefinition struct {
	FieldID     string           `json:"fieldId" yaml:"fieldId"`
	Type        FieldType        `json:"type" yaml:"type"`
	Label       string           `json:"label" yaml:"label"`
	Placeholder string           `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Required    bool             `json:"required" yaml:"required"`
	MinLength   int              `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength   int              `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Options     []Option         `json:"options,omitempty" yaml:"options,omitempty"`
	Validation  *FieldValidation `json:"validation,omitempty" yaml:"validation,omitempty"`
	DataTestID  string           `json:"dataTestId,omitempty" yaml:"dataTestId,omitempty"`
}

// RequiredMessage returns the error shown when a required field is left empty
func (f FieldDefinition) RequiredMessage() string {
	if f.Validation != nil && f.Validation.Message != "" {
		return f.Validation.Message
	}
	return DefaultRequiredMessage
}

// OptionLabel returns the label for an option value, or the value itself
// when no option matches
func (f FieldDefinition) OptionLabel(value string) string {
	for _, opt := range f.Options {
		if opt.Value == value {
			return opt.Label
		}
	}
	return value
}

// SectionDefinition is an ordered group of fields shown as one step
type SectionDefinition struct {
	SectionID   int               `json:"sectionId,omitempty" yaml:"sectionId,omitempty"`
	Title       string            `json:"title" yaml:"title"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []FieldDefinition `json:"fields" yaml:"fields"`
}

// FormDefinition is the complete schema of a form
type FormDefinition struct {
	FormID    string              `json:"formId" yaml:"formId"`
	FormTitle string              `json:"formTitle" yaml:"formTitle"`
	Version   string              `json:"version" yaml:"version"`
	Sections  []SectionDefinition `json:"sections" yaml:"sections"`
}

// Field looks up a field definition by id across all sections
func (f *FormDefinition) Field(fieldID string) (FieldDefinition, bool) {
	for _, section := range f.Sections {
		for _, field := range section.Fields {
			if field.FieldID == fieldID {
				return field, true
			}
		}
	}
	return FieldDefinition{}, false
}

// FieldCount returns the number of fields across all sections
func (f *FormDefinition) FieldCount() int {
	count := 0
	for _, section := range f.Sections {
		count += len(section.Fields)
	}
	return count
}

// FormResponse is the envelope returned by the form service
type FormResponse struct {
	Form FormDefinition `json:"form" yaml:"form"`
}
