// Package engine implements the dynamic form engine: field and section
// validation, the answer store, section navigation, and the session that
// ties them together.
package engine

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dshills/formrunner/internal/models"
)

// Error messages produced by the field validator
const (
	msgMinLength    = "Minimum length is %d characters"
	msgMaxLength    = "Maximum length is %d characters"
	MsgInvalidEmail = "Please enter a valid email address"
	MsgInvalidPhone = "Please enter a valid phone number"
)

// These patterns are deliberately loose approximations and must stay that way.
var (
	emailPattern = regexp.MustCompile(`^[\w.-]+@([\w-]+\.)+[\w-]{2,4}$`)
	phonePattern = regexp.MustCompile(`^\d{10,15}$`)
)

// ErrAnswerType is returned by ConvertAnswer when a value cannot represent
// the field's type
var ErrAnswerType = errors.New("answer does not match field type")

// fieldKind is the validation strategy for one family of field types
type fieldKind interface {
	// defaultValue is seeded into the answer store on section activation
	defaultValue() models.AnswerValue
	// validate returns an error message, or "" when the value is acceptable
	validate(field models.FieldDefinition, value models.AnswerValue) string
	// convert maps a value from outside the engine onto the kind's variant
	convert(value models.AnswerValue) (models.AnswerValue, error)
}

// textKind validates any text-like field with an optional format check
// applied after the length rules
type textKind struct {
	format func(string) string
}

func (textKind) defaultValue() models.AnswerValue {
	return models.TextValue("")
}

func (textKind) convert(value models.AnswerValue) (models.AnswerValue, error) {
	if value.Kind() == models.AnswerList {
		return models.AnswerValue{}, fmt.Errorf("%w: expected text, got a list", ErrAnswerType)
	}
	return models.TextValue(value.Text()), nil
}

func (k textKind) validate(field models.FieldDefinition, value models.AnswerValue) string {
	text := value.Text()
	trimmed := strings.TrimSpace(text)

	if field.Required && trimmed == "" {
		return field.RequiredMessage()
	}
	if field.MinLength > 0 && utf8.RuneCountInString(trimmed) < field.MinLength {
		return fmt.Sprintf(msgMinLength, field.MinLength)
	}
	if field.MaxLength > 0 && utf8.RuneCountInString(text) > field.MaxLength {
		return fmt.Sprintf(msgMaxLength, field.MaxLength)
	}
	if k.format != nil && text != "" {
		return k.format(text)
	}
	return ""
}

// toggleKind validates boolean fields. Only the required rule applies.
type toggleKind struct{}

func (toggleKind) defaultValue() models.AnswerValue {
	return models.BoolValue(false)
}

func (toggleKind) convert(value models.AnswerValue) (models.AnswerValue, error) {
	switch value.Kind() {
	case models.AnswerBool:
		return value, nil
	case models.AnswerList:
		return models.AnswerValue{}, fmt.Errorf("%w: expected true or false, got a list", ErrAnswerType)
	}

	text := strings.TrimSpace(value.Text())
	if text == "" {
		return models.BoolValue(false), nil
	}
	b, err := strconv.ParseBool(text)
	if err != nil {
		return models.AnswerValue{}, fmt.Errorf("%w: expected true or false, got %q", ErrAnswerType, text)
	}
	return models.BoolValue(b), nil
}

func (toggleKind) validate(field models.FieldDefinition, value models.AnswerValue) string {
	if !field.Required {
		return ""
	}
	// Only an explicit false fails; non-boolean values are not inspected.
	if checked, isBool := value.Bool(); isBool && !checked {
		return field.RequiredMessage()
	}
	return ""
}

func checkEmail(s string) string {
	if !emailPattern.MatchString(s) {
		return MsgInvalidEmail
	}
	return ""
}

func checkPhone(s string) string {
	if !phonePattern.MatchString(s) {
		return MsgInvalidPhone
	}
	return ""
}

var (
	plainText = textKind{}
	kinds     = map[models.FieldType]fieldKind{
		models.FieldTypeText:     plainText,
		models.FieldTypeTextarea: plainText,
		models.FieldTypeDate:     plainText,
		models.FieldTypeDropdown: plainText,
		models.FieldTypeRadio:    plainText,
		models.FieldTypeEmail:    textKind{format: checkEmail},
		models.FieldTypePhone:    textKind{format: checkPhone},
		models.FieldTypeCheckbox: toggleKind{},
	}
)

// kindOf returns the strategy for a field type. Unknown types are treated as
// plain text.
func kindOf(t models.FieldType) fieldKind {
	if k, ok := kinds[t]; ok {
		return k
	}
	return plainText
}

// DefaultValue returns the value a field starts with before any edit:
// false for toggles, empty text for everything else
func DefaultValue(field models.FieldDefinition) models.AnswerValue {
	return kindOf(field.Type).defaultValue()
}

// ConvertAnswer coerces a value that did not come from an editor, such as an
// answer file entry, to the variant the field stores. Text parses into a
// boolean for toggles and booleans render as text for text fields. Lists are
// rejected for both.
func ConvertAnswer(field models.FieldDefinition, value models.AnswerValue) (models.AnswerValue, error) {
	converted, err := kindOf(field.Type).convert(value)
	if err != nil {
		return models.AnswerValue{}, fmt.Errorf("field %q: %w", field.FieldID, err)
	}
	return converted, nil
}

// ValidateField checks a single value against its field definition and
// returns the first failing rule's message, or "" when the value is valid.
func ValidateField(field models.FieldDefinition, value models.AnswerValue) string {
	return kindOf(field.Type).validate(field, value)
}
