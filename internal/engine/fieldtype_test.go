package engine

import (
	"strings"
	"testing"

	"github.com/dshills/formrunner/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestValidateFieldRequired(t *testing.T) {
	tests := []struct {
		name    string
		field   models.FieldDefinition
		value   models.AnswerValue
		wantErr string
	}{
		{
			name:    "empty required text",
			field:   models.FieldDefinition{FieldID: "name", Type: models.FieldTypeText, Required: true},
			value:   models.TextValue(""),
			wantErr: models.DefaultRequiredMessage,
		},
		{
			name:    "whitespace only required text",
			field:   models.FieldDefinition{FieldID: "name", Type: models.FieldTypeText, Required: true},
			value:   models.TextValue("   \t"),
			wantErr: models.DefaultRequiredMessage,
		},
		{
			name:  "filled required text",
			field: models.FieldDefinition{FieldID: "name", Type: models.FieldTypeText, Required: true},
			value: models.TextValue("Alice"),
		},
		{
			name: "custom required message",
			field: models.FieldDefinition{
				FieldID:    "dob",
				Type:       models.FieldTypeDate,
				Required:   true,
				Validation: &models.FieldValidation{Message: "Date of birth is required"},
			},
			value:   models.TextValue(""),
			wantErr: "Date of birth is required",
		},
		{
			name:  "optional empty text",
			field: models.FieldDefinition{FieldID: "bio", Type: models.FieldTypeTextarea},
			value: models.TextValue(""),
		},
		{
			name:    "required dropdown without selection",
			field:   models.FieldDefinition{FieldID: "dept", Type: models.FieldTypeDropdown, Required: true},
			value:   models.TextValue(""),
			wantErr: models.DefaultRequiredMessage,
		},
		{
			name:  "required radio with selection",
			field: models.FieldDefinition{FieldID: "gender", Type: models.FieldTypeRadio, Required: true},
			value: models.TextValue("female"),
		},
		{
			name:    "required checkbox unchecked",
			field:   models.FieldDefinition{FieldID: "agree", Type: models.FieldTypeCheckbox, Required: true},
			value:   models.BoolValue(false),
			wantErr: models.DefaultRequiredMessage,
		},
		{
			name: "required checkbox unchecked with custom message",
			field: models.FieldDefinition{
				FieldID:    "agree",
				Type:       models.FieldTypeCheckbox,
				Required:   true,
				Validation: &models.FieldValidation{Message: "You must accept the terms"},
			},
			value:   models.BoolValue(false),
			wantErr: "You must accept the terms",
		},
		{
			name:  "required checkbox checked",
			field: models.FieldDefinition{FieldID: "agree", Type: models.FieldTypeCheckbox, Required: true},
			value: models.BoolValue(true),
		},
		{
			name:  "optional checkbox unchecked",
			field: models.FieldDefinition{FieldID: "news", Type: models.FieldTypeCheckbox},
			value: models.BoolValue(false),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantErr, ValidateField(tt.field, tt.value))
		})
	}
}

func TestValidateFieldLength(t *testing.T) {
	minField := models.FieldDefinition{FieldID: "code", Type: models.FieldTypeText, MinLength: 3}
	maxField := models.FieldDefinition{FieldID: "code", Type: models.FieldTypeText, MaxLength: 5}

	assert.Equal(t, "Minimum length is 3 characters", ValidateField(minField, models.TextValue("ab")))
	assert.Equal(t, "Minimum length is 3 characters", ValidateField(minField, models.TextValue("  ab  ")))
	assert.Equal(t, "", ValidateField(minField, models.TextValue("abc")))

	assert.Equal(t, "", ValidateField(maxField, models.TextValue("abcde")))
	assert.Equal(t, "Maximum length is 5 characters", ValidateField(maxField, models.TextValue("abcdef")))
	// max length counts the untrimmed value
	assert.Equal(t, "Maximum length is 5 characters", ValidateField(maxField, models.TextValue("abcd  ")))
	// runes, not bytes
	assert.Equal(t, "", ValidateField(maxField, models.TextValue("héllo")))
}

func TestValidateFieldRuleOrder(t *testing.T) {
	field := models.FieldDefinition{
		FieldID:   "email",
		Type:      models.FieldTypeEmail,
		Required:  true,
		MinLength: 8,
		MaxLength: 12,
	}

	assert.Equal(t, models.DefaultRequiredMessage, ValidateField(field, models.TextValue(" ")))
	assert.Equal(t, "Minimum length is 8 characters", ValidateField(field, models.TextValue("a@b")))
	assert.Equal(t, "Maximum length is 12 characters", ValidateField(field, models.TextValue("abcdefghijklm")))
	assert.Equal(t, MsgInvalidEmail, ValidateField(field, models.TextValue("abcdefghij")))
	assert.Equal(t, "", ValidateField(field, models.TextValue("al@exam.com")))
}

func TestValidateFieldEmail(t *testing.T) {
	field := models.FieldDefinition{FieldID: "email", Type: models.FieldTypeEmail}

	tests := []struct {
		value string
		valid bool
	}{
		{"a@b.co", true},
		{"first.last@mail.example.org", true},
		{"user_name-1@sub-domain.info", true},
		{"a@b", false},
		{"not-an-email", false},
		{"a@b.toolong", false},
		{"a b@c.de", false},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			msg := ValidateField(field, models.TextValue(tt.value))
			if tt.valid {
				assert.Empty(t, msg)
			} else {
				assert.Equal(t, MsgInvalidEmail, msg)
			}
		})
	}
}

func TestValidateFieldPhone(t *testing.T) {
	field := models.FieldDefinition{FieldID: "phone", Type: models.FieldTypePhone}

	tests := []struct {
		value string
		valid bool
	}{
		{"1234567890", true},
		{strings.Repeat("9", 15), true},
		{"12345", false},
		{"12345678901234567", false},
		{"+11234567890", false},
		{"123-456-7890", false},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			msg := ValidateField(field, models.TextValue(tt.value))
			if tt.valid {
				assert.Empty(t, msg)
			} else {
				assert.Equal(t, MsgInvalidPhone, msg)
			}
		})
	}
}

func TestValidateFieldUnknownTypeIsText(t *testing.T) {
	field := models.FieldDefinition{FieldID: "x", Type: models.FieldType("slider"), Required: true}
	assert.Equal(t, models.DefaultRequiredMessage, ValidateField(field, models.TextValue("")))
	assert.Equal(t, "", ValidateField(field, models.TextValue("5")))
}

func TestDefaultValue(t *testing.T) {
	for _, ft := range models.FieldTypes {
		v := DefaultValue(models.FieldDefinition{Type: ft})
		if ft == models.FieldTypeCheckbox {
			b, ok := v.Bool()
			assert.True(t, ok, ft)
			assert.False(t, b, ft)
			continue
		}
		assert.Equal(t, models.AnswerText, v.Kind(), ft)
		assert.Equal(t, "", v.Text(), ft)
	}
}

func TestConvertAnswer(t *testing.T) {
	toggle := models.FieldDefinition{FieldID: "agree", Type: models.FieldTypeCheckbox, Required: true}
	text := models.FieldDefinition{FieldID: "name", Type: models.FieldTypeText, Required: true, MinLength: 3}

	tests := []struct {
		name    string
		field   models.FieldDefinition
		value   models.AnswerValue
		want    models.AnswerValue
		wantErr bool
	}{
		{"toggle keeps bool", toggle, models.BoolValue(true), models.BoolValue(true), false},
		{"toggle parses false", toggle, models.TextValue("false"), models.BoolValue(false), false},
		{"toggle parses padded true", toggle, models.TextValue(" TRUE "), models.BoolValue(true), false},
		{"toggle empty text is false", toggle, models.TextValue(""), models.BoolValue(false), false},
		{"toggle rejects other text", toggle, models.TextValue("maybe"), models.AnswerValue{}, true},
		{"toggle rejects list", toggle, models.ListValue("true"), models.AnswerValue{}, true},
		{"text renders bool", text, models.BoolValue(true), models.TextValue("true"), false},
		{"text keeps text", text, models.TextValue("Alice"), models.TextValue("Alice"), false},
		{"text rejects list", text, models.ListValue("a", "b"), models.AnswerValue{}, true},
		{"unknown type is text", models.FieldDefinition{FieldID: "n", Type: "number"}, models.TextValue("7"), models.TextValue("7"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConvertAnswer(tt.field, tt.value)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrAnswerType)
				assert.Contains(t, err.Error(), tt.field.FieldID)
				return
			}
			assert.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v (%s)", got, got.Kind())
		})
	}
}

func TestConvertedStringFalseFailsRequiredToggle(t *testing.T) {
	toggle := models.FieldDefinition{FieldID: "agree", Type: models.FieldTypeCheckbox, Required: true}
	name := models.FieldDefinition{FieldID: "name", Type: models.FieldTypeText, Required: true, MinLength: 3}

	agree, err := ConvertAnswer(toggle, models.TextValue("false"))
	assert.NoError(t, err)
	assert.Equal(t, models.DefaultRequiredMessage, ValidateField(toggle, agree))

	short, err := ConvertAnswer(name, models.BoolValue(true))
	assert.NoError(t, err)
	assert.Equal(t, "", ValidateField(name, short), "\"true\" meets a minimum of 3")
}
