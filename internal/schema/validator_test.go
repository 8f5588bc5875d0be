package schema

import (
	"errors"
	"testing"

	"github.com/dshills/formrunner/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() *models.FormDefinition {
	return &models.FormDefinition{
		FormID: "f1",
		Sections: []models.SectionDefinition{
			{
				Title: "One",
				Fields: []models.FieldDefinition{
					{FieldID: "name", Type: models.FieldTypeText, MinLength: 2, MaxLength: 10},
					{FieldID: "dept", Type: models.FieldTypeDropdown, Options: []models.Option{{Value: "a", Label: "A"}}},
				},
			},
		},
	}
}

func TestValidatorAcceptsValidForm(t *testing.T) {
	assert.NoError(t, NewValidator().Validate(validForm()))
}

func TestValidatorIssues(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*models.FormDefinition)
		errContains string
	}{
		{
			name:        "no sections",
			mutate:      func(f *models.FormDefinition) { f.Sections = nil },
			errContains: "at least one section",
		},
		{
			name: "duplicate field id across sections",
			mutate: func(f *models.FormDefinition) {
				f.Sections = append(f.Sections, models.SectionDefinition{
					Fields: []models.FieldDefinition{{FieldID: "name", Type: models.FieldTypeText}},
				})
			},
			errContains: `duplicate fieldId "name"`,
		},
		{
			name:        "blank field id",
			mutate:      func(f *models.FormDefinition) { f.Sections[0].Fields[0].FieldID = " " },
			errContains: "fieldId is required",
		},
		{
			name:        "unknown type",
			mutate:      func(f *models.FormDefinition) { f.Sections[0].Fields[0].Type = "slider" },
			errContains: `unsupported field type "slider"`,
		},
		{
			name:        "dropdown without options",
			mutate:      func(f *models.FormDefinition) { f.Sections[0].Fields[1].Options = nil },
			errContains: "dropdown field must define options",
		},
		{
			name: "duplicate option value",
			mutate: func(f *models.FormDefinition) {
				f.Sections[0].Fields[1].Options = append(f.Sections[0].Fields[1].Options, models.Option{Value: "a"})
			},
			errContains: `duplicate option value "a"`,
		},
		{
			name:        "inverted lengths",
			mutate:      func(f *models.FormDefinition) { f.Sections[0].Fields[0].MinLength = 20 },
			errContains: "minLength 20 exceeds maxLength 10",
		},
		{
			name:        "negative length",
			mutate:      func(f *models.FormDefinition) { f.Sections[0].Fields[0].MaxLength = -1 },
			errContains: "must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(form)

			err := NewValidator().Validate(form)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidForm))
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestValidatorCollectsAllIssues(t *testing.T) {
	form := validForm()
	form.Sections[0].Fields[0].Type = "slider"
	form.Sections[0].Fields[1].Options = nil

	err := NewValidator().Validate(form)
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "f1", schemaErr.FormID)
	assert.Len(t, schemaErr.Issues, 2)
}

func TestValidatorAllowUnknownTypes(t *testing.T) {
	form := validForm()
	form.Sections[0].Fields[0].Type = "slider"

	v := NewValidator()
	v.AllowUnknownTypes = true
	assert.NoError(t, v.Validate(form))
}

func TestValidatorNilForm(t *testing.T) {
	assert.ErrorIs(t, NewValidator().Validate(nil), ErrInvalidForm)
}

func TestLenientValidator(t *testing.T) {
	accepted := map[string]func(*models.FormDefinition){
		"unknown type": func(f *models.FormDefinition) { f.Sections[0].Fields[0].Type = "number" },
		"duplicate option value": func(f *models.FormDefinition) {
			f.Sections[0].Fields[1].Options = append(f.Sections[0].Fields[1].Options, models.Option{Value: "a"})
		},
		"inverted lengths": func(f *models.FormDefinition) { f.Sections[0].Fields[0].MinLength = 20 },
	}
	for name, mutate := range accepted {
		t.Run(name, func(t *testing.T) {
			form := validForm()
			mutate(form)
			assert.NoError(t, NewLenientValidator().Validate(form))
			assert.Error(t, NewValidator().Validate(form))
		})
	}

	rejected := map[string]func(*models.FormDefinition){
		"no sections":        func(f *models.FormDefinition) { f.Sections = nil },
		"duplicate field id": func(f *models.FormDefinition) { f.Sections[0].Fields[1].FieldID = "name" },
		"blank field id":     func(f *models.FormDefinition) { f.Sections[0].Fields[0].FieldID = "" },
		"missing options":    func(f *models.FormDefinition) { f.Sections[0].Fields[1].Options = nil },
	}
	for name, mutate := range rejected {
		t.Run(name, func(t *testing.T) {
			form := validForm()
			mutate(form)
			assert.ErrorIs(t, NewLenientValidator().Validate(form), ErrInvalidForm)
		})
	}
}
