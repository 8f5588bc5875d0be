package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestAnswerValueZeroIsEmptyText(t *testing.T) {
	var v AnswerValue
	assert.Equal(t, AnswerText, v.Kind())
	assert.Equal(t, "", v.Text())
	_, isBool := v.Bool()
	assert.False(t, isBool)
}

func TestAnswerValueText(t *testing.T) {
	assert.Equal(t, "true", BoolValue(true).Text())
	assert.Equal(t, "false", BoolValue(false).Text())
	assert.Equal(t, "a, b", ListValue("a", "b").Text())
	assert.Equal(t, "Alice", TextValue("Alice").String())
}

func TestAnswerValueEqual(t *testing.T) {
	assert.True(t, TextValue("x").Equal(TextValue("x")))
	assert.False(t, TextValue("true").Equal(BoolValue(true)))
	assert.True(t, ListValue("a", "b").Equal(ListValue("a", "b")))
	assert.False(t, ListValue("a").Equal(ListValue("a", "b")))
}

func TestListValueCopiesInput(t *testing.T) {
	items := []string{"a", "b"}
	v := ListValue(items...)
	items[0] = "changed"
	assert.Equal(t, []string{"a", "b"}, v.List())

	out := v.List()
	out[1] = "changed"
	assert.Equal(t, []string{"a", "b"}, v.List())
}

func TestAnswerValueJSON(t *testing.T) {
	answers := map[string]AnswerValue{
		"name":  TextValue("Alice"),
		"agree": BoolValue(true),
		"tags":  ListValue("x", "y"),
	}

	data, err := json.Marshal(answers)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Alice","agree":true,"tags":["x","y"]}`, string(data))

	var decoded map[string]AnswerValue
	require.NoError(t, json.Unmarshal(data, &decoded))
	for id, want := range answers {
		assert.True(t, want.Equal(decoded[id]), "field %s", id)
	}
}

func TestAnswerValueYAML(t *testing.T) {
	content := `
name: Alice
phone: 1234567890
agree: false
tags: [a, b]
`
	var decoded map[string]AnswerValue
	require.NoError(t, yaml.Unmarshal([]byte(content), &decoded))

	assert.Equal(t, "Alice", decoded["name"].Text())
	assert.Equal(t, "1234567890", decoded["phone"].Text())
	flag, ok := decoded["agree"].Bool()
	assert.True(t, ok)
	assert.False(t, flag)
	assert.Equal(t, []string{"a", "b"}, decoded["tags"].List())
}

func TestAnswerFromNativeRejectsObjects(t *testing.T) {
	_, err := AnswerFromNative(map[string]interface{}{"a": 1})
	assert.Error(t, err)

	_, err = AnswerFromNative([]interface{}{map[string]interface{}{}})
	assert.Error(t, err)
}

func TestRequiredMessage(t *testing.T) {
	field := FieldDefinition{FieldID: "name", Required: true}
	assert.Equal(t, DefaultRequiredMessage, field.RequiredMessage())

	field.Validation = &FieldValidation{Message: "Name is mandatory"}
	assert.Equal(t, "Name is mandatory", field.RequiredMessage())
}

func TestFormDefinitionField(t *testing.T) {
	form := &FormDefinition{
		Sections: []SectionDefinition{
			{Fields: []FieldDefinition{{FieldID: "a"}, {FieldID: "b"}}},
			{Fields: []FieldDefinition{{FieldID: "c", Type: FieldTypeEmail}}},
		},
	}

	field, ok := form.Field("c")
	require.True(t, ok)
	assert.Equal(t, FieldTypeEmail, field.Type)

	_, ok = form.Field("missing")
	assert.False(t, ok)
	assert.Equal(t, 3, form.FieldCount())
}

func TestFieldTypeClassification(t *testing.T) {
	assert.True(t, FieldTypeDropdown.HasOptions())
	assert.True(t, FieldTypeRadio.HasOptions())
	assert.False(t, FieldTypeText.HasOptions())
	assert.True(t, FieldTypeCheckbox.IsToggle())
	assert.False(t, FieldType("slider").IsKnown())
	assert.True(t, FieldTypePhone.IsKnown())
}
