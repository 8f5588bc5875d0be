package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dshills/formrunner/internal/models"
)

const (
	editorWidth     = 50
	areaHeight      = 4
	datePlaceholder = "YYYY-MM-DD"
)

// editor edits the value of one field
type editor interface {
	Focus() tea.Cmd
	Blur()
	Update(msg tea.Msg) tea.Cmd
	Value() models.AnswerValue
	View() string
}

type editorFactory func(field models.FieldDefinition, value models.AnswerValue) editor

var editorFactories = map[models.FieldType]editorFactory{
	models.FieldTypeText:     newTextEditor,
	models.FieldTypePhone:    newTextEditor,
	models.FieldTypeEmail:    newTextEditor,
	models.FieldTypeDate:     newTextEditor,
	models.FieldTypeTextarea: newAreaEditor,
	models.FieldTypeDropdown: newChoiceEditor,
	models.FieldTypeRadio:    newChoiceEditor,
	models.FieldTypeCheckbox: newToggleEditor,
}

// newEditor picks the editor for a field type. Unknown types are edited as
// single-line text.
func newEditor(field models.FieldDefinition, value models.AnswerValue) editor {
	if factory, ok := editorFactories[field.Type]; ok {
		return factory(field, value)
	}
	return newTextEditor(field, value)
}

type textEditor struct {
	input textinput.Model
}

func newTextEditor(field models.FieldDefinition, value models.AnswerValue) editor {
	ti := textinput.New()
	ti.Placeholder = field.Placeholder
	if ti.Placeholder == "" && field.Type == models.FieldTypeDate {
		ti.Placeholder = datePlaceholder
	}
	ti.Width = editorWidth
	ti.SetValue(value.Text())
	return &textEditor{input: ti}
}

func (e *textEditor) Focus() tea.Cmd { return e.input.Focus() }

func (e *textEditor) Blur() { e.input.Blur() }

func (e *textEditor) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	return cmd
}

func (e *textEditor) Value() models.AnswerValue { return models.TextValue(e.input.Value()) }

func (e *textEditor) View() string { return e.input.View() }

type areaEditor struct {
	area textarea.Model
}

func newAreaEditor(field models.FieldDefinition, value models.AnswerValue) editor {
	ta := textarea.New()
	ta.Placeholder = field.Placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(editorWidth)
	ta.SetHeight(areaHeight)
	ta.SetValue(value.Text())
	ta.Blur()
	return &areaEditor{area: ta}
}

func (e *areaEditor) Focus() tea.Cmd { return e.area.Focus() }

func (e *areaEditor) Blur() { e.area.Blur() }

func (e *areaEditor) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	e.area, cmd = e.area.Update(msg)
	return cmd
}

func (e *areaEditor) Value() models.AnswerValue { return models.TextValue(e.area.Value()) }

func (e *areaEditor) View() string { return e.area.View() }

// choiceEditor picks one option. A cursor of -1 means nothing is selected.
type choiceEditor struct {
	field   models.FieldDefinition
	cursor  int
	focused bool
}

func newChoiceEditor(field models.FieldDefinition, value models.AnswerValue) editor {
	e := &choiceEditor{field: field, cursor: -1}
	for i, opt := range field.Options {
		if opt.Value == value.Text() {
			e.cursor = i
			break
		}
	}
	return e
}

func (e *choiceEditor) Focus() tea.Cmd {
	e.focused = true
	return nil
}

func (e *choiceEditor) Blur() { e.focused = false }

func (e *choiceEditor) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !e.focused || len(e.field.Options) == 0 {
		return nil
	}
	switch keyMsg.String() {
	case "left", "up":
		if e.cursor > 0 {
			e.cursor--
		} else {
			e.cursor = len(e.field.Options) - 1
		}
	case "right", "down":
		e.cursor = (e.cursor + 1) % len(e.field.Options)
	case "backspace", "delete":
		e.cursor = -1
	}
	return nil
}

func (e *choiceEditor) Value() models.AnswerValue {
	if e.cursor < 0 || e.cursor >= len(e.field.Options) {
		return models.TextValue("")
	}
	return models.TextValue(e.field.Options[e.cursor].Value)
}

func (e *choiceEditor) View() string {
	if e.field.Type == models.FieldTypeDropdown {
		label := e.field.Placeholder
		if label == "" {
			label = "Select an option"
		}
		if e.cursor >= 0 {
			label = e.field.Options[e.cursor].Label
		} else {
			label = mutedStyle.Render(label)
		}
		return "< " + label + " >"
	}

	parts := make([]string, len(e.field.Options))
	for i, opt := range e.field.Options {
		mark := "( )"
		if i == e.cursor {
			mark = "(•)"
		}
		parts[i] = mark + " " + opt.Label
	}
	return strings.Join(parts, "  ")
}

type toggleEditor struct {
	label   string
	checked bool
	focused bool
}

func newToggleEditor(field models.FieldDefinition, value models.AnswerValue) editor {
	checked, _ := value.Bool()
	label := field.Label
	if field.Required {
		label += " *"
	}
	return &toggleEditor{label: label, checked: checked}
}

func (e *toggleEditor) Focus() tea.Cmd {
	e.focused = true
	return nil
}

func (e *toggleEditor) Blur() { e.focused = false }

func (e *toggleEditor) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !e.focused {
		return nil
	}
	switch keyMsg.String() {
	case " ", "enter", "x":
		e.checked = !e.checked
	}
	return nil
}

func (e *toggleEditor) Value() models.AnswerValue { return models.BoolValue(e.checked) }

func (e *toggleEditor) View() string {
	box := "[ ]"
	if e.checked {
		box = "[x]"
	}
	label := e.label
	if e.focused {
		label = focusedLabelStyle.Render(label)
	}
	return box + " " + label
}
