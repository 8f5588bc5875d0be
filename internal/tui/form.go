package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dshills/formrunner/internal/engine"
	"github.com/rs/zerolog/log"
)

const (
	progressWidth = 30
	// title, identity line, progress bar and a blank line
	formHeaderHeight = 4
	formFooterHeight = 2
)

// submitResultMsg reports the outcome of a submission
type submitResultMsg struct {
	submitted bool
	err       error
}

// formModel shows the active section of a session with one editor per field
type formModel struct {
	ctx     context.Context
	session *engine.Session
	keys    keyMap
	help    help.Model

	viewport   viewport.Model
	editors    []editor
	focus      int
	submitting bool
}

func newFormModel(ctx context.Context, session *engine.Session, keys keyMap, width, height int) *formModel {
	vp := viewport.New(width, max(1, height-formHeaderHeight-formFooterHeight))
	vp.KeyMap = viewport.KeyMap{
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
	}

	f := &formModel{
		ctx:      ctx,
		session:  session,
		keys:     keys,
		help:     help.New(),
		viewport: vp,
	}
	f.buildEditors()
	f.refresh()
	return f
}

// buildEditors creates editors for the active section and focuses the first
func (f *formModel) buildEditors() tea.Cmd {
	section := f.session.Section()
	f.editors = make([]editor, len(section.Fields))
	for i, field := range section.Fields {
		f.editors[i] = newEditor(field, f.session.Value(field.FieldID))
	}
	f.focus = 0
	if len(f.editors) == 0 {
		return nil
	}
	return f.editors[0].Focus()
}

func (f *formModel) setSize(width, height int) {
	f.viewport.Width = width
	f.viewport.Height = max(1, height-formHeaderHeight-formFooterHeight)
	f.help.Width = width
	f.refresh()
}

func (f *formModel) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		f.viewport, cmd = f.viewport.Update(msg)
		return cmd
	}
	if f.submitting {
		return nil
	}

	var cmd tea.Cmd
	switch {
	case key.Matches(keyMsg, f.keys.Next):
		cmd = f.advance()
	case key.Matches(keyMsg, f.keys.Prev):
		cmd = f.retreat()
	case key.Matches(keyMsg, f.keys.Submit):
		cmd = f.submit()
	case key.Matches(keyMsg, f.keys.FocusNext):
		cmd = f.moveFocus(1)
	case key.Matches(keyMsg, f.keys.FocusPrev):
		cmd = f.moveFocus(-1)
	case key.Matches(keyMsg, f.keys.Scroll):
		f.viewport, cmd = f.viewport.Update(msg)
		return cmd
	default:
		cmd = f.edit(msg)
	}

	f.refresh()
	return cmd
}

func (f *formModel) advance() tea.Cmd {
	if f.session.Navigator().IsLast() {
		return nil
	}
	if !f.session.Advance() {
		return nil
	}
	f.viewport.GotoTop()
	return f.buildEditors()
}

func (f *formModel) retreat() tea.Cmd {
	if !f.session.Retreat() {
		return nil
	}
	f.viewport.GotoTop()
	return f.buildEditors()
}

func (f *formModel) submit() tea.Cmd {
	if !f.session.Navigator().IsLast() {
		return nil
	}
	if !f.session.Validation().Valid {
		// returns before reaching the submitter and recomputes the errors shown
		_, _ = f.session.Submit(f.ctx)
		log.Debug().Strs("invalid", f.session.Validation().Invalid()).Msg("Submit blocked by invalid fields")
		return nil
	}

	f.submitting = true
	ctx, session := f.ctx, f.session
	return func() tea.Msg {
		ok, err := session.Submit(ctx)
		return submitResultMsg{submitted: ok, err: err}
	}
}

func (f *formModel) moveFocus(delta int) tea.Cmd {
	if len(f.editors) == 0 {
		return nil
	}
	f.editors[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.editors)) % len(f.editors)
	return f.editors[f.focus].Focus()
}

// edit forwards a key to the focused editor and records any value change
func (f *formModel) edit(msg tea.Msg) tea.Cmd {
	if len(f.editors) == 0 {
		return nil
	}
	ed := f.editors[f.focus]
	cmd := ed.Update(msg)

	field := f.session.Section().Fields[f.focus]
	if v := ed.Value(); !v.Equal(f.session.Value(field.FieldID)) {
		f.session.Set(field.FieldID, v)
	}
	return cmd
}

// refresh renders the active section into the viewport
func (f *formModel) refresh() {
	section := f.session.Section()
	state := f.session.Validation()

	var b strings.Builder
	b.WriteString(titleStyle.Render(section.Title))
	b.WriteString("\n")
	if section.Description != "" {
		b.WriteString(subtitleStyle.Render(section.Description))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, field := range section.Fields {
		focused := i == f.focus
		if !field.Type.IsToggle() {
			label := field.Label
			if field.Required {
				label += " *"
			}
			if focused {
				b.WriteString(focusedLabelStyle.Render("> " + label))
			} else {
				b.WriteString(labelStyle.Render("  " + label))
			}
			b.WriteString("\n")
		}
		b.WriteString("  ")
		b.WriteString(f.editors[i].View())
		b.WriteString("\n")
		if msg := state.Error(field.FieldID); msg != "" {
			b.WriteString(errorStyle.Render("  " + msg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	f.viewport.SetContent(b.String())
}

func (f *formModel) View() string {
	form := f.session.Form
	nav := f.session.Navigator()

	header := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(form.FormTitle),
		subtitleStyle.Render(fmt.Sprintf("Form ID: %s | Version: %s", form.FormID, form.Version)),
		renderProgress(nav.Index(), nav.Count(), progressWidth),
		"",
	)

	footer := f.help.View(formHelp{keys: f.keys, first: nav.IsFirst(), last: nav.IsLast()})
	if f.submitting {
		footer = mutedStyle.Render("Submitting...")
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, f.viewport.View(), "", footer)
}
