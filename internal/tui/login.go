package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dshills/formrunner/internal/engine"
	"github.com/dshills/formrunner/internal/models"
)

// LoginFunc registers a user and opens a session on their form
type LoginFunc func(ctx context.Context, user models.User) (*engine.Session, error)

// loginResultMsg carries the outcome of a login attempt
type loginResultMsg struct {
	session *engine.Session
	err     error
}

const (
	inputRoll = iota
	inputName
)

type loginModel struct {
	ctx     context.Context
	login   LoginFunc
	keys    keyMap
	inputs  []textinput.Model
	focus   int
	loading bool
	spinner spinner.Model
}

func newLoginModel(ctx context.Context, login LoginFunc, keys keyMap) *loginModel {
	roll := textinput.New()
	roll.Placeholder = "Enter your roll number"
	roll.Width = 40
	roll.Focus()

	name := textinput.New()
	name.Placeholder = "Enter your full name"
	name.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &loginModel{
		ctx:     ctx,
		login:   login,
		keys:    keys,
		inputs:  []textinput.Model{roll, name},
		spinner: sp,
	}
}

// User returns the credentials currently entered
func (m *loginModel) User() models.User {
	return models.User{
		RollNumber: m.inputs[inputRoll].Value(),
		Name:       m.inputs[inputName].Value(),
	}
}

func (m *loginModel) Update(msg tea.Msg) tea.Cmd {
	if m.loading {
		if _, ok := msg.(spinner.TickMsg); ok {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return cmd
		}
		return nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.FocusNext), keyMsg.String() == "down":
		return m.setFocus(m.focus + 1)
	case key.Matches(keyMsg, m.keys.FocusPrev), keyMsg.String() == "up":
		return m.setFocus(m.focus - 1)
	case key.Matches(keyMsg, m.keys.Confirm):
		return m.start()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return cmd
}

func (m *loginModel) setFocus(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = (i + len(m.inputs)) % len(m.inputs)
	return m.inputs[m.focus].Focus()
}

// start runs the login in the background and shows the spinner until the
// result arrives
func (m *loginModel) start() tea.Cmd {
	m.loading = true
	ctx, login, user := m.ctx, m.login, m.User()
	run := func() tea.Msg {
		session, err := login(ctx, user)
		return loginResultMsg{session: session, err: err}
	}
	return tea.Batch(run, m.spinner.Tick)
}

// finish leaves the loading state after a login result
func (m *loginModel) finish() {
	m.loading = false
}

func (m *loginModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Student Portal"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Sign in to access your forms"))
	b.WriteString("\n\n")

	labels := []string{"Roll Number", "Full Name"}
	for i, input := range m.inputs {
		style := labelStyle
		if i == m.focus {
			style = focusedLabelStyle
		}
		b.WriteString(style.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(input.View())
		b.WriteString("\n\n")
	}

	if m.loading {
		b.WriteString(m.spinner.View() + " Logging in...")
	} else {
		b.WriteString(mutedStyle.Render("enter: Login · tab: switch field · ctrl+c: quit"))
	}

	return lipgloss.NewStyle().Margin(1, 2).Render(cardStyle.Render(b.String()))
}
