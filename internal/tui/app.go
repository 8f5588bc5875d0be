// Package tui implements the interactive terminal front end: a credential
// screen, the paginated form and a fallback for unknown routes.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dshills/formrunner/internal/engine"
	"github.com/dshills/formrunner/internal/portal"
	"github.com/rs/zerolog/log"
)

// Routes
const (
	RouteLogin = "/"
	RouteForm  = "/form"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// App routes between screens and owns the session once login succeeds
type App struct {
	ctx    context.Context
	keys   keyMap
	route  string
	width  int
	height int

	session   *engine.Session
	notice    *portal.Notice
	submitted int

	login *loginModel
	form  *formModel
}

// New creates an app positioned on the credential screen
func New(ctx context.Context, login LoginFunc) *App {
	keys := newKeyMap()
	return &App{
		ctx:    ctx,
		keys:   keys,
		route:  RouteLogin,
		width:  defaultWidth,
		height: defaultHeight,
		login:  newLoginModel(ctx, login, keys),
	}
}

// Route returns the active route
func (a *App) Route() string { return a.route }

// Session returns the session opened by the last successful login
func (a *App) Session() *engine.Session { return a.session }

// Submitted returns how many submissions have completed. It only counts
// results the app has received, so it is safe to read once the program
// has exited.
func (a *App) Submitted() int { return a.submitted }

// Notice returns the notice currently displayed, if any
func (a *App) Notice() *portal.Notice { return a.notice }

// Navigate switches screens. The form route needs a session and falls back
// to the credential screen without one.
func (a *App) Navigate(route string) {
	if route == RouteForm {
		if a.session == nil {
			log.Warn().Msg("No active session, redirecting to login")
			route = RouteLogin
		} else if a.form == nil || a.form.session != a.session {
			a.form = newFormModel(a.ctx, a.session, a.keys, a.width, a.height-noticeHeight)
		}
	}
	a.route = route
}

func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		if a.form != nil {
			a.form.setSize(a.width, a.height-noticeHeight)
		}
		return a, nil

	case loginResultMsg:
		a.login.finish()
		notice := portal.NoticeFor(msg.err)
		a.notice = &notice
		if msg.err != nil {
			log.Warn().Err(msg.err).Msg("Login failed")
			return a, nil
		}
		a.session = msg.session
		a.Navigate(RouteForm)
		return a, nil

	case submitResultMsg:
		if a.form != nil {
			a.form.submitting = false
		}
		var notice portal.Notice
		switch {
		case msg.err != nil:
			notice = portal.NoticeFor(msg.err)
		case msg.submitted:
			a.submitted++
			notice = portal.SubmittedNotice()
		default:
			return a, nil
		}
		a.notice = &notice
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Quit) {
			return a, tea.Quit
		}
		a.notice = nil
	}

	switch a.route {
	case RouteLogin:
		return a, a.login.Update(msg)
	case RouteForm:
		return a, a.form.Update(msg)
	default:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, a.keys.Confirm) {
			a.Navigate(RouteLogin)
		}
		return a, nil
	}
}

func (a *App) View() string {
	var body string
	switch a.route {
	case RouteLogin:
		body = a.login.View()
	case RouteForm:
		body = a.form.View()
	default:
		body = notFoundView()
	}

	if a.notice == nil {
		return body
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, renderNotice(*a.notice))
}

// noticeHeight is reserved below the form for notices
const noticeHeight = 4

func renderNotice(n portal.Notice) string {
	style := noticeStyle
	if n.Destructive {
		style = destructiveNoticeStyle
	}
	content := titleStyle.Render(n.Title)
	if n.Body != "" {
		content += "\n" + n.Body
	}
	return style.Render(content)
}

func notFoundView() string {
	return lipgloss.NewStyle().Margin(1, 2).Render(lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("404"),
		subtitleStyle.Render("Page not found"),
		"",
		mutedStyle.Render("enter: Return to Login"),
	))
}
