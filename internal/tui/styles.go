package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary = lipgloss.Color("#7aa2f7")
	colorSuccess = lipgloss.Color("#9ece6a")
	colorError   = lipgloss.Color("#f7768e")
	colorMuted   = lipgloss.Color("#565f89")
	colorFgDim   = lipgloss.Color("#a9b1d6")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorFgDim)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorFgDim)

	focusedLabelStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(1, 2)

	noticeStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSuccess).
			Padding(0, 1)

	destructiveNoticeStyle = noticeStyle.
				BorderForeground(colorError)

	barFilledStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	barEmptyStyle  = lipgloss.NewStyle().Foreground(colorMuted)
)

func renderProgress(index, count, width int) string {
	if count == 0 {
		return ""
	}
	filled := (index + 1) * width / count
	bar := barFilledStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", width-filled))
	return labelStyle.Render("Progress: ") + bar + " " + labelStyle.Render(fmt.Sprintf("%d/%d", index+1, count))
}
