// Package cli provides terminal output for formrunner's batch commands,
// including section rendering and submission summaries.
package cli

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/dshills/formrunner/internal/engine"
	"github.com/dshills/formrunner/internal/models"
	"github.com/dshills/formrunner/internal/portal"
	"github.com/dshills/formrunner/internal/submit"
	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

const progressWidth = 30

// RenderConfig configures renderer output
type RenderConfig struct {
	// Writer is where output is written (default: os.Stdout)
	Writer io.Writer

	// Quiet suppresses everything except destructive notices
	Quiet bool
}

// Renderer writes form state to a terminal
type Renderer struct {
	config RenderConfig

	// Color functions
	green  *color.Color
	yellow *color.Color
	red    *color.Color
	cyan   *color.Color
	gray   *color.Color
	bold   *color.Color
}

// NewRenderer creates a renderer
func NewRenderer(config RenderConfig) *Renderer {
	return &Renderer{
		config: config,
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow),
		red:    color.New(color.FgRed),
		cyan:   color.New(color.FgCyan),
		gray:   color.New(color.FgHiBlack),
		bold:   color.New(color.Bold),
	}
}

// Header prints the form title and identity line
func (r *Renderer) Header(form *models.FormDefinition) {
	if r.config.Quiet {
		return
	}
	w := r.config.Writer

	fmt.Fprintln(w)
	r.bold.Fprintln(w, form.FormTitle)
	r.gray.Fprintf(w, "Form ID: %s | Version: %s\n", form.FormID, form.Version)
	fmt.Fprintln(w, strings.Repeat("=", 50))
}

// Progress prints the position of the active section as a bar
func (r *Renderer) Progress(nav *engine.Navigator) {
	if r.config.Quiet {
		return
	}
	w := r.config.Writer

	pct := nav.Progress()
	filled := int(math.Round(pct / 100 * progressWidth))

	r.cyan.Fprintf(w, "[%d/%d] ", nav.Index()+1, nav.Count())
	fmt.Fprintf(w, "%s%s",
		r.green.Sprint(strings.Repeat("█", filled)),
		r.gray.Sprint(strings.Repeat("░", progressWidth-filled)))
	fmt.Fprintf(w, " %.0f%%\n", pct)
}

// Section prints the active section with its current values and any errors
func (r *Renderer) Section(s *engine.Session) {
	if r.config.Quiet {
		return
	}
	w := r.config.Writer
	section := s.Section()
	state := s.Validation()

	fmt.Fprintln(w)
	r.bold.Fprintln(w, section.Title)
	if section.Description != "" {
		r.gray.Fprintf(w, "  %s\n", section.Description)
	}

	for _, field := range section.Fields {
		label := field.Label
		if field.Required {
			label += " *"
		}

		msg := state.Error(field.FieldID)
		if msg == "" {
			r.green.Fprint(w, "  ✓ ")
		} else {
			r.red.Fprint(w, "  ✗ ")
		}
		fmt.Fprintf(w, "%s: %s\n", label, FormatValue(field, s.Value(field.FieldID)))
		if msg != "" {
			r.red.Fprintf(w, "      %s\n", msg)
		}
	}
}

// Notice prints a notice, in red when it reports a failure
func (r *Renderer) Notice(n portal.Notice) {
	if r.config.Quiet && !n.Destructive {
		return
	}
	w := r.config.Writer

	if n.Destructive {
		r.red.Fprintf(w, "✗ %s\n", n.Title)
	} else {
		r.green.Fprintf(w, "✓ %s\n", n.Title)
	}
	if n.Body != "" {
		fmt.Fprintf(w, "  %s\n", n.Body)
	}
}

// Summary prints every answer of the session grouped by section
func (r *Renderer) Summary(s *engine.Session) {
	if r.config.Quiet {
		return
	}
	w := r.config.Writer

	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 50))
	r.bold.Fprintln(w, "Answers")
	for _, section := range s.Form.Sections {
		r.cyan.Fprintf(w, "  %s\n", section.Title)
		for _, field := range section.Fields {
			fmt.Fprintf(w, "    %s: %s\n", field.Label, FormatValue(field, s.Value(field.FieldID)))
		}
	}
	fmt.Fprintln(w)
}

// Changes prints how a submission differs from the one it replaced
func (r *Renderer) Changes(summary submit.ChangeSummary) {
	if r.config.Quiet || summary.Empty() {
		return
	}
	w := r.config.Writer

	r.yellow.Fprintf(w, "Changed since last submission (%d fields):\n", len(summary.Fields))
	for _, c := range summary.Changes {
		switch c.Op {
		case diffmatchpatch.DiffInsert:
			r.green.Fprintf(w, "  %s\n", c)
		case diffmatchpatch.DiffDelete:
			r.red.Fprintf(w, "  %s\n", c)
		default:
			fmt.Fprintf(w, "  %s\n", c)
		}
	}
}

// FormatValue renders an answer for display. Option values are shown by
// their labels and empty answers as a placeholder.
func FormatValue(field models.FieldDefinition, value models.AnswerValue) string {
	switch value.Kind() {
	case models.AnswerBool:
		if b, _ := value.Bool(); b {
			return "yes"
		}
		return "no"
	case models.AnswerList:
		items := value.List()
		if len(items) == 0 {
			return "(empty)"
		}
		labels := make([]string, len(items))
		for i, item := range items {
			labels[i] = field.OptionLabel(item)
		}
		return strings.Join(labels, ", ")
	}

	text := value.Text()
	if strings.TrimSpace(text) == "" {
		return "(empty)"
	}
	if field.Type.HasOptions() {
		return field.OptionLabel(text)
	}
	if strings.Contains(text, "\n") {
		return strings.ReplaceAll(text, "\n", " / ")
	}
	return text
}

// CheckResult prints the outcome of checking one form definition file
func (r *Renderer) CheckResult(path string, form *models.FormDefinition, err error) {
	w := r.config.Writer

	if err != nil {
		r.red.Fprintf(w, "✗ %s\n", path)
		for _, line := range strings.Split(err.Error(), "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
		return
	}
	if r.config.Quiet {
		return
	}

	r.green.Fprintf(w, "✓ %s", path)
	r.gray.Fprintf(w, " (%s v%s, %d sections, %d fields)\n",
		form.FormID, form.Version, len(form.Sections), form.FieldCount())
}
