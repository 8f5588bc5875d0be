package submit

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dshills/formrunner/internal/models"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Change is one line of an answer diff
type Change struct {
	Op   diffmatchpatch.Operation
	Line string
}

// String renders the change with a +/- prefix
func (c Change) String() string {
	switch c.Op {
	case diffmatchpatch.DiffInsert:
		return "+ " + c.Line
	case diffmatchpatch.DiffDelete:
		return "- " + c.Line
	default:
		return "  " + c.Line
	}
}

// ChangeSummary describes how a submission differs from the previous one
type ChangeSummary struct {
	Changes []Change
	// Fields lists the ids of answers that were added, removed, or edited
	Fields []string
}

// Empty reports whether the two submissions had identical answers
func (s ChangeSummary) Empty() bool {
	return len(s.Fields) == 0
}

// answerLines renders answers one per line in field id order.
// Values are quoted so embedded newlines stay on one line.
func answerLines(answers map[string]models.AnswerValue) string {
	ids := make([]string, 0, len(answers))
	for id := range answers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var b strings.Builder
	for _, id := range ids {
		b.WriteString(id)
		b.WriteString(": ")
		b.WriteString(strconv.Quote(answers[id].Text()))
		b.WriteString("\n")
	}
	return b.String()
}

// DiffAnswers computes a line diff between two answer sets
func DiffAnswers(previous, current map[string]models.AnswerValue) ChangeSummary {
	dmp := diffmatchpatch.New()
	oldChars, newChars, lines := dmp.DiffLinesToChars(answerLines(previous), answerLines(current))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(oldChars, newChars, false), lines)

	var summary ChangeSummary
	touched := make(map[string]bool)

	for _, d := range diffs {
		if d.Type == diffmatchpatch.DiffEqual {
			continue
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			if line == "" {
				continue
			}
			summary.Changes = append(summary.Changes, Change{Op: d.Type, Line: line})
			if id, _, ok := strings.Cut(line, ": "); ok && !touched[id] {
				touched[id] = true
				summary.Fields = append(summary.Fields, id)
			}
		}
	}

	sort.Strings(summary.Fields)
	return summary
}
