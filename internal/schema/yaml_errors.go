package schema

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// contextLines is how many lines around the failing one are quoted
const contextLines = 2

var yamlLinePattern = regexp.MustCompile(`line (\d+): (.*)`)

// SyntaxError is a YAML decoding failure located in the source document
type SyntaxError struct {
	Line    int    // 1-indexed, 0 when yaml did not report one
	Message string // yaml's message without the position prefix
	Context string // numbered source lines around Line
	Hint    string // likely fix, if one is recognized
}

// Error implements the error interface
func (e *SyntaxError) Error() string {
	var sb strings.Builder
	if e.Line > 0 {
		sb.WriteString(fmt.Sprintf("line %d: %s", e.Line, e.Message))
	} else {
		sb.WriteString(e.Message)
	}

	if e.Context != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Context)
	}
	if e.Hint != "" {
		sb.WriteString("\nhint: ")
		sb.WriteString(e.Hint)
	}
	return sb.String()
}

// decodeYAML unmarshals content, turning yaml errors into *SyntaxError
func decodeYAML(content string, v interface{}) error {
	err := yaml.Unmarshal([]byte(content), v)
	if err == nil {
		return nil
	}

	msg := err.Error()
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) && len(typeErr.Errors) > 0 {
		msg = typeErr.Errors[0]
	}
	return newSyntaxError(msg, content)
}

func newSyntaxError(msg, content string) *SyntaxError {
	msg = strings.TrimPrefix(msg, "yaml: ")

	se := &SyntaxError{Message: msg}
	if m := yamlLinePattern.FindStringSubmatch(msg); m != nil {
		se.Line, _ = strconv.Atoi(m[1])
		se.Message = strings.TrimSpace(m[2])
	}

	lines := strings.Split(content, "\n")
	if se.Line > 0 && se.Line <= len(lines) {
		se.Context = quoteLines(lines, se.Line)
	}
	se.Hint = hintFor(se.Message, lines, se.Line)
	return se
}

// quoteLines renders the lines around line with a marker on line itself
func quoteLines(lines []string, line int) string {
	start := max(0, line-contextLines-1)
	end := min(len(lines), line+contextLines)

	var sb strings.Builder
	for i := start; i < end; i++ {
		marker := "  "
		if i == line-1 {
			marker = "> "
		}
		sb.WriteString(fmt.Sprintf("%s%4d | %s\n", marker, i+1, lines[i]))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func hintFor(message string, lines []string, line int) string {
	lower := strings.ToLower(message)

	switch {
	case strings.Contains(lower, "mapping values are not allowed"):
		return "check indentation and make sure every key is followed by ': '"
	case strings.Contains(lower, "did not find expected"):
		return "a list or mapping is not closed, or an item is indented inconsistently"
	case strings.Contains(lower, "found character that cannot start any token"):
		return "indent with spaces, not tabs"
	case strings.Contains(lower, "cannot unmarshal !!seq"):
		return "a list was given where a single value is expected"
	case strings.Contains(lower, "cannot unmarshal !!map"):
		return "a mapping was given where a single value is expected; answers must be strings, booleans, or lists"
	case strings.Contains(lower, "cannot unmarshal !!str") && strings.Contains(lower, "int"):
		return "sectionId, minLength and maxLength must be numbers"
	case strings.Contains(lower, "cannot unmarshal"):
		return "the value has the wrong type for this key"
	case strings.Contains(lower, "already defined"):
		return "remove the duplicated key"
	}

	if line > 0 && line <= len(lines) && strings.Contains(lines[line-1], "\t") {
		return "indent with spaces, not tabs"
	}
	return ""
}
