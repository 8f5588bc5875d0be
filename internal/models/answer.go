package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// AnswerKind tags the variant held by an AnswerValue
type AnswerKind int

// AnswerKind constants
const (
	AnswerText AnswerKind = iota
	AnswerBool
	AnswerList
)

// String returns the kind name
func (k AnswerKind) String() string {
	switch k {
	case AnswerText:
		return "text"
	case AnswerBool:
		return "bool"
	case AnswerList:
		return "list"
	default:
		return fmt.Sprintf("AnswerKind(%d)", int(k))
	}
}

// AnswerValue is the value of one field: text, boolean, or a list of strings.
// The zero value is empty text.
type AnswerValue struct {
	kind AnswerKind
	text string
	flag bool
	list []string
}

// TextValue returns a text answer
func TextValue(s string) AnswerValue {
	return AnswerValue{kind: AnswerText, text: s}
}

// BoolValue returns a boolean answer
func BoolValue(b bool) AnswerValue {
	return AnswerValue{kind: AnswerBool, flag: b}
}

// ListValue returns a list answer
func ListValue(items ...string) AnswerValue {
	list := make([]string, len(items))
	copy(list, items)
	return AnswerValue{kind: AnswerList, list: list}
}

// Kind returns the variant tag
func (v AnswerValue) Kind() AnswerKind {
	return v.kind
}

// Text returns the value as text. Booleans render as "true"/"false" and lists
// are joined with ", ".
func (v AnswerValue) Text() string {
	switch v.kind {
	case AnswerBool:
		if v.flag {
			return "true"
		}
		return "false"
	case AnswerList:
		return strings.Join(v.list, ", ")
	default:
		return v.text
	}
}

// Bool returns the boolean and whether the value is a boolean
func (v AnswerValue) Bool() (bool, bool) {
	return v.flag, v.kind == AnswerBool
}

// List returns a copy of the list items, or nil for non-list values
func (v AnswerValue) List() []string {
	if v.kind != AnswerList {
		return nil
	}
	out := make([]string, len(v.list))
	copy(out, v.list)
	return out
}

// Equal reports whether two values hold the same variant and content
func (v AnswerValue) Equal(other AnswerValue) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case AnswerBool:
		return v.flag == other.flag
	case AnswerList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if v.list[i] != other.list[i] {
				return false
			}
		}
		return true
	default:
		return v.text == other.text
	}
}

// String implements fmt.Stringer
func (v AnswerValue) String() string {
	return v.Text()
}

// MarshalJSON encodes the value as a JSON string, boolean, or array
func (v AnswerValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.native())
}

// UnmarshalJSON decodes a JSON string, boolean, or array of strings
func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := AnswerFromNative(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalYAML encodes the value as a YAML scalar or sequence
func (v AnswerValue) MarshalYAML() (interface{}, error) {
	return v.native(), nil
}

// UnmarshalYAML decodes a YAML scalar or sequence
func (v *AnswerValue) UnmarshalYAML(node *yaml.Node) error {
	var raw interface{}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := AnswerFromNative(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v AnswerValue) native() interface{} {
	switch v.kind {
	case AnswerBool:
		return v.flag
	case AnswerList:
		if v.list == nil {
			return []string{}
		}
		return v.list
	default:
		return v.text
	}
}

// AnswerFromNative converts a decoded JSON or YAML value into an AnswerValue.
// Numbers are kept as their textual form; nil becomes empty text.
func AnswerFromNative(raw interface{}) (AnswerValue, error) {
	switch val := raw.(type) {
	case nil:
		return TextValue(""), nil
	case string:
		return TextValue(val), nil
	case bool:
		return BoolValue(val), nil
	case int, int64, float64, uint64:
		return TextValue(fmt.Sprint(val)), nil
	case []interface{}:
		items := make([]string, 0, len(val))
		for i, item := range val {
			switch it := item.(type) {
			case string:
				items = append(items, it)
			case int, int64, float64, bool:
				items = append(items, fmt.Sprint(it))
			default:
				return AnswerValue{}, fmt.Errorf("list item %d has unsupported type %T", i, item)
			}
		}
		return ListValue(items...), nil
	case []string:
		return ListValue(val...), nil
	default:
		return AnswerValue{}, fmt.Errorf("unsupported answer type %T", raw)
	}
}
