package engine

import (
	"github.com/dshills/formrunner/internal/models"
)

// ValidationState is the result of validating one section against the
// answer store. It is derived data and is recomputed, never edited.
type ValidationState struct {
	// Errors maps field ids to their error message. Valid fields have no entry.
	Errors map[string]string
	// Valid is true when no field in the section has an error
	Valid bool

	order []string
}

// Error returns the error message for a field, or "" when it is valid
func (v ValidationState) Error(fieldID string) string {
	return v.Errors[fieldID]
}

// Invalid returns the ids of failing fields in section order
func (v ValidationState) Invalid() []string {
	var out []string
	for _, id := range v.order {
		if _, ok := v.Errors[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// ValidateSection validates every field of the section. Fields missing from
// the store are validated as their default value.
func ValidateSection(section models.SectionDefinition, store *AnswerStore) ValidationState {
	state := ValidationState{
		Errors: make(map[string]string),
		Valid:  true,
		order:  make([]string, 0, len(section.Fields)),
	}

	for _, field := range section.Fields {
		state.order = append(state.order, field.FieldID)
		if msg := ValidateField(field, store.Lookup(field)); msg != "" {
			state.Errors[field.FieldID] = msg
			state.Valid = false
		}
	}

	return state
}
