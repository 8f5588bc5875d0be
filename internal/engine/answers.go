package engine

import (
	"github.com/dshills/formrunner/internal/models"
)

// AnswerStore maps field ids to their current values for one session.
// Entries are never removed. It is not safe for concurrent use.
type AnswerStore struct {
	values map[string]models.AnswerValue
}

// NewAnswerStore creates an empty answer store
func NewAnswerStore() *AnswerStore {
	return &AnswerStore{values: make(map[string]models.AnswerValue)}
}

// Get returns the value for a field and whether it has been seeded or set
func (s *AnswerStore) Get(fieldID string) (models.AnswerValue, bool) {
	v, ok := s.values[fieldID]
	return v, ok
}

// Set replaces the value for a field unconditionally. The value is not
// checked against the field's type.
func (s *AnswerStore) Set(fieldID string, value models.AnswerValue) {
	s.values[fieldID] = value
}

// Seed gives every field of the section without an entry its default value.
// Existing entries are left untouched. It returns the ids that were seeded.
func (s *AnswerStore) Seed(section models.SectionDefinition) []string {
	var seeded []string
	for _, field := range section.Fields {
		if _, ok := s.values[field.FieldID]; ok {
			continue
		}
		s.values[field.FieldID] = DefaultValue(field)
		seeded = append(seeded, field.FieldID)
	}
	return seeded
}

// Lookup returns the stored value for a field, falling back to the field's
// default when it has no entry
func (s *AnswerStore) Lookup(field models.FieldDefinition) models.AnswerValue {
	if v, ok := s.values[field.FieldID]; ok {
		return v
	}
	return DefaultValue(field)
}

// Snapshot returns a copy of all entries
func (s *AnswerStore) Snapshot() map[string]models.AnswerValue {
	out := make(map[string]models.AnswerValue, len(s.values))
	for id, v := range s.values {
		out[id] = v
	}
	return out
}

// Len returns the number of entries
func (s *AnswerStore) Len() int {
	return len(s.values)
}
