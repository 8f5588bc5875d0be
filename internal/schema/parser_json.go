package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dshills/formrunner/internal/models"
)

// JSONParser implements the Parser interface for JSON format
type JSONParser struct{}

// Parse parses JSON content into a FormDefinition
func (p *JSONParser) Parse(content string) (*models.FormDefinition, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("empty content provided")
	}

	var doc envelope
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse json: %w", err)
	}

	return doc.definition(), nil
}
