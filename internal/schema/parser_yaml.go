package schema

import (
	"fmt"
	"strings"

	"github.com/dshills/formrunner/internal/models"
)

// YAMLParser implements the Parser interface for YAML format
type YAMLParser struct{}

// Parse parses YAML content into a FormDefinition
func (p *YAMLParser) Parse(content string) (*models.FormDefinition, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("empty content provided")
	}

	var doc envelope
	if err := decodeYAML(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	return doc.definition(), nil
}
