// Package schemas provides JSON Schema validation for the knowledge base at
// the edit-commit boundary.
package schemas

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// knowledgeBaseSchema is the shape contract for whole-record edits. Every
// facet is optional and unknown facets are allowed; what the schema rejects
// is a facet of the wrong kind (e.g. skills as an object), which the backend
// would otherwise accept and later stages would choke on.
const knowledgeBaseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "KnowledgeBase",
  "type": "object",
  "properties": {
    "personal_info": {
      "type": "object"
    },
    "careers": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["company", "position"],
        "properties": {
          "company": {"type": "string"},
          "position": {"type": "string"},
          "duration": {"type": "string"},
          "projects": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["name"],
              "properties": {
                "name": {"type": "string"}
              }
            }
          }
        }
      }
    },
    "skills": {
      "type": "array",
      "items": {"type": "string"}
    },
    "education": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "institution": {"type": "string"},
          "degree": {"type": "string"},
          "major": {"type": "string"},
          "duration": {"type": "string"}
        }
      }
    }
  },
  "additionalProperties": true
}`

// ValidateKnowledgeBase validates a serialized knowledge base against the
// embedded schema. Returns nil when valid, a *ValidationError listing field
// problems when not.
func ValidateKnowledgeBase(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(knowledgeBaseSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if result.Valid() {
		return nil
	}

	ve := &ValidationError{}
	for _, resultErr := range result.Errors() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   resultErr.Field(),
			Message: resultErr.Description(),
		})
	}
	return ve
}
