package quiz

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// documentSchema describes the quiz wrapper. Question records stay opaque.
const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["quiz_id", "subject", "questions"],
  "additionalProperties": false,
  "properties": {
    "quiz_id": {"type": "string", "pattern": "^quiz_[0-9]{4}_[0-9]{2}_[0-9]{2}_"},
    "subject": {"type": "string"},
    "questions": {"type": "array"}
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(documentSchema)

// ValidationError lists the schema violations of an encoded quiz.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid quiz document: " + strings.Join(e.Problems, "; ")
}

// Validate checks an encoded quiz document against the wrapper schema.
func Validate(doc []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("validating quiz document: %w", err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		problems = append(problems, re.String())
	}
	return &ValidationError{Problems: problems}
}
