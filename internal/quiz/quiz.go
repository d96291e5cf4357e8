// Package quiz builds a quiz from one randomly chosen question bank subject
// and writes it as a JSON document.
package quiz

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultNumQuestions is used when a Generator is built with a count below 1.
const DefaultNumQuestions = 10

// Quiz is the generated document. Field order is the output key order.
type Quiz struct {
	ID        string            `json:"quiz_id"`
	Subject   string            `json:"subject"`
	Questions []json.RawMessage `json:"questions"`
}

// ID returns quiz_<YYYY>_<MM>_<DD>_<subject>, where the subject is lowercased
// and spaces become underscores. The date is taken in t's location.
func ID(subject string, t time.Time) string {
	slug := strings.ReplaceAll(cases.Lower(language.Und).String(subject), " ", "_")
	return "quiz_" + t.Format("2006_01_02") + "_" + slug
}

// Encode renders q as 2-space indented JSON with a trailing newline.
func Encode(q Quiz) ([]byte, error) {
	if q.Questions == nil {
		q.Questions = []json.RawMessage{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(q); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
