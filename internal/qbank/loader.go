package qbank

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// maxLineSize bounds a single question record.
const maxLineSize = 16 << 20

var errInvalidUTF8 = errors.New("invalid UTF-8")

// ListSubjects returns the subject files in dir, sorted by file name.
// Directories are skipped even when their name ends in Ext.
func ListSubjects(dir string) ([]Subject, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing question bank: %w", err)
	}

	subjects := make([]Subject, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Ext) {
			continue
		}
		subjects = append(subjects, Subject{
			Name: strings.TrimSuffix(e.Name(), Ext),
			Path: filepath.Join(dir, e.Name()),
		})
	}

	slog.Debug("question bank listed", "dir", dir, "subjects", len(subjects))
	return subjects, nil
}

// LoadQuestions reads every record of the subject file at path.
func LoadQuestions(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening subject file: %w", err)
	}
	defer f.Close()

	return ReadQuestions(f, path)
}

// ReadQuestions parses line-delimited JSON from r. Each non-blank line is one
// record; blank lines are skipped. name is used in error messages only.
func ReadQuestions(r io.Reader, name string) ([]json.RawMessage, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var questions []json.RawMessage
	line := 0
	for scanner.Scan() {
		line++
		b := bytes.TrimSpace(scanner.Bytes())
		if len(b) == 0 {
			continue
		}

		if !utf8.Valid(b) {
			return nil, &ParseError{Path: name, Line: line, Err: errInvalidUTF8}
		}

		// RawMessage.UnmarshalJSON copies b, so the scanner buffer can be reused.
		var q json.RawMessage
		if err := json.Unmarshal(b, &q); err != nil {
			return nil, &ParseError{Path: name, Line: line, Err: err}
		}
		questions = append(questions, q)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	return questions, nil
}
