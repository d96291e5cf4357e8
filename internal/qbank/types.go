// Package qbank reads question bank directories: one line-delimited JSON
// file per subject.
package qbank

import "fmt"

// Ext is the file extension of a subject file.
const Ext = ".json"

// Subject is a single subject file in a question bank.
type Subject struct {
	Name string // file base name without Ext
	Path string
}

// ParseError reports a line that is not valid JSON.
type ParseError struct {
	Path string
	Line int // 1-based
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s line %d: %v", e.Path, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
