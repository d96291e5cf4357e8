package qbank_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/p-n-ai/quizgen/internal/qbank"
)

func TestListSubjects(t *testing.T) {
	dir := setupTestBank(t)

	subjects, err := qbank.ListSubjects(dir)
	if err != nil {
		t.Fatalf("ListSubjects() error = %v", err)
	}

	var names []string
	for _, s := range subjects {
		names = append(names, s.Name)
	}
	if got, want := strings.Join(names, ","), "Cardiology,General Medicine,Pharmacology"; got != want {
		t.Errorf("subjects = %q, want %q", got, want)
	}
	if subjects[0].Path != filepath.Join(dir, "Cardiology.json") {
		t.Errorf("Path = %q, want %q", subjects[0].Path, filepath.Join(dir, "Cardiology.json"))
	}
}

func TestListSubjects_SkipsDirectoriesAndOtherFiles(t *testing.T) {
	dir := t.TempDir()
	os.Mkdir(filepath.Join(dir, "archive.json"), 0o755)
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644)
	os.WriteFile(filepath.Join(dir, "Anatomy.json.bak"), []byte("{}"), 0o644)

	subjects, err := qbank.ListSubjects(dir)
	if err != nil {
		t.Fatalf("ListSubjects() error = %v", err)
	}
	if len(subjects) != 0 {
		t.Errorf("ListSubjects() = %v, want none", subjects)
	}
}

func TestListSubjects_MissingDir(t *testing.T) {
	_, err := qbank.ListSubjects(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("ListSubjects() should fail for a missing directory")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}
}

func TestLoadQuestions(t *testing.T) {
	dir := setupTestBank(t)

	questions, err := qbank.LoadQuestions(filepath.Join(dir, "Cardiology.json"))
	if err != nil {
		t.Fatalf("LoadQuestions() error = %v", err)
	}
	if len(questions) != 3 {
		t.Fatalf("len(questions) = %d, want 3", len(questions))
	}
	if got := string(questions[0]); got != `{"id":1,"q":"Most common valve lesion in RHD?"}` {
		t.Errorf("questions[0] = %s", got)
	}
}

func TestReadQuestions(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     int
		wantLine int // 0 means no parse error expected
	}{
		{"empty", "", 0, 0},
		{"blank lines skipped", "\n{\"a\":1}\n\n   \n{\"a\":2}\n", 2, 0},
		{"crlf", "{\"a\":1}\r\n{\"a\":2}\r\n", 2, 0},
		{"no trailing newline", `{"a":1}`, 1, 0},
		{"non-object values", "[1,2]\n\"text\"\n42\n", 3, 0},
		{"malformed line", "{\"a\":1}\n\n{\"a\":\n", 0, 3},
		{"trailing garbage", "{\"a\":1} {\"b\":2}\n", 0, 1},
		{"invalid utf-8", "{\"a\":1}\n{\"q\":\"bad \xff\xfe byte\"}\n", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := qbank.ReadQuestions(strings.NewReader(tt.input), "test.json")
			if tt.wantLine > 0 {
				var perr *qbank.ParseError
				if !errors.As(err, &perr) {
					t.Fatalf("error = %v, want *ParseError", err)
				}
				if perr.Line != tt.wantLine {
					t.Errorf("ParseError.Line = %d, want %d", perr.Line, tt.wantLine)
				}
				if perr.Path != "test.json" {
					t.Errorf("ParseError.Path = %q, want test.json", perr.Path)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadQuestions() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestReadQuestions_LongLine(t *testing.T) {
	long := `{"stem":"` + strings.Repeat("x", 200*1024) + `"}`
	got, err := qbank.ReadQuestions(strings.NewReader(long+"\n"), "long.json")
	if err != nil {
		t.Fatalf("ReadQuestions() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("len = %d, want 1", len(got))
	}
}

func setupTestBank(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	os.WriteFile(filepath.Join(dir, "Cardiology.json"), []byte(`{"id":1,"q":"Most common valve lesion in RHD?"}
{"id":2,"q":"Drug of choice for PSVT?"}

{"id":3,"q":"Beck's triad is seen in?"}
`), 0o644)

	os.WriteFile(filepath.Join(dir, "Pharmacology.json"), []byte(`{"id":1}
{"id":2}
`), 0o644)

	os.WriteFile(filepath.Join(dir, "General Medicine.json"), []byte(`{"id":1}
`), 0o644)

	os.WriteFile(filepath.Join(dir, "README.md"), []byte("# QBank"), 0o644)

	return dir
}
