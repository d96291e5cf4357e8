package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/p-n-ai/quizgen/internal/qbank"
)

// Status classifies the outcome of a generation run.
type Status string

const (
	StatusWritten    Status = "written"
	StatusEmpty      Status = "empty"
	StatusParseError Status = "parse_error"
	StatusIOError    Status = "io_error"
	StatusInvalid    Status = "invalid"
	StatusCanceled   Status = "canceled"
)

// ErrNoSubjects is returned when the bank holds no subject files.
var ErrNoSubjects = errors.New("no subject files found")

// Result describes a finished run.
type Result struct {
	Status Status
	Quiz   Quiz
	Path   string
	Count  int
	Err    error
}

// OK reports whether the run ended without an error. An empty bank is OK.
func (r Result) OK() bool {
	return r.Status == StatusWritten || r.Status == StatusEmpty
}

// Options configures a Generator.
type Options struct {
	BankDir      string
	OutputPath   string
	NumQuestions int
	XLSXPath     string // optional workbook export

	Rand   *rand.Rand       // nil uses a randomly seeded source
	Now    func() time.Time // nil uses time.Now
	Logger *slog.Logger     // nil uses slog.Default()
}

// Generator composes quizzes from a question bank directory.
type Generator struct {
	bankDir      string
	outputPath   string
	numQuestions int
	xlsxPath     string
	rng          *rand.Rand
	now          func() time.Time
	log          *slog.Logger
}

// NewGenerator creates a Generator, filling unset options with defaults.
func NewGenerator(opts Options) *Generator {
	g := &Generator{
		bankDir:      opts.BankDir,
		outputPath:   opts.OutputPath,
		numQuestions: opts.NumQuestions,
		xlsxPath:     opts.XLSXPath,
		rng:          opts.Rand,
		now:          opts.Now,
		log:          opts.Logger,
	}
	if g.numQuestions < 1 {
		g.numQuestions = DefaultNumQuestions
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if g.now == nil {
		g.now = time.Now
	}
	if g.log == nil {
		g.log = slog.Default()
	}
	return g
}

// Run generates a quiz and never fails: every error is logged and reported
// through the returned Result.
func (g *Generator) Run(ctx context.Context) Result {
	res, err := g.Generate(ctx)
	switch {
	case errors.Is(err, ErrNoSubjects):
		g.log.Info("no subject files found", "dir", g.bankDir)
		return Result{Status: StatusEmpty}
	case err != nil:
		res.Status = classify(err)
		res.Err = err
		g.log.Error("error generating quiz", "status", res.Status, "error", err)
		return res
	}

	g.log.Info("quiz generated",
		"quiz_id", res.Quiz.ID,
		"questions", res.Count,
		"path", res.Path,
	)
	return res
}

// Generate picks a subject, samples its questions, and writes the quiz.
// It returns ErrNoSubjects when the bank has no subject files; in that case
// nothing is written.
func (g *Generator) Generate(ctx context.Context) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	subjects, err := qbank.ListSubjects(g.bankDir)
	if err != nil {
		return Result{}, err
	}
	if len(subjects) == 0 {
		return Result{}, ErrNoSubjects
	}

	subject := subjects[g.rng.IntN(len(subjects))]
	g.log.Info("selecting questions", "subject", subject.Name)

	questions, err := qbank.LoadQuestions(subject.Path)
	if err != nil {
		return Result{}, err
	}
	if len(questions) < g.numQuestions {
		g.log.Debug("subject has fewer questions than requested",
			"subject", subject.Name,
			"available", len(questions),
			"requested", g.numQuestions,
		)
	}

	q := Quiz{
		ID:        ID(subject.Name, g.now()),
		Subject:   subject.Name,
		Questions: Sample(g.rng, questions, g.numQuestions),
	}
	res := Result{Quiz: q, Path: g.outputPath, Count: len(q.Questions)}

	doc, err := Encode(q)
	if err != nil {
		return res, fmt.Errorf("encoding quiz: %w", err)
	}
	if err := Validate(doc); err != nil {
		return res, err
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}
	if err := writeFile(g.outputPath, doc); err != nil {
		return res, err
	}

	if g.xlsxPath != "" {
		if err := ExportXLSX(q, g.xlsxPath); err != nil {
			return res, fmt.Errorf("exporting %s: %w", g.xlsxPath, err)
		}
		g.log.Debug("quiz exported", "path", g.xlsxPath)
	}

	res.Status = StatusWritten
	return res, nil
}

func writeFile(path string, doc []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return fmt.Errorf("writing quiz: %w", err)
	}
	return nil
}

func classify(err error) Status {
	var perr *qbank.ParseError
	var verr *ValidationError
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return StatusCanceled
	case errors.As(err, &perr):
		return StatusParseError
	case errors.As(err, &verr):
		return StatusInvalid
	default:
		return StatusIOError
	}
}
