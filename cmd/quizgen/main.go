// Command quizgen writes a quiz sampled from one random question bank
// subject. It is meant to be run by a scheduler; it exits 0 unless --strict
// is set and generation failed.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/p-n-ai/quizgen/internal/platform/config"
	"github.com/p-n-ai/quizgen/internal/quiz"
)

// version is set via -ldflags at build time.
var version = "(devel)"

func main() {
	if err := newRootCmd(os.Stdout).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "quizgen",
		Short:         "Generate a quiz from a random question bank subject",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, stdout)
		},
	}

	f := root.Flags()
	f.String("config", "", "Path to a YAML config file")
	f.String("qbank", "", "Question bank directory (overrides QUIZGEN_QBANK_PATH)")
	f.String("output", "", "Output file path (overrides QUIZGEN_OUTPUT_DIR and QUIZGEN_OUTPUT_FILE)")
	f.Int("questions", 0, "Number of questions (overrides QUIZGEN_NUM_QUESTIONS)")
	f.String("xlsx", "", "Also export the quiz to this .xlsx path")
	f.Bool("strict", false, "Exit non-zero when generation fails")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(stdout, "quizgen", version)
		},
	})

	return root
}

func run(cmd *cobra.Command, stdout io.Writer) error {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.LoadFile(configPath)
	if err == nil {
		err = applyFlags(cmd, cfg)
	}
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		slog.New(slog.NewJSONHandler(stdout, nil)).Error("failed to load config", "error", err)
		if strictRequested(cmd, cfg) {
			return err
		}
		return nil
	}

	logger := newLogger(stdout, cfg.Log).With("run_id", uuid.NewString())
	slog.SetDefault(logger)

	g := quiz.NewGenerator(quiz.Options{
		BankDir:      cfg.QBank.Path,
		OutputPath:   cfg.OutputPath(),
		NumQuestions: cfg.QBank.NumQuestions,
		XLSXPath:     cfg.Export.XLSXPath,
		Logger:       logger,
	})

	res := g.Run(cmd.Context())
	if cfg.Strict && !res.OK() {
		return fmt.Errorf("quiz generation %s: %w", res.Status, res.Err)
	}
	return nil
}

// strictRequested combines --strict with the strict setting from whatever
// configuration loaded. cfg is nil when the config file itself failed.
func strictRequested(cmd *cobra.Command, cfg *config.Config) bool {
	if strict, _ := cmd.Flags().GetBool("strict"); strict {
		return true
	}
	if cfg != nil {
		return cfg.Strict
	}
	return config.StrictFromEnv()
}

// applyFlags overrides cfg with flags set on the command line.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	var err error
	if f.Changed("qbank") {
		cfg.QBank.Path, err = f.GetString("qbank")
	}
	if err == nil && f.Changed("output") {
		var p string
		if p, err = f.GetString("output"); err == nil {
			cfg.Output.Dir, cfg.Output.File = filepath.Split(p)
		}
	}
	if err == nil && f.Changed("questions") {
		cfg.QBank.NumQuestions, err = f.GetInt("questions")
	}
	if err == nil && f.Changed("xlsx") {
		cfg.Export.XLSXPath, err = f.GetString("xlsx")
	}
	if err == nil && f.Changed("strict") {
		cfg.Strict, err = f.GetBool("strict")
	}
	return err
}

func newLogger(w io.Writer, lc config.LogConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(lc.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if lc.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
