// Package config loads quiz generator configuration from an optional YAML
// file and environment variables. All variables use the QUIZGEN_ prefix.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	QBank  QBankConfig  `yaml:"qbank"`
	Output OutputConfig `yaml:"output"`
	Export ExportConfig `yaml:"export"`
	Log    LogConfig    `yaml:"log"`
	Strict bool         `yaml:"strict"`
}

// QBankConfig holds question bank settings.
type QBankConfig struct {
	Path         string `yaml:"path"`
	NumQuestions int    `yaml:"num_questions"`
}

// OutputConfig holds where the generated quiz is written.
type OutputConfig struct {
	Dir  string `yaml:"dir"`
	File string `yaml:"file"`
}

// ExportConfig holds optional companion exports.
type ExportConfig struct {
	XLSXPath string `yaml:"xlsx_path"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Defaults returns the configuration used when nothing is overridden.
func Defaults() *Config {
	return &Config{
		QBank: QBankConfig{
			Path:         "./assets/qbank",
			NumQuestions: 10,
		},
		Output: OutputConfig{
			Dir:  "./quiz",
			File: "quiz_data.json",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads configuration from environment variables with QUIZGEN_ prefix.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile applies the YAML file at path (if non-empty) over the defaults,
// then applies environment overrides.
func LoadFile(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	cfg.QBank.Path = envStr("QUIZGEN_QBANK_PATH", cfg.QBank.Path)
	cfg.QBank.NumQuestions = envInt("QUIZGEN_NUM_QUESTIONS", cfg.QBank.NumQuestions)
	cfg.Output.Dir = envStr("QUIZGEN_OUTPUT_DIR", cfg.Output.Dir)
	cfg.Output.File = envStr("QUIZGEN_OUTPUT_FILE", cfg.Output.File)
	cfg.Export.XLSXPath = envStr("QUIZGEN_EXPORT_XLSX", cfg.Export.XLSXPath)
	cfg.Strict = envBool("QUIZGEN_STRICT", cfg.Strict)
	cfg.Log.Level = envStr("QUIZGEN_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = envStr("QUIZGEN_LOG_FORMAT", cfg.Log.Format)

	return cfg, nil
}

// OutputPath joins the output directory and file name.
func (c *Config) OutputPath() string {
	return filepath.Join(c.Output.Dir, c.Output.File)
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.QBank.Path == "" {
		return fmt.Errorf("QUIZGEN_QBANK_PATH is required")
	}

	if c.Output.File == "" {
		return fmt.Errorf("QUIZGEN_OUTPUT_FILE is required")
	}

	if c.QBank.NumQuestions < 1 {
		return fmt.Errorf("QUIZGEN_NUM_QUESTIONS must be at least 1, got %d", c.QBank.NumQuestions)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("QUIZGEN_LOG_LEVEL must be one of debug, info, warn, error, got %q", c.Log.Level)
	}

	if c.Log.Format != "json" && c.Log.Format != "text" {
		return fmt.Errorf("QUIZGEN_LOG_FORMAT must be 'json' or 'text', got %q", c.Log.Format)
	}

	return nil
}

// StrictFromEnv reports whether QUIZGEN_STRICT asks for strict mode. It is
// used when the rest of the configuration could not be loaded.
func StrictFromEnv() bool {
	return envBool("QUIZGEN_STRICT", false)
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return strings.EqualFold(v, "true") || v == "1"
	}
	return fallback
}
