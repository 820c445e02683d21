// Package config resolves mcqx settings from defaults, an optional YAML
// file, a .env file and MCQX_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/mcqx/internal/mcq"
)

// Config holds all mcqx settings.
type Config struct {
	// Source is the PDF question bank.
	Source string `yaml:"source"`

	// Output is the JSON file the quiz front-end loads.
	Output string `yaml:"output"`

	// XLSX is an optional workbook export path. Empty disables it.
	XLSX string `yaml:"xlsx"`

	// Expected is the question count the source is known to hold. A
	// different count is reported, not treated as failure. 0 disables.
	Expected int `yaml:"expected"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	Extract mcq.Config `yaml:"extract"`
}

// DefaultConfig returns the settings for the known source document.
func DefaultConfig() Config {
	return Config{
		Source:   "IM_MCQ_UNITS3,4,5,6.pdf",
		Output:   "public/questions.json",
		Expected: 213,
		LogLevel: "info",
		Extract:  mcq.DefaultConfig(),
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the environment, then validates it.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDotEnv loads variables from the given .env files (default ".env")
// without overriding ones already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("MCQX_SOURCE"); v != "" {
		cfg.Source = v
	}
	if v := os.Getenv("MCQX_OUTPUT"); v != "" {
		cfg.Output = v
	}
	if v := os.Getenv("MCQX_XLSX"); v != "" {
		cfg.XLSX = v
	}
	if v := os.Getenv("MCQX_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"MCQX_EXPECTED", &cfg.Expected},
		{"MCQX_QUESTION_MIN_LEN", &cfg.Extract.QuestionMinLen},
		{"MCQX_OPTION_MIN_LEN", &cfg.Extract.OptionMinLen},
		{"MCQX_OPTION_SCAN_LIMIT", &cfg.Extract.OptionScanLimit},
		{"MCQX_ANSWER_WINDOW", &cfg.Extract.AnswerWindow},
	}
	for _, e := range ints {
		v := os.Getenv(e.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %q is not an integer", e.key, v)
		}
		*e.dst = n
	}
	return nil
}

// Validate checks paths, the log level and the extractor thresholds.
func (c Config) Validate() error {
	if c.Output == "" {
		return fmt.Errorf("output path is required")
	}
	if c.Expected < 0 {
		return fmt.Errorf("expected must be >= 0, got %d", c.Expected)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	if err := c.Extract.Validate(); err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	return nil
}
