// Package output writes extracted questions to the formats the quiz
// front-end and reviewers consume.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abhisek/mcqx/internal/mcq"
)

// MarshalJSON renders questions as an indented JSON array. Non-ASCII text
// and HTML characters are written as-is.
func MarshalJSON(questions []mcq.Question) ([]byte, error) {
	if questions == nil {
		questions = []mcq.Question{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(questions); err != nil {
		return nil, fmt.Errorf("encode questions: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// WriteJSON writes questions to path, creating the parent directory.
func WriteJSON(path string, questions []mcq.Question) error {
	data, err := MarshalJSON(questions)
	if err != nil {
		return err
	}
	if err := EnsureDir(path); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadJSON loads a questions file written by WriteJSON.
func ReadJSON(path string) ([]mcq.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var questions []mcq.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return questions, nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
