// Package verify checks a written questions file before it is handed to the
// quiz front-end.
package verify

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/mcqx/internal/mcq"
)

// Severity separates problems that make the file unusable from ones that
// only deserve a look.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one finding. Question is the 1-based position in the file, or 0
// for file-level findings.
type Issue struct {
	Severity Severity
	Question int
	Message  string
}

func (i Issue) String() string {
	if i.Question == 0 {
		return i.Message
	}
	return fmt.Sprintf("question %d: %s", i.Question, i.Message)
}

// Report is the outcome of checking a questions file.
type Report struct {
	Count    int
	Expected int
	Issues   []Issue
}

// Errors returns the error-severity issues.
func (r *Report) Errors() []Issue { return r.filter(SeverityError) }

// Warnings returns the warning-severity issues.
func (r *Report) Warnings() []Issue { return r.filter(SeverityWarning) }

// OK reports whether the file has no errors. Warnings do not count.
func (r *Report) OK() bool { return len(r.Errors()) == 0 }

func (r *Report) filter(s Severity) []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Severity == s {
			out = append(out, i)
		}
	}
	return out
}

func (r *Report) add(s Severity, question int, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{Severity: s, Question: question, Message: fmt.Sprintf(format, args...)})
}

// Verifier checks questions files. It is safe for concurrent use.
type Verifier struct {
	validate *validator.Validate
}

// New creates a Verifier.
func New() *Verifier {
	return &Verifier{validate: validator.New()}
}

// Check verifies raw file contents. expected is the question count the
// source document is known to hold; 0 disables the count check. An error is
// returned only when data is not JSON at all.
func (v *Verifier) Check(data []byte, expected int) (*Report, error) {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	r := &Report{Expected: expected}
	if arr, ok := parsed.([]any); ok {
		r.Count = len(arr)
	}
	if err := validateSchema(parsed); err != nil {
		r.add(SeverityError, 0, "%v", err)
	}

	var questions []mcq.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		// Shape is wrong enough that per-question checks are meaningless;
		// the schema issue above already says why.
		return r, nil
	}
	v.checkQuestions(r, questions)
	return r, nil
}

// CheckQuestions verifies already-decoded questions.
func (v *Verifier) CheckQuestions(questions []mcq.Question, expected int) *Report {
	r := &Report{Count: len(questions), Expected: expected}
	v.checkQuestions(r, questions)
	return r
}

func (v *Verifier) checkQuestions(r *Report, questions []mcq.Question) {
	if expected := r.Expected; expected > 0 && len(questions) != expected {
		r.add(SeverityWarning, 0, "expected %d questions, found %d", expected, len(questions))
	}

	for i, q := range questions {
		pos := i + 1
		if err := v.validate.Struct(q); err != nil {
			var fieldErrs validator.ValidationErrors
			if !errors.As(err, &fieldErrs) {
				r.add(SeverityError, pos, "%v", err)
				continue
			}
			for _, fe := range fieldErrs {
				r.add(SeverityError, pos, "%s", describeFieldError(fe, q))
			}
		}

		if q.ID > 0 && q.ID != pos {
			r.add(SeverityWarning, pos, "id is %d, expected %d", q.ID, pos)
		}
		for oi, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				r.add(SeverityWarning, pos, "option %d is empty", oi+1)
			}
		}
	}
}

func describeFieldError(fe validator.FieldError, q mcq.Question) string {
	switch fe.Field() {
	case "ID":
		return fmt.Sprintf("'id' must be a positive integer (found %d)", q.ID)
	case "Question":
		return "'question' is missing or empty"
	case "Options":
		return fmt.Sprintf("must have exactly 4 options, found %d", len(q.Options))
	case "AnswerIndex":
		return fmt.Sprintf("'answerIndex' must be 0, 1, 2, or 3 (found %d)", q.AnswerIndex)
	}
	return fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag())
}
