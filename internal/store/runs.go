package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/mcqx/internal/mcq"
)

// ErrRunNotFound is returned when a run id is not in the archive.
var ErrRunNotFound = errors.New("run not found")

// Run is one archived extraction.
type Run struct {
	ID        string
	Source    string
	CreatedAt time.Time
	Anchors   int
	Discarded int
	Count     int

	// Questions is populated by SaveRun callers and by GetRun; ListRuns
	// leaves it nil.
	Questions []mcq.Question
}

// NewRun builds a Run for res with a fresh id.
func NewRun(source string, res mcq.Result) *Run {
	return &Run{
		ID:        uuid.NewString(),
		Source:    source,
		CreatedAt: time.Now(),
		Anchors:   res.Anchors,
		Discarded: res.Discarded,
		Count:     len(res.Questions),
		Questions: res.Questions,
	}
}

// SaveRun stores run and its questions in one transaction. An empty ID is
// filled with a new UUID.
func (s *Store) SaveRun(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	run.Count = len(run.Questions)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, source, created_at, question_count, anchors, discarded) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Source, run.CreatedAt.UnixMilli(), run.Count, run.Anchors, run.Discarded)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO questions (run_id, id, question, options, answer_index) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare question insert: %w", err)
	}
	defer stmt.Close()

	for _, q := range run.Questions {
		opts, err := json.Marshal(q.Options)
		if err != nil {
			return fmt.Errorf("encode options of question %d: %w", q.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, run.ID, q.ID, q.Question, string(opts), q.AnswerIndex); err != nil {
			return fmt.Errorf("insert question %d: %w", q.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ListRuns returns archived runs, newest first. limit <= 0 means all.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, source, created_at, question_count, anchors, discarded FROM runs ORDER BY created_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *r)
	}
	return runs, rows.Err()
}

// GetRun loads a run with its questions. id "latest" selects the newest run.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	var row *sql.Row
	if id == "latest" {
		row = s.db.QueryRowContext(ctx,
			`SELECT id, source, created_at, question_count, anchors, discarded FROM runs ORDER BY created_at DESC, rowid DESC LIMIT 1`)
	} else {
		row = s.db.QueryRowContext(ctx,
			`SELECT id, source, created_at, question_count, anchors, discarded FROM runs WHERE id = ?`, id)
	}

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	run.Questions, err = s.questions(ctx, run.ID)
	if err != nil {
		return nil, err
	}
	return run, nil
}

func (s *Store) questions(ctx context.Context, runID string) ([]mcq.Question, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, question, options, answer_index FROM questions WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var out []mcq.Question
	for rows.Next() {
		var (
			q    mcq.Question
			opts string
		)
		if err := rows.Scan(&q.ID, &q.Question, &opts, &q.AnswerIndex); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		if err := json.Unmarshal([]byte(opts), &q.Options); err != nil {
			return nil, fmt.Errorf("decode options of question %d: %w", q.ID, err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(sc rowScanner) (*Run, error) {
	var (
		r       Run
		created int64
	)
	if err := sc.Scan(&r.ID, &r.Source, &created, &r.Count, &r.Anchors, &r.Discarded); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan run: %w", err)
	}
	r.CreatedAt = time.UnixMilli(created)
	return &r, nil
}
