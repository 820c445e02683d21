package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mcqx/internal/output"
	"github.com/abhisek/mcqx/internal/source"
	"github.com/abhisek/mcqx/internal/source/sourcetest"
	"github.com/abhisek/mcqx/internal/store"
)

func bankPages() [][]string {
	return [][]string{
		{"Unit 3", "1. What is 2+2?", "A) 3", "B) 4", "C) 5", "D) 6", "Answer: B"},
		{"2. What is 3+3?", "A) 5", "B) 6", "C) 7", "D) 9", "Ans: C"},
	}
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("MCQX_DB", filepath.Join(t.TempDir(), "mcqx.db"))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		resetFlags()
	})

	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores flag values between runs of the shared command tree.
func resetFlags() {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	rootCmd.PersistentFlags().VisitAll(reset)
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(reset)
	}
}

func TestExtract_WritesQuestions(t *testing.T) {
	pdfPath := sourcetest.WritePDF(t, bankPages())
	outPath := filepath.Join(t.TempDir(), "public", "questions.json")

	stdout, err := execute(t, "extract", pdfPath, "--out", outPath, "--expected", "2")
	require.NoError(t, err)

	questions, err := output.ReadJSON(outPath)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, "What is 2+2?", questions[0].Question)
	assert.Equal(t, 1, questions[0].AnswerIndex)
	assert.Equal(t, []string{"5", "6", "7", "9"}, questions[1].Options)
	assert.Equal(t, 2, questions[1].AnswerIndex)

	assert.Contains(t, stdout, "with 2 questions")
	assert.Contains(t, stdout, `"question": "What is 2+2?"`)
	assert.NotContains(t, stdout, "Note: expected")
}

func TestExtract_CountMismatchIsNote(t *testing.T) {
	pdfPath := sourcetest.WritePDF(t, bankPages())
	outPath := filepath.Join(t.TempDir(), "questions.json")

	stdout, err := execute(t, "extract", pdfPath, "--out", outPath)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Note: expected 213 questions but found 2")
}

func TestExtract_XLSXAndArchive(t *testing.T) {
	pdfPath := sourcetest.WritePDF(t, bankPages())
	dir := t.TempDir()

	_, err := execute(t, "extract", pdfPath, "--out", filepath.Join(dir, "q.json"), "--xlsx", filepath.Join(dir, "q.xlsx"), "--archive")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "q.xlsx"))

	s, err := openStore(rootCmd)
	require.NoError(t, err)
	defer s.Close()
	run, err := s.GetRun(t.Context(), "latest")
	require.NoError(t, err)
	assert.Len(t, run.Questions, 2)
	assert.Equal(t, pdfPath, run.Source)
}

func TestExtract_UnreadableSource(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "questions.json")

	_, err := execute(t, "extract", filepath.Join(t.TempDir(), "missing.pdf"), "--out", outPath)

	var readErr *source.ReadError
	require.ErrorAs(t, err, &readErr)
	assert.NoFileExists(t, outPath)
}

func TestExtract_UndecodablePageAborts(t *testing.T) {
	pdfPath := sourcetest.WriteBrokenPDF(t, bankPages(), 2)
	outPath := filepath.Join(t.TempDir(), "questions.json")

	_, err := execute(t, "extract", pdfPath, "--out", outPath)

	var readErr *source.ReadError
	require.ErrorAs(t, err, &readErr)
	assert.Contains(t, err.Error(), "page 2")
	assert.NoFileExists(t, outPath)
}

func TestExtract_NoQuestions(t *testing.T) {
	pdfPath := sourcetest.WritePDF(t, [][]string{{"Preface", "This bank has no questions yet."}})
	outPath := filepath.Join(t.TempDir(), "questions.json")

	_, err := execute(t, "extract", pdfPath, "--out", outPath)

	require.ErrorIs(t, err, ErrNoQuestions)
	assert.NoFileExists(t, outPath)
}

func TestVerify(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`[{"id":1,"question":"q?","options":["a","b","c","d"],"answerIndex":0}]`), 0o644))
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"id":1,"question":"q?","options":["a","b"],"answerIndex":5}]`), 0o644))

	stdout, err := execute(t, "verify", good, "--expected", "1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "All 1 questions are valid")

	stdout, err = execute(t, "verify", bad, "--expected", "1")
	require.Error(t, err)
	assert.Contains(t, stdout, "must have exactly 4 options, found 2")
}

func TestHistory_Empty(t *testing.T) {
	stdout, err := execute(t, "history")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No archived runs")
}

func TestHistory_ListsArchivedRuns(t *testing.T) {
	pdfPath := sourcetest.WritePDF(t, bankPages())
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	_, err := execute(t, "extract", pdfPath, "--out", filepath.Join(t.TempDir(), "q.json"), "--archive", "--db", dbPath)
	require.NoError(t, err)

	stdout, err := execute(t, "history", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "QUESTIONS")
	assert.Contains(t, stdout, pdfPath)
	assert.Contains(t, stdout, "╭")
	assert.NotContains(t, stdout, "No archived runs")
}

func TestRenderRuns(t *testing.T) {
	runs := []store.Run{
		{ID: "run-b", Source: "bank.pdf", CreatedAt: time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC), Count: 213, Discarded: 4},
		{ID: "run-a", Source: "old.pdf", CreatedAt: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC), Count: 210},
	}

	out := renderRuns(runs)

	for _, want := range []string{"RUN", "DISCARDED", "run-b", "bank.pdf", "2026-03-02 09:30", "213", "run-a"} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, strings.Index(out, "run-b"), strings.Index(out, "run-a"), "keeps the given order")
}

func TestLoadForBrowse_RejectsFileAndRun(t *testing.T) {
	require.NoError(t, browseCmd.Flags().Set("run", "latest"))
	t.Cleanup(resetFlags)

	_, _, err := loadForBrowse(browseCmd, []string{"questions.json"})
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	stdout, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "mcqx (devel)")
}

func TestVersion_IgnoresBrokenConfig(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "mcqx.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("extract: [not, a, map"), 0o644))

	_, err := execute(t, "verify", "--config", bad)
	require.Error(t, err, "other commands still load the config")

	stdout, err := execute(t, "version", "--config", bad)
	require.NoError(t, err)
	assert.Contains(t, stdout, "mcqx (devel)")
}
