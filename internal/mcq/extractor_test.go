package mcq

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoQuestionLines() []string {
	return []string{
		"1. What is 2+2?", "A) 3", "B) 4", "C) 5", "D) 6", "Answer: B",
		"2. What is 3+3?", "A) 5", "B) 6", "C) 7", "D) 9", "Ans: C",
	}
}

func TestExtract_EndToEnd(t *testing.T) {
	got := Extract(twoQuestionLines(), DefaultConfig())

	want := []Question{
		{ID: 1, Question: "What is 2+2?", Options: []string{"3", "4", "5", "6"}, AnswerIndex: 1},
		{ID: 2, Question: "What is 3+3?", Options: []string{"5", "6", "7", "9"}, AnswerIndex: 2},
	}
	assert.Equal(t, want, got)
}

func TestExtract_Idempotent(t *testing.T) {
	lines := twoQuestionLines()

	first, err := json.Marshal(Extract(lines, DefaultConfig()))
	require.NoError(t, err)
	second, err := json.Marshal(Extract(lines, DefaultConfig()))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExtract_DoesNotModifyInput(t *testing.T) {
	lines := []string{"  1. What is 2+2?  ", " A) 3", "B) 4 ", "C) 5", "D) 6"}
	orig := append([]string(nil), lines...)

	got := Extract(lines, DefaultConfig())

	require.Len(t, got, 1)
	assert.Equal(t, orig, lines)
	assert.Equal(t, "What is 2+2?", got[0].Question)
}

func TestExtract_QuestionContinuation(t *testing.T) {
	lines := []string{"5. Wh", "at is 2+2?", "A) four", "B) three", "C) fives", "D) sixes"}

	got := Extract(lines, DefaultConfig())

	require.Len(t, got, 1)
	assert.Equal(t, "Wh at is 2+2?", got[0].Question)
	assert.Equal(t, []string{"four", "three", "fives", "sixes"}, got[0].Options)
}

func TestExtract_OptionContinuation(t *testing.T) {
	lines := []string{
		"1. Which statement holds?",
		"A) 4", "is correct",
		"B) it is five",
		"C) it is six",
		"D) it is nine",
	}

	got := Extract(lines, DefaultConfig())

	require.Len(t, got, 1)
	assert.Equal(t, []string{"4 is correct", "it is five", "it is six", "it is nine"}, got[0].Options)
}

func TestExtract_ShortOptionNotMergedWithNextOption(t *testing.T) {
	lines := []string{"1. What is 2+2?", "A) 3", "B) 4", "c. 5", "d. 6"}

	got := Extract(lines, DefaultConfig())

	require.Len(t, got, 1)
	assert.Equal(t, []string{"3", "4", "5", "6"}, got[0].Options)
}

func TestExtract_AnswerExtraction(t *testing.T) {
	tests := []struct {
		name   string
		answer []string
		want   int
	}{
		{"colon upper", []string{"Answer: C"}, 2},
		{"short form", []string{"Ans: d"}, 3},
		{"no space after colon", []string{"ANSWER:B"}, 1},
		{"after blank lines", []string{"", "", "Answer: C"}, 2},
		{"keyword without letter keeps searching", []string{"Answer:", "Ans: C"}, 2},
		{"keyword word supplies its own letter", []string{"Correct answer is C"}, 0},
		{"no indicator", []string{"some trailing text"}, 0},
		{"outside window", []string{"x", "x", "x", "x", "x", "Answer: C"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := append([]string{"1. What is 2+2?", "A) 3", "B) 4", "C) 5", "D) 6"}, tt.answer...)

			got := Extract(lines, DefaultConfig())

			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].AnswerIndex)
		})
	}
}

func TestExtract_DropOnMismatch(t *testing.T) {
	lines := []string{"1. Which planet is largest?", "A) Mars", "B) Jupiter", "C) Venus"}
	for range 12 {
		lines = append(lines, "page footer")
	}
	lines = append(lines, "2. What color is the sky?", "A) Red", "B) Blue", "C) Green", "D) Yellow", "Answer: B")

	res := Scan(lines, DefaultConfig())

	require.Len(t, res.Questions, 1)
	assert.Equal(t, Question{
		ID:          1,
		Question:    "What color is the sky?",
		Options:     []string{"Red", "Blue", "Green", "Yellow"},
		AnswerIndex: 1,
	}, res.Questions[0])
	assert.Equal(t, 2, res.Anchors)
	assert.Equal(t, 1, res.Discarded)
}

func TestExtract_TruncatedBlockAtEnd(t *testing.T) {
	lines := append(twoQuestionLines(), "3. What is 4+4?", "A) 8", "B) 9")

	got := Extract(lines, DefaultConfig())

	assert.Len(t, got, 2)
}

func TestExtract_Invariants(t *testing.T) {
	lines := []string{
		"Unit 3 question bank",
		"1. What is 2+2?", "A) 3", "B) 4", "C) 5", "D) 6", "Answer: B",
		"12.5 percent of candidates skip this",
		"2. Which is a prime?", "a. 4", "b. 6", "c. 7", "d. 8", "Ans: c",
		"3. Which is even?", "A) 1", "B) 3",
		"4. Pick the vowel", "A) b", "B) c", "C) e", "D) f", "answer: c",
	}

	got := Extract(lines, DefaultConfig())

	require.NotEmpty(t, got)
	for i, q := range got {
		assert.Equal(t, i+1, q.ID)
		assert.NotEmpty(t, q.Question)
		assert.Len(t, q.Options, 4)
		assert.GreaterOrEqual(t, q.AnswerIndex, 0)
		assert.LessOrEqual(t, q.AnswerIndex, 3)
	}
}

func TestExtract_CustomThresholds(t *testing.T) {
	lines := []string{"1. Define it!", "in one word", "A) x", "B) y", "C) z", "D) w"}

	def := Extract(lines, DefaultConfig())
	require.Len(t, def, 1)
	assert.Equal(t, "Define it!", def[0].Question)

	cfg := DefaultConfig()
	cfg.QuestionMinLen = 12
	got := Extract(lines, cfg)
	require.Len(t, got, 1)
	assert.Equal(t, "Define it! in one word", got[0].Question)
}

func TestExtract_EmptyInput(t *testing.T) {
	assert.Empty(t, Extract(nil, DefaultConfig()))
	assert.Empty(t, Extract([]string{"", "no questions here"}, DefaultConfig()))
}

func TestParseBlock_NextCursor(t *testing.T) {
	lines := twoQuestionLines()

	b, next, ok := parseBlock(lines, 0, DefaultConfig())
	require.True(t, ok)
	assert.Equal(t, 5, next)
	assert.Equal(t, "What is 2+2?", b.text)

	_, next, ok = parseBlock([]string{"9. Short", "tail", "A) 1"}, 0, DefaultConfig())
	assert.False(t, ok)
	assert.Equal(t, 2, next)
}

func TestSplitLines(t *testing.T) {
	got := SplitLines([]string{"1. a\nA) x", "B) y"})
	assert.Equal(t, []string{"1. a", "A) x", "B) y", ""}, got)
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.OptionScanLimit = 2
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.AnswerWindow = -1
	assert.Error(t, cfg.Validate())
}
