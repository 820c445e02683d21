// Package mcq segments flat PDF text into multiple-choice question records.
//
// The scan is positional: a numbered line opens a block, up to four lettered
// lines follow as options, and an "Answer: X" style line shortly after the
// options selects the correct choice. Blocks that do not produce exactly four
// options are dropped and the scan resumes one line past their anchor.
package mcq

import (
	"strings"
	"unicode/utf8"
)

// block is a parsed question before an id is assigned.
type block struct {
	text        string
	options     []string
	answerIndex int
}

// Extract scans lines and returns the questions found, with ids assigned
// from 1 in order. It never fails; malformed blocks are skipped.
func Extract(lines []string, cfg Config) []Question {
	return Scan(lines, cfg).Questions
}

// Scan is Extract with anchor statistics.
func Scan(lines []string, cfg Config) Result {
	var res Result
	i := 0
	for i < len(lines) {
		if _, _, ok := matchQuestionAnchor(lineAt(lines, i)); !ok {
			i++
			continue
		}
		res.Anchors++

		b, next, ok := parseBlock(lines, i, cfg)
		i = next
		if !ok {
			res.Discarded++
			continue
		}
		res.Questions = append(res.Questions, Question{
			ID:          len(res.Questions) + 1,
			Question:    b.text,
			Options:     b.options,
			AnswerIndex: clampAnswer(b.answerIndex),
		})
	}
	return res
}

// SplitLines turns page texts into the flat line sequence the scanner reads.
// Each page is terminated by a newline before splitting.
func SplitLines(pages []string) []string {
	var sb strings.Builder
	for _, p := range pages {
		sb.WriteString(p)
		sb.WriteByte('\n')
	}
	return strings.Split(sb.String(), "\n")
}

// parseBlock parses the question block anchored at lines[start]. It returns
// the cursor the scan should continue from: past the options on success,
// one line past the (possibly continued) anchor otherwise.
func parseBlock(lines []string, start int, cfg Config) (block, int, bool) {
	_, text, ok := matchQuestionAnchor(lineAt(lines, start))
	if !ok {
		return block{}, start + 1, false
	}

	cur := start
	if utf8.RuneCountInString(text) < cfg.QuestionMinLen && cur+1 < len(lines) {
		cur++
		text += " " + lineAt(lines, cur)
	}

	options, j := scanOptions(lines, cur, cfg)
	answer := scanAnswer(lines, j, cfg)

	if text == "" || len(options) != 4 {
		return block{}, cur + 1, false
	}
	return block{text: text, options: options, answerIndex: answer}, j, true
}

// scanOptions collects up to four options starting on the line after
// questionLine and returns them with the index the scan stopped at.
func scanOptions(lines []string, questionLine int, cfg Config) ([]string, int) {
	options := make([]string, 0, 4)
	j := questionLine + 1
	for j < len(lines) && len(options) < 4 {
		if _, text, ok := matchOptionAnchor(lineAt(lines, j)); ok {
			if utf8.RuneCountInString(text) < cfg.OptionMinLen && j+1 < len(lines) {
				if next := lineAt(lines, j+1); !looksLikeOption(next) {
					text += " " + next
					j++
				}
			}
			options = append(options, text)
		}
		j++
		if j-questionLine > cfg.OptionScanLimit {
			break
		}
	}
	return options, j
}

// scanAnswer looks for an answer indicator in the window following the
// options. It returns 0 when none is found.
func scanAnswer(lines []string, from int, cfg Config) int {
	end := min(from+cfg.AnswerWindow, len(lines))
	for k := from; k < end; k++ {
		if idx, _, ok := findAnswerLetter(lineAt(lines, k)); ok {
			return idx
		}
	}
	return 0
}

func lineAt(lines []string, i int) string {
	return strings.TrimSpace(lines[i])
}

func clampAnswer(idx int) int {
	return max(0, min(3, idx))
}
