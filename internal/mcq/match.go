package mcq

import (
	"regexp"
	"strings"
)

var (
	questionAnchor = regexp.MustCompile(`^(\d+)\.\s*(.+)`)
	optionAnchor   = regexp.MustCompile(`^([A-Da-d])[).]\s*(.+)`)
	optionPrefix   = regexp.MustCompile(`^[A-Da-d][).]`)
	answerLetter   = regexp.MustCompile(`[:\s]([a-d])`)
)

// matchQuestionAnchor reports whether line starts with "<number>." and
// returns the number and the trimmed remainder.
func matchQuestionAnchor(line string) (num, text string, ok bool) {
	m := questionAnchor.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], strings.TrimSpace(m[2]), true
}

// matchOptionAnchor reports whether line starts with a letter A-D followed
// by ")" or "." and returns the upper-cased letter and the trimmed text.
func matchOptionAnchor(line string) (letter byte, text string, ok bool) {
	m := optionAnchor.FindStringSubmatch(line)
	if m == nil {
		return 0, "", false
	}
	return strings.ToUpper(m[1])[0], strings.TrimSpace(m[2]), true
}

// looksLikeOption is the looser check used to stop an option continuation:
// the letter and delimiter alone are enough.
func looksLikeOption(line string) bool {
	return optionPrefix.MatchString(line)
}

// findAnswerLetter returns the answer index carried by an answer indicator
// line. hasKeyword reports whether the line mentions "answer" or "ans" at
// all; ok reports whether a letter A-D preceded by ":" or whitespace was found.
func findAnswerLetter(line string) (index int, hasKeyword, ok bool) {
	lower := strings.ToLower(line)
	if !strings.Contains(lower, "answer") && !strings.Contains(lower, "ans") {
		return 0, false, false
	}
	m := answerLetter.FindStringSubmatch(lower)
	if m == nil {
		return 0, true, false
	}
	return int(m[1][0] - 'a'), true, true
}
