package mcq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchQuestionAnchor(t *testing.T) {
	tests := []struct {
		line     string
		wantNum  string
		wantText string
		wantOK   bool
	}{
		{"1. What is 2+2?", "1", "What is 2+2?", true},
		{"213.Which layer", "213", "Which layer", true},
		{"7.   padded   ", "7", "padded", true},
		{"3.14 is roughly pi", "3", "14 is roughly pi", true},
		{"1.", "", "", false},
		{"1) What", "", "", false},
		{"Q1. What", "", "", false},
		{"", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			num, text, ok := matchQuestionAnchor(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantNum, num)
			assert.Equal(t, tt.wantText, text)
		})
	}
}

func TestMatchOptionAnchor(t *testing.T) {
	tests := []struct {
		line       string
		wantLetter byte
		wantText   string
		wantOK     bool
	}{
		{"A) 3", 'A', "3", true},
		{"b. Jupiter", 'B', "Jupiter", true},
		{"D)six", 'D', "six", true},
		{"c)   spaced  ", 'C', "spaced", true},
		{"E) out of range", 0, "", false},
		{"A: colon", 0, "", false},
		{"A)", 0, "", false},
		{"(A) wrapped", 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			letter, text, ok := matchOptionAnchor(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantLetter, letter)
			assert.Equal(t, tt.wantText, text)
		})
	}
}

func TestLooksLikeOption(t *testing.T) {
	assert.True(t, looksLikeOption("A)"))
	assert.True(t, looksLikeOption("d. anything"))
	assert.False(t, looksLikeOption("is correct"))
	assert.False(t, looksLikeOption("F) no"))
}

func TestFindAnswerLetter(t *testing.T) {
	tests := []struct {
		line        string
		wantIndex   int
		wantKeyword bool
		wantOK      bool
	}{
		{"Answer: C", 2, true, true},
		{"ANS: a", 0, true, true},
		{"ans:d", 3, true, true},
		{"Answer - (B)", 0, true, false},
		{"Answer:", 0, true, false},
		{"answer b", 1, true, true},
		{"The right option is C", 0, false, false},
		{"", 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			idx, kw, ok := findAnswerLetter(tt.line)
			assert.Equal(t, tt.wantKeyword, kw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantIndex, idx)
		})
	}
}
