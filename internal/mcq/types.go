package mcq

// Question is one extracted multiple-choice record as consumed by the quiz
// front-end.
type Question struct {
	// ID is assigned sequentially from 1 in extraction order.
	ID int `json:"id" validate:"gte=1"`

	// Question is the stem text. Never empty for an emitted question.
	Question string `json:"question" validate:"required"`

	// Options holds choices A-D in order. Always exactly 4.
	Options []string `json:"options" validate:"len=4"`

	// AnswerIndex is the zero-based index into Options of the correct choice.
	AnswerIndex int `json:"answerIndex" validate:"gte=0,lte=3"`
}

// Result is the outcome of a scan over a line sequence.
type Result struct {
	Questions []Question

	// Anchors counts lines that looked like a numbered question.
	Anchors int

	// Discarded counts anchors whose block did not yield exactly 4 options.
	Discarded int
}
