package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mcqx/internal/ui/theme"
)

var optionLabels = []string{"A", "B", "C", "D"}

// Choices renders one question with its lettered options and lets the
// reviewer pick one to compare against the extracted answer.
type Choices struct {
	ID           int
	Question     string
	Options      []string
	CorrectIndex int
	Selected     int
	Submitted    bool
	ChosenIndex  int

	// Reveal shows the extracted answer without submitting a choice.
	Reveal bool
}

// NewChoices creates a selector for one question.
func NewChoices(id int, question string, options []string, correctIndex int) Choices {
	return Choices{
		ID:           id,
		Question:     question,
		Options:      options,
		CorrectIndex: correctIndex,
		ChosenIndex:  -1,
	}
}

// Update handles keyboard navigation and selection. Letter keys a-d submit
// that option directly.
func (m Choices) Update(msg tea.Msg) (Choices, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.submit(m.Selected)
	case "a", "b", "c", "d":
		if idx := int(key[0] - 'a'); idx < len(m.Options) {
			m.Selected = idx
			m.submit(idx)
		}
	}

	return m, nil
}

func (m *Choices) submit(idx int) {
	m.Submitted = true
	m.ChosenIndex = idx
}

// View renders the question and its options.
func (m Choices) View() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("%d.", m.ID)) + " " + theme.Body.Bold(true).Render(m.Question) + "\n\n")

	showAnswer := m.Submitted || m.Reveal
	for i, opt := range m.Options {
		label := "?"
		if i < len(optionLabels) {
			label = optionLabels[i]
		}
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)

		switch {
		case showAnswer && i == m.CorrectIndex:
			b.WriteString(theme.Correct.Render(line))
		case m.Submitted && i == m.ChosenIndex:
			b.WriteString(theme.Incorrect.Render(line))
		case m.Submitted:
			b.WriteString(theme.Muted.Render(line))
		case i == m.Selected:
			b.WriteString(theme.Selected.Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// IsCorrect returns true if the reviewer chose the extracted answer.
func (m Choices) IsCorrect() bool {
	return m.Submitted && m.ChosenIndex == m.CorrectIndex
}
