// Package browse is an interactive terminal review of extracted questions:
// page through them, try each one, and see whether the extracted answer
// matches what you expected.
package browse

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mcqx/internal/mcq"
	"github.com/abhisek/mcqx/internal/ui/components"
	"github.com/abhisek/mcqx/internal/ui/layout"
	"github.com/abhisek/mcqx/internal/ui/theme"
)

// Model is the root Bubble Tea model of the browser.
type Model struct {
	title     string
	questions []mcq.Question
	index     int
	choices   components.Choices

	jumping bool
	jump    components.JumpInput

	// summary is the results screen shown before quitting.
	summary bool

	// answers records the option chosen per question index.
	answers map[int]int
	status  string

	width  int
	height int
}

// New creates a browser over questions. title is shown in the header.
func New(title string, questions []mcq.Question) Model {
	m := Model{
		title:     title,
		questions: questions,
		answers:   make(map[int]int),
	}
	m.load(0)
	return m
}

func (m *Model) load(index int) {
	if len(m.questions) == 0 {
		return
	}
	m.index = min(max(index, 0), len(m.questions)-1)
	q := m.questions[m.index]
	m.choices = components.NewChoices(q.ID, q.Question, q.Options, q.AnswerIndex)
	if chosen, ok := m.answers[m.index]; ok {
		m.choices.Selected = chosen
		m.choices.Submitted = true
		m.choices.ChosenIndex = chosen
	}
}

// Index returns the zero-based position of the question on screen.
func (m Model) Index() int { return m.index }

// Score returns how many questions were tried and how many of those
// matched the extracted answer.
func (m Model) Score() (answered, correct int) {
	for i, chosen := range m.answers {
		answered++
		if chosen == m.questions[i].AnswerIndex {
			correct++
		}
	}
	return answered, correct
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.jumping {
			return m.updateJump(msg)
		}
		if m.summary {
			return m.updateSummary(msg)
		}
		switch msg.String() {
		case "q", "esc":
			m.summary = true
			return m, nil
		case "right", "l", "n", "space":
			m.status = ""
			m.load(m.index + 1)
			return m, nil
		case "left", "h", "p":
			m.status = ""
			m.load(m.index - 1)
			return m, nil
		case "r":
			m.choices.Reveal = !m.choices.Reveal
			return m, nil
		case "/":
			m.jumping = true
			m.jump = components.NewJumpInput(len(fmt.Sprint(len(m.questions))))
			return m, nil
		}
	}

	if len(m.questions) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.choices, cmd = m.choices.Update(msg)
	if m.choices.Submitted {
		if _, seen := m.answers[m.index]; !seen {
			m.answers[m.index] = m.choices.ChosenIndex
		}
	}
	return m, cmd
}

func (m Model) updateJump(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.jumping = false
		return m, nil
	case "enter":
		m.jumping = false
		target, err := m.jump.Target()
		if err != nil {
			m.status = "not a question number"
			return m, nil
		}
		pos := m.positionOf(target)
		if pos < 0 {
			m.status = fmt.Sprintf("no question with id %d", target)
			return m, nil
		}
		m.status = ""
		m.load(pos)
		return m, nil
	}

	var cmd tea.Cmd
	m.jump, cmd = m.jump.Update(msg)
	return m, cmd
}

func (m Model) updateSummary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "y", "enter":
		return m, tea.Quit
	case "esc", "n":
		m.summary = false
	}
	return m, nil
}

// Summary describes how the review went.
func (m Model) Summary() string {
	answered, correct := m.Score()
	total := len(m.questions)
	pct := 0.0
	if answered > 0 {
		pct = 100 * float64(correct) / float64(answered)
	}
	return fmt.Sprintf("%d of %d answered, %d match the extracted answer (%.0f%%), %d unanswered",
		answered, total, correct, pct, total-answered)
}

// statusGrid renders one cell per question: matched, mismatched or
// unanswered, with the current question underlined.
func (m Model) statusGrid(width int) string {
	perRow := max((width-4)/5, 1)

	var b strings.Builder
	for i, q := range m.questions {
		cell := fmt.Sprintf("%4d", q.ID)
		style := theme.Muted
		if chosen, ok := m.answers[i]; ok {
			style = theme.Incorrect
			if chosen == q.AnswerIndex {
				style = theme.Correct
			}
		}
		if i == m.index {
			style = style.Underline(true)
		}
		b.WriteString(style.Render(cell) + " ")
		if (i+1)%perRow == 0 && i+1 < len(m.questions) {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// positionOf finds the index of the question with the given id.
func (m Model) positionOf(id int) int {
	for i, q := range m.questions {
		if q.ID == id {
			return i
		}
	}
	return -1
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	answered, correct := m.Score()
	status := fmt.Sprintf("%d/%d  ·  %d/%d match", m.index+1, len(m.questions), correct, answered)
	if len(m.questions) == 0 {
		status = "no questions"
	}

	header := layout.RenderHeader(m.title, status, m.width)
	footer := layout.RenderFooter(m.keyHints(), m.width)
	v.SetContent(layout.RenderFrame(header, m.Content(m.width), footer, m.width, m.height))
	return v
}

// Content renders the body of the screen for the given width.
func (m Model) Content(width int) string {
	if len(m.questions) == 0 {
		return theme.Hint.Render("  No questions to show.")
	}

	var b strings.Builder
	if m.summary {
		b.WriteString(theme.Title.Render("Results") + "\n\n")
		b.WriteString(theme.Body.Render(m.Summary()) + "\n\n")
		b.WriteString(m.statusGrid(width) + "\n\n")
		b.WriteString(theme.Correct.Render("match") + "  " + theme.Incorrect.Render("mismatch") + "  " + theme.Muted.Render("unanswered"))
		return b.String()
	}

	b.WriteString(theme.Card.Width(max(width-2, 20)).Render(m.choices.View()))
	b.WriteString("\n")

	pct := float64(m.index+1) / float64(len(m.questions))
	b.WriteString(components.NewProgressBar("", pct, true, max(width-4, 10)).View())
	b.WriteString("\n\n")

	switch {
	case m.jumping:
		b.WriteString(m.jump.View())
	case m.status != "":
		b.WriteString(theme.Warn.Render(m.status))
	case m.choices.Submitted && m.choices.IsCorrect():
		b.WriteString(theme.Correct.Render("✓ matches the extracted answer"))
	case m.choices.Submitted:
		b.WriteString(theme.Incorrect.Render(fmt.Sprintf("✗ extracted answer is %c", 'A'+m.questions[m.index].AnswerIndex)))
	}
	return b.String()
}

func (m Model) keyHints() []layout.KeyHint {
	if m.summary {
		return []layout.KeyHint{
			{Key: "q", Description: "Quit"},
			{Key: "Esc", Description: "Back"},
		}
	}
	if m.jumping {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Go"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "a-d", Description: "Answer"},
		{Key: "←/→", Description: "Prev/Next"},
		{Key: "r", Description: "Reveal"},
		{Key: "/", Description: "Go to"},
		{Key: "q", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and returns the final model.
func Run(title string, questions []mcq.Question) (Model, error) {
	p := tea.NewProgram(New(title, questions))
	final, err := p.Run()
	if err != nil {
		return Model{}, fmt.Errorf("run browser: %w", err)
	}
	m, _ := final.(Model)
	return m, nil
}
