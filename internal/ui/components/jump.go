package components

import (
	"strconv"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// JumpInput wraps bubbles/textinput as a numeric "go to question" prompt.
type JumpInput struct {
	Model textinput.Model
}

// NewJumpInput creates a focused prompt accepting up to maxDigits digits.
func NewJumpInput(maxDigits int) JumpInput {
	ti := textinput.New()
	ti.Placeholder = "question #"
	ti.Prompt = "go to: "
	ti.CharLimit = maxDigits
	ti.Focus()
	return JumpInput{Model: ti}
}

// Update forwards digits and editing keys; other printable keys are dropped.
func (j JumpInput) Update(msg tea.Msg) (JumpInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		key := kmsg.String()
		if len(key) == 1 && (key[0] < '0' || key[0] > '9') {
			return j, nil
		}
	}

	var cmd tea.Cmd
	j.Model, cmd = j.Model.Update(msg)
	return j, cmd
}

// View renders the prompt.
func (j JumpInput) View() string {
	return j.Model.View()
}

// Target returns the entered question number.
func (j JumpInput) Target() (int, error) {
	return strconv.Atoi(j.Model.Value())
}
