package layout

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mcqx/internal/ui/theme"
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// RenderHeader renders a bar with title on the left and status on the right.
func RenderHeader(title, status string, width int) string {
	left := theme.Title.Render("  " + title)
	right := theme.Muted.Render(status + "  ")

	innerWidth := max(width-2, 0)
	gap := max(innerWidth-lipgloss.Width(left)-lipgloss.Width(right), 1)

	return theme.Bar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

// RenderFooter renders the footer with key hints.
func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, theme.Key.Render(h.Key)+" "+theme.Muted.Render(h.Description))
	}
	return theme.Bar.Width(width).Render("  " + strings.Join(parts, "   "))
}

// RenderFrame composes the full frame: header + content + footer.
func RenderFrame(header, content, footer string, width, height int) string {
	contentHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	styledContent := lipgloss.NewStyle().
		Width(width).
		Height(contentHeight).
		Render(content)

	return header + "\n" + styledContent + "\n" + footer
}
