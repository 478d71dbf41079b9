package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kmellea/moneylens/internal/tui/theme"
)

// RenderStatusBar renders the bottom bar: key hints on the left, the
// active window and reload state on the right.
func RenderStatusBar(width int, rangeLabel string, reloading bool) string {
	t := theme.Active
	style := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Width(width)

	left := " [?]help  [r]eload  [q]uit"
	right := ""
	if reloading {
		right = "reloading… "
	} else if rangeLabel != "" {
		right = rangeLabel + " "
	}

	pad := width - lipgloss.Width(left) - lipgloss.Width(right)
	if pad < 0 {
		pad = 0
	}
	return style.Render(left + strings.Repeat(" ", pad) + right)
}
