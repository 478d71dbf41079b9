package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kmellea/moneylens/internal/tui/theme"
)

// Tab is one entry in the dashboard tab bar. The shortcut key must appear
// in the name so it can be bracket-highlighted.
type Tab struct {
	Name string
	Key  rune
}

// Tabs lists the dashboard tabs in display order.
var Tabs = []Tab{
	{Name: "Overview", Key: 'o'},
	{Name: "Categories", Key: 'c'},
	{Name: "Trends", Key: 't'},
	{Name: "Settings", Key: 's'},
}

const tabSeparator = "  "

// RenderTabBar renders the single-row tab bar with activeIdx highlighted.
func RenderTabBar(activeIdx int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	inactiveStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	bracketStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	parts := make([]string, len(Tabs))
	for i, tab := range Tabs {
		if i == activeIdx {
			parts[i] = activeStyle.Render(tab.Name)
			continue
		}
		pos := strings.IndexRune(strings.ToLower(tab.Name), tab.Key)
		if pos < 0 {
			pos = 0
		}
		parts[i] = inactiveStyle.Render(tab.Name[:pos]) +
			bracketStyle.Render("[") + keyStyle.Render(string(tab.Name[pos])) + bracketStyle.Render("]") +
			inactiveStyle.Render(tab.Name[pos+1:])
	}
	return " " + strings.Join(parts, tabSeparator)
}

// TabVisualWidth is the rendered cell width of one tab, used to derive
// mouse hitboxes. Must track RenderTabBar exactly.
func TabVisualWidth(i, activeIdx int) int {
	w := len(Tabs[i].Name)
	if i != activeIdx {
		w += 2 // the [ ] around the shortcut key
	}
	return w
}

// TabIdxByKey maps a shortcut key to its tab index, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
