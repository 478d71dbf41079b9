// Package components provides reusable widgets for the moneylens dashboard.
package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/kmellea/moneylens/internal/tui/theme"
)

const minCardContent = 10

// Metric is one headline figure for a MetricCard.
type Metric struct {
	Label string
	Value string
	Hint  string // secondary line under the value, may be empty
}

// LayoutRow splits totalWidth into n column widths that sum exactly to
// totalWidth, with the leftmost columns absorbing the remainder.
func LayoutRow(totalWidth, n int) []int {
	if n <= 0 {
		return nil
	}
	widths := make([]int, n)
	base, rem := totalWidth/n, totalWidth%n
	for i := range widths {
		widths[i] = base
		if i < rem {
			widths[i]++
		}
	}
	return widths
}

func cardFrame(outerWidth int) lipgloss.Style {
	w := outerWidth - 2 // border columns
	if w < minCardContent {
		w = minCardContent
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Active.Border).
		Width(w).
		Padding(0, 1)
}

// MetricCard renders one bordered headline figure. outerWidth is the full
// rendered width including the border. valueColor may be empty to use the
// primary text color.
func MetricCard(m Metric, valueColor lipgloss.Color, outerWidth int) string {
	t := theme.Active
	if valueColor == "" {
		valueColor = t.TextPrimary
	}

	body := lipgloss.NewStyle().Foreground(t.TextMuted).Render(m.Label) + "\n" +
		lipgloss.NewStyle().Foreground(valueColor).Bold(true).Render(m.Value)
	if m.Hint != "" {
		body += "\n" + lipgloss.NewStyle().Foreground(t.TextDim).Render(m.Hint)
	}
	return cardFrame(outerWidth).Render(body)
}

// MetricRow lays a set of metric cards side by side across totalWidth.
// colors pairs with metrics by index; missing entries fall back to the
// primary text color.
func MetricRow(metrics []Metric, colors []lipgloss.Color, totalWidth int) string {
	if len(metrics) == 0 {
		return ""
	}
	widths := LayoutRow(totalWidth, len(metrics))
	cards := make([]string, len(metrics))
	for i, m := range metrics {
		var c lipgloss.Color
		if i < len(colors) {
			c = colors[i]
		}
		cards[i] = MetricCard(m, c, widths[i])
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// ContentCard renders a bordered panel with an optional bold title line.
func ContentCard(title, body string, outerWidth int) string {
	content := body
	if title != "" {
		content = lipgloss.NewStyle().Foreground(theme.Active.TextMuted).Bold(true).Render(title) + "\n" + body
	}
	return cardFrame(outerWidth).Render(content)
}

// CardRow joins pre-rendered cards horizontally, top aligned.
func CardRow(cards ...string) string {
	if len(cards) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// CardInnerWidth is the usable text width inside a card of the given outer
// width (border plus padding subtracted).
func CardInnerWidth(outerWidth int) int {
	w := outerWidth - 4
	if w < minCardContent {
		w = minCardContent
	}
	return w
}
