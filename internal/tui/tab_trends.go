package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kmellea/moneylens/internal/cli"
	"github.com/kmellea/moneylens/internal/tui/components"
	"github.com/kmellea/moneylens/internal/tui/theme"
)

// renderTrendsTab renders one sparkline per main expense category across
// the window, largest spenders first.
func (a App) renderTrendsTab(cw, contentH int) string {
	t := theme.Active
	p := a.snap.Trend

	headStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	if p.Empty() {
		return "\n " + headStyle.Render("No expense history in the selected range.")
	}

	first, last := p.Months[0], p.Months[len(p.Months)-1]
	head := " " + headStyle.Render(fmt.Sprintf("Monthly spend per main category, %s to %s",
		cli.FormatMonth(first), cli.FormatMonth(last)))

	nameW := cw / 4
	if nameW < 12 {
		nameW = 12
	}
	amountW := 14
	sparkW := cw - nameW - amountW - 4
	if sparkW < 8 {
		sparkW = 8
	}

	visible := (contentH - 3) / 2 // two lines per category row
	if visible < 1 {
		visible = 1
	}
	start := a.trendScroll
	if start > len(p.Categories)-1 {
		start = len(p.Categories) - 1
	}
	if start < 0 {
		start = 0
	}
	end := start + visible
	if end > len(p.Categories) {
		end = len(p.Categories)
	}

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	amountStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(head)
	b.WriteString("\n\n")
	for i := start; i < end; i++ {
		cat := p.Categories[i]
		col := p.Column(cat)
		vals := make([]float64, len(col))
		for j, v := range col {
			vals[j] = v.InexactFloat64()
		}
		if len(vals) > sparkW {
			vals = vals[len(vals)-sparkW:]
		}

		b.WriteString(nameStyle.Render(fmt.Sprintf(" %-*s", nameW, truncStr(cat, nameW))))
		b.WriteString(" ")
		b.WriteString(components.Sparkline(vals, t.Accent))
		b.WriteString(" ")
		b.WriteString(amountStyle.Render(fmt.Sprintf("%*s", amountW, cli.FormatAmount(p.ColumnTotal(cat), a.currency))))
		if i < end-1 {
			b.WriteString("\n\n")
		}
	}

	if len(p.Categories) > visible {
		b.WriteString("\n")
		b.WriteString(hintStyle.Render(fmt.Sprintf(" %d-%d of %d, j/k to scroll", start+1, end, len(p.Categories))))
	}
	return b.String()
}
