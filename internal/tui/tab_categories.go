package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kmellea/moneylens/internal/cli"
	"github.com/kmellea/moneylens/internal/tui/components"
	"github.com/kmellea/moneylens/internal/tui/theme"
)

// renderCategoriesTab renders the ranked category list with share bars.
// contentH bounds the visible rows; the cursor always stays in view.
func (a App) renderCategoriesTab(cw, contentH int) string {
	t := theme.Active
	list := a.currentCategories()

	headStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	mode := "Expenses"
	if a.cats.income {
		mode = "Income"
	}
	level := "main categories"
	if !a.cats.main {
		level = "subcategories"
	}
	head := " " + headStyle.Render(fmt.Sprintf("%s · %s", mode, level)) +
		hintStyle.Render("   [m] level  [i] kind")

	if len(list) == 0 {
		return "\n" + head + "\n\n " +
			headStyle.Render("No categorized transactions in the selected range.")
	}

	// Column layout
	rankW := 4
	amountW := 14
	shareW := 7
	nameW := cw / 3
	if nameW < 12 {
		nameW = 12
	}
	barW := cw - rankW - nameW - amountW - shareW - 6
	if barW < 5 {
		barW = 5
	}

	visible := contentH - 3 // header + spacing
	if visible < 1 {
		visible = 1
	}
	start := 0
	if a.cats.cursor >= visible {
		start = a.cats.cursor - visible + 1
	}
	end := start + visible
	if end > len(list) {
		end = len(list)
	}

	maxTotal := list[0].Total.InexactFloat64()
	barColor := t.Red
	if a.cats.income {
		barColor = t.Green
	}

	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(head)
	b.WriteString("\n\n")
	for i := start; i < end; i++ {
		ct := list[i]
		name := rowStyle
		if i == a.cats.cursor {
			name = selStyle
		}
		b.WriteString(dimStyle.Render(fmt.Sprintf(" %*d ", rankW-2, i+1)))
		b.WriteString(name.Render(fmt.Sprintf("%-*s", nameW, truncStr(ct.Category, nameW))))
		b.WriteString(" ")
		b.WriteString(components.HBar(ct.Total.InexactFloat64(), maxTotal, barW, barColor))
		b.WriteString(" ")
		b.WriteString(rowStyle.Render(fmt.Sprintf("%*s", amountW, cli.FormatAmount(ct.Total, a.currency))))
		b.WriteString(dimStyle.Render(fmt.Sprintf("%*s", shareW, cli.FormatPercent(ct.Share))))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	if len(list) > visible {
		b.WriteString("\n")
		b.WriteString(hintStyle.Render(fmt.Sprintf(" %d-%d of %d", start+1, end, len(list))))
	}
	return b.String()
}
