package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kmellea/moneylens/internal/tui/theme"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders values as a row of unicode blocks scaled to the peak.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}

	peak := 0.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
	}
	if peak <= 0 {
		peak = 1
	}

	var b strings.Builder
	b.Grow(len(values) * 3)
	for _, v := range values {
		if v < 0 {
			v = 0
		}
		idx := int(v / peak * float64(len(sparkBlocks)-1))
		if idx > len(sparkBlocks)-1 {
			idx = len(sparkBlocks) - 1
		}
		b.WriteRune(sparkBlocks[idx])
	}
	return lipgloss.NewStyle().Foreground(color).Background(theme.Active.Surface).Render(b.String())
}

// HBar renders a horizontal bar sized value/max within width cells.
func HBar(value, max float64, width int, color lipgloss.Color) string {
	if width <= 0 {
		return ""
	}
	filled := 0
	if max > 0 && value > 0 {
		filled = int(value / max * float64(width))
		if filled > width {
			filled = width
		}
		if filled == 0 {
			filled = 1 // a non-zero value always shows
		}
	}
	t := theme.Active
	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render(strings.Repeat("░", width-filled))
}

// BarChart renders a column chart with a labeled Y axis. Values map to
// labels by index; labels are placed under their bars where they fit.
// Falls back to a sparkline when the area is too small.
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 20 || height < 3 {
		return Sparkline(values, color)
	}

	t := theme.Active

	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal <= 0 {
		maxVal = 1
	}

	step := niceStep(maxVal, height/2)
	ceiling := math.Ceil(maxVal/step) * step
	ticks := int(math.Round(ceiling / step))
	if ticks < 1 {
		ticks = 1
	}
	rowsPerTick := height / ticks
	if rowsPerTick < 1 {
		rowsPerTick = 1
	}
	chartH := rowsPerTick * ticks

	yLabelW := len(shortAmount(ceiling))
	if yLabelW < 4 {
		yLabelW = 4
	}

	n := len(values)
	chartW := width - yLabelW - 1
	gap := 1
	barW := (chartW - (n-1)*gap) / n
	if barW < 1 {
		barW, gap = 1, 0
	}
	if barW > 5 {
		barW = 5
	}
	axisLen := n*barW + (n-1)*gap
	if axisLen < 0 {
		axisLen = 0
	}

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	peakStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	fillStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for row := chartH; row >= 1; row-- {
		rowTop := ceiling * float64(row) / float64(chartH)
		rowBottom := ceiling * float64(row-1) / float64(chartH)

		label := ""
		if row%rowsPerTick == 0 {
			label = shortAmount(ceiling * float64(row) / float64(chartH))
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, label)))
		b.WriteString(axisStyle.Render("│"))

		for i, v := range values {
			if i > 0 && gap > 0 {
				b.WriteString(fillStyle.Render(" "))
			}
			style := barStyle
			if v == maxVal {
				style = peakStyle
			}
			switch {
			case v >= rowTop:
				b.WriteString(style.Render(strings.Repeat("█", barW)))
			case v > rowBottom:
				frac := (v - rowBottom) / (rowTop - rowBottom)
				idx := int(frac * float64(len(sparkBlocks)))
				if idx >= len(sparkBlocks) {
					idx = len(sparkBlocks) - 1
				}
				if idx < 0 {
					idx = 0
				}
				b.WriteString(style.Render(strings.Repeat(string(sparkBlocks[idx]), barW)))
			default:
				b.WriteString(fillStyle.Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(axisStyle.Render("└" + strings.Repeat("─", axisLen)))

	if len(labels) == n {
		b.WriteString("\n")
		b.WriteString(fillStyle.Render(strings.Repeat(" ", yLabelW+1)))
		b.WriteString(axisStyle.Render(xAxisLabels(labels, barW, gap, axisLen)))
	}
	return b.String()
}

// xAxisLabels places bar labels into a fixed-width line, skipping any that
// would collide with an earlier one.
func xAxisLabels(labels []string, barW, gap, axisLen int) string {
	buf := make([]byte, axisLen)
	for i := range buf {
		buf[i] = ' '
	}
	lastEnd := -2
	for i, lbl := range labels {
		pos := i * (barW + gap)
		end := pos + len(lbl)
		if pos <= lastEnd+1 || end > axisLen {
			continue
		}
		copy(buf[pos:end], lbl)
		lastEnd = end
	}
	return strings.TrimRight(string(buf), " ")
}

// niceStep picks a 1/2/5-series tick interval so the axis fits maxTicks.
func niceStep(maxVal float64, maxTicks int) float64 {
	if maxTicks < 2 {
		maxTicks = 2
	}
	rough := maxVal / float64(maxTicks)
	if rough <= 0 {
		return 1
	}
	base := math.Pow(10, math.Floor(math.Log10(rough)))
	for _, m := range []float64{1, 2, 5, 10} {
		if rough <= m*base {
			return m * base
		}
	}
	return 10 * base
}

// shortAmount compacts an axis value: 950, 2.4k, 1.2M.
func shortAmount(v float64) string {
	switch {
	case v >= 1e6:
		return trimZero(v/1e6) + "M"
	case v >= 1e3:
		return trimZero(v/1e3) + "k"
	default:
		return trimZero(v)
	}
}

func trimZero(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}
