package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/kmellea/moneylens/internal/cli"
	"github.com/kmellea/moneylens/internal/tui/components"
	"github.com/kmellea/moneylens/internal/tui/theme"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	ov := a.snap.Overview
	var b strings.Builder

	if ov.ActiveMonths == 0 {
		empty := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		return "\n" + empty.Render("  No transactions in the selected range.") + "\n" +
			empty.Render("  Import data or widen the window in Settings.")
	}

	// Row 1: headline metric cards
	netColor := t.Green
	if ov.Net().IsNegative() {
		netColor = t.Red
	}
	metrics := []components.Metric{
		{
			Label: "Income",
			Value: cli.FormatAmount(ov.TotalIncome, a.currency),
			Hint:  cli.FormatAmount(ov.AvgMonthlyIncome, a.currency) + "/month",
		},
		{
			Label: "Expenses",
			Value: cli.FormatAmount(ov.TotalExpenses, a.currency),
			Hint:  cli.FormatAmount(ov.AvgMonthlyExpense, a.currency) + "/month",
		},
		{
			Label: "Net",
			Value: cli.FormatSigned(ov.Net(), a.currency),
			Hint:  fmt.Sprintf("savings rate %s", cli.FormatPercent(ov.SavingsRate()*100)),
		},
		{
			Label: "Transactions",
			Value: cli.FormatNumber(int64(ov.Transactions)),
			Hint:  fmt.Sprintf("%d active months", ov.ActiveMonths),
		},
	}
	colors := []lipgloss.Color{t.Green, t.Red, netColor, t.TextPrimary}
	b.WriteString(components.MetricRow(metrics, colors, cw))
	b.WriteString("\n")

	// Row 2: monthly expenses chart
	vals := make([]float64, len(ov.Flows))
	months := make([]string, len(ov.Flows))
	for i, f := range ov.Flows {
		vals[i] = f.Expenses.InexactFloat64()
		months[i] = f.Month
	}
	b.WriteString(components.ContentCard(
		"Monthly Expenses",
		components.BarChart(vals, monthAxisLabels(months), t.Red, components.CardInnerWidth(cw), 10),
		cw,
	))
	b.WriteString("\n")

	// Row 3: top categories preview + window summary
	halves := components.LayoutRow(cw, 2)
	left := components.ContentCard("Top Spending",
		a.topCategoriesBody(components.CardInnerWidth(halves[0])), halves[0])
	right := components.ContentCard("This Window",
		a.windowSummaryBody(components.CardInnerWidth(halves[1])), halves[1])
	b.WriteString(components.CardRow(left, right))

	return b.String()
}

const overviewTopCategories = 6

func (a App) topCategoriesBody(innerW int) string {
	t := theme.Active
	cats := a.snap.ExpenseMain
	if len(cats) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).
			Render("No categorized expenses.")
	}
	if len(cats) > overviewTopCategories {
		cats = cats[:overviewTopCategories]
	}

	nameW := innerW / 3
	if nameW < 10 {
		nameW = 10
	}
	amountW := 12
	barW := innerW - nameW - amountW - 2
	if barW < 4 {
		barW = 4
	}
	maxTotal := cats[0].Total.InexactFloat64()

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	amountStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var b strings.Builder
	for i, ct := range cats {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(nameStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(ct.Category, nameW))))
		b.WriteString(" ")
		b.WriteString(components.HBar(ct.Total.InexactFloat64(), maxTotal, barW, t.Accent))
		b.WriteString(" ")
		b.WriteString(amountStyle.Render(fmt.Sprintf("%*s", amountW, cli.FormatAmount(ct.Total, a.currency))))
	}
	return b.String()
}

func (a App) windowSummaryBody(innerW int) string {
	t := theme.Active
	ov := a.snap.Overview

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	nets := make([]float64, len(ov.Flows))
	for i, f := range ov.Flows {
		n := f.Net().InexactFloat64()
		if n < 0 {
			n = 0
		}
		nets[i] = n
	}
	sparkW := innerW
	if len(nets) > sparkW && sparkW > 0 {
		nets = nets[len(nets)-sparkW:]
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render("Monthly net"))
	b.WriteString("\n")
	b.WriteString(components.Sparkline(nets, t.Green))
	b.WriteString("\n\n")
	if !ov.TopExpenseMonth.IsZero() {
		b.WriteString(labelStyle.Render("Top expense month  "))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%s (%s)",
			cli.FormatMonth(ov.TopExpenseMonth.Month),
			cli.FormatAmount(ov.TopExpenseMonth.Total, a.currency))))
		b.WriteString("\n")
	}
	b.WriteString(labelStyle.Render("Avg expense/month  "))
	b.WriteString(valueStyle.Render(cli.FormatAmount(ov.AvgMonthlyExpense, a.currency)))
	return b.String()
}

// monthAxisLabels shortens "YYYY-MM" months for chart axes: the year at
// January and the start of the series, the month abbreviation elsewhere.
func monthAxisLabels(months []string) []string {
	labels := make([]string, len(months))
	for i, m := range months {
		ts, err := time.Parse("2006-01", m)
		if err != nil {
			labels[i] = m
			continue
		}
		if i == 0 || ts.Month() == time.January {
			labels[i] = ts.Format("Jan 06")
		} else {
			labels[i] = ts.Format("Jan")
		}
	}
	return labels
}
