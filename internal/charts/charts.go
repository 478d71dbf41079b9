// Package charts renders the ledger analysis as a standalone HTML report
// using go-echarts. The chart set mirrors the terminal views: revenue over
// time, category breakdowns, per-category trends and monthly distribution
// pies.
package charts

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/kmellea/moneylens/internal/model"
	"github.com/kmellea/moneylens/internal/report"
)

// Data carries everything the report page draws.
type Data struct {
	Flows        []model.MonthFlow
	MainExpenses []model.CategoryTotal
	ExpenseTrend model.Pivot
	IncomeTrend  model.Pivot
	Averages     []model.CategoryAverage
	Distribution []report.MonthDistribution
}

// Config adjusts labels and page contents.
type Config struct {
	// Currency code shown on amount axes.
	Currency string
	// PageTitle is the HTML document title.
	PageTitle string
}

const (
	chartWidth  = "1100px"
	chartHeight = "480px"
)

// Render writes the full HTML report to w.
func Render(w io.Writer, data Data, cfg Config) error {
	if cfg.PageTitle == "" {
		cfg.PageTitle = "moneylens report"
	}

	page := components.NewPage()
	page.PageTitle = cfg.PageTitle
	page.SetLayout(components.PageCenterLayout)

	page.AddCharts(revenueLine(data.Flows, cfg))
	if len(data.MainExpenses) > 0 {
		page.AddCharts(mainCategoryBar(data.MainExpenses, cfg))
	}
	if !data.ExpenseTrend.Empty() {
		page.AddCharts(trendLines(data.ExpenseTrend, "Monthly expenses by main category", cfg))
	}
	if !data.IncomeTrend.Empty() {
		page.AddCharts(trendLines(data.IncomeTrend, "Monthly income by main category", cfg))
	}
	if pie := averagePie(data.Averages, cfg); pie != nil {
		page.AddCharts(pie)
	}
	for _, dist := range data.Distribution {
		page.AddCharts(distributionPie(dist, cfg))
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("rendering chart page: %w", err)
	}
	return nil
}

// WriteFile renders the report into a file at path.
func WriteFile(path string, data Data, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	if err := Render(f, data, cfg); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func initOpts(title string, cfg Config) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  chartWidth,
			Height: chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "30px"}),
	}
}

func axisOpts(cfg Config) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithXAxisOpts(opts.XAxis{Name: "Month"}),
		charts.WithYAxisOpts(opts.YAxis{Name: cfg.Currency}),
	}
}

// revenueLine draws income, expenses and net per month.
func revenueLine(flows []model.MonthFlow, cfg Config) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(append(initOpts("Monthly revenue analysis", cfg), axisOpts(cfg)...)...)

	months := make([]string, len(flows))
	income := make([]opts.LineData, len(flows))
	expenses := make([]opts.LineData, len(flows))
	net := make([]opts.LineData, len(flows))
	for i, f := range flows {
		months[i] = f.Month
		income[i] = opts.LineData{Value: f.Income.InexactFloat64()}
		expenses[i] = opts.LineData{Value: f.Expenses.InexactFloat64()}
		net[i] = opts.LineData{Value: f.Net().InexactFloat64()}
	}

	line.SetXAxis(months).
		AddSeries("Income", income).
		AddSeries("Expenses", expenses).
		AddSeries("Net", net).
		SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return line
}

// mainCategoryBar draws total expenses per main category, largest first.
func mainCategoryBar(totals []model.CategoryTotal, cfg Config) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(initOpts("Expenses by main category", cfg),
		charts.WithXAxisOpts(opts.XAxis{AxisLabel: &opts.AxisLabel{Show: opts.Bool(true), Rotate: 30}}),
		charts.WithYAxisOpts(opts.YAxis{Name: cfg.Currency}),
	)...)

	names := make([]string, len(totals))
	values := make([]opts.BarData, len(totals))
	for i, ct := range totals {
		names[i] = ct.Category
		values[i] = opts.BarData{Value: ct.Total.InexactFloat64()}
	}

	bar.SetXAxis(names).AddSeries("Total", values)
	return bar
}

// trendLines draws one line per pivot column across its months.
func trendLines(p model.Pivot, title string, cfg Config) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(append(initOpts(title, cfg), axisOpts(cfg)...)...)

	line.SetXAxis(p.Months)
	for _, cat := range p.Categories {
		col := p.Column(cat)
		series := make([]opts.LineData, len(col))
		for i, v := range col {
			series[i] = opts.LineData{Value: v.InexactFloat64()}
		}
		line.AddSeries(cat, series)
	}
	return line
}

// averagePie draws the average monthly expense per main category. Categories
// whose average is not positive cannot be a pie slice and are dropped; with
// nothing left the chart is omitted.
func averagePie(avgs []model.CategoryAverage, cfg Config) *charts.Pie {
	var slices []opts.PieData
	for _, ca := range avgs {
		if ca.AvgMonthly.Sign() <= 0 {
			continue
		}
		slices = append(slices, opts.PieData{Name: ca.Category, Value: ca.AvgMonthly.InexactFloat64()})
	}
	if len(slices) == 0 {
		return nil
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(initOpts("Average monthly expense by main category", cfg)...)
	pie.AddSeries("Average", slices).SetSeriesOptions(
		charts.WithPieChartOpts(opts.PieChart{Radius: []string{"35%", "70%"}}),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {d}%"}),
	)
	return pie
}

// distributionPie draws one month's expense distribution.
func distributionPie(dist report.MonthDistribution, cfg Config) *charts.Pie {
	slices := make([]opts.PieData, len(dist.Totals))
	for i, ct := range dist.Totals {
		slices[i] = opts.PieData{Name: ct.Category, Value: ct.Total.InexactFloat64()}
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(initOpts("Expense distribution "+dist.Month, cfg)...)
	pie.AddSeries(dist.Month, slices).SetSeriesOptions(
		charts.WithPieChartOpts(opts.PieChart{Radius: []string{"35%", "70%"}}),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {d}%"}),
	)
	return pie
}
