package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kmellea/moneylens/internal/charts"
	"github.com/kmellea/moneylens/internal/cli"
	"github.com/kmellea/moneylens/internal/model"
	"github.com/kmellea/moneylens/internal/report"
)

var (
	flagChartOut  string
	flagChartPies int
)

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "Render the analysis as an HTML chart report",
	RunE:  runCharts,
}

func init() {
	chartsCmd.Flags().StringVarP(&flagChartOut, "out", "o", "moneylens-report.html", "Output HTML file")
	chartsCmd.Flags().IntVar(&flagChartPies, "pies", 6, "Monthly distribution pies to include, 0 = every month")
	rootCmd.AddCommand(chartsCmd)
}

func runCharts(_ *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	r, err := queryRange()
	if err != nil {
		return err
	}
	svc := report.New(st)

	ov, err := svc.Overview(r)
	if err != nil {
		return err
	}
	data := charts.Data{Flows: ov.Flows}
	if len(data.Flows) == 0 {
		fmt.Println(cli.Muted("  Nothing to chart in the selected range."))
		return nil
	}

	if data.MainExpenses, err = svc.Categories(model.KindExpense, true, r); err != nil {
		return err
	}
	if data.ExpenseTrend, err = svc.Trends(model.KindExpense, true, 0, r); err != nil {
		return err
	}
	if data.IncomeTrend, err = svc.Trends(model.KindIncome, true, 0, r); err != nil {
		return err
	}
	if data.Averages, err = svc.Averages(r); err != nil {
		return err
	}
	if data.Distribution, err = svc.Distribution(r, flagChartPies); err != nil {
		return err
	}

	cfg := charts.Config{Currency: flagCurrency}
	if !r.IsZero() {
		cfg.PageTitle = "moneylens report, " + r.String()
	}
	if err := charts.WriteFile(flagChartOut, data, cfg); err != nil {
		return err
	}

	fmt.Printf("Report written to %s\n", flagChartOut)
	return nil
}
