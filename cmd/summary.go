package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kmellea/moneylens/internal/cli"
	"github.com/kmellea/moneylens/internal/report"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Monthly income, expenses and net with overall totals",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	r, err := queryRange()
	if err != nil {
		return err
	}

	ov, err := report.New(st).Overview(r)
	if err != nil {
		return err
	}

	if ov.ActiveMonths == 0 {
		fmt.Println()
		fmt.Println(cli.Muted("  No transactions in the selected range."))
		fmt.Println(cli.Muted("  Import some with 'moneylens import <file.csv>'."))
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("MONEY SUMMARY" + rangeSuffix(r)))
	fmt.Println()

	rows := make([][]string, 0, len(ov.Flows)+6)
	for _, f := range ov.Flows {
		rows = append(rows, []string{
			cli.FormatMonth(f.Month),
			cli.FormatAmount(f.Income, flagCurrency),
			cli.FormatAmount(f.Expenses, flagCurrency),
			cli.FormatSigned(f.Net(), flagCurrency),
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{
		"Total",
		cli.FormatAmount(ov.TotalIncome, flagCurrency),
		cli.FormatAmount(ov.TotalExpenses, flagCurrency),
		cli.FormatSigned(ov.Net(), flagCurrency),
	})
	rows = append(rows, []string{
		"Monthly avg",
		cli.FormatAmount(ov.AvgMonthlyIncome, flagCurrency),
		cli.FormatAmount(ov.AvgMonthlyExpense, flagCurrency),
		"",
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Month", "Income", "Expenses", "Net"},
		Rows:    rows,
	}))

	// Expense sparkline across the window.
	spark := make([]float64, len(ov.Flows))
	for i, f := range ov.Flows {
		spark[i] = f.Expenses.InexactFloat64()
	}
	fmt.Printf("\n  Expenses  %s\n", cli.RenderSparkline(spark))

	if !ov.TopExpenseMonth.IsZero() {
		fmt.Printf("  Highest spending in %s (%s)\n",
			cli.FormatMonth(ov.TopExpenseMonth.Month),
			cli.FormatAmount(ov.TopExpenseMonth.Total, flagCurrency),
		)
	}
	fmt.Printf("  %s transactions across %d months, savings rate %s\n",
		cli.FormatNumber(int64(ov.Transactions)),
		ov.ActiveMonths,
		cli.FormatPercent(ov.SavingsRate()*100),
	)

	return nil
}
