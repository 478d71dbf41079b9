package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kmellea/moneylens/internal/cli"
	"github.com/kmellea/moneylens/internal/model"
	"github.com/kmellea/moneylens/internal/report"
)

var (
	flagCatMain    bool
	flagCatIncome  bool
	flagCatAverage bool
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Spending (or income) totals by category",
	RunE:  runCategories,
}

func init() {
	categoriesCmd.Flags().BoolVarP(&flagCatMain, "main", "m", false, "Roll subcategories up to their main category")
	categoriesCmd.Flags().BoolVarP(&flagCatIncome, "income", "i", false, "Show income instead of expenses")
	categoriesCmd.Flags().BoolVarP(&flagCatAverage, "average", "a", false, "Average monthly expense per main category")
	rootCmd.AddCommand(categoriesCmd)
}

const shareBarWidth = 16

func runCategories(_ *cobra.Command, _ []string) error {
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

	if flagCatAverage {
		return renderAverages(svc, r)
	}

	kind := model.KindExpense
	title := "EXPENSES BY CATEGORY"
	if flagCatIncome {
		kind = model.KindIncome
		title = "INCOME BY CATEGORY"
	}

	totals, err := svc.Categories(kind, flagCatMain, r)
	if err != nil {
		return err
	}
	if len(totals) == 0 {
		fmt.Println()
		fmt.Println(cli.Muted("  No categorized transactions in the selected range."))
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(title + rangeSuffix(r)))
	fmt.Println()

	maxTotal := totals[0].Total.InexactFloat64()
	rows := make([][]string, 0, len(totals))
	for _, ct := range totals {
		rows = append(rows, []string{
			ct.Category,
			cli.FormatAmount(ct.Total, flagCurrency),
			cli.FormatPercent(ct.Share),
			cli.RenderBar(ct.Total.InexactFloat64(), maxTotal, shareBarWidth),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Category", "Total", "Share", ""},
		Rows:    rows,
	}))
	return nil
}

func renderAverages(svc *report.Service, r model.Range) error {
	avgs, err := svc.Averages(r)
	if err != nil {
		return err
	}
	if len(avgs) == 0 {
		fmt.Println()
		fmt.Println(cli.Muted("  No categorized expenses in the selected range."))
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("AVG MONTHLY EXPENSE BY CATEGORY" + rangeSuffix(r)))
	fmt.Println()

	maxAvg := avgs[0].AvgMonthly.InexactFloat64()
	rows := make([][]string, 0, len(avgs))
	for _, ca := range avgs {
		rows = append(rows, []string{
			ca.Category,
			cli.FormatAmount(ca.AvgMonthly, flagCurrency),
			cli.RenderBar(ca.AvgMonthly.InexactFloat64(), maxAvg, shareBarWidth),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Main category", "Avg/month", ""},
		Rows:    rows,
	}))
	return nil
}
