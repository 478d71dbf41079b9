package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/kmellea/moneylens/internal/cli"
	"github.com/kmellea/moneylens/internal/model"
	"github.com/kmellea/moneylens/internal/report"
)

var (
	flagTrendMain   bool
	flagTrendIncome bool
	flagTrendTop    int
)

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Month-by-category table of spending over time",
	RunE:  runTrends,
}

func init() {
	trendsCmd.Flags().BoolVarP(&flagTrendMain, "main", "m", true, "Roll subcategories up to their main category")
	trendsCmd.Flags().BoolVarP(&flagTrendIncome, "income", "i", false, "Show income instead of expenses")
	trendsCmd.Flags().IntVarP(&flagTrendTop, "top", "t", 6, "Keep the N largest categories, fold the rest into Other (0 = all)")
	rootCmd.AddCommand(trendsCmd)
}

func runTrends(_ *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	r, err := queryRange()
	if err != nil {
		return err
	}

	kind := model.KindExpense
	title := "EXPENSE TRENDS"
	if flagTrendIncome {
		kind = model.KindIncome
		title = "INCOME TRENDS"
	}

	p, err := report.New(st).Trends(kind, flagTrendMain, flagTrendTop, r)
	if err != nil {
		return err
	}
	if p.Empty() {
		fmt.Println()
		fmt.Println(cli.Muted("  No categorized transactions in the selected range."))
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(title + rangeSuffix(r)))
	fmt.Println()

	headers := append([]string{"Month"}, p.Categories...)
	headers = append(headers, "Total")
	rows := make([][]string, 0, len(p.Months)+2)
	for _, m := range p.Months {
		row := make([]string, 0, len(p.Categories)+2)
		row = append(row, cli.FormatMonth(m))
		for _, v := range p.Row(m) {
			if v.IsZero() {
				row = append(row, "·")
				continue
			}
			row = append(row, cli.FormatAmount(v, flagCurrency))
		}
		row = append(row, cli.FormatAmount(p.RowTotal(m), flagCurrency))
		rows = append(rows, row)
	}

	rows = append(rows, []string{"---"})
	totalRow := make([]string, 0, len(p.Categories)+2)
	totalRow = append(totalRow, "Total")
	var grand decimal.Decimal
	for _, cat := range p.Categories {
		ct := p.ColumnTotal(cat)
		grand = grand.Add(ct)
		totalRow = append(totalRow, cli.FormatAmount(ct, flagCurrency))
	}
	totalRow = append(totalRow, cli.FormatAmount(grand, flagCurrency))
	rows = append(rows, totalRow)

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: headers,
		Rows:    rows,
	}))
	return nil
}
