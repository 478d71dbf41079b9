package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kmellea/moneylens/internal/cli"
	"github.com/kmellea/moneylens/internal/model"
	"github.com/kmellea/moneylens/internal/report"
)

var flagMethIncome bool

var methodsCmd = &cobra.Command{
	Use:   "methods",
	Short: "Spending (or income) totals by payment method",
	RunE:  runMethods,
}

func init() {
	methodsCmd.Flags().BoolVarP(&flagMethIncome, "income", "i", false, "Show income instead of expenses")
	rootCmd.AddCommand(methodsCmd)
}

func runMethods(_ *cobra.Command, _ []string) error {
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
	title := "EXPENSES BY PAYMENT METHOD"
	if flagMethIncome {
		kind = model.KindIncome
		title = "INCOME BY PAYMENT METHOD"
	}

	totals, err := report.New(st).Methods(kind, r)
	if err != nil {
		return err
	}
	if len(totals) == 0 {
		fmt.Println()
		fmt.Println(cli.Muted("  No transactions with a payment method in the selected range."))
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(title + rangeSuffix(r)))
	fmt.Println()

	maxTotal := totals[0].Total.InexactFloat64()
	rows := make([][]string, 0, len(totals))
	for _, mt := range totals {
		rows = append(rows, []string{
			mt.Method,
			cli.FormatAmount(mt.Total, flagCurrency),
			cli.RenderBar(mt.Total.InexactFloat64(), maxTotal, shareBarWidth),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Method", "Total", ""},
		Rows:    rows,
	}))
	return nil
}
