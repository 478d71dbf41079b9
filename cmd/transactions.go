package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kmellea/moneylens/internal/cli"
	"github.com/kmellea/moneylens/internal/model"
	"github.com/kmellea/moneylens/internal/report"
)

var flagTxnLimit int

var transactionsCmd = &cobra.Command{
	Use:     "transactions",
	Aliases: []string{"txns"},
	Short:   "List recent transactions",
	RunE:    runTransactions,
}

func init() {
	transactionsCmd.Flags().IntVarP(&flagTxnLimit, "limit", "l", 25, "Maximum rows to show, 0 = all")
	rootCmd.AddCommand(transactionsCmd)
}

func runTransactions(_ *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	r, err := queryRange()
	if err != nil {
		return err
	}

	txns, err := report.New(st).Transactions(r, flagTxnLimit)
	if err != nil {
		return err
	}
	if len(txns) == 0 {
		fmt.Println()
		fmt.Println(cli.Muted("  No transactions in the selected range."))
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("RECENT TRANSACTIONS" + rangeSuffix(r)))
	fmt.Println()

	rows := make([][]string, 0, len(txns))
	for _, t := range txns {
		rows = append(rows, []string{
			t.Date.Format("2006-01-02"),
			t.Kind.String(),
			t.Category,
			t.Asset,
			cli.FormatSigned(t.Signed(), flagCurrency),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Type", "Category", "Method", "Amount"},
		Rows:    rows,
	}))
	return nil
}
