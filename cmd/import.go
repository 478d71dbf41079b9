package cmd

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kmellea/moneylens/internal/cli"
	"github.com/kmellea/moneylens/internal/importer"
	"github.com/kmellea/moneylens/internal/store"
)

var (
	flagImpFormat string
	flagImpDryRun bool
)

var importCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Import transaction CSV exports into the ledger",
	Long: "Parse one or more CSV exports and insert their rows into the ledger\n" +
		"database, creating it first if needed. The format is detected from each\n" +
		"file's header unless --format pins one.",
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&flagImpFormat, "format", "f", "", "Input format (default auto-detect per file)")
	importCmd.Flags().BoolVar(&flagImpDryRun, "dry-run", false, "Parse and report without writing anything")
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	svc := importer.NewService(logger)

	format := flagImpFormat
	if format == "" {
		format = cfg.Import.DefaultFormat
	}
	if format != "" && !slices.Contains(svc.Formats(), strings.ToLower(format)) {
		return fmt.Errorf("unknown format %q, available: %s", format, strings.Join(svc.Formats(), ", "))
	}

	progressFn := func(done, total int) {
		if flagQuiet {
			return
		}
		fmt.Fprintf(os.Stderr, "\r  Parsing %s", cli.RenderProgressBar(done, total, 18))
	}

	results := svc.ParseFiles(args, format, progressFn)
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", 48))
	}

	var st *store.Store
	if !flagImpDryRun {
		var err error
		if st, err = openOrCreateStore(); err != nil {
			return err
		}
		defer st.Close()
	}

	var imported, failed int
	for _, fr := range results {
		if fr.Err != nil {
			failed++
			fmt.Printf("%s %s: %v\n", cli.Expense("✗"), fr.Path, fr.Err)
			continue
		}

		inserted := len(fr.Txns)
		if !flagImpDryRun {
			var err error
			if inserted, err = st.InsertTransactions(fr.Txns); err != nil {
				failed++
				fmt.Printf("%s %s: %v\n", cli.Expense("✗"), fr.Path, err)
				continue
			}
		}
		imported += inserted

		income, expenses := fr.Totals()
		line := fmt.Sprintf("%s %s: %d rows (%s)", cli.Income("✓"), fr.Path, inserted, fr.Format)
		if fr.Skipped > 0 {
			line += ", " + cli.Warn(fmt.Sprintf("%d skipped", fr.Skipped))
		}
		line += fmt.Sprintf(", +%s / -%s",
			cli.FormatAmount(income, flagCurrency),
			cli.FormatAmount(expenses, flagCurrency))
		fmt.Println(line)
	}

	if failed == len(results) {
		return errors.New("no files imported")
	}
	if flagImpDryRun {
		fmt.Println(cli.Muted(fmt.Sprintf("  Dry run, %d transactions parsed, nothing written.", imported)))
		return nil
	}
	fmt.Printf("Imported %d transactions into %s\n", imported, flagDB)
	if txns, cats, assets, err := st.Counts(); err == nil {
		fmt.Println(cli.Muted(fmt.Sprintf("  Ledger holds %d transactions, %d categories, %d payment methods.",
			txns, cats, assets)))
	}
	return nil
}

// openOrCreateStore opens the ledger for writing, creating a fresh
// database when none exists yet.
func openOrCreateStore() (*store.Store, error) {
	st, err := store.Open(flagDB)
	if err == nil {
		return st, nil
	}
	if !errors.Is(err, store.ErrDBMissing) {
		return nil, err
	}
	logger.Info("creating new ledger", "path", flagDB)
	return store.Create(flagDB)
}
