package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/kmellea/moneylens/internal/config"
	"github.com/kmellea/moneylens/internal/model"
	"github.com/kmellea/moneylens/internal/store"
)

var (
	flagDB       string
	flagFrom     string
	flagTo       string
	flagMonths   int
	flagCurrency string
	flagQuiet    bool
	flagVerbose  bool
)

var (
	cfg    config.Config
	logger *log.Logger
)

var rootCmd = &cobra.Command{
	Use:   "moneylens",
	Short: "Personal finance analytics for Money Manager ledgers",
	Long: "Analyze a Money Manager database: monthly income and expenses,\n" +
		"category breakdowns, payment methods, trends, and HTML chart reports.",
	RunE:          runSummary,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		initLogger()

		var err error
		cfg, err = config.Load()
		if err != nil {
			logger.Warn("config unreadable, using defaults", "err", err)
			cfg = config.DefaultConfig()
		}

		// Flags win over config, config over built-in defaults.
		if flagDB == "" {
			flagDB = cfg.DatabasePath()
		}
		if flagCurrency == "" {
			flagCurrency = cfg.General.Currency
		}
		if !rootCmd.PersistentFlags().Changed("months") {
			flagMonths = cfg.General.DefaultMonths
		}
	},
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDB, "db", "d", "", "Ledger database path (default from config, then ./money_manager.db)")
	rootCmd.PersistentFlags().StringVar(&flagFrom, "from", "", "Start month YYYY-MM, inclusive")
	rootCmd.PersistentFlags().StringVar(&flagTo, "to", "", "End month YYYY-MM, inclusive")
	rootCmd.PersistentFlags().IntVarP(&flagMonths, "months", "n", 0, "Last N months including the current one, 0 = everything (ignored when --from/--to are set)")
	rootCmd.PersistentFlags().StringVar(&flagCurrency, "currency", "", "Currency code for display (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")
}

func initLogger() {
	logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	switch {
	case flagVerbose:
		logger.SetLevel(log.DebugLevel)
	case flagQuiet:
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.WarnLevel)
	}
}

// openStore opens the ledger for read commands, turning a missing file
// into a hint instead of a bare error.
func openStore() (*store.Store, error) {
	st, err := store.Open(flagDB)
	if err != nil {
		if errors.Is(err, store.ErrDBMissing) {
			return nil, fmt.Errorf("%w\n  Run 'moneylens init' to create one, 'moneylens import' to load exports,\n  or point --db at a Money Manager database file.", err)
		}
		return nil, err
	}
	logger.Debug("opened ledger", "path", st.Path())
	return st, nil
}

// queryRange resolves the month window from flags. Explicit --from/--to
// bounds win over the --months shortcut.
func queryRange() (model.Range, error) {
	r := model.Range{From: flagFrom, To: flagTo}
	if r.IsZero() && flagMonths > 0 {
		r = model.LastMonths(flagMonths, time.Now())
	}
	if err := r.Validate(); err != nil {
		return model.Range{}, err
	}
	return r, nil
}

// rangeSuffix is appended to titles when a window is active.
func rangeSuffix(r model.Range) string {
	if r.IsZero() {
		return ""
	}
	return "  " + r.String()
}
