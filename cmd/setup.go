package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/kmellea/moneylens/internal/cli"
	"github.com/kmellea/moneylens/internal/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// cfg was loaded (or defaulted) in PersistentPreRun; edit it in place
	// so untouched settings survive the save.
	dbPath := cfg.General.DatabasePath
	currency := cfg.General.Currency
	months := cfg.General.DefaultMonths
	themeName := cfg.Appearance.Theme

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Database path").
				Description("Your Money Manager .db file, or where to create one.").
				Placeholder(config.DefaultDBPath).
				Value(&dbPath),
			huh.NewInput().
				Title("Currency").
				Description("ISO code used for display, e.g. EUR, USD, SEK.").
				CharLimit(5).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("enter a currency code")
					}
					return nil
				}).
				Value(&currency),
			huh.NewSelect[int]().
				Title("Default time range").
				Options(
					huh.NewOption("All history", 0),
					huh.NewOption("Last 6 months", 6),
					huh.NewOption("Last 12 months", 12),
					huh.NewOption("Last 24 months", 24),
				).
				Value(&months),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(
					huh.NewOption("Flexoki Dark", "flexoki-dark"),
					huh.NewOption("Catppuccin Mocha", "catppuccin-mocha"),
					huh.NewOption("Terminal (ANSI 16)", "terminal"),
				).
				Value(&themeName),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println(cli.Muted("  Setup canceled, nothing saved."))
			return nil
		}
		return err
	}

	cfg.General.DatabasePath = strings.TrimSpace(dbPath)
	cfg.General.Currency = strings.ToUpper(strings.TrimSpace(currency))
	cfg.General.DefaultMonths = months
	cfg.Appearance.Theme = themeName

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `moneylens setup` anytime to reconfigure.")
	return nil
}
