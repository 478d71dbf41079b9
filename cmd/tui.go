package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/kmellea/moneylens/internal/config"
	"github.com/kmellea/moneylens/internal/model"
	"github.com/kmellea/moneylens/internal/tui"
	"github.com/kmellea/moneylens/internal/tui/theme"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor so background styling always produces ANSI codes;
	// some terminals otherwise detect an Ascii profile.
	lipgloss.SetColorProfile(termenv.TrueColor)

	custom := model.Range{From: flagFrom, To: flagTo}
	if err := custom.Validate(); err != nil {
		return err
	}

	app := tui.NewApp(flagDB, flagCurrency, cfg.Appearance.Theme, flagMonths, custom, !config.Exists())
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard error: %w", err)
	}
	return nil
}
