package tui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/kmellea/moneylens/internal/config"
	"github.com/kmellea/moneylens/internal/model"
	"github.com/kmellea/moneylens/internal/tui/theme"
)

// setupValues backs the first-run setup form fields.
type setupValues struct {
	currency string
	months   int
	theme    string
}

// newSetupForm builds the first-run wizard shown when no config file
// exists yet. Values are seeded from the current session settings.
func newSetupForm(vals *setupValues, currency string, months int, themeName string) *huh.Form {
	vals.currency = currency
	vals.months = months
	vals.theme = themeName

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to moneylens").
				Description("A few defaults before the dashboard opens.\nEverything can be changed later with `moneylens setup`."),
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
				Value(&vals.currency),
			huh.NewSelect[int]().
				Title("Default time range").
				Options(
					huh.NewOption("All history", 0),
					huh.NewOption("Last 6 months", 6),
					huh.NewOption("Last 12 months", 12),
					huh.NewOption("Last 24 months", 24),
				).
				Value(&vals.months),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(
					huh.NewOption("Flexoki Dark", "flexoki-dark"),
					huh.NewOption("Catppuccin Mocha", "catppuccin-mocha"),
					huh.NewOption("Terminal (ANSI 16)", "terminal"),
				).
				Value(&vals.theme),
		),
	)
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		reload := a.saveSetupConfig()
		a.needSetup = false
		a.setupForm = nil
		if reload {
			a.reloading = true
			return a, reloadCmd(a.dbPath, a.effectiveRange())
		}
		return a, nil
	}

	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

// saveSetupConfig applies the wizard values to the session and persists
// them. Reports whether the window changed and data must be reloaded.
func (a *App) saveSetupConfig() bool {
	a.currency = strings.ToUpper(strings.TrimSpace(a.setupVals.currency))
	a.themeName = a.setupVals.theme
	theme.SetActive(a.themeName)

	reload := a.months != a.setupVals.months || !a.custom.IsZero()
	a.months = a.setupVals.months
	a.custom = model.Range{}

	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	cfg.General.Currency = a.currency
	cfg.General.DefaultMonths = a.months
	cfg.Appearance.Theme = a.themeName
	_ = config.Save(cfg)

	return reload
}
