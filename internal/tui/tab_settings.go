package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kmellea/moneylens/internal/config"
	"github.com/kmellea/moneylens/internal/tui/theme"
)

const (
	settingsFieldTheme = iota
	settingsFieldWindow
	settingsFieldCount
)

// persistSettings writes the current theme and window to the config file.
// Best effort; the session keeps the new values either way.
func (a App) persistSettings() {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	cfg.Appearance.Theme = a.themeName
	cfg.General.DefaultMonths = a.months
	_ = config.Save(cfg)
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	window := "all history"
	if a.months > 0 {
		window = fmt.Sprintf("last %d months", a.months)
	}
	if !a.custom.IsZero() {
		window = a.custom.String() + " (from flags)"
	}

	fields := []struct {
		label string
		value string
	}{
		{"Theme", a.themeName},
		{"Time range", window},
	}

	labelW := 12
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(" " + labelStyle.Render("Settings") + hintStyle.Render("   j/k select, Enter to change"))
	b.WriteString("\n\n")
	for i, f := range fields {
		marker := "  "
		style := valueStyle
		if i == a.settingsCursor {
			marker = " ▸"
			style = selStyle
		}
		b.WriteString(hintStyle.Render(marker) + " ")
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", labelW, f.label)))
		b.WriteString(style.Render(" " + f.value + " "))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(" " + hintStyle.Render(fmt.Sprintf("Saved to %s", config.ConfigPath())))
	b.WriteString("\n")
	b.WriteString(" " + hintStyle.Render("Changing the range reloads data from "+a.dbPath))
	return b.String()
}
