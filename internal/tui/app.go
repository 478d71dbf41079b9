// Package tui provides the interactive Bubble Tea dashboard for moneylens.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/kmellea/moneylens/internal/model"
	"github.com/kmellea/moneylens/internal/tui/components"
	"github.com/kmellea/moneylens/internal/tui/theme"
)

// DataLoadedMsg is sent when the initial ledger load finishes.
type DataLoadedMsg struct {
	Snap     *Snapshot
	LoadTime time.Duration
	Err      error
}

// ReloadedMsg is sent when a manual or settings-triggered reload finishes.
type ReloadedMsg struct {
	Snap     *Snapshot
	LoadTime time.Duration
	Err      error
}

// catsState tracks the categories tab cursor and toggles.
type catsState struct {
	cursor int
	main   bool // main categories vs subcategories
	income bool // income vs expenses
}

// App is the root Bubble Tea model.
type App struct {
	dbPath   string
	currency string

	// Window selection: custom wins over months; months zero means all.
	months int
	custom model.Range

	snap     *Snapshot
	loaded   bool
	loadErr  error
	loadTime time.Duration

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	reloading bool

	// Per-tab state
	cats           catsState
	trendScroll    int
	settingsCursor int
	themeName      string

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool

	spinner spinner.Model
}

const (
	minTerminalWidth = 72
	maxContentWidth  = 140
	minContentHeight = 5
)

// windowChoices are the month windows the settings tab cycles through.
var windowChoices = []int{0, 3, 6, 12, 24}

// NewApp creates the dashboard model. firstRun shows the setup form once
// data has loaded.
func NewApp(dbPath, currency, themeName string, months int, custom model.Range, firstRun bool) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		dbPath:    dbPath,
		currency:  currency,
		themeName: themeName,
		months:    months,
		custom:    custom,
		needSetup: firstRun,
		cats:      catsState{main: true},
		spinner:   sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		a.spinner.Tick,
		loadDataCmd(a.dbPath, a.effectiveRange()),
	)
}

// effectiveRange resolves the active month window.
func (a App) effectiveRange() model.Range {
	if !a.custom.IsZero() {
		return a.custom
	}
	if a.months > 0 {
		return model.LastMonths(a.months, time.Now())
	}
	return model.Range{}
}

func (a App) rangeLabel() string {
	if !a.custom.IsZero() {
		return a.custom.String()
	}
	if a.months > 0 {
		return fmt.Sprintf("last %d months", a.months)
	}
	return "all history"
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case DataLoadedMsg:
		a.loaded = true
		a.snap = msg.Snap
		a.loadErr = msg.Err
		a.loadTime = msg.LoadTime
		if a.needSetup && a.loadErr == nil {
			a.setupForm = newSetupForm(&a.setupVals, a.currency, a.months, a.themeName)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case ReloadedMsg:
		a.reloading = false
		if msg.Err == nil {
			a.snap = msg.Snap
			a.loadErr = nil
			a.loadTime = msg.LoadTime
			a.clampCursors()
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tea.MouseMsg:
		return a.updateMouse(msg)

	case tea.KeyMsg:
		return a.updateKey(msg)
	}

	// Forward everything else to the setup form (cursor blinks, etc).
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !a.loaded || a.showHelp || (a.needSetup && a.setupForm != nil) {
		return a, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.activeTab == 1 && a.cats.cursor > 0 {
			a.cats.cursor--
		}
		if a.activeTab == 2 && a.trendScroll > 0 {
			a.trendScroll--
		}
		return a, nil

	case tea.MouseButtonWheelDown:
		if a.activeTab == 1 && a.cats.cursor < len(a.currentCategories())-1 {
			a.cats.cursor++
		}
		if a.activeTab == 2 && a.snap != nil && a.trendScroll < len(a.snap.Trend.Categories)-1 {
			a.trendScroll++
		}
		return a, nil

	case tea.MouseButtonLeft:
		if msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}
	if !a.loaded {
		return a, nil
	}

	// Load failure screen: retry or leave.
	if a.loadErr != nil {
		switch key {
		case "r":
			a.loaded = false
			a.loadErr = nil
			return a, tea.Batch(a.spinner.Tick, loadDataCmd(a.dbPath, a.effectiveRange()))
		case "q", "esc":
			return a, tea.Quit
		}
		return a, nil
	}

	// First-run setup intercepts all keys.
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit

	case "tab", "l", "right":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	case "shift+tab", "h", "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil

	case "r":
		if !a.reloading {
			a.reloading = true
			return a, reloadCmd(a.dbPath, a.effectiveRange())
		}
		return a, nil
	}

	// Direct tab jumps
	if len(key) == 1 {
		if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
			a.activeTab = idx
			return a, nil
		}
	}

	switch a.activeTab {
	case 1:
		return a.updateCategoriesKey(key)
	case 2:
		return a.updateTrendsKey(key)
	case 3:
		return a.updateSettingsKey(key)
	}
	return a, nil
}

func (a App) updateCategoriesKey(key string) (tea.Model, tea.Cmd) {
	list := a.currentCategories()
	switch key {
	case "j", "down":
		if a.cats.cursor < len(list)-1 {
			a.cats.cursor++
		}
	case "k", "up":
		if a.cats.cursor > 0 {
			a.cats.cursor--
		}
	case "g":
		a.cats.cursor = 0
	case "G":
		a.cats.cursor = len(list) - 1
		if a.cats.cursor < 0 {
			a.cats.cursor = 0
		}
	case "m":
		a.cats.main = !a.cats.main
		a.cats.cursor = 0
	case "i":
		a.cats.income = !a.cats.income
		a.cats.cursor = 0
	}
	return a, nil
}

func (a App) updateTrendsKey(key string) (tea.Model, tea.Cmd) {
	maxScroll := 0
	if a.snap != nil {
		maxScroll = len(a.snap.Trend.Categories) - 1
	}
	switch key {
	case "j", "down":
		if a.trendScroll < maxScroll {
			a.trendScroll++
		}
	case "k", "up":
		if a.trendScroll > 0 {
			a.trendScroll--
		}
	case "g":
		a.trendScroll = 0
	}
	return a, nil
}

func (a App) updateSettingsKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "j", "down":
		if a.settingsCursor < settingsFieldCount-1 {
			a.settingsCursor++
		}
	case "k", "up":
		if a.settingsCursor > 0 {
			a.settingsCursor--
		}
	case "enter", " ":
		return a.settingsCycle()
	}
	return a, nil
}

// settingsCycle advances the selected setting, persists it, and reloads
// when the window changed.
func (a App) settingsCycle() (tea.Model, tea.Cmd) {
	switch a.settingsCursor {
	case settingsFieldTheme:
		a.themeName = theme.Next(a.themeName)
		theme.SetActive(a.themeName)
		a.persistSettings()
		return a, nil

	case settingsFieldWindow:
		a.months = nextWindow(a.months)
		a.custom = model.Range{}
		a.persistSettings()
		a.reloading = true
		return a, reloadCmd(a.dbPath, a.effectiveRange())
	}
	return a, nil
}

func nextWindow(months int) int {
	for i, w := range windowChoices {
		if w == months {
			return windowChoices[(i+1)%len(windowChoices)]
		}
	}
	return windowChoices[0]
}

func (a App) currentCategories() []model.CategoryTotal {
	if a.snap == nil {
		return nil
	}
	return a.snap.categories(a.cats.income, a.cats.main)
}

func (a *App) clampCursors() {
	if n := len(a.currentCategories()); a.cats.cursor >= n {
		a.cats.cursor = n - 1
	}
	if a.cats.cursor < 0 {
		a.cats.cursor = 0
	}
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.loadErr != nil {
		return a.viewLoadError()
	}
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) contentWidth() int {
	if a.width > maxContentWidth {
		return maxContentWidth
	}
	return a.width
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}
	msg := fmt.Sprintf("\n  Terminal too narrow (%d cols)\n\n  moneylens needs at least %d columns.\n",
		a.width, minTerminalWidth)
	return padHeight(truncateHeight(msg, h), h)
}

func overlayCard() lipgloss.Style {
	t := theme.Active
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
}

func (a App) viewLoading() string {
	t := theme.Active

	logo := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true).Render("◈ moneylens")
	sub := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	body := logo + sub.Render(" · Ledger Insights") + "\n\n" +
		lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Render(a.spinner.View()) +
		sub.Render(" Reading "+a.dbPath+"…")

	card := overlayCard().Padding(2, 4).Render(body)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewLoadError() string {
	t := theme.Active
	title := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true)
	text := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	body := title.Render("Could not load the ledger") + "\n\n" +
		text.Render(truncStr(a.loadErr.Error(), 60)) + "\n\n" +
		text.Render("Check --db, or run `moneylens import` first.") + "\n\n" +
		text.Render("[r] retry   [q] quit")

	card := overlayCard().BorderForeground(t.Red).Render(body)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	section := func(b *strings.Builder, name string, binds [][2]string) {
		b.WriteString(sectionStyle.Render(name))
		b.WriteString("\n")
		for _, bind := range binds {
			fmt.Fprintf(b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind[0])),
				descStyle.Render(bind[1]))
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")
	section(&b, "Navigation", [][2]string{
		{"o c t s", "Jump to tab"},
		{"tab / h l", "Previous / Next tab"},
		{"j k", "Move / scroll"},
		{"g G", "Top / bottom"},
	})
	b.WriteString("\n")
	section(&b, "Actions", [][2]string{
		{"m", "Main categories / subcategories"},
		{"i", "Income / expenses"},
		{"Enter", "Change selected setting"},
		{"r", "Reload from database"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	})
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := overlayCard().Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w, h := a.width, a.height
	cw := a.contentWidth()

	pill := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pillAccent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowFill := lipgloss.NewStyle().Background(t.Surface).Width(w)

	rangeRow := rowFill.Render(pill.Render(" ") + pillAccent.Render(a.rangeLabel()) +
		pill.Render("  ·  "+a.dbPath))

	header := components.RenderTabBar(a.activeTab) + "\n" + rangeRow
	statusBar := components.RenderStatusBar(w, a.rangeLabel(), a.reloading)

	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case 0:
		content = a.renderOverviewTab(cw)
	case 1:
		content = a.renderCategoriesTab(cw, contentH)
	case 2:
		content = a.renderTrendsTab(cw, contentH)
	case 3:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Async commands ─────────────────────────────────────────────

func loadDataCmd(dbPath string, r model.Range) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		snap, err := loadSnapshot(dbPath, r)
		return DataLoadedMsg{Snap: snap, Err: err, LoadTime: time.Since(start)}
	}
}

func reloadCmd(dbPath string, r model.Range) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		snap, err := loadSnapshot(dbPath, r)
		return ReloadedMsg{Snap: snap, Err: err, LoadTime: time.Since(start)}
	}
}

// ─── Mouse support ──────────────────────────────────────────────

// tabAtX maps an X coordinate on the tab bar row to a tab index, or -1.
// Hitboxes track RenderTabBar's layout: one leading space, two-space
// separators.
func (a App) tabAtX(x int) int {
	pos := 1
	for i := range components.Tabs {
		tw := components.TabVisualWidth(i, a.activeTab)
		if x >= pos && x < pos+tw {
			return i
		}
		pos += tw + len("  ")
	}
	return -1
}

// ─── Layout helpers ─────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads every line to width w with the background
// color so gaps between cards do not show through.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	var b strings.Builder
	for i, line := range lines {
		b.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
