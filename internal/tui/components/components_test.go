package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/kmellea/moneylens/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
	theme.SetActive("flexoki-dark")
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	cases := []struct {
		total, n int
	}{
		{100, 4},
		{101, 4},
		{103, 4},
		{7, 3},
	}
	for _, tc := range cases {
		widths := LayoutRow(tc.total, tc.n)
		if len(widths) != tc.n {
			t.Fatalf("LayoutRow(%d, %d) returned %d widths", tc.total, tc.n, len(widths))
		}
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != tc.total {
			t.Errorf("LayoutRow(%d, %d) sums to %d, want %d", tc.total, tc.n, sum, tc.total)
		}
		for i := 1; i < len(widths); i++ {
			if widths[i] > widths[i-1] {
				t.Errorf("LayoutRow(%d, %d): width %d grew after %d", tc.total, tc.n, widths[i], widths[i-1])
			}
		}
	}
}

func TestLayoutRowZeroColumns(t *testing.T) {
	if got := LayoutRow(100, 0); got != nil {
		t.Errorf("LayoutRow(100, 0) = %v, want nil", got)
	}
}

func TestMetricRowJoinsAllCards(t *testing.T) {
	metrics := []Metric{
		{Label: "Income", Value: "€1,000.00", Hint: "€500.00/month"},
		{Label: "Expenses", Value: "€400.00"},
	}
	row := MetricRow(metrics, nil, 80)
	for _, want := range []string{"Income", "€1,000.00", "Expenses", "€400.00"} {
		if !strings.Contains(row, want) {
			t.Errorf("MetricRow output missing %q", want)
		}
	}
}

func TestContentCardHeightTracksBody(t *testing.T) {
	short := ContentCard("Short", "one line", 30)
	tall := ContentCard("Tall", "a\nb\nc\nd", 30)
	if lipgloss.Height(short) >= lipgloss.Height(tall) {
		t.Errorf("short card height %d, tall card height %d", lipgloss.Height(short), lipgloss.Height(tall))
	}
}

func TestCardRowMatchesTallestCard(t *testing.T) {
	short := ContentCard("Short", "one", 24)
	tall := ContentCard("Tall", "a\nb\nc\nd\ne", 24)
	joined := CardRow(tall, short)
	if lipgloss.Height(joined) != lipgloss.Height(tall) {
		t.Errorf("joined height %d, want %d", lipgloss.Height(joined), lipgloss.Height(tall))
	}
}

func TestSparklineScalesToPeak(t *testing.T) {
	s := Sparkline([]float64{0, 50, 100}, theme.Active.Green)
	if !strings.Contains(s, "▁") || !strings.Contains(s, "█") {
		t.Errorf("sparkline missing min/max blocks: %q", s)
	}
	if Sparkline(nil, theme.Active.Green) != "" {
		t.Error("empty input should render nothing")
	}
}

func TestSparklineAllZero(t *testing.T) {
	s := Sparkline([]float64{0, 0, 0}, theme.Active.Green)
	if strings.Contains(s, "█") {
		t.Errorf("all-zero sparkline should stay at the floor: %q", s)
	}
}

func TestHBarFill(t *testing.T) {
	full := HBar(100, 100, 10, theme.Active.Red)
	if strings.Count(full, "█") != 10 {
		t.Errorf("full bar has %d filled cells, want 10", strings.Count(full, "█"))
	}
	empty := HBar(0, 100, 10, theme.Active.Red)
	if strings.Count(empty, "░") != 10 {
		t.Errorf("empty bar has %d empty cells, want 10", strings.Count(empty, "░"))
	}
	// A tiny value still shows one cell
	tiny := HBar(1, 10000, 10, theme.Active.Red)
	if strings.Count(tiny, "█") != 1 {
		t.Errorf("tiny bar has %d filled cells, want 1", strings.Count(tiny, "█"))
	}
}

func TestBarChartHasAxis(t *testing.T) {
	out := BarChart([]float64{100, 250, 180}, []string{"Jan", "Feb", "Mar"}, theme.Active.Red, 40, 8)
	if !strings.Contains(out, "│") || !strings.Contains(out, "└") {
		t.Errorf("bar chart missing axis glyphs:\n%s", out)
	}
	if !strings.Contains(out, "Jan") {
		t.Errorf("bar chart missing first x label:\n%s", out)
	}
}

func TestBarChartFallsBackWhenTiny(t *testing.T) {
	out := BarChart([]float64{1, 2, 3}, nil, theme.Active.Red, 10, 2)
	if strings.Contains(out, "│") {
		t.Errorf("tiny chart should fall back to a sparkline:\n%s", out)
	}
}

func TestXAxisLabelsSkipCollisions(t *testing.T) {
	labels := []string{"January", "February", "March"}
	out := xAxisLabels(labels, 2, 1, 12)
	if !strings.HasPrefix(out, "January") {
		t.Errorf("first label should always render: %q", out)
	}
	if strings.Contains(out, "February") {
		t.Errorf("colliding label should be skipped: %q", out)
	}
}

func TestNiceStep(t *testing.T) {
	cases := []struct {
		max   float64
		ticks int
		want  float64
	}{
		{1000, 4, 500},
		{900, 4, 500},
		{40, 4, 10},
		{7, 4, 2},
	}
	for _, tc := range cases {
		if got := niceStep(tc.max, tc.ticks); got != tc.want {
			t.Errorf("niceStep(%v, %d) = %v, want %v", tc.max, tc.ticks, got, tc.want)
		}
	}
}

func TestShortAmount(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{950, "950"},
		{2400, "2.4k"},
		{2000, "2k"},
		{1200000, "1.2M"},
	}
	for _, tc := range cases {
		if got := shortAmount(tc.in); got != tc.want {
			t.Errorf("shortAmount(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRenderTabBarHighlightsActive(t *testing.T) {
	bar := RenderTabBar(0)
	if !strings.Contains(bar, "Overview") {
		t.Error("tab bar missing active tab name")
	}
	// Inactive tabs carry the [key] bracket; the active one does not.
	if !strings.Contains(bar, "[") {
		t.Error("tab bar missing shortcut brackets on inactive tabs")
	}
}

func TestTabIdxByKey(t *testing.T) {
	for i, tab := range Tabs {
		if got := TabIdxByKey(tab.Key); got != i {
			t.Errorf("TabIdxByKey(%q) = %d, want %d", tab.Key, got, i)
		}
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Errorf("TabIdxByKey('z') = %d, want -1", got)
	}
}

func TestTabVisualWidth(t *testing.T) {
	for i, tab := range Tabs {
		active := TabVisualWidth(i, i)
		inactive := TabVisualWidth(i, (i+1)%len(Tabs))
		if active != len(tab.Name) {
			t.Errorf("active width of %q = %d, want %d", tab.Name, active, len(tab.Name))
		}
		if inactive != len(tab.Name)+2 {
			t.Errorf("inactive width of %q = %d, want %d", tab.Name, inactive, len(tab.Name)+2)
		}
	}
}

func TestRenderStatusBarStates(t *testing.T) {
	idle := RenderStatusBar(80, "last 12 months", false)
	if !strings.Contains(idle, "last 12 months") {
		t.Error("status bar missing range label")
	}
	busy := RenderStatusBar(80, "last 12 months", true)
	if !strings.Contains(busy, "reloading") {
		t.Error("status bar missing reload indicator")
	}
}
