// Package tui provides the interactive Bubble Tea budget chart.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/theirongolddev/budgetring/internal/config"
	"github.com/theirongolddev/budgetring/internal/donut"
	"github.com/theirongolddev/budgetring/internal/model"
	"github.com/theirongolddev/budgetring/internal/source"
	"github.com/theirongolddev/budgetring/internal/tui/components"
	"github.com/theirongolddev/budgetring/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// FetchResultMsg is sent when a fetch from the source completes.
type FetchResultMsg struct {
	Categories []model.CategoryDatum
	Err        error
	At         time.Time
	// Gen is the fetch generation that produced this result.
	Gen int
}

// SourceChangedMsg is sent when a watched source file changes on disk.
type SourceChangedMsg struct{}

// Options configure a new App.
type Options struct {
	Loader          source.Loader
	ChartWidth      int
	ChartHeight     int
	Ring            components.Ring
	FetchTimeout    time.Duration
	RefreshInterval time.Duration
	// Watch reloads file sources when they change.
	Watch bool
	// FirstRun shows the setup form before the chart.
	FirstRun bool
}

// App is the root Bubble Tea model.
type App struct {
	opts   Options
	loader source.Loader

	// Panes and the coordinator that keeps them in sync
	ring    *components.RingSurface
	legend  *components.LegendPane
	tooltip *components.TooltipPane
	colors  *donut.ColorAssigner
	coord   *donut.Coordinator

	// Fetch state
	loaded      bool // first fetch finished, successfully or not
	hasData     bool
	loadedAt    time.Time
	lastFetch   time.Time
	fetching    bool
	fetchFailed bool
	lastErr     error
	// fetchGen tags the newest fetch; older results are dropped.
	fetchGen int
	// reloadPending is set when the source changed during a fetch.
	reloadPending bool

	// Auto-refresh state
	autoRefresh     bool
	refreshInterval time.Duration

	// Live reload for file sources
	watchSub  <-chan struct{}
	stopWatch context.CancelFunc

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	spinner   spinner.Model

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues
	needSetup bool
}

const (
	minTerminalWidth = 80
	maxContentWidth  = 160

	headerHeight     = 2 // tab bar + source row
	statusHeight     = 1
	metricRowHeight  = components.MetricCardHeight
	minSideWidth     = 28
	minContentHeight = 5

	defaultFetchTimeout = 10 * time.Second
	minRefreshInterval  = 5 * time.Second
	watchDebounce       = 150 * time.Millisecond
)

const (
	tabChart = iota
	tabBreakdown
	tabAbout
)

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	if opts.ChartWidth <= 0 {
		opts.ChartWidth = 40
	}
	if opts.ChartHeight <= 0 {
		opts.ChartHeight = 20
	}
	if opts.Ring == (components.Ring{}) {
		opts.Ring = components.DefaultRing
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = defaultFetchTimeout
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	ring := components.NewRingSurface(opts.ChartWidth, opts.ChartHeight, opts.Ring)
	legend := components.NewLegendPane()
	tooltip := components.NewTooltipPane()
	colors := donut.NewColorAssigner(nil)

	a := App{
		opts:            opts,
		loader:          opts.Loader,
		ring:            ring,
		legend:          legend,
		tooltip:         tooltip,
		colors:          colors,
		coord:           donut.NewCoordinator(ring, legend, tooltip, colors),
		fetching:        opts.Loader != nil,
		autoRefresh:     opts.RefreshInterval > 0,
		refreshInterval: clampRefresh(opts.RefreshInterval),
		spinner:         sp,
		needSetup:       opts.FirstRun,
	}
	a.startWatch()

	if a.needSetup {
		a.setupVals = defaultSetupValues()
		if a.loader != nil {
			a.setupVals.Source = a.loader.String()
		}
		a.setupForm = NewSetupForm(a.setupVals)
	}
	return a
}

func clampRefresh(d time.Duration) time.Duration {
	if d <= 0 {
		return 30 * time.Second
	}
	if d < minRefreshInterval {
		return minRefreshInterval
	}
	return d
}

// startWatch subscribes to file changes when the loader is a file source.
func (a *App) startWatch() {
	if a.stopWatch != nil {
		a.stopWatch()
		a.stopWatch = nil
		a.watchSub = nil
	}
	fs, ok := a.loader.(*source.FileSource)
	if !ok || !a.opts.Watch {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := fs.Watch(ctx, watchDebounce)
	if err != nil {
		cancel()
		slog.Warn("live reload disabled", "path", fs.Path(), "err", err)
		return
	}
	a.watchSub = ch
	a.stopWatch = cancel
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnableMouseAllMotion, // hover needs motion events without a pressed button
		a.spinner.Tick,
		tickCmd(),
	}
	if a.loader != nil {
		cmds = append(cmds, fetchCmd(a.loader, a.opts.FetchTimeout, a.fetchGen))
	}
	if a.watchSub != nil {
		cmds = append(cmds, waitForChange(a.watchSub))
	}
	if a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.fitRing()
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}

		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && msg.Y == 0 {
			if tab := a.tabAtX(msg.X - a.contentOffsetX()); tab >= 0 && tab < len(components.Tabs) {
				a.switchTab(tab)
			}
			return a, nil
		}

		switch a.activeTab {
		case tabChart:
			a.routeChartPointer(msg.X, msg.Y)
		case tabBreakdown:
			a.routeBreakdownPointer(msg.X, msg.Y)
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		// Global: quit
		if key == "ctrl+c" {
			a.teardown()
			return a, tea.Quit
		}

		// First-run setup wizard intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		if !a.loaded {
			if key == "q" {
				a.teardown()
				return a, tea.Quit
			}
			return a, nil
		}

		// Help toggle
		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}

		// Dismiss help
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch key {
		case "q":
			a.teardown()
			return a, tea.Quit

		case "r":
			return a, a.refresh()

		case "R":
			a.autoRefresh = !a.autoRefresh
			return a, nil

		case "esc":
			a.clearPointer()
			return a, nil

		case "j", "down":
			a.stepHighlight(1)
			return a, nil

		case "k", "up":
			a.stepHighlight(-1)
			return a, nil

		case "left":
			a.switchTab((a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs))
			return a, nil

		case "right":
			a.switchTab((a.activeTab + 1) % len(components.Tabs))
			return a, nil
		}

		if len(msg.Runes) == 1 {
			if tab := components.TabIdxByKey(msg.Runes[0]); tab >= 0 {
				a.switchTab(tab)
			}
		}
		return a, nil

	case FetchResultMsg:
		if msg.Gen != a.fetchGen {
			slog.Debug("stale fetch result dropped", "gen", msg.Gen, "current", a.fetchGen)
			return a, nil
		}
		a = a.applyFetch(msg)
		if a.reloadPending && !a.coord.Closed() {
			a.reloadPending = false
			return a, a.refresh()
		}
		return a, nil

	case SourceChangedMsg:
		slog.Debug("source changed on disk", "source", a.sourceName())
		if a.fetching {
			a.reloadPending = true
		}
		return a, tea.Batch(a.refresh(), waitForChange(a.watchSub))

	case spinner.TickMsg:
		if !a.loaded || a.fetching {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd()}

		// Auto-refresh only makes sense for remote sources; files are watched.
		if a.loaded && a.autoRefresh && !a.fetching && a.isHTTPSource() {
			if time.Since(a.lastFetch) >= a.refreshInterval {
				cmds = append(cmds, a.refresh())
			}
		}
		return a, tea.Batch(cmds...)
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	return a, nil
}

// applyFetch hands a successful result to the coordinator. Failures leave
// every pane as it was and go to the log only.
func (a App) applyFetch(msg FetchResultMsg) App {
	if a.coord.Closed() {
		return a
	}
	a.fetching = false
	a.loaded = true
	a.lastFetch = msg.At

	if msg.Err != nil {
		a.fetchFailed = true
		a.lastErr = msg.Err
		slog.Error("budget fetch failed", "source", a.sourceName(), "err", msg.Err)
		return a
	}

	if err := a.coord.Load(msg.Categories); err != nil {
		a.fetchFailed = true
		a.lastErr = err
		slog.Error("budget data rejected", "source", a.sourceName(), "err", err)
		return a
	}

	a.hasData = true
	a.fetchFailed = false
	a.lastErr = nil
	a.loadedAt = msg.At
	slog.Info("budget loaded",
		"source", a.sourceName(),
		"categories", len(msg.Categories),
		"total", model.TotalBudget(msg.Categories))
	return a
}

// refresh starts a fetch unless one is already running. Each fetch gets a
// new generation.
func (a *App) refresh() tea.Cmd {
	if a.loader == nil || a.fetching {
		return nil
	}
	a.fetching = true
	a.fetchGen++
	return tea.Batch(fetchCmd(a.loader, a.opts.FetchTimeout, a.fetchGen), a.spinner.Tick)
}

// teardown unsubscribes the panes and stops the watcher. Fetches that
// complete afterwards are ignored.
func (a *App) teardown() {
	a.coord.Close()
	if a.stopWatch != nil {
		a.stopWatch()
		a.stopWatch = nil
	}
}

func (a *App) switchTab(tab int) {
	if tab == a.activeTab {
		return
	}
	a.clearPointer()
	a.activeTab = tab
}

// clearPointer ends hover on every pane.
func (a *App) clearPointer() {
	a.ring.PointerLeave()
	a.legend.PointerLeave()
}

// stepHighlight moves the highlight through categories from the keyboard,
// using the legend as the hover source.
func (a *App) stepHighlight(delta int) {
	n := a.legend.Len()
	if n == 0 {
		return
	}
	cur, ok := a.coord.Highlighted()
	next := 0
	if ok {
		next = (cur + delta + n) % n
	} else if delta < 0 {
		next = n - 1
	}
	a.ring.PointerLeave()
	a.placeTooltipForLegend()
	a.legend.PointerMove(next)
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		a.needSetup = false
		a.setupForm = nil
		return a, a.saveSetupConfig()
	}

	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

// saveSetupConfig persists the wizard answers and switches to the chosen
// source when it differs from the current one.
func (a *App) saveSetupConfig() tea.Cmd {
	cfg, err := config.Load()
	if err != nil {
		slog.Warn("config unreadable, starting from defaults", "err", err)
		cfg = config.DefaultConfig()
	}
	ApplySetup(&cfg, *a.setupVals)
	if err := config.Save(cfg); err != nil {
		slog.Error("saving config", "path", config.Path(), "err", err)
	}
	theme.SetActive(cfg.Appearance.Theme)

	a.autoRefresh = cfg.Source.RefreshIntervalSec > 0
	a.refreshInterval = clampRefresh(cfg.Source.RefreshInterval())

	if a.loader != nil && a.loader.String() == a.setupVals.Source {
		return nil
	}
	loader, err := source.New(a.setupVals.Source, source.Options{Path: cfg.Source.Path})
	if err != nil {
		slog.Error("invalid source from setup", "source", a.setupVals.Source, "err", err)
		return nil
	}
	// The old loader's fetch may still be running; refresh bumps the
	// generation so its result is dropped.
	a.loader = loader
	a.fetching = false
	a.reloadPending = false
	a.startWatch()

	cmds := []tea.Cmd{a.refresh()}
	if a.watchSub != nil {
		cmds = append(cmds, waitForChange(a.watchSub))
	}
	return tea.Batch(cmds...)
}

func (a App) sourceName() string {
	if a.loader == nil {
		return ""
	}
	return a.loader.String()
}

func (a App) isHTTPSource() bool {
	_, ok := a.loader.(*source.HTTPSource)
	return ok
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// contentOffsetX is the left margin when content is centered in a wide terminal.
func (a App) contentOffsetX() int {
	return (a.width - a.contentWidth()) / 2
}

// fitRing shrinks the ring surface to the terminal, never beyond the
// configured size.
func (a App) fitRing() {
	w := a.contentWidth() - components.CardChromeX - minSideWidth
	if w > a.opts.ChartWidth {
		w = a.opts.ChartWidth
	}
	h := a.height - headerHeight - statusHeight - metricRowHeight - components.CardChromeY
	if h > a.opts.ChartHeight {
		h = a.opts.ChartHeight
	}
	a.ring.Resize(w, h)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	// First-run setup wizard
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  budgetring needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	spinnerStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◍ budgetring"))
	b.WriteString(subtitleStyle.Render(" · Personal Budget"))
	b.WriteString("\n\n")
	b.WriteString(spinnerStyle.Render(a.spinner.View()))
	b.WriteString(subtitleStyle.Render(" Fetching " + truncStr(a.sourceName(), 48)))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◍ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []struct {
		name     string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"c b a", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Highlight next / previous category"},
			{"mouse", "Hover ring or legend to highlight"},
			{"Esc", "Clear highlight"},
		}},
		{"Actions", []struct{ key, desc string }{
			{"r", "Refresh data"},
			{"R", "Toggle auto-refresh"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}
	for i, sec := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render(sec.name))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + source row
	pillStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	pillAccentStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	info := pillStyle.Render(" ") + pillAccentStyle.Render(truncStr(a.sourceName(), cw/2))
	if a.hasData {
		info += pillStyle.Render(" │ ") +
			pillAccentStyle.Render(fmt.Sprintf("%d categories", len(a.coord.Categories())))
	}
	info += pillStyle.Render(" ")

	infoRowStyle := lipgloss.NewStyle().
		Background(t.Surface).
		Width(cw)

	header := lipgloss.JoinVertical(lipgloss.Left,
		components.RenderTabBar(a.activeTab, cw),
		infoRowStyle.Render(info))
	header = lipgloss.PlaceHorizontal(w, lipgloss.Center, header,
		lipgloss.WithWhitespaceBackground(t.Background))

	// 2. Status bar
	statusBar := components.RenderStatusBar(w, components.StatusInfo{
		LoadedAt:    a.loadedAt,
		FetchFailed: a.fetchFailed,
		Refreshing:  a.fetching,
		AutoRefresh: a.autoRefresh && a.isHTTPSource(),
	})

	// 3. Content zone height
	contentH := h - headerHeight - statusHeight
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 4. Tab content
	var content string
	switch a.activeTab {
	case tabChart:
		content = a.renderChartTab(cw)
	case tabBreakdown:
		content = a.renderBreakdownTab(cw)
	case tabAbout:
		content = a.renderAboutTab(cw)
	}

	// 5. Truncate + pad to exactly contentH lines
	content = padHeight(truncateHeight(content, contentH), contentH)

	// 6. Fill each line to full width with background (fixes gaps between cards)
	content = fillLinesWithBackground(content, cw, t.Background)

	// 7. Place content with background fill (handles centering when w > cw)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	// 8. Stack vertically
	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	// 9. Ensure entire terminal is filled with background
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Commands ───────────────────────────────────────────────────

type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// fetchCmd runs one fetch off the event loop.
func fetchCmd(loader source.Loader, timeout time.Duration, gen int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		categories, err := loader.Fetch(ctx)
		return FetchResultMsg{Categories: categories, Err: err, At: time.Now(), Gen: gen}
	}
}

// waitForChange blocks until the watcher signals. A closed channel ends
// the subscription.
func waitForChange(sub <-chan struct{}) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-sub; !ok {
			return nil
		}
		return SourceChangedMsg{}
	}
}

// ─── Helpers ────────────────────────────────────────────────────

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
	padding := strings.Repeat("\n", h-len(lines))
	return s + padding
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)

		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
